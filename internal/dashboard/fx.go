package dashboard

import (
	"github.com/anish-1308/ibilling/internal/dashboard/service"
	"go.uber.org/fx"
)

var Module = fx.Module("dashboard.service",
	fx.Provide(service.NewService),
)
