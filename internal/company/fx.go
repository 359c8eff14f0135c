package company

import (
	"github.com/anish-1308/ibilling/internal/company/service"
	"go.uber.org/fx"
)

var Module = fx.Module("company.service",
	fx.Provide(service.NewService),
)
