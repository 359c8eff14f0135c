package tour

import (
	"github.com/anish-1308/ibilling/internal/tour/service"
	"go.uber.org/fx"
)

var Module = fx.Module("tour.service",
	fx.Provide(service.NewService),
)
