package supplier

import (
	"github.com/anish-1308/ibilling/internal/supplier/service"
	"go.uber.org/fx"
)

var Module = fx.Module("supplier.service",
	fx.Provide(service.NewService),
)
