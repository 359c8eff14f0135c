package inventory

import (
	"github.com/anish-1308/ibilling/internal/inventory/service"
	"go.uber.org/fx"
)

var Module = fx.Module("inventory.service",
	fx.Provide(service.NewService),
)
