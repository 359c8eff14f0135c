package customer

import (
	"github.com/anish-1308/ibilling/internal/customer/service"
	"go.uber.org/fx"
)

var Module = fx.Module("customer.service",
	fx.Provide(service.NewService),
)
