package invoice

import (
	"github.com/anish-1308/ibilling/internal/invoice/repository"
	"github.com/anish-1308/ibilling/internal/invoice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
