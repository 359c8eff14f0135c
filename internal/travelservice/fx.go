package travelservice

import (
	"github.com/anish-1308/ibilling/internal/travelservice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("travelservice.service",
	fx.Provide(service.NewService),
)
