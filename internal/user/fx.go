package user

import (
	"github.com/anish-1308/ibilling/internal/user/service"
	"go.uber.org/fx"
)

var Module = fx.Module("user.service",
	fx.Provide(service.NewService),
)
