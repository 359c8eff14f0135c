package audit

import (
	"github.com/anish-1308/ibilling/internal/audit/repository"
	"github.com/anish-1308/ibilling/internal/audit/service"
	"go.uber.org/fx"
)

var Module = fx.Module("audit.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
