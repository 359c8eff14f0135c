package scheduler

import (
	"context"

	"github.com/anish-1308/ibilling/internal/config"
	"go.uber.org/fx"
)

var Module = fx.Module("scheduler.overdue",
	fx.Provide(provideConfig),
	fx.Provide(NewWorker),
	fx.Invoke(runWorker),
)

func provideConfig(cfg config.Config) Config {
	return Config{PollInterval: cfg.Overdue.PollInterval}
}

func runWorker(lc fx.Lifecycle, worker *Worker) {
	runCtx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go worker.RunForever(runCtx)
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}
