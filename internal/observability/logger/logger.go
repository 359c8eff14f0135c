// Package logger configures structured logging with trace correlation and
// header/body masking.
package logger

import (
	"context"

	"github.com/anish-1308/ibilling/internal/config"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// New builds the root logger and installs it as the zap global.
func New(cfg config.Config) (*zap.Logger, error) {
	var log *zap.Logger
	var err error
	if cfg.IsProduction() {
		log, err = zap.NewProduction()
	} else {
		log, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	log = log.With(zap.String("service", cfg.ServiceName))
	zap.ReplaceGlobals(log)
	return log, nil
}

// FromContext returns the global logger enriched with the trace and span IDs
// of the active span, when one exists.
func FromContext(ctx context.Context) *zap.Logger {
	log := zap.L()
	if ctx == nil {
		return log
	}
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return log
	}
	return log.With(
		zap.String("trace_id", sc.TraceID().String()),
		zap.String("span_id", sc.SpanID().String()),
	)
}

var Module = fx.Module("logger",
	fx.Provide(New),
	fx.Invoke(func(lc fx.Lifecycle, log *zap.Logger) {
		lc.Append(fx.Hook{
			OnStop: func(context.Context) error {
				_ = log.Sync()
				return nil
			},
		})
	}),
)
