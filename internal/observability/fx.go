// Package observability bundles logging, tracing and metrics wiring.
package observability

import (
	"github.com/anish-1308/ibilling/internal/config"
	"github.com/anish-1308/ibilling/internal/observability/logger"
	"github.com/anish-1308/ibilling/internal/observability/metrics"
	"github.com/anish-1308/ibilling/internal/observability/tracing"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

var Module = fx.Module("observability",
	logger.Module,
	fx.Invoke(tracing.NewProvider),
	fx.Provide(func(cfg config.Config) *metrics.HTTPMetrics {
		return metrics.NewHTTPMetrics(prometheus.DefaultRegisterer, cfg.ServiceName)
	}),
)
