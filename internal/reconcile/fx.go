package reconcile

import (
	"github.com/ArbeitEmployee/ARBEIT-CRM-sub001/internal/config"
	"github.com/ArbeitEmployee/ARBEIT-CRM-sub001/internal/observability/metrics"
	"github.com/ArbeitEmployee/ARBEIT-CRM-sub001/internal/reconcile/service"
	"go.uber.org/fx"
)

var Module = fx.Module("reconcile.service",
	fx.Provide(func(cfg config.Config) service.Config {
		return service.Config{ContinueOnError: cfg.BatchContinueOnError}
	}),
	fx.Provide(func() *metrics.BatchMetrics {
		return metrics.Batch()
	}),
	fx.Provide(service.NewService),
)
