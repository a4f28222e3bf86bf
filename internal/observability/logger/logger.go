// Package logger builds the process-wide zap logger.
package logger

import (
	"context"
	"strings"

	"github.com/ArbeitEmployee/ARBEIT-CRM-sub001/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("logger",
	fx.Provide(New),
	fx.Invoke(replaceGlobals),
)

// New constructs a logger appropriate for the configured environment.
func New(cfg config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func replaceGlobals(lc fx.Lifecycle, log *zap.Logger) {
	undo := zap.ReplaceGlobals(log)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			undo()
			_ = log.Sync()
			return nil
		},
	})
}

// FromContext returns the global logger. Request-scoped fields can be layered
// on by callers; the indirection keeps call sites uniform with richer setups.
func FromContext(ctx context.Context) *zap.Logger {
	_ = ctx
	return zap.L()
}

// Named is a convenience wrapper preserving the "<feature>.service" naming
// convention used across the codebase.
func Named(log *zap.Logger, name string) *zap.Logger {
	name = strings.TrimSpace(name)
	if name == "" {
		return log
	}
	return log.Named(name)
}
