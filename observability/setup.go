package observability

import (
	"context"
	"errors"
	"fmt"

	"github.com/kbukum/dotfiles/logger"
)

// Telemetry bundles the instruments handed to the rest of the program.
type Telemetry struct {
	Metrics  *Metrics
	shutdown []func(context.Context) error
}

// Init sets up tracing and metrics. When cfg.Enabled is false the global
// noop providers stay in place and Metrics records nothing.
func Init(ctx context.Context, cfg Config, service, version, environment string) (*Telemetry, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	t := &Telemetry{}
	if cfg.Enabled {
		tp, err := InitTracer(ctx, cfg.TracerConfig(service, version, environment))
		if err != nil {
			return nil, fmt.Errorf("init tracer: %w", err)
		}
		t.shutdown = append(t.shutdown, tp.Shutdown)

		mp, err := InitMeter(ctx, cfg.MeterConfig(service, version, environment))
		if err != nil {
			_ = tp.Shutdown(ctx)
			return nil, fmt.Errorf("init meter: %w", err)
		}
		t.shutdown = append(t.shutdown, mp.Shutdown)
	} else {
		logger.Get("observability").Debug("telemetry disabled")
	}

	m, err := NewMetrics(Meter(service))
	if err != nil {
		_ = t.Shutdown(ctx)
		return nil, err
	}
	t.Metrics = m
	return t, nil
}

// Shutdown flushes and stops the exporters, in reverse order of creation.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error
	for i := len(t.shutdown) - 1; i >= 0; i-- {
		if err := t.shutdown[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	t.shutdown = nil
	return errors.Join(errs...)
}
