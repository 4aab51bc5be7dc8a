package observability

import "context"

// HealthStatus represents the state of a checked component.
type HealthStatus string

const (
	HealthStatusUp       HealthStatus = "up"
	HealthStatusDown     HealthStatus = "down"
	HealthStatusDegraded HealthStatus = "degraded"
)

// Health describes the result of checking one component, e.g. whether the
// package manager binary resolves through PATH.
type Health struct {
	Name    string            `yaml:"name"`
	Status  HealthStatus      `yaml:"status"`
	Message string            `yaml:"message,omitempty"`
	Details map[string]string `yaml:"details,omitempty"`
}

// HealthChecker is implemented by components that can report their health.
type HealthChecker interface {
	CheckHealth(ctx context.Context) Health
}

// HealthCheckFunc adapts a function to HealthChecker.
type HealthCheckFunc func(ctx context.Context) Health

// CheckHealth calls f.
func (f HealthCheckFunc) CheckHealth(ctx context.Context) Health { return f(ctx) }

// ServiceHealth aggregates component checks into an overall status.
type ServiceHealth struct {
	Service    string       `yaml:"service"`
	Status     HealthStatus `yaml:"status"`
	Version    string       `yaml:"version,omitempty"`
	Components []Health     `yaml:"components,omitempty"`
}

// NewServiceHealth creates a ServiceHealth with status up.
func NewServiceHealth(service, version string) *ServiceHealth {
	return &ServiceHealth{
		Service: service,
		Status:  HealthStatusUp,
		Version: version,
	}
}

// AddComponent adds a component result and degrades overall status if needed.
func (sh *ServiceHealth) AddComponent(ch Health) {
	sh.Components = append(sh.Components, ch)

	switch ch.Status {
	case HealthStatusDown:
		sh.Status = HealthStatusDown
	case HealthStatusDegraded:
		if sh.Status != HealthStatusDown {
			sh.Status = HealthStatusDegraded
		}
	}
}

// Check runs every checker in order and collects the results.
func (sh *ServiceHealth) Check(ctx context.Context, checkers ...HealthChecker) *ServiceHealth {
	for _, c := range checkers {
		sh.AddComponent(c.CheckHealth(ctx))
	}
	return sh
}

// Healthy reports whether no component is down.
func (sh *ServiceHealth) Healthy() bool {
	return sh.Status != HealthStatusDown
}
