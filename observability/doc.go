// Package observability provides OpenTelemetry tracing and metrics for
// command executions and bootstrap steps.
//
// Telemetry is disabled by default; the global noop providers stay in place
// and every instrument is a no-op:
//
//	tel, err := observability.Init(ctx, cfg.Telemetry, "dotfiles", version.Short(), "development")
//	defer tel.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanProcessRun)
//	defer span.End()
//	tel.Metrics.RecordRun(ctx, "pacman", "success", duration)
//
// Doctor-style checks report through HealthChecker:
//
//	health := observability.NewServiceHealth("dotfiles", version.Short())
//	health.AddComponent(checker.CheckHealth(ctx))
package observability
