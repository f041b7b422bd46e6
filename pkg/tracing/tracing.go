package tracing

import (
	"context"
	"fmt"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/Photon1c/pulselinestudio/pkg/simulation"
)

const instrumentationName = "github.com/Photon1c/pulselinestudio"

// Setup installs a global tracer provider exporting spans to w.
// When enabled is false the global no-op provider is left in place.
// The returned function flushes and stops the exporter.
func Setup(enabled bool, w io.Writer) (func(context.Context) error, error) {
	if !enabled {
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := stdouttrace.New(
		stdouttrace.WithWriter(w),
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		return nil, fmt.Errorf("create stdout exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}

// Tracer returns the package tracer from the global provider
func Tracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}

// Simulate runs sim inside a "simulate" span annotated with the run outcome
func Simulate(ctx context.Context, sim *simulation.Simulator, p simulation.Params) simulation.Result {
	_, span := Tracer().Start(ctx, "simulate",
		trace.WithAttributes(
			attribute.Int("sim.agents", p.Agents),
			attribute.Int("sim.tasks", p.Tasks),
			attribute.Int("sim.max_minutes", p.MaxMinutes),
			attribute.String("sim.scenario_requested", p.ScenarioKey),
		))
	defer span.End()

	res := sim.Simulate(p)
	span.SetAttributes(
		attribute.String("sim.run_id", res.RunID),
		attribute.String("sim.scenario", res.Scenario.Key),
		attribute.Int("sim.adjusted_tasks", res.Parameters.AdjustedTasks),
		attribute.Int("sim.backlog", res.Backlog.Count),
		attribute.Bool("sim.feasible", res.Feasible),
		attribute.Float64("sim.throughput_ratio", res.Metrics.ThroughputRatio),
	)
	return res
}
