package app

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const serviceName = "spectrumgo"

// startTracing installs a stdout exporter writing to the log writer as the global tracer provider when
// tracing is enabled. The returned function flushes spans and restores the
// previous provider.
func (a *App) startTracing() (func(context.Context) error, error) {
	if !a.appConfig.Trace {
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(a.logW), stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, fmt.Errorf("create stdout exporter: %w", err)
	}
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", serviceName))),
		sdktrace.WithSyncer(exporter),
	)

	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	a.logger.Debug("Tracing enabled.", "exporter", "stdout")

	return func(ctx context.Context) error {
		otel.SetTracerProvider(previous)
		return provider.Shutdown(ctx)
	}, nil
}
