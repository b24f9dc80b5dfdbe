package infra

import (
	"context"
	"log"
	"time"

	"github.com/tnqbao/gau-movie-service/config"
	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// InitTelemetry wires trace and metric providers to the OTLP endpoint and
// starts runtime instrumentation. The returned function flushes and stops
// both providers. Without an endpoint configured it is a no-op.
func InitTelemetry(cfg *config.EnvConfig) func(context.Context) {
	if cfg.Grafana.OTLPEndpoint == "" {
		return func(context.Context) {}
	}

	ctx := context.Background()
	res := telemetryResource(cfg)

	traceExporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(cfg.Grafana.OTLPEndpoint),
		otlptracehttp.WithURLPath("/otlp/v1/traces"),
	)
	if err != nil {
		log.Printf("Warning: OTLP trace exporter failed, telemetry disabled: %v", err)
		return func(context.Context) {}
	}
	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tracerProvider)

	metricExporter, err := otlpmetrichttp.New(ctx,
		otlpmetrichttp.WithEndpoint(cfg.Grafana.OTLPEndpoint),
		otlpmetrichttp.WithURLPath("/otlp/v1/metrics"),
	)
	if err != nil {
		log.Printf("Warning: OTLP metric exporter failed, metrics disabled: %v", err)
		return func(ctx context.Context) {
			_ = tracerProvider.Shutdown(ctx)
		}
	}
	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter,
			sdkmetric.WithInterval(15*time.Second))),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(meterProvider)

	if err := runtime.Start(runtime.WithMinimumReadMemStatsInterval(10 * time.Second)); err != nil {
		log.Printf("Warning: runtime instrumentation failed: %v", err)
	}

	return func(ctx context.Context) {
		_ = tracerProvider.Shutdown(ctx)
		_ = meterProvider.Shutdown(ctx)
	}
}

func telemetryResource(cfg *config.EnvConfig) *resource.Resource {
	return resource.NewSchemaless(
		semconv.ServiceName(cfg.Grafana.ServiceName),
		semconv.DeploymentEnvironment(cfg.Environment.Mode),
		semconv.ServiceNamespace(cfg.Environment.Group),
	)
}
