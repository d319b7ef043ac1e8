// Package otel configures process-wide OpenTelemetry tracing.
package otel

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/taskmate/taskmate-web/internal/platform/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Config selects the trace exporter. Tracing stays off until Endpoint is set.
type Config struct {
	Endpoint    string  `env:"TASKMATE_OTEL_ENDPOINT"`
	Enabled     bool    `env:"TASKMATE_OTEL_ENABLED"      envDefault:"true"`
	SampleRatio float64 `env:"TASKMATE_OTEL_SAMPLE_RATIO" envDefault:"1"`
	Version     string  `env:"TASKMATE_VERSION"           envDefault:"dev"`
}

// Active reports whether spans should be exported.
func (c Config) Active() bool {
	return c.Enabled && strings.TrimSpace(c.Endpoint) != ""
}

func (c Config) sampler() (sdktrace.Sampler, error) {
	switch {
	case c.SampleRatio < 0 || c.SampleRatio > 1:
		return nil, fmt.Errorf("sample ratio must be between 0 and 1, got %v", c.SampleRatio)
	case c.SampleRatio == 1:
		return sdktrace.AlwaysSample(), nil
	}
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(c.SampleRatio)), nil
}

// ShutdownFunc flushes pending spans.
type ShutdownFunc func(context.Context) error

func noop(context.Context) error { return nil }

// Setup reads Config from the environment and installs a tracer provider for
// service.
func Setup(ctx context.Context, service string) (ShutdownFunc, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return noop, err
	}
	return Install(ctx, service, cfg)
}

// Install registers a global tracer provider exporting to cfg.Endpoint. An
// inactive cfg leaves the global no-op provider in place.
func Install(ctx context.Context, service string, cfg Config) (ShutdownFunc, error) {
	if strings.TrimSpace(service) == "" {
		return noop, errors.New("service name is required")
	}
	if !cfg.Active() {
		return noop, nil
	}
	sampler, err := cfg.sampler()
	if err != nil {
		return noop, err
	}
	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(strings.TrimSpace(cfg.Endpoint)))
	if err != nil {
		return noop, fmt.Errorf("otlp exporter: %w", err)
	}
	res, err := resource.New(ctx, resource.WithAttributes(
		semconv.ServiceName(service),
		semconv.ServiceVersion(cfg.Version),
	))
	if err != nil {
		return noop, fmt.Errorf("otel resource: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler),
	)
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return provider.Shutdown, nil
}
