package teapot

import (
	"context"

	"github.com/evergreen-ci/utility"
	"github.com/mongodb/grip"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.20.0"
)

// TracerConfig configures the OpenTelemetry tracer provider. If not enabled traces will not be sent.
type TracerConfig struct {
	Enabled           bool   `yaml:"enabled"`
	CollectorEndpoint string `yaml:"collector_endpoint"`
	Insecure          bool   `yaml:"insecure"`
}

// ValidateAndDefault validates the tracer configuration.
func (c *TracerConfig) ValidateAndDefault() error {
	if c.Enabled && c.CollectorEndpoint == "" {
		return errors.New("tracer can't be enabled without a collector endpoint")
	}
	return nil
}

// InitTracer installs a global tracer provider exporting to the configured
// collector. The returned function flushes and stops the exporter. When
// tracing is disabled the returned function does nothing.
func InitTracer(ctx context.Context, conf TracerConfig) (func(context.Context) error, error) {
	if !conf.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(conf.CollectorEndpoint)}
	if conf.Insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}
	exp, err := otlptrace.New(ctx, otlptracegrpc.NewClient(opts...))
	if err != nil {
		return nil, errors.Wrap(err, "initializing otel exporter")
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(resource.NewWithAttributes(semconv.SchemaURL, semconv.ServiceName("teapot"))),
	)
	tp.RegisterSpanProcessor(utility.NewAttributeSpanProcessor())
	otel.SetTracerProvider(tp)
	otel.SetErrorHandler(otel.ErrorHandlerFunc(func(err error) {
		grip.Error(errors.Wrap(err, "otel error"))
	}))

	return func(ctx context.Context) error {
		catcher := grip.NewBasicCatcher()
		catcher.Wrap(tp.Shutdown(ctx), "trace provider shutdown")
		catcher.Wrap(exp.Shutdown(ctx), "trace exporter shutdown")
		return catcher.Resolve()
	}, nil
}
