// Package observability configures OpenTelemetry tracing for the API.
package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"google.golang.org/grpc/credentials"

	"github.com/secondchance/connect-backend/internal/config"
)

// tracerFactory groups the constructors SetupOTel needs. Tests swap in fakes
// so the provider can be assembled without dialing a collector.
type tracerFactory struct {
	client   func(...otlptracegrpc.Option) otlptrace.Client
	exporter func(context.Context, otlptrace.Client) (*otlptrace.Exporter, error)
	resource func(ctx context.Context, serviceName, version string) (*resource.Resource, error)
}

func defaultFactory() tracerFactory {
	return tracerFactory{
		client:   otlptracegrpc.NewClient,
		exporter: otlptrace.New,
		resource: func(ctx context.Context, serviceName, version string) (*resource.Resource, error) {
			return resource.New(
				ctx,
				resource.WithAttributes(
					semconv.ServiceName(serviceName),
					semconv.ServiceVersion(version),
				),
			)
		},
	}
}

// SetupOTel configures OpenTelemetry tracing and returns a shutdown function.
// When tracing is disabled the returned shutdown is a no-op.
func SetupOTel(ctx context.Context, cfg config.OTELConfig, version string) (func(context.Context) error, error) {
	return defaultFactory().setup(ctx, cfg, version)
}

func (f tracerFactory) setup(ctx context.Context, cfg config.OTELConfig, version string) (func(context.Context) error, error) {
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	opts := []otlptracegrpc.Option{
		otlptracegrpc.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	} else {
		creds := credentials.NewClientTLSFromCert(nil, "")
		opts = append(opts, otlptracegrpc.WithTLSCredentials(creds))
	}

	exp, err := f.exporter(ctx, f.client(opts...))
	if err != nil {
		return nil, err
	}

	res, err := f.resource(ctx, cfg.ServiceName, version)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{},
	))

	return tp.Shutdown, nil
}
