package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kbukum/prodquery/logger"
)

// InstrumentationName names the tracer and meter used by query operations.
const InstrumentationName = "github.com/kbukum/prodquery"

// TracerConfig configures the OpenTelemetry tracer.
type TracerConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	// SampleRate is the sampling rate (0.0 to 1.0).
	SampleRate float64
}

// DefaultTracerConfig returns defaults for development.
func DefaultTracerConfig(serviceName string) TracerConfig {
	return TracerConfig{
		ServiceName:    serviceName,
		ServiceVersion: "dev",
		Environment:    "development",
		SampleRate:     1.0,
	}
}

// InitTracer builds a tracer provider and installs it globally. Span
// processors are passed through opts.
func InitTracer(config TracerConfig, opts ...sdktrace.TracerProviderOption) (*sdktrace.TracerProvider, error) {
	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	var sampler sdktrace.Sampler
	switch {
	case config.SampleRate >= 1.0:
		sampler = sdktrace.AlwaysSample()
	case config.SampleRate <= 0:
		sampler = sdktrace.NeverSample()
	default:
		sampler = sdktrace.TraceIDRatioBased(config.SampleRate)
	}

	opts = append([]sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler),
	}, opts...)
	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)

	logger.Debug("tracer initialized", logger.Fields(
		"service", config.ServiceName,
		"sample_rate", config.SampleRate,
	))
	return tp, nil
}

func newResource(serviceName, serviceVersion, environment string) (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		resource.NewSchemaless(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", serviceVersion),
			attribute.String("environment", environment),
		),
	)
}

// LoggingSpanProcessor writes every finished span to the structured log.
type LoggingSpanProcessor struct {
	log *logger.Logger
}

// NewLoggingSpanProcessor creates a span processor logging at debug level.
func NewLoggingSpanProcessor(log *logger.Logger) *LoggingSpanProcessor {
	return &LoggingSpanProcessor{log: log.WithComponent("trace")}
}

func (p *LoggingSpanProcessor) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

func (p *LoggingSpanProcessor) OnEnd(s sdktrace.ReadOnlySpan) {
	fields := logger.Fields(
		"span", s.Name(),
		"trace_id", s.SpanContext().TraceID().String(),
		logger.FieldDuration, s.EndTime().Sub(s.StartTime()).Milliseconds(),
	)
	for _, kv := range s.Attributes() {
		fields[string(kv.Key)] = kv.Value.Emit()
	}
	if s.Status().Code == codes.Error {
		fields[logger.FieldError] = s.Status().Description
	}
	p.log.Debug("span finished", fields)
}

func (p *LoggingSpanProcessor) Shutdown(context.Context) error { return nil }

func (p *LoggingSpanProcessor) ForceFlush(context.Context) error { return nil }
