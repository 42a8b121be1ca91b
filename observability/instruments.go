package observability

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/prodquery/errors"
)

const (
	metricOperations = "query.operations"
	metricDuration   = "query.duration"

	attrOperation = attribute.Key("query.operation")
	attrOutcome   = attribute.Key("query.outcome")
	attrCount     = attribute.Key("query.result_count")

	// OutcomeOK labels operations that completed without error.
	OutcomeOK = "ok"
)

// Instruments traces and counts query operations.
type Instruments struct {
	tracer     trace.Tracer
	operations metric.Int64Counter
	duration   metric.Float64Histogram
}

// NewInstruments creates instruments on the given providers.
func NewInstruments(tp trace.TracerProvider, mp metric.MeterProvider) (*Instruments, error) {
	meter := mp.Meter(InstrumentationName)

	operations, err := meter.Int64Counter(metricOperations,
		metric.WithDescription("Query operations by operation and outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", metricOperations, err)
	}

	duration, err := meter.Float64Histogram(metricDuration,
		metric.WithDescription("Duration of query operations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", metricDuration, err)
	}

	return &Instruments{
		tracer:     tp.Tracer(InstrumentationName),
		operations: operations,
		duration:   duration,
	}, nil
}

// DefaultInstruments creates instruments on the global providers, which are
// no-ops until InitTracer / InitMeter run.
func DefaultInstruments() *Instruments {
	inst, err := NewInstruments(otel.GetTracerProvider(), otel.GetMeterProvider())
	if err != nil {
		// the global providers never fail instrument creation
		panic(err)
	}
	return inst
}

// Op is one in-flight query operation.
type Op struct {
	inst  *Instruments
	name  string
	span  trace.Span
	start time.Time
}

// Start opens a span for operation name.
func (i *Instruments) Start(ctx context.Context, name string) (context.Context, *Op) {
	ctx, span := i.tracer.Start(ctx, "query."+name, trace.WithAttributes(attrOperation.String(name)))
	return ctx, &Op{inst: i, name: name, span: span, start: time.Now()}
}

// End records the result size and outcome, then closes the span.
func (o *Op) End(ctx context.Context, count int, err error) {
	outcome := Outcome(err)
	o.span.SetAttributes(attrCount.Int(count), attrOutcome.String(outcome))
	if err != nil {
		o.span.RecordError(err)
		o.span.SetStatus(codes.Error, err.Error())
	}
	o.span.End()

	attrs := metric.WithAttributes(attrOperation.String(o.name), attrOutcome.String(outcome))
	o.inst.operations.Add(ctx, 1, attrs)
	o.inst.duration.Record(ctx, time.Since(o.start).Seconds(), attrs)
}

// Outcome labels err for metrics: "ok", the lower-cased error code, or "error".
func Outcome(err error) string {
	if err == nil {
		return OutcomeOK
	}
	if appErr, ok := errors.AsAppError(err); ok {
		return strings.ToLower(string(appErr.Code))
	}
	return "error"
}
