package observability

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/kbukum/prodquery/errors"
	"github.com/kbukum/prodquery/logger"
)

func TestDefaultTracerConfig(t *testing.T) {
	cfg := DefaultTracerConfig("test-service")
	if cfg.ServiceName != "test-service" {
		t.Errorf("expected ServiceName 'test-service', got %s", cfg.ServiceName)
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("expected SampleRate 1.0, got %f", cfg.SampleRate)
	}
}

func TestInstrumentsRecordSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp, err := InitTracer(DefaultTracerConfig("test"), sdktrace.WithSpanProcessor(recorder))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer tp.Shutdown(context.Background())

	inst, err := NewInstruments(tp, noop.NewMeterProvider())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := context.Background()
	_, op := inst.Start(ctx, "where")
	op.End(ctx, 3, nil)
	_, op = inst.Start(ctx, "single")
	op.End(ctx, 0, errors.MultipleMatches("single"))

	spans := recorder.Ended()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[0].Name() != "query.where" {
		t.Errorf("expected span 'query.where', got %s", spans[0].Name())
	}
	if spans[1].Status().Code != codes.Error {
		t.Errorf("expected error status on failed span, got %v", spans[1].Status())
	}
	found := false
	for _, kv := range spans[1].Attributes() {
		if kv.Key == attrOutcome && kv.Value.AsString() == "multiple_matches" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected outcome attribute, got %v", spans[1].Attributes())
	}
}

func TestInstrumentsCountOperations(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp, err := InitMeter(DefaultMeterConfig("test"), reader)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer mp.Shutdown(context.Background())

	inst, err := NewInstruments(tracenoop.NewTracerProvider(), mp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		_, op := inst.Start(ctx, "first")
		op.End(ctx, 1, nil)
	}
	_, op := inst.Start(ctx, "first")
	op.End(ctx, 0, errors.NotFound("first"))

	counts, err := OperationCounts(ctx, reader)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counts["first/ok"] != 2 {
		t.Errorf("expected 2 ok, got %d (%v)", counts["first/ok"], counts)
	}
	if counts["first/not_found"] != 1 {
		t.Errorf("expected 1 not_found, got %d (%v)", counts["first/not_found"], counts)
	}
}

func TestInitMeterRequiresReader(t *testing.T) {
	if _, err := InitMeter(DefaultMeterConfig("test"), nil); err == nil {
		t.Error("expected error without reader")
	}
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{errors.InvalidSortKey("x", "bad"), "invalid_sort_key"},
		{fmt.Errorf("wrapped: %w", errors.NotFound("")), "not_found"},
		{fmt.Errorf("plain"), "error"},
	}
	for _, tc := range tests {
		if got := Outcome(tc.err); got != tc.want {
			t.Errorf("Outcome(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

func TestLoggingSpanProcessor(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&logger.Config{Level: "debug", Format: logger.FormatJSON}, "test", &buf)
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(NewLoggingSpanProcessor(log)))
	defer tp.Shutdown(context.Background())

	inst, err := NewInstruments(tp, noop.NewMeterProvider())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx := context.Background()
	_, op := inst.Start(ctx, "last")
	op.End(ctx, 0, errors.NotFound("last"))

	out := buf.String()
	for _, want := range []string{`"span":"query.last"`, `"query.outcome":"not_found"`, `"component":"trace"`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in %s", want, out)
		}
	}
}

func TestDefaultInstruments(t *testing.T) {
	inst := DefaultInstruments()
	ctx, op := inst.Start(context.Background(), "any")
	op.End(ctx, 1, nil)
}
