package observability

import (
	"context"
	"fmt"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kbukum/prodquery/component"
	"github.com/kbukum/prodquery/logger"
)

// TracingComponent installs a tracer provider that logs finished spans.
type TracingComponent struct {
	cfg TracerConfig
	log *logger.Logger
	tp  *sdktrace.TracerProvider
}

var _ component.Component = (*TracingComponent)(nil)

// NewTracingComponent creates a tracing component logging spans through log.
func NewTracingComponent(cfg TracerConfig, log *logger.Logger) *TracingComponent {
	return &TracingComponent{cfg: cfg, log: log}
}

func (c *TracingComponent) Name() string { return "tracing" }

func (c *TracingComponent) Start(context.Context) error {
	tp, err := InitTracer(c.cfg, sdktrace.WithSpanProcessor(NewLoggingSpanProcessor(c.log)))
	if err != nil {
		return err
	}
	c.tp = tp
	return nil
}

func (c *TracingComponent) Stop(ctx context.Context) error {
	if c.tp == nil {
		return nil
	}
	return c.tp.Shutdown(ctx)
}

func (c *TracingComponent) Health(context.Context) component.Health {
	h := component.Health{Name: c.Name(), Status: component.StatusHealthy}
	switch {
	case c.tp == nil:
		h.Status = component.StatusUnhealthy
		h.Message = "not started"
	case c.cfg.SampleRate <= 0:
		h.Status = component.StatusDegraded
		h.Message = "sampling disabled"
	}
	return h
}

func (c *TracingComponent) Describe() component.Description {
	return component.Description{
		Name:    "Tracing",
		Type:    "tracing",
		Details: fmt.Sprintf("sample_rate=%.2f", c.cfg.SampleRate),
	}
}

// MetricsComponent installs a meter provider with a manual reader and logs
// the collected operation counts when stopped.
type MetricsComponent struct {
	cfg    MeterConfig
	log    *logger.Logger
	reader *sdkmetric.ManualReader
	mp     *sdkmetric.MeterProvider
}

var _ component.Component = (*MetricsComponent)(nil)

// NewMetricsComponent creates a metrics component reporting through log.
func NewMetricsComponent(cfg MeterConfig, log *logger.Logger) *MetricsComponent {
	return &MetricsComponent{cfg: cfg, log: log}
}

func (c *MetricsComponent) Name() string { return "metrics" }

func (c *MetricsComponent) Start(context.Context) error {
	c.reader = sdkmetric.NewManualReader()
	mp, err := InitMeter(c.cfg, c.reader)
	if err != nil {
		return err
	}
	c.mp = mp
	return nil
}

// Counts returns the operation counts collected so far.
func (c *MetricsComponent) Counts(ctx context.Context) (map[string]int64, error) {
	if c.reader == nil {
		return nil, fmt.Errorf("metrics component not started")
	}
	return OperationCounts(ctx, c.reader)
}

func (c *MetricsComponent) Stop(ctx context.Context) error {
	if c.mp == nil {
		return nil
	}
	counts, err := c.Counts(ctx)
	if err != nil {
		return err
	}
	fields := make(map[string]interface{}, len(counts))
	for k, v := range counts {
		fields[k] = v
	}
	c.log.WithContext(ctx).Info("operation counts", fields)
	return c.mp.Shutdown(ctx)
}

func (c *MetricsComponent) Health(context.Context) component.Health {
	if c.mp == nil {
		return component.Health{Name: c.Name(), Status: component.StatusUnhealthy, Message: "not started"}
	}
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}

func (c *MetricsComponent) Describe() component.Description {
	return component.Description{Name: "Metrics", Type: "metrics", Details: "reader=manual"}
}
