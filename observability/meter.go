package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
}

// DefaultMeterConfig returns defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{ServiceName: serviceName, ServiceVersion: "dev", Environment: "development"}
}

// InitMeter builds a meter provider reading through reader and installs it globally.
func InitMeter(config MeterConfig, reader sdkmetric.Reader) (*sdkmetric.MeterProvider, error) {
	if reader == nil {
		return nil, fmt.Errorf("metric reader is required")
	}
	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(reader),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)
	return mp, nil
}

// OperationCounts collects the operation counter from reader, keyed by
// operation and outcome ("order_by/ok", "single/multiple_matches").
func OperationCounts(ctx context.Context, reader sdkmetric.Reader) (map[string]int64, error) {
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		return nil, fmt.Errorf("collecting metrics: %w", err)
	}
	counts := make(map[string]int64)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != metricOperations {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				op, _ := dp.Attributes.Value(attrOperation)
				outcome, _ := dp.Attributes.Value(attrOutcome)
				counts[op.AsString()+"/"+outcome.AsString()] += dp.Value
			}
		}
	}
	return counts, nil
}
