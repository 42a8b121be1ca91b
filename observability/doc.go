// Package observability provides in-process OpenTelemetry tracing and
// metrics for query operations.
//
// Nothing is exported over the network: spans are handed to the span
// processors the caller supplies (LoggingSpanProcessor writes them to the
// structured log) and metrics are pulled from the reader the caller supplies.
//
//	tp, _ := observability.InitTracer(observability.DefaultTracerConfig("prodquery"),
//	    sdktrace.WithSpanProcessor(observability.NewLoggingSpanProcessor(log)))
//	reader := sdkmetric.NewManualReader()
//	mp, _ := observability.InitMeter(observability.DefaultMeterConfig("prodquery"), reader)
//
//	inst, _ := observability.NewInstruments(tp, mp)
//	ctx, op := inst.Start(ctx, "order_by")
//	op.End(len(result), err)
package observability
