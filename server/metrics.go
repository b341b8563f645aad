package server

import (
	"errors"

	"go.opentelemetry.io/otel/metric"
)

type toolMetrics struct {
	calls          metric.Int64Counter
	failed         metric.Int64Counter
	duration       metric.Float64Histogram
	toolsAvailable metric.Int64Gauge
}

func newToolMetrics(meter metric.Meter) (*toolMetrics, error) {
	calls, err1 := meter.Int64Counter("tool_calls_total",
		metric.WithDescription("Total number of tool calls executed"))
	failed, err2 := meter.Int64Counter("tool_calls_failed_total",
		metric.WithDescription("Total number of tool calls that failed or returned an error result"))
	duration, err3 := meter.Float64Histogram("tool_execution_time_seconds",
		metric.WithDescription("Time taken to execute individual tools in seconds"))
	toolsAvailable, err4 := meter.Int64Gauge("tools_available_count",
		metric.WithDescription("Number of tools exposed by the server"))
	if err := errors.Join(err1, err2, err3, err4); err != nil {
		return nil, err
	}

	return &toolMetrics{
		calls:          calls,
		failed:         failed,
		duration:       duration,
		toolsAvailable: toolsAvailable,
	}, nil
}
