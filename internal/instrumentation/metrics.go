package instrumentation

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys
const (
	attrMethod   = "method"
	attrPath     = "path"
	attrStatus   = "status"
	attrTool     = "tool"
	attrTripType = "trip_type"
	attrRoute    = "route"
)

// durationBuckets covers fast cache hits up to slow upstream scrapes.
var durationBuckets = []float64{0.001, 0.01, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0}

// Metrics provides methods for recording observability metrics.
//
// A zero Metrics is valid and records nothing, which is what callers get when
// instrumentation is disabled.
type Metrics struct {
	// HTTP metrics
	httpRequestsTotal   metric.Int64Counter
	httpRequestDuration metric.Float64Histogram

	// MCP tool metrics
	toolCallsTotal   metric.Int64Counter
	toolCallDuration metric.Float64Histogram

	// Flight search metrics
	flightSearchesTotal  metric.Int64Counter
	flightSearchDuration metric.Float64Histogram
	flightOffersReturned metric.Int64Histogram

	// Airport directory metrics
	airportRefreshesTotal   metric.Int64Counter
	airportRefreshDuration  metric.Float64Histogram
	airportDirectoryEntries metric.Int64Gauge

	// detailedLabels controls whether the route label is added to flight search metrics.
	detailedLabels bool
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
// The detailedLabels parameter controls whether high-cardinality labels are included.
func NewMetrics(meter metric.Meter, detailedLabels bool) (*Metrics, error) {
	m := &Metrics{
		detailedLabels: detailedLabels,
	}

	var err error

	m.httpRequestsTotal, err = meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http_requests_total counter: %w", err)
	}

	m.httpRequestDuration, err = meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBuckets...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http_request_duration_seconds histogram: %w", err)
	}

	m.toolCallsTotal, err = meter.Int64Counter(
		"mcp_tool_calls_total",
		metric.WithDescription("Total number of MCP tool calls"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mcp_tool_calls_total counter: %w", err)
	}

	m.toolCallDuration, err = meter.Float64Histogram(
		"mcp_tool_call_duration_seconds",
		metric.WithDescription("MCP tool call duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBuckets...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mcp_tool_call_duration_seconds histogram: %w", err)
	}

	m.flightSearchesTotal, err = meter.Int64Counter(
		"flight_searches_total",
		metric.WithDescription("Total number of flight searches"),
		metric.WithUnit("{search}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create flight_searches_total counter: %w", err)
	}

	m.flightSearchDuration, err = meter.Float64Histogram(
		"flight_search_duration_seconds",
		metric.WithDescription("Flight search duration in seconds, including the provider call"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBuckets...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create flight_search_duration_seconds histogram: %w", err)
	}

	m.flightOffersReturned, err = meter.Int64Histogram(
		"flight_offers_returned",
		metric.WithDescription("Number of offers returned by a flight search"),
		metric.WithUnit("{offer}"),
		metric.WithExplicitBucketBoundaries(0, 1, 5, 10, 25, 50, 100),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create flight_offers_returned histogram: %w", err)
	}

	m.airportRefreshesTotal, err = meter.Int64Counter(
		"airport_refreshes_total",
		metric.WithDescription("Total number of airport directory refreshes"),
		metric.WithUnit("{refresh}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create airport_refreshes_total counter: %w", err)
	}

	m.airportRefreshDuration, err = meter.Float64Histogram(
		"airport_refresh_duration_seconds",
		metric.WithDescription("Airport directory refresh duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBuckets...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create airport_refresh_duration_seconds histogram: %w", err)
	}

	m.airportDirectoryEntries, err = meter.Int64Gauge(
		"airport_directory_entries",
		metric.WithDescription("Number of airports currently in the directory"),
		metric.WithUnit("{airport}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create airport_directory_entries gauge: %w", err)
	}

	return m, nil
}

// RecordHTTPRequest records an HTTP request with method, path, status code, and duration.
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, path string, statusCode int, duration time.Duration) {
	if m == nil || m.httpRequestsTotal == nil || m.httpRequestDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrMethod, method),
		attribute.String(attrPath, path),
		attribute.String(attrStatus, strconv.Itoa(statusCode)),
	}

	m.httpRequestsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.httpRequestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordToolCall records an MCP tool call with its outcome.
func (m *Metrics) RecordToolCall(ctx context.Context, tool, status string, duration time.Duration) {
	if m == nil || m.toolCallsTotal == nil || m.toolCallDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrTool, tool),
		attribute.String(attrStatus, status),
	}

	m.toolCallsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.toolCallDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordFlightSearch records a flight search with trip type, status, duration
// and the number of offers returned.
//
// CARDINALITY NOTE: the route label is only added when detailedLabels is
// enabled. Use traces for per-route debugging on shared deployments.
func (m *Metrics) RecordFlightSearch(ctx context.Context, route, tripType, status string, duration time.Duration, offers int) {
	if m == nil || m.flightSearchesTotal == nil || m.flightSearchDuration == nil {
		return // Instrumentation not initialized
	}

	if tripType == "" {
		tripType = StatusUnknown
	}
	attrs := []attribute.KeyValue{
		attribute.String(attrTripType, tripType),
		attribute.String(attrStatus, status),
	}
	if m.detailedLabels && route != "" {
		attrs = append(attrs, attribute.String(attrRoute, route))
	}

	m.flightSearchesTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.flightSearchDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
	if m.flightOffersReturned != nil {
		m.flightOffersReturned.Record(ctx, int64(offers), metric.WithAttributes(attribute.String(attrTripType, tripType)))
	}
}

// RecordAirportRefresh records an airport directory refresh attempt.
func (m *Metrics) RecordAirportRefresh(ctx context.Context, status string, duration time.Duration) {
	if m == nil || m.airportRefreshesTotal == nil || m.airportRefreshDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrStatus, status),
	}

	m.airportRefreshesTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.airportRefreshDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// SetAirportDirectorySize records the current number of airports in the directory.
func (m *Metrics) SetAirportDirectorySize(ctx context.Context, entries int) {
	if m == nil || m.airportDirectoryEntries == nil {
		return // Instrumentation not initialized
	}

	m.airportDirectoryEntries.Record(ctx, int64(entries))
}
