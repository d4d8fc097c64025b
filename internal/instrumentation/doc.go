// Package instrumentation provides OpenTelemetry instrumentation for the
// mcp-flights server.
//
// # Metrics
//
// Server/HTTP Metrics:
//   - http_requests_total: Counter of HTTP requests by method, path, and status
//   - http_request_duration_seconds: Histogram of HTTP request durations
//
// MCP Tool Metrics:
//   - mcp_tool_calls_total: Counter of tool calls by tool and status
//   - mcp_tool_call_duration_seconds: Histogram of tool call durations
//
// Flight Search Metrics:
//   - flight_searches_total: Counter of searches by trip_type and status
//   - flight_search_duration_seconds: Histogram of search durations
//   - flight_offers_returned: Histogram of offers per search
//
// Airport Directory Metrics:
//   - airport_refreshes_total: Counter of refreshes by status
//   - airport_refresh_duration_seconds: Histogram of refresh durations
//   - airport_directory_entries: Gauge of airports in the directory
//
// # Cardinality Considerations
//
// Routes are unbounded. The route label is only attached to flight search
// metrics when METRICS_DETAILED_LABELS=true. Traveller counts and lead times
// are bucketed with ClassifyPartySize and ClassifyLeadTime before they reach
// a log or span attribute.
//
// # Tracing
//
// Spans are created for MCP tool invocations (StartToolSpan), provider calls
// (StartProviderSpan) and airport directory operations (StartAirportSpan).
//
// # Configuration
//
// Instrumentation can be configured via environment variables:
//   - INSTRUMENTATION_ENABLED: Enable/disable instrumentation (default: false)
//   - METRICS_EXPORTER: prometheus, otlp, stdout or none (default: prometheus)
//   - TRACING_EXPORTER: otlp, stdout or none (default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP endpoint for traces/metrics
//   - OTEL_EXPORTER_OTLP_INSECURE: Use plain HTTP for OTLP
//   - OTEL_TRACES_SAMPLER_ARG: Sampling rate (0.0 to 1.0, default: 0.1)
//   - OTEL_SERVICE_NAME: Service name (default: mcp-flights)
//   - METRICS_DETAILED_LABELS: Add the route label to flight search metrics
//
// # Example Usage
//
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.Config{
//		ServiceName:     "mcp-flights",
//		ServiceVersion:  "0.1.0",
//		Enabled:         true,
//		MetricsExporter: instrumentation.ExporterPrometheus,
//	})
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	recorder := provider.Metrics()
//	recorder.RecordFlightSearch(ctx, "LAX-JFK", "one-way", "success", time.Since(start), 12)
package instrumentation
