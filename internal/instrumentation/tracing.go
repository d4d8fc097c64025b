package instrumentation

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the default tracer name for the mcp-flights package.
const TracerName = "github.com/giantswarm/mcp-flights"

// Span attribute keys for flight and airport operations.
const (
	// SpanAttrTool is the MCP tool name.
	SpanAttrTool = "mcp.tool"

	// SpanAttrRequestID is the per-invocation request ID.
	SpanAttrRequestID = "mcp.request_id"

	// SpanAttrOrigin is the origin airport code.
	SpanAttrOrigin = "flight.origin"

	// SpanAttrDestination is the destination airport code.
	SpanAttrDestination = "flight.destination"

	// SpanAttrRoute is the "ORIGIN-DESTINATION" pair.
	SpanAttrRoute = "flight.route"

	// SpanAttrTripType is one-way or round-trip.
	SpanAttrTripType = "flight.trip_type"

	// SpanAttrCabin is the requested seat class.
	SpanAttrCabin = "flight.cabin"

	// SpanAttrPartySize is the classified number of travellers.
	SpanAttrPartySize = "flight.party_size"

	// SpanAttrOfferCount is the number of offers returned.
	SpanAttrOfferCount = "flight.offer_count"

	// SpanAttrProvider is the flight data provider.
	SpanAttrProvider = "flight.provider"

	// SpanAttrAirportQuery is an airport search query.
	SpanAttrAirportQuery = "airport.query"

	// SpanAttrOperation is the operation name (search, refresh, lookup).
	SpanAttrOperation = "mcp.operation"
)

// SpanAttributeBuilder helps construct OpenTelemetry span attributes
// with consistent naming and cardinality controls.
type SpanAttributeBuilder struct {
	attrs []attribute.KeyValue
}

// NewSpanAttributeBuilder creates a new SpanAttributeBuilder.
func NewSpanAttributeBuilder() *SpanAttributeBuilder {
	return &SpanAttributeBuilder{
		attrs: make([]attribute.KeyValue, 0, 10),
	}
}

// WithTool adds the MCP tool name attribute.
func (b *SpanAttributeBuilder) WithTool(tool string) *SpanAttributeBuilder {
	b.attrs = append(b.attrs, attribute.String(SpanAttrTool, tool))
	return b
}

// WithRequestID adds the request ID attribute.
func (b *SpanAttributeBuilder) WithRequestID(id string) *SpanAttributeBuilder {
	if id != "" {
		b.attrs = append(b.attrs, attribute.String(SpanAttrRequestID, id))
	}
	return b
}

// WithRoute adds origin, destination and the combined route.
func (b *SpanAttributeBuilder) WithRoute(origin, destination string) *SpanAttributeBuilder {
	b.attrs = append(b.attrs,
		attribute.String(SpanAttrOrigin, strings.ToUpper(origin)),
		attribute.String(SpanAttrDestination, strings.ToUpper(destination)),
		attribute.String(SpanAttrRoute, RouteLabel(origin, destination)),
	)
	return b
}

// WithTripType adds the trip type attribute.
func (b *SpanAttributeBuilder) WithTripType(tripType string) *SpanAttributeBuilder {
	if tripType != "" {
		b.attrs = append(b.attrs, attribute.String(SpanAttrTripType, tripType))
	}
	return b
}

// WithCabin adds the seat class attribute.
func (b *SpanAttributeBuilder) WithCabin(cabin string) *SpanAttributeBuilder {
	if cabin != "" {
		b.attrs = append(b.attrs, attribute.String(SpanAttrCabin, cabin))
	}
	return b
}

// WithPartySize adds the classified party size.
func (b *SpanAttributeBuilder) WithPartySize(travellers int) *SpanAttributeBuilder {
	b.attrs = append(b.attrs, attribute.String(SpanAttrPartySize, ClassifyPartySize(travellers)))
	return b
}

// WithOfferCount adds the number of offers returned.
func (b *SpanAttributeBuilder) WithOfferCount(n int) *SpanAttributeBuilder {
	b.attrs = append(b.attrs, attribute.Int(SpanAttrOfferCount, n))
	return b
}

// WithProvider adds the flight provider attribute.
func (b *SpanAttributeBuilder) WithProvider(provider string) *SpanAttributeBuilder {
	b.attrs = append(b.attrs, attribute.String(SpanAttrProvider, provider))
	return b
}

// WithAirportQuery adds the airport search query.
func (b *SpanAttributeBuilder) WithAirportQuery(query string) *SpanAttributeBuilder {
	if query != "" {
		b.attrs = append(b.attrs, attribute.String(SpanAttrAirportQuery, query))
	}
	return b
}

// WithOperation adds the operation attribute.
func (b *SpanAttributeBuilder) WithOperation(operation string) *SpanAttributeBuilder {
	b.attrs = append(b.attrs, attribute.String(SpanAttrOperation, operation))
	return b
}

// Build returns the constructed attributes.
func (b *SpanAttributeBuilder) Build() []attribute.KeyValue {
	return b.attrs
}

// StartSpan starts a new span with the given name and attributes.
// The caller is responsible for ending the span with defer span.End().
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := otel.GetTracerProvider().Tracer(TracerName)
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// StartToolSpan starts a span for an MCP tool invocation.
func StartToolSpan(ctx context.Context, toolName string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := make([]attribute.KeyValue, 0, len(attrs)+1)
	allAttrs = append(allAttrs, attribute.String(SpanAttrTool, toolName))
	allAttrs = append(allAttrs, attrs...)

	tracer := otel.GetTracerProvider().Tracer(TracerName)
	return tracer.Start(ctx, "tool."+toolName,
		trace.WithAttributes(allAttrs...),
		trace.WithSpanKind(trace.SpanKindServer),
	)
}

// StartProviderSpan starts a client span around a call to a flight data provider.
func StartProviderSpan(ctx context.Context, provider, origin, destination string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := NewSpanAttributeBuilder().
		WithProvider(provider).
		WithRoute(origin, destination).
		Build()
	allAttrs = append(allAttrs, attrs...)

	tracer := otel.GetTracerProvider().Tracer(TracerName)
	return tracer.Start(ctx, "provider."+provider+".search",
		trace.WithAttributes(allAttrs...),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

// StartAirportSpan starts a span for an airport directory operation such as
// "refresh" or "search".
func StartAirportSpan(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := make([]attribute.KeyValue, 0, len(attrs)+1)
	allAttrs = append(allAttrs, attribute.String(SpanAttrOperation, operation))
	allAttrs = append(allAttrs, attrs...)

	kind := trace.SpanKindInternal
	if operation == "refresh" {
		kind = trace.SpanKindClient
	}

	tracer := otel.GetTracerProvider().Tracer(TracerName)
	return tracer.Start(ctx, "airports."+operation,
		trace.WithAttributes(allAttrs...),
		trace.WithSpanKind(kind),
	)
}

// SetSpanError records an error on the span and sets the status to error.
func SetSpanError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// SetSpanSuccess sets the span status to OK.
func SetSpanSuccess(span trace.Span) {
	span.SetStatus(codes.Ok, "")
}

// AddSpanEvent adds an event to the span with optional attributes.
func AddSpanEvent(span trace.Span, name string, attrs ...attribute.KeyValue) {
	span.AddEvent(name, trace.WithAttributes(attrs...))
}

// GetTraceID returns the trace ID from the current span in context.
// Returns empty string if no valid span is present.
func GetTraceID(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		return span.SpanContext().TraceID().String()
	}
	return ""
}

// GetSpanID returns the span ID from the current span in context.
// Returns empty string if no valid span is present.
func GetSpanID(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		return span.SpanContext().SpanID().String()
	}
	return ""
}

// SpanContextString returns a human-readable trace context string.
// Format: "trace_id=X span_id=Y" or empty string if no valid context.
func SpanContextString(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if !span.SpanContext().IsValid() {
		return ""
	}
	return "trace_id=" + span.SpanContext().TraceID().String() +
		" span_id=" + span.SpanContext().SpanID().String()
}
