package instrumentation

import (
	"context"
	"log/slog"
	"time"
)

// ToolInvocation captures one MCP tool call for audit logging.
//
// LogAttrs returns only bounded values and is safe to aggregate on.
// LogAuditAttrs carries the full route and query for the audit trail.
type ToolInvocation struct {
	Tool      string
	RequestID string

	// Flight search context
	Origin      string
	Destination string
	TripType    string
	Travellers  int
	LeadDays    int
	hasLeadTime bool

	// Airport context
	AirportQuery string

	StartTime time.Time
	Duration  time.Duration
	Success   bool
	Error     string

	TraceID string
	SpanID  string
}

// NewToolInvocation starts tracking a tool invocation.
func NewToolInvocation(tool string) *ToolInvocation {
	return &ToolInvocation{
		Tool:      tool,
		StartTime: time.Now(),
	}
}

// WithRequestID sets the request ID.
func (ti *ToolInvocation) WithRequestID(id string) *ToolInvocation {
	ti.RequestID = id
	return ti
}

// WithRoute sets the origin and destination airport codes.
func (ti *ToolInvocation) WithRoute(origin, destination string) *ToolInvocation {
	ti.Origin = origin
	ti.Destination = destination
	return ti
}

// WithTrip sets the trip type, traveller count and days until departure.
func (ti *ToolInvocation) WithTrip(tripType string, travellers, leadDays int) *ToolInvocation {
	ti.TripType = tripType
	ti.Travellers = travellers
	ti.LeadDays = leadDays
	ti.hasLeadTime = true
	return ti
}

// WithAirportQuery sets the airport search query.
func (ti *ToolInvocation) WithAirportQuery(query string) *ToolInvocation {
	ti.AirportQuery = query
	return ti
}

// WithSpanContext copies the trace and span IDs from ctx, if any.
func (ti *ToolInvocation) WithSpanContext(ctx context.Context) *ToolInvocation {
	ti.TraceID = GetTraceID(ctx)
	ti.SpanID = GetSpanID(ctx)
	return ti
}

// Complete marks the invocation finished.
func (ti *ToolInvocation) Complete(success bool, err error) *ToolInvocation {
	ti.Duration = time.Since(ti.StartTime)
	ti.Success = success
	if err != nil {
		ti.Error = err.Error()
	}
	return ti
}

// CompleteSuccess marks the invocation as successful.
func (ti *ToolInvocation) CompleteSuccess() *ToolInvocation {
	return ti.Complete(true, nil)
}

// CompleteWithError marks the invocation as failed.
func (ti *ToolInvocation) CompleteWithError(err error) *ToolInvocation {
	return ti.Complete(false, err)
}

// Status returns "success" or "error".
func (ti *ToolInvocation) Status() string {
	if ti.Success {
		return StatusSuccess
	}
	return StatusError
}

// PartySize returns the classified traveller count.
func (ti *ToolInvocation) PartySize() string {
	return ClassifyPartySize(ti.Travellers)
}

// LeadTime returns the classified lead time, or "unknown" when no trip was recorded.
func (ti *ToolInvocation) LeadTime() string {
	if !ti.hasLeadTime {
		return StatusUnknown
	}
	return ClassifyLeadTime(ti.LeadDays)
}

// LogAttrs returns low-cardinality attributes for operational logs.
func (ti *ToolInvocation) LogAttrs() []slog.Attr {
	attrs := []slog.Attr{
		slog.String("tool", ti.Tool),
		slog.Duration("duration", ti.Duration),
		slog.Bool("success", ti.Success),
	}
	if ti.TripType != "" {
		attrs = append(attrs,
			slog.String("trip_type", ti.TripType),
			slog.String("party_size", ti.PartySize()),
			slog.String("lead_time", ti.LeadTime()),
		)
	}
	if ti.Error != "" {
		attrs = append(attrs, slog.String("error", ti.Error))
	}
	return attrs
}

// LogAuditAttrs returns the full attribute set for the audit trail.
func (ti *ToolInvocation) LogAuditAttrs() []slog.Attr {
	attrs := []slog.Attr{
		slog.String("tool", ti.Tool),
		slog.Duration("duration", ti.Duration),
		slog.Bool("success", ti.Success),
	}
	if ti.RequestID != "" {
		attrs = append(attrs, slog.String("request_id", ti.RequestID))
	}
	if ti.Origin != "" || ti.Destination != "" {
		attrs = append(attrs, slog.String("route", RouteLabel(ti.Origin, ti.Destination)))
	}
	if ti.TripType != "" {
		attrs = append(attrs,
			slog.String("trip_type", ti.TripType),
			slog.Int("travellers", ti.Travellers),
		)
	}
	if ti.AirportQuery != "" {
		attrs = append(attrs, slog.String("airport_query", ti.AirportQuery))
	}
	if ti.Error != "" {
		attrs = append(attrs, slog.String("error", ti.Error))
	}
	if ti.TraceID != "" {
		attrs = append(attrs, slog.String("trace_id", ti.TraceID))
	}
	if ti.SpanID != "" {
		attrs = append(attrs, slog.String("span_id", ti.SpanID))
	}
	return attrs
}

// AuditLogger writes tool invocations to a dedicated audit stream.
type AuditLogger struct {
	logger *slog.Logger
}

// NewAuditLogger creates an AuditLogger. A nil logger falls back to slog.Default().
func NewAuditLogger(logger *slog.Logger) *AuditLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditLogger{logger: logger}
}

// LogToolInvocation writes ti at info level, or warn level when it failed.
func (a *AuditLogger) LogToolInvocation(ctx context.Context, ti *ToolInvocation) {
	if a == nil || ti == nil {
		return
	}
	level := slog.LevelInfo
	if !ti.Success {
		level = slog.LevelWarn
	}
	attrs := append([]slog.Attr{slog.String("log_type", "audit")}, ti.LogAuditAttrs()...)
	a.logger.LogAttrs(ctx, level, "tool_invocation", attrs...)
}

// TraceIDFromContext returns the trace ID of the span in ctx, or "".
func TraceIDFromContext(ctx context.Context) string {
	return GetTraceID(ctx)
}
