// Package tools provides shared utilities and types for MCP tool implementations.
package tools

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/giantswarm/mcp-flights/internal/airports"
	"github.com/giantswarm/mcp-flights/internal/flights"
	"github.com/giantswarm/mcp-flights/internal/instrumentation"
	"github.com/giantswarm/mcp-flights/internal/server"
)

// WrapWithAuditLogging wraps a tool handler with request tracking.
// The wrapper:
//   - assigns a request ID and stores it in the handler context
//   - starts a tool span and records the outcome on it
//   - records the tool call metric
//   - writes one audit line through the provider's AuditLogger, when there is one
//
// Handlers report domain failures as error results; those count as failed
// invocations but are passed through unchanged.
func WrapWithAuditLogging(
	toolName string,
	handler ToolHandler,
	sc *server.ServerContext,
) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if sc.IsShutdown() {
			return mcp.NewToolResultError(server.ErrServerShutdown.Error()), nil
		}

		requestID := uuid.NewString()
		invocation := instrumentation.NewToolInvocation(toolName).
			WithRequestID(requestID)
		extractAuditInfoFromArgs(invocation, request.GetArguments(), sc.Now())

		ctx, span := instrumentation.StartToolSpan(ctx, toolName,
			instrumentation.NewSpanAttributeBuilder().
				WithRequestID(requestID).
				WithRoute(invocation.Origin, invocation.Destination).
				WithTripType(invocation.TripType).
				WithAirportQuery(invocation.AirportQuery).
				Build()...)
		defer span.End()

		invocation.WithSpanContext(ctx)
		ctx = ContextWithRequestID(ctx, requestID)

		result, err := handler(ctx, request, sc)

		switch {
		case err != nil:
			invocation.CompleteWithError(err)
			instrumentation.SetSpanError(span, err)
		case result != nil && result.IsError:
			// MCP tool errors are returned in the result, not as Go errors
			message := ResultText(result)
			invocation.Complete(false, nil)
			invocation.Error = message
			instrumentation.SetSpanError(span, errors.New(message))
		default:
			invocation.CompleteSuccess()
			instrumentation.SetSpanSuccess(span)
		}

		sc.Metrics().RecordToolCall(ctx, toolName, invocation.Status(), invocation.Duration)
		sc.Logger().Debug("Tool call finished", attrsToArgs(invocation.LogAttrs())...)

		if provider := sc.InstrumentationProvider(); provider != nil {
			provider.AuditLogger().LogToolInvocation(ctx, invocation)
		}

		return result, err
	}
}

// extractAuditInfoFromArgs copies the route, trip shape and airport query from
// tool arguments onto the invocation. now anchors the lead time calculation.
func extractAuditInfoFromArgs(invocation *instrumentation.ToolInvocation, args map[string]interface{}, now time.Time) {
	origin := airports.NormalizeCode(StringArg(args, "from_airport"))
	destination := airports.NormalizeCode(StringArg(args, "to_airport"))
	if origin != "" || destination != "" {
		invocation.WithRoute(origin, destination)
	}

	if departure := StringArg(args, "departure_date"); departure != "" {
		if date, err := time.Parse(flights.DateLayout, departure); err == nil {
			tripType := flights.OneWay
			if StringArg(args, "return_date") != "" {
				tripType = flights.RoundTrip
			}
			invocation.WithTrip(string(tripType), countTravellers(args), leadDays(now, date))
		}
	}

	if query := StringArg(args, "query"); query != "" {
		invocation.WithAirportQuery(query)
	}
}

// countTravellers sums the passenger arguments, ignoring malformed values.
func countTravellers(args map[string]interface{}) int {
	adults, err := IntArg(args, "adults", 1)
	if err != nil {
		adults = 1
	}
	total := adults
	for _, key := range []string{"children", "infants_in_seat", "infants_on_lap"} {
		if n, err := IntArg(args, key, 0); err == nil && n > 0 {
			total += n
		}
	}
	return total
}

// leadDays returns the number of calendar days from now until departure.
func leadDays(now, departure time.Time) int {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	dy, dm, dd := departure.Date()
	day := time.Date(dy, dm, dd, 0, 0, 0, 0, time.UTC)
	return int(day.Sub(today).Hours() / 24)
}

func attrsToArgs(attrs []slog.Attr) []any {
	args := make([]any, len(attrs))
	for i, a := range attrs {
		args[i] = a
	}
	return args
}
