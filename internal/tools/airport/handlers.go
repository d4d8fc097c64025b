package airport

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/giantswarm/mcp-flights/internal/airports"
	"github.com/giantswarm/mcp-flights/internal/instrumentation"
	"github.com/giantswarm/mcp-flights/internal/logging"
	"github.com/giantswarm/mcp-flights/internal/server"
	"github.com/giantswarm/mcp-flights/internal/tools"
	"github.com/giantswarm/mcp-flights/internal/tools/output"
)

// handleAirportSearch handles airport search requests
func handleAirportSearch(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	query := tools.StringArg(args, "query")

	_, span := instrumentation.StartAirportSpan(ctx, "search",
		instrumentation.NewSpanAttributeBuilder().WithAirportQuery(query).Build()...)
	defer span.End()

	dir := sc.Directory()
	matches, err := dir.Search(query)
	if errors.Is(err, airports.ErrQueryTooShort) {
		instrumentation.SetSpanError(span, err)
		return mcp.NewToolResultError(fmt.Sprintf(
			"Please enter at least %d characters to search for airports, for example a city name or an IATA code like \"LAX\".",
			airports.MinQueryLength)), nil
	}
	if err != nil {
		instrumentation.SetSpanError(span, err)
		return mcp.NewToolResultError(fmt.Sprintf("Failed to search airports: %v", err)), nil
	}

	if len(matches) == 0 && dir.Len() == 0 {
		instrumentation.SetSpanSuccess(span)
		return mcp.NewToolResultText(output.EmptyDirectory), nil
	}

	instrumentation.SetSpanSuccess(span)

	return mcp.NewToolResultText(output.FormatAirportSearch(query, matches, sc.OutputConfig().MaxAirportResults)), nil
}

// handleUpdateAirports handles airport directory refresh requests
func handleUpdateAirports(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	ctx, span := instrumentation.StartAirportSpan(ctx, "refresh")
	defer span.End()

	count, err := sc.Directory().Refresh(ctx)

	var persistErr *airports.PersistError
	switch {
	case err == nil:
		instrumentation.SetSpanSuccess(span)
		return mcp.NewToolResultText(fmt.Sprintf(
			"Airport database updated successfully with %d airports.", count)), nil

	case errors.As(err, &persistErr):
		// The in-memory directory was replaced; only the cache write failed.
		instrumentation.AddSpanEvent(span, "cache_write_failed")
		instrumentation.SetSpanSuccess(span)
		sc.Logger().Warn("Airport cache could not be saved",
			logging.CacheSource(persistErr.Store),
			logging.Err(persistErr.Err))
		return mcp.NewToolResultText(fmt.Sprintf(
			"Airport database updated with %d airports, but the local cache could not be saved: %v",
			count, persistErr.Err)), nil

	default:
		instrumentation.SetSpanError(span, err)
		sc.Logger().Warn("Airport refresh failed",
			logging.RequestID(tools.RequestIDFromContext(ctx)),
			logging.Err(err))
		return mcp.NewToolResultError(fmt.Sprintf(
			"Failed to update airport database: %v. The existing airport data was kept.", err)), nil
	}
}

// handleAllAirports serves the airports://all resource
func handleAllAirports(_ context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	text := output.FormatAirportList(sc.Directory().All(), sc.OutputConfig().AirportListLimit)
	return textContents(request.Params.URI, text), nil
}

// handleAirportByCode serves the airports://{code} resource template
func handleAirportByCode(_ context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	code := codeFromURI(request.Params.URI)
	if code == "" {
		return nil, fmt.Errorf("missing airport code in %q", request.Params.URI)
	}

	record, found := sc.Directory().Lookup(code)
	return textContents(request.Params.URI, output.FormatAirportLookup(code, record, found)), nil
}

// codeFromURI extracts the code from "airports://{code}".
func codeFromURI(uri string) string {
	code, ok := strings.CutPrefix(uri, airportURIPrefix)
	if !ok {
		return ""
	}
	return strings.TrimSpace(strings.Trim(code, "/"))
}

func textContents(uri, text string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: resourceContentType,
			Text:     text,
		},
	}
}
