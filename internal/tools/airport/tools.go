package airport

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/giantswarm/mcp-flights/internal/server"
	"github.com/giantswarm/mcp-flights/internal/tools"
)

// Resource URIs served by this package.
const (
	AllAirportsURI      = "airports://all"
	AirportTemplateURI  = "airports://{code}"
	airportURIPrefix    = "airports://"
	resourceContentType = "text/plain"
)

// RegisterAirportTools registers the airport lookup tools with the MCP server
func RegisterAirportTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// airport_search tool
	searchTool := mcp.NewTool("airport_search",
		mcp.WithDescription("Search airports by IATA code, name, city or country"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search text, at least 2 characters (e.g., \"london\", \"JFK\")"),
		),
	)

	s.AddTool(searchTool, tools.WrapWithAuditLogging("airport_search", handleAirportSearch, sc))

	// update_airports_database tool
	updateTool := mcp.NewTool("update_airports_database",
		mcp.WithDescription("Download the latest airport data and replace the local airport directory"),
	)

	s.AddTool(updateTool, tools.WrapWithAuditLogging("update_airports_database", handleUpdateAirports, sc))

	return nil
}

// RegisterAirportResources registers the airports:// resources with the MCP server
func RegisterAirportResources(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	allResource := mcp.NewResource(AllAirportsURI, "All airports",
		mcp.WithResourceDescription("Airport directory listing, sorted by name"),
		mcp.WithMIMEType(resourceContentType),
	)

	s.AddResource(allResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleAllAirports(ctx, request, sc)
	})

	codeTemplate := mcp.NewResourceTemplate(AirportTemplateURI, "Airport by code",
		mcp.WithTemplateDescription("Look up a single airport by its 3-letter IATA code"),
		mcp.WithTemplateMIMEType(resourceContentType),
	)

	s.AddResourceTemplate(codeTemplate, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleAirportByCode(ctx, request, sc)
	})

	return nil
}
