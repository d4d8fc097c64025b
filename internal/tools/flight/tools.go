package flight

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/giantswarm/mcp-flights/internal/server"
	"github.com/giantswarm/mcp-flights/internal/tools"
)

// RegisterFlightTools registers the flight search and trip planning tools with the MCP server
func RegisterFlightTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// search_flights tool
	searchTool := mcp.NewTool("search_flights",
		mcp.WithDescription("Search for one-way or round-trip flights between two airports. "+
			"Leave return_date empty for a one-way trip."),
		mcp.WithString("from_airport",
			mcp.Required(),
			mcp.Description("Departure airport IATA code (e.g., \"LAX\", \"JFK\")"),
		),
		mcp.WithString("to_airport",
			mcp.Required(),
			mcp.Description("Arrival airport IATA code (e.g., \"LHR\", \"HND\")"),
		),
		mcp.WithString("departure_date",
			mcp.Required(),
			mcp.Description("Departure date in YYYY-MM-DD format"),
		),
		mcp.WithString("return_date",
			mcp.Description("Return date in YYYY-MM-DD format (optional, omit for one-way trips)"),
		),
		mcp.WithNumber("adults",
			mcp.Description("Number of adult passengers (default: 1)"),
		),
		mcp.WithNumber("children",
			mcp.Description("Number of child passengers (default: 0)"),
		),
		mcp.WithNumber("infants_in_seat",
			mcp.Description("Number of infants with their own seat (default: 0)"),
		),
		mcp.WithNumber("infants_on_lap",
			mcp.Description("Number of infants travelling on a lap (default: 0)"),
		),
		mcp.WithString("seat_class",
			mcp.Description("Cabin class: economy, premium_economy, business or first (default: economy)"),
		),
	)

	s.AddTool(searchTool, tools.WrapWithAuditLogging("search_flights", handleSearchFlights, sc))

	// get_travel_dates tool
	datesTool := mcp.NewTool("get_travel_dates",
		mcp.WithDescription("Suggest departure and return dates relative to today"),
		mcp.WithNumber("days_from_now",
			mcp.Description("Days from today until departure (default: 30)"),
		),
		mcp.WithNumber("trip_length",
			mcp.Description("Length of the trip in days (default: 7)"),
		),
	)

	s.AddTool(datesTool, tools.WrapWithAuditLogging("get_travel_dates", handleGetTravelDates, sc))

	// create_travel_plan tool
	planTool := mcp.NewTool("create_travel_plan",
		mcp.WithDescription("Create a travel plan with flight options and recommendations. "+
			"Reports progress when the client supplies a progress token."),
		mcp.WithString("from_airport",
			mcp.Required(),
			mcp.Description("Departure airport IATA code"),
		),
		mcp.WithString("to_airport",
			mcp.Required(),
			mcp.Description("Arrival airport IATA code"),
		),
		mcp.WithString("departure_date",
			mcp.Required(),
			mcp.Description("Departure date in YYYY-MM-DD format"),
		),
		mcp.WithString("return_date",
			mcp.Description("Return date in YYYY-MM-DD format (optional, omit for one-way trips)"),
		),
		mcp.WithString("trip_purpose",
			mcp.Description("Purpose of the trip, such as vacation, business or family visit (default: vacation)"),
		),
		mcp.WithString("budget_level",
			mcp.Description("Budget level: budget, moderate or luxury (default: moderate)"),
		),
		mcp.WithString("interests",
			mcp.Description("Comma-separated list of interests for activity recommendations"),
		),
	)

	s.AddTool(planTool, tools.WrapWithAuditLogging("create_travel_plan", handleCreateTravelPlan, sc))

	return nil
}
