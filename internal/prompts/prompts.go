package prompts

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// Prompt names.
const (
	FlightSearchPrompt = "flight_search_prompt"
	TravelPlanPrompt   = "travel_plan_prompt"
)

const flightSearchTemplate = `Please search for flights from %s to %s on %s.

I'd like to see options for departure times, prices, and any recommendations you have about the best value flights.`

const travelPlanTemplate = `Please create a comprehensive travel plan for my trip from %s to %s on %s.

Trip Purpose: %s
Interests: %s

I'd like information about:
1. Flight options and recommendations
2. Accommodation suggestions
3. Activities and attractions based on my interests
4. Local transportation options
5. Budget considerations
6. Any travel tips specific to my destination

Thank you!`

// RegisterPrompts registers all prompts with the MCP server.
func RegisterPrompts(s *mcpserver.MCPServer) error {
	flightSearch := mcp.NewPrompt(FlightSearchPrompt,
		mcp.WithPromptDescription("Create a prompt for searching flights between two airports on a specific date"),
		mcp.WithArgument("from_airport",
			mcp.ArgumentDescription("Departure airport code"),
			mcp.RequiredArgument(),
		),
		mcp.WithArgument("to_airport",
			mcp.ArgumentDescription("Arrival airport code"),
			mcp.RequiredArgument(),
		),
		mcp.WithArgument("date",
			mcp.ArgumentDescription("Travel date in YYYY-MM-DD format"),
			mcp.RequiredArgument(),
		),
	)
	s.AddPrompt(flightSearch, handleFlightSearchPrompt)

	travelPlan := mcp.NewPrompt(TravelPlanPrompt,
		mcp.WithPromptDescription("Create a prompt for generating a comprehensive travel plan"),
		mcp.WithArgument("from_airport",
			mcp.ArgumentDescription("Departure airport code"),
			mcp.RequiredArgument(),
		),
		mcp.WithArgument("to_airport",
			mcp.ArgumentDescription("Arrival airport code"),
			mcp.RequiredArgument(),
		),
		mcp.WithArgument("dates",
			mcp.ArgumentDescription(`Travel dates, for example "2025-06-01 to 2025-06-08"`),
			mcp.RequiredArgument(),
		),
		mcp.WithArgument("purpose",
			mcp.ArgumentDescription("Purpose of the trip, for example vacation or business"),
			mcp.RequiredArgument(),
		),
		mcp.WithArgument("interests",
			mcp.ArgumentDescription("Comma-separated list of interests"),
			mcp.RequiredArgument(),
		),
	)
	s.AddPrompt(travelPlan, handleTravelPlanPrompt)

	return nil
}

func handleFlightSearchPrompt(_ context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	args, err := requireArguments(request.Params.Arguments, "from_airport", "to_airport", "date")
	if err != nil {
		return nil, err
	}

	text := fmt.Sprintf(flightSearchTemplate, args[0], args[1], args[2])
	return userPrompt("Flight search request", text), nil
}

func handleTravelPlanPrompt(_ context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	args, err := requireArguments(request.Params.Arguments, "from_airport", "to_airport", "dates", "purpose", "interests")
	if err != nil {
		return nil, err
	}

	text := fmt.Sprintf(travelPlanTemplate, args[0], args[1], args[2], args[3], args[4])
	return userPrompt("Travel plan request", text), nil
}

// requireArguments returns the named arguments in order, trimmed.
func requireArguments(arguments map[string]string, names ...string) ([]string, error) {
	values := make([]string, 0, len(names))
	var missing []string
	for _, name := range names {
		value := strings.TrimSpace(arguments[name])
		if value == "" {
			missing = append(missing, name)
		}
		values = append(values, value)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required prompt arguments: %s", strings.Join(missing, ", "))
	}
	return values, nil
}

func userPrompt(description, text string) *mcp.GetPromptResult {
	return mcp.NewGetPromptResult(description, []mcp.PromptMessage{
		mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
	})
}
