package prompts

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func promptRequest(name string, args map[string]string) mcp.GetPromptRequest {
	request := mcp.GetPromptRequest{}
	request.Params.Name = name
	request.Params.Arguments = args
	return request
}

func promptText(t *testing.T, result *mcp.GetPromptResult) string {
	t.Helper()
	require.Len(t, result.Messages, 1)
	assert.Equal(t, mcp.RoleUser, result.Messages[0].Role)

	content, ok := result.Messages[0].Content.(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Messages[0].Content)
	return content.Text
}

func TestFlightSearchPrompt(t *testing.T) {
	result, err := handleFlightSearchPrompt(context.Background(), promptRequest(FlightSearchPrompt, map[string]string{
		"from_airport": "LAX",
		"to_airport":   "JFK",
		"date":         "2025-06-01",
	}))
	require.NoError(t, err)

	want := "Please search for flights from LAX to JFK on 2025-06-01.\n\n" +
		"I'd like to see options for departure times, prices, and any recommendations you have about the best value flights."
	assert.Equal(t, want, promptText(t, result))
}

func TestTravelPlanPrompt(t *testing.T) {
	result, err := handleTravelPlanPrompt(context.Background(), promptRequest(TravelPlanPrompt, map[string]string{
		"from_airport": "SFO",
		"to_airport":   "NRT",
		"dates":        "2025-04-01 to 2025-04-10",
		"purpose":      "vacation",
		"interests":    "food, temples",
	}))
	require.NoError(t, err)

	text := promptText(t, result)
	assert.Contains(t, text, "my trip from SFO to NRT on 2025-04-01 to 2025-04-10.")
	assert.Contains(t, text, "Trip Purpose: vacation\nInterests: food, temples\n")
	assert.Contains(t, text, "6. Any travel tips specific to my destination")
	assert.True(t, strings.HasSuffix(text, "Thank you!"))
}

func TestPrompts_MissingArguments(t *testing.T) {
	_, err := handleFlightSearchPrompt(context.Background(), promptRequest(FlightSearchPrompt, map[string]string{
		"from_airport": "LAX",
		"to_airport":   " ",
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "to_airport, date")

	_, err = handleTravelPlanPrompt(context.Background(), promptRequest(TravelPlanPrompt, nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "from_airport")
}

func TestRegisterPrompts(t *testing.T) {
	mcpSrv := mcpserver.NewMCPServer("test", "0.0.1", mcpserver.WithPromptCapabilities(false))
	assert.NoError(t, RegisterPrompts(mcpSrv))
}
