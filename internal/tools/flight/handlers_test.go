package flight

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/giantswarm/mcp-flights/internal/flights"
	"github.com/giantswarm/mcp-flights/internal/server"
	"github.com/giantswarm/mcp-flights/internal/tools"
	"github.com/giantswarm/mcp-flights/internal/tools/output"
	"github.com/giantswarm/mcp-flights/internal/tools/testdata"
)

var fixedNow = time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

func newServerContext(t *testing.T, provider flights.Provider) *server.ServerContext {
	t.Helper()
	dir := testdata.NewDirectory()
	sc, err := server.NewServerContext(context.Background(),
		server.WithDirectory(dir),
		server.WithFlightClient(flights.NewClient(provider, dir)),
		server.WithLogger(&testdata.MockLogger{}),
		server.WithClock(func() time.Time { return fixedNow }),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func callTool(t *testing.T, handler tools.ToolHandler, sc *server.ServerContext, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	request := mcp.CallToolRequest{}
	request.Params.Arguments = args
	result, err := handler(context.Background(), request, sc)
	require.NoError(t, err, "handlers report failures as tool results")
	require.NotNil(t, result)
	return result
}

func stops(n int) *int { return &n }

func sampleResult() *flights.SearchResult {
	return &flights.SearchResult{
		PriceTrend: "low",
		Offers: []flights.Offer{
			{
				Carrier:   "Delta",
				Departure: "8:00 AM on Sun, Jun 1",
				Arrival:   "4:30 PM on Sun, Jun 1",
				Duration:  "5 hr 30 min",
				Stops:     stops(0),
				Price:     "$289",
				IsBest:    true,
			},
			{
				Carrier:   "United",
				Departure: "11:15 AM on Sun, Jun 1",
				Arrival:   "9:02 PM on Sun, Jun 1",
				Duration:  "6 hr 47 min",
				Stops:     stops(1),
				Price:     "$312",
			},
		},
	}
}

func TestSearchFlights_OneWayHasSingleLeg(t *testing.T) {
	provider := &testdata.RecordingProvider{Result: sampleResult()}
	sc := newServerContext(t, provider)

	result := callTool(t, handleSearchFlights, sc, map[string]interface{}{
		"from_airport":   "LAX",
		"to_airport":     "JFK",
		"departure_date": "2025-06-01",
	})

	assert.False(t, result.IsError)
	requests := provider.Requests()
	require.Len(t, requests, 1)

	req := requests[0]
	assert.Equal(t, flights.OneWay, req.TripType)
	require.Len(t, req.Legs, 1)
	assert.Equal(t, "LAX→JFK on 2025-06-01", req.Legs[0].String())
	assert.Equal(t, flights.Passengers{Adults: 1}, req.Passengers)
	assert.Equal(t, flights.CabinEconomy, req.Cabin)

	text := tools.ResultText(result)
	assert.Contains(t, text, "Found 2 flights (current price trend: low).")
	assert.Contains(t, text, "✓ BEST OPTION")
	assert.NotContains(t, text, "whole round trip")
}

func TestSearchFlights_RoundTripHasMirroredLegs(t *testing.T) {
	provider := &testdata.RecordingProvider{Result: sampleResult()}
	sc := newServerContext(t, provider)

	result := callTool(t, handleSearchFlights, sc, map[string]interface{}{
		"from_airport":   "LAX",
		"to_airport":     "JFK",
		"departure_date": "2025-06-01",
		"return_date":    "2025-06-10",
		"adults":         float64(2),
		"children":       float64(1),
		"seat_class":     "premium-economy",
	})

	assert.False(t, result.IsError)
	requests := provider.Requests()
	require.Len(t, requests, 1)

	req := requests[0]
	assert.Equal(t, flights.RoundTrip, req.TripType)
	require.Len(t, req.Legs, 2)
	assert.Equal(t, "LAX→JFK on 2025-06-01", req.Legs[0].String())
	assert.Equal(t, "JFK→LAX on 2025-06-10", req.Legs[1].String())
	assert.Equal(t, flights.Passengers{Adults: 2, Children: 1}, req.Passengers)
	assert.Equal(t, flights.CabinPremiumEconomy, req.Cabin)

	assert.Contains(t, tools.ResultText(result), "prices shown are for the whole round trip")
}

func TestSearchFlights_ReturnBeforeDepartureSkipsProvider(t *testing.T) {
	provider := &testdata.MockProvider{}
	sc := newServerContext(t, provider)

	result := callTool(t, handleSearchFlights, sc, map[string]interface{}{
		"from_airport":   "LAX",
		"to_airport":     "JFK",
		"departure_date": "2025-06-10",
		"return_date":    "2025-06-01",
	})

	assert.True(t, result.IsError)
	assert.Contains(t, tools.ResultText(result), "before departure date")
	provider.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
	provider.AssertNumberOfCalls(t, "Search", 0)
}

func TestSearchFlights_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    map[string]interface{}
		wantMsg string
	}{
		{
			name:    "missing origin",
			args:    map[string]interface{}{"to_airport": "JFK", "departure_date": "2025-06-01"},
			wantMsg: "from_airport is required",
		},
		{
			name:    "missing departure date",
			args:    map[string]interface{}{"from_airport": "LAX", "to_airport": "JFK"},
			wantMsg: "departure_date is required",
		},
		{
			name:    "bad date format",
			args:    map[string]interface{}{"from_airport": "LAX", "to_airport": "JFK", "departure_date": "06/01/2025"},
			wantMsg: "YYYY-MM-DD",
		},
		{
			name:    "unknown airport",
			args:    map[string]interface{}{"from_airport": "LAX", "to_airport": "ZZZ", "departure_date": "2025-06-01"},
			wantMsg: "Unknown airport code \"ZZZ\"",
		},
		{
			name:    "malformed airport code",
			args:    map[string]interface{}{"from_airport": "LA1", "to_airport": "JFK", "departure_date": "2025-06-01"},
			wantMsg: "Invalid airport code",
		},
		{
			name: "zero adults",
			args: map[string]interface{}{
				"from_airport": "LAX", "to_airport": "JFK", "departure_date": "2025-06-01",
				"adults": float64(0),
			},
			wantMsg: "At least one adult",
		},
		{
			name: "negative infants",
			args: map[string]interface{}{
				"from_airport": "LAX", "to_airport": "JFK", "departure_date": "2025-06-01",
				"infants_on_lap": float64(-1),
			},
			wantMsg: "infants_on_lap cannot be negative",
		},
		{
			name: "fractional children",
			args: map[string]interface{}{
				"from_airport": "LAX", "to_airport": "JFK", "departure_date": "2025-06-01",
				"children": 1.5,
			},
			wantMsg: "children must be a whole number",
		},
		{
			name: "unknown cabin",
			args: map[string]interface{}{
				"from_airport": "LAX", "to_airport": "JFK", "departure_date": "2025-06-01",
				"seat_class": "steerage",
			},
			wantMsg: "Invalid seat class",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &testdata.RecordingProvider{}
			sc := newServerContext(t, provider)

			result := callTool(t, handleSearchFlights, sc, tt.args)

			assert.True(t, result.IsError)
			assert.Contains(t, tools.ResultText(result), tt.wantMsg)
			assert.Empty(t, provider.Requests(), "provider must not be called")
		})
	}
}

func TestSearchFlights_ProviderErrorBecomesText(t *testing.T) {
	provider := &testdata.MockProvider{}
	provider.On("Search", mock.Anything, mock.Anything).Return(nil, errors.New("upstream returned 503"))
	sc := newServerContext(t, provider)

	result := callTool(t, handleSearchFlights, sc, map[string]interface{}{
		"from_airport":   "LAX",
		"to_airport":     "JFK",
		"departure_date": "2025-06-01",
	})

	assert.True(t, result.IsError)
	text := tools.ResultText(result)
	assert.True(t, strings.HasPrefix(text, "Error: "), "got %q", text)
	assert.Contains(t, text, "upstream returned 503")
	provider.AssertNumberOfCalls(t, "Search", 1)
}

func TestSearchFlights_NoOffers(t *testing.T) {
	for _, returnDate := range []string{"", "2025-06-10"} {
		provider := &testdata.RecordingProvider{Result: &flights.SearchResult{}}
		sc := newServerContext(t, provider)

		result := callTool(t, handleSearchFlights, sc, map[string]interface{}{
			"from_airport":   "LAX",
			"to_airport":     "JFK",
			"departure_date": "2025-06-01",
			"return_date":    returnDate,
		})

		assert.False(t, result.IsError)
		assert.Equal(t, output.NoFlightsFound, tools.ResultText(result))
	}
}

func TestSearchFlights_RespectsMaxFlightResults(t *testing.T) {
	provider := &testdata.RecordingProvider{Result: sampleResult()}
	dir := testdata.NewDirectory()
	cfg := server.NewDefaultConfig()
	cfg.Output.MaxFlightResults = 1
	sc, err := server.NewServerContext(context.Background(),
		server.WithDirectory(dir),
		server.WithFlightClient(flights.NewClient(provider, dir)),
		server.WithLogger(&testdata.MockLogger{}),
		server.WithConfig(cfg),
	)
	require.NoError(t, err)

	result := callTool(t, handleSearchFlights, sc, map[string]interface{}{
		"from_airport":   "LAX",
		"to_airport":     "JFK",
		"departure_date": "2025-06-01",
	})

	text := tools.ResultText(result)
	assert.Contains(t, text, "Flight 1:")
	assert.NotContains(t, text, "Flight 2:")
	assert.Contains(t, text, "... and 1 more flight not shown.")
}

func TestGetTravelDates(t *testing.T) {
	sc := newServerContext(t, &testdata.RecordingProvider{})

	tests := []struct {
		name          string
		args          map[string]interface{}
		wantDeparture string
		wantReturn    string
	}{
		{
			name:          "explicit 30 and 7",
			args:          map[string]interface{}{"days_from_now": float64(30), "trip_length": float64(7)},
			wantDeparture: "Departure: 2025-01-31",
			wantReturn:    "Return: 2025-02-07",
		},
		{
			name:          "configured defaults",
			args:          map[string]interface{}{},
			wantDeparture: "Departure: 2025-01-31",
			wantReturn:    "Return: 2025-02-07",
		},
		{
			name:          "same day trip",
			args:          map[string]interface{}{"days_from_now": float64(0), "trip_length": float64(0)},
			wantDeparture: "Departure: 2025-01-01",
			wantReturn:    "Return: 2025-01-01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := callTool(t, handleGetTravelDates, sc, tt.args)
			assert.False(t, result.IsError)
			text := tools.ResultText(result)
			assert.Contains(t, text, tt.wantDeparture)
			assert.Contains(t, text, tt.wantReturn)
		})
	}
}

func TestGetTravelDates_RejectsNegative(t *testing.T) {
	sc := newServerContext(t, &testdata.RecordingProvider{})

	result := callTool(t, handleGetTravelDates, sc, map[string]interface{}{"days_from_now": float64(-3)})
	assert.True(t, result.IsError)
	assert.Contains(t, tools.ResultText(result), "days_from_now cannot be negative")

	result = callTool(t, handleGetTravelDates, sc, map[string]interface{}{"trip_length": "two"})
	assert.True(t, result.IsError)
	assert.Contains(t, tools.ResultText(result), "trip_length must be a whole number")
}

func TestRecommendCabin(t *testing.T) {
	tests := []struct {
		purpose string
		budget  string
		want    flights.CabinClass
	}{
		{"business", "luxury", flights.CabinBusiness},
		{"Business", "LUXURY", flights.CabinBusiness},
		{"vacation", "luxury", flights.CabinPremiumEconomy},
		{"business", "moderate", flights.CabinEconomy},
		{"vacation", "budget", flights.CabinEconomy},
		{"vacation", "unheard-of", flights.CabinEconomy},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, recommendCabin(tt.purpose, tt.budget), "purpose=%s budget=%s", tt.purpose, tt.budget)
	}
}

type recordingObserver struct {
	mu    sync.Mutex
	steps []float64
	total []float64
}

func (o *recordingObserver) Progress(_ context.Context, progress, total float64, _ string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.steps = append(o.steps, progress)
	o.total = append(o.total, total)
}

func TestCreateTravelPlan_ProgressIsAdvisory(t *testing.T) {
	args := map[string]interface{}{
		"from_airport":   "LAX",
		"to_airport":     "HND",
		"departure_date": "2025-06-01",
		"return_date":    "2025-06-14",
		"trip_purpose":   "business",
		"budget_level":   "luxury",
		"interests":      "food, museums",
	}

	provider := &testdata.RecordingProvider{Result: sampleResult()}
	sc := newServerContext(t, provider)

	observer := &recordingObserver{}
	withProgress := createTravelPlan(context.Background(), args, sc, observer)
	withoutProgress := createTravelPlan(context.Background(), args, sc, tools.NoopObserver{})

	assert.Equal(t, []float64{0, 1, 2}, observer.steps)
	assert.Equal(t, []float64{2, 2, 2}, observer.total)
	assert.Equal(t, tools.ResultText(withoutProgress), tools.ResultText(withProgress))

	requests := provider.Requests()
	require.Len(t, requests, 2)
	assert.Equal(t, flights.CabinBusiness, requests[0].Cabin)
	assert.Equal(t, flights.RoundTrip, requests[0].TripType)

	text := tools.ResultText(withProgress)
	assert.Contains(t, text, "# Travel Plan: LAX to HND")
	assert.Contains(t, text, "- Trip Type: round-trip")
	assert.Contains(t, text, "- Return: 2025-06-14")
	assert.Contains(t, text, "- Suggested Cabin: Business")
	assert.Contains(t, text, "## Flight Options")
	assert.Contains(t, text, "Found 2 flights")
	assert.Contains(t, text, "Business or first-class seats recommended")
	assert.Contains(t, text, "- For food:")
	assert.Contains(t, text, "- For museums:")
}

func TestCreateTravelPlan_OneWayDefaults(t *testing.T) {
	provider := &testdata.RecordingProvider{}
	sc := newServerContext(t, provider)

	result := callTool(t, handleCreateTravelPlan, sc, map[string]interface{}{
		"from_airport":   "jfk",
		"to_airport":     "cdg",
		"departure_date": "2025-09-01",
	})

	assert.False(t, result.IsError)
	text := tools.ResultText(result)
	assert.Contains(t, text, "# Travel Plan: JFK to CDG")
	assert.Contains(t, text, "- Trip Type: one-way")
	assert.NotContains(t, text, "- Return:")
	assert.Contains(t, text, "- Purpose: Vacation")
	assert.Contains(t, text, "- Budget Level: Moderate")
	assert.Contains(t, text, output.NoFlightsFound)
	assert.NotContains(t, text, "Interest-Based Recommendations")

	requests := provider.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, flights.CabinEconomy, requests[0].Cabin)
}

func TestCreateTravelPlan_ProviderFailureIsEmbedded(t *testing.T) {
	provider := &testdata.RecordingProvider{Err: errors.New("connection reset")}
	sc := newServerContext(t, provider)

	result := createTravelPlan(context.Background(), map[string]interface{}{
		"from_airport":   "LAX",
		"to_airport":     "LHR",
		"departure_date": "2025-06-01",
	}, sc, tools.NoopObserver{})

	assert.False(t, result.IsError)
	assert.Contains(t, tools.ResultText(result), "Error: flight search via recording failed: connection reset")
}

func TestCreateTravelPlan_ValidationFailureStopsPlan(t *testing.T) {
	provider := &testdata.RecordingProvider{}
	sc := newServerContext(t, provider)
	observer := &recordingObserver{}

	result := createTravelPlan(context.Background(), map[string]interface{}{
		"from_airport":   "LAX",
		"to_airport":     "LHR",
		"departure_date": "2025-06-10",
		"return_date":    "2025-06-01",
	}, sc, observer)

	assert.True(t, result.IsError)
	assert.Contains(t, tools.ResultText(result), "before departure date")
	assert.Equal(t, []float64{0}, observer.steps)
	assert.Empty(t, provider.Requests())

	result = createTravelPlan(context.Background(), map[string]interface{}{"from_airport": "LAX"}, sc, observer)
	assert.True(t, result.IsError)
	assert.Equal(t, "to_airport is required", tools.ResultText(result))
}
