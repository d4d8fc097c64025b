package flight

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/giantswarm/mcp-flights/internal/flights"
	"github.com/giantswarm/mcp-flights/internal/instrumentation"
	"github.com/giantswarm/mcp-flights/internal/logging"
	"github.com/giantswarm/mcp-flights/internal/server"
	"github.com/giantswarm/mcp-flights/internal/tools"
	"github.com/giantswarm/mcp-flights/internal/tools/output"
)

// Trip purposes understood by create_travel_plan.
const (
	defaultTripPurpose = "vacation"
	purposeBusiness    = "business"
)

// handleSearchFlights handles flight search requests
func handleSearchFlights(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	params, err := searchParamsFromArgs(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	text, failure := runSearch(ctx, sc, params)
	if failure != nil {
		return mcp.NewToolResultError(text), nil
	}
	return mcp.NewToolResultText(text), nil
}

// handleGetTravelDates handles travel date suggestions
func handleGetTravelDates(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	cfg := sc.Config().Flights

	daysFromNow, err := tools.IntArg(args, "days_from_now", cfg.DefaultAdvanceDays)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	tripLength, err := tools.IntArg(args, "trip_length", cfg.DefaultTripLengthDays)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	departure, ret, err := flights.TravelDates(sc.Now(), daysFromNow, tripLength)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(output.FormatTravelDates(departure, ret, daysFromNow, tripLength)), nil
}

// handleCreateTravelPlan handles travel plan creation
func handleCreateTravelPlan(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	observer := tools.NewProgressObserver(ctx, request, sc.Logger())
	return createTravelPlan(ctx, request.GetArguments(), sc, observer), nil
}

// createTravelPlan searches flights in the cabin suited to the trip and renders
// the plan. Progress goes to observer in three steps; the result does not
// depend on whether anyone is listening.
func createTravelPlan(ctx context.Context, args map[string]interface{}, sc *server.ServerContext, observer tools.ProgressObserver) *mcp.CallToolResult {
	for _, key := range []string{"from_airport", "to_airport", "departure_date"} {
		if tools.StringArg(args, key) == "" {
			return mcp.NewToolResultError(key + " is required")
		}
	}

	purpose := tools.StringArgOrDefault(args, "trip_purpose", defaultTripPurpose)
	budget := tools.StringArgOrDefault(args, "budget_level", output.BudgetModerate)
	cabin := recommendCabin(purpose, budget)

	params := flights.SearchParams{
		Origin:        tools.StringArg(args, "from_airport"),
		Destination:   tools.StringArg(args, "to_airport"),
		DepartureDate: tools.StringArg(args, "departure_date"),
		ReturnDate:    tools.StringArg(args, "return_date"),
		Adults:        1,
		SeatClass:     string(cabin),
	}

	observer.Progress(ctx, 0, 2, "Starting travel plan creation...")

	flightsText, failure := runSearch(ctx, sc, params)
	var verr *flights.ValidationError
	if errors.As(failure, &verr) {
		return mcp.NewToolResultError(flightsText)
	}

	observer.Progress(ctx, 1, 2, "Creating travel recommendations...")

	tripType := flights.OneWay
	if params.ReturnDate != "" {
		tripType = flights.RoundTrip
	}

	plan := output.FormatTravelPlan(output.TravelPlan{
		Origin:        strings.ToUpper(params.Origin),
		Destination:   strings.ToUpper(params.Destination),
		TripType:      string(tripType),
		DepartureDate: params.DepartureDate,
		ReturnDate:    params.ReturnDate,
		Purpose:       purpose,
		Budget:        budget,
		Cabin:         string(cabin),
		Interests:     output.ParseInterests(tools.StringArg(args, "interests")),
		FlightsText:   flightsText,
	})

	observer.Progress(ctx, 2, 2, "Travel plan creation complete!")

	return mcp.NewToolResultText(plan)
}

// recommendCabin picks a cabin class from the trip purpose and budget level.
// Only luxury budgets move out of economy; business trips on a luxury budget
// get business class.
func recommendCabin(purpose, budget string) flights.CabinClass {
	if !strings.EqualFold(budget, output.BudgetLuxury) {
		return flights.CabinEconomy
	}
	if strings.EqualFold(purpose, purposeBusiness) {
		return flights.CabinBusiness
	}
	return flights.CabinPremiumEconomy
}

// searchParamsFromArgs reads the search_flights arguments. Only presence and
// type are checked here; flights.Client validates the values.
func searchParamsFromArgs(args map[string]interface{}) (flights.SearchParams, error) {
	params := flights.SearchParams{
		Origin:        tools.StringArg(args, "from_airport"),
		Destination:   tools.StringArg(args, "to_airport"),
		DepartureDate: tools.StringArg(args, "departure_date"),
		ReturnDate:    tools.StringArg(args, "return_date"),
		SeatClass:     tools.StringArgOrDefault(args, "seat_class", string(flights.CabinEconomy)),
	}

	if params.Origin == "" {
		return params, errors.New("from_airport is required")
	}
	if params.Destination == "" {
		return params, errors.New("to_airport is required")
	}
	if params.DepartureDate == "" {
		return params, errors.New("departure_date is required")
	}

	counts := []struct {
		key string
		def int
		dst *int
	}{
		{"adults", 1, &params.Adults},
		{"children", 0, &params.Children},
		{"infants_in_seat", 0, &params.InfantsInSeat},
		{"infants_on_lap", 0, &params.InfantsOnLap},
	}
	for _, c := range counts {
		n, err := tools.IntArg(args, c.key, c.def)
		if err != nil {
			return params, err
		}
		*c.dst = n
	}

	return params, nil
}

// runSearch executes a search and renders the outcome. failure is nil on
// success and otherwise holds the *flights.ValidationError or
// *flights.ProviderError the text describes.
func runSearch(ctx context.Context, sc *server.ServerContext, params flights.SearchParams) (text string, failure error) {
	client := sc.FlightClient()

	ctx, span := instrumentation.StartProviderSpan(ctx, client.ProviderName(),
		strings.ToUpper(params.Origin), strings.ToUpper(params.Destination))
	defer span.End()

	result, trip, err := client.Search(ctx, params)
	if err != nil {
		instrumentation.SetSpanError(span, err)

		var verr *flights.ValidationError
		if errors.As(err, &verr) {
			return verr.Message, err
		}

		sc.Logger().Warn("Flight search failed",
			logging.Route(strings.ToUpper(params.Origin), strings.ToUpper(params.Destination)),
			logging.RequestID(tools.RequestIDFromContext(ctx)),
			logging.Err(err))
		return fmt.Sprintf("Error: %v", err), err
	}

	span.SetAttributes(instrumentation.NewSpanAttributeBuilder().
		WithTripType(string(trip.TripType())).
		WithCabin(string(trip.Cabin)).
		WithPartySize(trip.Passengers.Total()).
		WithOfferCount(len(result.Offers)).
		Build()...)
	instrumentation.SetSpanSuccess(span)

	return output.FormatFlightResults(result, trip.TripType(), sc.OutputConfig().MaxFlightResults), nil
}
