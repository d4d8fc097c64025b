package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/giantswarm/mcp-flights/internal/flights"
)

// NoFlightsFound is returned for an empty or missing result.
const NoFlightsFound = "No flights found for the given search criteria."

// FormatFlightResults renders up to maxResults offers. Fields the provider
// left empty are skipped rather than printed blank.
func FormatFlightResults(result *flights.SearchResult, tripType flights.TripType, maxResults int) string {
	if result == nil || len(result.Offers) == 0 {
		return NoFlightsFound
	}

	maxResults = EffectiveLimit(maxResults, DefaultMaxFlightResults)
	shown, warning := TruncateGeneric(result.Offers, maxResults)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Found %s", plural(len(result.Offers), "flight", "flights")))
	if result.PriceTrend != "" {
		b.WriteString(fmt.Sprintf(" (current price trend: %s)", result.PriceTrend))
	}
	b.WriteString(".\n")

	for i, offer := range shown {
		b.WriteString(fmt.Sprintf("\nFlight %d:\n", i+1))
		writeOffer(&b, offer)
	}

	if warning != nil {
		b.WriteString(fmt.Sprintf("\n... and %s not shown.\n", plural(warning.Omitted(), "more flight", "more flights")))
	}
	if tripType == flights.RoundTrip {
		b.WriteString("\nNote: prices shown are for the whole round trip.\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func writeOffer(b *strings.Builder, o flights.Offer) {
	if o.IsBest {
		b.WriteString("  ✓ BEST OPTION\n")
	}
	field := func(label, value string) {
		if value != "" {
			b.WriteString(fmt.Sprintf("  %s: %s\n", label, value))
		}
	}

	field("Airline", o.Carrier)
	field("Departure", o.Departure)
	field("Arrival", o.Arrival)
	field("Arrives ahead", o.ArrivalTimeAhead)
	field("Duration", o.Duration)
	if o.Stops != nil {
		field("Stops", formatStops(*o.Stops))
	}
	field("Delay", o.Delay)
	field("Price", o.Price)
}

func formatStops(n int) string {
	if n == 0 {
		return "Nonstop"
	}
	return fmt.Sprintf("%d", n)
}

// FormatTravelDates renders the result of get_travel_dates.
func FormatTravelDates(departure, ret time.Time, daysFromNow, tripLength int) string {
	return fmt.Sprintf(
		"Suggested travel dates:\n"+
			"  Departure: %s (%s from today)\n"+
			"  Return: %s (%s trip)\n\n"+
			"Use these with search_flights as departure_date=%q and return_date=%q.",
		departure.Format(flights.DateLayout), plural(daysFromNow, "day", "days"),
		ret.Format(flights.DateLayout), plural(tripLength, "day", "days"),
		departure.Format(flights.DateLayout), ret.Format(flights.DateLayout))
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, pluralForm)
}
