package flights

import (
	"strings"
	"time"

	"github.com/giantswarm/mcp-flights/internal/airports"
)

// SearchParams are the raw search inputs as received from a caller.
type SearchParams struct {
	Origin        string
	Destination   string
	DepartureDate string
	// ReturnDate is empty for one-way trips.
	ReturnDate    string
	Adults        int
	Children      int
	InfantsInSeat int
	InfantsOnLap  int
	SeatClass     string
}

// AirportLookup is the part of the airport directory used for validation.
type AirportLookup interface {
	Lookup(code string) (airports.Record, bool)
	Len() int
}

// BuildTripRequest validates params and returns the trip to search for.
// Checks run in a fixed order so the first problem is reported: dates, date
// order, airport codes, passenger counts, then cabin class.
//
// Airport codes are checked against dir only when it holds entries, so a cold
// cache does not reject every search. A nil dir skips the check too.
func BuildTripRequest(params SearchParams, dir AirportLookup) (*TripRequest, error) {
	departure, err := parseDate(params.DepartureDate)
	if err != nil {
		return nil, invalid("departure_date",
			"Invalid departure date %q. Please use YYYY-MM-DD format.", params.DepartureDate)
	}

	var returnDate *time.Time
	if strings.TrimSpace(params.ReturnDate) != "" {
		ret, err := parseDate(params.ReturnDate)
		if err != nil {
			return nil, invalid("return_date",
				"Invalid return date %q. Please use YYYY-MM-DD format.", params.ReturnDate)
		}
		if ret.Before(departure) {
			return nil, invalid("return_date",
				"Return date %s is before departure date %s.",
				ret.Format(DateLayout), departure.Format(DateLayout))
		}
		returnDate = &ret
	}

	origin := airports.NormalizeCode(params.Origin)
	destination := airports.NormalizeCode(params.Destination)
	if err := checkAirport("from_airport", origin, params.Origin, dir); err != nil {
		return nil, err
	}
	if err := checkAirport("to_airport", destination, params.Destination, dir); err != nil {
		return nil, err
	}

	if params.Adults < 1 {
		return nil, invalid("adults", "At least one adult passenger is required.")
	}
	counts := []struct {
		field string
		n     int
	}{
		{"children", params.Children},
		{"infants_in_seat", params.InfantsInSeat},
		{"infants_on_lap", params.InfantsOnLap},
	}
	for _, c := range counts {
		if c.n < 0 {
			return nil, invalid(c.field, "Passenger count %s cannot be negative.", c.field)
		}
	}

	cabin, err := ParseCabinClass(params.SeatClass)
	if err != nil {
		names := make([]string, len(CabinClasses))
		for i, c := range CabinClasses {
			names[i] = string(c)
		}
		return nil, invalid("seat_class",
			"Invalid seat class %q. Must be one of: %s", params.SeatClass, strings.Join(names, ", "))
	}

	return &TripRequest{
		Origin:        origin,
		Destination:   destination,
		DepartureDate: departure,
		ReturnDate:    returnDate,
		Passengers: Passengers{
			Adults:        params.Adults,
			Children:      params.Children,
			InfantsInSeat: params.InfantsInSeat,
			InfantsOnLap:  params.InfantsOnLap,
		},
		Cabin: cabin,
	}, nil
}

func checkAirport(field, code, raw string, dir AirportLookup) error {
	if !airports.ValidCode(code) {
		return invalid(field, "Invalid airport code %q. Use a 3-letter IATA code such as LAX.", raw)
	}
	if dir == nil || dir.Len() == 0 {
		return nil
	}
	if _, ok := dir.Lookup(code); !ok {
		return invalid(field,
			"Unknown airport code %q. Use airport_search to find the right code.", code)
	}
	return nil
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}
