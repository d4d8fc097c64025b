package flights

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date format accepted and produced by this package.
const DateLayout = "2006-01-02"

// CabinClass is the fare tier requested for a search.
type CabinClass string

// Supported cabin classes.
const (
	CabinEconomy        CabinClass = "economy"
	CabinPremiumEconomy CabinClass = "premium_economy"
	CabinBusiness       CabinClass = "business"
	CabinFirst          CabinClass = "first"
)

// CabinClasses lists every supported cabin class in display order.
var CabinClasses = []CabinClass{CabinEconomy, CabinPremiumEconomy, CabinBusiness, CabinFirst}

// ParseCabinClass normalizes s into a CabinClass. The hyphenated spelling
// "premium-economy" is accepted as an alias. An empty string means economy.
func ParseCabinClass(s string) (CabinClass, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.ReplaceAll(normalized, "-", "_")
	if normalized == "" {
		return CabinEconomy, nil
	}
	for _, c := range CabinClasses {
		if CabinClass(normalized) == c {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown cabin class %q", s)
}

// TripType is derived from the presence of a return date.
type TripType string

// Trip types.
const (
	OneWay    TripType = "one-way"
	RoundTrip TripType = "round-trip"
)

// Passengers holds the passenger counts of a trip.
type Passengers struct {
	Adults        int
	Children      int
	InfantsInSeat int
	InfantsOnLap  int
}

// Total returns the number of travellers.
func (p Passengers) Total() int {
	return p.Adults + p.Children + p.InfantsInSeat + p.InfantsOnLap
}

// Leg is one directional flight segment.
type Leg struct {
	Origin      string
	Destination string
	Date        time.Time
}

// String renders the leg as "LAX→JFK on 2025-06-01".
func (l Leg) String() string {
	return fmt.Sprintf("%s→%s on %s", l.Origin, l.Destination, l.Date.Format(DateLayout))
}

// TripRequest is a validated search. It is built per call and never stored.
type TripRequest struct {
	Origin        string
	Destination   string
	DepartureDate time.Time
	// ReturnDate is nil for one-way trips.
	ReturnDate *time.Time
	Passengers Passengers
	Cabin      CabinClass
}

// TripType reports whether the request is a one-way or round trip.
func (r *TripRequest) TripType() TripType {
	if r.ReturnDate != nil {
		return RoundTrip
	}
	return OneWay
}

// Legs returns the outbound leg and, for round trips, the mirrored inbound leg.
func (r *TripRequest) Legs() []Leg {
	legs := []Leg{{Origin: r.Origin, Destination: r.Destination, Date: r.DepartureDate}}
	if r.ReturnDate != nil {
		legs = append(legs, Leg{Origin: r.Destination, Destination: r.Origin, Date: *r.ReturnDate})
	}
	return legs
}

// ProviderRequest is the shape handed to a Provider.
type ProviderRequest struct {
	Legs       []Leg
	Passengers Passengers
	Cabin      CabinClass
	TripType   TripType
}

// Offer is a single priced flight option. Empty strings and nil pointers mark
// fields the provider did not supply.
type Offer struct {
	Carrier          string
	Departure        string
	Arrival          string
	ArrivalTimeAhead string
	Duration         string
	Stops            *int
	Price            string
	Delay            string
	IsBest           bool
}

// SearchResult is the normalized provider response.
type SearchResult struct {
	Offers []Offer
	// PriceTrend is the provider's assessment of current prices, such as "low".
	PriceTrend string
}

// Provider performs the actual flight search.
type Provider interface {
	// Name identifies the provider in logs, metrics and errors.
	Name() string

	// Search runs one search. Implementations may try several retrieval
	// strategies internally; callers treat it as a single call.
	Search(ctx context.Context, req ProviderRequest) (*SearchResult, error)
}
