package googleflights

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	gflights "github.com/gilby125/google-flights-api/flights"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"

	"github.com/giantswarm/mcp-flights/internal/flights"
	"github.com/giantswarm/mcp-flights/internal/logging"
)

// ProviderName identifies this provider in logs and errors.
const ProviderName = "google-flights"

// offerSource is the part of *gflights.Session used by Provider.
type offerSource interface {
	GetOffers(ctx context.Context, args gflights.Args) ([]gflights.FullOffer, *gflights.PriceRange, error)
}

// Provider searches Google Flights.
type Provider struct {
	mu         sync.Mutex
	session    offerSource
	newSession func() (offerSource, error)

	currency currency.Unit
	lang     language.Tag
	logger   *slog.Logger
}

// Option configures a Provider.
type Option func(*Provider) error

// WithCurrency sets the ISO 4217 currency prices are requested in.
func WithCurrency(code string) Option {
	return func(p *Provider) error {
		unit, err := currency.ParseISO(code)
		if err != nil {
			return fmt.Errorf("invalid currency %q: %w", code, err)
		}
		p.currency = unit
		return nil
	}
}

// WithLanguage sets the BCP 47 language used for airline and airport names.
func WithLanguage(tag string) Option {
	return func(p *Provider) error {
		parsed, err := language.Parse(tag)
		if err != nil {
			return fmt.Errorf("invalid language %q: %w", tag, err)
		}
		p.lang = parsed
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Provider) error {
		p.logger = logger
		return nil
	}
}

// withSource injects a fixed offer source for testing.
func withSource(src offerSource) Option {
	return func(p *Provider) error {
		p.session = src
		return nil
	}
}

// New creates a Provider. No network traffic happens until the first search.
func New(opts ...Option) (*Provider, error) {
	p := &Provider{
		newSession: func() (offerSource, error) {
			s, err := gflights.New()
			if err != nil {
				return nil, err
			}
			return s, nil
		},
		currency: currency.USD,
		lang:     language.English,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Name implements flights.Provider.
func (p *Provider) Name() string {
	return ProviderName
}

// Search implements flights.Provider.
func (p *Provider) Search(ctx context.Context, req flights.ProviderRequest) (*flights.SearchResult, error) {
	if len(req.Legs) == 0 {
		return nil, fmt.Errorf("search request has no legs")
	}

	src, err := p.source()
	if err != nil {
		return nil, fmt.Errorf("creating google flights session: %w", err)
	}

	args := buildArgs(req, p.currency, p.lang)
	offers, priceRange, err := src.GetOffers(ctx, args)
	if err != nil {
		return nil, err
	}

	p.logger.Debug("Received offers",
		logging.Provider(ProviderName),
		logging.Route(req.Legs[0].Origin, req.Legs[0].Destination),
		logging.Count(len(offers)))

	itineraries := make([]itinerary, 0, len(offers))
	for _, o := range offers {
		itineraries = append(itineraries, fromFullOffer(o))
	}

	var low, high float64
	if priceRange != nil {
		low, high = priceRange.Low, priceRange.High
	}
	return buildResult(itineraries, low, high, p.currency.String()), nil
}

func (p *Provider) source() (offerSource, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.session != nil {
		return p.session, nil
	}
	s, err := p.newSession()
	if err != nil {
		return nil, err
	}
	p.session = s
	return s, nil
}

func buildArgs(req flights.ProviderRequest, unit currency.Unit, lang language.Tag) gflights.Args {
	outbound := req.Legs[0]
	returnDate := outbound.Date
	tripType := gflights.OneWay
	if req.TripType == flights.RoundTrip && len(req.Legs) > 1 {
		returnDate = req.Legs[1].Date
		tripType = gflights.RoundTrip
	}

	return gflights.Args{
		Date:        outbound.Date,
		ReturnDate:  returnDate,
		SrcAirports: []string{outbound.Origin},
		DstAirports: []string{outbound.Destination},
		Options: gflights.Options{
			Travelers: gflights.Travelers{
				Adults:       req.Passengers.Adults,
				Children:     req.Passengers.Children,
				InfantInSeat: req.Passengers.InfantsInSeat,
				InfantOnLap:  req.Passengers.InfantsOnLap,
			},
			Currency: unit,
			Stops:    gflights.AnyStops,
			Class:    cabinClass(req.Cabin),
			TripType: tripType,
			Lang:     lang,
		},
	}
}

func cabinClass(c flights.CabinClass) gflights.Class {
	switch c {
	case flights.CabinPremiumEconomy:
		return gflights.PremiumEconomy
	case flights.CabinBusiness:
		return gflights.Business
	case flights.CabinFirst:
		return gflights.First
	default:
		return gflights.Economy
	}
}

// fromFullOffer copies the fields used for formatting out of an upstream offer.
func fromFullOffer(o gflights.FullOffer) itinerary {
	it := itinerary{
		price:    o.Price,
		duration: o.FlightDuration,
	}
	for _, f := range o.Flight {
		it.segments = append(it.segments, segment{
			airline:   f.AirlineName,
			departure: f.DepTime,
			arrival:   f.ArrTime,
			duration:  f.Duration,
		})
	}
	return it
}

// Compile-time check.
var _ flights.Provider = (*Provider)(nil)
