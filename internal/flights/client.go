package flights

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/giantswarm/mcp-flights/internal/logging"
)

// Search outcomes passed to the MetricsRecorder.
const (
	StatusSuccess         = "success"
	StatusNoResults       = "no_results"
	StatusValidationError = "validation_error"
	StatusProviderError   = "provider_error"
	StatusProviderTimeout = "provider_timeout"
)

// MetricsRecorder receives flight search measurements.
type MetricsRecorder interface {
	RecordFlightSearch(ctx context.Context, route, tripType, status string, duration time.Duration, offers int)
}

type noopMetricsRecorder struct{}

func (noopMetricsRecorder) RecordFlightSearch(context.Context, string, string, string, time.Duration, int) {}

// Client validates searches and forwards them to a Provider.
type Client struct {
	provider Provider
	airports AirportLookup
	logger   *slog.Logger
	metrics  MetricsRecorder
	now      func() time.Time
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithClientLogger sets the logger.
func WithClientLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithClientMetrics sets the metrics recorder.
func WithClientMetrics(metrics MetricsRecorder) ClientOption {
	return func(c *Client) {
		c.metrics = metrics
	}
}

// NewClient creates a Client. dir may be nil to disable airport code checks.
func NewClient(provider Provider, dir AirportLookup, opts ...ClientOption) *Client {
	c := &Client{
		provider: provider,
		airports: dir,
		logger:   slog.Default(),
		metrics:  noopMetricsRecorder{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ProviderName returns the name of the underlying provider.
func (c *Client) ProviderName() string {
	return c.provider.Name()
}

// Search validates params and runs the search. The returned TripRequest is
// non-nil whenever validation passed, including when the provider failed.
func (c *Client) Search(ctx context.Context, params SearchParams) (*SearchResult, *TripRequest, error) {
	start := c.now()

	trip, err := BuildTripRequest(params, c.airports)
	if err != nil {
		c.metrics.RecordFlightSearch(ctx, "", "", StatusValidationError, c.now().Sub(start), 0)
		return nil, nil, err
	}

	tripType := trip.TripType()
	route := trip.Origin + "-" + trip.Destination
	logger := c.logger.With(
		logging.Route(trip.Origin, trip.Destination),
		logging.TripType(string(tripType)),
		logging.Provider(c.provider.Name()))

	req := ProviderRequest{
		Legs:       trip.Legs(),
		Passengers: trip.Passengers,
		Cabin:      trip.Cabin,
		TripType:   tripType,
	}

	result, perr := c.callProvider(ctx, req)
	duration := c.now().Sub(start)
	if perr != nil {
		status := StatusProviderError
		if perr.Temporary() {
			status = StatusProviderTimeout
		}
		c.metrics.RecordFlightSearch(ctx, route, string(tripType), status, duration, 0)
		logger.Warn("Flight search failed", logging.Err(perr), slog.Duration(logging.KeyDuration, duration))
		return nil, trip, perr
	}

	offers := len(result.Offers)
	status := StatusSuccess
	if offers == 0 {
		status = StatusNoResults
	}
	c.metrics.RecordFlightSearch(ctx, route, string(tripType), status, duration, offers)
	logger.Info("Flight search completed", logging.Count(offers), slog.Duration(logging.KeyDuration, duration))
	return result, trip, nil
}

// callProvider invokes the provider and converts errors and panics into a
// *ProviderError. A nil result without error is treated as no offers.
func (c *Client) callProvider(ctx context.Context, req ProviderRequest) (result *SearchResult, perr *ProviderError) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			perr = &ProviderError{Provider: c.provider.Name(), Err: fmt.Errorf("provider panic: %v", r)}
		}
	}()

	res, err := c.provider.Search(ctx, req)
	if err != nil {
		return nil, &ProviderError{Provider: c.provider.Name(), Err: err}
	}
	if res == nil {
		res = &SearchResult{}
	}
	return res, nil
}
