package server

import (
	"errors"
	"time"

	"github.com/giantswarm/mcp-flights/internal/airports"
	"github.com/giantswarm/mcp-flights/internal/flights"
	"github.com/giantswarm/mcp-flights/internal/instrumentation"
)

// Option is a functional option for configuring ServerContext.
type Option func(*ServerContext) error

// WithDirectory sets the airport directory.
func WithDirectory(dir *airports.Directory) Option {
	return func(sc *ServerContext) error {
		if dir == nil {
			return ErrMissingDirectory
		}
		sc.directory = dir
		return nil
	}
}

// WithFlightClient sets the flight search client.
func WithFlightClient(client *flights.Client) Option {
	return func(sc *ServerContext) error {
		if client == nil {
			return ErrMissingFlightClient
		}
		sc.flightClient = client
		return nil
	}
}

// WithLogger sets the logger for the ServerContext.
func WithLogger(logger Logger) Option {
	return func(sc *ServerContext) error {
		if logger == nil {
			return ErrMissingLogger
		}
		sc.logger = logger
		return nil
	}
}

// WithConfig sets the configuration for the ServerContext.
func WithConfig(config *Config) Option {
	return func(sc *ServerContext) error {
		if config == nil {
			return ErrMissingConfig
		}
		sc.config = config.Clone()
		return nil
	}
}

// WithServerName sets the server name in the configuration.
func WithServerName(name string) Option {
	return func(sc *ServerContext) error {
		if sc.config == nil {
			sc.config = NewDefaultConfig()
		}
		sc.config.ServerName = name
		return nil
	}
}

// WithInstrumentationProvider sets the OpenTelemetry instrumentation provider.
func WithInstrumentationProvider(provider *instrumentation.Provider) Option {
	return func(sc *ServerContext) error {
		sc.instrumentationProvider = provider
		return nil
	}
}

// WithClock overrides the clock used by the date tools.
func WithClock(now func() time.Time) Option {
	return func(sc *ServerContext) error {
		if now == nil {
			return errors.New("clock function is required")
		}
		sc.clock = now
		return nil
	}
}

// WithCleanup registers a function that runs on Shutdown, such as closing the
// airport cache connection.
func WithCleanup(fn func() error) Option {
	return func(sc *ServerContext) error {
		if fn != nil {
			sc.cleanups = append(sc.cleanups, fn)
		}
		return nil
	}
}

// Error definitions for ServerContext validation and operations.
var (
	ErrMissingDirectory    = errors.New("airport directory is required")
	ErrMissingFlightClient = errors.New("flight client is required")
	ErrMissingLogger       = errors.New("logger is required")
	ErrMissingConfig       = errors.New("configuration is required")
	ErrServerShutdown      = errors.New("server context has been shutdown")
)
