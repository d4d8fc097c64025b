package server

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/giantswarm/mcp-flights/internal/airports"
	"github.com/giantswarm/mcp-flights/internal/flights"
	"github.com/giantswarm/mcp-flights/internal/instrumentation"
	"github.com/giantswarm/mcp-flights/internal/logging"
	"github.com/giantswarm/mcp-flights/internal/tools/output"
)

// Logger is the logging interface used by the server and its tools.
type Logger = logging.Logger

// ServerContext encapsulates all dependencies needed by the MCP server
// and provides a clean abstraction for dependency injection and lifecycle management.
type ServerContext struct {
	// Core dependencies
	directory    *airports.Directory
	flightClient *flights.Client
	logger       Logger
	config       *Config

	// instrumentationProvider is optional; tools skip metrics when it is nil.
	instrumentationProvider *instrumentation.Provider

	clock func() time.Time

	// Context management
	ctx    context.Context
	cancel context.CancelFunc

	// Lifecycle management
	mu       sync.RWMutex
	shutdown bool
	cleanups []func() error
}

// NewServerContext creates a new ServerContext with default values.
// Use the provided functional options to customize the context.
func NewServerContext(ctx context.Context, opts ...Option) (*ServerContext, error) {
	serverCtx, cancel := context.WithCancel(ctx)

	sc := &ServerContext{
		ctx:    serverCtx,
		cancel: cancel,
		config: NewDefaultConfig(),
		logger: logging.DefaultLogger(),
		clock:  time.Now,
	}

	for _, opt := range opts {
		if err := opt(sc); err != nil {
			cancel()
			return nil, err
		}
	}

	if err := sc.validate(); err != nil {
		cancel()
		return nil, err
	}

	return sc, nil
}

// Context returns the server context for cancellation and deadlines.
func (sc *ServerContext) Context() context.Context {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.ctx
}

// Directory returns the airport directory.
func (sc *ServerContext) Directory() *airports.Directory {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.directory
}

// FlightClient returns the flight search client.
func (sc *ServerContext) FlightClient() *flights.Client {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.flightClient
}

// Logger returns the logger interface.
func (sc *ServerContext) Logger() Logger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.logger
}

// Config returns the server configuration.
func (sc *ServerContext) Config() *Config {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.config
}

// OutputConfig returns the output limits with out-of-range values corrected.
func (sc *ServerContext) OutputConfig() *output.Config {
	cfg := sc.Config()
	if cfg == nil {
		return output.DefaultConfig()
	}
	return cfg.Output.Validate()
}

// InstrumentationProvider returns the instrumentation provider, which may be nil.
func (sc *ServerContext) InstrumentationProvider() *instrumentation.Provider {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.instrumentationProvider
}

// Metrics returns the instrumentation metrics. The result is never nil.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	provider := sc.InstrumentationProvider()
	if provider == nil {
		return &instrumentation.Metrics{}
	}
	return provider.Metrics()
}

// Now returns the current time from the configured clock.
func (sc *ServerContext) Now() time.Time {
	sc.mu.RLock()
	clock := sc.clock
	sc.mu.RUnlock()
	if clock == nil {
		return time.Now()
	}
	return clock()
}

// Shutdown gracefully shuts down the server context.
// Registered cleanup functions run in reverse order and their errors are joined.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.logger.Info("Shutting down server context")

	var errs []error
	for i := len(sc.cleanups) - 1; i >= 0; i-- {
		if err := sc.cleanups[i](); err != nil {
			errs = append(errs, err)
		}
	}
	sc.cleanups = nil

	if sc.cancel != nil {
		sc.cancel()
	}

	sc.shutdown = true

	if len(errs) > 0 {
		sc.logger.Warn("Server context shutdown completed with errors", logging.Count(len(errs)))
		return errors.Join(errs...)
	}
	sc.logger.Info("Server context shutdown complete")
	return nil
}

// IsShutdown returns true if the server context has been shutdown.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// validate ensures all required dependencies are set.
func (sc *ServerContext) validate() error {
	if sc.directory == nil {
		return ErrMissingDirectory
	}
	if sc.flightClient == nil {
		return ErrMissingFlightClient
	}
	if sc.logger == nil {
		return ErrMissingLogger
	}
	if sc.config == nil {
		return ErrMissingConfig
	}
	return nil
}
