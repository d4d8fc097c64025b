package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/giantswarm/mcp-flights/internal/airports"
	"github.com/giantswarm/mcp-flights/internal/flights"
	"github.com/giantswarm/mcp-flights/internal/flights/googleflights"
	"github.com/giantswarm/mcp-flights/internal/instrumentation"
	"github.com/giantswarm/mcp-flights/internal/logging"
	"github.com/giantswarm/mcp-flights/internal/prompts"
	"github.com/giantswarm/mcp-flights/internal/server"
	"github.com/giantswarm/mcp-flights/internal/tools/airport"
	"github.com/giantswarm/mcp-flights/internal/tools/flight"
)

// newServeCmd creates the Cobra command for starting the MCP server.
func newServeCmd() *cobra.Command {
	var (
		debugMode  bool
		configPath string
		envFiles   []string

		// Transport options
		transport       string
		httpAddr        string
		sseEndpoint     string
		messageEndpoint string
		httpEndpoint    string

		airportFlags AirportFlags

		// Metrics server options
		metricsAddr   string
		enableMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP flights server",
		Long: `Start the MCP flights server to provide flight search, airport lookup
and travel planning tools via the Model Context Protocol.

Supports multiple transport types:
  - stdio: Standard input/output (default)
  - sse: Server-Sent Events over HTTP
  - streamable-http: Streamable HTTP transport

Configuration is read from environment variables (a .env file is loaded when
present) and an optional YAML file given with --config. Flags that are set
explicitly take precedence over both.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config := ServeConfig{
				Transport:       transport,
				HTTPAddr:        httpAddr,
				SSEEndpoint:     sseEndpoint,
				MessageEndpoint: messageEndpoint,
				HTTPEndpoint:    httpEndpoint,
				DebugMode:       debugMode,
				ConfigPath:      configPath,
				EnvFiles:        envFiles,
				Airports:        airportFlags,
				Metrics: MetricsServeConfig{
					Addr:    metricsAddr,
					Enabled: enableMetrics,
				},
			}
			return runServe(config, cmd.Flags().Changed)
		},
	}

	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging (default: false)")
	cmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML configuration file")
	cmd.Flags().StringSliceVar(&envFiles, "env-file", nil, "Env files loaded before reading the configuration (default: .env when present)")

	// Transport flags
	cmd.Flags().StringVar(&transport, "transport", transportStdio, "Transport type: stdio, sse, or streamable-http")
	cmd.Flags().StringVar(&httpAddr, "http-addr", ":8080", "HTTP server address (for sse and streamable-http transports)")
	cmd.Flags().StringVar(&sseEndpoint, "sse-endpoint", "/sse", "SSE endpoint path (for sse transport)")
	cmd.Flags().StringVar(&messageEndpoint, "message-endpoint", "/message", "Message endpoint path (for sse transport)")
	cmd.Flags().StringVar(&httpEndpoint, "http-endpoint", "/mcp", "HTTP endpoint path (for streamable-http transport)")

	addAirportFlags(cmd, &airportFlags)

	// Metrics flags
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", server.DefaultMetricsAddr, "Metrics server address (for streamable-http transport, requires INSTRUMENTATION_ENABLED=true)")
	cmd.Flags().BoolVar(&enableMetrics, "enable-metrics", true, "Serve Prometheus metrics on a dedicated port (for streamable-http transport)")

	return cmd
}

// addAirportFlags registers the airport directory flags on cmd.
func addAirportFlags(cmd *cobra.Command, flags *AirportFlags) {
	cmd.Flags().StringVar(&flags.SourceURL, flagAirportsURL, airports.DefaultSourceURL, "Airport CSV feed URL (overrides AIRPORTS_CSV_URL)")
	cmd.Flags().StringVar(&flags.CachePath, flagAirportsCache, "airports.json", "Airport cache file path (overrides AIRPORTS_CACHE_PATH)")
	cmd.Flags().StringVar(&flags.CacheBackend, flagAirportCacheBackend, server.CacheBackendFile,
		fmt.Sprintf("Airport cache backend: %s or %s (overrides AIRPORTS_CACHE_BACKEND)", server.CacheBackendFile, server.CacheBackendRedis))
	cmd.Flags().StringVar(&flags.RedisURL, flagRedisURL, "", "Redis URL for the redis cache backend (overrides REDIS_URL)")
}

// runServe contains the main server logic with support for multiple transports
func runServe(config ServeConfig, changed func(name string) bool) error {
	if err := validateTransport(config); err != nil {
		return err
	}

	cfg, err := loadServerConfig(config.ConfigPath, config.EnvFiles, config.Airports, changed)
	if err != nil {
		return err
	}
	cfg.Version = rootCmd.Version

	// Logs always go to stderr; stdout belongs to the stdio transport.
	logger := logging.NewLogger(os.Stderr, cfg.LogFormat, config.DebugMode)
	slog.SetDefault(logger)

	// Setup graceful shutdown - listen for both SIGINT and SIGTERM
	shutdownCtx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Initialize OpenTelemetry instrumentation provider
	instrumentationConfig := instrumentation.DefaultConfig()
	instrumentationConfig.ServiceVersion = rootCmd.Version
	instrumentationProvider, err := instrumentation.NewProvider(shutdownCtx, instrumentationConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	instrumentationProvider.SetAuditLogger(instrumentation.NewAuditLogger(logger))
	defer func() {
		if shutdownErr := instrumentationProvider.Shutdown(context.Background()); shutdownErr != nil {
			logger.Error("Error during instrumentation shutdown", logging.Err(shutdownErr))
		}
	}()

	if instrumentationProvider.Enabled() {
		logger.Info("OpenTelemetry instrumentation enabled",
			"metrics_exporter", instrumentationConfig.MetricsExporter,
			"tracing_exporter", instrumentationConfig.TracingExporter)
	}

	serverContextOptions := []server.Option{
		server.WithConfig(cfg),
		server.WithLogger(logging.NewSlogAdapter(logger)),
		server.WithInstrumentationProvider(instrumentationProvider),
	}

	dir, closeStore, err := newAirportDirectory(shutdownCtx, cfg, logger, instrumentationProvider.Metrics())
	if err != nil {
		return err
	}
	serverContextOptions = append(serverContextOptions, server.WithDirectory(dir), server.WithCleanup(closeStore))

	// A failed initial load is logged by the directory; the server still
	// starts and update_airports_database can fill it later.
	_ = dir.EnsureLoaded(shutdownCtx)

	provider, err := googleflights.New(
		googleflights.WithCurrency(cfg.Flights.Currency),
		googleflights.WithLanguage(cfg.Flights.Language),
		googleflights.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("failed to create flight provider: %w", err)
	}
	flightClient := flights.NewClient(provider, dir,
		flights.WithClientLogger(logger),
		flights.WithClientMetrics(instrumentationProvider.Metrics()),
	)
	serverContextOptions = append(serverContextOptions, server.WithFlightClient(flightClient))

	serverContext, err := server.NewServerContext(shutdownCtx, serverContextOptions...)
	if err != nil {
		return fmt.Errorf("failed to create server context: %w", err)
	}
	defer func() {
		if err := serverContext.Shutdown(); err != nil {
			logger.Error("Error during server context shutdown", logging.Err(err))
		}
	}()

	mcpSrv, err := newMCPServer(serverContext)
	if err != nil {
		return err
	}

	// Start the appropriate server based on transport type
	switch config.Transport {
	case transportStdio:
		return runStdioServer(mcpSrv)
	case transportSSE:
		logger.Info("Starting MCP flights server", "transport", config.Transport)
		return runSSEServer(shutdownCtx, mcpSrv, config)
	default:
		logger.Info("Starting MCP flights server", "transport", config.Transport)
		return runStreamableHTTPServer(shutdownCtx, mcpSrv, config, instrumentationProvider, serverContext)
	}
}

// newMCPServer creates the MCP server and registers every tool, resource and
// prompt.
func newMCPServer(sc *server.ServerContext) (*mcpserver.MCPServer, error) {
	mcpSrv := mcpserver.NewMCPServer(sc.Config().ServerName, rootCmd.Version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithResourceCapabilities(false, false),
		mcpserver.WithPromptCapabilities(false),
		mcpserver.WithRecovery(),
	)

	if err := flight.RegisterFlightTools(mcpSrv, sc); err != nil {
		return nil, fmt.Errorf("failed to register flight tools: %w", err)
	}

	if err := airport.RegisterAirportTools(mcpSrv, sc); err != nil {
		return nil, fmt.Errorf("failed to register airport tools: %w", err)
	}

	if err := airport.RegisterAirportResources(mcpSrv, sc); err != nil {
		return nil, fmt.Errorf("failed to register airport resources: %w", err)
	}

	if err := prompts.RegisterPrompts(mcpSrv); err != nil {
		return nil, fmt.Errorf("failed to register prompts: %w", err)
	}

	return mcpSrv, nil
}

// newAirportDirectory builds the airport directory with the configured cache
// backend. The returned close function releases the backend connection.
func newAirportDirectory(ctx context.Context, cfg *server.Config, logger *slog.Logger, metrics airports.MetricsRecorder) (*airports.Directory, func() error, error) {
	var (
		store     airports.Store
		closeFunc = func() error { return nil }
	)

	switch cfg.Airports.CacheBackend {
	case server.CacheBackendRedis:
		redisStore, err := airports.DialRedisStore(ctx, cfg.Airports.RedisURL, cfg.Airports.RedisKey)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to airport cache: %w", err)
		}
		store = redisStore
		closeFunc = redisStore.Close
	default:
		store = airports.NewFileStore(cfg.Airports.CachePath)
	}

	dir := airports.NewDirectory(
		airports.WithSourceURL(cfg.Airports.SourceURL),
		airports.WithStore(store),
		airports.WithHTTPClient(&http.Client{Timeout: cfg.Flights.HTTPTimeout}),
		airports.WithLogger(logger),
		airports.WithMetrics(metrics),
	)

	logger.Debug("Airport directory configured",
		logging.Host(cfg.Airports.SourceURL),
		logging.CacheSource(store.Describe()))

	return dir, closeFunc, nil
}
