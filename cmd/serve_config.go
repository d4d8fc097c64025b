package cmd

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/giantswarm/mcp-flights/internal/server"
)

// Transport type constants for the MCP server.
const (
	transportStdio          = "stdio"
	transportSSE            = "sse"
	transportStreamableHTTP = "streamable-http"
)

// ServeConfig holds all configuration for the serve command.
type ServeConfig struct {
	// Transport settings
	Transport string
	HTTPAddr  string

	// Endpoint paths
	SSEEndpoint     string
	MessageEndpoint string
	HTTPEndpoint    string

	DebugMode bool

	// Configuration sources
	ConfigPath string
	EnvFiles   []string

	// Airport directory overrides. Only applied when the matching flag was set.
	Airports AirportFlags

	Metrics MetricsServeConfig
}

// AirportFlags carries the airport directory flags shared by serve and
// airports refresh.
type AirportFlags struct {
	SourceURL    string
	CachePath    string
	CacheBackend string
	RedisURL     string
}

// MetricsServeConfig configures the dedicated metrics server.
type MetricsServeConfig struct {
	Addr    string
	Enabled bool
}

// Flag names that override values from the configuration file or environment.
const (
	flagAirportsURL         = "airports-url"
	flagAirportsCache       = "airports-cache"
	flagAirportCacheBackend = "airport-cache-backend"
	flagRedisURL            = "redis-url"
)

// applyAirportFlags copies explicitly set airport flags onto cfg. changed
// reports whether the user set a flag, so flag defaults never mask env values.
func applyAirportFlags(cfg *server.Config, flags AirportFlags, changed func(name string) bool) {
	if changed(flagAirportsURL) {
		cfg.Airports.SourceURL = flags.SourceURL
	}
	if changed(flagAirportsCache) {
		cfg.Airports.CachePath = flags.CachePath
	}
	if changed(flagAirportCacheBackend) {
		cfg.Airports.CacheBackend = flags.CacheBackend
	}
	if changed(flagRedisURL) {
		cfg.Airports.RedisURL = flags.RedisURL
	}
}

// loadServerConfig reads the layered configuration and applies flag overrides.
func loadServerConfig(configPath string, envFiles []string, flags AirportFlags, changed func(name string) bool) (*server.Config, error) {
	cfg, err := server.LoadConfig(configPath, envFiles...)
	if err != nil {
		return nil, err
	}

	applyAirportFlags(cfg, flags, changed)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := validateFeedURL(cfg.Airports.SourceURL, "airport feed URL"); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validateTransport checks the transport and its endpoint paths.
func validateTransport(config ServeConfig) error {
	switch config.Transport {
	case transportStdio:
		return nil
	case transportSSE:
		if err := validateEndpointPath(config.SSEEndpoint, "SSE endpoint"); err != nil {
			return err
		}
		if err := validateEndpointPath(config.MessageEndpoint, "message endpoint"); err != nil {
			return err
		}
		if config.SSEEndpoint == config.MessageEndpoint {
			return fmt.Errorf("SSE endpoint and message endpoint must differ, both are %q", config.SSEEndpoint)
		}
		return nil
	case transportStreamableHTTP:
		return validateEndpointPath(config.HTTPEndpoint, "HTTP endpoint")
	default:
		return fmt.Errorf("unsupported transport type: %s (supported: stdio, sse, streamable-http)", config.Transport)
	}
}

func validateEndpointPath(path, fieldName string) error {
	if !strings.HasPrefix(path, "/") {
		return fmt.Errorf("%s must start with '/', got %q", fieldName, path)
	}
	return nil
}

// validateFeedURL ensures urlStr is an absolute http or https URL.
func validateFeedURL(urlStr string, fieldName string) error {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("%s must be a valid URL: %w", fieldName, err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%s must be a valid URL with http or https scheme, got %q", fieldName, urlStr)
	}

	if parsed.Hostname() == "" {
		return fmt.Errorf("%s must include a host, got %q", fieldName, urlStr)
	}

	return nil
}
