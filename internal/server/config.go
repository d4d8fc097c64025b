package server

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/giantswarm/mcp-flights/internal/airports"
	"github.com/giantswarm/mcp-flights/internal/tools/output"
)

// Airport cache backends.
const (
	CacheBackendFile  = "file"
	CacheBackendRedis = "redis"
)

// DefaultEnvFile is loaded into the environment, when present, before the
// configuration is read.
const DefaultEnvFile = ".env"

// Config holds the server configuration.
//
// Values are resolved in this order: environment variables, then the optional
// YAML file, then the env-default tags. Command-line flags are applied on top by
// the serve command.
type Config struct {
	// Server settings
	ServerName string `json:"serverName" yaml:"server_name" env:"MCP_SERVER_NAME" env-default:"mcp-flights"`
	Version    string `json:"version" yaml:"-"`

	// Logging settings
	LogFormat string `json:"logFormat" yaml:"log_format" env:"LOG_FORMAT" env-default:"text"`

	Airports AirportsConfig `json:"airports" yaml:"airports"`
	Flights  FlightsConfig  `json:"flights" yaml:"flights"`
	Output   output.Config  `json:"output" yaml:"output"`
	HTTP     HTTPConfig     `json:"http" yaml:"http"`
}

// AirportsConfig configures the airport directory and its cache.
type AirportsConfig struct {
	SourceURL    string `json:"sourceURL" yaml:"source_url" env:"AIRPORTS_CSV_URL" env-default:"https://davidmegginson.github.io/ourairports-data/airports.csv"`
	CachePath    string `json:"cachePath" yaml:"cache_path" env:"AIRPORTS_CACHE_PATH" env-default:"airports.json"`
	CacheBackend string `json:"cacheBackend" yaml:"cache_backend" env:"AIRPORTS_CACHE_BACKEND" env-default:"file"`
	RedisURL     string `json:"-" yaml:"redis_url" env:"REDIS_URL"`
	RedisKey     string `json:"redisKey" yaml:"redis_key" env:"AIRPORTS_REDIS_KEY" env-default:"mcp-flights:airports"`
}

// FlightsConfig configures the flight provider and the date helpers.
type FlightsConfig struct {
	Currency              string        `json:"currency" yaml:"currency" env:"FLIGHTS_CURRENCY" env-default:"USD"`
	Language              string        `json:"language" yaml:"language" env:"FLIGHTS_LANGUAGE" env-default:"en"`
	DefaultTripLengthDays int           `json:"defaultTripLengthDays" yaml:"default_trip_length_days" env:"DEFAULT_TRIP_LENGTH_DAYS" env-default:"7"`
	DefaultAdvanceDays    int           `json:"defaultAdvanceDays" yaml:"default_advance_days" env:"DEFAULT_ADVANCE_DAYS" env-default:"30"`
	HTTPTimeout           time.Duration `json:"httpTimeout" yaml:"http_timeout" env:"HTTP_TIMEOUT" env-default:"30s"`
}

// HTTPConfig configures the HTTP transports.
type HTTPConfig struct {
	AllowedOrigins  []string `json:"allowedOrigins" yaml:"allowed_origins" env:"ALLOWED_ORIGINS" env-separator:","`
	MaxRequestBytes int64    `json:"maxRequestBytes" yaml:"max_request_bytes" env:"MAX_REQUEST_BYTES" env-default:"1048576"`
	EnableHSTS      bool     `json:"enableHSTS" yaml:"enable_hsts" env:"ENABLE_HSTS"`
}

// NewDefaultConfig creates a configuration with sensible defaults.
func NewDefaultConfig() *Config {
	return &Config{
		ServerName: "mcp-flights",
		Version:    "0.1.0",
		LogFormat:  "text",
		Airports: AirportsConfig{
			SourceURL:    airports.DefaultSourceURL,
			CachePath:    "airports.json",
			CacheBackend: CacheBackendFile,
			RedisKey:     airports.DefaultRedisKey,
		},
		Flights: FlightsConfig{
			Currency:              "USD",
			Language:              "en",
			DefaultTripLengthDays: 7,
			DefaultAdvanceDays:    30,
			HTTPTimeout:           30 * time.Second,
		},
		Output: *output.DefaultConfig(),
		HTTP: HTTPConfig{
			MaxRequestBytes: 1 << 20,
		},
	}
}

// LoadConfig reads the configuration. envFiles are loaded into the process
// environment first, without overriding variables that are already set; when
// none are given DefaultEnvFile is tried. Missing env files are ignored. When
// configPath is empty only the environment is read.
func LoadConfig(configPath string, envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{DefaultEnvFile}
	}
	if err := loadEnvFiles(envFiles); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if configPath != "" {
		if err := cleanenv.ReadConfig(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	} else if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read env config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadEnvFiles(files []string) error {
	for _, file := range files {
		if _, err := os.Stat(file); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", file, err)
		}
	}
	return nil
}

// Validate checks the configuration for values the server cannot run with.
func (c *Config) Validate() error {
	switch c.Airports.CacheBackend {
	case CacheBackendFile:
		if strings.TrimSpace(c.Airports.CachePath) == "" {
			return fmt.Errorf("airport cache path is required for the %s backend", CacheBackendFile)
		}
	case CacheBackendRedis:
		if strings.TrimSpace(c.Airports.RedisURL) == "" {
			return fmt.Errorf("redis URL is required for the %s backend", CacheBackendRedis)
		}
	default:
		return fmt.Errorf("unknown airport cache backend %q (expected %s or %s)",
			c.Airports.CacheBackend, CacheBackendFile, CacheBackendRedis)
	}

	if c.Flights.DefaultTripLengthDays < 0 {
		return fmt.Errorf("default trip length cannot be negative, got %d", c.Flights.DefaultTripLengthDays)
	}
	if c.Flights.DefaultAdvanceDays < 0 {
		return fmt.Errorf("default advance days cannot be negative, got %d", c.Flights.DefaultAdvanceDays)
	}
	if c.Flights.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP timeout must be positive, got %s", c.Flights.HTTPTimeout)
	}
	return nil
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c

	// Deep copy slices
	if c.HTTP.AllowedOrigins != nil {
		clone.HTTP.AllowedOrigins = make([]string, len(c.HTTP.AllowedOrigins))
		copy(clone.HTTP.AllowedOrigins, c.HTTP.AllowedOrigins)
	}

	return &clone
}
