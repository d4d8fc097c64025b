package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnvKeys = []string{
	"MCP_SERVER_NAME",
	"LOG_FORMAT",
	"AIRPORTS_CSV_URL",
	"AIRPORTS_CACHE_PATH",
	"AIRPORTS_CACHE_BACKEND",
	"REDIS_URL",
	"AIRPORTS_REDIS_KEY",
	"FLIGHTS_CURRENCY",
	"FLIGHTS_LANGUAGE",
	"DEFAULT_TRIP_LENGTH_DAYS",
	"DEFAULT_ADVANCE_DAYS",
	"HTTP_TIMEOUT",
	"MAX_FLIGHT_RESULTS",
	"MAX_AIRPORT_RESULTS",
	"AIRPORT_LIST_LIMIT",
	"ALLOWED_ORIGINS",
	"MAX_REQUEST_BYTES",
	"ENABLE_HSTS",
}

// clearConfigEnv unsets every variable LoadConfig reads and restores them
// when the test ends.
func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func noEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoadConfig_DefaultsMatchNewDefaultConfig(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := LoadConfig("", noEnvFile(t))
	require.NoError(t, err)

	want := NewDefaultConfig()
	want.Version = ""
	assert.Equal(t, want, cfg)
}

func TestLoadConfig_Environment(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("AIRPORTS_CSV_URL", "https://mirror.example.com/airports.csv")
	t.Setenv("DEFAULT_TRIP_LENGTH_DAYS", "10")
	t.Setenv("HTTP_TIMEOUT", "5s")
	t.Setenv("MAX_FLIGHT_RESULTS", "3")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := LoadConfig("", noEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "https://mirror.example.com/airports.csv", cfg.Airports.SourceURL)
	assert.Equal(t, 10, cfg.Flights.DefaultTripLengthDays)
	assert.Equal(t, 30, cfg.Flights.DefaultAdvanceDays)
	assert.Equal(t, 5*time.Second, cfg.Flights.HTTPTimeout)
	assert.Equal(t, 3, cfg.Output.MaxFlightResults)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.AllowedOrigins)
}

func TestLoadConfig_EnvFile(t *testing.T) {
	clearConfigEnv(t)

	envFile := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("FLIGHTS_CURRENCY=EUR\nDEFAULT_ADVANCE_DAYS=14\n"), 0o600))

	cfg, err := LoadConfig("", envFile)
	require.NoError(t, err)

	assert.Equal(t, "EUR", cfg.Flights.Currency)
	assert.Equal(t, 14, cfg.Flights.DefaultAdvanceDays)
}

func TestLoadConfig_EnvFileDoesNotOverrideEnvironment(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("FLIGHTS_CURRENCY", "GBP")

	envFile := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("FLIGHTS_CURRENCY=EUR\n"), 0o600))

	cfg, err := LoadConfig("", envFile)
	require.NoError(t, err)
	assert.Equal(t, "GBP", cfg.Flights.Currency)
}

func TestLoadConfig_YAMLFile(t *testing.T) {
	clearConfigEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server_name: flights-yaml
airports:
  cache_path: /var/cache/airports.json
flights:
  currency: JPY
  default_trip_length_days: 3
output:
  max_airport_results: 50
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path, noEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "flights-yaml", cfg.ServerName)
	assert.Equal(t, "/var/cache/airports.json", cfg.Airports.CachePath)
	assert.Equal(t, "JPY", cfg.Flights.Currency)
	assert.Equal(t, 3, cfg.Flights.DefaultTripLengthDays)
	assert.Equal(t, 50, cfg.Output.MaxAirportResults)
	// Unset keys still receive defaults.
	assert.Equal(t, "en", cfg.Flights.Language)
	assert.Equal(t, CacheBackendFile, cfg.Airports.CacheBackend)
}

func TestLoadConfig_EnvironmentOverridesYAML(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("FLIGHTS_CURRENCY", "CHF")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("flights:\n  currency: JPY\n"), 0o600))

	cfg, err := LoadConfig(path, noEnvFile(t))
	require.NoError(t, err)
	assert.Equal(t, "CHF", cfg.Flights.Currency)
}

func TestLoadConfig_MissingYAMLFile(t *testing.T) {
	clearConfigEnv(t)

	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), noEnvFile(t))
	assert.Error(t, err)
}

func TestLoadConfig_InvalidBackend(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("AIRPORTS_CACHE_BACKEND", "memcached")

	_, err := LoadConfig("", noEnvFile(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown airport cache backend")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name: "redis backend requires URL",
			mutate: func(c *Config) {
				c.Airports.CacheBackend = CacheBackendRedis
			},
			wantErr: "redis URL is required",
		},
		{
			name: "redis backend with URL",
			mutate: func(c *Config) {
				c.Airports.CacheBackend = CacheBackendRedis
				c.Airports.RedisURL = "redis://localhost:6379/0"
			},
		},
		{
			name: "file backend requires path",
			mutate: func(c *Config) {
				c.Airports.CachePath = " "
			},
			wantErr: "airport cache path is required",
		},
		{
			name: "negative trip length",
			mutate: func(c *Config) {
				c.Flights.DefaultTripLengthDays = -1
			},
			wantErr: "default trip length cannot be negative",
		},
		{
			name: "negative advance days",
			mutate: func(c *Config) {
				c.Flights.DefaultAdvanceDays = -2
			},
			wantErr: "default advance days cannot be negative",
		},
		{
			name: "zero timeout",
			mutate: func(c *Config) {
				c.Flights.HTTPTimeout = 0
			},
			wantErr: "HTTP timeout must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_CloneNil(t *testing.T) {
	var cfg *Config
	assert.Nil(t, cfg.Clone())
}
