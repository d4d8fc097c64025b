package instrumentation

import (
	"testing"
)

// clearInstrumentationEnv blanks every variable DefaultConfig reads.
func clearInstrumentationEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"OTEL_SERVICE_NAME",
		"INSTRUMENTATION_ENABLED",
		"METRICS_EXPORTER",
		"TRACING_EXPORTER",
		"OTEL_EXPORTER_OTLP_ENDPOINT",
		"OTEL_EXPORTER_OTLP_INSECURE",
		"OTEL_TRACES_SAMPLER_ARG",
		"PROMETHEUS_ENDPOINT",
		"METRICS_DETAILED_LABELS",
	} {
		t.Setenv(key, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	clearInstrumentationEnv(t)

	config := DefaultConfig()

	if config.ServiceName != "mcp-flights" {
		t.Errorf("expected ServiceName to be 'mcp-flights', got %s", config.ServiceName)
	}

	if config.Enabled {
		t.Error("expected Enabled to be false by default for zero overhead")
	}

	if config.MetricsExporter != "prometheus" {
		t.Errorf("expected MetricsExporter to be 'prometheus', got %s", config.MetricsExporter)
	}

	if config.TracingExporter != "none" {
		t.Errorf("expected TracingExporter to be 'none', got %s", config.TracingExporter)
	}

	if config.TraceSamplingRate != 0.1 {
		t.Errorf("expected TraceSamplingRate to be 0.1, got %f", config.TraceSamplingRate)
	}

	if config.PrometheusEndpoint != "/metrics" {
		t.Errorf("expected PrometheusEndpoint to be '/metrics', got %s", config.PrometheusEndpoint)
	}

	if config.DetailedLabels {
		t.Error("expected DetailedLabels to be false by default")
	}
}

func TestDefaultConfigWithEnv(t *testing.T) {
	clearInstrumentationEnv(t)
	t.Setenv("OTEL_SERVICE_NAME", "test-service")
	t.Setenv("INSTRUMENTATION_ENABLED", "true")
	t.Setenv("METRICS_EXPORTER", "stdout")
	t.Setenv("TRACING_EXPORTER", "otlp")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "0.5")
	t.Setenv("METRICS_DETAILED_LABELS", "true")

	config := DefaultConfig()

	if config.ServiceName != "test-service" {
		t.Errorf("expected ServiceName to be 'test-service', got %s", config.ServiceName)
	}

	if !config.Enabled {
		t.Error("expected Enabled to be true")
	}

	if config.MetricsExporter != "stdout" {
		t.Errorf("expected MetricsExporter to be 'stdout', got %s", config.MetricsExporter)
	}

	if config.TracingExporter != "otlp" {
		t.Errorf("expected TracingExporter to be 'otlp', got %s", config.TracingExporter)
	}

	if config.OTLPEndpoint != "localhost:4318" {
		t.Errorf("expected OTLPEndpoint to be 'localhost:4318', got %s", config.OTLPEndpoint)
	}

	if config.TraceSamplingRate != 0.5 {
		t.Errorf("expected TraceSamplingRate to be 0.5, got %f", config.TraceSamplingRate)
	}

	if !config.DetailedLabels {
		t.Error("expected DetailedLabels to be true")
	}
}

func TestConfigValidate(t *testing.T) {
	clearInstrumentationEnv(t)

	config := DefaultConfig()
	if err := config.Validate(); err != nil {
		t.Errorf("expected Validate to return nil for default config, got %v", err)
	}

	config.TraceSamplingRate = 1.5
	if err := config.Validate(); err == nil {
		t.Error("expected error for sampling rate > 1.0")
	}

	config.TraceSamplingRate = -0.1
	if err := config.Validate(); err == nil {
		t.Error("expected error for negative sampling rate")
	}

	config.TraceSamplingRate = 0.5

	config.MetricsExporter = "invalid"
	if err := config.Validate(); err == nil {
		t.Error("expected error for invalid metrics exporter")
	}

	config.MetricsExporter = "prometheus"

	config.TracingExporter = "invalid"
	if err := config.Validate(); err == nil {
		t.Error("expected error for invalid tracing exporter")
	}

	config.TracingExporter = "otlp"
	config.OTLPEndpoint = ""
	if err := config.Validate(); err == nil {
		t.Error("expected error for OTLP tracing without endpoint")
	}

	config.OTLPEndpoint = "localhost:4318"
	if err := config.Validate(); err != nil {
		t.Errorf("expected no error for valid OTLP config, got %v", err)
	}
}

func TestGetEnvOrDefault(t *testing.T) {
	t.Setenv("TEST_VAR", "")

	if result := getEnvOrDefault("TEST_VAR", "default"); result != "default" {
		t.Errorf("expected 'default', got %s", result)
	}

	t.Setenv("TEST_VAR", "custom")
	if result := getEnvOrDefault("TEST_VAR", "default"); result != "custom" {
		t.Errorf("expected 'custom', got %s", result)
	}
}

func TestGetEnvBoolOrDefault(t *testing.T) {
	t.Setenv("TEST_BOOL", "")

	if result := getEnvBoolOrDefault("TEST_BOOL", true); !result {
		t.Error("expected true")
	}

	t.Setenv("TEST_BOOL", "false")
	if result := getEnvBoolOrDefault("TEST_BOOL", true); result {
		t.Error("expected false")
	}

	// Invalid values fall back to the default.
	t.Setenv("TEST_BOOL", "invalid")
	if result := getEnvBoolOrDefault("TEST_BOOL", true); !result {
		t.Error("expected default true for invalid value")
	}
}

func TestGetEnvFloatOrDefault(t *testing.T) {
	t.Setenv("TEST_FLOAT", "")

	if result := getEnvFloatOrDefault("TEST_FLOAT", 0.5); result != 0.5 {
		t.Errorf("expected 0.5, got %f", result)
	}

	t.Setenv("TEST_FLOAT", "0.8")
	if result := getEnvFloatOrDefault("TEST_FLOAT", 0.5); result != 0.8 {
		t.Errorf("expected 0.8, got %f", result)
	}

	t.Setenv("TEST_FLOAT", "invalid")
	if result := getEnvFloatOrDefault("TEST_FLOAT", 0.5); result != 0.5 {
		t.Errorf("expected default 0.5 for invalid value, got %f", result)
	}
}
