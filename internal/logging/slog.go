package logging

import (
	"io"
	"log/slog"
	"net/url"
	"regexp"
	"strings"
)

// Common log attribute keys for consistent naming across the codebase.
const (
	KeyOperation   = "operation"
	KeyTool        = "tool"
	KeyRequestID   = "request_id"
	KeyAirport     = "airport"
	KeyRoute       = "route"
	KeyTripType    = "trip_type"
	KeyProvider    = "provider"
	KeyCount       = "count"
	KeyDuration    = "duration"
	KeyStatus      = "status"
	KeyError       = "error"
	KeyHost        = "host"
	KeyCacheSource = "cache"
)

// Status values for consistent logging.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Log output formats accepted by NewLogger.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// ipv4Regex matches IPv4 addresses for sanitization.
var ipv4Regex = regexp.MustCompile(`\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}`)

// ipv6Regex matches common IPv6 formats, including the bracketed form used in URLs.
var ipv6Regex = regexp.MustCompile(`\[?([0-9a-fA-F]{0,4}:){2,7}[0-9a-fA-F]{0,4}\]?`)

// NewLogger builds the process logger. Output always goes to w, which must not
// be stdout when the stdio transport is active.
func NewLogger(w io.Writer, format string, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(format, FormatJSON) {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// WithOperation returns a logger with the operation attribute set.
func WithOperation(logger *slog.Logger, operation string) *slog.Logger {
	return logger.With(slog.String(KeyOperation, operation))
}

// WithTool returns a logger with the tool attribute set.
func WithTool(logger *slog.Logger, tool string) *slog.Logger {
	return logger.With(slog.String(KeyTool, tool))
}

// Operation returns a slog attribute for the operation name.
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// Tool returns a slog attribute for the MCP tool name.
func Tool(name string) slog.Attr {
	return slog.String(KeyTool, name)
}

// RequestID returns a slog attribute for a tool invocation ID.
func RequestID(id string) slog.Attr {
	return slog.String(KeyRequestID, id)
}

// Airport returns a slog attribute for an airport code.
func Airport(code string) slog.Attr {
	return slog.String(KeyAirport, strings.ToUpper(code))
}

// Route returns a slog attribute in the form "LAX-JFK".
func Route(origin, destination string) slog.Attr {
	return slog.String(KeyRoute, strings.ToUpper(origin)+"-"+strings.ToUpper(destination))
}

// TripType returns a slog attribute for the trip type.
func TripType(tripType string) slog.Attr {
	return slog.String(KeyTripType, tripType)
}

// Provider returns a slog attribute for the flight provider name.
func Provider(name string) slog.Attr {
	return slog.String(KeyProvider, name)
}

// Count returns a slog attribute for a result count.
func Count(n int) slog.Attr {
	return slog.Int(KeyCount, n)
}

// Status returns a slog attribute for the status.
func Status(status string) slog.Attr {
	return slog.String(KeyStatus, status)
}

// Err returns a slog attribute for an error.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}

// SanitizedErr returns a slog attribute for an error with IP addresses redacted.
// Fetch errors carry the upstream URL, which may point at an internal mirror.
func SanitizedErr(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, SanitizeHost(err.Error()))
}

// Host returns a slog attribute for a host with IP addresses sanitized.
func Host(host string) slog.Attr {
	return slog.String(KeyHost, SanitizeHost(host))
}

// CacheSource returns a slog attribute describing an airport cache backend.
func CacheSource(description string) slog.Attr {
	return slog.String(KeyCacheSource, SanitizeURL(description))
}

// SanitizeHost redacts IPv4 and IPv6 addresses from a host or URL.
//
// Examples:
//   - "https://192.168.1.100:8443/airports.csv" -> "https://<redacted-ip>:8443/airports.csv"
//   - "https://example.com/airports.csv" -> "https://example.com/airports.csv"
//   - "10.0.0.1" -> "<redacted-ip>"
//   - "" -> "<empty>"
func SanitizeHost(host string) string {
	if host == "" {
		return "<empty>"
	}

	redactIPs := func(s string) string {
		result := ipv4Regex.ReplaceAllString(s, "<redacted-ip>")
		return ipv6Regex.ReplaceAllString(result, "<redacted-ip>")
	}

	if !strings.Contains(host, "://") {
		return redactIPs(host)
	}

	parsed, err := url.Parse(host)
	if err != nil {
		return redactIPs(host)
	}

	if ipv4Regex.MatchString(parsed.Host) || ipv6Regex.MatchString(parsed.Host) {
		parsed.Host = redactIPs(parsed.Host)
		return parsed.String()
	}

	return host
}

// SanitizeURL masks the password of a URL such as a Redis connection string.
// Values that are not URLs are returned unchanged.
func SanitizeURL(raw string) string {
	if !strings.Contains(raw, "://") {
		return raw
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.User == nil {
		return raw
	}
	if _, hasPassword := parsed.User.Password(); hasPassword {
		parsed.User = url.UserPassword(parsed.User.Username(), "xxxxx")
	}
	return parsed.String()
}
