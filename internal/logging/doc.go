// Package logging provides structured logging utilities for the mcp-flights application.
//
// This package centralizes logging patterns to ensure consistent, structured logging
// throughout the codebase using the standard library's slog package.
//
// # Key Features
//
//   - Logger construction for text or JSON output
//   - Consistent attribute naming (tool, route, airport, trip type)
//   - Host/URL sanitization for upstream feeds and cache backends
//   - A small Logger interface with a slog-backed adapter
//
// # Usage Patterns
//
// Create a logger with standard attributes:
//
//	logger := logging.WithTool(slog.Default(), "search_flights")
//	logger.Info("searching flights",
//	    logging.Route("LAX", "JFK"),
//	    logging.TripType("round-trip"))
//
// Sanitize sensitive data before logging:
//
//	logger.Info("airport cache configured",
//	    logging.CacheSource("redis://:secret@cache:6379/0"))
//
// In stdio mode stdout carries the MCP protocol, so loggers must always write
// to stderr.
package logging
