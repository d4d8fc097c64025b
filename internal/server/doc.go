// Package server provides the ServerContext pattern and related infrastructure
// for the MCP flights server.
//
// This package implements the core server architecture patterns including:
//
//   - ServerContext: Encapsulates all server dependencies and lifecycle management
//   - Functional Options: Clean dependency injection and configuration
//   - Configuration: cleanenv-backed loading from env, .env and YAML files
//   - Health checks and the dedicated metrics server
//
// The ServerContext Pattern:
//
// The ServerContext struct holds the airport directory, the flight search
// client, the logger, the configuration and the optional instrumentation
// provider. Tool handlers receive it on every call and never reach for
// globals.
//
// Example usage:
//
//	dir := airports.NewDirectory(airports.WithStore(airports.NewFileStore(cfg.Airports.CachePath)))
//	client := flights.NewClient(provider, dir)
//
//	serverCtx, err := server.NewServerContext(ctx,
//		server.WithDirectory(dir),
//		server.WithFlightClient(client),
//		server.WithConfig(cfg),
//		server.WithLogger(logging.NewSlogAdapter(logger)),
//	)
//	if err != nil {
//		return err
//	}
//	defer serverCtx.Shutdown()
//
// Configuration Management:
//
// LoadConfig resolves settings from environment variables, an optional YAML
// file and the defaults declared in struct tags. A .env file is loaded into
// the environment first when present. The serve command layers its flags on
// top of the result.
//
// Health checks:
//
// HealthChecker exposes /healthz (liveness), /readyz (ready once the airport
// directory has been loaded) and /healthz/detailed (directory size, last
// refresh and instrumentation state).
package server
