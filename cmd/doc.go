// Package cmd provides the command-line interface for mcp-flights.
//
// This package implements a Cobra-based CLI with multiple subcommands:
//   - serve: Starts the MCP server (default behavior when no subcommand is provided)
//   - airports refresh: Downloads the airport feed and rewrites the cache
//   - version: Displays the application version
//   - self-update: Updates the binary to the latest version from GitHub releases
//
// Command Structure:
//
//	mcp-flights [flags]                 # Starts the MCP server (default)
//	mcp-flights serve [flags]           # Explicitly starts the MCP server
//	mcp-flights airports refresh        # Refreshes the airport cache
//	mcp-flights version                 # Shows version information
//	mcp-flights self-update             # Updates to latest release
//
// The serve command supports multiple transport options:
//   - stdio: Standard input/output (default) - for command-line integration
//   - sse: Server-Sent Events over HTTP - for web-based clients
//   - streamable-http: Streamable HTTP transport - for HTTP-based integration
//
// Transport Configuration Examples:
//
//	mcp-flights serve --transport stdio
//	mcp-flights serve --transport sse --http-addr :8080 --sse-endpoint /sse
//	mcp-flights serve --transport streamable-http --http-addr :9000 --http-endpoint /mcp
//
// Airport data is cached in a JSON file by default. Pass
// --airport-cache-backend=redis and --redis-url to share the cache between
// replicas.
package cmd
