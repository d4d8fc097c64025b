// Package middleware provides HTTP middleware for the mcp-flights HTTP transports:
// request metrics, security headers, CORS for browser-based MCP clients and
// request body limits.
package middleware
