// Package prompts registers the prompt templates offered to MCP hosts.
//
// Prompts render a single user message and never call the flight provider or
// touch the airport directory.
package prompts
