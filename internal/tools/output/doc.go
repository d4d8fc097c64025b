// Package output renders search results as plain text for MCP tool responses.
//
// Everything in this package is a pure function: no I/O, no shared state.
// Formatters take the domain types from the flights and airports packages and
// return the text handed back to the assistant.
//
// # Limits
//
// Result lists are capped with TruncateGeneric. The true total is always
// reported together with the number of omitted entries, so the assistant can
// tell the user to refine a search:
//
//	text := output.FormatAirportSearch("new", matches, cfg.MaxAirportResults)
//
// # Optional Fields
//
// Flight offers carry optional fields (empty strings or nil pointers). The
// formatter emits a line only when the field is present; it never prints an
// empty placeholder.
package output
