// Package flight provides the flight search and trip planning tools.
//
// Inputs are checked by flights.Client before the provider is called. Any
// validation or provider failure is returned to the client as a text result.
package flight
