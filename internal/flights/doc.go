// Package flights validates trip parameters and delegates flight searches to a
// Provider.
//
// A search goes through three steps:
//
//  1. BuildTripRequest validates the raw parameters (dates, airport codes,
//     passenger counts, cabin class) and derives the trip type.
//  2. The TripRequest is translated into provider legs: one leg for a one-way
//     trip, an outbound and a mirrored inbound leg for a round trip.
//  3. The Provider is called once. Any failure, including a panic inside the
//     provider, is returned as a *ProviderError.
//
// Validation failures are returned as *ValidationError and never reach the
// provider.
package flights
