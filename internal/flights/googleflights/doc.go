// Package googleflights implements flights.Provider on top of the Google
// Flights client from github.com/gilby125/google-flights-api.
//
// The upstream session is created lazily on the first search and reused for
// later calls. Upstream offers are normalized into flights.Offer values:
// carriers are joined, times are rendered in the airport's local time, the
// cheapest offer is flagged as the best option, and the price trend is derived
// from the price range Google reports for the route.
package googleflights
