// Package airport provides the airport lookup tools and the airports://
// resources.
//
// Tools:
//   - airport_search: substring search over codes and display names
//   - update_airports_database: re-download the airport feed
//
// Resources:
//   - airports://all: the first entries of the directory, sorted by name
//   - airports://{code}: a single airport by IATA code
//
// The directory is shared through the server context and replaced wholesale
// on refresh, so handlers never see a half-updated mapping.
package airport
