// Package airports maintains the in-memory directory of IATA airport codes.
//
// The directory maps a three-letter code to a display name such as
// "John F. Kennedy International Airport, New York, US". It is loaded from a
// cache Store at startup and refreshed on demand from a remote CSV feed in the
// OurAirports format.
//
// # Concurrency
//
// Readers (Lookup, Search, All) take a read lock on an immutable snapshot.
// Refresh builds a complete new snapshot and swaps it in under the write lock,
// so a failed or interrupted refresh never leaves a partially updated
// directory. Concurrent Refresh calls are coalesced through singleflight.
//
// # Cache Stores
//
// Two Store implementations are provided:
//
//   - FileStore: a flat code-to-name JSON object on local disk
//   - RedisStore: the same JSON document kept under a single Redis key
//
// Example:
//
//	dir := airports.NewDirectory(
//	    airports.WithSourceURL(airports.DefaultSourceURL),
//	    airports.WithStore(airports.NewFileStore("airports_cache.json")),
//	)
//	if err := dir.Load(ctx); err != nil {
//	    // cache missing or unreadable
//	}
//	rec, ok := dir.Lookup("jfk")
package airports
