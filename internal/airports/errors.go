package airports

import (
	"errors"
	"fmt"
)

// Sentinel errors for airport directory operations.
var (
	// ErrQueryTooShort is returned by Search for queries shorter than MinQueryLength.
	ErrQueryTooShort = errors.New("search query too short")

	// ErrCacheNotFound indicates the cache store holds no airport data yet.
	ErrCacheNotFound = errors.New("airport cache not found")

	// ErrNoSource indicates Refresh was called without a configured CSV URL.
	ErrNoSource = errors.New("no airport data source configured")
)

// FetchError reports a failure to download the airport CSV feed.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetching airport data from %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetching airport data from %s: unexpected HTTP status %d", e.URL, e.StatusCode)
}

// Unwrap returns the underlying transport error, if any.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// ParseError reports a malformed airport CSV document.
// Line is the 1-based line in the document, or 0 when the problem is not tied
// to a particular line.
type ParseError struct {
	Line int
	Err  error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parsing airport data at line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("parsing airport data: %v", e.Err)
}

// Unwrap returns the underlying parse error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// PersistError reports that a refreshed directory could not be written to the
// cache store. The in-memory directory has already been replaced when this
// error is returned.
type PersistError struct {
	Store string
	Err   error
}

// Error implements the error interface.
func (e *PersistError) Error() string {
	return fmt.Sprintf("saving airport cache to %s: %v", e.Store, e.Err)
}

// Unwrap returns the underlying store error.
func (e *PersistError) Unwrap() error {
	return e.Err
}
