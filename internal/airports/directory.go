package airports

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/singleflight"
	"golang.org/x/text/cases"

	"github.com/giantswarm/mcp-flights/internal/logging"
)

// DefaultSourceURL is the OurAirports CSV export.
const DefaultSourceURL = "https://davidmegginson.github.io/ourairports-data/airports.csv"

// MinQueryLength is the shortest query Search accepts.
const MinQueryLength = 2

// maxFeedBytes caps the size of a downloaded CSV document.
const maxFeedBytes = 64 << 20

// refreshTimeout bounds a shared refresh once it no longer follows any
// single caller's context.
const refreshTimeout = 5 * time.Minute

// Refresh outcomes passed to the MetricsRecorder.
const (
	RefreshSuccess      = "success"
	RefreshFetchError   = "fetch_error"
	RefreshParseError   = "parse_error"
	RefreshPersistError = "persist_error"
)

// snapshot is an immutable view of the directory.
type snapshot struct {
	byCode map[string]string
	sorted []Record
}

func newSnapshot(records map[string]string) *snapshot {
	byCode := make(map[string]string, len(records))
	sorted := make([]Record, 0, len(records))
	for code, name := range records {
		byCode[code] = name
		sorted = append(sorted, Record{Code: code, DisplayName: name})
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].String() < sorted[j].String()
	})
	return &snapshot{byCode: byCode, sorted: sorted}
}

// Directory is the process-wide airport code directory.
type Directory struct {
	mu          sync.RWMutex
	current     *snapshot
	lastRefresh time.Time
	loaded      bool

	sourceURL  string
	store      Store
	httpClient *http.Client
	logger     *slog.Logger
	metrics    MetricsRecorder
	now        func() time.Time

	refreshGroup singleflight.Group
}

// Option configures a Directory.
type Option func(*Directory)

// WithSourceURL sets the CSV feed URL used by Refresh.
func WithSourceURL(url string) Option {
	return func(d *Directory) {
		d.sourceURL = url
	}
}

// WithStore sets the cache store. Without a store the directory is memory-only.
func WithStore(store Store) Option {
	return func(d *Directory) {
		d.store = store
	}
}

// WithHTTPClient sets the HTTP client used to download the feed.
func WithHTTPClient(client *http.Client) Option {
	return func(d *Directory) {
		d.httpClient = client
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Directory) {
		d.logger = logger
	}
}

// WithMetrics sets the metrics recorder. A nil recorder is ignored.
func WithMetrics(metrics MetricsRecorder) Option {
	return func(d *Directory) {
		if metrics != nil {
			d.metrics = metrics
		}
	}
}

// withClock sets the clock function for testing.
func withClock(now func() time.Time) Option {
	return func(d *Directory) {
		d.now = now
	}
}

// NewDirectory creates an empty directory.
func NewDirectory(opts ...Option) *Directory {
	d := &Directory{
		current:    newSnapshot(nil),
		sourceURL:  DefaultSourceURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     slog.Default(),
		metrics:    noopMetricsRecorder{},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// NewDirectoryFromRecords creates a directory pre-populated with records.
// Codes that are not valid IATA codes are dropped.
func NewDirectoryFromRecords(records map[string]string, opts ...Option) *Directory {
	d := NewDirectory(opts...)
	d.replace(filterValid(records))
	return d
}

// Load populates the directory from the cache store. It returns
// ErrCacheNotFound when the store is empty or there is no store.
func (d *Directory) Load(ctx context.Context) error {
	if d.store == nil {
		return ErrCacheNotFound
	}

	records, err := d.store.Load(ctx)
	if err != nil {
		return err
	}
	records = filterValid(records)
	if len(records) == 0 {
		return ErrCacheNotFound
	}

	d.replace(records)
	d.logger.Info("Loaded airport directory from cache",
		logging.CacheSource(d.store.Describe()),
		logging.Count(len(records)))
	return nil
}

// EnsureLoaded loads the cache and falls back to a network refresh only when
// the cache is missing or empty. Errors are logged and returned; the directory
// stays usable (possibly empty) either way.
func (d *Directory) EnsureLoaded(ctx context.Context) error {
	err := d.Load(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrCacheNotFound) {
		d.logger.Warn("Airport cache unreadable, the directory starts empty", logging.Err(err))
		return err
	}

	d.logger.Info("Airport cache is empty, fetching airport data",
		logging.Host(d.sourceURL))
	if _, err := d.Refresh(ctx); err != nil {
		d.logger.Warn("Initial airport refresh failed", logging.SanitizedErr(err))
		return err
	}
	return nil
}

// Refresh downloads the CSV feed and replaces the directory with its contents.
// The directory is only replaced after the whole document parsed successfully.
// A *PersistError is returned alongside the new count when only the cache
// write failed.
//
// Concurrent callers share one download. Cancelling ctx only abandons the
// wait for this caller; the shared download keeps running for the others.
func (d *Directory) Refresh(ctx context.Context) (int, error) {
	ch := d.refreshGroup.DoChan("refresh", func() (interface{}, error) {
		refreshCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), refreshTimeout)
		defer cancel()
		return d.refresh(refreshCtx)
	})

	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case res := <-ch:
		if res.Shared {
			d.logger.Debug("Joined in-flight airport refresh")
		}
		count, _ := res.Val.(int)
		return count, res.Err
	}
}

func (d *Directory) refresh(ctx context.Context) (int, error) {
	if d.sourceURL == "" {
		return 0, ErrNoSource
	}

	start := d.now()
	records, err := d.fetch(ctx)
	if err != nil {
		status := RefreshFetchError
		var parseErr *ParseError
		if errors.As(err, &parseErr) {
			status = RefreshParseError
		}
		d.metrics.RecordAirportRefresh(ctx, status, d.now().Sub(start))
		return 0, err
	}

	d.replace(records)
	d.logger.Info("Refreshed airport directory",
		logging.Host(d.sourceURL),
		logging.Count(len(records)))

	if d.store != nil {
		if err := d.store.Save(ctx, records); err != nil {
			d.metrics.RecordAirportRefresh(ctx, RefreshPersistError, d.now().Sub(start))
			return len(records), &PersistError{Store: d.store.Describe(), Err: err}
		}
	}

	d.metrics.RecordAirportRefresh(ctx, RefreshSuccess, d.now().Sub(start))
	return len(records), nil
}

func (d *Directory) fetch(ctx context.Context) (map[string]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.sourceURL, nil)
	if err != nil {
		return nil, &FetchError{URL: d.sourceURL, Err: err}
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{URL: d.sourceURL, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: d.sourceURL, StatusCode: resp.StatusCode}
	}

	records, err := ParseCSV(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		var parseErr *ParseError
		if errors.As(err, &parseErr) {
			return nil, err
		}
		return nil, &FetchError{URL: d.sourceURL, Err: err}
	}
	return records, nil
}

func (d *Directory) replace(records map[string]string) {
	snap := newSnapshot(records)

	d.mu.Lock()
	d.current = snap
	d.lastRefresh = d.now()
	d.loaded = true
	d.mu.Unlock()

	d.metrics.SetAirportDirectorySize(context.Background(), len(snap.sorted))
}

func (d *Directory) view() *snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.current
}

// Lookup returns the record for code, matching case-insensitively.
func (d *Directory) Lookup(code string) (Record, bool) {
	code = NormalizeCode(code)
	name, ok := d.view().byCode[code]
	if !ok {
		return Record{}, false
	}
	return Record{Code: code, DisplayName: name}, true
}

// Search returns every record whose code or display name contains query,
// ignoring case, sorted by "name (code)".
func (d *Directory) Search(query string) ([]Record, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < MinQueryLength {
		return nil, fmt.Errorf("%w: need at least %d characters", ErrQueryTooShort, MinQueryLength)
	}

	// Casers keep state and must not be shared between goroutines.
	fold := cases.Fold()
	needle := fold.String(query)

	var matches []Record
	for _, rec := range d.view().sorted {
		if strings.Contains(fold.String(rec.Code), needle) ||
			strings.Contains(fold.String(rec.DisplayName), needle) {
			matches = append(matches, rec)
		}
	}
	return matches, nil
}

// All returns every record sorted by "name (code)". The slice must not be modified.
func (d *Directory) All() []Record {
	return d.view().sorted
}

// Len returns the number of records.
func (d *Directory) Len() int {
	return len(d.view().sorted)
}

// Loaded reports whether the directory has been populated at least once.
func (d *Directory) Loaded() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.loaded
}

// LastRefresh returns when the directory contents were last replaced.
func (d *Directory) LastRefresh() time.Time {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.lastRefresh
}

// SourceURL returns the configured CSV feed URL.
func (d *Directory) SourceURL() string {
	return d.sourceURL
}

// StoreDescription describes the configured cache store, or "" when memory-only.
func (d *Directory) StoreDescription() string {
	if d.store == nil {
		return ""
	}
	return d.store.Describe()
}

func filterValid(records map[string]string) map[string]string {
	valid := make(map[string]string, len(records))
	for code, name := range records {
		if ValidCode(code) {
			valid[code] = name
		}
	}
	return valid
}
