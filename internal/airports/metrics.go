package airports

import (
	"context"
	"time"
)

// MetricsRecorder receives directory refresh and size measurements.
// This allows decoupling from the concrete instrumentation implementation.
type MetricsRecorder interface {
	// RecordAirportRefresh records the outcome and duration of a refresh.
	RecordAirportRefresh(ctx context.Context, status string, duration time.Duration)

	// SetAirportDirectorySize sets the current number of directory entries.
	SetAirportDirectorySize(ctx context.Context, size int)
}

type noopMetricsRecorder struct{}

func (noopMetricsRecorder) RecordAirportRefresh(context.Context, string, time.Duration) {}
func (noopMetricsRecorder) SetAirportDirectorySize(context.Context, int)                {}
