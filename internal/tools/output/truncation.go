package output

import (
	"fmt"
)

// TruncateGeneric truncates a slice to maxItems entries.
// Returns the truncated slice and a warning if truncation occurred.
// A non-positive maxItems means no limit other than AbsoluteMaxItems.
func TruncateGeneric[T any](items []T, maxItems int) ([]T, *TruncationWarning) {
	if maxItems <= 0 || maxItems > AbsoluteMaxItems {
		maxItems = AbsoluteMaxItems
	}

	total := len(items)
	if total <= maxItems {
		return items, nil
	}

	return items[:maxItems], &TruncationWarning{
		Shown:   maxItems,
		Total:   total,
		Message: fmt.Sprintf("Output truncated. Showing %d of %d items.", maxItems, total),
	}
}

// EffectiveLimit resolves a configured limit: non-positive values fall back
// to defaultLimit and everything is capped at AbsoluteMaxItems.
func EffectiveLimit(limit, defaultLimit int) int {
	if limit <= 0 {
		limit = defaultLimit
	}
	return min(limit, AbsoluteMaxItems)
}
