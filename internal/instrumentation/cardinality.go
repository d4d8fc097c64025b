package instrumentation

import "strings"

// Cardinality management helpers for metrics.
// These functions reduce high-cardinality label values to prevent metrics explosion.
//
// # Warning
//
// Airport pairs, passenger counts and travel dates are effectively unbounded.
// Always classify them with these helpers before using them as metric labels.

// PartySize represents a classification of the number of travellers on a search.
type PartySize string

// Party size classifications for metrics cardinality control.
const (
	PartySizeSolo   PartySize = "solo"
	PartySizePair   PartySize = "pair"
	PartySizeFamily PartySize = "family"
	PartySizeGroup  PartySize = "group"

	// PartySizeUnknown is used when the count is not positive.
	PartySizeUnknown PartySize = "unknown"
)

// ClassifyPartySize groups a traveller count into a small set of buckets.
//
//	| Travellers | Classification |
//	|------------|----------------|
//	| <= 0       | unknown        |
//	| 1          | solo           |
//	| 2          | pair           |
//	| 3 to 5     | family         |
//	| 6+         | group          |
func ClassifyPartySize(travellers int) string {
	switch {
	case travellers <= 0:
		return string(PartySizeUnknown)
	case travellers == 1:
		return string(PartySizeSolo)
	case travellers == 2:
		return string(PartySizePair)
	case travellers <= 5:
		return string(PartySizeFamily)
	default:
		return string(PartySizeGroup)
	}
}

// LeadTime represents how far ahead of departure a search was made.
type LeadTime string

// Lead time classifications for metrics cardinality control.
const (
	LeadTimeSameWeek LeadTime = "same_week"
	LeadTimeMonth    LeadTime = "within_month"
	LeadTimeQuarter  LeadTime = "within_quarter"
	LeadTimeLong     LeadTime = "long_range"

	// LeadTimePast covers departures before today, which providers reject.
	LeadTimePast LeadTime = "past"
)

// ClassifyLeadTime groups the number of days until departure.
//
// Examples:
//
//	ClassifyLeadTime(-1)  // "past"
//	ClassifyLeadTime(3)   // "same_week"
//	ClassifyLeadTime(30)  // "within_month"
//	ClassifyLeadTime(60)  // "within_quarter"
//	ClassifyLeadTime(200) // "long_range"
func ClassifyLeadTime(days int) string {
	switch {
	case days < 0:
		return string(LeadTimePast)
	case days < 7:
		return string(LeadTimeSameWeek)
	case days <= 30:
		return string(LeadTimeMonth)
	case days <= 90:
		return string(LeadTimeQuarter)
	default:
		return string(LeadTimeLong)
	}
}

// RouteLabel formats an origin and destination as "LAX-JFK".
// Empty codes are reported as "unknown" so the label never collapses to "-".
func RouteLabel(origin, destination string) string {
	if origin == "" {
		origin = StatusUnknown
	}
	if destination == "" {
		destination = StatusUnknown
	}
	return strings.ToUpper(origin) + "-" + strings.ToUpper(destination)
}
