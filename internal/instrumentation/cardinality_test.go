package instrumentation

import "testing"

func TestClassifyPartySize(t *testing.T) {
	tests := []struct {
		name       string
		travellers int
		expected   PartySize
	}{
		{name: "negative is unknown", travellers: -1, expected: PartySizeUnknown},
		{name: "zero is unknown", travellers: 0, expected: PartySizeUnknown},
		{name: "single traveller", travellers: 1, expected: PartySizeSolo},
		{name: "two travellers", travellers: 2, expected: PartySizePair},
		{name: "three travellers", travellers: 3, expected: PartySizeFamily},
		{name: "five travellers", travellers: 5, expected: PartySizeFamily},
		{name: "six travellers", travellers: 6, expected: PartySizeGroup},
		{name: "large group", travellers: 40, expected: PartySizeGroup},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ClassifyPartySize(tt.travellers)
			if result != string(tt.expected) {
				t.Errorf("ClassifyPartySize(%d) = %q, want %q", tt.travellers, result, tt.expected)
			}
		})
	}
}

func TestClassifyLeadTime(t *testing.T) {
	tests := []struct {
		name     string
		days     int
		expected LeadTime
	}{
		{name: "yesterday", days: -1, expected: LeadTimePast},
		{name: "today", days: 0, expected: LeadTimeSameWeek},
		{name: "six days", days: 6, expected: LeadTimeSameWeek},
		{name: "one week", days: 7, expected: LeadTimeMonth},
		{name: "thirty days", days: 30, expected: LeadTimeMonth},
		{name: "thirty one days", days: 31, expected: LeadTimeQuarter},
		{name: "ninety days", days: 90, expected: LeadTimeQuarter},
		{name: "next year", days: 300, expected: LeadTimeLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ClassifyLeadTime(tt.days)
			if result != string(tt.expected) {
				t.Errorf("ClassifyLeadTime(%d) = %q, want %q", tt.days, result, tt.expected)
			}
		})
	}
}

func TestRouteLabel(t *testing.T) {
	tests := []struct {
		origin      string
		destination string
		expected    string
	}{
		{"LAX", "JFK", "LAX-JFK"},
		{"lax", "jfk", "LAX-JFK"},
		{"", "JFK", "UNKNOWN-JFK"},
		{"LAX", "", "LAX-UNKNOWN"},
	}

	for _, tt := range tests {
		if result := RouteLabel(tt.origin, tt.destination); result != tt.expected {
			t.Errorf("RouteLabel(%q, %q) = %q, want %q", tt.origin, tt.destination, result, tt.expected)
		}
	}
}
