package airports

import (
	"fmt"
	"strings"
)

// CodeLength is the length of an IATA airport code.
const CodeLength = 3

// Record is a single airport directory entry.
type Record struct {
	Code        string
	DisplayName string
}

// String renders the record as "name (code)", the form used for sorting and display.
func (r Record) String() string {
	return fmt.Sprintf("%s (%s)", r.DisplayName, r.Code)
}

// ValidCode reports whether code is exactly three uppercase ASCII letters.
func ValidCode(code string) bool {
	if len(code) != CodeLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return false
		}
	}
	return true
}

// NormalizeCode trims and uppercases caller input for lookups.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// DisplayName builds "{name}, {city}, {country}", leaving out the city when blank.
func DisplayName(name, city, country string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{name, city, country} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
