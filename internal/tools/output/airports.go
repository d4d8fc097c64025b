package output

import (
	"fmt"
	"strings"

	"github.com/giantswarm/mcp-flights/internal/airports"
)

// EmptyDirectory is shown when no airport data has been loaded.
const EmptyDirectory = "The airport directory is empty. Run update_airports_database to download airport data."

// FormatAirportSearch renders search matches, reporting the true total and how
// many matches were omitted beyond maxResults.
func FormatAirportSearch(query string, matches []airports.Record, maxResults int) string {
	if len(matches) == 0 {
		return fmt.Sprintf("No airports found matching %q. Try a different search term.", query)
	}

	maxResults = EffectiveLimit(maxResults, DefaultMaxAirportResults)
	shown, warning := TruncateGeneric(matches, maxResults)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Found %s matching %q:\n\n", plural(len(matches), "airport", "airports"), query))
	writeRecords(&b, shown)
	if warning != nil {
		b.WriteString(fmt.Sprintf("\n... and %d more. Refine your search to see them.\n", warning.Omitted()))
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatAirportList renders the first maxResults directory entries.
func FormatAirportList(records []airports.Record, maxResults int) string {
	if len(records) == 0 {
		return EmptyDirectory
	}

	maxResults = EffectiveLimit(maxResults, DefaultAirportListLimit)
	shown, warning := TruncateGeneric(records, maxResults)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Airport directory (%s):\n\n", plural(len(records), "airport", "airports")))
	writeRecords(&b, shown)
	if warning != nil {
		b.WriteString(fmt.Sprintf("\n... and %d more airports. Use airport_search or airports://{code} to find a specific one.\n",
			warning.Omitted()))
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatAirportLookup renders a single lookup result.
func FormatAirportLookup(code string, record airports.Record, found bool) string {
	if !found {
		return fmt.Sprintf("Airport code %q not found.", airports.NormalizeCode(code))
	}
	return fmt.Sprintf("%s: %s", record.Code, record.DisplayName)
}

func writeRecords(b *strings.Builder, records []airports.Record) {
	for _, r := range records {
		b.WriteString("- ")
		b.WriteString(r.String())
		b.WriteString("\n")
	}
}
