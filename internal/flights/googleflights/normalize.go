package googleflights

import (
	"fmt"
	"strings"
	"time"

	"github.com/giantswarm/mcp-flights/internal/flights"
)

// Price trend labels.
const (
	TrendLow     = "low"
	TrendTypical = "typical"
	TrendHigh    = "high"
)

const timeLayout = "3:04 PM on Mon, Jan 2"

type segment struct {
	airline   string
	departure time.Time
	arrival   time.Time
	duration  time.Duration
}

// itinerary is one upstream offer reduced to what the formatter needs.
type itinerary struct {
	segments []segment
	duration time.Duration
	price    float64
}

func buildResult(its []itinerary, low, high float64, currencyCode string) *flights.SearchResult {
	result := &flights.SearchResult{Offers: make([]flights.Offer, 0, len(its))}

	best := -1
	for i, it := range its {
		if it.price <= 0 {
			continue
		}
		if best < 0 || it.price < its[best].price {
			best = i
		}
	}

	for i, it := range its {
		offer := toOffer(it, currencyCode)
		offer.IsBest = i == best
		result.Offers = append(result.Offers, offer)
	}

	if best >= 0 {
		result.PriceTrend = priceTrend(its[best].price, low, high)
	}
	return result
}

func toOffer(it itinerary, currencyCode string) flights.Offer {
	var offer flights.Offer

	if it.price > 0 {
		offer.Price = formatPrice(it.price, currencyCode)
	}
	if len(it.segments) == 0 {
		if it.duration > 0 {
			offer.Duration = formatDuration(it.duration)
		}
		return offer
	}

	offer.Carrier = carriers(it.segments)

	first, last := it.segments[0], it.segments[len(it.segments)-1]
	if !first.departure.IsZero() {
		offer.Departure = first.departure.Format(timeLayout)
	}
	if !last.arrival.IsZero() {
		offer.Arrival = last.arrival.Format(timeLayout)
		if days := daysAhead(first.departure, last.arrival); days > 0 {
			offer.ArrivalTimeAhead = fmt.Sprintf("+%d", days)
		}
	}

	total := it.duration
	if total <= 0 {
		for _, s := range it.segments {
			total += s.duration
		}
	}
	if total > 0 {
		offer.Duration = formatDuration(total)
	}

	stops := len(it.segments) - 1
	offer.Stops = &stops
	return offer
}

// carriers joins distinct airline names in flight order.
func carriers(segments []segment) string {
	seen := make(map[string]bool, len(segments))
	var names []string
	for _, s := range segments {
		name := strings.TrimSpace(s.airline)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return strings.Join(names, ", ")
}

// daysAhead counts calendar days between departure and arrival, each in its
// own local time zone.
func daysAhead(departure, arrival time.Time) int {
	if departure.IsZero() || arrival.IsZero() {
		return 0
	}
	dy, dm, dd := departure.Date()
	ay, am, ad := arrival.Date()
	dep := time.Date(dy, dm, dd, 0, 0, 0, 0, time.UTC)
	arr := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	return int(arr.Sub(dep).Hours() / 24)
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Minute)
	hours := int(d / time.Hour)
	minutes := int((d % time.Hour) / time.Minute)
	switch {
	case hours == 0:
		return fmt.Sprintf("%d min", minutes)
	case minutes == 0:
		return fmt.Sprintf("%d hr", hours)
	default:
		return fmt.Sprintf("%d hr %d min", hours, minutes)
	}
}

func formatPrice(price float64, currencyCode string) string {
	return fmt.Sprintf("%s %.0f", currencyCode, price)
}

// priceTrend compares the cheapest offer to the typical range Google reports.
func priceTrend(cheapest, low, high float64) string {
	if low <= 0 && high <= 0 {
		return ""
	}
	switch {
	case low > 0 && cheapest < low:
		return TrendLow
	case high > 0 && cheapest > high:
		return TrendHigh
	default:
		return TrendTypical
	}
}
