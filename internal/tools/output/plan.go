package output

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Budget levels accepted by create_travel_plan.
const (
	BudgetLow      = "budget"
	BudgetModerate = "moderate"
	BudgetLuxury   = "luxury"
)

// BudgetLevels lists the accepted budget levels.
var BudgetLevels = []string{BudgetLow, BudgetModerate, BudgetLuxury}

var budgetAdvice = map[string][]string{
	BudgetLow: {
		"Consider booking economy flights at least 6 weeks in advance",
		"Look for accommodations with kitchenettes to save on meal costs",
		"Research free activities and attractions at your destination",
	},
	BudgetModerate: {
		"Premium economy seats offer better comfort for the price",
		"Consider mid-range hotels or vacation rentals",
		"Mix of paid attractions and free experiences recommended",
	},
	BudgetLuxury: {
		"Business or first-class seats recommended for maximum comfort",
		"Luxury hotels or private villas will enhance your experience",
		"Consider private tours and exclusive experiences",
	},
}

// TravelPlan is the input to FormatTravelPlan.
type TravelPlan struct {
	Origin        string
	Destination   string
	TripType      string
	DepartureDate string
	// ReturnDate is empty for one-way trips.
	ReturnDate  string
	Purpose     string
	Budget      string
	Cabin       string
	Interests   []string
	FlightsText string
}

// ParseInterests splits a comma-separated interest list, dropping blanks.
func ParseInterests(s string) []string {
	var interests []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			interests = append(interests, part)
		}
	}
	return interests
}

// FormatTravelPlan renders a Markdown travel plan.
func FormatTravelPlan(p TravelPlan) string {
	// Casers are not safe for concurrent use.
	title := cases.Title(language.English)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("# Travel Plan: %s to %s\n", p.Origin, p.Destination))

	b.WriteString("\n## Trip Details\n")
	b.WriteString(fmt.Sprintf("- Trip Type: %s\n", p.TripType))
	b.WriteString(fmt.Sprintf("- Departure: %s\n", p.DepartureDate))
	if p.ReturnDate != "" {
		b.WriteString(fmt.Sprintf("- Return: %s\n", p.ReturnDate))
	}
	b.WriteString(fmt.Sprintf("- Purpose: %s\n", title.String(p.Purpose)))
	b.WriteString(fmt.Sprintf("- Budget Level: %s\n", title.String(p.Budget)))
	if p.Cabin != "" {
		b.WriteString(fmt.Sprintf("- Suggested Cabin: %s\n", title.String(strings.ReplaceAll(p.Cabin, "_", " "))))
	}

	b.WriteString("\n## Flight Options\n")
	b.WriteString(p.FlightsText)
	b.WriteString("\n")

	b.WriteString("\n## Travel Recommendations\n")
	b.WriteString(fmt.Sprintf("Based on your %s trip and %s budget, here are some recommendations:\n",
		strings.ToLower(p.Purpose), strings.ToLower(p.Budget)))
	advice, ok := budgetAdvice[strings.ToLower(p.Budget)]
	if !ok {
		advice = budgetAdvice[BudgetModerate]
	}
	for _, a := range advice {
		b.WriteString("- " + a + "\n")
	}

	if len(p.Interests) > 0 {
		b.WriteString("\n## Interest-Based Recommendations\n")
		for _, interest := range p.Interests {
			b.WriteString(fmt.Sprintf("- For %s: ask your assistant for activities that match this interest\n", interest))
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
