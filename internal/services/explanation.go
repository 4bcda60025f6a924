package services

import (
	"fmt"
	"strings"
	"time"

	"itinerary-optimizer-service/internal/domain"
	"itinerary-optimizer-service/internal/ports"
)

// buildExplanation renders a deterministic, human-readable rationale for the
// winning candidate: route summary, stress reduction vs the worst ordering,
// and up to three rule-based insights.
func buildExplanation(
	ref ports.ReferenceData,
	legs []domain.ItineraryLeg,
	score domain.ItineraryScore,
	ranked []domain.CandidateSummary,
	preferenceMode string,
	city string,
	date time.Time,
) string {
	n := len(legs)

	var bestTotal, worstTotal, improvement float64
	if len(ranked) > 0 {
		bestTotal = ranked[0].TotalScore
		worstTotal = ranked[len(ranked)-1].TotalScore
		if worstTotal > 0 {
			improvement = (worstTotal - bestTotal) / worstTotal * 100
		}
	}

	names := make([]string, 0, n)
	var totalTravel, totalVisit float64
	for _, leg := range legs {
		names = append(names, leg.AttractionName)
		totalTravel += leg.TravelDurationMin
		totalVisit += leg.VisitDurationMin
	}

	var insights []string

	// Heat avoidance: meaningful midday discomfort with outdoor stops pushed
	// before 11:00.
	midday := ref.Weather(city, int(date.Month()), 14)
	if midday.HeatDiscomfort >= 0.4 {
		earliestOutdoor := -1
		for _, leg := range legs {
			attr, ok := ref.LookupAttraction(leg.AttractionID)
			if !ok || attr.Category != "outdoor" {
				continue
			}
			if h := leg.VisitStart.Hour(); earliestOutdoor == -1 || h < earliestOutdoor {
				earliestOutdoor = h
			}
		}
		if earliestOutdoor >= 0 && earliestOutdoor < 11 {
			insights = append(insights, fmt.Sprintf(
				"Outdoor attractions scheduled in morning to avoid afternoon heat (%.0f°C at 2 PM)",
				midday.TemperatureC,
			))
		}
	}

	// Peak-hour avoidance: mention the first stop that dodges its peak hours.
	for _, leg := range legs {
		attr, ok := ref.LookupAttraction(leg.AttractionID)
		if !ok || len(attr.PeakHours) == 0 {
			continue
		}
		if !attr.IsPeakHour(leg.VisitStart.Hour()) {
			insights = append(insights, fmt.Sprintf(
				"%s scheduled outside peak hours (%s)",
				leg.AttractionName, joinHours(attr.PeakHours),
			))
			break
		}
	}

	// Rush-hour avoidance ratio over travel segments.
	rush := 0
	for _, leg := range legs {
		h := leg.TravelStart.Hour()
		if (7 <= h && h <= 9) || (17 <= h && h <= 20) {
			rush++
		}
	}
	if nonRush := n - rush; nonRush > rush {
		insights = append(insights, fmt.Sprintf("%d/%d travel segments avoid rush hour", nonRush, n))
	}

	if len(insights) == 0 {
		insights = append(insights, "Standard optimization applied")
	}
	var insightLines strings.Builder
	for i, ins := range insights {
		if i > 0 {
			insightLines.WriteString("\n")
		}
		insightLines.WriteString("  • " + ins)
	}

	return fmt.Sprintf(
		`Optimized %d-stop itinerary for %s on %s (%s mode).

Route: %s

Evaluated %d possible orderings.
This route scores %.3f (best) vs %.3f (worst) — %.1f%% stress reduction.

Total travel: %.0f min | Total visiting: %.0f min

Key optimizations:
%s

Impact breakdown: Traffic=%.3f, Heat=%.3f, Crowds=%.3f, Volatility=%.3f`,
		n, capitalize(city), date.Format("January 02, 2006"), preferenceMode,
		strings.Join(names, " → "),
		len(ranked),
		bestTotal, worstTotal, improvement,
		totalTravel, totalVisit,
		insightLines.String(),
		score.Components.Traffic, score.Components.Heat, score.Components.Crowd, score.Components.Volatility,
	)
}

func joinHours(hours []int) string {
	parts := make([]string, 0, len(hours))
	for _, h := range hours {
		parts = append(parts, fmt.Sprintf("%d", h))
	}
	return strings.Join(parts, ", ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
