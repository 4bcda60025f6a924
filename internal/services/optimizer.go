package services

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"itinerary-optimizer-service/internal/domain"
	"itinerary-optimizer-service/internal/ports"
)

// MaxStops caps the exhaustive search: 7 stops means at most 5040 orderings.
const MaxStops = 7

// evalWorkers bounds concurrent timeline simulations per optimization call.
const evalWorkers = 4

// OptimizeRequest carries the engine's single entry-point parameters.
type OptimizeRequest struct {
	Start          domain.Coordinates
	AttractionIDs  []string
	City           string
	Date           time.Time
	StartHour      int
	PreferenceMode string
}

type evaluation struct {
	legs  []domain.ItineraryLeg
	score domain.ItineraryScore
}

// Optimize enumerates every ordering of the requested stops, simulates each
// candidate timeline, and returns the ordering with the lowest total impact
// score.
//
// Unresolvable ids are dropped with a warning rather than failing the call.
// A request beyond MaxStops is truncated to the first MaxStops stops, also
// surfaced as a warning so callers can see their request was altered.
// Ties are broken by the first-encountered ordering under lexicographic
// enumeration, regardless of how evaluations are scheduled.
func Optimize(ref ports.ReferenceData, req OptimizeRequest) (*domain.OptimizationResult, error) {
	if ref == nil {
		return nil, errors.New("optimize: reference data must be non-nil")
	}

	started := time.Now()

	var warnings []string
	validIDs := make([]string, 0, len(req.AttractionIDs))
	for _, id := range req.AttractionIDs {
		if _, ok := ref.LookupAttraction(id); ok {
			validIDs = append(validIDs, id)
		} else {
			warnings = append(warnings, fmt.Sprintf("attraction id not found: %s", id))
		}
	}

	if len(validIDs) > MaxStops {
		warnings = append(warnings, fmt.Sprintf(
			"%d attractions requested; truncated to the first %d (%d orderings evaluated)",
			len(validIDs), MaxStops, factorial(MaxStops),
		))
		validIDs = validIDs[:MaxStops]
	}

	if len(validIDs) == 0 {
		return &domain.OptimizationResult{
			Explanation:       "No valid attractions provided.",
			Warnings:          warnings,
			ComputationTimeMs: elapsedMs(started),
		}, nil
	}

	perms := permutations(len(validIDs))
	evals := make([]evaluation, len(perms))

	// Simulations are independent and read-only, so fan out over a bounded
	// worker pool. Results land in their enumeration slot, which keeps the
	// reduction below identical to a serial evaluation.
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < evalWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				ordering := make([]string, len(validIDs))
				for k, idx := range perms[i] {
					ordering[k] = validIDs[idx]
				}
				legs, score := SimulateTimeline(
					ref, req.Start, ordering, req.City, req.Date, req.StartHour, req.PreferenceMode,
				)
				evals[i] = evaluation{legs: legs, score: score}
			}
		}()
	}
	for i := range perms {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	// Minimum by strict less-than in enumeration order: first seen wins ties.
	best := 0
	for i := 1; i < len(evals); i++ {
		if evals[i].score.TotalScore < evals[best].score.TotalScore {
			best = i
		}
	}

	allScores := make([]domain.CandidateSummary, 0, len(evals))
	for i, ev := range evals {
		names := make([]string, 0, len(perms[i]))
		for _, idx := range perms[i] {
			if attr, ok := ref.LookupAttraction(validIDs[idx]); ok {
				names = append(names, attr.Name)
			}
		}
		allScores = append(allScores, domain.CandidateSummary{
			Permutation: names,
			TotalScore:  ev.score.TotalScore,
			AvgScore:    ev.score.AvgScore,
		})
	}
	sort.SliceStable(allScores, func(i, j int) bool {
		return allScores[i].TotalScore < allScores[j].TotalScore
	})

	winner := evals[best]
	result := &domain.OptimizationResult{
		Timeline:              winner.legs,
		TotalImpactScore:      winner.score.TotalScore,
		ImpactBreakdown:       winner.score,
		PermutationsEvaluated: len(perms),
		Warnings:              warnings,
		AllScores:             allScores,
	}

	result.OrderedRoute = make([]domain.RouteStop, 0, len(winner.legs))
	for i, leg := range winner.legs {
		result.OrderedRoute = append(result.OrderedRoute, domain.RouteStop{
			Order:        i + 1,
			AttractionID: leg.AttractionID,
			Name:         leg.AttractionName,
		})
		result.TotalTravelTimeMin += leg.TravelDurationMin
		result.TotalVisitTimeMin += leg.VisitDurationMin
	}

	if len(winner.legs) > 0 {
		result.ItineraryStart = winner.legs[0].TravelStart.Format("15:04")
		result.ItineraryEnd = winner.legs[len(winner.legs)-1].VisitEnd.Format("15:04")
		result.Explanation = buildExplanation(ref, winner.legs, winner.score, allScores, req.PreferenceMode, req.City, req.Date)
	}

	result.ComputationTimeMs = elapsedMs(started)
	return result, nil
}

// permutations enumerates index orderings of [0..n) in lexicographic order.
func permutations(n int) [][]int {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}

	var out [][]int
	var generate func(prefix []int, remaining []int)
	generate = func(prefix []int, remaining []int) {
		if len(remaining) == 0 {
			perm := make([]int, len(prefix))
			copy(perm, prefix)
			out = append(out, perm)
			return
		}
		for i, v := range remaining {
			rest := make([]int, 0, len(remaining)-1)
			rest = append(rest, remaining[:i]...)
			rest = append(rest, remaining[i+1:]...)
			generate(append(prefix, v), rest)
		}
	}
	generate(make([]int, 0, n), indices)

	return out
}

func factorial(n int) int {
	f := 1
	for i := 2; i <= n; i++ {
		f *= i
	}
	return f
}

func elapsedMs(start time.Time) float64 {
	return round1(float64(time.Since(start).Microseconds()) / 1000)
}
