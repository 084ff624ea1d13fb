// Package businessflow contains the core business logic and use cases for marketplace workflows
package businessflow

import (
	"sort"

	"github.com/amirphl/Izanagi/models"
)

// AllocationResult is the outcome of a budget allocation pass
type AllocationResult struct {
	Screens         []*models.Screen
	TotalCost       float64
	TotalTraffic    int
	RemainingBudget float64
}

// SelectOptimalScreens picks a set of screens maximizing delivered traffic
// within the given budget. Candidates are ranked by traffic per unit price
// and bought greedily in rank order while the budget allows.
//
// The ranking compares cross products instead of dividing, so two screens
// with equal value density never diverge through rounding. The sort is
// stable; candidates that tie keep their input order, which makes the
// whole selection deterministic for a fixed input.
//
// Greedy is an approximation. A skipped screen is never revisited even if
// later skips would have freed enough budget for it.
func SelectOptimalScreens(candidates []*models.Screen, budget float64) AllocationResult {
	result := AllocationResult{
		Screens:         []*models.Screen{},
		RemainingBudget: budget,
	}
	if budget <= 0 {
		result.RemainingBudget = 0
		return result
	}

	// Screens with a non-positive price have no defined value density.
	ranked := make([]*models.Screen, 0, len(candidates))
	for _, screen := range candidates {
		if screen != nil && screen.PricePerTime > 0 {
			ranked = append(ranked, screen)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		// traffic_i/price_i > traffic_j/price_j, cross-multiplied.
		// Prices are positive here so the inequality direction holds.
		return float64(ranked[i].Traffic)*ranked[j].PricePerTime >
			float64(ranked[j].Traffic)*ranked[i].PricePerTime
	})

	remaining := budget
	for _, screen := range ranked {
		if screen.PricePerTime > remaining {
			continue
		}
		result.Screens = append(result.Screens, screen)
		result.TotalCost += screen.PricePerTime
		result.TotalTraffic += screen.Traffic
		remaining -= screen.PricePerTime
	}
	result.RemainingBudget = remaining

	return result
}
