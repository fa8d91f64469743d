// Package capacity derives utilization figures from a snapshot of engineers,
// projects and assignments. Every function here is pure: inputs are never
// mutated and the same snapshot always yields the same result.
package capacity

import (
	"math"

	"github.com/arnavshah/capacity-api-go/pkg/models"
	"github.com/shopspring/decimal"
)

// Result is the derived utilization of one engineer
type Result struct {
	EngineerID      string           `json:"engineer_id"`
	Name            string           `json:"name"`
	Department      string           `json:"department,omitempty"`
	Seniority       models.Seniority `json:"seniority"`
	MaxCapacity     int              `json:"max_capacity"`
	Allocated       int              `json:"allocated"`
	Available       int              `json:"available"`
	IsOverallocated bool             `json:"is_overallocated"`
	AssignmentCount int              `json:"assignment_count"`
	UtilizationPct  float64          `json:"utilization_pct"`
}

// TeamSummary aggregates Results across a team
type TeamSummary struct {
	Engineers          []Result `json:"engineers"`
	EngineerCount      int      `json:"engineer_count"`
	OverallocatedCount int      `json:"overallocated_count"`
	AverageAvailable   float64  `json:"average_available"`
}

// tally is the running total of one engineer's assignments
type tally struct {
	allocated int
	count     int
}

// counted reports whether a profile takes part in team aggregates
func counted(p models.Profile) bool {
	return p.IsEngineer()
}

// tallyByEngineer sums allocations per engineer id in one pass
func tallyByEngineer(assignments []models.Assignment) map[string]tally {
	totals := make(map[string]tally)
	for _, a := range assignments {
		t := totals[a.EngineerID]
		t.allocated += a.AllocationPercentage
		t.count++
		totals[a.EngineerID] = t
	}
	return totals
}

// EngineerCapacity computes the utilization of one engineer over all of
// their assignments. Assignment dates are not considered.
func EngineerCapacity(engineer models.Profile, assignments []models.Assignment) Result {
	var t tally
	for _, a := range assignments {
		if a.EngineerID == engineer.ID {
			t.allocated += a.AllocationPercentage
			t.count++
		}
	}
	return newResult(engineer, t)
}

func newResult(engineer models.Profile, t tally) Result {
	maxCapacity := engineer.EffectiveMaxCapacity()
	return Result{
		EngineerID:      engineer.ID,
		Name:            engineer.Name,
		Department:      engineer.Department,
		Seniority:       engineer.EffectiveSeniority(),
		MaxCapacity:     maxCapacity,
		Allocated:       t.allocated,
		Available:       maxCapacity - t.allocated,
		IsOverallocated: t.allocated > maxCapacity,
		AssignmentCount: t.count,
		UtilizationPct:  UtilizationPct(t.allocated, maxCapacity),
	}
}

// UtilizationPct returns allocated as a percentage of maxCapacity, rounded to
// two places. A non-positive maxCapacity yields 0.
func UtilizationPct(allocated, maxCapacity int) float64 {
	if maxCapacity <= 0 {
		return 0
	}
	return decimal.NewFromInt(int64(allocated)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(maxCapacity))).
		Round(2).
		InexactFloat64()
}

// SummarizeTeam computes a Result per engineer, in input order, plus team totals.
// With no engineers every total is zero.
func SummarizeTeam(engineers []models.Profile, assignments []models.Assignment) TeamSummary {
	totals := tallyByEngineer(assignments)

	summary := TeamSummary{Engineers: make([]Result, 0, len(engineers))}
	var availableSum int64
	for _, e := range engineers {
		if !counted(e) {
			continue
		}
		r := newResult(e, totals[e.ID])
		summary.Engineers = append(summary.Engineers, r)
		availableSum += int64(r.Available)
		if r.IsOverallocated {
			summary.OverallocatedCount++
		}
	}

	summary.EngineerCount = len(summary.Engineers)
	if summary.EngineerCount > 0 {
		summary.AverageAvailable = decimal.NewFromInt(availableSum).
			Div(decimal.NewFromInt(int64(summary.EngineerCount))).
			Round(2).
			InexactFloat64()
	}
	return summary
}

// BalanceScore returns 0-100 describing how evenly utilization is spread.
// 100 means every engineer carries the same share (standard deviation 0).
func BalanceScore(results []Result) float64 {
	if len(results) == 0 {
		return 100.0
	}

	var sum float64
	for _, r := range results {
		sum += r.UtilizationPct
	}

	if sum <= 0 {
		return 100.0
	}

	mean := sum / float64(len(results))

	var varianceSum float64
	for _, r := range results {
		diff := r.UtilizationPct - mean
		varianceSum += diff * diff
	}
	stdDev := math.Sqrt(varianceSum / float64(len(results)))

	// 0 once the deviation reaches the mean
	score := (1.0 - (stdDev / mean)) * 100.0
	if score < 0 {
		return 0.0
	}
	return decimal.NewFromFloat(score).Round(2).InexactFloat64()
}
