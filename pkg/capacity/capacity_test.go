package capacity

import (
	"testing"

	"github.com/arnavshah/capacity-api-go/pkg/models"
)

func intPtr(v int) *int { return &v }

func engineer(id string, maxCapacity *int) models.Profile {
	return models.Profile{ID: id, Name: "Engineer " + id, Role: models.RoleEngineer, MaxCapacity: maxCapacity}
}

func assignment(id, engineerID string, allocation int) models.Assignment {
	return models.Assignment{ID: id, EngineerID: engineerID, ProjectID: "p1", AllocationPercentage: allocation, Role: "Developer"}
}

func TestEngineerCapacity_Overallocated(t *testing.T) {
	e := engineer("e1", intPtr(100))
	assignments := []models.Assignment{
		assignment("a1", "e1", 80),
		assignment("a2", "e1", 50),
		assignment("a3", "e2", 40),
	}

	r := EngineerCapacity(e, assignments)

	if r.Allocated != 130 {
		t.Errorf("Expected allocated 130, got %d", r.Allocated)
	}
	if r.Available != -30 {
		t.Errorf("Expected available -30, got %d", r.Available)
	}
	if !r.IsOverallocated {
		t.Errorf("Expected engineer to be overallocated")
	}
	if r.AssignmentCount != 2 {
		t.Errorf("Expected 2 assignments, got %d", r.AssignmentCount)
	}
	if r.UtilizationPct != 130 {
		t.Errorf("Expected utilization 130, got %f", r.UtilizationPct)
	}
}

func TestEngineerCapacity_EqualToMaxIsNotOverallocated(t *testing.T) {
	e := engineer("e1", intPtr(60))
	r := EngineerCapacity(e, []models.Assignment{assignment("a1", "e1", 60)})

	if r.Allocated != 60 || r.Available != 0 {
		t.Errorf("Expected allocated 60 available 0, got %d and %d", r.Allocated, r.Available)
	}
	if r.IsOverallocated {
		t.Errorf("Expected allocation equal to max capacity not to be overallocated")
	}
}

func TestEngineerCapacity_NoAssignments(t *testing.T) {
	e := engineer("e1", intPtr(80))
	r := EngineerCapacity(e, nil)

	if r.Allocated != 0 {
		t.Errorf("Expected allocated 0, got %d", r.Allocated)
	}
	if r.Available != 80 {
		t.Errorf("Expected available 80, got %d", r.Available)
	}
	if r.IsOverallocated {
		t.Errorf("Expected engineer without assignments not to be overallocated")
	}
}

func TestEngineerCapacity_DefaultMaxCapacity(t *testing.T) {
	assignments := []models.Assignment{assignment("a1", "e1", 70), assignment("a2", "e1", 40)}

	withDefault := EngineerCapacity(engineer("e1", nil), assignments)
	explicit := EngineerCapacity(engineer("e1", intPtr(100)), assignments)

	if withDefault != explicit {
		t.Errorf("Expected missing max capacity to behave like 100, got %+v vs %+v", withDefault, explicit)
	}
	if withDefault.MaxCapacity != models.DefaultMaxCapacity {
		t.Errorf("Expected max capacity %d, got %d", models.DefaultMaxCapacity, withDefault.MaxCapacity)
	}
}

func TestEngineerCapacity_OrderIndependentAndIdempotent(t *testing.T) {
	e := engineer("e1", intPtr(100))
	forward := []models.Assignment{
		assignment("a1", "e1", 10),
		assignment("a2", "e2", 90),
		assignment("a3", "e1", 30),
		assignment("a4", "e1", 20),
	}
	reversed := make([]models.Assignment, len(forward))
	for i, a := range forward {
		reversed[len(forward)-1-i] = a
	}

	first := EngineerCapacity(e, forward)
	second := EngineerCapacity(e, forward)
	third := EngineerCapacity(e, reversed)

	if first != second {
		t.Errorf("Expected repeated calls to match, got %+v vs %+v", first, second)
	}
	if first != third {
		t.Errorf("Expected order not to matter, got %+v vs %+v", first, third)
	}
	if forward[0].ID != "a1" {
		t.Errorf("Expected input to be left untouched")
	}
}

func TestEngineerCapacity_OutOfRangeAllocations(t *testing.T) {
	tests := []struct {
		name          string
		allocations   []int
		maxCapacity   int
		wantAllocated int
		wantAvailable int
		wantOver      bool
	}{
		{"negative allocation", []int{-20, 50}, 100, 30, 70, false},
		{"zero allocation", []int{0}, 100, 0, 100, false},
		{"single allocation over 100", []int{150}, 100, 150, -50, true},
		{"zero max capacity", []int{10}, 0, 10, -10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var assignments []models.Assignment
			for i, alloc := range tt.allocations {
				assignments = append(assignments, assignment(string(rune('a'+i)), "e1", alloc))
			}
			r := EngineerCapacity(engineer("e1", intPtr(tt.maxCapacity)), assignments)
			if r.Allocated != tt.wantAllocated {
				t.Errorf("Expected allocated %d, got %d", tt.wantAllocated, r.Allocated)
			}
			if r.Available != tt.wantAvailable {
				t.Errorf("Expected available %d, got %d", tt.wantAvailable, r.Available)
			}
			if r.IsOverallocated != tt.wantOver {
				t.Errorf("Expected overallocated %v, got %v", tt.wantOver, r.IsOverallocated)
			}
		})
	}
}

func TestUtilizationPct(t *testing.T) {
	if got := UtilizationPct(50, 60); got != 83.33 {
		t.Errorf("Expected 83.33, got %f", got)
	}
	if got := UtilizationPct(50, 0); got != 0 {
		t.Errorf("Expected 0 for zero capacity, got %f", got)
	}
}

func TestSummarizeTeam(t *testing.T) {
	engineers := []models.Profile{
		engineer("e1", intPtr(100)),
		{ID: "m1", Name: "Manager", Role: models.RoleManager},
		engineer("e2", intPtr(50)),
		engineer("e3", nil),
	}
	assignments := []models.Assignment{
		assignment("a1", "e1", 80),
		assignment("a2", "e2", 60),
		assignment("a3", "ghost", 100),
	}

	summary := SummarizeTeam(engineers, assignments)

	if summary.EngineerCount != 3 {
		t.Fatalf("Expected 3 engineers, got %d", summary.EngineerCount)
	}
	wantOrder := []string{"e1", "e2", "e3"}
	for i, id := range wantOrder {
		if summary.Engineers[i].EngineerID != id {
			t.Errorf("Expected engineer %d to be %s, got %s", i, id, summary.Engineers[i].EngineerID)
		}
	}
	if summary.OverallocatedCount != 1 {
		t.Errorf("Expected 1 overallocated engineer, got %d", summary.OverallocatedCount)
	}
	// (20 + -10 + 100) / 3
	if summary.AverageAvailable != 36.67 {
		t.Errorf("Expected average available 36.67, got %f", summary.AverageAvailable)
	}
}

func TestSummarizeTeam_Empty(t *testing.T) {
	summary := SummarizeTeam(nil, []models.Assignment{assignment("a1", "e1", 50)})

	if summary.EngineerCount != 0 || summary.OverallocatedCount != 0 {
		t.Errorf("Expected zero counts, got %+v", summary)
	}
	if summary.AverageAvailable != 0 {
		t.Errorf("Expected zero average, got %f", summary.AverageAvailable)
	}
	if summary.Engineers == nil {
		t.Errorf("Expected an empty, non-nil engineer list")
	}
}

func TestSummarizeTeam_MatchesEngineerCapacity(t *testing.T) {
	engineers := []models.Profile{engineer("e1", intPtr(100)), engineer("e2", intPtr(70))}
	assignments := []models.Assignment{
		assignment("a1", "e1", 30),
		assignment("a2", "e2", 40),
		assignment("a3", "e1", 50),
	}

	summary := SummarizeTeam(engineers, assignments)
	for i, e := range engineers {
		if want := EngineerCapacity(e, assignments); summary.Engineers[i] != want {
			t.Errorf("Expected %+v, got %+v", want, summary.Engineers[i])
		}
	}
}

func TestBalanceScore(t *testing.T) {
	even := []Result{{UtilizationPct: 50}, {UtilizationPct: 50}}
	if got := BalanceScore(even); got != 100 {
		t.Errorf("Expected 100 for an even team, got %f", got)
	}

	if got := BalanceScore(nil); got != 100 {
		t.Errorf("Expected 100 for an empty team, got %f", got)
	}

	skewed := []Result{{UtilizationPct: 100}, {UtilizationPct: 0}}
	if got := BalanceScore(skewed); got != 0 {
		t.Errorf("Expected 0 for a fully skewed team, got %f", got)
	}
}
