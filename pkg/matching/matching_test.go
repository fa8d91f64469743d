package matching

import (
	"testing"

	"github.com/arnavshah/capacity-api-go/pkg/models"
)

func intPtr(v int) *int { return &v }

func TestSuggest(t *testing.T) {
	engineers := []models.Profile{
		{ID: "e1", Name: "Alice", Role: models.RoleEngineer, Skills: []string{"react"}, MaxCapacity: intPtr(100)},
		{ID: "e2", Name: "Bob", Role: models.RoleEngineer, Skills: []string{"React", "Node.js"}, MaxCapacity: intPtr(100)},
		{ID: "e3", Name: "Carol", Role: models.RoleEngineer, Skills: []string{"React"}, MaxCapacity: intPtr(60)},
		{ID: "e4", Name: "Dan", Role: models.RoleEngineer, Skills: []string{"Python"}},
	}
	assignments := []models.Assignment{
		{ID: "a1", EngineerID: "e1", ProjectID: "p2", AllocationPercentage: 20},
		{ID: "a2", EngineerID: "e3", ProjectID: "p2", AllocationPercentage: 40},
	}
	project := models.Project{ID: "p1", RequiredSkills: []string{"React", "Node.js"}}

	m := NewMatcher(engineers, assignments)
	s := m.Suggest(project, 50)

	if len(s.Candidates) != 2 {
		t.Fatalf("Expected 2 candidates, got %d", len(s.Candidates))
	}
	if s.Candidates[0].EngineerID != "e2" {
		t.Errorf("Expected best skill match e2 first, got %s", s.Candidates[0].EngineerID)
	}
	if s.Candidates[0].SkillCoverage != 100 {
		t.Errorf("Expected full skill coverage, got %f", s.Candidates[0].SkillCoverage)
	}
	if s.Candidates[1].EngineerID != "e1" || s.Candidates[1].AvailableAfter != 30 {
		t.Errorf("Expected e1 with 30%% left, got %+v", s.Candidates[1])
	}

	if len(s.Excluded) != 2 {
		t.Fatalf("Expected 2 exclusions, got %d", len(s.Excluded))
	}
	if s.Excluded[0].EngineerID != "e3" || s.Excluded[0].Reasons[0] != "only 20% available, 50% requested" {
		t.Errorf("Expected e3 excluded for capacity, got %+v", s.Excluded[0])
	}
	if s.Excluded[1].EngineerID != "e4" || len(s.Excluded[1].Reasons) != 1 {
		t.Errorf("Expected e4 excluded for skills only, got %+v", s.Excluded[1])
	}
}

func TestSuggest_AlreadyAssignedAndDefaults(t *testing.T) {
	engineers := []models.Profile{
		{ID: "e1", Name: "Alice", Role: models.RoleEngineer},
		{ID: "e2", Name: "Bob", Role: models.RoleEngineer},
	}
	assignments := []models.Assignment{
		{ID: "a1", EngineerID: "e1", ProjectID: "p1", AllocationPercentage: 10},
	}

	s := NewMatcher(engineers, assignments).Suggest(models.Project{ID: "p1"}, 0)

	if s.Allocation != DefaultAllocation {
		t.Errorf("Expected default allocation %d, got %d", DefaultAllocation, s.Allocation)
	}
	if len(s.Candidates) != 1 || s.Candidates[0].EngineerID != "e2" {
		t.Fatalf("Expected only e2 as candidate, got %+v", s.Candidates)
	}
	if len(s.Excluded) != 1 || s.Excluded[0].Reasons[0] != "already assigned to this project" {
		t.Errorf("Expected e1 excluded as already assigned, got %+v", s.Excluded)
	}
}

func TestFits(t *testing.T) {
	m := NewMatcher(nil, nil)
	r := m.team["missing"]
	r.MaxCapacity = 100
	r.Allocated = 50

	if !m.Fits(r, 50) {
		t.Errorf("Expected exactly filling capacity to fit")
	}
	if m.Fits(r, 60) {
		t.Errorf("Expected exceeding capacity not to fit")
	}
}
