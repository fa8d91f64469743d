package matching

import (
	"fmt"
	"sort"
	"strings"

	"github.com/arnavshah/capacity-api-go/pkg/capacity"
	"github.com/arnavshah/capacity-api-go/pkg/models"
)

// DefaultAllocation is the allocation assumed when none is requested
const DefaultAllocation = 50

// Candidate is an engineer who could take on the requested allocation
type Candidate struct {
	EngineerID     string   `json:"engineer_id"`
	Name           string   `json:"name"`
	MatchedSkills  []string `json:"matched_skills"`
	SkillCoverage  float64  `json:"skill_coverage"`
	Available      int      `json:"available"`
	AvailableAfter int      `json:"available_after"`
}

// Exclusion explains why an engineer was not suggested
type Exclusion struct {
	EngineerID string   `json:"engineer_id"`
	Name       string   `json:"name"`
	Reasons    []string `json:"reasons"`
}

// Suggestion is the ranked outcome for one project
type Suggestion struct {
	ProjectID  string      `json:"project_id"`
	Allocation int         `json:"allocation"`
	Candidates []Candidate `json:"candidates"`
	Excluded   []Exclusion `json:"excluded"`
}

// Matcher ranks engineers for projects over one snapshot
type Matcher struct {
	Engineers   []models.Profile
	Assignments []models.Assignment
	team        map[string]capacity.Result
}

// NewMatcher creates a matcher over the engineers and assignments of a snapshot
func NewMatcher(engineers []models.Profile, assignments []models.Assignment) *Matcher {
	summary := capacity.SummarizeTeam(engineers, assignments)
	team := make(map[string]capacity.Result, len(summary.Engineers))
	for _, r := range summary.Engineers {
		team[r.EngineerID] = r
	}
	return &Matcher{
		Engineers:   engineers,
		Assignments: assignments,
		team:        team,
	}
}

// Fits checks if the engineer has room for the allocation
func (m *Matcher) Fits(r capacity.Result, allocation int) bool {
	return r.Allocated+allocation <= r.MaxCapacity
}

// MatchedSkills returns the project's required skills the engineer has,
// in the project's order. Skills compare case-insensitively.
func (m *Matcher) MatchedSkills(engineer models.Profile, project models.Project) []string {
	matched := []string{}
	for _, required := range project.RequiredSkills {
		for _, skill := range engineer.Skills {
			if strings.EqualFold(skill, required) {
				matched = append(matched, required)
				break
			}
		}
	}
	return matched
}

// AlreadyAssigned checks if the engineer already has an assignment on the project
func (m *Matcher) AlreadyAssigned(engineerID, projectID string) bool {
	for _, a := range m.Assignments {
		if a.EngineerID == engineerID && a.ProjectID == projectID {
			return true
		}
	}
	return false
}

// Suggest ranks engineers able to take allocation percent on project.
// Candidates with more matching skills come first, then those with the most
// room left. Everyone else is listed with the reasons they were excluded.
func (m *Matcher) Suggest(project models.Project, allocation int) Suggestion {
	if allocation <= 0 {
		allocation = DefaultAllocation
	}

	s := Suggestion{
		ProjectID:  project.ID,
		Allocation: allocation,
		Candidates: []Candidate{},
		Excluded:   []Exclusion{},
	}

	for _, e := range m.Engineers {
		r, ok := m.team[e.ID]
		if !ok {
			continue
		}

		matched := m.MatchedSkills(e, project)
		fits := m.Fits(r, allocation)
		hasSkills := len(project.RequiredSkills) == 0 || len(matched) > 0
		assigned := m.AlreadyAssigned(e.ID, project.ID)

		if fits && hasSkills && !assigned {
			s.Candidates = append(s.Candidates, Candidate{
				EngineerID:     e.ID,
				Name:           e.Name,
				MatchedSkills:  matched,
				SkillCoverage:  coverage(len(matched), len(project.RequiredSkills)),
				Available:      r.Available,
				AvailableAfter: r.Available - allocation,
			})
			continue
		}

		var reasons []string
		if !fits {
			reasons = append(reasons, fmt.Sprintf("only %d%% available, %d%% requested", r.Available, allocation))
		}
		if !hasSkills {
			reasons = append(reasons, "no matching skills ("+strings.Join(project.RequiredSkills, ", ")+")")
		}
		if assigned {
			reasons = append(reasons, "already assigned to this project")
		}
		s.Excluded = append(s.Excluded, Exclusion{EngineerID: e.ID, Name: e.Name, Reasons: reasons})
	}

	sort.SliceStable(s.Candidates, func(i, j int) bool {
		a, b := s.Candidates[i], s.Candidates[j]
		if len(a.MatchedSkills) != len(b.MatchedSkills) {
			return len(a.MatchedSkills) > len(b.MatchedSkills)
		}
		return a.Available > b.Available
	})
	return s
}

// coverage is matched as a percentage of required, 100 when nothing is required
func coverage(matched, required int) float64 {
	if required == 0 {
		return 100
	}
	return capacity.UtilizationPct(matched, required)
}
