package capacity

import (
	"time"

	"github.com/arnavshah/capacity-api-go/pkg/models"
)

// TeamDashboard is the manager overview of a snapshot
type TeamDashboard struct {
	TotalEngineers   int              `json:"total_engineers"`
	ActiveProjects   int              `json:"active_projects"`
	TotalAssignments int              `json:"total_assignments"`
	Overallocated    int              `json:"overallocated"`
	Team             TeamSummary      `json:"team"`
	Projects         []models.Project `json:"projects"`
}

// EngineerDashboard is an engineer's personal view of a snapshot
type EngineerDashboard struct {
	Capacity    Result                  `json:"capacity"`
	Skills      []string                `json:"skills"`
	Assignments []models.AssignmentView `json:"assignments"`
}

// CapacityBar is one row of the utilization chart
type CapacityBar struct {
	Name        string `json:"name"`
	Allocated   int    `json:"allocated"`
	Available   int    `json:"available"`
	MaxCapacity int    `json:"max_capacity"`
}

// TeamStats are the headline numbers of the analytics view
type TeamStats struct {
	TotalEngineers   int     `json:"total_engineers"`
	AverageAvailable float64 `json:"average_available"`
	UniqueSkills     int     `json:"unique_skills"`
	TotalAssignments int     `json:"total_assignments"`
	BalanceScore     float64 `json:"balance_score"`
}

// Analytics holds the series rendered by the team analytics view
type Analytics struct {
	Capacity  []CapacityBar    `json:"capacity"`
	Seniority []SeniorityCount `json:"seniority"`
	TopSkills []SkillCount     `json:"top_skills"`
	Stats     TeamStats        `json:"stats"`
}

// BuildTeamDashboard derives the manager overview
func BuildTeamDashboard(s models.Snapshot) TeamDashboard {
	team := SummarizeTeam(s.Engineers(), s.Assignments)
	return TeamDashboard{
		TotalEngineers:   team.EngineerCount,
		ActiveProjects:   CountByStatus(s.Projects, models.StatusActive),
		TotalAssignments: len(s.Assignments),
		Overallocated:    team.OverallocatedCount,
		Team:             team,
		Projects:         ProjectsWithStatus(s.Projects, models.StatusActive),
	}
}

// BuildEngineerDashboard derives one engineer's view. An unknown engineer
// gets a default-capacity result with no assignments counted against a profile.
func BuildEngineerDashboard(s models.Snapshot, engineerID string, ref time.Time) EngineerDashboard {
	engineer, ok := FindProfile(s.Profiles, engineerID)
	if !ok {
		engineer = models.Profile{ID: engineerID, Name: models.UnknownName}
	}
	mine := AssignmentsFor(engineerID, s.Assignments)
	skills := engineer.Skills
	if skills == nil {
		skills = []string{}
	}
	return EngineerDashboard{
		Capacity:    EngineerCapacity(engineer, mine),
		Skills:      skills,
		Assignments: Views(s, mine, ref),
	}
}

// BuildAnalytics derives the team analytics series
func BuildAnalytics(s models.Snapshot, topN int) Analytics {
	engineers := s.Engineers()
	team := SummarizeTeam(engineers, s.Assignments)

	bars := make([]CapacityBar, 0, len(team.Engineers))
	for _, r := range team.Engineers {
		bars = append(bars, CapacityBar{
			Name:        models.Profile{Name: r.Name}.FirstName(),
			Allocated:   r.Allocated,
			Available:   r.Available,
			MaxCapacity: r.MaxCapacity,
		})
	}

	return Analytics{
		Capacity:  bars,
		Seniority: SeniorityDistribution(engineers),
		TopSkills: TopSkills(engineers, topN),
		Stats: TeamStats{
			TotalEngineers:   team.EngineerCount,
			AverageAvailable: team.AverageAvailable,
			UniqueSkills:     UniqueSkills(engineers),
			TotalAssignments: len(s.Assignments),
			BalanceScore:     BalanceScore(team.Engineers),
		},
	}
}
