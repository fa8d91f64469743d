package capacity

import (
	"testing"
	"time"

	"github.com/arnavshah/capacity-api-go/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSnapshot() models.Snapshot {
	return models.Snapshot{
		Profiles: []models.Profile{
			{ID: "m1", Name: "Sarah Johnson", Role: models.RoleManager},
			{ID: "e1", Name: "John Doe", Role: models.RoleEngineer, Skills: []string{"React", "TypeScript"}, Seniority: models.SenioritySenior, MaxCapacity: intPtr(100)},
			{ID: "e2", Name: "Jane Smith", Role: models.RoleEngineer, Skills: []string{"Python", "Django"}, MaxCapacity: intPtr(80)},
		},
		Projects: []models.Project{
			{ID: "p1", Name: "E-commerce Platform", Status: models.StatusActive, RequiredSkills: []string{"React"}},
			{ID: "p2", Name: "Mobile App Backend", Status: models.StatusPlanning, RequiredSkills: []string{"Python"}},
		},
		Assignments: []models.Assignment{
			{ID: "a1", EngineerID: "e1", ProjectID: "p1", AllocationPercentage: 80, StartDate: "2024-01-15", EndDate: "2024-04-15", Role: "Tech Lead"},
			{ID: "a2", EngineerID: "e2", ProjectID: "p2", AllocationPercentage: 60, StartDate: "2024-02-01", EndDate: "2024-05-01", Role: "Backend Developer"},
			{ID: "a3", EngineerID: "e2", ProjectID: "gone", AllocationPercentage: 40, StartDate: "2024-02-01", EndDate: "2024-05-01", Role: "Reviewer"},
		},
	}
}

func TestIsActive(t *testing.T) {
	a := models.Assignment{StartDate: "2024-01-15", EndDate: "2024-04-15"}

	assert.True(t, IsActive(a, time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)))
	assert.True(t, IsActive(a, time.Date(2024, 4, 15, 23, 0, 0, 0, time.UTC)))
	assert.False(t, IsActive(a, time.Date(2024, 4, 16, 0, 0, 0, 0, time.UTC)))
	assert.False(t, IsActive(a, time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC)))
	assert.False(t, IsActive(models.Assignment{StartDate: "soon", EndDate: "later"}, time.Now()))
}

func TestFilterEngineers(t *testing.T) {
	engineers := sampleSnapshot().Engineers()

	assert.Len(t, FilterEngineers(engineers, ""), 2)

	byName := FilterEngineers(engineers, "jane")
	require.Len(t, byName, 1)
	assert.Equal(t, "e2", byName[0].ID)

	bySkill := FilterEngineers(engineers, "typescript")
	require.Len(t, bySkill, 1)
	assert.Equal(t, "e1", bySkill[0].ID)

	assert.Empty(t, FilterEngineers(engineers, "cobol"))
}

func TestFilterProjects(t *testing.T) {
	projects := sampleSnapshot().Projects

	got := FilterProjects(projects, "PYTHON")
	require.Len(t, got, 1)
	assert.Equal(t, "p2", got[0].ID)

	assert.Len(t, FilterProjects(projects, "platform"), 1)
}

func TestNames(t *testing.T) {
	s := sampleSnapshot()
	assert.Equal(t, "John Doe", EngineerName(s.Profiles, "e1"))
	assert.Equal(t, models.UnknownName, EngineerName(s.Profiles, "nobody"))
	assert.Equal(t, "Mobile App Backend", ProjectName(s.Projects, "p2"))
	assert.Equal(t, models.UnknownName, ProjectName(s.Projects, "gone"))
}

func TestViews(t *testing.T) {
	s := sampleSnapshot()
	views := Views(s, s.Assignments, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))

	require.Len(t, views, 3)
	assert.Equal(t, "John Doe", views[0].EngineerName)
	assert.Equal(t, "E-commerce Platform", views[0].ProjectName)
	assert.True(t, views[0].IsActive)
	assert.Equal(t, models.UnknownName, views[2].ProjectName)
}

func TestBuildTeamDashboard(t *testing.T) {
	d := BuildTeamDashboard(sampleSnapshot())

	assert.Equal(t, 2, d.TotalEngineers)
	assert.Equal(t, 1, d.ActiveProjects)
	assert.Equal(t, 3, d.TotalAssignments)
	assert.Equal(t, 1, d.Overallocated)
	require.Len(t, d.Projects, 1)
	assert.Equal(t, "p1", d.Projects[0].ID)

	require.Len(t, d.Team.Engineers, 2)
	assert.Equal(t, 100, d.Team.Engineers[1].Allocated)
	assert.Equal(t, -20, d.Team.Engineers[1].Available)
}

func TestBuildEngineerDashboard(t *testing.T) {
	s := sampleSnapshot()
	d := BuildEngineerDashboard(s, "e2", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, 100, d.Capacity.Allocated)
	assert.True(t, d.Capacity.IsOverallocated)
	assert.Equal(t, []string{"Python", "Django"}, d.Skills)
	require.Len(t, d.Assignments, 2)
	assert.False(t, d.Assignments[0].IsActive)

	unknown := BuildEngineerDashboard(s, "nobody", time.Now())
	assert.Equal(t, 0, unknown.Capacity.Allocated)
	assert.Equal(t, models.DefaultMaxCapacity, unknown.Capacity.Available)
	assert.Empty(t, unknown.Assignments)
}

func TestBuildAnalytics(t *testing.T) {
	a := BuildAnalytics(sampleSnapshot(), DefaultTopSkills)

	require.Len(t, a.Capacity, 2)
	assert.Equal(t, CapacityBar{Name: "John", Allocated: 80, Available: 20, MaxCapacity: 100}, a.Capacity[0])
	assert.Equal(t, []SeniorityCount{
		{Seniority: models.SenioritySenior, Count: 1},
		{Seniority: models.SeniorityJunior, Count: 1},
	}, a.Seniority)
	assert.Len(t, a.TopSkills, 4)
	assert.Equal(t, 2, a.Stats.TotalEngineers)
	assert.Equal(t, float64(0), a.Stats.AverageAvailable)
	assert.Equal(t, 4, a.Stats.UniqueSkills)
	assert.Equal(t, 3, a.Stats.TotalAssignments)
}
