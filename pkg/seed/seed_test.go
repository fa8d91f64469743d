package seed

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/arnavshah/capacity-api-go/pkg/capacity"
	"github.com/arnavshah/capacity-api-go/pkg/database"
	"github.com/arnavshah/capacity-api-go/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *database.Store {
	t.Helper()
	db, err := database.InitDB("", filepath.Join(t.TempDir(), "seed.db"))
	require.NoError(t, err)
	return database.NewStore(db)
}

func TestApply_Sample(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	res, err := Apply(ctx, store, Sample(), "", nil)
	require.NoError(t, err)
	assert.Equal(t, Result{Profiles: 5, Projects: 4, Assignments: 4}, res)

	snap, err := store.Snapshot(ctx)
	require.NoError(t, err)

	dashboard := capacity.BuildTeamDashboard(snap)
	assert.Equal(t, 4, dashboard.TotalEngineers)
	assert.Equal(t, 2, dashboard.ActiveProjects)
	assert.Equal(t, 4, dashboard.TotalAssignments)
	assert.Equal(t, 0, dashboard.Overallocated)

	// 20 + 20 + 10 + 10 over four engineers
	assert.Equal(t, 15.0, dashboard.Team.AverageAvailable)
}

func TestApply_Idempotent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := Apply(ctx, store, Sample(), "", nil)
	require.NoError(t, err)

	res, err := Apply(ctx, store, Sample(), "", nil)
	require.NoError(t, err)
	assert.Equal(t, Result{}, res)

	assignments, err := store.ListAssignments(ctx)
	require.NoError(t, err)
	assert.Len(t, assignments, 4)
}

func TestApply_SkipsUnknownReferences(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	d := Sample()
	d.Assignments = append(d.Assignments, AssignmentSeed{
		EngineerEmail: "ghost@company.com", ProjectName: "E-commerce Platform", AllocationPercentage: 10, Role: "Dev",
	})

	res, err := Apply(ctx, store, d, "", nil)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Assignments)
}

func TestRandomEngineers(t *testing.T) {
	engineers := RandomEngineers(20)
	require.Len(t, engineers, 20)

	emails := map[string]bool{}
	for _, e := range engineers {
		assert.Equal(t, models.RoleEngineer, e.Role)
		assert.Len(t, e.Skills, 3)
		assert.True(t, e.Seniority.Valid())
		require.NotNil(t, e.MaxCapacity)
		assert.GreaterOrEqual(t, *e.MaxCapacity, 50)
		assert.LessOrEqual(t, *e.MaxCapacity, 100)
		assert.False(t, emails[e.Email], "duplicate email %s", e.Email)
		emails[e.Email] = true
	}

	assert.Empty(t, RandomEngineers(0))
}
