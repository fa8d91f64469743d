package capacity

import (
	"errors"
	"testing"

	"github.com/arnavshah/capacity-api-go/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() models.AssignmentInput {
	return models.AssignmentInput{
		EngineerID:           "e1",
		ProjectID:            "p1",
		AllocationPercentage: 50,
		StartDate:            "2024-01-15",
		EndDate:              "2024-04-15",
		Role:                 "Tech Lead",
	}
}

func TestValidateAssignment_RequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.AssignmentInput)
		fields []string
	}{
		{"missing engineer", func(in *models.AssignmentInput) { in.EngineerID = "" }, []string{"engineer_id"}},
		{"missing project", func(in *models.AssignmentInput) { in.ProjectID = "" }, []string{"project_id"}},
		{"blank role", func(in *models.AssignmentInput) { in.Role = "  " }, []string{"role"}},
		{"everything missing", func(in *models.AssignmentInput) { *in = models.AssignmentInput{} }, []string{"engineer_id", "project_id", "role"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			err := ValidateAssignment(in, Options{})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.fields, verr.Fields)
		})
	}
}

func TestValidateAssignment_AllocationNotRangeChecked(t *testing.T) {
	for _, alloc := range []int{-10, 0, 5, 100, 250} {
		in := validInput()
		in.AllocationPercentage = alloc
		assert.NoError(t, ValidateAssignment(in, Options{}), "allocation %d", alloc)
	}
}

func TestValidateAssignment_DateOrder(t *testing.T) {
	in := validInput()
	in.StartDate, in.EndDate = "2024-05-01", "2024-01-01"

	assert.NoError(t, ValidateAssignment(in, Options{}))

	err := ValidateAssignment(in, Options{StrictDateOrder: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "end date is before start date")

	in.StartDate = "not a date"
	err = ValidateAssignment(in, Options{StrictDateOrder: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start_date")

	in.StartDate, in.EndDate = "2024-01-01", "2024-01-01"
	assert.NoError(t, ValidateAssignment(in, Options{StrictDateOrder: true}))
}

func TestValidateProject(t *testing.T) {
	in := models.ProjectInput{Name: "Platform", Description: "Rebuild"}
	assert.NoError(t, ValidateProject(in, Options{}))

	err := ValidateProject(models.ProjectInput{Name: "Platform"}, Options{})
	require.Error(t, err)
	assert.Equal(t, "description required", err.Error())

	in.Status = "archived"
	assert.ErrorIs(t, ValidateProject(in, Options{}), ErrValidation)
}

func TestNormalizeProject(t *testing.T) {
	got := NormalizeProject(models.ProjectInput{Name: " Platform "})
	assert.Equal(t, models.StatusPlanning, got.Status)
	assert.Equal(t, 1, got.TeamSize)
	assert.Equal(t, "Platform", got.Name)
}

func TestValidateProfileUpdate(t *testing.T) {
	assert.NoError(t, ValidateProfileUpdate(models.ProfileUpdate{}))
	assert.NoError(t, ValidateProfileUpdate(models.ProfileUpdate{Seniority: models.SeniorityMid}))
	assert.ErrorIs(t, ValidateProfileUpdate(models.ProfileUpdate{Seniority: "principal"}), ErrValidation)

	for _, v := range []int{1, 50, 100} {
		assert.NoError(t, ValidateProfileUpdate(models.ProfileUpdate{MaxCapacity: &v}), "max_capacity %d", v)
	}
	for _, v := range []int{0, -20, 101} {
		err := ValidateProfileUpdate(models.ProfileUpdate{MaxCapacity: &v})
		assert.ErrorIs(t, err, ErrValidation, "max_capacity %d", v)
		var verr *ValidationError
		if assert.ErrorAs(t, err, &verr) {
			assert.Equal(t, []string{"max_capacity"}, verr.Fields)
		}
	}
}

func TestParseSkills(t *testing.T) {
	assert.Equal(t, []string{"React", "Node.js", "Python"}, ParseSkills("React, Node.js,,  Python ,"))
	assert.Equal(t, []string{}, ParseSkills(""))
}
