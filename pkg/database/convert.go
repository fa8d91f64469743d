package database

import "github.com/arnavshah/capacity-api-go/pkg/models"

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

// ToModel converts a profiles row
func (p Profile) ToModel() models.Profile {
	return models.Profile{
		ID:          p.ID,
		Email:       p.Email,
		Name:        p.Name,
		Role:        models.Role(p.Role),
		Department:  deref(p.Department),
		Skills:      nonNil(p.Skills),
		Seniority:   models.Seniority(deref(p.Seniority)),
		MaxCapacity: p.MaxCapacity,
	}
}

// ProfileFromModel converts a profile into a profiles row
func ProfileFromModel(p models.Profile) Profile {
	role := p.Role
	if role == "" {
		role = models.RoleEngineer
	}
	return Profile{
		ID:          p.ID,
		Email:       p.Email,
		Name:        p.Name,
		Role:        string(role),
		Department:  strPtr(p.Department),
		Skills:      nonNil(p.Skills),
		Seniority:   strPtr(string(p.Seniority)),
		MaxCapacity: p.MaxCapacity,
	}
}

// ToModel converts a projects row
func (p Project) ToModel() models.Project {
	return models.Project{
		ID:             p.ID,
		Name:           p.Name,
		Description:    deref(p.Description),
		StartDate:      p.StartDate,
		EndDate:        p.EndDate,
		RequiredSkills: nonNil(p.RequiredSkills),
		TeamSize:       p.TeamSize,
		Status:         models.ProjectStatus(p.Status),
		ManagerID:      deref(p.ManagerID),
	}
}

// ProjectFromModel converts a project into a projects row
func ProjectFromModel(p models.Project) Project {
	return Project{
		ID:             p.ID,
		Name:           p.Name,
		Description:    strPtr(p.Description),
		StartDate:      p.StartDate,
		EndDate:        p.EndDate,
		RequiredSkills: nonNil(p.RequiredSkills),
		TeamSize:       p.TeamSize,
		Status:         string(p.Status),
		ManagerID:      strPtr(p.ManagerID),
	}
}

// ToModel converts an assignments row
func (a Assignment) ToModel() models.Assignment {
	return models.Assignment{
		ID:                   a.ID,
		EngineerID:           a.EngineerID,
		ProjectID:            a.ProjectID,
		AllocationPercentage: a.AllocationPercentage,
		StartDate:            a.StartDate,
		EndDate:              a.EndDate,
		Role:                 a.Role,
	}
}

// AssignmentFromModel converts an assignment into an assignments row
func AssignmentFromModel(a models.Assignment) Assignment {
	return Assignment{
		ID:                   a.ID,
		EngineerID:           a.EngineerID,
		ProjectID:            a.ProjectID,
		AllocationPercentage: a.AllocationPercentage,
		StartDate:            a.StartDate,
		EndDate:              a.EndDate,
		Role:                 a.Role,
	}
}
