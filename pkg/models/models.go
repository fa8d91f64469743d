package models

import "strings"

// DefaultMaxCapacity is used when a profile has no max capacity set
const DefaultMaxCapacity = 100

// UnknownName is displayed for dangling engineer/project references
const UnknownName = "Unknown"

// Role is the account role of a profile
type Role string

const (
	RoleManager  Role = "manager"
	RoleEngineer Role = "engineer"
)

// Seniority is the seniority level of an engineer
type Seniority string

const (
	SeniorityJunior Seniority = "junior"
	SeniorityMid    Seniority = "mid"
	SenioritySenior Seniority = "senior"
)

// Valid reports whether s is one of the known levels
func (s Seniority) Valid() bool {
	switch s {
	case SeniorityJunior, SeniorityMid, SenioritySenior:
		return true
	}
	return false
}

// ProjectStatus is the lifecycle status of a project
type ProjectStatus string

const (
	StatusPlanning  ProjectStatus = "planning"
	StatusActive    ProjectStatus = "active"
	StatusCompleted ProjectStatus = "completed"
)

// Valid reports whether s is one of the known statuses
func (s ProjectStatus) Valid() bool {
	switch s {
	case StatusPlanning, StatusActive, StatusCompleted:
		return true
	}
	return false
}

// Profile represents a user of the dashboard. Every profile that is not a
// manager is an engineer, including those whose role was never set.
type Profile struct {
	ID          string    `json:"id" yaml:"id"`
	Email       string    `json:"email" yaml:"email"`
	Name        string    `json:"name" yaml:"name"`
	Role        Role      `json:"role" yaml:"role"`
	Department  string    `json:"department,omitempty" yaml:"department,omitempty"`
	Skills      []string  `json:"skills" yaml:"skills"`
	Seniority   Seniority `json:"seniority,omitempty" yaml:"seniority,omitempty"`
	MaxCapacity *int      `json:"max_capacity,omitempty" yaml:"max_capacity,omitempty"`
}

// IsEngineer reports whether the profile is anything other than a manager
func (p Profile) IsEngineer() bool {
	return p.Role != RoleManager
}

// EffectiveMaxCapacity returns MaxCapacity or DefaultMaxCapacity when unset
func (p Profile) EffectiveMaxCapacity() int {
	if p.MaxCapacity == nil {
		return DefaultMaxCapacity
	}
	return *p.MaxCapacity
}

// EffectiveSeniority returns Seniority or SeniorityJunior when unset
func (p Profile) EffectiveSeniority() Seniority {
	if p.Seniority == "" {
		return SeniorityJunior
	}
	return p.Seniority
}

// FirstName returns the first word of the name, used for chart labels
func (p Profile) FirstName() string {
	if fields := strings.Fields(p.Name); len(fields) > 0 {
		return fields[0]
	}
	return p.Name
}

// Project represents a piece of work engineers are assigned to
type Project struct {
	ID             string        `json:"id" yaml:"id"`
	Name           string        `json:"name" yaml:"name"`
	Description    string        `json:"description" yaml:"description"`
	StartDate      string        `json:"start_date" yaml:"start_date"`
	EndDate        string        `json:"end_date" yaml:"end_date"`
	RequiredSkills []string      `json:"required_skills" yaml:"required_skills"`
	TeamSize       int           `json:"team_size" yaml:"team_size"`
	Status         ProjectStatus `json:"status" yaml:"status"`
	ManagerID      string        `json:"manager_id,omitempty" yaml:"manager_id,omitempty"`
}

// Assignment is a fractional allocation of an engineer to a project
type Assignment struct {
	ID                   string `json:"id" yaml:"id"`
	EngineerID           string `json:"engineer_id" yaml:"engineer_id"`
	ProjectID            string `json:"project_id" yaml:"project_id"`
	AllocationPercentage int    `json:"allocation_percentage" yaml:"allocation_percentage"`
	StartDate            string `json:"start_date" yaml:"start_date"`
	EndDate              string `json:"end_date" yaml:"end_date"`
	Role                 string `json:"role" yaml:"role"`
}

// Snapshot is the set of records a single computation runs over
type Snapshot struct {
	Profiles    []Profile    `json:"profiles" yaml:"profiles"`
	Projects    []Project    `json:"projects" yaml:"projects"`
	Assignments []Assignment `json:"assignments" yaml:"assignments"`
}

// Engineers returns the non-manager profiles, in input order
func (s Snapshot) Engineers() []Profile {
	engineers := make([]Profile, 0, len(s.Profiles))
	for _, p := range s.Profiles {
		if p.IsEngineer() {
			engineers = append(engineers, p)
		}
	}
	return engineers
}

// AssignmentInput is the payload for creating an assignment
type AssignmentInput struct {
	EngineerID           string `json:"engineer_id"`
	ProjectID            string `json:"project_id"`
	AllocationPercentage int    `json:"allocation_percentage"`
	StartDate            string `json:"start_date"`
	EndDate              string `json:"end_date"`
	Role                 string `json:"role"`
}

// ProjectInput is the payload for creating a project
type ProjectInput struct {
	Name           string        `json:"name"`
	Description    string        `json:"description"`
	StartDate      string        `json:"start_date"`
	EndDate        string        `json:"end_date"`
	RequiredSkills []string      `json:"required_skills"`
	TeamSize       int           `json:"team_size"`
	Status         ProjectStatus `json:"status"`
}

// ProfileUpdate is the payload for editing one's own profile.
// Skills arrive as a comma separated string, as typed in the profile form.
type ProfileUpdate struct {
	Name        string    `json:"name"`
	Department  string    `json:"department"`
	Skills      string    `json:"skills"`
	Seniority   Seniority `json:"seniority"`
	MaxCapacity *int      `json:"max_capacity"`
}

// AssignmentView is an assignment with resolved display names
type AssignmentView struct {
	Assignment
	EngineerName string `json:"engineer_name"`
	ProjectName  string `json:"project_name"`
	IsActive     bool   `json:"is_active"`
}
