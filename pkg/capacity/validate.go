package capacity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/arnavshah/capacity-api-go/pkg/models"
)

// ErrValidation is matched by every error returned from the validators
var ErrValidation = errors.New("validation failed")

// Options tunes the creation-time validators
type Options struct {
	// StrictDateOrder rejects inputs whose end date is before the start date
	StrictDateOrder bool
}

// ValidationError lists the fields that made an input unacceptable
type ValidationError struct {
	Fields []string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s", strings.Join(e.Fields, ", "), e.Reason)
	}
	return strings.Join(e.Fields, ", ") + " required"
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// ValidateAssignment gates the creation of an assignment. Engineer, project and
// role are required. The allocation percentage is deliberately not range checked.
func ValidateAssignment(in models.AssignmentInput, opts Options) error {
	var missing []string
	if blank(in.EngineerID) {
		missing = append(missing, "engineer_id")
	}
	if blank(in.ProjectID) {
		missing = append(missing, "project_id")
	}
	if blank(in.Role) {
		missing = append(missing, "role")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}

	if opts.StrictDateOrder {
		return validateDateOrder(in.StartDate, in.EndDate)
	}
	return nil
}

// ValidateProject gates the creation of a project. Name and description are required.
func ValidateProject(in models.ProjectInput, opts Options) error {
	var missing []string
	if blank(in.Name) {
		missing = append(missing, "name")
	}
	if blank(in.Description) {
		missing = append(missing, "description")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}

	if in.Status != "" && !in.Status.Valid() {
		return &ValidationError{Fields: []string{"status"}, Reason: fmt.Sprintf("unknown status %q", in.Status)}
	}

	if opts.StrictDateOrder {
		return validateDateOrder(in.StartDate, in.EndDate)
	}
	return nil
}

// ValidateProfileUpdate rejects unknown seniority levels and a max capacity
// outside 1..100
func ValidateProfileUpdate(in models.ProfileUpdate) error {
	if in.Seniority != "" && !in.Seniority.Valid() {
		return &ValidationError{Fields: []string{"seniority"}, Reason: fmt.Sprintf("unknown seniority %q", in.Seniority)}
	}
	if in.MaxCapacity != nil && (*in.MaxCapacity <= 0 || *in.MaxCapacity > models.DefaultMaxCapacity) {
		return &ValidationError{Fields: []string{"max_capacity"}, Reason: fmt.Sprintf("must be between 1 and %d, got %d", models.DefaultMaxCapacity, *in.MaxCapacity)}
	}
	return nil
}

func validateDateOrder(start, end string) error {
	startDate, err := ParseDate(start)
	if err != nil {
		return &ValidationError{Fields: []string{"start_date"}, Reason: err.Error()}
	}
	endDate, err := ParseDate(end)
	if err != nil {
		return &ValidationError{Fields: []string{"end_date"}, Reason: err.Error()}
	}
	if endDate.Before(startDate) {
		return &ValidationError{Fields: []string{"start_date", "end_date"}, Reason: "end date is before start date"}
	}
	return nil
}

// NormalizeProject fills the defaults the project form starts with
func NormalizeProject(in models.ProjectInput) models.ProjectInput {
	if in.Status == "" {
		in.Status = models.StatusPlanning
	}
	if in.TeamSize <= 0 {
		in.TeamSize = 1
	}
	in.Name = strings.TrimSpace(in.Name)
	return in
}

// ParseSkills splits a comma separated skill list, trimming entries and
// dropping empty ones
func ParseSkills(raw string) []string {
	skills := []string{}
	for _, part := range strings.Split(raw, ",") {
		if s := strings.TrimSpace(part); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}
