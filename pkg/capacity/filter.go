package capacity

import (
	"fmt"
	"strings"
	"time"

	"github.com/arnavshah/capacity-api-go/pkg/models"
)

var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04"}

// ParseDate parses the date formats accepted by the forms and the database
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", value)
}

func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsActive reports whether ref falls within the assignment's date range,
// both ends inclusive and compared by calendar day. Unparseable dates are
// never active. This only drives display badges; capacity sums ignore dates.
func IsActive(a models.Assignment, ref time.Time) bool {
	start, err := ParseDate(a.StartDate)
	if err != nil {
		return false
	}
	end, err := ParseDate(a.EndDate)
	if err != nil {
		return false
	}
	today := day(ref)
	return !today.Before(day(start)) && !today.After(day(end))
}

func containsFold(s, term string) bool {
	return strings.Contains(strings.ToLower(s), term)
}

func anyContainsFold(values []string, term string) bool {
	for _, v := range values {
		if containsFold(v, term) {
			return true
		}
	}
	return false
}

// FilterEngineers keeps engineers whose name or any skill contains term,
// case-insensitively. An empty term keeps everything.
func FilterEngineers(engineers []models.Profile, term string) []models.Profile {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return engineers
	}
	out := []models.Profile{}
	for _, e := range engineers {
		if containsFold(e.Name, term) || anyContainsFold(e.Skills, term) {
			out = append(out, e)
		}
	}
	return out
}

// FilterProjects keeps projects whose name or any required skill contains
// term, case-insensitively. An empty term keeps everything.
func FilterProjects(projects []models.Project, term string) []models.Project {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return projects
	}
	out := []models.Project{}
	for _, p := range projects {
		if containsFold(p.Name, term) || anyContainsFold(p.RequiredSkills, term) {
			out = append(out, p)
		}
	}
	return out
}

// CountByStatus returns the number of projects with the given status
func CountByStatus(projects []models.Project, status models.ProjectStatus) int {
	n := 0
	for _, p := range projects {
		if p.Status == status {
			n++
		}
	}
	return n
}

// ProjectsWithStatus returns the projects with the given status, in input order
func ProjectsWithStatus(projects []models.Project, status models.ProjectStatus) []models.Project {
	out := []models.Project{}
	for _, p := range projects {
		if p.Status == status {
			out = append(out, p)
		}
	}
	return out
}

// AssignmentsFor returns the assignments of one engineer, in input order
func AssignmentsFor(engineerID string, assignments []models.Assignment) []models.Assignment {
	out := []models.Assignment{}
	for _, a := range assignments {
		if a.EngineerID == engineerID {
			out = append(out, a)
		}
	}
	return out
}

// FindProfile returns the profile with the given id
func FindProfile(profiles []models.Profile, id string) (models.Profile, bool) {
	for _, p := range profiles {
		if p.ID == id {
			return p, true
		}
	}
	return models.Profile{}, false
}

// FindProject returns the project with the given id
func FindProject(projects []models.Project, id string) (models.Project, bool) {
	for _, p := range projects {
		if p.ID == id {
			return p, true
		}
	}
	return models.Project{}, false
}

// EngineerName resolves an engineer id to a name, or models.UnknownName
func EngineerName(profiles []models.Profile, id string) string {
	if p, ok := FindProfile(profiles, id); ok {
		return p.Name
	}
	return models.UnknownName
}

// ProjectName resolves a project id to a name, or models.UnknownName
func ProjectName(projects []models.Project, id string) string {
	if p, ok := FindProject(projects, id); ok {
		return p.Name
	}
	return models.UnknownName
}

// Views resolves display names and the active flag for each assignment
func Views(s models.Snapshot, assignments []models.Assignment, ref time.Time) []models.AssignmentView {
	names := make(map[string]string, len(s.Profiles))
	for _, p := range s.Profiles {
		names[p.ID] = p.Name
	}
	projects := make(map[string]string, len(s.Projects))
	for _, p := range s.Projects {
		projects[p.ID] = p.Name
	}

	views := make([]models.AssignmentView, 0, len(assignments))
	for _, a := range assignments {
		v := models.AssignmentView{
			Assignment:   a,
			EngineerName: models.UnknownName,
			ProjectName:  models.UnknownName,
			IsActive:     IsActive(a, ref),
		}
		if name, ok := names[a.EngineerID]; ok {
			v.EngineerName = name
		}
		if name, ok := projects[a.ProjectID]; ok {
			v.ProjectName = name
		}
		views = append(views, v)
	}
	return views
}
