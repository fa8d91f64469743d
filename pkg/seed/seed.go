package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Pallinder/go-randomdata"
	"github.com/arnavshah/capacity-api-go/pkg/auth"
	"github.com/arnavshah/capacity-api-go/pkg/database"
	"github.com/arnavshah/capacity-api-go/pkg/models"
	"go.uber.org/zap"
)

// DefaultPassword is given to every seeded profile
const DefaultPassword = "password123"

// AssignmentSeed references its engineer and project by natural key
type AssignmentSeed struct {
	EngineerEmail        string
	ProjectName          string
	AllocationPercentage int
	StartDate            string
	EndDate              string
	Role                 string
}

// Data is a set of sample records
type Data struct {
	Profiles    []models.Profile
	Projects    []models.Project
	Assignments []AssignmentSeed
}

// Result counts what Apply created
type Result struct {
	Profiles    int
	Projects    int
	Assignments int
}

func capacityOf(n int) *int {
	return &n
}

// Sample returns the demo team: one manager, four engineers, four projects
func Sample() Data {
	return Data{
		Profiles: []models.Profile{
			{Email: "manager@company.com", Name: "Sarah Johnson", Role: models.RoleManager, Department: "Engineering", Skills: []string{}},
			{Email: "john.doe@company.com", Name: "John Doe", Role: models.RoleEngineer, Department: "Frontend",
				Skills: []string{"React", "TypeScript", "Node.js"}, Seniority: models.SenioritySenior, MaxCapacity: capacityOf(100)},
			{Email: "jane.smith@company.com", Name: "Jane Smith", Role: models.RoleEngineer, Department: "Backend",
				Skills: []string{"Python", "Django", "PostgreSQL"}, Seniority: models.SeniorityMid, MaxCapacity: capacityOf(80)},
			{Email: "mike.wilson@company.com", Name: "Mike Wilson", Role: models.RoleEngineer, Department: "Frontend",
				Skills: []string{"React", "Vue.js", "CSS"}, Seniority: models.SeniorityJunior, MaxCapacity: capacityOf(60)},
			{Email: "lisa.chen@company.com", Name: "Lisa Chen", Role: models.RoleEngineer, Department: "Backend",
				Skills: []string{"Java", "Spring", "Microservices"}, Seniority: models.SenioritySenior, MaxCapacity: capacityOf(100)},
		},
		Projects: []models.Project{
			{Name: "E-commerce Platform", Description: "Build a modern e-commerce platform with React frontend and Node.js backend",
				StartDate: "2024-01-15", EndDate: "2024-06-30", RequiredSkills: []string{"React", "Node.js", "TypeScript"}, TeamSize: 4, Status: models.StatusActive},
			{Name: "Mobile App Backend", Description: "Develop REST APIs for mobile application",
				StartDate: "2024-02-01", EndDate: "2024-05-15", RequiredSkills: []string{"Python", "Django", "PostgreSQL"}, TeamSize: 2, Status: models.StatusActive},
			{Name: "Data Analytics Dashboard", Description: "Create interactive dashboard for business analytics",
				StartDate: "2024-03-01", EndDate: "2024-07-31", RequiredSkills: []string{"React", "Python", "Data Visualization"}, TeamSize: 3, Status: models.StatusPlanning},
			{Name: "Legacy System Migration", Description: "Migrate legacy Java application to microservices",
				StartDate: "2024-01-01", EndDate: "2024-03-31", RequiredSkills: []string{"Java", "Spring", "Microservices"}, TeamSize: 2, Status: models.StatusCompleted},
		},
		Assignments: []AssignmentSeed{
			{EngineerEmail: "john.doe@company.com", ProjectName: "E-commerce Platform", AllocationPercentage: 80,
				StartDate: "2024-01-15", EndDate: "2024-06-30", Role: "Tech Lead"},
			{EngineerEmail: "jane.smith@company.com", ProjectName: "Mobile App Backend", AllocationPercentage: 60,
				StartDate: "2024-02-01", EndDate: "2024-05-15", Role: "Backend Developer"},
			{EngineerEmail: "mike.wilson@company.com", ProjectName: "E-commerce Platform", AllocationPercentage: 50,
				StartDate: "2024-01-15", EndDate: "2024-06-30", Role: "Frontend Developer"},
			{EngineerEmail: "lisa.chen@company.com", ProjectName: "Legacy System Migration", AllocationPercentage: 90,
				StartDate: "2024-01-01", EndDate: "2024-03-31", Role: "Senior Developer"},
		},
	}
}

var (
	randomSkills      = []string{"Go", "React", "TypeScript", "Python", "Java", "Kubernetes", "PostgreSQL", "AWS", "CSS", "Node.js"}
	randomDepartments = []string{"Frontend", "Backend", "Platform", "Data"}
	randomSeniority   = []string{string(models.SeniorityJunior), string(models.SeniorityMid), string(models.SenioritySenior)}
)

// RandomEngineers returns n engineers with random names, skills and capacity
func RandomEngineers(n int) []models.Profile {
	engineers := make([]models.Profile, 0, n)
	for i := 0; i < n; i++ {
		name := randomdata.FullName(randomdata.RandomGender)
		skills := make([]string, 0, 3)
		for len(skills) < 3 {
			skill := randomdata.StringSample(randomSkills...)
			if !contains(skills, skill) {
				skills = append(skills, skill)
			}
		}
		engineers = append(engineers, models.Profile{
			Email:       fmt.Sprintf("%s.%d@company.com", strings.ToLower(strings.ReplaceAll(name, " ", ".")), i),
			Name:        name,
			Role:        models.RoleEngineer,
			Department:  randomdata.StringSample(randomDepartments...),
			Skills:      skills,
			Seniority:   models.Seniority(randomdata.StringSample(randomSeniority...)),
			MaxCapacity: capacityOf(randomdata.Number(5, 11) * 10),
		})
	}
	return engineers
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

// Apply stores the records of d that are not present yet. Profiles are
// matched by email and projects by name, so Apply can run repeatedly.
func Apply(ctx context.Context, store *database.Store, d Data, password string, log *zap.Logger) (Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if password == "" {
		password = DefaultPassword
	}
	var res Result

	hash, err := auth.HashPassword(password)
	if err != nil {
		return res, err
	}

	profileIDs := make(map[string]string)
	for _, p := range d.Profiles {
		existing, _, err := store.Credentials(ctx, p.Email)
		if err == nil {
			profileIDs[strings.ToLower(p.Email)] = existing.ID
			continue
		}
		if !errors.Is(err, database.ErrNotFound) {
			return res, err
		}
		created, err := store.CreateProfile(ctx, p, hash)
		if err != nil {
			return res, err
		}
		profileIDs[created.Email] = created.ID
		res.Profiles++
	}

	projects, err := store.ListProjects(ctx)
	if err != nil {
		return res, err
	}
	projectIDs := make(map[string]string, len(projects))
	for _, p := range projects {
		projectIDs[p.Name] = p.ID
	}
	for _, p := range d.Projects {
		if _, ok := projectIDs[p.Name]; ok {
			continue
		}
		created, err := store.CreateProject(ctx, p)
		if err != nil {
			return res, err
		}
		projectIDs[created.Name] = created.ID
		res.Projects++
	}

	existing, err := store.ListAssignments(ctx)
	if err != nil {
		return res, err
	}
	for _, a := range d.Assignments {
		engineerID, ok := profileIDs[strings.ToLower(a.EngineerEmail)]
		if !ok {
			log.Warn("seed assignment skipped, unknown engineer", zap.String("email", a.EngineerEmail))
			continue
		}
		projectID, ok := projectIDs[a.ProjectName]
		if !ok {
			log.Warn("seed assignment skipped, unknown project", zap.String("project", a.ProjectName))
			continue
		}
		if assigned(existing, engineerID, projectID) {
			continue
		}
		_, err := store.CreateAssignment(ctx, models.Assignment{
			EngineerID:           engineerID,
			ProjectID:            projectID,
			AllocationPercentage: a.AllocationPercentage,
			StartDate:            a.StartDate,
			EndDate:              a.EndDate,
			Role:                 a.Role,
		})
		if err != nil {
			return res, err
		}
		res.Assignments++
	}

	log.Info("seed applied",
		zap.Int("profiles", res.Profiles),
		zap.Int("projects", res.Projects),
		zap.Int("assignments", res.Assignments))
	return res, nil
}

func assigned(assignments []models.Assignment, engineerID, projectID string) bool {
	for _, a := range assignments {
		if a.EngineerID == engineerID && a.ProjectID == projectID {
			return true
		}
	}
	return false
}
