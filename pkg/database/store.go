package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/arnavshah/capacity-api-go/pkg/models"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned when a referenced record does not exist
var ErrNotFound = errors.New("record not found")

// Store reads and writes dashboard records
type Store struct {
	DB *gorm.DB
}

// NewStore creates a store over an open database
func NewStore(db *gorm.DB) *Store {
	return &Store{DB: db}
}

func notFound(err error, what, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %s: %w", what, id, ErrNotFound)
	}
	return err
}

// Snapshot loads profiles, projects and assignments concurrently
func (s *Store) Snapshot(ctx context.Context) (models.Snapshot, error) {
	var snap models.Snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		profiles, err := s.ListProfiles(gctx)
		snap.Profiles = profiles
		return err
	})
	g.Go(func() error {
		projects, err := s.ListProjects(gctx)
		snap.Projects = projects
		return err
	})
	g.Go(func() error {
		assignments, err := s.ListAssignments(gctx)
		snap.Assignments = assignments
		return err
	})

	if err := g.Wait(); err != nil {
		return models.Snapshot{}, fmt.Errorf("load snapshot: %w", err)
	}
	return snap, nil
}

// ListProfiles returns every profile in creation order
func (s *Store) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	var rows []Profile
	if err := s.DB.WithContext(ctx).Order("created_at, id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	profiles := make([]models.Profile, 0, len(rows))
	for _, r := range rows {
		profiles = append(profiles, r.ToModel())
	}
	return profiles, nil
}

// ListEngineers returns the profiles with the engineer role in creation order
func (s *Store) ListEngineers(ctx context.Context) ([]models.Profile, error) {
	var rows []Profile
	err := s.DB.WithContext(ctx).
		Where("role = ?", string(models.RoleEngineer)).
		Order("created_at, id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list engineers: %w", err)
	}
	engineers := make([]models.Profile, 0, len(rows))
	for _, r := range rows {
		engineers = append(engineers, r.ToModel())
	}
	return engineers, nil
}

// GetProfile returns a single profile
func (s *Store) GetProfile(ctx context.Context, id string) (models.Profile, error) {
	var row Profile
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return models.Profile{}, notFound(err, "profile", id)
	}
	return row.ToModel(), nil
}

// Credentials returns the profile and password hash registered for an email
func (s *Store) Credentials(ctx context.Context, email string) (models.Profile, string, error) {
	var row Profile
	email = strings.ToLower(strings.TrimSpace(email))
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&row).Error; err != nil {
		return models.Profile{}, "", notFound(err, "profile", email)
	}
	return row.ToModel(), row.PasswordHash, nil
}

// CreateProfile stores a new profile with an already hashed password
func (s *Store) CreateProfile(ctx context.Context, p models.Profile, passwordHash string) (models.Profile, error) {
	row := ProfileFromModel(p)
	row.Email = strings.ToLower(strings.TrimSpace(row.Email))
	row.PasswordHash = passwordHash
	if err := s.DB.WithContext(ctx).Create(&row).Error; err != nil {
		return models.Profile{}, fmt.Errorf("create profile: %w", err)
	}
	return row.ToModel(), nil
}

// CountManagers returns the number of manager profiles
func (s *Store) CountManagers(ctx context.Context) (int64, error) {
	var count int64
	err := s.DB.WithContext(ctx).Model(&Profile{}).Where("role = ?", string(models.RoleManager)).Count(&count).Error
	return count, err
}

// UpdateProfile overwrites the editable fields of a profile with those of
// changes. An empty name keeps the stored one; a nil MaxCapacity clears it.
func (s *Store) UpdateProfile(ctx context.Context, id string, changes models.Profile) (models.Profile, error) {
	var row Profile
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return models.Profile{}, notFound(err, "profile", id)
	}

	if name := strings.TrimSpace(changes.Name); name != "" {
		row.Name = name
	}
	row.Department = strPtr(changes.Department)
	row.Skills = nonNil(changes.Skills)
	row.Seniority = strPtr(string(changes.Seniority))
	row.MaxCapacity = changes.MaxCapacity

	if err := s.DB.WithContext(ctx).Save(&row).Error; err != nil {
		return models.Profile{}, fmt.Errorf("update profile: %w", err)
	}
	return row.ToModel(), nil
}

// ListProjects returns every project in creation order
func (s *Store) ListProjects(ctx context.Context) ([]models.Project, error) {
	var rows []Project
	if err := s.DB.WithContext(ctx).Order("created_at, id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	projects := make([]models.Project, 0, len(rows))
	for _, r := range rows {
		projects = append(projects, r.ToModel())
	}
	return projects, nil
}

// GetProject returns a single project
func (s *Store) GetProject(ctx context.Context, id string) (models.Project, error) {
	var row Project
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return models.Project{}, notFound(err, "project", id)
	}
	return row.ToModel(), nil
}

// CreateProject stores a new project
func (s *Store) CreateProject(ctx context.Context, p models.Project) (models.Project, error) {
	row := ProjectFromModel(p)
	if err := s.DB.WithContext(ctx).Create(&row).Error; err != nil {
		return models.Project{}, fmt.Errorf("create project: %w", err)
	}
	return row.ToModel(), nil
}

// ListAssignments returns every assignment in creation order
func (s *Store) ListAssignments(ctx context.Context) ([]models.Assignment, error) {
	return s.findAssignments(s.DB.WithContext(ctx))
}

// AssignmentsForEngineer returns the assignments of one engineer in creation order
func (s *Store) AssignmentsForEngineer(ctx context.Context, engineerID string) ([]models.Assignment, error) {
	return s.findAssignments(s.DB.WithContext(ctx).Where("engineer_id = ?", engineerID))
}

func (s *Store) findAssignments(q *gorm.DB) ([]models.Assignment, error) {
	var rows []Assignment
	if err := q.Order("created_at, id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	assignments := make([]models.Assignment, 0, len(rows))
	for _, r := range rows {
		assignments = append(assignments, r.ToModel())
	}
	return assignments, nil
}

// CreateAssignment stores a new assignment after checking that the engineer
// and project it references exist
func (s *Store) CreateAssignment(ctx context.Context, a models.Assignment) (models.Assignment, error) {
	row := AssignmentFromModel(a)
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Profile{}).Where("id = ? AND role = ?", a.EngineerID, string(models.RoleEngineer)).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return fmt.Errorf("engineer %s: %w", a.EngineerID, ErrNotFound)
		}
		if err := tx.Model(&Project{}).Where("id = ?", a.ProjectID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return fmt.Errorf("project %s: %w", a.ProjectID, ErrNotFound)
		}
		return tx.Create(&row).Error
	})
	if err != nil {
		return models.Assignment{}, fmt.Errorf("create assignment: %w", err)
	}
	return row.ToModel(), nil
}

// DeleteAssignment removes an assignment
func (s *Store) DeleteAssignment(ctx context.Context, id string) error {
	res := s.DB.WithContext(ctx).Where("id = ?", id).Delete(&Assignment{})
	if res.Error != nil {
		return fmt.Errorf("delete assignment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("assignment %s: %w", id, ErrNotFound)
	}
	return nil
}

// FindKey fetches an issued key and records its use. Keys that were never
// issued or have been revoked return ErrNotFound.
func (s *Store) FindKey(ctx context.Context, key string) (*APIKey, error) {
	var apiKey APIKey
	if err := s.DB.WithContext(ctx).Where(APIKey{Key: key}).First(&apiKey).Error; err != nil {
		return nil, notFound(err, "api key", KeyPreview(key))
	}

	now := time.Now()
	apiKey.LastUsed = &now
	if err := s.DB.WithContext(ctx).Model(&apiKey).Update("last_used", now).Error; err != nil {
		return nil, fmt.Errorf("touch api key: %w", err)
	}
	return &apiKey, nil
}

// KeyPreview masks a key for listing, e.g. "abc...1234"
func KeyPreview(key string) string {
	if len(key) > 8 {
		return key[:3] + "..." + key[len(key)-4:]
	}
	return "****"
}

// CreateKey stores a newly generated key
func (s *Store) CreateKey(ctx context.Context, key, name string, rateLimit int) (*APIKey, error) {
	apiKey := APIKey{
		Key:        key,
		KeyPreview: KeyPreview(key),
		Name:       name,
		RateLimit:  rateLimit,
	}
	if err := s.DB.WithContext(ctx).Create(&apiKey).Error; err != nil {
		return nil, fmt.Errorf("create api key: %w", err)
	}
	return &apiKey, nil
}

// ListKeys returns all API keys
func (s *Store) ListKeys(ctx context.Context) ([]APIKey, error) {
	var keys []APIKey
	if err := s.DB.WithContext(ctx).Order("id").Find(&keys).Error; err != nil {
		return nil, fmt.Errorf("list api keys: %w", err)
	}
	return keys, nil
}

// RevokeKey deletes an API key
func (s *Store) RevokeKey(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&APIKey{}, id)
	if res.Error != nil {
		return fmt.Errorf("revoke api key: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("api key %d: %w", id, ErrNotFound)
	}
	return nil
}

// UpdateKeyLimit changes the rate limit of a key
func (s *Store) UpdateKeyLimit(ctx context.Context, id uint, rateLimit int) error {
	res := s.DB.WithContext(ctx).Model(&APIKey{}).Where("id = ?", id).Update("rate_limit", rateLimit)
	if res.Error != nil {
		return fmt.Errorf("update api key: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("api key %d: %w", id, ErrNotFound)
	}
	return nil
}

// RecordUsage upserts today's usage counters for a key in a single query
func (s *Store) RecordUsage(ctx context.Context, keyID uint, engineers, assignments int) error {
	today := time.Now().Format("2006-01-02")

	return s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"request_count":     gorm.Expr("request_count + ?", 1),
			"total_engineers":   gorm.Expr("total_engineers + ?", engineers),
			"total_assignments": gorm.Expr("total_assignments + ?", assignments),
		}),
	}).Create(&APIUsage{
		KeyID:            keyID,
		Date:             today,
		RequestCount:     1,
		TotalEngineers:   engineers,
		TotalAssignments: assignments,
	}).Error
}

// Usage returns the last 30 days of usage for a key, newest first
func (s *Store) Usage(ctx context.Context, keyID uint) ([]APIUsage, error) {
	var usage []APIUsage
	if err := s.DB.WithContext(ctx).Where("key_id = ?", keyID).Order("date desc").Limit(30).Find(&usage).Error; err != nil {
		return nil, fmt.Errorf("list usage: %w", err)
	}
	return usage, nil
}

// RequestsToday returns how many requests a key has made today
func (s *Store) RequestsToday(ctx context.Context, keyID uint) (int, error) {
	var usage APIUsage
	today := time.Now().Format("2006-01-02")
	err := s.DB.WithContext(ctx).Where("key_id = ? AND date = ?", keyID, today).First(&usage).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read usage: %w", err)
	}
	return usage.RequestCount, nil
}
