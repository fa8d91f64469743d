package database

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Profile represents the profiles table
type Profile struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Name         string    `gorm:"not null" json:"name"`
	Role         string    `gorm:"not null;default:engineer" json:"role"`
	Department   *string   `json:"department"`
	Skills       []string  `gorm:"serializer:json" json:"skills"`
	Seniority    *string   `json:"seniority"`
	MaxCapacity  *int      `json:"max_capacity"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Project represents the projects table
type Project struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	Name           string    `gorm:"not null" json:"name"`
	Description    *string   `json:"description"`
	StartDate      string    `gorm:"not null" json:"start_date"`
	EndDate        string    `gorm:"not null" json:"end_date"`
	RequiredSkills []string  `gorm:"serializer:json" json:"required_skills"`
	TeamSize       int       `gorm:"not null;default:1" json:"team_size"`
	Status         string    `gorm:"not null;default:planning" json:"status"`
	ManagerID      *string   `gorm:"size:36" json:"manager_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Assignment represents the assignments table
type Assignment struct {
	ID                   string    `gorm:"primaryKey;size:36" json:"id"`
	EngineerID           string    `gorm:"size:36;index;not null" json:"engineer_id"`
	ProjectID            string    `gorm:"size:36;index;not null" json:"project_id"`
	AllocationPercentage int       `gorm:"not null" json:"allocation_percentage"`
	StartDate            string    `gorm:"not null" json:"start_date"`
	EndDate              string    `gorm:"not null" json:"end_date"`
	Role                 string    `gorm:"not null" json:"role"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// APIKey represents the api_keys table
type APIKey struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Key        string     `gorm:"unique;not null" json:"-"`
	KeyPreview string     `json:"key_preview"`
	Name       string     `gorm:"not null" json:"name"`
	RateLimit  int        `gorm:"default:10000" json:"rate_limit"`
	CreatedAt  time.Time  `json:"created_at"`
	LastUsed   *time.Time `json:"last_used"`
}

// APIUsage represents the api_usages table
type APIUsage struct {
	ID               uint   `gorm:"primaryKey" json:"id"`
	KeyID            uint   `gorm:"uniqueIndex:idx_key_date;not null" json:"key_id"`
	Date             string `gorm:"uniqueIndex:idx_key_date;not null" json:"date"`
	RequestCount     int    `gorm:"default:0" json:"request_count"`
	TotalEngineers   int    `gorm:"default:0" json:"total_engineers"`
	TotalAssignments int    `gorm:"default:0" json:"total_assignments"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

func (a *Assignment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// newGormLogger reports slow queries and errors to w. Lookups that find
// nothing are expected and stay quiet.
func newGormLogger(w io.Writer) logger.Interface {
	return logger.New(log.New(w, "\r\n", log.LstdFlags), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

// InitDB opens postgres when databaseURL is set and a sqlite file at dataPath
// otherwise, then migrates the schema
func InitDB(databaseURL, dataPath string) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	cfg := &gorm.Config{Logger: newGormLogger(os.Stderr)}
	if databaseURL != "" {
		cfg.PrepareStmt = false
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  databaseURL,
			PreferSimpleProtocol: true,
		}), cfg)
	} else {
		if dataPath == "" {
			dataPath = "capacity.db"
		}
		db, err = gorm.Open(sqlite.Open(dataPath), cfg)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates every table
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Profile{}, &Project{}, &Assignment{}, &APIKey{}, &APIUsage{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
