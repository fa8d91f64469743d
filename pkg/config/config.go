package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultJWTSecret is only meant for local development
const DefaultJWTSecret = "dev-only-jwt-secret"

// Config holds the runtime settings read from the environment
type Config struct {
	Port            string
	GinMode         string
	DatabaseURL     string
	DataPath        string
	JWTSecret       string
	APIMasterSecret string
	AdminEmail      string
	AdminPassword   string
	LogLevel        string
	StrictDateOrder bool
	SeedOnStart     bool
	TokenTTL        time.Duration
}

// LoadEnvFiles loads the first .env found in the working directory or its parents
func LoadEnvFiles() {
	envPaths := []string{".env", "../.env", "../../.env"}
	for _, p := range envPaths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			break
		}
	}
}

// Load reads the configuration from the environment
func Load() (Config, error) {
	cfg := Config{
		Port:            getenv("PORT", "8000"),
		GinMode:         os.Getenv("GIN_MODE"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		DataPath:        getenv("DATA_PATH", "capacity.db"),
		JWTSecret:       getenv("JWT_SECRET", DefaultJWTSecret),
		APIMasterSecret: os.Getenv("API_MASTER_SECRET"),
		AdminEmail:      os.Getenv("ADMIN_EMAIL"),
		AdminPassword:   os.Getenv("ADMIN_PASSWORD"),
		LogLevel:        getenv("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.StrictDateOrder, err = getbool("STRICT_DATE_ORDER", false); err != nil {
		return Config{}, err
	}
	if cfg.SeedOnStart, err = getbool("SEED_ON_START", false); err != nil {
		return Config{}, err
	}

	hours, err := getint("TOKEN_TTL_HOURS", 24)
	if err != nil {
		return Config{}, err
	}
	if hours <= 0 {
		return Config{}, fmt.Errorf("TOKEN_TTL_HOURS must be positive, got %d", hours)
	}
	cfg.TokenTTL = time.Duration(hours) * time.Hour

	return cfg, nil
}

// KeysEnabled reports whether integration keys can be issued and verified
func (c Config) KeysEnabled() bool {
	return c.APIMasterSecret != ""
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getbool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return b, nil
}

func getint(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}
