package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/arnavshah/capacity-api-go/pkg/database"
	"github.com/arnavshah/capacity-api-go/pkg/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var jwtAlgorithm = jwt.SigningMethodHS256

// ErrInvalidCredentials is returned for an unknown email or a wrong password
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrKeysDisabled is returned for key operations when no master secret is configured
var ErrKeysDisabled = errors.New("integration keys disabled: API_MASTER_SECRET not set")

// Claims represents the JWT claims
type Claims struct {
	UserID string      `json:"user_id"`
	Email  string      `json:"email"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// Auth signs and verifies session tokens and integration API keys
type Auth struct {
	jwtSecret    []byte
	masterSecret string
	tokenTTL     time.Duration
}

// New creates an Auth. A zero ttl means 24 hours.
func New(jwtSecret, masterSecret string, ttl time.Duration) *Auth {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Auth{
		jwtSecret:    []byte(jwtSecret),
		masterSecret: masterSecret,
		tokenTTL:     ttl,
	}
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares a password with its hash
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// CreateToken creates a new JWT token for a profile
func (a *Auth) CreateToken(p models.Profile) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: p.ID,
		Email:  p.Email,
		Role:   p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwtAlgorithm, claims)
	return token.SignedString(a.jwtSecret)
}

// VerifyToken verifies a JWT token
func (a *Auth) VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return a.jwtSecret, nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// Login checks an email and password against the store
func (a *Auth) Login(ctx context.Context, store *database.Store, email, password string) (models.Profile, string, error) {
	profile, hash, err := store.Credentials(ctx, email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return models.Profile{}, "", ErrInvalidCredentials
		}
		return models.Profile{}, "", err
	}
	if hash == "" || !CheckPasswordHash(password, hash) {
		return models.Profile{}, "", ErrInvalidCredentials
	}

	token, err := a.CreateToken(profile)
	if err != nil {
		return models.Profile{}, "", fmt.Errorf("create token: %w", err)
	}
	return profile, token, nil
}

// EnsureManagerExists creates a manager from the given credentials when no
// manager exists yet. It reports whether one was created.
func EnsureManagerExists(ctx context.Context, store *database.Store, email, password string) (bool, error) {
	count, err := store.CountManagers(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	if email == "" {
		email = "manager@company.com"
	}
	if password == "" {
		password = "admin123"
	}

	hash, err := HashPassword(password)
	if err != nil {
		return false, err
	}

	_, err = store.CreateProfile(ctx, models.Profile{
		Email:      email,
		Name:       "Manager",
		Role:       models.RoleManager,
		Department: "Engineering",
	}, hash)
	if err != nil {
		return false, err
	}
	return true, nil
}

// KeysEnabled reports whether a master secret is configured for integration keys
func (a *Auth) KeysEnabled() bool {
	return a.masterSecret != ""
}

func (a *Auth) sign(name string) string {
	h := hmac.New(sha256.New, []byte(a.masterSecret))
	h.Write([]byte(name))
	return hex.EncodeToString(h.Sum(nil))
}

// GenerateHMACKey creates a signed API key using HMAC-SHA256
func (a *Auth) GenerateHMACKey(name string) string {
	return name + "." + a.sign(name)
}

// IssueKey signs name with a random suffix, so one name can hold several keys
func (a *Auth) IssueKey(name string) (string, error) {
	if !a.KeysEnabled() {
		return "", ErrKeysDisabled
	}
	nonce := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return a.GenerateHMACKey(name + "." + nonce), nil
}

// VerifyHMACKey validates an HMAC-signed API key and returns the name it was issued to
func (a *Auth) VerifyHMACKey(key string) (string, error) {
	if !a.KeysEnabled() {
		return "", ErrKeysDisabled
	}
	i := strings.LastIndex(key, ".")
	if i <= 0 || i == len(key)-1 {
		return "", errors.New("invalid key format")
	}

	name := key[:i]
	providedSignature := key[i+1:]

	// Constant-time comparison
	if !hmac.Equal([]byte(providedSignature), []byte(a.sign(name))) {
		return "", errors.New("invalid signature")
	}

	return name, nil
}
