package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/arnavshah/capacity-api-go/pkg/auth"
	"github.com/arnavshah/capacity-api-go/pkg/capacity"
	"github.com/arnavshah/capacity-api-go/pkg/database"
	"github.com/arnavshah/capacity-api-go/pkg/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler contains dependencies for the route handlers
type Handler struct {
	Store   *database.Store
	Auth    *auth.Auth
	Log     *zap.Logger
	Options capacity.Options
}

// New creates a Handler. A nil logger discards output.
func New(store *database.Store, a *auth.Auth, log *zap.Logger, opts capacity.Options) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{Store: store, Auth: a, Log: log, Options: opts}
}

func bearer(c *gin.Context) string {
	token := c.GetHeader("Authorization")
	if len(token) > 7 && token[:7] == "Bearer " {
		token = token[7:]
	}
	return token
}

// fail maps domain errors onto status codes
func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, capacity.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, database.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, auth.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	default:
		h.Log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func userID(c *gin.Context) string {
	return c.GetString("userID")
}

func role(c *gin.Context) models.Role {
	return models.Role(c.GetString("role"))
}

// AuthMiddleware verifies the session token and stores the caller's id and role
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearer(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		claims, err := h.Auth.VerifyToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("role", string(claims.Role))
		c.Next()
	}
}

// RequireManager rejects callers without the manager role
func (h *Handler) RequireManager() gin.HandlerFunc {
	return func(c *gin.Context) {
		if role(c) != models.RoleManager {
			c.JSON(http.StatusForbidden, gin.H{"error": "Manager role required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// APIKeyMiddleware verifies integration keys using HMAC and enforces the
// daily request limit of the key
func (h *Handler) APIKeyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := bearer(c)
		if key == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "API Key required"})
			c.Abort()
			return
		}

		if _, err := h.Auth.VerifyHMACKey(key); err != nil {
			if errors.Is(err, auth.ErrKeysDisabled) {
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
				c.Abort()
				return
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid API Key signature"})
			c.Abort()
			return
		}

		apiKey, err := h.Store.FindKey(c.Request.Context(), key)
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "API Key not issued or revoked"})
			c.Abort()
			return
		}
		if err != nil {
			h.fail(c, err)
			c.Abort()
			return
		}

		requests, err := h.Store.RequestsToday(c.Request.Context(), apiKey.ID)
		if err != nil {
			h.fail(c, err)
			c.Abort()
			return
		}
		if apiKey.RateLimit > 0 && requests >= apiKey.RateLimit {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Daily request limit reached"})
			c.Abort()
			return
		}

		c.Set("apiKey", apiKey)
		c.Next()
	}
}

// Login exchanges an email and password for a session token
func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, token, err := h.Auth.Login(c.Request.Context(), h.Store, req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer", "profile": profile})
}

// Signup registers a new engineer and signs them in
func (h *Handler) Signup(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var missing []string
	if strings.TrimSpace(req.Email) == "" {
		missing = append(missing, "email")
	}
	if req.Password == "" {
		missing = append(missing, "password")
	}
	if strings.TrimSpace(req.Name) == "" {
		missing = append(missing, "name")
	}
	if len(missing) > 0 {
		h.fail(c, &capacity.ValidationError{Fields: missing})
		return
	}

	ctx := c.Request.Context()
	_, _, err := h.Store.Credentials(ctx, req.Email)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}
	if !errors.Is(err, database.ErrNotFound) {
		h.fail(c, err)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}

	profile, err := h.Store.CreateProfile(ctx, models.Profile{
		Email:  req.Email,
		Name:   strings.TrimSpace(req.Name),
		Role:   models.RoleEngineer,
		Skills: []string{},
	}, hash)
	if err != nil {
		h.fail(c, err)
		return
	}

	token, err := h.Auth.CreateToken(profile)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.Log.Info("profile registered", zap.String("profile_id", profile.ID))
	c.JSON(http.StatusCreated, gin.H{"access_token": token, "token_type": "bearer", "profile": profile})
}
