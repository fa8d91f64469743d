package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/arnavshah/capacity-api-go/pkg/auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func keyID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid key id"})
		return 0, false
	}
	return uint(id), true
}

// GenerateKey creates a new integration key using the HMAC strategy
func (h *Handler) GenerateKey(c *gin.Context) {
	var req struct {
		Name      string `json:"name"`
		RateLimit int    `json:"rate_limit"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	if req.RateLimit == 0 {
		req.RateLimit = 10000
	}

	key, err := h.Auth.IssueKey(req.Name)
	if errors.Is(err, auth.ErrKeysDisabled) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}

	apiKey, err := h.Store.CreateKey(c.Request.Context(), key, req.Name, req.RateLimit)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.Log.Info("api key issued", zap.Uint("key_id", apiKey.ID), zap.String("name", apiKey.Name))
	c.JSON(http.StatusOK, gin.H{
		"id":   apiKey.ID,
		"name": req.Name,
		"key":  key,
	})
}

// ListKeys returns all integration keys
func (h *Handler) ListKeys(c *gin.Context) {
	keys, err := h.Store.ListKeys(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"keys": keys})
}

// RevokeKey deletes an integration key
func (h *Handler) RevokeKey(c *gin.Context) {
	id, ok := keyID(c)
	if !ok {
		return
	}
	if err := h.Store.RevokeKey(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Key revoked"})
}

// UpdateKeyLimit updates the daily request limit for a key
func (h *Handler) UpdateKeyLimit(c *gin.Context) {
	id, ok := keyID(c)
	if !ok {
		return
	}

	var req struct {
		RateLimit int `json:"rate_limit" form:"rate_limit"`
	}

	// Try JSON first, then Form/Query
	if err := c.ShouldBindJSON(&req); err != nil {
		if err := c.ShouldBindQuery(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "rate_limit is required"})
			return
		}
	}

	if req.RateLimit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid rate limit"})
		return
	}

	if err := h.Store.UpdateKeyLimit(c.Request.Context(), id, req.RateLimit); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Rate limit updated successfully"})
}

// GetUsage returns usage stats for a key
func (h *Handler) GetUsage(c *gin.Context) {
	id, ok := keyID(c)
	if !ok {
		return
	}
	usage, err := h.Store.Usage(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"usage": usage})
}
