package handlers

import (
	"net/http"

	"github.com/arnavshah/capacity-api-go/pkg/capacity"
	"github.com/arnavshah/capacity-api-go/pkg/database"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func currentKey(c *gin.Context) (*database.APIKey, bool) {
	raw, exists := c.Get("apiKey")
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "API Key context missing"})
		return nil, false
	}
	return raw.(*database.APIKey), true
}

// recordUsage counts one request against the calling key. Failures are
// logged and never fail the request.
func (h *Handler) recordUsage(c *gin.Context, key *database.APIKey, engineers, assignments int) {
	if err := h.Store.RecordUsage(c.Request.Context(), key.ID, engineers, assignments); err != nil {
		h.Log.Warn("record usage", zap.Uint("key_id", key.ID), zap.Error(err))
	}
}

// CapacityReport returns the team capacity summary to integrations
func (h *Handler) CapacityReport(c *gin.Context) {
	key, ok := currentKey(c)
	if !ok {
		return
	}

	snap, err := h.Store.Snapshot(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	summary := capacity.SummarizeTeam(snap.Engineers(), snap.Assignments)
	h.recordUsage(c, key, summary.EngineerCount, len(snap.Assignments))

	c.JSON(http.StatusOK, gin.H{
		"team":          summary,
		"balance_score": capacity.BalanceScore(summary.Engineers),
	})
}

// GetMyUsage returns usage stats for the authenticated API key
func (h *Handler) GetMyUsage(c *gin.Context) {
	key, ok := currentKey(c)
	if !ok {
		return
	}

	usage, err := h.Store.Usage(c.Request.Context(), key.ID)
	if err != nil {
		h.fail(c, err)
		return
	}

	// Calculate totals
	var totalRequests, totalEngineers, totalAssignments int64
	for _, u := range usage {
		totalRequests += int64(u.RequestCount)
		totalEngineers += int64(u.TotalEngineers)
		totalAssignments += int64(u.TotalAssignments)
	}

	c.JSON(http.StatusOK, gin.H{
		"key_name":      key.Name,
		"rate_limit":    key.RateLimit,
		"usage_history": usage,
		"totals": gin.H{
			"requests":    totalRequests,
			"engineers":   totalEngineers,
			"assignments": totalAssignments,
		},
	})
}
