package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/arnavshah/capacity-api-go/pkg/capacity"
	"github.com/arnavshah/capacity-api-go/pkg/matching"
	"github.com/arnavshah/capacity-api-go/pkg/models"
	"github.com/gin-gonic/gin"
)

// ListEngineers returns the engineers matching ?search= with their current capacity
func (h *Handler) ListEngineers(c *gin.Context) {
	ctx := c.Request.Context()
	engineers, err := h.Store.ListEngineers(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	assignments, err := h.Store.ListAssignments(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}

	engineers = capacity.FilterEngineers(engineers, c.Query("search"))
	summary := capacity.SummarizeTeam(engineers, assignments)

	out := make([]gin.H, 0, len(engineers))
	for i, e := range engineers {
		out = append(out, gin.H{"profile": e, "capacity": summary.Engineers[i]})
	}
	c.JSON(http.StatusOK, gin.H{"engineers": out})
}

// Dashboard returns the team overview to managers and the personal view to engineers
func (h *Handler) Dashboard(c *gin.Context) {
	snap, err := h.Store.Snapshot(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	if role(c) == models.RoleManager {
		c.JSON(http.StatusOK, capacity.BuildTeamDashboard(snap))
		return
	}
	c.JSON(http.StatusOK, capacity.BuildEngineerDashboard(snap, userID(c), time.Now()))
}

// Analytics returns the team analytics series. ?top= limits the skill list.
func (h *Handler) Analytics(c *gin.Context) {
	top, err := strconv.Atoi(c.DefaultQuery("top", strconv.Itoa(capacity.DefaultTopSkills)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "top must be a number"})
		return
	}

	snap, err := h.Store.Snapshot(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, capacity.BuildAnalytics(snap, top))
}

// Candidates ranks engineers for a project. ?allocation= is the percentage to fill.
func (h *Handler) Candidates(c *gin.Context) {
	allocation, err := strconv.Atoi(c.DefaultQuery("allocation", strconv.Itoa(matching.DefaultAllocation)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "allocation must be a number"})
		return
	}

	ctx := c.Request.Context()
	project, err := h.Store.GetProject(ctx, c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	snap, err := h.Store.Snapshot(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}

	m := matching.NewMatcher(snap.Engineers(), snap.Assignments)
	c.JSON(http.StatusOK, m.Suggest(project, allocation))
}
