package handlers

import (
	"net/http"
	"time"

	"github.com/arnavshah/capacity-api-go/pkg/capacity"
	"github.com/arnavshah/capacity-api-go/pkg/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ListAssignments returns every assignment with engineer and project names
func (h *Handler) ListAssignments(c *gin.Context) {
	snap, err := h.Store.Snapshot(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"assignments": capacity.Views(snap, snap.Assignments, time.Now())})
}

// MyAssignments returns the caller's assignments
func (h *Handler) MyAssignments(c *gin.Context) {
	ctx := c.Request.Context()
	profile, err := h.Store.GetProfile(ctx, userID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	mine, err := h.Store.AssignmentsForEngineer(ctx, profile.ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	projects, err := h.Store.ListProjects(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}

	snap := models.Snapshot{Profiles: []models.Profile{profile}, Projects: projects, Assignments: mine}
	c.JSON(http.StatusOK, gin.H{"assignments": capacity.Views(snap, mine, time.Now())})
}

// CreateAssignment allocates an engineer to a project. Allocations that push
// the engineer over capacity are accepted and show up as overallocation.
func (h *Handler) CreateAssignment(c *gin.Context) {
	var input models.AssignmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := capacity.ValidateAssignment(input, h.Options); err != nil {
		h.fail(c, err)
		return
	}

	assignment, err := h.Store.CreateAssignment(c.Request.Context(), models.Assignment{
		EngineerID:           input.EngineerID,
		ProjectID:            input.ProjectID,
		AllocationPercentage: input.AllocationPercentage,
		StartDate:            input.StartDate,
		EndDate:              input.EndDate,
		Role:                 input.Role,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	h.Log.Info("assignment created",
		zap.String("assignment_id", assignment.ID),
		zap.String("engineer_id", assignment.EngineerID),
		zap.Int("allocation", assignment.AllocationPercentage))
	c.JSON(http.StatusCreated, assignment)
}

// DeleteAssignment removes an assignment
func (h *Handler) DeleteAssignment(c *gin.Context) {
	if err := h.Store.DeleteAssignment(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Assignment deleted"})
}
