package handlers

import (
	"net/http"

	"github.com/arnavshah/capacity-api-go/pkg/capacity"
	"github.com/arnavshah/capacity-api-go/pkg/models"
	"github.com/gin-gonic/gin"
)

// ValidateAssignment checks an assignment without storing it and reports the
// engineer's capacity as it would be afterwards
func (h *Handler) ValidateAssignment(c *gin.Context) {
	var input models.AssignmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"valid": false,
			"error": err.Error(),
		})
		return
	}

	if err := capacity.ValidateAssignment(input, h.Options); err != nil {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": err.Error()})
		return
	}

	snap, err := h.Store.Snapshot(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	engineer, ok := capacity.FindProfile(snap.Profiles, input.EngineerID)
	if !ok || !engineer.IsEngineer() {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Unknown engineer: " + input.EngineerID})
		return
	}
	if _, ok := capacity.FindProject(snap.Projects, input.ProjectID); !ok {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Unknown project: " + input.ProjectID})
		return
	}

	mine := capacity.AssignmentsFor(engineer.ID, snap.Assignments)
	current := capacity.EngineerCapacity(engineer, mine)
	projected := capacity.EngineerCapacity(engineer, append(mine, models.Assignment{
		EngineerID:           input.EngineerID,
		ProjectID:            input.ProjectID,
		AllocationPercentage: input.AllocationPercentage,
	}))

	c.JSON(http.StatusOK, gin.H{
		"valid":     true,
		"current":   current,
		"projected": projected,
	})
}
