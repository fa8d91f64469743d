package handlers

import (
	"net/http"

	"github.com/arnavshah/capacity-api-go/pkg/capacity"
	"github.com/arnavshah/capacity-api-go/pkg/models"
	"github.com/gin-gonic/gin"
)

// GetMe returns the caller's profile
func (h *Handler) GetMe(c *gin.Context) {
	profile, err := h.Store.GetProfile(c.Request.Context(), userID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateMe edits the caller's profile
func (h *Handler) UpdateMe(c *gin.Context) {
	var input models.ProfileUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := capacity.ValidateProfileUpdate(input); err != nil {
		h.fail(c, err)
		return
	}

	profile, err := h.Store.UpdateProfile(c.Request.Context(), userID(c), models.Profile{
		Name:        input.Name,
		Department:  input.Department,
		Skills:      capacity.ParseSkills(input.Skills),
		Seniority:   input.Seniority,
		MaxCapacity: input.MaxCapacity,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
