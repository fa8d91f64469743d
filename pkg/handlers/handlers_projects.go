package handlers

import (
	"net/http"

	"github.com/arnavshah/capacity-api-go/pkg/capacity"
	"github.com/arnavshah/capacity-api-go/pkg/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ListProjects returns the projects matching ?search=
func (h *Handler) ListProjects(c *gin.Context) {
	projects, err := h.Store.ListProjects(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": capacity.FilterProjects(projects, c.Query("search"))})
}

// CreateProject stores a project owned by the calling manager
func (h *Handler) CreateProject(c *gin.Context) {
	var input models.ProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := capacity.ValidateProject(input, h.Options); err != nil {
		h.fail(c, err)
		return
	}
	input = capacity.NormalizeProject(input)

	project, err := h.Store.CreateProject(c.Request.Context(), models.Project{
		Name:           input.Name,
		Description:    input.Description,
		StartDate:      input.StartDate,
		EndDate:        input.EndDate,
		RequiredSkills: input.RequiredSkills,
		TeamSize:       input.TeamSize,
		Status:         input.Status,
		ManagerID:      userID(c),
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	h.Log.Info("project created", zap.String("project_id", project.ID), zap.String("manager_id", project.ManagerID))
	c.JSON(http.StatusCreated, project)
}
