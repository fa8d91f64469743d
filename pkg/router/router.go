package router

import (
	"net/http"

	"github.com/arnavshah/capacity-api-go/pkg/handlers"
	"github.com/arnavshah/capacity-api-go/pkg/logging"
	"github.com/gin-gonic/gin"
)

// Version is reported by the root endpoint
const Version = "1.0.0"

// New builds the engine with every route registered
func New(h *handlers.Handler) *gin.Engine {
	r := gin.New()
	r.Use(logging.GinLogger(h.Log), gin.Recovery())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Engineering Capacity API",
			"version": Version,
		})
	})

	r.POST("/auth/login", h.Login)
	r.POST("/auth/signup", h.Signup)

	// Signed-in endpoints
	api := r.Group("/api")
	api.Use(h.AuthMiddleware())
	{
		api.GET("/dashboard", h.Dashboard)
		api.GET("/me", h.GetMe)
		api.PUT("/me", h.UpdateMe)
		api.GET("/me/assignments", h.MyAssignments)
	}

	// Manager endpoints
	manager := api.Group("")
	manager.Use(h.RequireManager())
	{
		manager.GET("/engineers", h.ListEngineers)
		manager.GET("/analytics", h.Analytics)

		manager.GET("/projects", h.ListProjects)
		manager.POST("/projects", h.CreateProject)
		manager.GET("/projects/:id/candidates", h.Candidates)

		manager.GET("/assignments", h.ListAssignments)
		manager.POST("/assignments", h.CreateAssignment)
		manager.POST("/assignments/validate", h.ValidateAssignment)
		manager.DELETE("/assignments/:id", h.DeleteAssignment)

		manager.POST("/keys", h.GenerateKey)
		manager.GET("/keys", h.ListKeys)
		manager.PUT("/keys/:id", h.UpdateKeyLimit)
		manager.DELETE("/keys/:id", h.RevokeKey)
		manager.GET("/keys/:id/usage", h.GetUsage)
	}

	// Integration endpoints
	reports := r.Group("/reports")
	reports.Use(h.APIKeyMiddleware())
	{
		reports.GET("/capacity", h.CapacityReport)
		reports.GET("/usage", h.GetMyUsage)
	}

	return r
}
