package handler

import (
	"context"
	"net/http"

	"github.com/arnavshah/capacity-api-go/pkg/auth"
	"github.com/arnavshah/capacity-api-go/pkg/capacity"
	"github.com/arnavshah/capacity-api-go/pkg/config"
	"github.com/arnavshah/capacity-api-go/pkg/database"
	"github.com/arnavshah/capacity-api-go/pkg/handlers"
	"github.com/arnavshah/capacity-api-go/pkg/logging"
	"github.com/arnavshah/capacity-api-go/pkg/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var r http.Handler

func init() {
	// Load .env if it exists (for local testing with vercel dev)
	config.LoadEnvFiles()

	gin.SetMode(gin.ReleaseMode)

	cfg, err := config.Load()
	if err != nil {
		r = unavailable(err)
		return
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		logger = zap.NewNop()
	}

	if !cfg.KeysEnabled() {
		logger.Warn("API_MASTER_SECRET not set, integration keys and /reports are disabled")
	}

	db, err := database.InitDB(cfg.DatabaseURL, cfg.DataPath)
	if err != nil {
		logger.Error("could not open database", zap.Error(err))
		r = unavailable(err)
		return
	}
	store := database.NewStore(db)
	if _, err := auth.EnsureManagerExists(context.Background(), store, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		logger.Error("could not create bootstrap manager", zap.Error(err))
	}

	a := auth.New(cfg.JWTSecret, cfg.APIMasterSecret, cfg.TokenTTL)
	h := handlers.New(store, a, logger, capacity.Options{StrictDateOrder: cfg.StrictDateOrder})
	r = router.New(h)
}

func unavailable(err error) http.Handler {
	e := gin.New()
	e.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	})
	return e
}

// Handler is the entry point for Vercel Go Runtime
func Handler(w http.ResponseWriter, req *http.Request) {
	r.ServeHTTP(w, req)
}
