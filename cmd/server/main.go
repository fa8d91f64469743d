package main

import (
	"context"
	"log"

	"github.com/arnavshah/capacity-api-go/pkg/auth"
	"github.com/arnavshah/capacity-api-go/pkg/capacity"
	"github.com/arnavshah/capacity-api-go/pkg/config"
	"github.com/arnavshah/capacity-api-go/pkg/database"
	"github.com/arnavshah/capacity-api-go/pkg/handlers"
	"github.com/arnavshah/capacity-api-go/pkg/logging"
	"github.com/arnavshah/capacity-api-go/pkg/router"
	"github.com/arnavshah/capacity-api-go/pkg/seed"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load .env if it exists
	config.LoadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("could not create logger: %v", err)
	}
	defer logger.Sync()

	if cfg.GinMode == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.JWTSecret == config.DefaultJWTSecret {
		logger.Warn("JWT_SECRET not set, using the development secret")
	}
	if !cfg.KeysEnabled() {
		logger.Warn("API_MASTER_SECRET not set, integration keys and /reports are disabled")
	}

	db, err := database.InitDB(cfg.DatabaseURL, cfg.DataPath)
	if err != nil {
		logger.Fatal("could not open database", zap.Error(err))
	}
	store := database.NewStore(db)

	ctx := context.Background()
	if cfg.SeedOnStart {
		if _, err := seed.Apply(ctx, store, seed.Sample(), "", logger); err != nil {
			logger.Fatal("could not seed database", zap.Error(err))
		}
	}
	created, err := auth.EnsureManagerExists(ctx, store, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		logger.Fatal("could not create bootstrap manager", zap.Error(err))
	}
	if created {
		logger.Info("bootstrap manager created")
	}

	a := auth.New(cfg.JWTSecret, cfg.APIMasterSecret, cfg.TokenTTL)
	h := handlers.New(store, a, logger, capacity.Options{StrictDateOrder: cfg.StrictDateOrder})
	r := router.New(h)

	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("could not run server", zap.Error(err))
	}
}
