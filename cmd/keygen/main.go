package main

import (
	"context"
	"fmt"
	"os"

	"github.com/arnavshah/capacity-api-go/pkg/auth"
	"github.com/arnavshah/capacity-api-go/pkg/config"
	"github.com/arnavshah/capacity-api-go/pkg/database"
)

func main() {
	config.LoadEnvFiles()

	if len(os.Args) < 2 {
		fmt.Println("Usage: keygen <integration-name>")
		os.Exit(1)
	}

	name := os.Args[1]
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	if !cfg.KeysEnabled() {
		fmt.Println("Error: API_MASTER_SECRET not found in .env")
		os.Exit(1)
	}

	apiKey, err := auth.New(cfg.JWTSecret, cfg.APIMasterSecret, cfg.TokenTTL).IssueKey(name)
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}

	// The middleware only accepts stored keys
	db, err := database.InitDB(cfg.DatabaseURL, cfg.DataPath)
	if err != nil {
		fmt.Println("Error opening database:", err)
		os.Exit(1)
	}
	stored, err := database.NewStore(db).CreateKey(context.Background(), apiKey, name, 10000)
	if err != nil {
		fmt.Println("Error storing key:", err)
		os.Exit(1)
	}

	fmt.Printf("Generated Key for %s (id %d):\n%s\n", name, stored.ID, apiKey)
}
