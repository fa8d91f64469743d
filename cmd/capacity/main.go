package main

import (
	"context"
	"fmt"
	"os"

	"github.com/arnavshah/capacity-api-go/pkg/capacity"
	"github.com/arnavshah/capacity-api-go/pkg/config"
	"github.com/arnavshah/capacity-api-go/pkg/database"
	"github.com/arnavshah/capacity-api-go/pkg/logging"
	"github.com/arnavshah/capacity-api-go/pkg/models"
	"github.com/arnavshah/capacity-api-go/pkg/report"
	"github.com/arnavshah/capacity-api-go/pkg/seed"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	reportFile   string
	reportFormat string
	reportTop    int

	seedRandom   int
	seedPassword string
)

var rootCmd = &cobra.Command{
	Use:           "capacity",
	Short:         "Engineering capacity reports and sample data",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the team capacity report",
	Long:  `Prints utilization per engineer plus team analytics, read from a snapshot file or the configured database.`,
	RunE:  runReport,
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the sample team into the configured database",
	RunE:  runSeed,
}

func init() {
	reportCmd.Flags().StringVarP(&reportFile, "file", "f", "", "snapshot file (.yaml, .yml or .json); reads the database when empty")
	reportCmd.Flags().StringVar(&reportFormat, "format", "text", "output format: text or json")
	reportCmd.Flags().IntVar(&reportTop, "top", capacity.DefaultTopSkills, "number of top skills to list")

	seedCmd.Flags().IntVar(&seedRandom, "random", 0, "also create this many random engineers")
	seedCmd.Flags().StringVar(&seedPassword, "password", seed.DefaultPassword, "password given to seeded profiles")

	rootCmd.AddCommand(reportCmd, seedCmd)
}

func openStore() (*database.Store, *zap.Logger, error) {
	config.LoadEnvFiles()
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	db, err := database.InitDB(cfg.DatabaseURL, cfg.DataPath)
	if err != nil {
		return nil, nil, err
	}
	return database.NewStore(db), logger, nil
}

func runReport(cmd *cobra.Command, args []string) error {
	format, err := report.ParseFormat(reportFormat)
	if err != nil {
		return err
	}

	var snap models.Snapshot
	if reportFile != "" {
		snap, err = report.LoadSnapshot(reportFile)
	} else {
		var store *database.Store
		store, _, err = openStore()
		if err == nil {
			snap, err = store.Snapshot(cmd.Context())
		}
	}
	if err != nil {
		return err
	}

	return report.Render(cmd.OutOrStdout(), report.Build(snap, reportTop), format)
}

func runSeed(cmd *cobra.Command, args []string) error {
	store, logger, err := openStore()
	if err != nil {
		return err
	}
	defer logger.Sync()

	data := seed.Sample()
	data.Profiles = append(data.Profiles, seed.RandomEngineers(seedRandom)...)

	res, err := seed.Apply(cmd.Context(), store, data, seedPassword, logger)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %d profiles, %d projects, %d assignments\n",
		res.Profiles, res.Projects, res.Assignments)
	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
