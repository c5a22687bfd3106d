package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/agenthands/discourse/internal/config"
	"github.com/agenthands/discourse/internal/logger"
	"github.com/agenthands/discourse/internal/logger/console"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "dashctl",
	Short: "Inspect and export the discourse dashboard offline",
	Long: `dashctl loads the same artifacts as the dashboard server and runs page
callbacks without starting HTTP, so figures can be checked or exported.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
		logger.Init(console.NewConsoleLogger(console.ConsoleLoggerParams{Debug: verbose, Output: os.Stderr}))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config/config.toml", "path to the TOML configuration")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output")

	rootCmd.AddCommand(pagesCmd)
	rootCmd.AddCommand(createFigureCmd())
	rootCmd.AddCommand(createImportCmd())
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	return cfg, nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
