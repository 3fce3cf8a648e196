package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/LostLegendarySoftware/machinegodAGI/internal/config"
)

var (
	// Global flags
	cfgFile string
	dbPath  string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "arielctl",
	Short: "ARIEL agent control loop CLI",
	Long: `arielctl drives one ARIEL agent: the warp phase ladder, the
self-healing diagnostics, and the emotional incentive loop.

Core Commands:
  run      Drive the phase loop until warp drive or interrupt
  heal     Log scripted errors and run one heal cycle
  status   Show recent journal entries
  replay   Run the built-in deterministic scenario`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "ariel.yaml", "Config file path")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Journal database path (overrides config)")
}

// loadConfig reads the configured file and applies the --db override.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	if dbPath != "" {
		cfg.Journal.Path = dbPath
	}
	return cfg, nil
}
