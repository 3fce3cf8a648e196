package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/LostLegendarySoftware/machinegodAGI/internal/journal"
	"github.com/LostLegendarySoftware/machinegodAGI/internal/warp"
)

var statusLimit int

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show recent journal entries",
	Long: `Print the most recent phase transitions and heal actions recorded
in the journal database.

Examples:
  arielctl status
  arielctl status -n 5 --db ariel.db`,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().IntVarP(&statusLimit, "limit", "n", 10, "Entries to show per section")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Journal.Path == "" {
		return fmt.Errorf("no journal configured; set journal.path or pass --db")
	}

	j, err := journal.Open(cfg.Journal.Path)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	transitions, err := j.RecentTransitions(statusLimit)
	if err != nil {
		return fmt.Errorf("read transitions: %w", err)
	}
	fmt.Printf("phase transitions (%d):\n", len(transitions))
	for _, tr := range transitions {
		fmt.Printf("  %s  %s -> %s  %-8s complexity %d\n",
			tr.CreatedAt.Format(time.RFC3339),
			warp.Phase(tr.FromPhase), warp.Phase(tr.ToPhase),
			tr.Reason, tr.Complexity)
	}

	actions, err := j.RecentHealActions(statusLimit)
	if err != nil {
		return fmt.Errorf("read heal actions: %w", err)
	}
	fmt.Printf("heal actions (%d):\n", len(actions))
	for _, act := range actions {
		fmt.Printf("  %s  %s -> %s: %s (severity %.1f)\n",
			act.CreatedAt.Format(time.RFC3339),
			act.Issue, act.Strategy, act.Outcome, act.Severity)
	}
	return nil
}
