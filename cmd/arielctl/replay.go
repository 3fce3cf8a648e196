package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LostLegendarySoftware/machinegodAGI/internal/replay"
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Run the built-in deterministic scenario",
	Long: `Run the built-in scenario on a fake clock: a full ascent to warp
drive with one throttle, one revert, and one self-heal. The same seed and
script produce the same output every time.

Examples:
  arielctl replay
  arielctl replay --db replay.db`,
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	h, err := replay.NewHarness(cfg)
	if err != nil {
		return err
	}
	defer h.Close()

	results, summary, err := h.Run(cmd.Context(), replay.DefaultScenario())
	if err != nil {
		return err
	}

	for i, r := range results {
		fmt.Printf("%2d %-18s %-9s phase %-22s issues %d dominant %s\n",
			i, r.Label, r.Outcome, r.Phase, r.Issues, r.Dominant)
		if r.Heal != nil {
			fmt.Printf("   heal: %s (%d action(s))\n", r.Heal.Status, len(r.Heal.Actions))
		}
	}

	fmt.Printf("advances %d  reverts %d  throttles %d  heals %d\n",
		summary.Advances, summary.Reverts, summary.Throttles, summary.HealsPerformed)
	fmt.Printf("final phase %s  completed %v  total reward %.1f\n",
		summary.FinalPhase, summary.Completed, summary.TotalReward)
	return nil
}
