package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/LostLegendarySoftware/machinegodAGI/internal/agent"
	"github.com/LostLegendarySoftware/machinegodAGI/internal/monitor"
	"github.com/LostLegendarySoftware/machinegodAGI/internal/warp"
)

var (
	runEfficiency float64
	runErrorRate  float64
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Drive the phase loop until warp drive or interrupt",
	Long: `Start one agent and evaluate the phase ladder against live /proc
resource readings until the warp drive engages or the process is
interrupted. Team efficiencies are pinned to --efficiency for the whole
run.

Examples:
  arielctl run
  arielctl run --efficiency 0.95 --error-rate 0.05`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().Float64Var(&runEfficiency, "efficiency", 0.9, "Team efficiency for every phase")
	runCmd.Flags().Float64Var(&runErrorRate, "error-rate", 0.0, "Observed system error rate")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	a, err := agent.New(cfg, monitor.NewProcSampler(), nil)
	if err != nil {
		return err
	}
	defer a.Close()

	a.Warp().Start()
	for p := warp.PhaseInit; p <= warp.PhaseWarpDrive; p++ {
		if err := a.Warp().SetEfficiency(p, runEfficiency); err != nil {
			return err
		}
	}
	a.Warp().SetErrorRate(runErrorRate)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("agent %s running (efficiency %.2f, error rate %.2f)\n", a.ID, runEfficiency, runErrorRate)
	err = a.Warp().Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	snap := a.Warp().Snapshot()
	fmt.Printf("phase: %s  complexity: %d  light speed: %v\n", snap.Phase, snap.Complexity, snap.LightSpeed)
	if snap.Completed {
		fmt.Println("warp drive engaged")
	} else {
		fmt.Println("interrupted")
	}
	return nil
}
