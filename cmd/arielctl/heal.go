package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/LostLegendarySoftware/machinegodAGI/internal/agent"
	"github.com/LostLegendarySoftware/machinegodAGI/internal/monitor"
)

var healErrors []string

var healCmd = &cobra.Command{
	Use:   "heal",
	Short: "Log scripted errors and run one heal cycle",
	Long: `Log one or more errors into a fresh agent, print the diagnosed
issues, then run a single heal cycle and print the actions taken.

Each --error takes the form type:severity, e.g. memory_corruption:15.

Examples:
  arielctl heal --error memory_corruption:15 --error memory_corruption:15 --error memory_corruption:15
  arielctl heal --error decision_paralysis:60`,
	RunE: runHeal,
}

func init() {
	healCmd.Flags().StringArrayVar(&healErrors, "error", nil, "Error event as type:severity (repeatable)")
	healCmd.MarkFlagRequired("error")
	rootCmd.AddCommand(healCmd)
}

func runHeal(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	a, err := agent.New(cfg, monitor.NewProcSampler(), nil)
	if err != nil {
		return err
	}
	defer a.Close()

	for _, spec := range healErrors {
		errType, severity, err := parseErrorSpec(spec)
		if err != nil {
			return err
		}
		a.Health().LogError(errType, severity, nil)
	}

	issues := a.Health().Diagnose()
	fmt.Printf("diagnosed %d issue(s)\n", len(issues))
	for _, issue := range issues {
		fmt.Printf("  [%s] %s (severity %.1f)\n", issue.Kind, issue.Label, issue.Severity)
	}

	result, err := a.Health().Heal(cmd.Context())
	if err != nil {
		return fmt.Errorf("heal: %w", err)
	}
	fmt.Printf("status: %s\n", result.Status)
	for _, action := range result.Actions {
		fmt.Printf("  %s -> %s: %s\n", action.Issue, action.Strategy, action.Outcome)
	}
	return nil
}

// parseErrorSpec splits "type:severity" flag values.
func parseErrorSpec(spec string) (string, float64, error) {
	errType, sevStr, ok := strings.Cut(spec, ":")
	if !ok || errType == "" {
		return "", 0, fmt.Errorf("invalid --error %q, want type:severity", spec)
	}
	severity, err := strconv.ParseFloat(sevStr, 64)
	if err != nil {
		return "", 0, fmt.Errorf("invalid severity in --error %q: %w", spec, err)
	}
	return errType, severity, nil
}
