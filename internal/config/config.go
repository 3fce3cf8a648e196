package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/LostLegendarySoftware/machinegodAGI/internal/health"
	"github.com/LostLegendarySoftware/machinegodAGI/internal/incentive"
	"github.com/LostLegendarySoftware/machinegodAGI/internal/warp"
)

// #region config

// MemoryConfig sizes the probabilistic memory bank.
type MemoryConfig struct {
	Slots int `yaml:"slots"`
}

// JournalConfig locates the provenance database. An empty path disables
// the journal.
type JournalConfig struct {
	Path string `yaml:"path"`
}

// Config is the full tunable surface of one agent.
type Config struct {
	Warp      warp.Config
	Health    health.Config
	Incentive incentive.Config
	Memory    MemoryConfig
	Journal   JournalConfig
}

// Default returns the standard configuration for every component.
func Default() Config {
	return Config{
		Warp:      warp.DefaultConfig(),
		Health:    health.DefaultConfig(),
		Incentive: incentive.DefaultConfig(),
		Memory:    MemoryConfig{Slots: 10},
		Journal:   JournalConfig{Path: "ariel.db"},
	}
}

// #endregion config

// #region duration

// Duration parses YAML scalars like "10s" or "500ms".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// #endregion duration

// #region file-schema

// fileConfig is the YAML-facing override schema. Pointer fields
// distinguish "absent, keep the default" from explicit zeroes.
type fileConfig struct {
	Warp struct {
		CPUThreshold        *float64  `yaml:"cpu_threshold"`
		MemThreshold        *float64  `yaml:"mem_threshold"`
		EfficiencyThreshold *float64  `yaml:"efficiency_threshold"`
		SustainDuration     *Duration `yaml:"sustain_duration"`
		StabilityInterval   *Duration `yaml:"stability_interval"`
		MaxErrorRate        *float64  `yaml:"max_error_rate"`
		ComplexityStep      *int      `yaml:"complexity_step"`
		MaxComplexity       *int      `yaml:"max_complexity"`
		ThrottleBackoff     *Duration `yaml:"throttle_backoff"`
		IdleTick            *Duration `yaml:"idle_tick"`
		DiversityWindow     *int      `yaml:"diversity_window"`
		DiversityThreshold  *float64  `yaml:"diversity_threshold"`
	} `yaml:"warp"`
	Health struct {
		ErrorLogCapacity   *int     `yaml:"error_log_capacity"`
		CriticalThreshold  *float64 `yaml:"critical_threshold"`
		RecurringThreshold *int     `yaml:"recurring_threshold"`
		MaxIssuesPerHeal   *int     `yaml:"max_issues_per_heal"`
	} `yaml:"health"`
	Incentive struct {
		CuriosityReward   *float64 `yaml:"curiosity_reward"`
		EfficiencyReward  *float64 `yaml:"efficiency_reward"`
		CooperationReward *float64 `yaml:"cooperation_reward"`
		InnovationReward  *float64 `yaml:"innovation_reward"`

		ErrorPenalty         *float64 `yaml:"error_penalty"`
		ResourceWastePenalty *float64 `yaml:"resource_waste_penalty"`
		ConflictPenalty      *float64 `yaml:"conflict_penalty"`
		StagnationPenalty    *float64 `yaml:"stagnation_penalty"`

		RewardScaling  *float64 `yaml:"reward_scaling"`
		PenaltyScaling *float64 `yaml:"penalty_scaling"`
	} `yaml:"incentive"`
	Memory struct {
		Slots *int `yaml:"slots"`
	} `yaml:"memory"`
	Journal struct {
		Path *string `yaml:"path"`
	} `yaml:"journal"`
}

// #endregion file-schema

// #region load

// Load reads a YAML file over the defaults. Keys absent from the file keep
// their default values; a missing file returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	var file fileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	apply(&cfg, file)
	return cfg, nil
}

func apply(cfg *Config, file fileConfig) {
	setF(&cfg.Warp.CPUThreshold, file.Warp.CPUThreshold)
	setF(&cfg.Warp.MemThreshold, file.Warp.MemThreshold)
	setF(&cfg.Warp.EfficiencyThreshold, file.Warp.EfficiencyThreshold)
	setD(&cfg.Warp.SustainDuration, file.Warp.SustainDuration)
	setD(&cfg.Warp.StabilityInterval, file.Warp.StabilityInterval)
	setF(&cfg.Warp.MaxErrorRate, file.Warp.MaxErrorRate)
	setI(&cfg.Warp.ComplexityStep, file.Warp.ComplexityStep)
	setI(&cfg.Warp.MaxComplexity, file.Warp.MaxComplexity)
	setD(&cfg.Warp.ThrottleBackoff, file.Warp.ThrottleBackoff)
	setD(&cfg.Warp.IdleTick, file.Warp.IdleTick)
	setI(&cfg.Warp.DiversityWindow, file.Warp.DiversityWindow)
	setF(&cfg.Warp.DiversityThreshold, file.Warp.DiversityThreshold)

	setI(&cfg.Health.ErrorLogCapacity, file.Health.ErrorLogCapacity)
	setF(&cfg.Health.CriticalThreshold, file.Health.CriticalThreshold)
	setI(&cfg.Health.RecurringThreshold, file.Health.RecurringThreshold)
	setI(&cfg.Health.MaxIssuesPerHeal, file.Health.MaxIssuesPerHeal)

	setF(&cfg.Incentive.CuriosityReward, file.Incentive.CuriosityReward)
	setF(&cfg.Incentive.EfficiencyReward, file.Incentive.EfficiencyReward)
	setF(&cfg.Incentive.CooperationReward, file.Incentive.CooperationReward)
	setF(&cfg.Incentive.InnovationReward, file.Incentive.InnovationReward)
	setF(&cfg.Incentive.ErrorPenalty, file.Incentive.ErrorPenalty)
	setF(&cfg.Incentive.ResourceWastePenalty, file.Incentive.ResourceWastePenalty)
	setF(&cfg.Incentive.ConflictPenalty, file.Incentive.ConflictPenalty)
	setF(&cfg.Incentive.StagnationPenalty, file.Incentive.StagnationPenalty)
	setF(&cfg.Incentive.RewardScaling, file.Incentive.RewardScaling)
	setF(&cfg.Incentive.PenaltyScaling, file.Incentive.PenaltyScaling)

	setI(&cfg.Memory.Slots, file.Memory.Slots)
	if file.Journal.Path != nil {
		cfg.Journal.Path = *file.Journal.Path
	}
}

func setF(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

func setI(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setD(dst *time.Duration, src *Duration) {
	if src != nil {
		*dst = time.Duration(*src)
	}
}

// #endregion load
