package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/selvastics/inrep-sub013/internal/assessment"
	"github.com/selvastics/inrep-sub013/internal/selection"
	"github.com/selvastics/inrep-sub013/internal/stopping"
)

// addAssessmentFlags registers the flags shared by take and simulate.
func addAssessmentFlags(cmd *cobra.Command) {
	cmd.Flags().String("bank", "", "Path to the item bank JSON file (required)")
	cmd.Flags().String("mode", "adaptive", "Selection mode: adaptive or fixed")
	cmd.Flags().String("criterion", "max-information", "Scoring criterion: max-information, weighted, or random")
	cmd.Flags().Int("min-items", 3, "Minimum number of items before any stop")
	cmd.Flags().Int("max-items", 20, "Maximum number of items (0 = unbounded)")
	cmd.Flags().Float64("min-sem", 0.3, fmt.Sprintf("Standard-error stop target (%d or higher disables it)", stopping.DisabledMinSEM))
	cmd.Flags().Float64("prior-mean", 0, "Prior mean for the ability estimate")
	cmd.Flags().Float64("prior-sd", 1, "Prior standard deviation for the ability estimate")
	cmd.Flags().Int64("seed", 1, "Session random seed")
	cmd.Flags().StringSlice("fixed", nil, "Ordered item IDs for fixed mode or pinned leading positions")
	cmd.Flags().StringSlice("quota", nil, "Domain quotas as domain=count pairs")
	_ = cmd.MarkFlagRequired("bank")
}

// configFromFlags assembles and validates an assessment.Config.
func configFromFlags(cmd *cobra.Command) (assessment.Config, error) {
	cfg := assessment.DefaultConfig()

	mode, _ := cmd.Flags().GetString("mode")
	cfg.Mode = assessment.Mode(mode)

	criterion, _ := cmd.Flags().GetString("criterion")
	cfg.Selection.Criterion = selection.Criterion(criterion)
	switch cfg.Selection.Criterion {
	case selection.MaximumInformation, selection.Weighted, selection.Random:
	default:
		return cfg, fmt.Errorf("unknown criterion %q", criterion)
	}

	cfg.Stopping.MinItems, _ = cmd.Flags().GetInt("min-items")
	cfg.Stopping.MaxItems, _ = cmd.Flags().GetInt("max-items")
	cfg.Stopping.MinSEM, _ = cmd.Flags().GetFloat64("min-sem")
	cfg.PriorMean, _ = cmd.Flags().GetFloat64("prior-mean")
	cfg.PriorSD, _ = cmd.Flags().GetFloat64("prior-sd")
	cfg.Seed, _ = cmd.Flags().GetInt64("seed")

	fixed, _ := cmd.Flags().GetStringSlice("fixed")
	if cfg.Mode == assessment.ModeFixed {
		cfg.FixedSequence = fixed
	} else {
		cfg.Selection.FixedItems = fixed
	}

	quotas, _ := cmd.Flags().GetStringSlice("quota")
	if len(quotas) > 0 {
		cfg.Selection.DomainQuotas = make(map[string]int, len(quotas))
		for _, q := range quotas {
			domain, countStr, ok := strings.Cut(q, "=")
			if !ok {
				return cfg, fmt.Errorf("invalid quota %q, expected domain=count", q)
			}
			count, err := strconv.Atoi(countStr)
			if err != nil || count < 0 {
				return cfg, fmt.Errorf("invalid quota count in %q", q)
			}
			cfg.Selection.DomainQuotas[domain] = count
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
