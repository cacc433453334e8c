package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/selvastics/inrep-sub013/internal/estimator"
	"github.com/selvastics/inrep-sub013/internal/itembank"
	"github.com/selvastics/inrep-sub013/internal/simulate"
	"github.com/selvastics/inrep-sub013/internal/store"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a simulated assessment against the item bank",
	Long: "Simulate runs a full session with a synthetic respondent of known\n" +
		"ability and prints the selection transcript. Useful for checking bank\n" +
		"behavior and stopping-rule configurations before live use.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		bankPath, _ := cmd.Flags().GetString("bank")
		bank, err := itembank.LoadFile(bankPath)
		if err != nil {
			return fmt.Errorf("load item bank: %w", err)
		}

		cfg, err := configFromFlags(cmd)
		if err != nil {
			return err
		}

		theta, _ := cmd.Flags().GetFloat64("theta")
		record, _ := cmd.Flags().GetBool("record")

		var eventRepo store.EventRepo
		if record {
			dbPath, err := resolveDBPath(cmd)
			if err != nil {
				return fmt.Errorf("resolve DB path: %w", err)
			}
			st, err := store.Open(dbPath)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close()
			eventRepo = st.EventRepo()

			exposure, err := eventRepo.ExposureCounts(ctx)
			if err != nil {
				return fmt.Errorf("load exposure counts: %w", err)
			}
			cfg.Selection.ExposureCounts = exposure
		}

		result, err := simulate.Run(bank, cfg, estimator.NewEAP(), theta, cfg.Seed)
		if err != nil {
			return fmt.Errorf("simulation failed: %w", err)
		}

		fmt.Printf("Session %s  (true theta %.2f, %s mode)\n\n", result.SessionID, result.TrueTheta, cfg.Mode)
		fmt.Printf("%-4s %-12s %-6s %-8s %-8s\n", "#", "item", "resp", "theta", "se")
		for _, step := range result.Steps {
			fmt.Printf("%-4d %-12s %-6d %-8.3f %-8.3f\n", step.Position, step.ItemID, step.Value, step.Theta, step.SE)
		}
		fmt.Printf("\nStopped after %d items: %s\n", len(result.Steps), result.StopReason)
		fmt.Printf("Final estimate: theta %.3f, se %.3f\n", result.FinalTheta, result.FinalSE)

		if eventRepo != nil {
			if err := recordResult(ctx, eventRepo, result, string(cfg.Mode)); err != nil {
				return fmt.Errorf("record events: %w", err)
			}
		}
		return nil
	},
}

// recordResult writes the simulated transcript to the event store so
// simulated administrations count toward item exposure.
func recordResult(ctx context.Context, repo store.EventRepo, result *simulate.Result, mode string) error {
	err := repo.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID: result.SessionID,
		Action:    "start",
		Mode:      mode,
	})
	if err != nil {
		return err
	}
	for _, step := range result.Steps {
		err := repo.AppendResponseEvent(ctx, store.ResponseEventData{
			SessionID:  result.SessionID,
			ItemID:     step.ItemID,
			Position:   step.Position,
			Value:      step.Value,
			ThetaAfter: step.Theta,
			SEAfter:    step.SE,
		})
		if err != nil {
			return err
		}
	}
	return repo.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID:         result.SessionID,
		Action:            "stop",
		Mode:              mode,
		ItemsAdministered: len(result.Steps),
		FinalTheta:        result.FinalTheta,
		FinalSE:           result.FinalSE,
		StopReason:        string(result.StopReason),
	})
}

func init() {
	addAssessmentFlags(simulateCmd)
	simulateCmd.Flags().Float64("theta", 0, "True ability of the simulated respondent")
	simulateCmd.Flags().Bool("record", false, "Record the simulated session into the event store")
}
