package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/selvastics/inrep-sub013/internal/assessment"
	"github.com/selvastics/inrep-sub013/internal/estimator"
	"github.com/selvastics/inrep-sub013/internal/itembank"
	"github.com/selvastics/inrep-sub013/internal/store"
	"github.com/selvastics/inrep-sub013/internal/tui"
)

var takeCmd = &cobra.Command{
	Use:   "take",
	Short: "Take an assessment interactively",
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

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		eventRepo := st.EventRepo()
		exposure, err := eventRepo.ExposureCounts(ctx)
		if err != nil {
			return fmt.Errorf("load exposure counts: %w", err)
		}
		cfg.Selection.ExposureCounts = exposure

		sess, err := assessment.NewSession(bank, cfg, estimator.NewEAP())
		if err != nil {
			return fmt.Errorf("create session: %w", err)
		}

		return tui.Run(tui.Options{
			Session:      sess,
			Mode:         cfg.Mode,
			EventRepo:    eventRepo,
			SnapshotRepo: st.SnapshotRepo(),
		})
	},
}

func init() {
	addAssessmentFlags(takeCmd)
}
