package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/selvastics/inrep-sub013/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show session history and item exposure",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		repo := st.EventRepo()
		limit, _ := cmd.Flags().GetInt("limit")

		summaries, err := repo.SessionSummaries(ctx, limit)
		if err != nil {
			return fmt.Errorf("load sessions: %w", err)
		}
		if len(summaries) == 0 {
			fmt.Println("No sessions recorded yet.")
			return nil
		}

		fmt.Printf("%-36s %-18s %-8s %-6s %-8s %-8s %s\n",
			"session", "started", "mode", "items", "theta", "se", "stop reason")
		for _, s := range summaries {
			fmt.Printf("%-36s %-18s %-8s %-6d %-8.3f %-8.3f %s\n",
				s.SessionID, s.StartedAt.Format("2006-01-02 15:04"), s.Mode,
				s.ItemsAdministered, s.FinalTheta, s.FinalSE, s.StopReason)
		}

		showExposure, _ := cmd.Flags().GetBool("exposure")
		if !showExposure {
			return nil
		}

		counts, err := repo.ExposureCounts(ctx)
		if err != nil {
			return fmt.Errorf("load exposure counts: %w", err)
		}
		ids := make([]string, 0, len(counts))
		for id := range counts {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool {
			if counts[ids[i]] != counts[ids[j]] {
				return counts[ids[i]] > counts[ids[j]]
			}
			return ids[i] < ids[j]
		})

		fmt.Printf("\n%-16s %s\n", "item", "administrations")
		for _, id := range ids {
			fmt.Printf("%-16s %d\n", id, counts[id])
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().Int("limit", 20, "Maximum number of sessions to list")
	statsCmd.Flags().Bool("exposure", false, "Also print per-item exposure counts")
}
