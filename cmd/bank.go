package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/selvastics/inrep-sub013/internal/itembank"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Inspect and validate item banks",
}

var bankValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate an item bank file against the schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bank, err := itembank.LoadFile(args[0])
		if err != nil {
			return err
		}

		byDomain := map[string]int{}
		byModel := map[string]int{}
		for _, id := range bank.IDs() {
			it, _ := bank.Get(id)
			byDomain[it.Domain]++
			byModel[modelName(it.Model)]++
		}

		fmt.Printf("OK: %d items\n", bank.Size())
		for _, name := range sortedKeys(byModel) {
			fmt.Printf("  %-4s %d\n", name, byModel[name])
		}
		if len(byDomain) > 1 || byDomain[""] == 0 {
			fmt.Println("Domains:")
			for _, d := range sortedKeys(byDomain) {
				label := d
				if label == "" {
					label = "(none)"
				}
				fmt.Printf("  %-12s %d\n", label, byDomain[d])
			}
		}
		return nil
	},
}

func modelName(m itembank.Model) string {
	switch m.(type) {
	case itembank.Rasch:
		return "1PL"
	case itembank.TwoParam:
		return "2PL"
	case itembank.ThreeParam:
		return "3PL"
	case itembank.Graded:
		return "GRM"
	default:
		return "?"
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func init() {
	bankCmd.AddCommand(bankValidateCmd)
}
