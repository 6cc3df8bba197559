package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hourei/hourei-backend/internal/model"
	"github.com/hourei/hourei-backend/internal/quiz"
	"github.com/hourei/hourei-backend/internal/random"
)

// majorSixBoost scales the draw weight of the six foundational statutes
// when no statute is named on the command line.
const majorSixBoost = 3

func init() {
	var reset bool

	drawCmd := &cobra.Command{
		Use:   "draw [LAW_ID]",
		Short: "Draw a provision not shown before",
		Long: "Draws a random provision from the statute, skipping provisions " +
			"already drawn in previous runs. Once every provision has been " +
			"drawn the history resets and the full set becomes eligible again. " +
			"Without a LAW_ID a statute is first drawn from the built-in bank, " +
			"with the six foundational statutes weighted higher.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var lawID string
			switch {
			case len(args) == 1:
				lawID = args[0]
			case reset:
				return fmt.Errorf("--reset requires a LAW_ID")
			default:
				picked, err := pickBankLaw(quiz.DefaultBank().EntriesByCategory(""), nil)
				if err != nil {
					return err
				}
				lawID = picked.lawID
				fmt.Fprintf(os.Stdout, "drew statute: %s (%s)\n\n", picked.lawName, picked.lawID)
			}

			historyStore := openStore()
			historyKey := "draw-history:" + lawID

			if reset {
				if err := historyStore.Remove(cmd.Context(), historyKey); err != nil {
					return err
				}
				fmt.Fprintln(os.Stdout, "draw history cleared")
				return nil
			}

			detail, err := newClient().GetLawByID(cmd.Context(), lawID)
			if err != nil {
				return err
			}

			var drawn []string
			if _, err := historyStore.Get(cmd.Context(), historyKey, &drawn); err != nil {
				return err
			}
			history := make(map[string]struct{}, len(drawn))
			for _, path := range drawn {
				history[path] = struct{}{}
			}

			result, err := random.PickUnique(detail.Provisions, random.UniqueOptions[model.Provision]{
				History: history,
				KeyFn:   func(p model.Provision) string { return p.Path },
			})
			if err != nil {
				return err
			}

			drawn = drawn[:0]
			for path := range result.History {
				drawn = append(drawn, path)
			}
			if err := historyStore.Set(cmd.Context(), historyKey, drawn); err != nil {
				return err
			}

			fmt.Fprintf(os.Stdout, "%s %s\n\n%s\n", detail.LawName, result.Value.Path, result.Value.Text)
			return nil
		},
	}
	drawCmd.Flags().BoolVar(&reset, "reset", false, "Clear the draw history for this statute")
	rootCmd.AddCommand(drawCmd)
}

type bankLaw struct {
	lawID   string
	lawName string
}

// pickBankLaw draws one statute from the bank entries, collapsing
// duplicate law ids first so a statute with many excerpts is not drawn
// more often for that reason alone.
func pickBankLaw(entries []quiz.BankEntry, randFn func() float64) (bankLaw, error) {
	seen := make(map[string]struct{}, len(entries))
	var pool []random.WeightedItem[bankLaw]
	for _, entry := range entries {
		if entry.LawID == "" {
			continue
		}
		if _, dup := seen[entry.LawID]; dup {
			continue
		}
		seen[entry.LawID] = struct{}{}
		pool = append(pool, random.WeightedItem[bankLaw]{
			Value:   bankLaw{lawID: entry.LawID, lawName: entry.LawName},
			LawName: entry.LawName,
		})
	}
	return random.PickWeighted(pool, random.WeightedOptions[bankLaw]{
		MajorSixMultiplier: majorSixBoost,
		Rand:               randFn,
	})
}
