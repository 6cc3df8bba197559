package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	var showProvisions bool

	lawCmd := &cobra.Command{
		Use:   "law LAW_ID",
		Short: "Show a statute's structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			detail, err := newClient().GetLawByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(os.Stdout, "%s", detail.LawName)
			if detail.LawNumber != "" {
				fmt.Fprintf(os.Stdout, "（%s）", detail.LawNumber)
			}
			fmt.Fprintf(os.Stdout, "\n%d articles, %d provisions\n", len(detail.Articles), len(detail.Provisions))

			if showProvisions {
				for _, provision := range detail.Provisions {
					fmt.Fprintf(os.Stdout, "  %s  %s\n", provision.Path, provision.Text)
				}
			}
			return nil
		},
	}
	lawCmd.Flags().BoolVarP(&showProvisions, "provisions", "P", false, "List every provision")
	rootCmd.AddCommand(lawCmd)
}
