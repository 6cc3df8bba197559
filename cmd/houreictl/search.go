package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hourei/hourei-backend/internal/model"
)

func init() {
	var page, pageSize int
	var category, sort string

	searchCmd := &cobra.Command{
		Use:   "search KEYWORD",
		Short: "Search statutes by keyword",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := newClient().SearchLaws(cmd.Context(), model.SearchParams{
				Keyword:  args[0],
				Category: category,
				Page:     page,
				PageSize: pageSize,
				Sort:     model.SortOrder(sort),
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(os.Stdout, "%d hits (page %d, %d per page, %dms)\n",
				result.TotalCount, result.Page, result.PageSize, result.ExecutionTimeMs)
			for _, law := range result.Results {
				fmt.Fprintf(os.Stdout, "  %s  %s", law.LawID, law.LawName)
				if law.LawNumber != "" {
					fmt.Fprintf(os.Stdout, "（%s）", law.LawNumber)
				}
				fmt.Fprintln(os.Stdout)
				for _, snippet := range law.Highlights {
					fmt.Fprintf(os.Stdout, "      %s\n", snippet)
				}
			}
			return nil
		},
	}
	searchCmd.Flags().IntVarP(&page, "page", "p", 1, "Page number")
	searchCmd.Flags().IntVarP(&pageSize, "page-size", "n", 20, "Results per page")
	searchCmd.Flags().StringVarP(&category, "category", "c", "", "Category label filter")
	searchCmd.Flags().StringVarP(&sort, "sort", "s", "", "Sort order (promulgationDate, lawNumber)")
	rootCmd.AddCommand(searchCmd)
}
