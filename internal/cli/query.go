package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/supabase-community/postgrest-go"
)

func newQueryCmd() *cobra.Command {
	var (
		columns string
		limit   int
		order   string
	)
	cmd := &cobra.Command{
		Use:   "query <table>",
		Short: "Select rows from a table and print the JSON response",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			qb, err := client.From(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fb := qb.Select(columns, "", false)
			if limit > 0 {
				fb = fb.Limit(limit, "")
			}
			if order != "" {
				col, dir, _ := strings.Cut(order, ".")
				fb = fb.Order(col, &postgrest.OrderOpts{Ascending: dir != "desc"})
			}
			data, _, err := fb.Execute()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
	cmd.Flags().StringVar(&columns, "select", "*", "columns to select")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of rows")
	cmd.Flags().StringVar(&order, "order", "", "column to sort by, e.g. name or name.desc")
	return cmd
}
