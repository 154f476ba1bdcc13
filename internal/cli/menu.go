package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kaushalNeupane10/CloudBite/internal/app"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "List the menu",
	RunE: withApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, _ []string) error {
		items, err := a.Catalog.List(ctx)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tITEM\tPRICE")
		for _, item := range items {
			fmt.Fprintf(w, "%d\t%s\t%s\n", item.ID, item.Title, item.Price)
		}
		return w.Flush()
	}),
}

func init() {
	rootCmd.AddCommand(menuCmd)
}
