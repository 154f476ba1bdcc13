package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kaushalNeupane10/CloudBite/internal/app"
)

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Show your order history",
	RunE: withApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, _ []string) error {
		orderList, err := a.Orders.List(ctx)
		if err != nil {
			return err
		}
		if len(orderList) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No orders yet.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ORDER\tPLACED\tTOTAL\tSTATUS\tPAID")
		for _, order := range orderList {
			paid := "no"
			if order.IsPaid {
				paid = "yes"
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
				order.ID,
				order.OrderedAt.Format("2006-01-02 15:04"),
				order.TotalPrice,
				order.Status,
				paid,
			)
		}
		return w.Flush()
	}),
}

func init() {
	rootCmd.AddCommand(ordersCmd)
}
