package cli

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kaushalNeupane10/CloudBite/internal/app"
	apperrors "github.com/kaushalNeupane10/CloudBite/pkg/errors"
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Manage your cart",
}

var cartShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the cart contents",
	RunE: withApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, _ []string) error {
		snap := a.Cart.Snapshot()
		if snap.Count() == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Cart is empty.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tITEM\tQTY")
		if snap.Authenticated {
			for _, line := range snap.Lines {
				fmt.Fprintf(w, "%d\t%s\t%d\n", line.MenuItem.ID, line.MenuItem.Title, line.Quantity)
			}
		} else {
			for _, entry := range snap.Guest {
				title := "(not signed in)"
				if item, err := a.Catalog.Get(ctx, entry.MenuItemID); err == nil {
					title = item.Title
				}
				fmt.Fprintf(w, "%d\t%s\t%d\n", entry.MenuItemID, title, entry.Quantity)
			}
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d item(s) total.\n", snap.Count())
		return nil
	}),
}

var cartAddCmd = &cobra.Command{
	Use:   "add <menu-item-id> [quantity]",
	Short: "Add a menu item to the cart",
	Args:  cobra.RangeArgs(1, 2),
	RunE: withApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
		menuItemID, quantity, err := parseItemArgs(args)
		if err != nil {
			return err
		}
		if err := a.Cart.Add(ctx, menuItemID, quantity); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added. Cart has %d item(s).\n", a.Cart.Count())
		return nil
	}),
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <menu-item-id>",
	Short: "Remove a menu item from the cart",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
		menuItemID, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := a.Cart.Remove(ctx, menuItemID); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed. Cart has %d item(s).\n", a.Cart.Count())
		return nil
	}),
}

var cartSetCmd = &cobra.Command{
	Use:   "set <menu-item-id> <quantity>",
	Short: "Set a menu item's quantity",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
		menuItemID, quantity, err := parseItemArgs(args)
		if err != nil {
			return err
		}
		if err := a.Cart.UpdateQuantity(ctx, menuItemID, quantity); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated. Cart has %d item(s).\n", a.Cart.Count())
		return nil
	}),
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.InvalidInput(fmt.Sprintf("invalid menu item id %q", arg))
	}
	return id, nil
}

func parseItemArgs(args []string) (int64, int, error) {
	menuItemID, err := parseID(args[0])
	if err != nil {
		return 0, 0, err
	}

	quantity := 1
	if len(args) > 1 {
		quantity, err = strconv.Atoi(args[1])
		if err != nil || quantity < 1 {
			return 0, 0, apperrors.InvalidInput(fmt.Sprintf("invalid quantity %q", args[1]))
		}
	}
	return menuItemID, quantity, nil
}

func init() {
	cartCmd.AddCommand(cartShowCmd, cartAddCmd, cartRemoveCmd, cartSetCmd)
	rootCmd.AddCommand(cartCmd)
}
