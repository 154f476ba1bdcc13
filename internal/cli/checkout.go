package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kaushalNeupane10/CloudBite/internal/app"
	"github.com/kaushalNeupane10/CloudBite/internal/checkout"
	apperrors "github.com/kaushalNeupane10/CloudBite/pkg/errors"
)

const callbackWait = 5 * time.Minute

var buyCmd = &cobra.Command{
	Use:   "buy <menu-item-id> [quantity]",
	Short: "Buy a single menu item right away",
	Args:  cobra.RangeArgs(1, 2),
	RunE: withApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
		menuItemID, quantity, err := parseItemArgs(args)
		if err != nil {
			return err
		}

		sessionID, err := a.Checkout.BuyNow(ctx, menuItemID, quantity)
		if errors.Is(err, apperrors.ErrUnauthorized) {
			fmt.Fprintln(cmd.OutOrStdout(), "Sign in to check out; your purchase will resume after 'cloudbite login'.")
			return nil
		}
		if err != nil {
			return err
		}
		return awaitPayment(ctx, a, cmd, sessionID)
	}),
}

var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Check out everything in your cart",
	RunE: withApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, _ []string) error {
		sessionID, err := a.Checkout.CheckoutCart(ctx)
		if err != nil {
			return err
		}
		return awaitPayment(ctx, a, cmd, sessionID)
	}),
}

// resumeParkedCheckout completes a buy-now intent parked before login.
func resumeParkedCheckout(ctx context.Context, a *app.App, cmd *cobra.Command) error {
	sessionID, resumed, err := a.Checkout.ResumePending(ctx)
	if err != nil {
		return err
	}
	if !resumed {
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Resuming your purchase...")
	return awaitPayment(ctx, a, cmd, sessionID)
}

// awaitPayment serves the payment processor's redirect locally and blocks
// until the hosted payment page reports an outcome or the wait expires.
func awaitPayment(ctx context.Context, a *app.App, cmd *cobra.Command, sessionID string) error {
	cfg := a.Config()
	listener := checkout.NewListener(cfg.CallbackAddr, cfg.StripePublishableKey, a.Logger())

	serveErr := make(chan error, 1)
	go func() { serveErr <- listener.Start() }()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = listener.Shutdown(shutdownCtx)
	}()

	fmt.Fprintf(cmd.OutOrStdout(), "Checkout session: %s\n", sessionID)
	if cfg.StripePublishableKey != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Pay at http://%s/checkout/pay?session_id=%s\n",
			cfg.CallbackAddr, sessionID)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Complete the payment in your browser; waiting for confirmation on %s ...\n",
		cfg.CallbackAddr)

	waitCtx, cancel := context.WithTimeout(ctx, callbackWait)
	defer cancel()

	result, err := listener.Wait(waitCtx)
	if err != nil {
		select {
		case sErr := <-serveErr:
			if sErr != nil {
				return sErr
			}
		default:
		}
		return fmt.Errorf("no payment confirmation received: %w", err)
	}

	if !result.Succeeded {
		fmt.Fprintln(cmd.OutOrStdout(), "Payment cancelled. Your cart is unchanged.")
		return nil
	}

	// The paid lines left the cart server-side; re-fetch to reflect that.
	if err := a.Cart.Refresh(ctx); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Payment complete. Check 'cloudbite orders' for your order.")
	return nil
}

func init() {
	rootCmd.AddCommand(buyCmd, checkoutCmd)
}
