package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/kaushalNeupane10/CloudBite/internal/app"
	"github.com/kaushalNeupane10/CloudBite/internal/config"
	"github.com/kaushalNeupane10/CloudBite/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "cloudbite",
	Short: "CloudBite food ordering storefront",
	Long: `cloudbite is the terminal storefront for the CloudBite ordering API.

It keeps your session and cart on this machine: items added before logging
in are kept in a guest cart and merged into your account cart at login.
Multiple cloudbite processes sharing a profile see each other's guest cart
changes.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// ExecuteContext runs the root command with the given context.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// withApp wraps a command handler with the full application lifecycle:
// config, logging, dependency wiring, session restore, and teardown.
func withApp(run func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		log := logger.New("storefront", cfg.LogLevel)

		ctx := cmd.Context()
		a, err := app.New(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Start(ctx); err != nil {
			return err
		}
		return run(ctx, a, cmd, args)
	}
}
