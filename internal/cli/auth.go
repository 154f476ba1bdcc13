package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kaushalNeupane10/CloudBite/internal/api"
	"github.com/kaushalNeupane10/CloudBite/internal/app"
	"github.com/kaushalNeupane10/CloudBite/internal/cart"
	"github.com/kaushalNeupane10/CloudBite/pkg/validator"
)

var (
	registerUsername string
	registerEmail    string
	registerPassword string
	loginPassword    string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	RunE: withApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, _ []string) error {
		input := api.RegisterInput{
			Username: registerUsername,
			Email:    registerEmail,
			Password: registerPassword,
		}
		if err := validator.Validate(input); err != nil {
			return err
		}
		if err := a.API.Register(ctx, input); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Account %q created. Run 'cloudbite login %s' to sign in.\n",
			input.Username, input.Username)
		return nil
	}),
}

var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Sign in and merge your guest cart into your account cart",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
		if err := a.Cart.Login(ctx, args[0], loginPassword); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s. Cart has %d item(s).\n",
			a.Cart.User().Username, a.Cart.Count())

		// A buy-now intent parked before login resumes here.
		return resumeParkedCheckout(ctx, a, cmd)
	}),
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out, keeping your guest cart",
	RunE: withApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, _ []string) error {
		if a.Cart.State() != cart.StateAuthenticated {
			fmt.Fprintln(cmd.OutOrStdout(), "Not signed in.")
			return nil
		}
		if err := a.Cart.Logout(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
		return nil
	}),
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account",
	RunE: withApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, _ []string) error {
		if a.Cart.State() != cart.StateAuthenticated {
			fmt.Fprintln(cmd.OutOrStdout(), "Not signed in.")
			return nil
		}
		user := a.Cart.User()
		fmt.Fprintf(cmd.OutOrStdout(), "%s", user.Username)
		if user.Email != "" {
			fmt.Fprintf(cmd.OutOrStdout(), " <%s>", user.Email)
		}
		fmt.Fprintln(cmd.OutOrStdout())
		return nil
	}),
}

func init() {
	registerCmd.Flags().StringVarP(&registerUsername, "username", "u", "", "account username")
	registerCmd.Flags().StringVarP(&registerEmail, "email", "e", "", "account email")
	registerCmd.Flags().StringVarP(&registerPassword, "password", "p", "", "account password")
	_ = registerCmd.MarkFlagRequired("username")
	_ = registerCmd.MarkFlagRequired("email")
	_ = registerCmd.MarkFlagRequired("password")

	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "account password")
	_ = loginCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(registerCmd, loginCmd, logoutCmd, whoamiCmd)
}
