package client

import (
	"fmt"

	"github.com/MKhiriev/sheet-viz/models"
	"github.com/spf13/cobra"
)

func credentialFlags(cmd *cobra.Command, creds *models.Credentials) {
	cmd.Flags().StringVarP(&creds.Email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&creds.Password, "password", "p", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
}

func (a *App) registerCommand() *cobra.Command {
	var creds models.Credentials
	var role string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "create an account and print its token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			creds.Role = models.Role(role)
			resp, err := a.server.Register(cmd.Context(), creds)
			if err != nil {
				return fmt.Errorf("register: %w", err)
			}
			return a.printJSON(resp)
		},
	}
	credentialFlags(cmd, &creds)
	cmd.Flags().StringVar(&creds.Name, "name", "", "display name")
	cmd.Flags().StringVar(&role, "role", "", "account role (user or admin)")

	return cmd
}

func (a *App) loginCommand() *cobra.Command {
	var creds models.Credentials

	cmd := &cobra.Command{
		Use:   "login",
		Short: "log in and print the token for --token / ADAPTER_TOKEN",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := a.server.Login(cmd.Context(), creds)
			if err != nil {
				return fmt.Errorf("login: %w", err)
			}
			a.logger.Info().Int64("user_id", resp.User.ID).Str("role", string(resp.User.Role)).Msg("logged in")
			return a.printText(resp.Token)
		},
	}
	credentialFlags(cmd, &creds)

	return cmd
}

func (a *App) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "mark the session offline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.server.Logout(cmd.Context()); err != nil {
				return fmt.Errorf("logout: %w", err)
			}
			return a.printText("Logged out")
		},
	}
}

func (a *App) profileCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "show the profile of the token owner",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			profile, err := a.server.Profile(cmd.Context())
			if err != nil {
				return fmt.Errorf("profile: %w", err)
			}
			return a.printJSON(profile)
		},
	}
}
