package auth

import (
	"fmt"
	"os"

	"feedesk/cmd/feedeskctl/config"
	"feedesk/internal/client"

	"github.com/spf13/cobra"
)

// InitAuth registers login and logout on the root command.
func InitAuth(rootCmd *cobra.Command) {
	rootCmd.AddCommand(loginCmd(), logoutCmd())
}

func loginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the feedesk API",
		Long:  "Authenticate with the feedesk API and store the token for subsequent commands.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				password = os.Getenv("FEEDESK_PASSWORD")
			}
			if email == "" || password == "" {
				return fmt.Errorf("email and password are required")
			}

			c := client.New(config.APIURL(), "")
			res, err := c.Login(cmd.Context(), email, password)
			if err != nil {
				return fmt.Errorf("failed to login: %w", err)
			}
			if err := config.SaveToken(res.Token); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			name := email
			if res.User != nil {
				name = fmt.Sprintf("%s (%s)", res.User.Name, res.User.Role)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s. Token stored locally.\n", name)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (or $FEEDESK_PASSWORD)")

	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the saved token",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.TokenPath()
			if err != nil {
				return err
			}
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}
