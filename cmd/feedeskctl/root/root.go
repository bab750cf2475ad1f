package root

import (
	"feedesk/cmd/feedeskctl/config"

	"github.com/spf13/cobra"
)

var RootCmd = &cobra.Command{
	Use:           "feedeskctl",
	Short:         "feedesk admin CLI",
	Long:          "Command line interface for the feedesk audit trail and payments API",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	RootCmd.PersistentFlags().StringVar(&config.ServerFlag, "server", "", "API base URL (default $FEEDESK_API_URL or http://localhost:8080)")
	RootCmd.PersistentFlags().StringVar(&config.TokenFlag, "token", "", "API token (default $FEEDESK_TOKEN or the saved login token)")
}

func GetRoot() *cobra.Command {
	return RootCmd
}
