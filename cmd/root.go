package cmd

import (
	"fmt"
	"os"

	"github.com/mtlynch/collectd-view/internal/core"
	"github.com/spf13/cobra"
)

func NewRootCommand() *cobra.Command {
	var configPath string
	var verbose int

	homeDir, _ := os.UserHomeDir()

	rootCmd := &cobra.Command{
		Use:   "collectd-view",
		Short: "collectd-view - Session-bound collectd web viewer",
		Long: `collectd-view - Session-bound collectd web viewer

Serves the host's collectd graphs over HTTP for exactly as long as the
SSH session that launched it stays connected. Access is limited to the
host's own addresses and everything is torn down on disconnect.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Initialize config and bind global flags to the config
			return core.InitializeConfig(cmd)
		},
	}
	rootCmd.PersistentFlags().StringVar(
		&configPath, "config-path", fmt.Sprintf("%s/%s", homeDir, core.BaseDirName),
		"config path",
	)
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "more output, repeat for even more")

	rootCmd.AddCommand(
		NewRunCommand(),
		NewStatusCommand(),
		NewVersionCommand(),
	)

	return rootCmd
}
