package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/mtlynch/collectd-view/internal/core"
	"github.com/mtlynch/collectd-view/internal/db"
	"github.com/mtlynch/collectd-view/internal/procinfo"
	"github.com/mtlynch/collectd-view/internal/supervisor"
	"github.com/spf13/cobra"
)

func NewRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the session-bound web server supervisor",
		Long: `Run the session-bound web server supervisor.

Writes an allow-list for the host's own addresses, starts the web server,
and polls the process ancestry once per second. When the owning SSH session
ends, the server is killed and its lock file removed. Exits non-zero only
when startup itself fails.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			supervisor.SetupLogging(
				core.GetLogFilePath(),
				core.GetLogMaxSizeMB(),
				core.GetLogMaxBackups(),
			)

			cfg := supervisor.Config{
				PolicyPath:   core.GetPolicyPath(),
				LockPath:     core.GetLockPath(),
				ServerBinary: core.GetServerBinary(),
				ServerArgs:   []string{"-f", core.GetServerConfig()},
				PollInterval: core.GetPollInterval(),
			}

			sup := supervisor.New(cfg, procinfo.NewSystemInspector())

			database, err := db.Open(core.GetDatabasePath())
			if err != nil {
				slog.Error("Failed to open event database", "error", err)
			} else {
				sup.SetDatabase(database)
				defer database.Close()
			}

			if err := sup.Run(context.Background()); err != nil {
				slog.Error(fmt.Sprintf("Supervisor failed: %v", err))
				os.Exit(1)
			}
		},
	}
}
