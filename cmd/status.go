package cmd

import (
	"fmt"
	"os"

	"github.com/mtlynch/collectd-view/internal/core"
	"github.com/mtlynch/collectd-view/internal/db"
	"github.com/spf13/cobra"
)

func NewStatusCommand() *cobra.Command {
	var eventCount int

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show whether a viewer instance is running",
		Long: `Show whether a viewer instance appears to be running, judged by the
presence of the web server's lock file, and list recent supervisor events.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			lockPath := core.GetLockPath()
			if _, err := os.Stat(lockPath); err == nil {
				fmt.Printf("Web server: running (lock file %s present)\n", lockPath)
			} else {
				fmt.Println("Web server: not running")
			}

			database, err := db.Open(core.GetDatabasePath())
			if err != nil {
				return
			}
			defer database.Close()

			events, err := database.GetRecentEvents(eventCount)
			if err != nil || len(events) == 0 {
				return
			}

			fmt.Println("\nRecent events:")
			for _, event := range events {
				fmt.Printf("  %s  %-14s %s\n",
					event.Timestamp.Format("2006-01-02 15:04:05"),
					event.EventType,
					event.Details,
				)
			}
		},
	}
	statusCmd.Flags().IntVarP(&eventCount, "events", "n", 10, "number of recent events to show")

	return statusCmd
}
