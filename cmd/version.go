package cmd

import (
	"fmt"
	"os"

	"github.com/mtlynch/collectd-view/internal/core"
	"github.com/spf13/cobra"
)

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stderr, "collectd-view %s\n", core.FormatVersion(core.Version))
		},
	}
}
