package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmql/dmql-go/cli/internal/update"
	"github.com/dmql/dmql-go/cli/internal/version"
)

// NewVersionCommand creates the version command.
func NewVersionCommand() *cobra.Command {
	var checkUpdate bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Get()
			fmt.Println(info.FullString())
			if checkUpdate {
				return update.CheckForUpdates(info.Version)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&checkUpdate, "check-update", false, "Check whether a newer release exists")

	return cmd
}
