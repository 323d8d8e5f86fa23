package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dmql/dmql-go/cli/internal/ui"
	"github.com/dmql/dmql-go/cli/internal/watch"
)

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	var asChart bool

	cmd := &cobra.Command{
		Use:   "watch <query-file>",
		Short: "Re-run a query file on change",
		Long:  "Run the query in a file, then run it again whenever the file is saved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exec, err := openExecutor()
			if err != nil {
				return err
			}
			defer exec.Close()

			ctx := context.Background()
			queryFile := args[0]

			run := func() error {
				data, err := os.ReadFile(queryFile)
				if err != nil {
					return err
				}
				if err := runQuery(ctx, exec, string(data), asChart); err != nil {
					// Reported already; keep watching.
					return nil
				}
				return nil
			}

			watcher, err := watch.NewWatcher(queryFile, run)
			if err != nil {
				return err
			}
			defer watcher.Stop()

			if err := watcher.Start(); err != nil {
				return err
			}
			ui.PrintInfo("watching %s, press Ctrl+C to stop", queryFile)

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
			<-sig
			return nil
		},
	}

	cmd.Flags().BoolVar(&asChart, "chart", false, "Print a chart spec instead of a table")

	return cmd
}
