package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/spf13/cobra"

	"github.com/dmql/dmql-go/cli/internal/ui"
	"github.com/dmql/dmql-go/cli/internal/version"
)

// NewReplCommand creates the repl command.
func NewReplCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive DMQL shell",
		Long:  "Start an interactive shell that runs DMQL queries against the configured database",
		RunE: func(cmd *cobra.Command, args []string) error {
			exec, err := openExecutor()
			if err != nil {
				return err
			}
			defer exec.Close()

			ui.PrintHeader("DMQL", version.Get().String())
			ui.PrintInfo("type a query, 'tables' to list tables, or 'exit' to quit")

			ctx := context.Background()
			for {
				var input string
				prompt := &survey.Input{Message: "dmql>"}
				if err := survey.AskOne(prompt, &input); err != nil {
					if errors.Is(err, terminal.InterruptErr) {
						return nil
					}
					return err
				}

				switch strings.ToLower(strings.TrimSpace(input)) {
				case "":
					continue
				case "exit", "quit":
					return nil
				case "tables":
					tables, err := exec.ListTables(ctx, flagDatabase)
					if err != nil {
						ui.PrintError("%v", err)
						continue
					}
					ui.PrintList(tables)
					continue
				}

				if err := runQuery(ctx, exec, input, false); err != nil {
					// Already reported; keep the shell alive.
					continue
				}
			}
		},
	}
}
