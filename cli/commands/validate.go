package commands

import (
	"github.com/spf13/cobra"

	"github.com/dmql/dmql-go/cli/internal/ui"
	"github.com/dmql/dmql-go/parsing"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	var queryFile string

	cmd := &cobra.Command{
		Use:   "validate [query]",
		Short: "Validate DMQL syntax",
		Long:  "Parse a DMQL query and report syntax errors without executing it",
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := querySource(args, queryFile)
			if err != nil {
				return err
			}

			q, diags := parsing.ParseQuery(source)
			if q.HasErrors() {
				reportDiagnostics(source, diags)
				ui.PrintError("query has %d syntax error(s)", len(q.Errors))
				return nil
			}

			ui.PrintSuccess("query is valid")
			if q.Database != "" {
				ui.PrintInfo("database: %s", q.Database)
			}
			if len(q.Tables) > 0 {
				ui.PrintInfo("tables: %v", q.Tables)
			}
			if q.MiningOp != nil {
				ui.PrintInfo("mining operation: %s", q.MiningOp.Type)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&queryFile, "file", "f", "", "Read the query from a file")

	return cmd
}
