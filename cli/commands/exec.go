package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// NewExecCommand creates the exec command.
func NewExecCommand() *cobra.Command {
	var queryFile string
	var asChart bool

	cmd := &cobra.Command{
		Use:   "exec [query]",
		Short: "Run a DMQL query",
		Long:  "Parse a DMQL query, translate it to SQL, run it, and display the results",
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := querySource(args, queryFile)
			if err != nil {
				return err
			}

			exec, err := openExecutor()
			if err != nil {
				return err
			}
			defer exec.Close()

			return runQuery(context.Background(), exec, source, asChart)
		},
	}

	cmd.Flags().StringVarP(&queryFile, "file", "f", "", "Read the query from a file")
	cmd.Flags().BoolVar(&asChart, "chart", false, "Print a chart spec instead of a table")

	return cmd
}

// querySource reads the query text from arguments or a file.
func querySource(args []string, queryFile string) (string, error) {
	if queryFile != "" {
		data, err := os.ReadFile(queryFile)
		if err != nil {
			return "", fmt.Errorf("failed to read query file: %w", err)
		}
		return string(data), nil
	}
	if len(args) == 0 {
		return "", fmt.Errorf("provide a query as an argument or with --file")
	}
	return strings.Join(args, " "), nil
}
