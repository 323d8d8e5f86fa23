package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmql/dmql-go/cli/internal/ui"
	"github.com/dmql/dmql-go/telemetry"
)

// NewLoadCommand creates the load command.
func NewLoadCommand() *cobra.Command {
	var tableName string
	var databaseName string
	var dirMode bool

	cmd := &cobra.Command{
		Use:   "load <csv-file-or-directory>",
		Short: "Load CSV data into the database",
		Long:  "Load a CSV file as a table, or a directory of CSV files as a logical database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (runErr error) {
			start := time.Now()
			defer func() {
				telemetry.RecordCommand("load", flagProvider, time.Since(start), runErr)
			}()

			exec, err := openExecutor()
			if err != nil {
				return err
			}
			defer exec.Close()

			ctx := context.Background()
			path := args[0]

			if dirMode {
				if databaseName == "" {
					return fmt.Errorf("--database is required when loading a directory")
				}
				spinner, _ := ui.PrintSpinner(fmt.Sprintf("Loading CSV files from %s", path))
				tables, err := exec.RegisterDatabase(ctx, databaseName, path)
				if spinner != nil {
					_ = spinner.Stop()
				}
				if err != nil {
					return err
				}
				ui.PrintSuccess("loaded %d table(s) into database %s", len(tables), databaseName)
				ui.PrintList(tables)
				return nil
			}

			table := tableName
			if table == "" {
				base := filepath.Base(path)
				table = strings.TrimSuffix(base, filepath.Ext(base))
			}
			rows, err := exec.LoadCSV(ctx, path, table, databaseName)
			if err != nil {
				return err
			}
			full := table
			if databaseName != "" {
				full = databaseName + "__" + table
			}
			ui.PrintSuccess("loaded %d row(s) into %s", rows, full)
			return nil
		},
	}

	cmd.Flags().StringVarP(&tableName, "table", "t", "", "Table name (defaults to the file name)")
	cmd.Flags().StringVarP(&databaseName, "into", "d", "", "Logical database to load into")
	cmd.Flags().BoolVar(&dirMode, "dir", false, "Treat the argument as a directory of CSV files")
	// --into and --database would collide with the persistent flag; keep the
	// local one on its own name but mirror the value.
	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		if databaseName == "" {
			databaseName = flagDatabase
		}
	}

	return cmd
}
