package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dmql/dmql-go/cli/internal/ui"
)

// NewTablesCommand creates the tables command.
func NewTablesCommand() *cobra.Command {
	var showInfo bool

	cmd := &cobra.Command{
		Use:   "tables",
		Short: "List tables",
		Long:  "List the tables in the database, optionally filtered to one logical database",
		RunE: func(cmd *cobra.Command, args []string) error {
			exec, err := openExecutor()
			if err != nil {
				return err
			}
			defer exec.Close()

			ctx := context.Background()
			tables, err := exec.ListTables(ctx, flagDatabase)
			if err != nil {
				return err
			}
			if len(tables) == 0 {
				ui.PrintWarning("no tables found")
				return nil
			}

			if !showInfo {
				ui.PrintList(tables)
				return nil
			}

			rows := make([][]string, 0, len(tables))
			for _, table := range tables {
				physical := table
				if flagDatabase != "" {
					physical = flagDatabase + "__" + table
				}
				count, err := exec.RowCount(ctx, physical)
				if err != nil {
					return fmt.Errorf("row count for %s: %w", table, err)
				}
				columns, err := exec.TableInfo(ctx, physical)
				if err != nil {
					return err
				}
				rows = append(rows, []string{table, strconv.Itoa(count), strconv.Itoa(len(columns))})
			}
			ui.PrintTable([]string{"table", "rows", "columns"}, rows)
			return nil
		},
	}

	cmd.Flags().BoolVar(&showInfo, "info", false, "Include row and column counts (sqlite only)")

	return cmd
}
