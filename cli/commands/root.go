// Package commands implements the dmql CLI commands.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmql/dmql-go/cli/internal/config"
	"github.com/dmql/dmql-go/cli/internal/version"
	"github.com/dmql/dmql-go/internal/debug"
	"github.com/dmql/dmql-go/telemetry"
)

var (
	flagDatabasePath string
	flagProvider     string
	flagDatabase     string
	flagDebug        bool
)

// Execute is the main entry point for the CLI.
func Execute() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		cfg = &config.Config{DatabasePath: ":memory:", Provider: "sqlite3", DisplayType: "table"}
	}

	rootCmd := &cobra.Command{
		Use:   "dmql",
		Short: "DMQL data-mining query language CLI",
		Long:  "dmql parses DMQL queries, translates them to SQL, and runs them with optional mining and visualization",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			debug.Init(flagDebug || cfg.Debug)
			telemetry.Init(version.Get().Version, cfg.Telemetry)
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&flagDatabasePath, "db", cfg.DatabasePath, "Database file path or DSN")
	rootCmd.PersistentFlags().StringVar(&flagProvider, "provider", cfg.Provider, "Database provider (sqlite3, mysql, postgres)")
	rootCmd.PersistentFlags().StringVar(&flagDatabase, "database", cfg.Database, "Logical database name")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(NewExecCommand())
	rootCmd.AddCommand(NewReplCommand())
	rootCmd.AddCommand(NewValidateCommand())
	rootCmd.AddCommand(NewLoadCommand())
	rootCmd.AddCommand(NewTablesCommand())
	rootCmd.AddCommand(NewExamplesCommand())
	rootCmd.AddCommand(NewWatchCommand())
	rootCmd.AddCommand(NewVersionCommand())

	execErr := rootCmd.Execute()
	telemetry.Shutdown()
	return execErr
}
