package main

import (
	"fmt"
	"os"

	"github.com/h2port/h2port/internal/app"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "h2port",
	Short: "Convert H2 SQL exports to PostgreSQL or SQLite",
	Long:  `A developer-friendly CLI to rewrite H2 database SQL exports into the PostgreSQL or SQLite dialect, with optional loading into a live target.`,
}

var postgresCmd = &cobra.Command{
	Use:   "postgres <input.sql> <output.sql>",
	Short: "Convert an H2 export to PostgreSQL-compatible SQL",
	Args:  cobra.ExactArgs(2),
	RunE:  runPostgres,
}

var sqliteCmd = &cobra.Command{
	Use:   "sqlite <input.sql> <output.sql>",
	Short: "Convert an H2 export to SQLite-compatible SQL",
	Args:  cobra.ExactArgs(2),
	RunE:  runSQLite,
}

var workflowService = app.NewService()

var (
	configPath string
	applyFlag  bool
	verbose    bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to an optional conversion rules and target configuration file")
	rootCmd.PersistentFlags().BoolVar(&applyFlag, "apply", false, "Execute the converted statements against the configured target database")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose logging")

	rootCmd.AddCommand(postgresCmd)
	rootCmd.AddCommand(sqliteCmd)

	cobra.OnInitialize(func() {
		rootCmd.SilenceErrors = true
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runPostgres(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	return workflowService.Convert("postgres", args[0], args[1], configPath, applyFlag, verbose)
}

func runSQLite(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	return workflowService.Convert("sqlite", args[0], args[1], configPath, applyFlag, verbose)
}
