package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/teemow/macbridge/internal/config"
	"github.com/teemow/macbridge/internal/logging"
	"github.com/teemow/macbridge/internal/server"
)

var (
	cfgFile   string
	debugMode bool

	// sctx holds the shared clients. Tests preseed it with injected
	// clients before running a command.
	sctx *server.Context
)

// rootCmd represents the base command for the macbridge application
var rootCmd = &cobra.Command{
	Use:   "macbridge",
	Short: "Query and manage macOS calendars, reminders and notes",
	Long: `macbridge bridges the macOS calendar, reminder and notes stores to the
command line. Every invocation prints exactly one JSON document to
stdout and exits 0 on success or 1 on failure.

It can run as:
  - A standalone CLI tool (default)
  - An MCP (Model Context Protocol) server for AI assistants`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Setup(debugMode)
		if sctx != nil {
			return nil
		}
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		sctx = server.NewContext(cfg)
		return nil
	},
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "macbridge version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/macbridge/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "enable debug logging on stderr")

	rootCmd.AddCommand(newCalendarCmd())
	rootCmd.AddCommand(newNotesCmd())
	rootCmd.AddCommand(newServeCmd())
}
