// Package cmd provides CLI commands for the renew tool.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/SafeGiantJacket/renewaldesk/config"
	"github.com/SafeGiantJacket/renewaldesk/pkg/logging"
)

// Global flags shared by all commands.
var (
	globalOutput  string
	globalDebug   bool
	globalLogJSON bool
)

// NewRootCommand creates the root renew command with all subcommands attached.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "renew",
		Short: "Broker-side renewal pipeline for placement CSV exports",
		Long: `renew ingests placement CSV exports from the CRM, deduplicates
competing carrier quotes, scores each placement for renewal urgency, and
aggregates email and calendar connector data into client-engagement insights.

Broker notes and scheduled events persist in the configured store backend
(memory, postgres, or redis).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&globalOutput, "output", "o", "", "Output format: text, json, yaml")
	cmd.PersistentFlags().BoolVar(&globalDebug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVar(&globalLogJSON, "log-json", false, "Log in JSON format")

	cmd.AddCommand(NewIngestCommand(nil))
	cmd.AddCommand(NewScoreCommand(nil))
	cmd.AddCommand(NewInsightsCommand(nil))
	cmd.AddCommand(NewNotesCommand(nil))
	cmd.AddCommand(NewEventsCommand(nil))
	cmd.AddCommand(NewSampleCommand())
	cmd.AddCommand(NewServeCommand(nil))
	cmd.AddCommand(NewConfigCommand(nil))
	cmd.AddCommand(NewVersionCommand())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// newLogger builds the CLI logger from config and global flags.
func newLogger(cfg *config.CLIConfig) logging.Logger {
	level := logging.LevelInfo
	if globalDebug || (cfg != nil && cfg.Debug) {
		level = logging.LevelDebug
	}
	return logging.NewLogger(&logging.Config{
		Level:      level,
		Component:  "cli",
		JSONFormat: globalLogJSON || (cfg != nil && cfg.LogJSON),
	})
}
