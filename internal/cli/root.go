// Package cli implements the wordbot-admin command line tool.
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"daily-word-bot/internal/app"
	"daily-word-bot/internal/config"
)

// Opener builds the application for a command. It is replaced in tests.
type Opener func(ctx context.Context, configPath string) (*app.App, error)

// OpenFromConfig loads the configuration and connects to the real backends.
func OpenFromConfig(ctx context.Context, configPath string) (*app.App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return app.New(ctx, cfg)
}

type rootOptions struct {
	configPath string
	output     string
	timeout    time.Duration

	open Opener
	app  *app.App
}

// NewRootCmd creates the root command.
func NewRootCmd(open Opener) *cobra.Command {
	opts := &rootOptions{open: open}

	rootCmd := &cobra.Command{
		Use:   "wordbot-admin",
		Short: "Administration tool for the daily word bot",
		Long: `wordbot-admin manages the daily word bot storage directly.

It applies migrations, prepares the word of the day and its hints,
manages the hint type catalog and prints leaderboards.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.open(cmd.Context(), opts.configPath)
			if err != nil {
				return err
			}
			opts.app = a
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.app != nil {
				opts.app.Close()
				opts.app = nil
			}
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "config", "Directory containing config.yaml")
	rootCmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "text", "Output format: text, json")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", time.Minute, "Timeout for a single command")

	rootCmd.AddCommand(newMigrateCmd(opts))
	rootCmd.AddCommand(newWordCmd(opts))
	rootCmd.AddCommand(newHintsCmd(opts))
	rootCmd.AddCommand(newHintTypeCmd(opts))
	rootCmd.AddCommand(newLeaderboardCmd(opts))

	return rootCmd
}

// Execute runs the root command against the configured backends.
func Execute() {
	if err := NewRootCmd(OpenFromConfig).Execute(); err != nil {
		os.Exit(1)
	}
}

func (o *rootOptions) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if o.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, o.timeout)
}

func (o *rootOptions) out(cmd *cobra.Command) *Output {
	return NewOutput(cmd.OutOrStdout(), o.output)
}

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Migrations run while the application is opened.
			opts.out(cmd).PrintMessage("migrations applied")
			return nil
		},
	}
}

// parseDate reads a YYYY-MM-DD flag value. Empty means today.
func (o *rootOptions) parseDate(value string) (time.Time, error) {
	if value == "" {
		return o.app.Words.Today(), nil
	}
	d, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", value)
	}
	return d, nil
}
