package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/worklog/internal/config"
	"github.com/balkashynov/worklog/internal/db"
	"github.com/balkashynov/worklog/internal/logger"
	"github.com/balkashynov/worklog/internal/report"
	"github.com/balkashynov/worklog/internal/tracker"
	"github.com/balkashynov/worklog/internal/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Persistent flags
var (
	dbPath string
	debug  bool
)

var rootCmd = &cobra.Command{
	Use:   "worklog",
	Short: "Log your working day and the activities in it",
	Long: `worklog records when your working day starts and ends, and the activities
you work on in between. Everything is kept in a local SQLite database.

Run it without a command for the interactive menu.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: withTracker(func(cmd *cobra.Command, args []string, tr *tracker.Tracker) error {
		noUI, _ := cmd.Flags().GetBool("no-ui")
		if noUI {
			report.Status(cmd.OutOrStdout(), tr.Status())
			return nil
		}
		return tui.RunMenuTUI(tr)
	}),
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "worklog %s (commit %s, built %s)\n", version, commit, date)
	},
}

// loadConfig reads config.json and applies flag overrides
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("db") {
		cfg.DBPath = dbPath
	}
	if debug {
		cfg.Debug = true
	}
	return cfg, nil
}

// withTracker wraps a command function to open the store and build the
// tracker first. The store is closed when the command returns, panics included.
func withTracker(fn func(*cobra.Command, []string, *tracker.Tracker) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		if err := logger.Init(logger.Config{Debug: cfg.Debug, DataDir: cfg.DataDir}); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer func() {
			if closeErr := logger.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("failed to close log file: %w", closeErr)
			}
		}()

		store, err := db.Open(cfg.DBPath)
		if err != nil {
			logger.Error("failed to open database", "path", cfg.DBPath, "error", err)
			return err
		}
		defer func() {
			if closeErr := store.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("failed to close database: %w", closeErr)
			}
		}()
		logger.Debug("database opened", "path", cfg.DBPath)

		tr, err := tracker.New(store, tracker.WithHistoryDays(cfg.HistoryDays))
		if err != nil {
			return err
		}

		if err := fn(cmd, args, tr); err != nil {
			logger.Error("command failed", "command", cmd.CommandPath(), "error", err)
			return err
		}
		return nil
	}
}

// refusedOrError prints lifecycle refusals and hands back real failures
func refusedOrError(cmd *cobra.Command, err error) error {
	if tracker.IsRefusal(err) {
		logger.Debug("operation refused", "command", cmd.CommandPath(), "reason", err)
		report.Refusal(cmd.OutOrStdout(), err)
		return nil
	}
	return err
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the SQLite database (default ~/.worklog/worklog.db)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Log debug output to stderr")
	rootCmd.Flags().Bool("no-ui", false, "Print the current status instead of opening the menu")

	rootCmd.AddCommand(dayCmd)
	rootCmd.AddCommand(activityCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.SetHelpCommand(helpCmd)
	rootCmd.AddCommand(versionCmd)
}
