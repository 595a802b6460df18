package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abhisek/betopper/internal/store"
	"github.com/abhisek/betopper/internal/ui/theme"
)

var rootCmd = &cobra.Command{
	Use:   "betopper",
	Short: "AI study companion for Classes 9-12",
	Long: "Be Topper: revision notes, question banks, daily practice, sample papers,\n" +
		"diagrams, lab activities, answer keys and a study chat for Indian board exams.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A missing .env is normal; anything else is reported.
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load .env: %w", err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return showProfile(cmd)
	},
}

// Execute runs the root command and prints any error not already shown.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	var reported *reportedError
	if err != nil && !errors.As(err, &reported) {
		fmt.Fprintln(os.Stderr, theme.Failure.Render("Error:"), err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides TOPPER_DB env var)")
	rootCmd.PersistentFlags().String("log-level", "", "Console log level: debug, info, warn, error (overrides TOPPER_LOG_LEVEL)")

	rootCmd.AddCommand(enrollCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(notesCmd)
	rootCmd.AddCommand(bankCmd)
	rootCmd.AddCommand(dppCmd)
	rootCmd.AddCommand(expectedCmd)
	rootCmd.AddCommand(paperCmd)
	rootCmd.AddCommand(diagramCmd)
	rootCmd.AddCommand(activityCmd)
	rootCmd.AddCommand(answersCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then TOPPER_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
