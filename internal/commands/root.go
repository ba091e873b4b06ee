// Package commands wires the CLI. Commands stay thin: they parse flags,
// open the books, call one service, and print the result.
package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/shulebooks/shulebooks/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var booksDir string
	var verbose bool

	rootCmd := &cobra.Command{
		Use:     "shulebooks",
		Short:   "School fee and expense books",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelInfo
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			})))
		},
	}

	rootCmd.PersistentFlags().StringVar(&booksDir, "books", defaultBooksDir(), "books directory")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "log every mutation")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newStudentCommand(&booksDir))
	rootCmd.AddCommand(newAccountCommand(&booksDir))
	rootCmd.AddCommand(newFeeCommand(&booksDir))
	rootCmd.AddCommand(newReceivableCommand(&booksDir))
	rootCmd.AddCommand(newPayableCommand(&booksDir))
	rootCmd.AddCommand(newRecordCommand(&booksDir))
	rootCmd.AddCommand(newRemindCommand(&booksDir))
	rootCmd.AddCommand(newReportCommand(&booksDir))
	rootCmd.AddCommand(newSummaryCommand(&booksDir))

	return rootCmd
}

// defaultBooksDir prefers SHULEBOOKS_BOOKS so the flag can stay off the
// command line in day-to-day use.
func defaultBooksDir() string {
	if dir := os.Getenv("SHULEBOOKS_BOOKS"); dir != "" {
		return dir
	}
	return "."
}
