package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/shulebooks/shulebooks/internal/accounts"
	"github.com/shulebooks/shulebooks/internal/config"
	"github.com/shulebooks/shulebooks/internal/store"
)

func newInitCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new set of school books",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd.Context(), absDir, name)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "school name (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func runInit(ctx context.Context, dir, name string) error {
	cfgPath := filepath.Join(dir, "shulebooks.yaml")
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("books already initialized at %s", dir)
	}

	// Create directory structure.
	dirs := []string{
		"logs",
		"import",
		filepath.Join("import", "processed"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	// Write shulebooks.yaml.
	cfg := config.Default(name)
	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Create the database and seed the chart of accounts.
	st, err := store.Open(filepath.Join(dir, cfg.Database.Path))
	if err != nil {
		return fmt.Errorf("creating database: %w", err)
	}
	defer st.Close()

	seeded, err := accounts.NewService(st.Accounts).Seed(ctx)
	if err != nil {
		return fmt.Errorf("seeding chart of accounts: %w", err)
	}

	fmt.Printf("Initialized books for %s at %s (%d accounts)\n", name, dir, len(seeded))
	return nil
}
