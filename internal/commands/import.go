package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/shulebooks/shulebooks/internal/importer"
	"github.com/shulebooks/shulebooks/internal/model"
)

func newFeeImportCommand(booksDir *string) *cobra.Command {
	var format, cash string
	var term int

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import fee payments from statement CSVs in import/",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBooks(*booksDir)
			if err != nil {
				return err
			}
			defer b.close()
			ctx := cmd.Context()

			parser := importer.DefaultRegistry().Get(format)
			if parser == nil {
				return fmt.Errorf("no parser for format %s", format)
			}
			cashID, err := b.cashAccount(ctx, cash)
			if err != nil {
				return err
			}

			var files []importer.FileInfo
			if len(args) > 0 {
				files = []importer.FileInfo{{
					Name: args[0],
					Path: filepath.Join(b.dir, "import", args[0]),
				}}
			} else {
				files, err = importer.Scan(b.dir)
				if err != nil {
					return err
				}
			}
			if len(files) == 0 {
				fmt.Println("No statement files in import/")
				return nil
			}

			for _, file := range files {
				if err := importFile(cmd, b, parser, file, term, cashID); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "mpesa", "statement format")
	cmd.Flags().IntVar(&term, "term", 0, "term the payments belong to (required)")
	cmd.Flags().StringVar(&cash, "cash", model.AccountCashOnHand, "asset account the money landed in")
	_ = cmd.MarkFlagRequired("term")

	return cmd
}

func importFile(cmd *cobra.Command, b *books, parser importer.Parser, file importer.FileInfo, term int, cashID int64) error {
	f, err := os.Open(file.Path)
	if err != nil {
		return fmt.Errorf("open %s: %w", file.Name, err)
	}
	entries, err := parser.Parse(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("parsing %s: %w", file.Name, err)
	}

	res, err := b.fees.ImportStatement(cmd.Context(), entries, term, cashID)
	if err != nil {
		return fmt.Errorf("importing %s: %w", file.Name, err)
	}

	for _, rcpt := range res.Recorded {
		b.audit("import", fmt.Sprintf("%s from %s", file.Name, rcpt.Student.Name), rcpt.TxID, rcpt.Number)
	}

	fmt.Printf("%s: %d recorded, %d unmatched, %d already on the books\n",
		file.Name, len(res.Recorded), len(res.Unmatched), len(res.Skipped))
	for _, e := range res.Unmatched {
		fmt.Printf("  unmatched %s %s %s\n", e.Reference, e.Amount.StringFixed(2), e.Details)
	}

	// Files with unmatched rows stay in import/ for another pass.
	if len(res.Unmatched) > 0 {
		return nil
	}
	if err := importer.MarkProcessed(b.dir, file.Name); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	return nil
}
