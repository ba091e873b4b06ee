package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shulebooks/shulebooks/internal/model"
)

func newRecordCommand(booksDir *string) *cobra.Command {
	recordCmd := &cobra.Command{
		Use:   "record",
		Short: "Record settled entries directly",
	}
	recordCmd.AddCommand(newRecordExpenseCommand(booksDir))
	recordCmd.AddCommand(newRecordIncomeCommand(booksDir))
	return recordCmd
}

func newRecordExpenseCommand(booksDir *string) *cobra.Command {
	var amount, bucket, payee, description, onDate, cash string

	cmd := &cobra.Command{
		Use:   "expense",
		Short: "Record a paid expense",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecord(cmd, *booksDir, model.CategoryExpense, recordParams{
				amount: amount, bucket: bucket, payee: payee,
				description: description, onDate: onDate, cash: cash,
			})
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "amount paid (required)")
	cmd.Flags().StringVar(&bucket, "bucket", "", "expense account (required)")
	cmd.Flags().StringVar(&payee, "payee", "", "who was paid")
	cmd.Flags().StringVar(&description, "description", "", "what it was for (required)")
	cmd.Flags().StringVar(&onDate, "date", "", "payment date (default today)")
	cmd.Flags().StringVar(&cash, "cash", model.AccountCashOnHand, "asset account the money left")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("bucket")
	_ = cmd.MarkFlagRequired("description")

	return cmd
}

func newRecordIncomeCommand(booksDir *string) *cobra.Command {
	var amount, bucket, payee, description, onDate, cash string

	cmd := &cobra.Command{
		Use:   "income",
		Short: "Record money received outside fee collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecord(cmd, *booksDir, model.CategoryOtherIncome, recordParams{
				amount: amount, bucket: bucket, payee: payee,
				description: description, onDate: onDate, cash: cash,
			})
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "amount received (required)")
	cmd.Flags().StringVar(&bucket, "bucket", model.AccountOtherIncome, "income account")
	cmd.Flags().StringVar(&payee, "payee", "", "who paid")
	cmd.Flags().StringVar(&description, "description", "", "what it was for (required)")
	cmd.Flags().StringVar(&onDate, "date", "", "receipt date (default today)")
	cmd.Flags().StringVar(&cash, "cash", model.AccountCashOnHand, "asset account the money landed in")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("description")

	return cmd
}

type recordParams struct {
	amount      string
	bucket      string
	payee       string
	description string
	onDate      string
	cash        string
}

func runRecord(cmd *cobra.Command, booksDir string, category model.Category, p recordParams) error {
	b, err := openBooks(booksDir)
	if err != nil {
		return err
	}
	defer b.close()
	ctx := cmd.Context()

	amt, err := parseAmount(p.amount)
	if err != nil {
		return err
	}
	date, err := parseDateOr(p.onDate, today())
	if err != nil {
		return err
	}
	bkt, err := b.accounts.ByName(ctx, p.bucket)
	if err != nil {
		return fmt.Errorf("resolving account %q: %w", p.bucket, err)
	}
	cashID, err := b.cashAccount(ctx, p.cash)
	if err != nil {
		return err
	}

	tx, err := b.ledger.Record(ctx, model.Transaction{
		Date:        date,
		Category:    category,
		Description: p.description,
		Amount:      amt,
		Status:      model.StatusSettled,
		BucketID:    bkt.ID,
		CashID:      cashID,
		Payee:       p.payee,
	})
	if err != nil {
		return err
	}

	b.audit("record", tx.Description, tx.ID, tx.Ref)
	fmt.Printf("Recorded %s %d: %s, %s\n", category, tx.ID, tx.Description, tx.Amount.StringFixed(2))
	return nil
}
