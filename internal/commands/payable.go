package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shulebooks/shulebooks/internal/model"
)

func newPayableCommand(booksDir *string) *cobra.Command {
	payableCmd := &cobra.Command{
		Use:   "payable",
		Short: "Money the school owes",
	}
	payableCmd.AddCommand(newPayableAddCommand(booksDir))
	payableCmd.AddCommand(newOpenItemListCommand(booksDir, model.CategoryPayable))
	payableCmd.AddCommand(newOpenItemSettleCommand(booksDir, model.CategoryPayable))
	payableCmd.AddCommand(newOpenItemWriteOffCommand(booksDir, model.CategoryPayable))
	return payableCmd
}

func newPayableAddCommand(booksDir *string) *cobra.Command {
	var amount, description, bucket, payee, onDate, dueDate string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a bill to pay later",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBooks(*booksDir)
			if err != nil {
				return err
			}
			defer b.close()
			ctx := cmd.Context()

			amt, err := parseAmount(amount)
			if err != nil {
				return err
			}
			date, err := parseDateOr(onDate, today())
			if err != nil {
				return err
			}
			due, err := parseDate(dueDate)
			if err != nil {
				return err
			}
			bkt, err := b.accounts.ByName(ctx, bucket)
			if err != nil {
				return fmt.Errorf("resolving expense account %q: %w", bucket, err)
			}
			cashID, err := b.cashAccount(ctx, model.AccountCashOnHand)
			if err != nil {
				return err
			}

			tx, err := b.ledger.Record(ctx, model.Transaction{
				Date:        date,
				Category:    model.CategoryPayable,
				Description: description,
				Amount:      amt,
				Status:      model.StatusPending,
				BucketID:    bkt.ID,
				CashID:      cashID,
				Payee:       payee,
				DueDate:     due,
			})
			if err != nil {
				return err
			}

			b.audit("record", "Payable: "+tx.Description, tx.ID, tx.Ref)
			fmt.Printf("Recorded payable %d: %s, %s due %s\n",
				tx.ID, tx.Description, tx.Amount.StringFixed(2), due.Format(dateLayout))
			return nil
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "amount owed (required)")
	cmd.Flags().StringVar(&description, "description", "", "what the bill is for (required)")
	cmd.Flags().StringVar(&bucket, "bucket", "", "expense account it classifies under (required)")
	cmd.Flags().StringVar(&payee, "payee", "", "vendor name (required)")
	cmd.Flags().StringVar(&onDate, "date", "", "record date (default today)")
	cmd.Flags().StringVar(&dueDate, "due", "", "due date (required)")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("description")
	_ = cmd.MarkFlagRequired("bucket")
	_ = cmd.MarkFlagRequired("payee")
	_ = cmd.MarkFlagRequired("due")

	return cmd
}
