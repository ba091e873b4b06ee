package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shulebooks/shulebooks/internal/model"
)

func newReceivableCommand(booksDir *string) *cobra.Command {
	receivableCmd := &cobra.Command{
		Use:   "receivable",
		Short: "Money owed to the school",
	}
	receivableCmd.AddCommand(newReceivableAddCommand(booksDir))
	receivableCmd.AddCommand(newOpenItemListCommand(booksDir, model.CategoryReceivable))
	receivableCmd.AddCommand(newOpenItemSettleCommand(booksDir, model.CategoryReceivable))
	receivableCmd.AddCommand(newOpenItemWriteOffCommand(booksDir, model.CategoryReceivable))
	return receivableCmd
}

func newReceivableAddCommand(booksDir *string) *cobra.Command {
	var amount, description, bucket, nemis, payee, onDate, dueDate string
	var term int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an expected payment",
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
				return fmt.Errorf("resolving income account %q: %w", bucket, err)
			}
			cashID, err := b.cashAccount(ctx, model.AccountCashOnHand)
			if err != nil {
				return err
			}

			var studentID int64
			if nemis != "" {
				st, err := b.students.ByNEMIS(ctx, nemis)
				if err != nil {
					return fmt.Errorf("looking up student %q: %w", nemis, err)
				}
				studentID = st.ID
			}

			tx, err := b.ledger.Record(ctx, model.Transaction{
				Date:        date,
				Category:    model.CategoryReceivable,
				Description: description,
				Amount:      amt,
				Status:      model.StatusPending,
				BucketID:    bkt.ID,
				CashID:      cashID,
				StudentID:   studentID,
				Payee:       payee,
				Term:        term,
				DueDate:     due,
			})
			if err != nil {
				return err
			}

			b.audit("record", "Receivable: "+tx.Description, tx.ID, tx.Ref)
			fmt.Printf("Recorded receivable %d: %s, %s due %s\n",
				tx.ID, tx.Description, tx.Amount.StringFixed(2), due.Format(dateLayout))
			return nil
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "amount owed (required)")
	cmd.Flags().StringVar(&description, "description", "", "what the money is for (required)")
	cmd.Flags().StringVar(&bucket, "bucket", model.AccountTuitionIncome, "income account it classifies under")
	cmd.Flags().StringVar(&nemis, "nemis", "", "student NEMIS number, when owed by a student")
	cmd.Flags().StringVar(&payee, "payee", "", "debtor name, when not a student")
	cmd.Flags().StringVar(&onDate, "date", "", "record date (default today)")
	cmd.Flags().StringVar(&dueDate, "due", "", "due date (required)")
	cmd.Flags().IntVar(&term, "term", 0, "term 1-3 for term fees")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("description")
	_ = cmd.MarkFlagRequired("due")

	return cmd
}
