package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/shulebooks/shulebooks/internal/model"
)

// The receivable and payable groups share everything but their add
// command: listing, settling and writing off only differ by category.

func newOpenItemListCommand(booksDir *string, category model.Category) *cobra.Command {
	var all bool
	noun := itemNoun(category)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List " + noun + "s",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBooks(*booksDir)
			if err != nil {
				return err
			}
			defer b.close()
			ctx := cmd.Context()

			var list []model.Transaction
			if all {
				every, err := b.store.Transactions.All(ctx)
				if err != nil {
					return err
				}
				for _, tx := range every {
					if tx.Category == category {
						list = append(list, tx)
					}
				}
			} else {
				list, err = b.store.Transactions.PendingByCategory(ctx, category)
				if err != nil {
					return err
				}
			}

			fmt.Printf("%4s %-10s %-10s %-32s %12s %-11s %s\n",
				"ID", "DATE", "DUE", "DESCRIPTION", "AMOUNT", "STATUS", "WHO")
			for _, tx := range list {
				who := tx.Payee
				if tx.StudentID != 0 {
					if st, err := b.students.Get(ctx, tx.StudentID); err == nil {
						who = st.Name
					}
				}
				due := ""
				if !tx.DueDate.IsZero() {
					due = tx.DueDate.Format(dateLayout)
				}
				fmt.Printf("%4d %-10s %-10s %-32s %12s %-11s %s\n",
					tx.ID, tx.Date.Format(dateLayout), due, clip(tx.Description, 32),
					tx.Amount.StringFixed(2), tx.Status, who)
			}
			fmt.Printf("%d %ss\n", len(list), noun)
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "include settled and written-off entries")

	return cmd
}

func newOpenItemSettleCommand(booksDir *string, category model.Category) *cobra.Command {
	var onDate string
	noun := itemNoun(category)

	cmd := &cobra.Command{
		Use:   "settle <id>",
		Short: "Mark a " + noun + " " + settledWord(category),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBooks(*booksDir)
			if err != nil {
				return err
			}
			defer b.close()
			ctx := cmd.Context()

			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			on, err := parseDateOr(onDate, today())
			if err != nil {
				return err
			}
			if err := checkCategory(cmd, b, id, category); err != nil {
				return err
			}

			tx, err := b.ledger.Settle(ctx, id, on)
			if err != nil {
				return err
			}
			b.audit("settle", tx.Description, tx.ID, tx.Ref)
			fmt.Printf("Settled %s %d (%s) on %s\n", noun, tx.ID, tx.Description, on.Format(dateLayout))
			return nil
		},
	}

	cmd.Flags().StringVar(&onDate, "on", "", "settlement date (default today)")

	return cmd
}

func newOpenItemWriteOffCommand(booksDir *string, category model.Category) *cobra.Command {
	var onDate string
	noun := itemNoun(category)

	cmd := &cobra.Command{
		Use:   "writeoff <id>",
		Short: "Write off a " + noun + " that will never settle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBooks(*booksDir)
			if err != nil {
				return err
			}
			defer b.close()
			ctx := cmd.Context()

			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			on, err := parseDateOr(onDate, today())
			if err != nil {
				return err
			}
			if err := checkCategory(cmd, b, id, category); err != nil {
				return err
			}

			tx, err := b.ledger.WriteOff(ctx, id, on)
			if err != nil {
				return err
			}
			b.audit("write-off", tx.Description, tx.ID, tx.Ref)
			fmt.Printf("Wrote off %s %d (%s) on %s\n", noun, tx.ID, tx.Description, on.Format(dateLayout))
			return nil
		},
	}

	cmd.Flags().StringVar(&onDate, "on", "", "write-off date (default today)")

	return cmd
}

// checkCategory keeps the receivable commands off payables and vice versa.
func checkCategory(cmd *cobra.Command, b *books, id int64, category model.Category) error {
	tx, err := b.store.Transactions.Get(cmd.Context(), id)
	if err != nil {
		return err
	}
	if tx.Category != category {
		return fmt.Errorf("transaction %d is a %s, not a %s", id, tx.Category, category)
	}
	return nil
}

func itemNoun(category model.Category) string {
	if category == model.CategoryReceivable {
		return "receivable"
	}
	return "payable"
}

func settledWord(category model.Category) string {
	if category == model.CategoryReceivable {
		return "received"
	}
	return "paid"
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("transaction id %q is not a number", s)
	}
	return id, nil
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "~"
}
