package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shulebooks/shulebooks/internal/reminders"
)

func newRemindCommand(booksDir *string) *cobra.Command {
	var days int
	var mark bool

	cmd := &cobra.Command{
		Use:   "remind",
		Short: "List receivables due for a reminder",
		Long: `List pending receivables whose due date is inside the lead window or
already past, skipping any reminded today. Sending the reminders is up to
the office; --mark records that they went out.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBooks(*booksDir)
			if err != nil {
				return err
			}
			defer b.close()
			ctx := cmd.Context()

			svc := b.reminders
			if days > 0 {
				svc = reminders.NewService(b.store.Transactions, b.store.Students, days)
			}

			now := today()
			due, err := svc.Due(ctx, now)
			if err != nil {
				return err
			}
			if len(due) == 0 {
				fmt.Println("Nothing due for a reminder")
				return nil
			}

			fmt.Printf("%4s %-10s %-9s %12s %-24s %-14s %s\n",
				"ID", "DUE", "WHEN", "AMOUNT", "WHO", "CONTACT", "DESCRIPTION")
			for _, r := range due {
				who := r.Tx.Payee
				contact := ""
				if r.Student.ID != 0 {
					who = r.Student.Name
					contact = r.Student.Contact
				}
				fmt.Printf("%4d %-10s %-9s %12s %-24s %-14s %s\n",
					r.Tx.ID, r.Tx.DueDate.Format(dateLayout), dueWhen(r.DaysDue),
					r.Tx.Amount.StringFixed(2), who, contact, r.Tx.Description)
			}

			if !mark {
				return nil
			}
			for _, r := range due {
				if err := svc.MarkReminded(ctx, r.Tx.ID, now); err != nil {
					return fmt.Errorf("marking %d reminded: %w", r.Tx.ID, err)
				}
				b.audit("remind", r.Tx.Description, r.Tx.ID, r.Tx.Ref)
			}
			fmt.Printf("Marked %d reminders sent\n", len(due))
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "override the configured lead days")
	cmd.Flags().BoolVar(&mark, "mark", false, "record the reminders as sent")

	return cmd
}

func dueWhen(daysDue int) string {
	switch {
	case daysDue < 0:
		return fmt.Sprintf("%dd late", -daysDue)
	case daysDue == 0:
		return "today"
	default:
		return fmt.Sprintf("in %dd", daysDue)
	}
}
