package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSummaryCommand(booksDir *string) *cobra.Command {
	var asOfDate string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "One-screen state of the books",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBooks(*booksDir)
			if err != nil {
				return err
			}
			defer b.close()

			asOf, err := parseDateOr(asOfDate, today())
			if err != nil {
				return err
			}
			ov, err := b.ledger.Overview(cmd.Context(), asOf)
			if err != nil {
				return err
			}

			currency := b.cfg.School.Currency
			fmt.Printf("%s as of %s\n", b.cfg.School.Name, ov.AsOf.Format(dateLayout))
			fmt.Printf("Transactions on the books: %d\n", ov.Transactions)
			fmt.Printf("Cash position:             %s %s\n", currency, ov.Cash.StringFixed(2))
			fmt.Printf("Pending receivables:       %d worth %s %s\n",
				ov.PendingReceivables, currency, ov.PendingReceivableTotal.StringFixed(2))
			fmt.Printf("Pending payables:          %d worth %s %s\n",
				ov.PendingPayables, currency, ov.PendingPayableTotal.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVar(&asOfDate, "as-of", "", "cutoff date (default today)")

	return cmd
}
