package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/shulebooks/shulebooks/internal/ledger"
)

func newReportCommand(booksDir *string) *cobra.Command {
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Financial reports derived from the transaction log",
	}
	reportCmd.AddCommand(newTrialBalanceCommand(booksDir))
	reportCmd.AddCommand(newCashFlowCommand(booksDir))
	reportCmd.AddCommand(newBalanceSheetCommand(booksDir))
	return reportCmd
}

func newTrialBalanceCommand(booksDir *string) *cobra.Command {
	var asOfDate string

	cmd := &cobra.Command{
		Use:   "trial-balance",
		Short: "Gross debits and credits per account",
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
			tb, err := b.ledger.TrialBalance(cmd.Context(), asOf)
			if err != nil {
				return err
			}

			fmt.Printf("Trial Balance as of %s (%s)\n", tb.AsOf.Format(dateLayout), b.cfg.School.Currency)
			fmt.Printf("%-28s %-10s %14s %14s\n", "ACCOUNT", "CLASS", "DEBIT", "CREDIT")
			for _, line := range tb.Lines {
				fmt.Printf("%-28s %-10s %14s %14s\n",
					line.Account.Name, line.Account.Class,
					line.Debit.StringFixed(2), line.Credit.StringFixed(2))
			}
			fmt.Printf("%-28s %-10s %14s %14s\n", "TOTAL", "",
				tb.TotalDebit.StringFixed(2), tb.TotalCredit.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVar(&asOfDate, "as-of", "", "cutoff date (default today)")

	return cmd
}

func newCashFlowCommand(booksDir *string) *cobra.Command {
	var fromDate, toDate string

	cmd := &cobra.Command{
		Use:   "cash-flow",
		Short: "Settled money in and out over a period",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBooks(*booksDir)
			if err != nil {
				return err
			}
			defer b.close()

			from, err := parseDate(fromDate)
			if err != nil {
				return err
			}
			to, err := parseDateOr(toDate, today())
			if err != nil {
				return err
			}
			cf, err := b.ledger.CashFlow(cmd.Context(), from, to)
			if err != nil {
				return err
			}

			fmt.Printf("Cash Flow %s to %s (%s)\n",
				cf.From.Format(dateLayout), cf.To.Format(dateLayout), b.cfg.School.Currency)
			fmt.Printf("%-10s %-15s %-32s %12s %12s %14s\n",
				"DATE", "CATEGORY", "DESCRIPTION", "IN", "OUT", "BALANCE")
			for _, line := range cf.Lines {
				fmt.Printf("%-10s %-15s %-32s %12s %12s %14s\n",
					line.Date.Format(dateLayout), line.Category, clip(line.Description, 32),
					money(line.In), money(line.Out), line.Balance.StringFixed(2))
			}
			fmt.Printf("Total in %s, out %s, net %s\n",
				cf.TotalIn.StringFixed(2), cf.TotalOut.StringFixed(2), cf.Net.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVar(&fromDate, "from", "", "period start (required)")
	cmd.Flags().StringVar(&toDate, "to", "", "period end (default today)")
	_ = cmd.MarkFlagRequired("from")

	return cmd
}

func newBalanceSheetCommand(booksDir *string) *cobra.Command {
	var asOfDate string

	cmd := &cobra.Command{
		Use:   "balance-sheet",
		Short: "Assets against liabilities and equity",
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
			bs, err := b.ledger.BalanceSheet(cmd.Context(), asOf)
			if err != nil {
				return err
			}

			fmt.Printf("Balance Sheet as of %s (%s)\n", bs.AsOf.Format(dateLayout), b.cfg.School.Currency)
			printSection("ASSETS", bs.Assets, bs.TotalAssets)
			printSection("LIABILITIES", bs.Liabilities, bs.TotalLiabilities)
			printSection("EQUITY", bs.Equity, bs.TotalEquity)
			fmt.Printf("Assets %s = Liabilities %s + Equity %s\n",
				bs.TotalAssets.StringFixed(2), bs.TotalLiabilities.StringFixed(2),
				bs.TotalEquity.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVar(&asOfDate, "as-of", "", "cutoff date (default today)")

	return cmd
}

func printSection(title string, lines []ledger.BalanceSheetLine, total decimal.Decimal) {
	fmt.Println(title)
	for _, line := range lines {
		fmt.Printf("  %-28s %14s\n", line.Account, line.Amount.StringFixed(2))
	}
	fmt.Printf("  %-28s %14s\n", "Total", total.StringFixed(2))
}

// money renders an amount, blank when zero, for in/out style columns.
func money(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return d.StringFixed(2)
}
