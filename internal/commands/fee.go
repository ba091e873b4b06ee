package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/shulebooks/shulebooks/internal/fees"
	"github.com/shulebooks/shulebooks/internal/model"
)

func newFeeCommand(booksDir *string) *cobra.Command {
	feeCmd := &cobra.Command{
		Use:   "fee",
		Short: "Fee structure, invoicing and collection",
	}
	feeCmd.AddCommand(newFeeSetCommand(booksDir))
	feeCmd.AddCommand(newFeeListCommand(booksDir))
	feeCmd.AddCommand(newFeeRemoveCommand(booksDir))
	feeCmd.AddCommand(newFeeInvoiceCommand(booksDir))
	feeCmd.AddCommand(newFeeCollectCommand(booksDir))
	feeCmd.AddCommand(newFeeImportCommand(booksDir))
	feeCmd.AddCommand(newFeePaymentsCommand(booksDir))
	return feeCmd
}

func newFeeSetCommand(booksDir *string) *cobra.Command {
	var year, term int
	var grade, feeType, amount, description string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set one fee structure line",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBooks(*booksDir)
			if err != nil {
				return err
			}
			defer b.close()

			amt, err := parseAmount(amount)
			if err != nil {
				return err
			}
			item := model.FeeItem{
				Year:        year,
				Grade:       grade,
				Term:        term,
				FeeType:     feeType,
				Amount:      amt,
				Description: description,
			}
			if err := b.fees.SetFee(cmd.Context(), item); err != nil {
				return err
			}
			fmt.Printf("Set %s %s term %d (%d) to %s\n", grade, feeType, term, year, amt.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", time.Now().Year(), "academic year")
	cmd.Flags().StringVar(&grade, "grade", "", "grade, e.g. \"Grade 4\" (required)")
	cmd.Flags().IntVar(&term, "term", 0, "term 1-3 (required)")
	cmd.Flags().StringVar(&feeType, "type", model.FeeTypeTuition, "fee type")
	cmd.Flags().StringVar(&amount, "amount", "", "amount (required)")
	cmd.Flags().StringVar(&description, "description", "", "description")
	_ = cmd.MarkFlagRequired("grade")
	_ = cmd.MarkFlagRequired("term")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func newFeeListCommand(booksDir *string) *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the fee structure for a year",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBooks(*booksDir)
			if err != nil {
				return err
			}
			defer b.close()

			items, err := b.fees.Fees(cmd.Context(), year)
			if err != nil {
				return err
			}
			fmt.Printf("Fee structure %d\n", year)
			fmt.Printf("%-10s %4s %-10s %12s  %s\n", "GRADE", "TERM", "TYPE", "AMOUNT", "DESCRIPTION")
			for _, it := range items {
				fmt.Printf("%-10s %4d %-10s %12s  %s\n",
					it.Grade, it.Term, it.FeeType, it.Amount.StringFixed(2), it.Description)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", time.Now().Year(), "academic year")

	return cmd
}

func newFeeRemoveCommand(booksDir *string) *cobra.Command {
	var year, term int
	var grade, feeType string

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove one fee structure line",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBooks(*booksDir)
			if err != nil {
				return err
			}
			defer b.close()

			if err := b.fees.RemoveFee(cmd.Context(), year, grade, term, feeType); err != nil {
				return err
			}
			fmt.Printf("Removed %s %s term %d (%d)\n", grade, feeType, term, year)
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", time.Now().Year(), "academic year")
	cmd.Flags().StringVar(&grade, "grade", "", "grade (required)")
	cmd.Flags().IntVar(&term, "term", 0, "term 1-3 (required)")
	cmd.Flags().StringVar(&feeType, "type", model.FeeTypeTuition, "fee type")
	_ = cmd.MarkFlagRequired("grade")
	_ = cmd.MarkFlagRequired("term")

	return cmd
}

func newFeeInvoiceCommand(booksDir *string) *cobra.Command {
	var year, term int
	var onDate, dueDate string

	cmd := &cobra.Command{
		Use:   "invoice",
		Short: "Raise term invoices for every enrolled student",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBooks(*booksDir)
			if err != nil {
				return err
			}
			defer b.close()

			on, err := parseDateOr(onDate, today())
			if err != nil {
				return err
			}
			due, err := parseDate(dueDate)
			if err != nil {
				return err
			}

			run, err := b.fees.GenerateInvoices(cmd.Context(), year, term, on, due)
			if err != nil {
				return err
			}

			for _, tx := range run.Created {
				b.audit("invoice", tx.Description, tx.ID, tx.Ref)
			}
			fmt.Printf("Raised %d invoices for term %d %d (%d already existed)\n",
				len(run.Created), term, year, len(run.Skipped))
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", time.Now().Year(), "academic year")
	cmd.Flags().IntVar(&term, "term", 0, "term 1-3 (required)")
	cmd.Flags().StringVar(&onDate, "on", "", "invoice date (default today)")
	cmd.Flags().StringVar(&dueDate, "due", "", "due date (required)")
	_ = cmd.MarkFlagRequired("term")
	_ = cmd.MarkFlagRequired("due")

	return cmd
}

func newFeeCollectCommand(booksDir *string) *cobra.Command {
	var nemis, amount, payDate, ref, note, cash string
	var term int

	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Record a fee payment and print the receipt",
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
			date, err := parseDateOr(payDate, today())
			if err != nil {
				return err
			}
			cashID, err := b.cashAccount(ctx, cash)
			if err != nil {
				return err
			}

			rcpt, err := b.fees.Collect(ctx, fees.CollectParams{
				NEMIS:  nemis,
				Amount: amt,
				Term:   term,
				CashID: cashID,
				Date:   date,
				Ref:    ref,
				Note:   note,
			})
			if err != nil {
				return err
			}

			b.audit("collect", fmt.Sprintf("Term %d from %s (NEMIS %s)", term, rcpt.Student.Name, nemis), rcpt.TxID, ref)
			printReceipt(b.cfg.School.Name, b.cfg.School.Currency, rcpt)
			return nil
		},
	}

	cmd.Flags().StringVar(&nemis, "nemis", "", "student NEMIS number (required)")
	cmd.Flags().StringVar(&amount, "amount", "", "amount paid (required)")
	cmd.Flags().IntVar(&term, "term", 0, "term 1-3 (required)")
	cmd.Flags().StringVar(&payDate, "date", "", "payment date (default today)")
	cmd.Flags().StringVar(&ref, "ref", "", "external payment reference, e.g. an M-Pesa code")
	cmd.Flags().StringVar(&note, "note", "", "description override")
	cmd.Flags().StringVar(&cash, "cash", model.AccountCashOnHand, "asset account the money landed in")
	_ = cmd.MarkFlagRequired("nemis")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("term")

	return cmd
}

// printReceipt renders a fee receipt the way the office hands it out.
func printReceipt(school, currency string, r fees.Receipt) {
	fmt.Println(school)
	fmt.Printf("Receipt %s\n", r.Number)
	fmt.Printf("Date:    %s\n", r.Date.Format(dateLayout))
	fmt.Printf("Student: %s (NEMIS %s, %s)\n", r.Student.Name, r.Student.NEMIS, r.Student.Grade)
	fmt.Printf("Term:    %d\n", r.Term)
	fmt.Printf("Amount:  %s %s\n", currency, r.Amount.StringFixed(2))
	fmt.Printf("         %s\n", r.AmountInWords)
}

func newFeePaymentsCommand(booksDir *string) *cobra.Command {
	var year, term int
	var grade string

	cmd := &cobra.Command{
		Use:   "payments",
		Short: "Billed against paid, per student",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBooks(*booksDir)
			if err != nil {
				return err
			}
			defer b.close()

			list, err := b.fees.StudentPayments(cmd.Context(), year, grade, term)
			if err != nil {
				return err
			}

			fmt.Printf("Payments %s term %d, %d\n", grade, term, year)
			fmt.Printf("%-12s %-28s %12s %12s %12s\n", "NEMIS", "NAME", "BILLED", "PAID", "BALANCE")
			for _, p := range list {
				fmt.Printf("%-12s %-28s %12s %12s %12s\n",
					p.Student.NEMIS, p.Student.Name,
					p.Billed.StringFixed(2), p.Paid.StringFixed(2), p.Balance.StringFixed(2))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", time.Now().Year(), "academic year")
	cmd.Flags().StringVar(&grade, "grade", "", "grade (required)")
	cmd.Flags().IntVar(&term, "term", 0, "term 1-3 (required)")
	_ = cmd.MarkFlagRequired("grade")
	_ = cmd.MarkFlagRequired("term")

	return cmd
}
