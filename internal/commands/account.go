package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shulebooks/shulebooks/internal/model"
)

func newAccountCommand(booksDir *string) *cobra.Command {
	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Chart of accounts",
	}
	accountCmd.AddCommand(newAccountAddCommand(booksDir))
	accountCmd.AddCommand(newAccountListCommand(booksDir))
	return accountCmd
}

func newAccountAddCommand(booksDir *string) *cobra.Command {
	var name, class, bank, number, opening, openingDate string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an account to the chart",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBooks(*booksDir)
			if err != nil {
				return err
			}
			defer b.close()
			ctx := cmd.Context()

			a, err := b.accounts.Add(ctx, model.Account{
				Name:          name,
				Class:         model.Class(class),
				BankName:      bank,
				AccountNumber: number,
			})
			if err != nil {
				return err
			}
			b.audit("account", fmt.Sprintf("%s (%s)", a.Name, a.Class), 0, "")
			fmt.Printf("Added account %d: %s (%s)\n", a.ID, a.Name, a.Class)

			if opening == "" {
				return nil
			}

			// An opening balance is money already held when the account
			// joins the books. It posts as settled other income into the
			// new account.
			if a.Class != model.ClassAsset {
				return fmt.Errorf("opening balances apply to asset accounts, not %s", a.Class)
			}
			amount, err := parseAmount(opening)
			if err != nil {
				return err
			}
			date, err := parseDateOr(openingDate, today())
			if err != nil {
				return err
			}
			bucket, err := b.accounts.ByName(ctx, model.AccountOtherIncome)
			if err != nil {
				return err
			}
			tx, err := b.ledger.Record(ctx, model.Transaction{
				Date:        date,
				Category:    model.CategoryOtherIncome,
				Description: "Opening balance - " + a.Name,
				Amount:      amount,
				Status:      model.StatusSettled,
				BucketID:    bucket.ID,
				CashID:      a.ID,
			})
			if err != nil {
				return fmt.Errorf("recording opening balance: %w", err)
			}
			b.audit("record", "Opening balance - "+a.Name, tx.ID, tx.Ref)
			fmt.Printf("Recorded opening balance of %s\n", amount.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "account name (required)")
	cmd.Flags().StringVar(&class, "class", "", "asset, liability, equity, income or expense (required)")
	cmd.Flags().StringVar(&bank, "bank", "", "bank name for bank-held accounts")
	cmd.Flags().StringVar(&number, "number", "", "bank account number")
	cmd.Flags().StringVar(&opening, "opening", "", "opening balance for asset accounts")
	cmd.Flags().StringVar(&openingDate, "date", "", "opening balance date (default today)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("class")

	return cmd
}

func newAccountListCommand(booksDir *string) *cobra.Command {
	var balances bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the chart of accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBooks(*booksDir)
			if err != nil {
				return err
			}
			defer b.close()

			if balances {
				list, err := b.ledger.AccountBalances(cmd.Context(), today())
				if err != nil {
					return err
				}
				fmt.Printf("%4s %-28s %-10s %14s\n", "ID", "ACCOUNT", "CLASS", "BALANCE")
				for _, ab := range list {
					fmt.Printf("%4d %-28s %-10s %14s\n",
						ab.Account.ID, ab.Account.Name, ab.Account.Class, ab.Balance.StringFixed(2))
				}
				return nil
			}

			list, err := b.accounts.All(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("%4s %-28s %-10s %s\n", "ID", "ACCOUNT", "CLASS", "BANK")
			for _, a := range list {
				bank := a.BankName
				if bank != "" && a.AccountNumber != "" {
					bank = fmt.Sprintf("%s (%s)", a.BankName, a.AccountNumber)
				}
				fmt.Printf("%4d %-28s %-10s %s\n", a.ID, a.Name, a.Class, bank)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&balances, "balances", false, "show derived balances")

	return cmd
}
