package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/moneytrack/internal/ledger"
	"github.com/cleared-dev/moneytrack/internal/model"
)

func newAccountCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "account",
		Aliases: []string{"accounts"},
		Short:   "Manage bank, crypto and investment accounts",
	}
	cmd.AddCommand(
		newAccountAddCommand(),
		newAccountListCommand(),
		newAccountUpdateCommand(),
		newAccountDeleteCommand(),
		newAccountDefaultCommand(),
		newAccountBanksCommand(),
	)
	return cmd
}

func newAccountAddCommand() *cobra.Command {
	var (
		a           model.Account
		accountType string
		curr        string
		country     string
		inactive    bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.Type = model.AccountType(accountType)
			a.Currency = model.Currency(curr)
			a.Country = model.Country(country)
			a.IsActive = !inactive
			if err := ledger.JoinValidation(ledger.ValidateAccount(a)); err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, app *session) error {
				a = a.WithBankDefaults()
				a.LastUpdated = app.store.Now()
				saved := app.store.AddAccount(ctx, a)
				fmt.Fprintf(cmd.OutOrStdout(), "Added account %s (%s)\n", saved.ID, saved.DisplayName())
				app.audit(cmd, saved.ID, saved.DisplayName())
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&a.BankName, "bank", "", "bank or exchange name (required)")
	_ = cmd.MarkFlagRequired("bank")
	cmd.Flags().StringVar(&a.Nickname, "nickname", "", "display name")
	cmd.Flags().StringVar(&accountType, "type", string(model.AccountTypeSavings), "savings, checking, credit, crypto or investment")
	cmd.Flags().Float64Var(&a.Balance, "balance", 0, "opening balance")
	cmd.Flags().StringVar(&curr, "currency", "", "THB, USDT or MMK (default THB)")
	cmd.Flags().StringVar(&country, "country", "", "TH, MM or Global")
	cmd.Flags().StringVar(&a.Color, "color", "", "brand colour, defaults from the bank catalogue")
	cmd.Flags().BoolVar(&a.IsDefault, "default", false, "make this the default account")
	cmd.Flags().BoolVar(&inactive, "inactive", false, "add the account as inactive")

	return cmd
}

func newAccountListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, app *session) error {
				printTable(cmd.OutOrStdout(),
					[]string{"ID", "Name", "Bank", "Type", "Balance", ""},
					accountRows(app.store.Accounts(ctx)))
				return nil
			})
		},
	}
}

func newAccountUpdateCommand() *cobra.Command {
	var (
		nickname    string
		accountType string
		balance     float64
		curr        string
		active      bool
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update fields of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch model.AccountPatch
			flags := cmd.Flags()
			if flags.Changed("nickname") {
				patch.Nickname = &nickname
			}
			if flags.Changed("type") {
				t := model.AccountType(accountType)
				patch.Type = &t
			}
			if flags.Changed("balance") {
				patch.Balance = &balance
			}
			if flags.Changed("currency") {
				c := model.Currency(curr)
				patch.Currency = &c
			}
			if flags.Changed("active") {
				patch.IsActive = &active
			}

			return withApp(cmd, func(ctx context.Context, app *session) error {
				existing, ok := app.store.Account(ctx, args[0])
				if !ok {
					return fmt.Errorf("account %q: %w", args[0], ledger.ErrNotFound)
				}
				if err := ledger.JoinValidation(ledger.ValidateAccount(patch.Apply(existing))); err != nil {
					return err
				}
				now := app.store.Now()
				patch.LastUpdated = &now
				app.store.UpdateAccount(ctx, args[0], patch)
				fmt.Fprintf(cmd.OutOrStdout(), "Updated account %s\n", args[0])
				app.audit(cmd, args[0], "")
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&nickname, "nickname", "", "display name")
	cmd.Flags().StringVar(&accountType, "type", "", "account type")
	cmd.Flags().Float64Var(&balance, "balance", 0, "new balance")
	cmd.Flags().StringVar(&curr, "currency", "", "account currency")
	cmd.Flags().BoolVar(&active, "active", true, "whether the account is active")

	return cmd
}

func newAccountDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *session) error {
				if !app.store.DeleteAccount(ctx, args[0]) {
					return fmt.Errorf("account %q: %w", args[0], ledger.ErrNotFound)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted account %s\n", args[0])
				app.audit(cmd, args[0], "")
				return nil
			})
		},
	}
}

func newAccountDefaultCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "default [id]",
		Short: "Show or set the default account",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *session) error {
				out := cmd.OutOrStdout()
				if len(args) == 1 {
					isDefault := true
					if !app.store.UpdateAccount(ctx, args[0], model.AccountPatch{IsDefault: &isDefault}) {
						return fmt.Errorf("account %q: %w", args[0], ledger.ErrNotFound)
					}
					app.audit(cmd, args[0], "")
				}
				a, ok := app.store.DefaultAccount(ctx)
				if !ok {
					fmt.Fprintln(out, "No default account.")
					return nil
				}
				fmt.Fprintf(out, "Default account: %s (%s)\n", a.ID, a.DisplayName())
				return nil
			})
		},
	}
}

func newAccountBanksCommand() *cobra.Command {
	var country string

	cmd := &cobra.Command{
		Use:   "banks",
		Short: "List the built-in bank catalogue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			banks := model.Banks
			if country != "" {
				banks = model.BanksIn(model.Country(country))
			}
			rows := make([][]string, 0, len(banks))
			for _, b := range banks {
				rows = append(rows, []string{b.Name, b.Logo, string(b.Country), string(b.Kind)})
			}
			printTable(cmd.OutOrStdout(), []string{"Name", "Slug", "Country", "Kind"}, rows)
			return nil
		},
	}

	cmd.Flags().StringVar(&country, "country", "", "filter by country: TH, MM or Global")

	return cmd
}
