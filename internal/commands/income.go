package commands

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/moneytrack/internal/currency"
	"github.com/cleared-dev/moneytrack/internal/id"
	"github.com/cleared-dev/moneytrack/internal/ledger"
	"github.com/cleared-dev/moneytrack/internal/model"
)

func newIncomeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "income",
		Short: "Record and review income",
	}
	cmd.AddCommand(newIncomeAddCommand(), newIncomeListCommand(), newIncomeDeleteCommand())
	return cmd
}

func newIncomeAddCommand() *cobra.Command {
	var (
		in       model.Income
		curr     string
		category string
		period   string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record income and credit its account in the account's currency",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, app *session) error {
				in.Currency = model.Currency(curr)
				in.Category = model.IncomeCategory(category)
				in.AccountID = defaultAccountID(ctx, app.store, in.AccountID)
				if in.IsRecurring {
					in.RecurringPeriod = model.RecurringPeriod(period)
				}
				if in.Date == "" {
					in.Date = id.DayOf(app.store.Now())
				}
				accounts := ledger.NewAccountIndex(app.store.Accounts(ctx))
				if err := ledger.JoinValidation(ledger.ValidateIncome(in, accounts)); err != nil {
					return err
				}
				saved, credited := app.store.RecordIncome(ctx, in)
				account, _ := app.store.Account(ctx, saved.AccountID)
				fmt.Fprintf(cmd.OutOrStdout(), "Recorded income %s: %s credited %s to %s\n",
					saved.ID,
					currency.Format(saved.Amount, saved.Currency),
					currency.Format(credited, account.AccountCurrency()),
					account.DisplayName())
				app.audit(cmd, saved.ID, currency.Format(saved.Amount, saved.Currency))
				return nil
			})
		},
	}

	cmd.Flags().Float64Var(&in.Amount, "amount", 0, "amount received (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&curr, "currency", string(model.CurrencyTHB), "currency the amount is in")
	cmd.Flags().StringVar(&category, "category", string(model.IncomeSalary), "salary, freelance, investment, bonus or other")
	cmd.Flags().StringVar(&in.Description, "desc", "", "description")
	cmd.Flags().StringVar(&in.Date, "date", "", "date as YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&in.AccountID, "account", "", "account id (default account if omitted)")
	cmd.Flags().StringVar(&in.Source, "source", "", "who paid")
	cmd.Flags().BoolVar(&in.IsRecurring, "recurring", false, "mark as recurring")
	cmd.Flags().StringVar(&period, "period", string(model.PeriodMonthly), "weekly, monthly or yearly when recurring")

	return cmd
}

func newIncomeListCommand() *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List income",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, app *session) error {
				var rows [][]string
				for _, in := range app.store.Income(ctx) {
					if month != "" && !strings.HasPrefix(in.Date, month) {
						continue
					}
					curr := in.Currency
					if curr == "" {
						curr = model.CurrencyTHB
					}
					rows = append(rows, []string{
						in.ID,
						in.Date,
						string(in.Category),
						in.Description,
						currency.Format(in.Amount, curr),
						in.AccountID,
					})
				}
				printTable(cmd.OutOrStdout(),
					[]string{"ID", "Date", "Category", "Description", "Amount", "Account"}, rows)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "only income in YYYY-MM")

	return cmd
}

func newIncomeDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an income record (balances are not changed)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *session) error {
				if !app.store.DeleteIncome(ctx, args[0]) {
					return fmt.Errorf("income %q: %w", args[0], ledger.ErrNotFound)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted income %s\n", args[0])
				app.audit(cmd, args[0], "")
				return nil
			})
		},
	}
}

func newExchangeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exchange",
		Short: "Move money between accounts in different currencies",
	}
	cmd.AddCommand(newExchangeAddCommand(), newExchangeListCommand())
	return cmd
}

func newExchangeAddCommand() *cobra.Command {
	var p ledger.ExchangeParams

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an exchange; the received amount is (amount - fees) * rate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, app *session) error {
				accounts := ledger.NewAccountIndex(app.store.Accounts(ctx))
				if err := ledger.JoinValidation(ledger.ValidateExchange(p, accounts)); err != nil {
					return err
				}
				x, err := app.store.RecordExchange(ctx, p)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exchanged %s for %s at %s\n",
					currency.Format(x.FromAmount, x.FromCurrency),
					currency.Format(x.ToAmount, x.ToCurrency),
					formatRate(x.ExchangeRate))
				app.audit(cmd, x.ID, fmt.Sprintf("%s %s → %s", formatRate(x.FromAmount), x.FromCurrency, x.ToCurrency))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&p.FromAccountID, "from", "", "source account id (required)")
	cmd.Flags().StringVar(&p.ToAccountID, "to", "", "destination account id (required)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	cmd.Flags().Float64Var(&p.FromAmount, "amount", 0, "amount sent, in the source currency (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().Float64Var(&p.Fees, "fees", 0, "fees, in the source currency")
	cmd.Flags().Float64Var(&p.Rate, "rate", 0, "exchange rate (default from rate settings)")
	cmd.Flags().StringVar(&p.Date, "date", "", "date as YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&p.Description, "desc", "", "description")

	return cmd
}

func newExchangeListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List exchanges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, app *session) error {
				var rows [][]string
				for _, x := range app.store.CurrencyExchanges(ctx) {
					rows = append(rows, []string{
						x.ID,
						x.Date,
						x.FromAccountID + " → " + x.ToAccountID,
						currency.Format(x.FromAmount, x.FromCurrency),
						currency.Format(x.ToAmount, x.ToCurrency),
						formatRate(x.ExchangeRate),
					})
				}
				printTable(cmd.OutOrStdout(), []string{"ID", "Date", "Accounts", "Sent", "Received", "Rate"}, rows)
				return nil
			})
		},
	}
}

func newRatesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rates",
		Short: "Show and maintain conversion rates",
	}
	cmd.AddCommand(newRatesShowCommand(), newRatesSetCommand())
	return cmd
}

func newRatesShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show conversion rates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, app *session) error {
				settings := app.store.ExchangeSettings(ctx)
				keys := make([]string, 0, len(settings.Rates))
				for k := range settings.Rates {
					keys = append(keys, k)
				}
				sort.Strings(keys)

				rows := make([][]string, 0, len(keys))
				for _, k := range keys {
					rows = append(rows, []string{strings.ReplaceAll(k, "_", " → "), formatRate(settings.Rates[k])})
				}
				out := cmd.OutOrStdout()
				printTable(out, []string{"Pair", "Rate"}, rows)
				fmt.Fprintf(out, "Last updated %s, missing pairs convert %s\n",
					settings.LastUpdated.Format("2006-01-02 15:04"), app.cfg.Currency.RateFallback)
				return nil
			})
		},
	}
}

func newRatesSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <from> <to> <rate>",
		Short: "Set the rate used to convert from one currency into another",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to := model.Currency(strings.ToUpper(args[0])), model.Currency(strings.ToUpper(args[1]))
			if !from.Valid() || !to.Valid() {
				return fmt.Errorf("unsupported currency pair %s/%s", args[0], args[1])
			}
			rate, err := strconv.ParseFloat(args[2], 64)
			if err != nil || rate <= 0 {
				return fmt.Errorf("invalid rate %q", args[2])
			}
			return withApp(cmd, func(ctx context.Context, app *session) error {
				app.store.SetRate(ctx, from, to, rate)
				fmt.Fprintf(cmd.OutOrStdout(), "Set %s → %s to %s\n", from, to, formatRate(rate))
				app.audit(cmd, model.RateKey(from, to), formatRate(rate))
				return nil
			})
		},
	}
}
