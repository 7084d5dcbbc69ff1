package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zeromicro/go-zero/core/logx"

	"github.com/cleared-dev/moneytrack/internal/id"
	"github.com/cleared-dev/moneytrack/internal/importer"
	"github.com/cleared-dev/moneytrack/internal/ledger"
	"github.com/cleared-dev/moneytrack/internal/model"
)

func newExpenseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "expense",
		Aliases: []string{"expenses"},
		Short:   "Record and review expenses",
	}
	cmd.AddCommand(
		newExpenseAddCommand(),
		newExpenseListCommand(),
		newExpenseDeleteCommand(),
		newExpenseImportCommand(),
		newExpenseExportCommand(),
		newExpenseLoadCommand(),
	)
	return cmd
}

// defaultAccountID returns accountID, or the default account when empty.
func defaultAccountID(ctx context.Context, store *ledger.Store, accountID string) string {
	if accountID != "" {
		return accountID
	}
	if a, ok := store.DefaultAccount(ctx); ok {
		return a.ID
	}
	return ""
}

func newExpenseAddCommand() *cobra.Command {
	var (
		e        model.Expense
		category string
		method   string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an expense against the budget and debit its account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, app *session) error {
				e.Category = model.Category(category)
				e.PaymentMethod = model.PaymentMethod(method)
				e.AccountID = defaultAccountID(ctx, app.store, e.AccountID)
				if e.Date == "" {
					e.Date = id.DayOf(app.store.Now())
				}
				accounts := ledger.NewAccountIndex(app.store.Accounts(ctx))
				if err := ledger.JoinValidation(ledger.ValidateExpense(e, accounts)); err != nil {
					return err
				}
				saved := app.store.AddExpense(ctx, e)
				fmt.Fprintf(cmd.OutOrStdout(), "Recorded expense %s: %s on %s\n",
					saved.ID, formatTHB(saved.Amount), saved.Category)
				app.audit(cmd, saved.ID, fmt.Sprintf("%s %s", formatTHB(saved.Amount), saved.Category))
				return nil
			})
		},
	}

	cmd.Flags().Float64Var(&e.Amount, "amount", 0, "amount spent (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&category, "category", string(model.CategoryOthers), "budget category")
	cmd.Flags().StringVar(&e.Description, "desc", "", "description")
	cmd.Flags().StringVar(&e.Date, "date", "", "date as YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&e.AccountID, "account", "", "account id (default account if omitted)")
	cmd.Flags().StringVar(&method, "method", string(model.PaymentDebitCard), "debit_card, credit_card, cash or transfer")
	cmd.Flags().StringVar(&e.Location, "location", "", "where the money was spent")
	cmd.Flags().BoolVar(&e.IsRecurring, "recurring", false, "mark as a recurring expense")

	return cmd
}

func newExpenseListCommand() *cobra.Command {
	var (
		month string
		week  string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, app *session) error {
				var expenses []model.Expense
				switch {
				case month != "":
					expenses = app.store.ExpensesForMonth(ctx, month)
				case week != "":
					expenses = app.store.ExpensesForWeek(ctx, week)
				case limit > 0:
					expenses = app.store.RecentExpenses(ctx, limit)
				default:
					expenses = app.store.Expenses(ctx)
				}
				printTable(cmd.OutOrStdout(),
					[]string{"ID", "Date", "Category", "Description", "Amount", "Account"},
					expenseRows(expenses))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "only expenses in YYYY-MM")
	cmd.Flags().StringVar(&week, "week", "", "only expenses in the week starting YYYY-MM-DD")
	cmd.Flags().IntVar(&limit, "limit", 0, "only the newest n expenses")

	return cmd
}

func newExpenseDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an expense and reverse its budget and balance effects",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *session) error {
				if !app.store.DeleteExpense(ctx, args[0]) {
					return fmt.Errorf("expense %q: %w", args[0], ledger.ErrNotFound)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted expense %s\n", args[0])
				app.audit(cmd, args[0], "")
				return nil
			})
		},
	}
}

func newExpenseImportCommand() *cobra.Command {
	var (
		format    string
		accountID string
		method    string
	)

	registry := importer.DefaultRegistry()

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import a bank CSV export",
		Long: "Import a bank CSV export. Money out becomes expenses and money in " +
			"becomes income. Without a file, every CSV in the project's import/ " +
			"directory is imported and moved to import/processed/.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := registry.Get(format)
			if parser == nil {
				return fmt.Errorf("unknown format %q (available: %s)", format, strings.Join(registry.Formats(), ", "))
			}
			pm := model.PaymentMethod(method)
			if !pm.Valid() {
				return fmt.Errorf("unknown payment method %q", method)
			}

			return withApp(cmd, func(ctx context.Context, app *session) error {
				out := cmd.OutOrStdout()
				account := defaultAccountID(ctx, app.store, accountID)

				if len(args) == 1 {
					res, err := importFile(ctx, app.store, parser, args[0], account, pm)
					if err != nil {
						return err
					}
					printImportResult(out, args[0], res)
					app.audit(cmd, account, importSummary(args[0], res))
					return nil
				}

				files, err := importer.Scan(app.dir)
				if err != nil {
					return err
				}
				if len(files) == 0 {
					fmt.Fprintln(out, "No CSV files in import/.")
					return nil
				}
				for _, f := range files {
					res, err := importFile(ctx, app.store, parser, f.Path, account, pm)
					if err != nil {
						return err
					}
					if err := importer.MarkProcessed(app.dir, f.Name); err != nil {
						return err
					}
					printImportResult(out, f.Name, res)
					app.audit(cmd, account, importSummary(f.Name, res))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "generic", "CSV format: generic or statement")
	cmd.Flags().StringVar(&accountID, "account", "", "account id (default account if omitted)")
	cmd.Flags().StringVar(&method, "method", string(model.PaymentTransfer), "payment method for imported expenses")

	return cmd
}

func importFile(ctx context.Context, store *ledger.Store, parser importer.Parser, path, accountID string, method model.PaymentMethod) (importer.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return importer.Result{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	txns, err := parser.Parse(f)
	if err != nil {
		return importer.Result{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	logx.WithContext(ctx).Infow("parsed import file",
		logx.Field("file", path),
		logx.Field("format", parser.Format()),
		logx.Field("transactions", len(txns)))
	return importer.Apply(ctx, store, accountID, method, txns)
}

func importSummary(name string, res importer.Result) string {
	return fmt.Sprintf("%s: %d expenses, %d income, %d skipped", name, res.Expenses, res.Income, res.Skipped)
}

func printImportResult(w io.Writer, name string, res importer.Result) {
	fmt.Fprintln(w, importSummary(name, res))
}

func newExpenseExportCommand() *cobra.Command {
	var (
		month  string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write expenses as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, app *session) error {
				expenses := app.store.Expenses(ctx)
				if month != "" {
					expenses = app.store.ExpensesForMonth(ctx, month)
				}
				if output == "" || output == "-" {
					return importer.WriteExpenses(cmd.OutOrStdout(), expenses)
				}

				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("creating %s: %w", output, err)
				}
				if err := importer.WriteExpenses(f, expenses); err != nil {
					f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return fmt.Errorf("closing %s: %w", output, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d expenses to %s\n", len(expenses), output)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "only expenses in YYYY-MM")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	return cmd
}

func newExpenseLoadCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "load <file>",
		Short: "Record every expense in a CSV written by export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer f.Close()

			expenses, err := importer.ReadExpenses(f)
			if err != nil {
				return err
			}

			return withApp(cmd, func(ctx context.Context, app *session) error {
				accounts := ledger.NewAccountIndex(app.store.Accounts(ctx))
				for i, e := range expenses {
					if err := ledger.JoinValidation(ledger.ValidateExpense(e, accounts)); err != nil {
						return fmt.Errorf("row %d: %w", i+2, err)
					}
				}
				for _, e := range expenses {
					app.store.AddExpense(ctx, e)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d expenses\n", len(expenses))
				app.audit(cmd, "", fmt.Sprintf("%d expenses from %s", len(expenses), args[0]))
				return nil
			})
		},
	}
}
