package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/moneytrack/internal/ledger"
	"github.com/cleared-dev/moneytrack/internal/report"
)

func newRecordCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "record",
		Aliases: []string{"records"},
		Short:   "Generate and review monthly records",
	}
	cmd.AddCommand(
		newRecordGenerateCommand(),
		newRecordListCommand(),
		newRecordShowCommand(),
		newRecordUpdateCommand(),
	)
	return cmd
}

func newRecordGenerateCommand() *cobra.Command {
	var (
		dryRun bool
		income float64
		notes  string
	)

	cmd := &cobra.Command{
		Use:   "generate [month]",
		Short: "Summarise a month's expenses, balances and budget use",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *session) error {
				month := app.store.CurrentMonth()
				if len(args) == 1 {
					month = args[0]
				}
				r := app.store.GenerateMonthlyRecord(ctx, month)
				if existing, ok := app.store.MonthlyRecord(ctx, month); ok {
					r.TotalIncome = existing.TotalIncome
					r.Notes = existing.Notes
				}
				if cmd.Flags().Changed("income") {
					r.TotalIncome = income
				}
				if cmd.Flags().Changed("notes") {
					r.Notes = notes
				}
				if !dryRun {
					r = app.store.AddMonthlyRecord(ctx, r)
					app.audit(cmd, r.ID, r.Month)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Record %s: spent %s, %.1f%% of budget, savings %s\n",
					r.Month, formatTHB(r.TotalExpenses), r.BudgetUtilization, formatTHB(r.TotalSavings))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print without saving")
	cmd.Flags().Float64Var(&income, "income", 0, "total income for the month")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")

	return cmd
}

func newRecordListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved monthly records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, app *session) error {
				var rows [][]string
				for _, r := range app.store.MonthlyRecords(ctx) {
					rows = append(rows, []string{
						r.Month,
						formatTHB(r.TotalIncome),
						formatTHB(r.TotalExpenses),
						formatTHB(r.TotalSavings),
						fmt.Sprintf("%.1f%%", r.BudgetUtilization),
					})
				}
				printTable(cmd.OutOrStdout(), []string{"Month", "Income", "Expenses", "Savings", "Budget used"}, rows)
				return nil
			})
		},
	}
}

func newRecordShowCommand() *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "show <month>",
		Short: "Render a saved monthly record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *session) error {
				r, ok := app.store.MonthlyRecord(ctx, args[0])
				if !ok {
					return fmt.Errorf("monthly record %s: %w", args[0], ledger.ErrNotFound)
				}
				md, err := report.MonthlyMarkdown(r)
				if err != nil {
					return err
				}
				return opts.render(cmd.OutOrStdout(), md)
			})
		},
	}

	opts.register(cmd)

	return cmd
}

func newRecordUpdateCommand() *cobra.Command {
	var (
		income float64
		notes  string
	)

	cmd := &cobra.Command{
		Use:   "update <month>",
		Short: "Set the income or notes of a saved monthly record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch ledger.RecordPatch
			if cmd.Flags().Changed("income") {
				patch.TotalIncome = &income
			}
			if cmd.Flags().Changed("notes") {
				patch.Notes = &notes
			}
			return withApp(cmd, func(ctx context.Context, app *session) error {
				if _, ok := app.store.UpdateMonthlyRecord(ctx, args[0], patch); !ok {
					return fmt.Errorf("monthly record %s: %w", args[0], ledger.ErrNotFound)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated record %s\n", args[0])
				app.audit(cmd, args[0], "")
				return nil
			})
		},
	}

	cmd.Flags().Float64Var(&income, "income", 0, "total income for the month")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")

	return cmd
}
