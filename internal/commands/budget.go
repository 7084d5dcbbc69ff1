package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/moneytrack/internal/ledger"
	"github.com/cleared-dev/moneytrack/internal/model"
	"github.com/cleared-dev/moneytrack/internal/report"
)

func newBudgetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Plan and track monthly budgets",
	}
	cmd.AddCommand(newBudgetSetCommand(), newBudgetShowCommand(), newBudgetListCommand())
	return cmd
}

func newBudgetSetCommand() *cobra.Command {
	var (
		month        string
		total        float64
		weeklyAlerts bool
	)
	allocated := make(map[model.Category]*float64, len(model.ExpenseCategories))

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Create or replace the budget for a month",
		Long: "Create or replace the budget for a month. Spent totals already " +
			"recorded for the month are kept.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, app *session) error {
				b := model.Budget{
					Month:        month,
					TotalBudget:  total,
					WeeklyAlerts: weeklyAlerts,
				}
				if b.Month == "" {
					b.Month = app.store.CurrentMonth()
				}
				for cat, v := range allocated {
					_ = b.Categories.Set(cat, model.BudgetCategory{Allocated: *v})
				}
				if !cmd.Flags().Changed("total") {
					b.TotalBudget = b.TotalAllocated()
				}
				if err := ledger.JoinValidation(ledger.ValidateBudget(b)); err != nil {
					return err
				}
				saved := app.store.SaveBudget(ctx, b)
				app.audit(cmd, saved.ID, fmt.Sprintf("%s total %s", saved.Month, formatTHB(saved.TotalBudget)))
				printProgress(cmd.OutOrStdout(), report.BudgetProgress(saved))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "month as YYYY-MM (default current month)")
	cmd.Flags().Float64Var(&total, "total", 0, "total budget (default sum of categories)")
	cmd.Flags().BoolVar(&weeklyAlerts, "weekly-alerts", true, "remind weekly to update balances")
	for _, cat := range model.ExpenseCategories {
		allocated[cat] = cmd.Flags().Float64(string(cat), 0, fmt.Sprintf("amount allocated to %s", cat))
	}

	return cmd
}

func newBudgetShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [month]",
		Short: "Show budget progress for a month",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *session) error {
				month := app.store.CurrentMonth()
				if len(args) == 1 {
					month = args[0]
				}
				b, ok := app.store.BudgetFor(ctx, month)
				if !ok {
					return fmt.Errorf("budget for %s: %w", month, ledger.ErrNotFound)
				}
				printProgress(cmd.OutOrStdout(), report.BudgetProgress(b))
				return nil
			})
		},
	}
}

func newBudgetListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List budgets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, app *session) error {
				var rows [][]string
				for _, b := range app.store.Budgets(ctx) {
					p := report.BudgetProgress(b)
					rows = append(rows, []string{
						b.Month,
						formatTHB(p.TotalBudget),
						formatTHB(p.Spent),
						formatTHB(p.Remaining),
						fmt.Sprintf("%.0f%%", p.Percent),
					})
				}
				printTable(cmd.OutOrStdout(), []string{"Month", "Budget", "Spent", "Remaining", "Used"}, rows)
				return nil
			})
		},
	}
}
