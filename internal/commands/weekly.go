package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/moneytrack/internal/id"
	"github.com/cleared-dev/moneytrack/internal/notify"
)

func newWeeklyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weekly",
		Short: "Weekly balance check-ins",
	}
	cmd.AddCommand(
		newWeeklyStatusCommand(),
		newWeeklyCompleteCommand(),
		newWeeklyHistoryCommand(),
		newWeeklyWatchCommand(),
	)
	return cmd
}

func newWeeklyStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether a weekly check-in is due",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, app *session) error {
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Week of %s\n", id.WeekStart(app.store.Now()))
				fmt.Fprintf(out, "Spent this week: %s\n", formatTHB(app.store.WeeklySpent(ctx)))
				if budget, ok := app.store.CurrentBudget(ctx); ok {
					fmt.Fprintf(out, "Budget remaining: %s\n", formatTHB(budget.Remaining()))
				}
				if app.store.WeeklyCheckDue(ctx) {
					fmt.Fprintln(out, overStyle.Render("Check-in due: update your account balances."))
				} else {
					fmt.Fprintln(out, "No check-in due.")
				}
				return nil
			})
		},
	}
}

// parseBalances turns "id=amount" pairs into a balance map.
func parseBalances(pairs []string) (map[string]float64, error) {
	balances := make(map[string]float64, len(pairs))
	for _, p := range pairs {
		accountID, value, ok := strings.Cut(p, "=")
		if !ok || accountID == "" {
			return nil, fmt.Errorf("invalid balance %q, want <account-id>=<amount>", p)
		}
		amount, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid balance for %s: %w", accountID, err)
		}
		balances[accountID] = amount
	}
	return balances, nil
}

func newWeeklyCompleteCommand() *cobra.Command {
	var pairs []string

	cmd := &cobra.Command{
		Use:   "complete",
		Short: "Record this week's check-in with reconciled balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			balances, err := parseBalances(pairs)
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, app *session) error {
				alert := app.store.CompleteWeeklyCheck(ctx, balances)
				fmt.Fprintf(cmd.OutOrStdout(), "Completed check-in for week of %s (%d accounts updated, %s remaining)\n",
					alert.WeekOf, len(alert.AccountsUpdated), formatTHB(alert.BudgetRemaining))
				app.audit(cmd, alert.ID, alert.WeekOf)
				return nil
			})
		},
	}

	cmd.Flags().StringArrayVar(&pairs, "balance", nil, "reconciled balance as <account-id>=<amount>, repeatable")

	return cmd
}

func newWeeklyHistoryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List past check-ins",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, app *session) error {
				var rows [][]string
				for _, a := range app.store.WeeklyAlerts(ctx) {
					rows = append(rows, []string{
						a.WeekOf,
						formatTHB(a.WeeklySpent),
						formatTHB(a.BudgetRemaining),
						strings.Join(a.AccountsUpdated, ", "),
					})
				}
				printTable(cmd.OutOrStdout(), []string{"Week", "Spent", "Remaining", "Updated"}, rows)
				return nil
			})
		},
	}
}

// notifierFor returns the Telegram notifier when configured, else one
// that prints to the command's output.
func notifierFor(cmd *cobra.Command, a *session) (notify.Notifier, error) {
	if a.cfg.Telegram.Enabled() {
		return notify.NewTelegram(a.cfg.Telegram.Token, a.cfg.Telegram.ChatID)
	}
	return notify.Writer{W: cmd.OutOrStdout()}, nil
}

func newWeeklyWatchCommand() *cobra.Command {
	var (
		interval time.Duration
		once     bool
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Send a reminder whenever a weekly check-in becomes due",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, app *session) error {
				notifier, err := notifierFor(cmd, app)
				if err != nil {
					return err
				}
				watcher := notify.NewWatcher(app.store, notifier, interval)
				if once {
					sent, err := watcher.Check(ctx)
					if err != nil {
						return err
					}
					if !sent {
						fmt.Fprintln(cmd.OutOrStdout(), "No check-in due.")
					}
					return nil
				}

				ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
				defer stop()
				watcher.Run(ctx)
				return nil
			})
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", time.Hour, "how often to check")
	cmd.Flags().BoolVar(&once, "once", false, "check once and exit")

	return cmd
}
