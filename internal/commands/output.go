package commands

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/cleared-dev/moneytrack/internal/currency"
	"github.com/cleared-dev/moneytrack/internal/model"
	"github.com/cleared-dev/moneytrack/internal/report"
)

const barWidth = 20

var (
	overStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7f849c"))
	titleStyle = lipgloss.NewStyle().Bold(true)
)

func printTable(w io.Writer, headers []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No entries."))
		return
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...)
	fmt.Fprintln(w, t.Render())
}

func progressBar(percent float64) string {
	filled := int(math.Round(math.Min(math.Max(percent, 0), 100) / 100 * barWidth))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	if percent > 100 {
		return overStyle.Render(bar)
	}
	return okStyle.Render(bar)
}

func printProgress(w io.Writer, p report.Progress) {
	fmt.Fprintln(w, titleStyle.Render("Budget "+p.Month))
	fmt.Fprintf(w, "Total:     %s\n", formatTHB(p.TotalBudget))
	fmt.Fprintf(w, "Spent:     %s %s %.0f%%\n", formatTHB(p.Spent), progressBar(p.Percent), p.Percent)
	remaining := formatTHB(p.Remaining)
	if p.Over {
		remaining = overStyle.Render(remaining)
	}
	fmt.Fprintf(w, "Remaining: %s\n\n", remaining)

	rows := make([][]string, 0, len(p.Categories))
	for _, c := range p.Categories {
		left := formatTHB(c.Remaining)
		if c.Over {
			left = overStyle.Render(left)
		}
		rows = append(rows, []string{
			string(c.Category),
			formatTHB(c.Allocated),
			formatTHB(c.Spent),
			left,
			progressBar(c.Percent),
		})
	}
	printTable(w, []string{"Category", "Allocated", "Spent", "Remaining", ""}, rows)
}

func accountRows(accounts []model.Account) [][]string {
	rows := make([][]string, 0, len(accounts))
	for _, a := range accounts {
		flags := ""
		if a.IsDefault {
			flags = "default"
		}
		if !a.IsActive {
			flags = strings.TrimSpace(flags + " inactive")
		}
		rows = append(rows, []string{
			a.ID,
			a.DisplayName(),
			a.BankName,
			string(a.Type),
			currency.Format(a.Balance, a.AccountCurrency()),
			flags,
		})
	}
	return rows
}

func expenseRows(expenses []model.Expense) [][]string {
	rows := make([][]string, 0, len(expenses))
	for _, e := range expenses {
		rows = append(rows, []string{
			e.ID,
			e.Date,
			string(e.Category),
			e.Description,
			formatTHB(e.Amount),
			e.AccountID,
		})
	}
	return rows
}

func formatTHB(v float64) string {
	return currency.FormatTHB(v, true)
}

func formatRate(rate float64) string {
	return strconv.FormatFloat(rate, 'f', -1, 64)
}
