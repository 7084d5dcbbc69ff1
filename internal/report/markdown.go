package report

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/charmbracelet/glamour"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/cleared-dev/moneytrack/internal/currency"
	"github.com/cleared-dev/moneytrack/internal/model"
)

var funcs = template.FuncMap{
	"thb":   func(v float64) string { return currency.FormatTHB(v, true) },
	"money": currency.Format,
	"pct":   func(v float64) string { return fmt.Sprintf("%.1f%%", v) },
	"title": func(c model.Category) string {
		s := string(c)
		if s == "" {
			return s
		}
		return strings.ToUpper(s[:1]) + s[1:]
	},
}

const monthlyTemplate = `# Monthly Record {{ .Record.Month }}

| | Amount |
|:---|---:|
| Income | {{ thb .Record.TotalIncome }} |
| Expenses | {{ thb .Record.TotalExpenses }} |
| Savings | {{ thb .Record.TotalSavings }} |
| Budget used | {{ pct .Record.BudgetUtilization }} |

## Spending by category

| Category | Spent |
|:---|---:|
{{- range .Categories }}
| {{ title .Category }} | {{ thb .Amount }} |
{{- end }}
| **Total** | **{{ thb .Record.TotalExpenses }}** |
{{- if .Record.AccountBalances }}

## Account balances

| Account | Balance |
|:---|---:|
{{- range .Record.AccountBalances }}
| {{ .AccountName }} | {{ thb .Balance }} |
{{- end }}
{{- end }}
{{- if .Record.Notes }}

## Notes

{{ .Record.Notes }}
{{- end }}
`

const dashboardTemplate = `# Dashboard {{ .Month }}

| | {{ .Currency }} |
|:---|---:|
| Total balance | {{ money .TotalBalance .Currency }} |
| Total debt | {{ money .TotalDebt .Currency }} |
| Net worth | {{ money .NetWorth .Currency }} |
| Spent this week | {{ thb .WeeklySpent }} |
{{- with .Budget }}

## Budget

{{ thb .Spent }} of {{ thb .TotalBudget }} spent ({{ pct .Percent }}), {{ if .Over }}**over by {{ thb (neg .Remaining) }}**{{ else }}{{ thb .Remaining }} left{{ end }}.

| Category | Allocated | Spent | Used |
|:---|---:|---:|---:|
{{- range .BySpent }}
| {{ title .Category }}{{ if .Over }} ⚠{{ end }} | {{ thb .Allocated }} | {{ thb .Spent }} | {{ pct .Percent }} |
{{- end }}
{{- end }}
{{- if .RecentExpenses }}

## Recent expenses

| Date | Category | Description | Amount |
|:---|:---|:---|---:|
{{- range .RecentExpenses }}
| {{ .Date }} | {{ .Category }} | {{ .Description }} | {{ thb .Amount }} |
{{- end }}
{{- end }}
{{- if .WeeklyCheckDue }}

> Weekly check-in is due. Run ` + "`moneytrack weekly complete`" + `.
{{- end }}
`

var (
	monthlyTmpl   = template.Must(template.New("monthly").Funcs(funcs).Parse(monthlyTemplate))
	dashboardTmpl = template.Must(template.New("dashboard").Funcs(template.FuncMap{
		"neg": func(v float64) float64 { return -v },
	}).Funcs(funcs).Parse(dashboardTemplate))
)

type categoryAmount struct {
	Category model.Category
	Amount   float64
}

// MonthlyMarkdown renders a monthly record as a markdown document.
func MonthlyMarkdown(r model.MonthlyRecord) (string, error) {
	data := struct {
		Record     model.MonthlyRecord
		Categories []categoryAmount
	}{Record: r}
	for _, cat := range model.ExpenseCategories {
		data.Categories = append(data.Categories, categoryAmount{cat, r.CategoryBreakdown.Get(cat)})
	}

	var b strings.Builder
	if err := monthlyTmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("rendering monthly record %s: %w", r.Month, err)
	}
	return b.String(), nil
}

// DashboardMarkdown renders the dashboard as a markdown document.
func DashboardMarkdown(d Dashboard) (string, error) {
	var b strings.Builder
	if err := dashboardTmpl.Execute(&b, d); err != nil {
		return "", fmt.Errorf("rendering dashboard: %w", err)
	}
	return b.String(), nil
}

// RenderTerminal styles markdown for a terminal of the given width. style
// is a glamour standard style name such as "dark", "light" or "notty".
func RenderTerminal(md, style string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("creating renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}

var htmlRenderer = goldmark.New(goldmark.WithExtensions(extension.Table))

// RenderHTML converts markdown to an HTML fragment.
func RenderHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := htmlRenderer.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return buf.String(), nil
}
