package commands_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccounts_DefaultFollowsFirstAccount(t *testing.T) {
	_, run := project(t)

	first := addAccount(t, run, "--bank", "Bangkok Bank", "--nickname", "Main", "--balance", "1000")
	second := addAccount(t, run, "--bank", "kbz", "--nickname", "Yangon", "--currency", "MMK", "--country", "MM")

	assert.Contains(t, run("account", "default"), first)

	run("account", "default", second)
	assert.Contains(t, run("account", "default"), second)

	run("account", "update", first, "--balance", "2500", "--nickname", "Salary")
	list := run("account", "list")
	assert.Contains(t, list, "Salary")
	assert.Contains(t, list, "Yangon")

	run("account", "delete", second)
	assert.Contains(t, run("account", "default"), first)
	assert.NotContains(t, run("account", "list"), "Yangon")
}

func TestAccounts_Banks(t *testing.T) {
	_, run := project(t)

	out := run("account", "banks", "--country", "MM")
	assert.Contains(t, out, "KBZ Bank")
	assert.NotContains(t, out, "Bangkok Bank")
}

func TestAccounts_RejectsUnknownType(t *testing.T) {
	dir, _ := project(t)

	out, err := runMoneytrack(t, "--config", filepath.Join(dir, "moneytrack.yaml"),
		"account", "add", "--bank", "Bangkok Bank", "--type", "piggybank")
	require.Error(t, err)
	assert.Contains(t, out, "accountType")
}

func TestExpenses_UpdateBudgetAndBalance(t *testing.T) {
	_, run := project(t)

	addAccount(t, run, "--bank", "Bangkok Bank", "--nickname", "Main", "--balance", "1000")
	run("budget", "set", "--food", "3000", "--transport", "1000")

	out := run("expense", "add", "--amount", "250", "--category", "food", "--desc", "Groceries")
	m := regexp.MustCompile(`Recorded expense (\S+):`).FindStringSubmatch(out)
	require.Len(t, m, 2, out)

	show := run("budget", "show")
	assert.Contains(t, show, "฿250.00")
	assert.Contains(t, show, "฿4,000.00")

	assert.Contains(t, run("account", "list"), "750")
	assert.Contains(t, run("expense", "list", "--limit", "5"), "Groceries")

	run("expense", "delete", m[1])
	assert.NotContains(t, run("expense", "list"), "Groceries")
	assert.Contains(t, run("account", "list"), "1,000")
}

func TestExpenses_CSVRoundTrip(t *testing.T) {
	dir, run := project(t)
	addAccount(t, run, "--bank", "Bangkok Bank", "--balance", "1000")
	run("expense", "add", "--amount", "40", "--category", "transport", "--desc", "Bus", "--date", "2025-06-02")
	run("expense", "add", "--amount", "90", "--category", "food", "--desc", "Lunch", "--date", "2025-06-03")

	csvPath := filepath.Join(dir, "expenses.csv")
	assert.Contains(t, run("expense", "export", "-o", csvPath), "Wrote 2 expenses")

	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Lunch")

	run("clear", "--yes")
	addAccount(t, run, "--bank", "Bangkok Bank", "--balance", "1000")

	// Rows reference the old account id, so loading must fail validation.
	out, err := runMoneytrack(t, "--config", filepath.Join(dir, "moneytrack.yaml"), "expense", "load", csvPath)
	require.Error(t, err)
	assert.Contains(t, out, "accountId")
}

func TestExpenses_ImportDirectory(t *testing.T) {
	dir, run := project(t)
	addAccount(t, run, "--bank", "Bangkok Bank", "--nickname", "Main", "--balance", "1000")

	src, err := os.ReadFile(filepath.Join("..", "importer", "testdata", "generic.csv"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "import", "june.csv"), src, 0o644))

	out := run("expense", "import")
	assert.Contains(t, out, "june.csv: 3 expenses, 1 income, 0 skipped")

	_, err = os.Stat(filepath.Join(dir, "import", "processed", "june.csv"))
	assert.NoError(t, err)
	assert.Contains(t, run("expense", "import"), "No CSV files")

	list := run("expense", "list", "--month", "2025-06")
	assert.Contains(t, list, "Noodle stall")
	assert.Contains(t, list, "others")
}

func TestIncomeAndExchange(t *testing.T) {
	_, run := project(t)
	thb := addAccount(t, run, "--bank", "Bangkok Bank", "--nickname", "Baht", "--balance", "10000")
	usdt := addAccount(t, run, "--bank", "Binance", "--type", "crypto", "--currency", "USDT", "--nickname", "Stable")

	assert.Contains(t, run("income", "add", "--amount", "2500", "--desc", "Salary"), "Recorded income")
	assert.Contains(t, run("income", "list"), "Salary")

	run("rates", "set", "THB", "USDT", "0.03")
	assert.Contains(t, run("rates", "show"), "0.03")

	out := run("exchange", "add", "--from", thb, "--to", usdt, "--amount", "1000", "--fees", "100")
	assert.Contains(t, out, "Exchanged")
	assert.Contains(t, run("exchange", "list"), thb)
}

func TestWeeklyCheckIn(t *testing.T) {
	_, run := project(t)
	account := addAccount(t, run, "--bank", "Bangkok Bank", "--balance", "1000")
	run("budget", "set", "--total", "5000", "--food", "2000")

	assert.Contains(t, run("weekly", "status"), "Check-in due")
	assert.Contains(t, run("weekly", "watch", "--once"), "Weekly Budget Check-in")

	out := run("weekly", "complete", "--balance", account+"=1200")
	assert.Contains(t, out, "1 accounts updated")

	assert.Contains(t, run("weekly", "status"), "No check-in due")
	assert.Contains(t, run("weekly", "watch", "--once"), "No check-in due")
	assert.Contains(t, run("account", "list"), "1,200")
	assert.Contains(t, run("weekly", "history"), account)
}

func TestWeeklyComplete_RejectsBadBalance(t *testing.T) {
	dir, _ := project(t)
	_, err := runMoneytrack(t, "--config", filepath.Join(dir, "moneytrack.yaml"), "weekly", "complete", "--balance", "nope")
	assert.Error(t, err)
}

func TestMonthlyRecords(t *testing.T) {
	_, run := project(t)
	addAccount(t, run, "--bank", "Bangkok Bank", "--balance", "1000")
	run("budget", "set", "--month", "2025-06", "--total", "1000", "--food", "1000")
	run("expense", "add", "--amount", "250", "--category", "food", "--date", "2025-06-10")

	assert.Contains(t, run("record", "generate", "2025-06", "--notes", "quiet month"), "Record 2025-06")
	run("record", "update", "2025-06", "--income", "30000")
	assert.Contains(t, run("record", "list"), "2025-06")

	md := run("record", "show", "2025-06", "--format", "markdown")
	assert.Contains(t, md, "2025-06")
	assert.Contains(t, md, "quiet month")

	html := run("record", "show", "2025-06", "--format", "html")
	assert.Contains(t, html, "<table>")

	assert.Contains(t, run("record", "show", "2025-06"), "2025-06")
}

func TestDashboardJSON(t *testing.T) {
	_, run := project(t)
	addAccount(t, run, "--bank", "Bangkok Bank", "--balance", "1000")
	addAccount(t, run, "--bank", "Kasikorn Bank (K+)", "--type", "credit", "--balance=-300")

	var d struct {
		TotalBalance float64 `json:"totalBalance"`
		TotalDebt    float64 `json:"totalDebt"`
		NetWorth     float64 `json:"netWorth"`
	}
	require.NoError(t, json.Unmarshal([]byte(run("dashboard", "--json")), &d))
	assert.Equal(t, 1000.0, d.TotalBalance)
	assert.Equal(t, 300.0, d.TotalDebt)
	assert.Equal(t, 700.0, d.NetWorth)

	assert.Contains(t, run("dashboard", "--format", "markdown"), "Net worth")
}

func TestExportImportClear(t *testing.T) {
	dir, run := project(t)
	addAccount(t, run, "--bank", "Bangkok Bank", "--nickname", "Keep me", "--balance", "1000")

	backup := filepath.Join(dir, "backup.json")
	run("export", "-o", backup)

	_, err := runMoneytrack(t, "--config", filepath.Join(dir, "moneytrack.yaml"), "clear")
	require.Error(t, err)

	run("clear", "--yes")
	assert.Contains(t, run("account", "list"), "No entries")

	run("import", backup)
	assert.Contains(t, run("account", "list"), "Keep me")

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("[1,2,3]"), 0o644))
	_, err = runMoneytrack(t, "--config", filepath.Join(dir, "moneytrack.yaml"), "import", bad)
	assert.Error(t, err)
}

func TestDoctor(t *testing.T) {
	dir, run := project(t)
	addAccount(t, run, "--bank", "Bangkok Bank")
	assert.Contains(t, run("doctor"), "money-tracker-accounts")

	corrupt := filepath.Join(dir, "data", "money-tracker-accounts.json")
	require.NoError(t, os.WriteFile(corrupt, []byte("{not json"), 0o644))

	out, err := runMoneytrack(t, "--config", filepath.Join(dir, "moneytrack.yaml"), "doctor")
	require.Error(t, err)
	assert.Contains(t, out, "1 collections failed to load")
}

func TestActivityLog(t *testing.T) {
	_, run := project(t)
	account := addAccount(t, run, "--bank", "Bangkok Bank", "--balance", "1000")
	run("expense", "add", "--amount", "80", "--category", "food")

	out := run("log")
	assert.Contains(t, out, "account add")
	assert.Contains(t, out, account)
	assert.Contains(t, out, "expense add")

	assert.NotContains(t, run("log", "-n", "1"), "account add")

	expenses := run("log", "--action", "expense")
	assert.Contains(t, expenses, "expense add")
	assert.NotContains(t, expenses, "account add")
	assert.Contains(t, run("log", "--kind", "account"), account)
	assert.Contains(t, run("log", "--entity", account), "account add")
	assert.Contains(t, run("log", "--since", "2999-01-01"), "No entries.")

	summary := run("log", "--summary")
	assert.Contains(t, summary, "account add")
	assert.Contains(t, summary, "expense add")
	assert.Contains(t, summary, "Count")
}

func TestSnapshots(t *testing.T) {
	dir, run := project(t, "--git")
	assert.Contains(t, run("snapshot", "--list", "5"), "init: moneytrack project")

	addAccount(t, run, "--bank", "Bangkok Bank", "--balance", "1000")
	assert.Contains(t, run("snapshot", "-m", "after first account"), "Snapshot ")
	assert.Contains(t, run("snapshot"), "Nothing changed")
	assert.Contains(t, run("snapshot", "--list", "5"), "after first account")
	assert.Contains(t, run("log"), "snapshot")

	_, err := os.Stat(filepath.Join(dir, ".git"))
	assert.NoError(t, err)
}

func TestSnapshots_RequireGit(t *testing.T) {
	dir, _ := project(t)
	out, err := runMoneytrack(t, "--config", filepath.Join(dir, "moneytrack.yaml"), "snapshot")
	require.Error(t, err)
	assert.Contains(t, out, "not tracked in git")
}
