package commands

import (
	"github.com/spf13/cobra"

	"github.com/cleared-dev/moneytrack/internal/buildinfo"
)

const defaultConfigFile = "moneytrack.yaml"

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "moneytrack",
		Short:   "Personal finance ledger with monthly budgets and weekly check-ins",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("config", defaultConfigFile, "path to moneytrack.yaml")

	rootCmd.AddCommand(
		newInitCommand(),
		newAccountCommand(),
		newBudgetCommand(),
		newExpenseCommand(),
		newIncomeCommand(),
		newExchangeCommand(),
		newRatesCommand(),
		newWeeklyCommand(),
		newRecordCommand(),
		newDashboardCommand(),
		newExportCommand(),
		newImportCommand(),
		newClearCommand(),
		newServeCommand(),
		newDoctorCommand(),
		newSnapshotCommand(),
		newLogCommand(),
	)

	return rootCmd
}
