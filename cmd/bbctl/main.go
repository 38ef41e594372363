package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vladimir-e/budgetbook-go/pkg/ledger"
)

var verbose bool

func newLogger() *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "bbctl",
		Level:           level,
	})
}

var rootCmd = &cobra.Command{
	Use:   "bbctl",
	Short: "Budget book command-line interface",
	RunE: func(cmd *cobra.Command, _ []string) error {
		// Show help when no subcommand is provided
		return cmd.Help()
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate <budget_file>",
	Short: "Check a budget file against the schema and ledger invariants",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		path := args[0]

		file, err := loadBudgetFile(path)
		if err != nil {
			return err
		}
		logger.Debug("loaded budget file",
			"accounts", len(file.Accounts),
			"categories", len(file.Categories),
			"transactions", len(file.Transactions))

		if _, err := openLedger(file); err != nil {
			fmt.Printf("%s is not a valid budget:\n", path)
			printValidationFailures(err)
			os.Exit(1)
		}

		fmt.Printf("%s is a valid budget (%d accounts, %d categories, %d transactions)\n",
			path, len(file.Accounts), len(file.Categories), len(file.Transactions))
		return nil
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary <budget_file>",
	Short: "Print the monthly budget summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		file, err := loadBudgetFile(args[0])
		if err != nil {
			return err
		}

		l, err := openLedger(file)
		if err != nil {
			fmt.Println("budget file failed validation:")
			printValidationFailures(err)
			os.Exit(1)
		}

		month, _ := cmd.Flags().GetString("month")
		if month == "" {
			month = ledger.MonthOf(ledger.Today())
		}
		logger.Debug("computing summary", "month", month)

		summary, err := l.Budget.Month(cmd.Context(), month)
		if err != nil {
			return err
		}

		printSummary(summary, file.Metadata.Currency)
		return nil
	},
}

func printSummary(summary *ledger.MonthSummary, cur ledger.Currency) {
	fmt.Printf("Budget summary for %s\n\n", summary.Month)

	for _, group := range summary.Groups {
		fmt.Printf("%s\n", group.Group)
		for _, cat := range group.Categories {
			if group.Income {
				fmt.Printf("  %-24s received %s\n", cat.Name, ledger.FormatMoney(cat.Spent, cur))
				continue
			}
			fmt.Printf("  %-24s assigned %s  spent %s  available %s\n",
				cat.Name,
				ledger.FormatMoney(cat.Assigned, cur),
				ledger.FormatMoney(cat.Spent, cur),
				ledger.FormatMoney(cat.Available, cur))
		}
		if !group.Income {
			fmt.Printf("  %-24s assigned %s  spent %s  available %s\n", "(total)",
				ledger.FormatMoney(group.Assigned, cur),
				ledger.FormatMoney(group.Spent, cur),
				ledger.FormatMoney(group.Available, cur))
		}
		fmt.Println()
	}

	if summary.Uncategorized != 0 {
		fmt.Printf("Uncategorized spend: %s\n", ledger.FormatMoney(summary.Uncategorized, cur))
	}
	fmt.Printf("Total income:        %s\n", ledger.FormatMoney(summary.TotalIncome, cur))
	fmt.Printf("Total assigned:      %s\n", ledger.FormatMoney(summary.TotalAssigned, cur))
	fmt.Printf("Available to budget: %s\n", ledger.FormatMoney(summary.AvailableToBudget, cur))
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	summaryCmd.Flags().String("month", "", "Month to summarize in YYYY-MM form (default: current month)")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(summaryCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
