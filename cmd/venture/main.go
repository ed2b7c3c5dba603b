package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "venture",
	Short: "Simulate the financial life of an autonomous virtual business",
	Long: `venture runs day-by-day business simulations: a financial ledger,
a protective control loop, and a scripted scenario driving them. Runs can
journal their metrics, alerts, and protective actions to CSV or SQLite.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
