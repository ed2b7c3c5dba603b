package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/venturekit/venture/journal"
)

var journalDBPath string

func init() {
	journalCmd.PersistentFlags().StringVar(&journalDBPath, "db", "./venture.sqlite", "path to SQLite journal DB")
	journalCmd.AddCommand(journalRunsCmd, journalSnapshotsCmd, journalAlertsCmd, journalActionsCmd)
	rootCmd.AddCommand(journalCmd)
}

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query a SQLite run journal",
}

func withJournal(fn func(*journal.SQLite) error) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()
	return fn(j)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

var journalRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List run ids present in the journal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withJournal(func(j *journal.SQLite) error {
			runs, err := j.ListRuns()
			if err != nil {
				return err
			}
			for _, id := range runs {
				fmt.Println(id)
			}
			return nil
		})
	},
}

var journalSnapshotsCmd = &cobra.Command{
	Use:   "snapshots <run_id>",
	Short: "Print a run's daily metrics snapshots",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withJournal(func(j *journal.SQLite) error {
			recs, err := j.ListSnapshots(args[0])
			if err != nil {
				return err
			}
			return printJSON(recs)
		})
	},
}

var journalAlertsCmd = &cobra.Command{
	Use:   "alerts <run_id>",
	Short: "Print a run's alerts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withJournal(func(j *journal.SQLite) error {
			recs, err := j.ListAlerts(args[0])
			if err != nil {
				return err
			}
			return printJSON(recs)
		})
	},
}

var journalActionsCmd = &cobra.Command{
	Use:   "actions <run_id>",
	Short: "Print a run's protective actions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withJournal(func(j *journal.SQLite) error {
			recs, err := j.ListActions(args[0])
			if err != nil {
				return err
			}
			return printJSON(recs)
		})
	},
}
