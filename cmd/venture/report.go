package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/venturekit/venture/config"
	"github.com/venturekit/venture/sim"
)

var reportConfigPath string

func init() {
	reportCmd.Flags().StringVarP(&reportConfigPath, "config", "c", "./venture.yaml", "path to run configuration (YAML or JSON)")
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run a scenario and print only the composed financial report",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadFromFile(reportConfigPath)
		if err != nil {
			return err
		}

		r, err := sim.NewRunner(cfg)
		if err != nil {
			return err
		}
		defer r.Close()

		res, err := r.Run()
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res.Report)
	},
}
