package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/venturekit/venture/config"
	"github.com/venturekit/venture/sim"
)

var runConfigPath string

func init() {
	runCmd.Flags().StringVarP(&runConfigPath, "config", "c", "./venture.yaml", "path to run configuration (YAML or JSON)")
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute a scripted scenario and print the run result",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadFromFile(runConfigPath)
		if err != nil {
			return err
		}

		r, err := sim.NewRunner(cfg)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := r.Close(); cerr != nil {
				log.Printf("[ERROR] close journal: %v", cerr)
			}
		}()

		res, err := r.Run()
		if err != nil {
			return err
		}

		if res.Halted {
			log.Printf("[INFO] run %s halted bankrupt after %d days", res.RunID, res.Days)
		} else {
			log.Printf("[INFO] run %s completed %d days", res.RunID, res.Days)
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		return nil
	},
}
