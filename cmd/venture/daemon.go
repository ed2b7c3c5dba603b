package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/venturekit/venture/config"
	"github.com/venturekit/venture/sched"
	"github.com/venturekit/venture/sim"
)

var (
	daemonConfigPath string
	daemonCron       string
)

func init() {
	daemonCmd.Flags().StringVarP(&daemonConfigPath, "config", "c", "./venture.yaml", "path to run configuration (YAML or JSON)")
	daemonCmd.Flags().StringVar(&daemonCron, "cron", "0 0 9 * * *", "cron spec (with seconds) for one simulated day per fire")
	rootCmd.AddCommand(daemonCmd)
}

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Advance the scenario one simulated day per cron fire",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadFromFile(daemonConfigPath)
		if err != nil {
			return err
		}

		r, err := sim.NewRunner(cfg)
		if err != nil {
			return err
		}
		defer r.Close()

		ticker, err := sched.New(daemonCron, func() (bool, error) {
			snap, err := r.Step()
			if err != nil {
				return false, err
			}
			log.Printf("[INFO] day %d: net worth %.2f, health %s", snap.Day, snap.NetWorth, snap.Health)
			return r.More(), nil
		})
		if err != nil {
			return err
		}

		ticker.Start()
		ticker.Wait()

		res := r.Finish()
		if res.Halted {
			log.Printf("[INFO] run %s halted bankrupt after %d days", res.RunID, res.Days)
		} else {
			log.Printf("[INFO] run %s finished after %d days", res.RunID, res.Days)
		}
		return nil
	},
}
