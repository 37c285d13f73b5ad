package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	simTeam    string
	simRank    int
	simRuns    int
	simWorkers int
	simSeed    int64
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a one-shot forecast and print the result",
	RunE: func(cmd *cobra.Command, args []string) error {
		standings, fixtures, err := loadSnapshot()
		if err != nil {
			return err
		}

		agg := newAggregator()
		if simRuns > 0 {
			agg.Runs = simRuns
		}
		if simWorkers > 0 {
			agg.Workers = simWorkers
		}
		if simSeed != 0 {
			agg.SetSeed(simSeed)
		}

		result, err := agg.Calculate(simTeam, simRank, standings, fixtures)
		if err != nil {
			return err
		}

		fmt.Printf("Percent chance %s finishes at or above rank %d: %.1f%%\n",
			simTeam, simRank, result.SuccessPercent)
		fmt.Printf("Average wins in successful seasons: %.1f (%d of %d runs)\n",
			result.AverageWins, result.Successes, result.Runs)
		return nil
	},
}

func init() {
	simulateCmd.Flags().StringVar(&simTeam, "team", "", "target team name")
	simulateCmd.Flags().IntVar(&simRank, "rank", 4, "target rank (1 = champions)")
	simulateCmd.Flags().IntVar(&simRuns, "runs", 0, "override the simulation run count")
	simulateCmd.Flags().IntVar(&simWorkers, "workers", 0, "override the worker count")
	simulateCmd.Flags().Int64Var(&simSeed, "seed", 0, "fixed base seed for reproducible aggregates")
	_ = simulateCmd.MarkFlagRequired("team")
}
