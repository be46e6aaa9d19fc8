package main

import (
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v2"

	"cellset/internal/cellset"
	"cellset/internal/workload"
)

func benchCommand() *cli.Command {
	return &cli.Command{
		Name:  "bench",
		Usage: "run the synthetic elimination workload",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"w"},
				Value:   workload.DefaultOptions.Workers,
				Usage:   "number of concurrent workers",
				EnvVars: []string{"CELLSET_WORKERS"},
			},
			&cli.IntFlag{
				Name:    "trials",
				Aliases: []string{"n"},
				Value:   workload.DefaultOptions.Trials,
				Usage:   "number of trials",
				EnvVars: []string{"CELLSET_TRIALS"},
			},
			&cli.Uint64Flag{
				Name:    "seed",
				Value:   workload.DefaultOptions.Seed,
				Usage:   "random seed",
				EnvVars: []string{"CELLSET_SEED"},
			},
			&cli.Float64Flag{
				Name:  "density",
				Value: workload.DefaultOptions.Density,
				Usage: "probability of a cell being in a random set",
			},
			&cli.BoolFlag{
				Name:  "quiet",
				Usage: "hide the progress bar",
			},
		},
		Action: runBench,
	}
}

func runBench(c *cli.Context) error {
	trials := c.Int("trials")
	opts := []workload.Option{
		workload.WithWorkers(c.Int("workers")),
		workload.WithTrials(trials),
		workload.WithSeed(c.Uint64("seed")),
		workload.WithDensity(c.Float64("density")),
	}

	var bar *progressbar.ProgressBar
	if !c.Bool("quiet") {
		bar = progressbar.Default(int64(trials), "trials")
		opts = append(opts, workload.WithProgress(func() {
			_ = bar.Add(1)
		}))
	}

	report, err := workload.Run(c.Context, opts...)
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		return err
	}

	fmt.Printf("trials:        %d\n", report.Trials)
	fmt.Printf("covered:       %d\n", report.Covered)
	fmt.Printf("fin cells:     %d\n", report.FinCells)
	fmt.Printf("eliminations:  %d\n", report.Eliminations)
	fmt.Printf("distinct fins: %d/%d\n", report.Fins.GetCardinality(), cellset.DomainSize)
	fmt.Printf("overlap cells: %d/%d\n", report.Overlap.Count(), cellset.DomainSize)
	if report.Trials > 0 {
		fmt.Printf("per trial:     %v\n", report.Elapsed/time.Duration(report.Trials))
	}
	return nil
}
