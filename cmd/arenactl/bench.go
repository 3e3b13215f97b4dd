package main

import (
	"context"
	"fmt"
	"time"

	"github.com/joshuapare/arenakit/cmd/arenactl/logger"
	"github.com/joshuapare/arenakit/workload"
	"github.com/spf13/cobra"
)

var (
	benchAlloc   allocatorFlags
	benchOps     int
	benchSeed    int64
	benchWorkers int
	benchMaxSize int
	benchSave    string
)

func init() {
	cmd := newBenchCmd()
	benchAlloc.register(cmd)
	cmd.Flags().IntVar(&benchOps, "ops", 100_000, "Operations per worker")
	cmd.Flags().Int64Var(&benchSeed, "seed", 1, "Random seed for the generated workload")
	cmd.Flags().IntVarP(&benchWorkers, "workers", "w", 1, "Independent allocators replaying in parallel")
	cmd.Flags().IntVar(&benchMaxSize, "max-size", 4096, "Largest allocation in bytes")
	cmd.Flags().StringVar(&benchSave, "save", "", "Also write the generated trace to this file (.zst/.lz4 compress)")
	rootCmd.AddCommand(cmd)
}

func newBenchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bench",
		Short: "Run a random allocation workload",
		Long: `The bench command generates a seeded random alloc/free workload and
replays it on one or more workers. Every worker owns its own arena.

Example:
  arenactl bench
  arenactl bench --ops 1000000 --workers 8 --profile fast
  arenactl bench --seed 7 --save workload.trace.zst`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(cmd.Context())
		},
	}
}

// BenchReport is the JSON form of a bench run.
type BenchReport struct {
	Profile   string         `json:"profile"`
	Seed      int64          `json:"seed"`
	Workers   int            `json:"workers"`
	OpsEach   int            `json:"ops_per_worker"`
	Elapsed   time.Duration  `json:"elapsed_ns"`
	OpsPerSec float64        `json:"ops_per_sec"`
	Results   []ReplayReport `json:"results"`
}

func runBench(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if benchOps < 0 || benchMaxSize < 1 {
		return fmt.Errorf("--ops must be >= 0 and --max-size >= 1")
	}

	cfg, err := benchAlloc.config()
	if err != nil {
		return err
	}

	tr := workload.Generate(workload.GenerateConfig{
		Seed:    benchSeed,
		Ops:     benchOps,
		MaxSize: benchMaxSize,
		FreeAll: true,
	})
	if benchSave != "" {
		if err := workload.Save(benchSave, tr); err != nil {
			return fmt.Errorf("failed to save trace: %w", err)
		}
		printVerbose("Saved trace: %s\n", benchSave)
	}

	logger.Info("bench started", "profile", cfg.Profile.Name, "workers", benchWorkers, "ops", len(tr.Ops))
	start := time.Now()
	results, err := workload.RunParallel(ctx, benchWorkers, cfg, tr, workload.ReplayOptions{})
	elapsed := time.Since(start)
	if err != nil {
		return err
	}

	report := BenchReport{
		Profile: cfg.Profile.Name,
		Seed:    benchSeed,
		Workers: len(results),
		OpsEach: len(tr.Ops),
		Elapsed: elapsed,
	}
	total := 0
	for _, res := range results {
		report.Results = append(report.Results, newReplayReport("", cfg, res))
		total += res.Ops
	}
	if elapsed > 0 {
		report.OpsPerSec = float64(total) / elapsed.Seconds()
	}
	logger.Info("bench finished", "elapsed", elapsed, "ops_per_sec", report.OpsPerSec)

	if jsonOut {
		return printJSON(report)
	}

	printInfo("Profile:  %s, seed %d, %d worker(s), %d ops each\n",
		report.Profile, report.Seed, report.Workers, report.OpsEach)
	for i, r := range report.Results {
		printVerbose("  worker %d: cursor %d, %d reused, %d split, %d bumped, %d coalesced, %s\n",
			i, r.Cursor, r.Reused, r.Splits, r.Bumps, r.Coalesces, r.Elapsed)
	}
	if len(report.Results) > 0 {
		r := report.Results[0]
		printInfo("Arena:    cursor %d of %d, peak live %d\n", r.Cursor, r.Capacity, r.PeakLive)
		printInfo("Blocks:   %d reused, %d split, %d bumped, %d coalesced\n",
			r.Reused, r.Splits, r.Bumps, r.Coalesces)
	}
	printInfo("Elapsed:  %s (%.0f ops/sec)\n", report.Elapsed, report.OpsPerSec)
	return nil
}
