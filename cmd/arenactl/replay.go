package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joshuapare/arenakit/alloc"
	"github.com/joshuapare/arenakit/cmd/arenactl/logger"
	"github.com/joshuapare/arenakit/workload"
	"github.com/spf13/cobra"
)

var (
	replayAlloc       allocatorFlags
	replayVerify      bool
	replayVerifyEvery int
)

func init() {
	cmd := newReplayCmd()
	replayAlloc.register(cmd)
	cmd.Flags().BoolVar(&replayVerify, "verify", false, "Check payload contents and arena structure")
	cmd.Flags().
		IntVar(&replayVerifyEvery, "verify-every", 1000, "With --verify, check the arena structure every N operations")
	rootCmd.AddCommand(cmd)
}

func newReplayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "replay <trace>",
		Short: "Replay an allocation trace",
		Long: `The replay command runs a trace of alloc/free operations against a fresh
arena and reports what the allocator did. Traces ending in .zst or .lz4 are
decompressed on the fly.

Trace format, one operation per line:
  a <id> <size>   allocate
  f <id>          free

Example:
  arenactl replay app.trace
  arenactl replay app.trace.zst --profile fast --verify
  arenactl replay app.trace --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd.Context(), args)
		},
	}
}

// ReplayReport is the JSON form of a replay.
type ReplayReport struct {
	Trace     string        `json:"trace"`
	Profile   string        `json:"profile"`
	Capacity  int           `json:"capacity"`
	Ops       int           `json:"ops"`
	Allocs    int           `json:"allocs"`
	Frees     int           `json:"frees"`
	Bytes     int64         `json:"bytes"`
	PeakLive  int           `json:"peak_live"`
	Leaked    uint64        `json:"leaked"`
	Cursor    int           `json:"cursor"`
	Splits    int           `json:"splits"`
	Coalesces int           `json:"coalesces"`
	Bumps     int           `json:"bumps"`
	Reused    int           `json:"reused"`
	Verified  bool          `json:"verified"`
	Elapsed   time.Duration `json:"elapsed_ns"`
}

func runReplay(ctx context.Context, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	path := args[0]

	cfg, err := replayAlloc.config()
	if err != nil {
		return err
	}

	printVerbose("Loading trace: %s\n", path)
	tr, err := workload.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load trace: %w", err)
	}
	logger.Info("trace loaded", "path", path, "ops", len(tr.Ops))

	a, err := alloc.New(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	opts := workload.ReplayOptions{}
	if replayVerify {
		opts.Check = true
		opts.VerifyEvery = replayVerifyEvery
	}

	res, err := workload.Replay(ctx, a, tr, opts)
	if err != nil {
		logger.Error("replay failed", "path", path, "op", res.Ops, "error", err)
		return fmt.Errorf("replay failed after %d ops: %w", res.Ops, err)
	}
	if replayVerify {
		if err := a.Verify(); err != nil {
			return fmt.Errorf("arena verification failed: %w", err)
		}
	}
	logger.Info("replay finished", "path", path, "ops", res.Ops, "elapsed", res.Elapsed)

	report := newReplayReport(path, cfg, res)
	report.Verified = replayVerify

	if jsonOut {
		return printJSON(report)
	}

	printInfo("Trace:      %s\n", report.Trace)
	printInfo("Profile:    %s (capacity %d)\n", report.Profile, report.Capacity)
	printInfo("Operations: %d (%d allocs, %d frees)\n", report.Ops, report.Allocs, report.Frees)
	printInfo("Bytes:      %d requested, cursor at %d\n", report.Bytes, report.Cursor)
	printInfo("Live:       peak %d, leaked %d\n", report.PeakLive, report.Leaked)
	printInfo("Blocks:     %d reused, %d split, %d bumped, %d coalesced\n",
		report.Reused, report.Splits, report.Bumps, report.Coalesces)
	printInfo("Elapsed:    %s\n", report.Elapsed)
	if report.Verified {
		printInfo("Verified:   ok\n")
	}
	if verbose && !quiet {
		fmt.Fprintln(os.Stdout)
		a.PrintStats(os.Stdout)
	}
	return nil
}

func newReplayReport(path string, cfg alloc.Config, res workload.Result) ReplayReport {
	r := ReplayReport{
		Trace:    path,
		Profile:  cfg.Profile.Name,
		Capacity: cfg.Capacity,
		Ops:      res.Ops,
		Allocs:   res.Allocs,
		Frees:    res.Frees,
		Bytes:    res.Bytes,
		PeakLive: res.PeakLive,
		Elapsed:  res.Elapsed,
	}
	if res.Live != nil {
		r.Leaked = res.Live.GetCardinality()
	}
	if s := res.Stats; s != nil {
		r.Cursor = s.Cursor
		r.Splits = s.SplitCount
		r.Coalesces = s.CoalesceForward
		r.Bumps = s.BumpCount
		r.Reused = s.HeadHits + s.FirstFitHits + s.BestFitHits
	}
	return r
}
