package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joshuapare/arenakit/alloc"
	"github.com/joshuapare/arenakit/cmd/arenactl/logger"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose  bool
	quiet    bool
	jsonOut  bool
	logDir   string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "arenactl",
	Short: "Inspect and exercise the arena allocator",
	Long: `arenactl prints size-class profiles, replays allocation traces and runs
random allocation benchmarks against the fixed-capacity arena allocator.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initLogging()
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().
		StringVar(&logDir, "log-dir", "", "Write JSON logs to this directory")
	rootCmd.PersistentFlags().
		StringVar(&logLevel, "log-level", "info", "Minimum log level (debug, info, warn, error)")
}

func execute() {
	err := rootCmd.Execute()
	if cerr := logger.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		printError("%v\n", err)
		os.Exit(1)
	}
}

// initLogging enables file logging when --log-dir is set.
func initLogging() error {
	level, err := logger.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	return logger.Init(logger.Options{
		Enabled: logDir != "",
		LogDir:  logDir,
		Level:   level,
	})
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// allocatorFlags are shared by commands that build allocators.
type allocatorFlags struct {
	profile  string
	capacity int
}

// defaultCapacity is generous because anonymous pages are only touched on use.
const defaultCapacity = 256 << 20

func (f *allocatorFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.profile, "profile", "p", "precise", "Size-class profile (fast, precise)")
	cmd.Flags().IntVar(&f.capacity, "capacity", defaultCapacity, "Arena capacity in bytes")
}

// config resolves the flags into an allocator config.
func (f *allocatorFlags) config() (alloc.Config, error) {
	p, err := alloc.ProfileByName(f.profile)
	if err != nil {
		return alloc.Config{}, err
	}
	capacity := f.capacity
	if capacity == 0 {
		capacity = alloc.DefaultCapacity
	}
	cfg := alloc.Config{
		Capacity: capacity,
		Profile:  &p,
	}
	// Without a log file the allocator picks its own default, which honours
	// ARENAKIT_LOG_ALLOC.
	if logger.Enabled() {
		cfg.Logger = logger.L
	}
	return cfg, nil
}
