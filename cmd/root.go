package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/mlfq-sim/mlfq-sim/sim"
	"github.com/mlfq-sim/mlfq-sim/sim/trace"
	"github.com/mlfq-sim/mlfq-sim/sim/workload"
)

var (
	// CLI flags for the scheduler
	seed             int64  // Seed for random process generation
	logLevel         string // Log verbosity level
	configPath       string // Optional YAML defaults file
	priorityLevels   int    // Number of CPU tiers
	blockingQuantum  int64  // Blocking queue time slice (ticks)
	baseQuantum      int64  // Tier 0 time slice (ticks)
	quantumIncrement int64  // Extra ticks per lower tier
	clockMode        string // "step" (deterministic) or "wall"
	tick             int64  // Ticks per iteration in step mode
	maxIterations    int64  // Iteration ceiling (0 = unbounded)
	traceLevel       string // Trace verbosity: none, dispatch, transitions
	resultsPath      string // File to write metrics JSON to

	// CLI flags for process generation
	numProcesses  int     // Number of processes
	cpuMean       float64 // Mean CPU time per process (ticks)
	ioProbability float64 // Probability that a process needs I/O
	ioMean        float64 // Mean I/O time for blocking processes (ticks)
	workloadSpec  string  // Optional YAML workload spec (overrides generation flags)
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "mlfq-sim",
	Short: "Multi-level feedback queue process scheduler simulator",
}

// runOptions carries everything a simulation run needs, after flags and the
// config file have been merged.
type runOptions struct {
	Scheduler     sim.SchedulerConfig
	Workload      *workload.WorkloadSpec
	ClockMode     string
	Tick          int64
	MaxIterations int64
	TraceLevel    trace.TraceLevel
	ResultsPath   string
}

// runCmd executes the simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the scheduler simulation",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if configPath != "" {
			cfg, err := loadFileConfig(configPath)
			if err != nil {
				logrus.Fatalf("Failed to load config: %v", err)
			}
			applyFileConfig(cmd, cfg)
		}

		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Invalid trace level: %s", traceLevel)
		}

		spec, err := buildWorkload(cmd)
		if err != nil {
			logrus.Fatalf("unable to read workload spec; %v", err)
		}

		opts := runOptions{
			Scheduler: sim.SchedulerConfig{
				PriorityLevels:   priorityLevels,
				BlockingQuantum:  blockingQuantum,
				BaseQuantum:      baseQuantum,
				QuantumIncrement: quantumIncrement,
			},
			Workload:      spec,
			ClockMode:     clockMode,
			Tick:          tick,
			MaxIterations: maxIterations,
			TraceLevel:    trace.TraceLevel(traceLevel),
			ResultsPath:   resultsPath,
		}

		logrus.Infof("Starting simulation with %d levels, quanta base=%d inc=%d, blocking=%d, %d processes",
			priorityLevels, baseQuantum, quantumIncrement, blockingQuantum, spec.TotalProcesses())

		if err := runSimulation(opts, os.Stdout); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		logrus.Info("Simulation complete.")
	},
}

// buildWorkload returns the workload for a run: the --workload-spec file if
// given, otherwise a single class built from the generation flags. An
// explicitly set --seed overrides the seed stored in the spec file.
func buildWorkload(cmd *cobra.Command) (*workload.WorkloadSpec, error) {
	if workloadSpec == "" {
		return workload.SingleClassSpec(seed, numProcesses, cpuMean, ioProbability, ioMean), nil
	}
	spec, err := workload.LoadWorkloadSpec(workloadSpec)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("seed") {
		logrus.Infof("--seed %d overrides workload spec seed %d", seed, spec.Seed)
		spec.Seed = seed
	}
	return spec, nil
}

// newClock builds the scheduler time source for the given mode.
func newClock(mode string, tick int64) (sim.Clock, error) {
	switch mode {
	case "", "step":
		if tick <= 0 {
			return nil, fmt.Errorf("tick must be positive in step mode, got %d", tick)
		}
		return sim.NewStepClock(tick), nil
	case "wall":
		return sim.NewWallClock(), nil
	default:
		return nil, fmt.Errorf("unknown clock mode %q; valid: step, wall", mode)
	}
}

// runSimulation generates the workload, runs the scheduler to completion and
// writes the results to out.
func runSimulation(opts runOptions, out io.Writer) error {
	procs, err := workload.GenerateProcesses(opts.Workload)
	if err != nil {
		return err
	}
	clock, err := newClock(opts.ClockMode, opts.Tick)
	if err != nil {
		return err
	}

	schedOpts := []sim.Option{sim.WithClock(clock), sim.WithMaxIterations(opts.MaxIterations)}
	var st *trace.SimulationTrace
	if opts.TraceLevel != "" && opts.TraceLevel != trace.TraceLevelNone {
		st = trace.NewSimulationTrace(trace.TraceConfig{Level: opts.TraceLevel})
		schedOpts = append(schedOpts, sim.WithTrace(st))
	}

	s, err := sim.NewScheduler(opts.Scheduler, schedOpts...)
	if err != nil {
		return err
	}
	for _, p := range procs {
		if err := s.AddNewProcess(p); err != nil {
			return err
		}
	}
	if err := s.Run(); err != nil {
		return err
	}

	if err := s.Metrics().SaveResults(out, opts.ResultsPath); err != nil {
		return err
	}
	if st != nil {
		printTraceSummary(out, trace.Summarize(st))
	}
	return nil
}

func printTraceSummary(out io.Writer, summary *trace.TraceSummary) {
	fmt.Fprintln(out, "=== Trace Summary ===")
	fmt.Fprintf(out, "Iterations           : %d\n", summary.Iterations)
	fmt.Fprintf(out, "Blocking Iterations  : %d\n", summary.BlockingWork)
	fmt.Fprintf(out, "Idle CPU Iterations  : %d\n", summary.IdleCPUIterations)
	levels := make([]int, 0, len(summary.LevelDispatches))
	for level := range summary.LevelDispatches {
		levels = append(levels, level)
	}
	sort.Ints(levels)
	for _, level := range levels {
		fmt.Fprintf(out, "Level %d Dispatches   : %d\n", level, summary.LevelDispatches[level])
	}
	fmt.Fprintf(out, "Demotions            : %d\n", summary.Demotions)
	fmt.Fprintf(out, "Blocks / Readies     : %d / %d\n", summary.Blocks, summary.Readies)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	defaults := sim.DefaultSchedulerConfig()

	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for random process generation")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML config file; explicitly set flags take precedence")

	// Scheduler configs
	runCmd.Flags().IntVar(&priorityLevels, "levels", defaults.PriorityLevels, "Number of CPU priority levels")
	runCmd.Flags().Int64Var(&blockingQuantum, "blocking-quantum", defaults.BlockingQuantum, "Blocking queue time slice (ticks)")
	runCmd.Flags().Int64Var(&baseQuantum, "base-quantum", defaults.BaseQuantum, "Time slice of the highest-priority level (ticks)")
	runCmd.Flags().Int64Var(&quantumIncrement, "quantum-increment", defaults.QuantumIncrement, "Extra time slice per lower level (ticks)")
	runCmd.Flags().StringVar(&clockMode, "clock", "step", "Clock mode: step (deterministic) or wall")
	runCmd.Flags().Int64Var(&tick, "tick", 5, "Ticks elapsed per iteration in step clock mode")
	runCmd.Flags().Int64Var(&maxIterations, "max-iterations", 0, "Stop with an error after this many iterations (0 = unbounded)")
	runCmd.Flags().StringVar(&traceLevel, "trace", "none", "Trace level (none, dispatch, transitions)")
	runCmd.Flags().StringVar(&resultsPath, "results-path", "", "File to write metrics JSON to")

	// Process generation configs
	runCmd.Flags().IntVar(&numProcesses, "processes", 100, "Number of processes")
	runCmd.Flags().Float64Var(&cpuMean, "cpu-mean", 200, "Mean CPU time per process (ticks)")
	runCmd.Flags().Float64Var(&ioProbability, "io-probability", 0.3, "Probability that a process needs I/O before running")
	runCmd.Flags().Float64Var(&ioMean, "io-mean", 100, "Mean I/O time for blocking processes (ticks)")
	runCmd.Flags().StringVar(&workloadSpec, "workload-spec", "", "Path to a YAML workload spec (overrides generation flags)")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
