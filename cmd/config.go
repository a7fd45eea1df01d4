package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// FileConfig represents the YAML config file structure.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type FileConfig struct {
	Scheduler SchedulerSection `yaml:"scheduler"`
	Run       RunSection       `yaml:"run"`
	Workload  WorkloadSection  `yaml:"workload"`
}

// SchedulerSection mirrors sim.SchedulerConfig. Zero values leave the flag
// default in place; pointer fields distinguish an explicit zero from absence.
type SchedulerSection struct {
	PriorityLevels   int    `yaml:"priority_levels"`
	BlockingQuantum  int64  `yaml:"blocking_quantum"`
	BaseQuantum      int64  `yaml:"base_quantum"`
	QuantumIncrement *int64 `yaml:"quantum_increment"`
}

type RunSection struct {
	Seed          *int64 `yaml:"seed"`
	Clock         string `yaml:"clock"`
	Tick          int64  `yaml:"tick"`
	MaxIterations *int64 `yaml:"max_iterations"`
	Trace         string `yaml:"trace"`
	ResultsPath   string `yaml:"results_path"`
}

type WorkloadSection struct {
	Spec          string   `yaml:"spec"`
	Processes     int      `yaml:"processes"`
	CPUMean       float64  `yaml:"cpu_mean"`
	IOProbability *float64 `yaml:"io_probability"`
	IOMean        float64  `yaml:"io_mean"`
}

// loadFileConfig parses a YAML config file with strict field checking.
func loadFileConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	var cfg FileConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return &cfg, nil
}

// applyFileConfig copies config file values into the flag variables.
// Flags the user set explicitly (cmd.Flags().Changed) are never overwritten.
// Absent entries are ignored, as are zero values for fields where zero is
// never meaningful.
func applyFileConfig(cmd *cobra.Command, cfg *FileConfig) {
	changed := func(name string) bool { return cmd.Flags().Changed(name) }

	if cfg.Scheduler.PriorityLevels != 0 && !changed("levels") {
		priorityLevels = cfg.Scheduler.PriorityLevels
	}
	if cfg.Scheduler.BlockingQuantum != 0 && !changed("blocking-quantum") {
		blockingQuantum = cfg.Scheduler.BlockingQuantum
	}
	if cfg.Scheduler.BaseQuantum != 0 && !changed("base-quantum") {
		baseQuantum = cfg.Scheduler.BaseQuantum
	}
	if cfg.Scheduler.QuantumIncrement != nil && !changed("quantum-increment") {
		quantumIncrement = *cfg.Scheduler.QuantumIncrement
	}

	if cfg.Run.Seed != nil && !changed("seed") {
		seed = *cfg.Run.Seed
	}
	if cfg.Run.Clock != "" && !changed("clock") {
		clockMode = cfg.Run.Clock
	}
	if cfg.Run.Tick != 0 && !changed("tick") {
		tick = cfg.Run.Tick
	}
	if cfg.Run.MaxIterations != nil && !changed("max-iterations") {
		maxIterations = *cfg.Run.MaxIterations
	}
	if cfg.Run.Trace != "" && !changed("trace") {
		traceLevel = cfg.Run.Trace
	}
	if cfg.Run.ResultsPath != "" && !changed("results-path") {
		resultsPath = cfg.Run.ResultsPath
	}

	if cfg.Workload.Spec != "" && !changed("workload-spec") {
		workloadSpec = cfg.Workload.Spec
	}
	if cfg.Workload.Processes != 0 && !changed("processes") {
		numProcesses = cfg.Workload.Processes
	}
	if cfg.Workload.CPUMean != 0 && !changed("cpu-mean") {
		cpuMean = cfg.Workload.CPUMean
	}
	if cfg.Workload.IOProbability != nil && !changed("io-probability") {
		ioProbability = *cfg.Workload.IOProbability
	}
	if cfg.Workload.IOMean != 0 && !changed("io-mean") {
		ioMean = cfg.Workload.IOMean
	}
}
