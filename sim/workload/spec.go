package workload

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// WorkloadSpec is the top-level workload configuration.
// Loaded from YAML via LoadWorkloadSpec(path).
type WorkloadSpec struct {
	Version string      `yaml:"version"`
	Seed    int64       `yaml:"seed"`
	Classes []ClassSpec `yaml:"classes"`
}

// ClassSpec defines a group of processes sharing the same time distributions.
type ClassSpec struct {
	ID            string   `yaml:"id"`
	Count         int      `yaml:"count"`
	CPUDist       DistSpec `yaml:"cpu_distribution"`
	IOProbability float64  `yaml:"io_probability"`
	IODist        DistSpec `yaml:"io_distribution,omitempty"`
}

// DistSpec parameterizes a duration distribution (in ticks).
type DistSpec struct {
	Type   string             `yaml:"type"`
	Params map[string]float64 `yaml:"params,omitempty"`
}

// Valid value registries.
var (
	validDistTypes = map[string]bool{
		"gaussian": true, "exponential": true, "constant": true, "empirical": true,
	}
	validVersions = map[string]bool{
		"": true, "1": true,
	}
)

// LoadWorkloadSpec reads and parses a YAML workload specification file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadWorkloadSpec(path string) (*WorkloadSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading workload spec: %w", err)
	}
	var spec WorkloadSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing workload spec: %w", err)
	}
	if spec.Version == "" {
		logrus.Warnf("workload spec %s has no version; assuming \"1\"", path)
		spec.Version = "1"
	}
	return &spec, nil
}

// Validate checks that all fields in the spec are valid.
func (s *WorkloadSpec) Validate() error {
	if !validVersions[s.Version] {
		return fmt.Errorf("unsupported workload spec version %q; valid: 1", s.Version)
	}
	if len(s.Classes) == 0 {
		return fmt.Errorf("at least one class required")
	}
	seen := make(map[string]bool, len(s.Classes))
	for i := range s.Classes {
		c := &s.Classes[i]
		if err := validateClass(c, i); err != nil {
			return err
		}
		if seen[c.ID] {
			return fmt.Errorf("class[%d]: duplicate id %q", i, c.ID)
		}
		seen[c.ID] = true
	}
	return nil
}

// TotalProcesses returns the number of processes the spec generates.
func (s *WorkloadSpec) TotalProcesses() int {
	total := 0
	for _, c := range s.Classes {
		total += c.Count
	}
	return total
}

func validateClass(c *ClassSpec, idx int) error {
	prefix := fmt.Sprintf("class[%d]", idx)
	if c.ID == "" {
		return fmt.Errorf("%s: id must not be empty", prefix)
	}
	if c.Count <= 0 {
		return fmt.Errorf("%s: count must be positive, got %d", prefix, c.Count)
	}
	if math.IsNaN(c.IOProbability) || c.IOProbability < 0 || c.IOProbability > 1 {
		return fmt.Errorf("%s: io_probability must be in [0, 1], got %f", prefix, c.IOProbability)
	}
	if err := validateDistSpec(prefix+".cpu_distribution", &c.CPUDist); err != nil {
		return err
	}
	if c.IOProbability > 0 {
		if err := validateDistSpec(prefix+".io_distribution", &c.IODist); err != nil {
			return err
		}
	}
	return nil
}

func validateDistSpec(prefix string, d *DistSpec) error {
	if !validDistTypes[d.Type] {
		return fmt.Errorf("%s: unknown distribution type %q; valid: gaussian, exponential, constant, empirical", prefix, d.Type)
	}
	for name, val := range d.Params {
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return fmt.Errorf("%s.params.%s must be a finite number, got %f", prefix, name, val)
		}
	}
	if _, err := NewDurationSampler(*d); err != nil {
		return fmt.Errorf("%s: %w", prefix, err)
	}
	return nil
}

// SingleClassSpec builds a one-class spec with exponentially distributed CPU
// and I/O times. Used when no workload spec file is provided.
func SingleClassSpec(seed int64, count int, cpuMean, ioProbability, ioMean float64) *WorkloadSpec {
	return &WorkloadSpec{
		Version: "1",
		Seed:    seed,
		Classes: []ClassSpec{{
			ID:            "default",
			Count:         count,
			CPUDist:       DistSpec{Type: "exponential", Params: map[string]float64{"mean": cpuMean}},
			IOProbability: ioProbability,
			IODist:        DistSpec{Type: "exponential", Params: map[string]float64{"mean": ioMean}},
		}},
	}
}
