package workload

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/mlfq-sim/mlfq-sim/sim"
)

// GenerateProcesses creates the processes described by spec.
// Deterministic given the same spec and seed: each class draws from its own
// RNG subsystem, and IDs are assigned sequentially in class order.
func GenerateProcesses(spec *WorkloadSpec) ([]*sim.Process, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid workload spec: %w", err)
	}

	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(spec.Seed))
	procs := make([]*sim.Process, 0, spec.TotalProcesses())
	nextID := 0
	for i := range spec.Classes {
		class := &spec.Classes[i]
		classRNG := rng.ForSubsystem(sim.SubsystemClass(class.ID))

		cpuSampler, err := NewDurationSampler(class.CPUDist)
		if err != nil {
			return nil, fmt.Errorf("class %q cpu distribution: %w", class.ID, err)
		}
		var ioSampler DurationSampler
		if class.IOProbability > 0 {
			if ioSampler, err = NewDurationSampler(class.IODist); err != nil {
				return nil, fmt.Errorf("class %q io distribution: %w", class.ID, err)
			}
		}

		for n := 0; n < class.Count; n++ {
			cpu := cpuSampler.Sample(classRNG)
			var io int64
			if ioSampler != nil && classRNG.Float64() < class.IOProbability {
				io = ioSampler.Sample(classRNG)
			}
			p := sim.NewProcess(nextID, cpu, io)
			p.Class = class.ID
			procs = append(procs, p)
			nextID++
		}
		logrus.Debugf("Generated %d processes for class %q", class.Count, class.ID)
	}
	return procs, nil
}
