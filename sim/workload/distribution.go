package workload

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strconv"
)

// DurationSampler generates CPU or I/O durations in ticks.
type DurationSampler interface {
	// Sample returns a positive duration (>= 1).
	Sample(rng *rand.Rand) int64
}

// GaussianSampler produces clamped Gaussian durations.
type GaussianSampler struct {
	mean, stdDev float64
	min, max     int64
}

func (s *GaussianSampler) Sample(rng *rand.Rand) int64 {
	if s.min == s.max {
		return max(s.min, 1)
	}
	val := rng.NormFloat64()*s.stdDev + s.mean
	clamped := math.Min(float64(s.max), math.Max(float64(s.min), val))
	return max(int64(math.Round(clamped)), 1)
}

// ExponentialSampler produces exponentially-distributed durations.
type ExponentialSampler struct {
	mean float64
}

func (s *ExponentialSampler) Sample(rng *rand.Rand) int64 {
	val := rng.ExpFloat64() * s.mean
	return max(int64(math.Round(val)), 1)
}

// ConstantSampler always returns the same fixed value.
type ConstantSampler struct {
	value int64
}

func (s *ConstantSampler) Sample(_ *rand.Rand) int64 {
	return max(s.value, 1)
}

// EmpiricalPDFSampler samples from an empirical probability distribution
// using inverse CDF via binary search.
type EmpiricalPDFSampler struct {
	values []int64   // Sorted duration values
	cdf    []float64 // Cumulative probabilities (same length as values)
}

// NewEmpiricalPDFSampler creates a sampler from a PDF map (duration → probability).
// Automatically normalizes probabilities if they don't sum to 1.0.
func NewEmpiricalPDFSampler(pdf map[int64]float64) *EmpiricalPDFSampler {
	keys := make([]int64, 0, len(pdf))
	for k := range pdf {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	totalProb := 0.0
	for _, k := range keys {
		if pdf[k] > 0 {
			totalProb += pdf[k]
		}
	}

	values := make([]int64, 0, len(keys))
	cdf := make([]float64, 0, len(keys))
	cumulative := 0.0
	for _, k := range keys {
		p := pdf[k]
		if p <= 0 {
			continue
		}
		cumulative += p / totalProb
		values = append(values, k)
		cdf = append(cdf, cumulative)
	}
	// Ensure last CDF entry is exactly 1.0
	if len(cdf) > 0 {
		cdf[len(cdf)-1] = 1.0
	}

	return &EmpiricalPDFSampler{values: values, cdf: cdf}
}

func (s *EmpiricalPDFSampler) Sample(rng *rand.Rand) int64 {
	if len(s.values) == 0 {
		return 1
	}
	if len(s.values) == 1 {
		return max(s.values[0], 1)
	}
	u := rng.Float64()
	idx := sort.SearchFloat64s(s.cdf, u)
	if idx >= len(s.values) {
		idx = len(s.values) - 1
	}
	return max(s.values[idx], 1)
}

// requireParam checks that all required keys exist in a params map.
func requireParam(params map[string]float64, keys ...string) error {
	for _, k := range keys {
		if _, ok := params[k]; !ok {
			return fmt.Errorf("distribution requires parameter %q", k)
		}
	}
	return nil
}

// NewDurationSampler creates a DurationSampler from a DistSpec.
func NewDurationSampler(spec DistSpec) (DurationSampler, error) {
	switch spec.Type {
	case "gaussian":
		if err := requireParam(spec.Params, "mean", "std_dev", "min", "max"); err != nil {
			return nil, err
		}
		lo, hi := int64(spec.Params["min"]), int64(spec.Params["max"])
		if lo > hi {
			return nil, fmt.Errorf("gaussian min %d exceeds max %d", lo, hi)
		}
		return &GaussianSampler{
			mean:   spec.Params["mean"],
			stdDev: spec.Params["std_dev"],
			min:    lo,
			max:    hi,
		}, nil

	case "exponential":
		if err := requireParam(spec.Params, "mean"); err != nil {
			return nil, err
		}
		if spec.Params["mean"] <= 0 {
			return nil, fmt.Errorf("exponential mean must be positive, got %f", spec.Params["mean"])
		}
		return &ExponentialSampler{mean: spec.Params["mean"]}, nil

	case "constant":
		if err := requireParam(spec.Params, "value"); err != nil {
			return nil, err
		}
		return &ConstantSampler{value: int64(spec.Params["value"])}, nil

	case "empirical":
		// Inline params used as PDF (duration → probability)
		pdf := make(map[int64]float64, len(spec.Params))
		positive := false
		for k, v := range spec.Params {
			d, err := strconv.ParseInt(k, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("empirical PDF key %q is not an integer: %w", k, err)
			}
			if v < 0 {
				return nil, fmt.Errorf("empirical PDF probability for %q must be non-negative, got %f", k, v)
			}
			if v > 0 {
				positive = true
			}
			pdf[d] = v
		}
		if len(pdf) == 0 {
			return nil, fmt.Errorf("empirical distribution has no valid bins")
		}
		if !positive {
			return nil, fmt.Errorf("empirical distribution needs at least one bin with positive probability")
		}
		return NewEmpiricalPDFSampler(pdf), nil

	default:
		return nil, fmt.Errorf("unknown distribution type %q", spec.Type)
	}
}
