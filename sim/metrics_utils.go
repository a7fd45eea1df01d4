// sim/metrics_utils.go
package sim

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

type IntOrFloat64 interface {
	int | int64 | float64
}

func toSortedFloats[T IntOrFloat64](data []T) []float64 {
	xs := make([]float64, len(data))
	for i, v := range data {
		xs[i] = float64(v)
	}
	sort.Float64s(xs)
	return xs
}

// CalculatePercentile returns the p-th percentile (0-100) of data using the
// empirical CDF. Returns 0 for empty input. data is not modified.
func CalculatePercentile[T IntOrFloat64](data []T, p float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.Quantile(p/100.0, stat.Empirical, toSortedFloats(data), nil)
}

// CalculateMean returns the arithmetic mean of data, or 0 for empty input.
func CalculateMean[T IntOrFloat64](data []T) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.Mean(toSortedFloats(data), nil)
}

func sortedProcessMetrics(procs map[int]ProcessMetrics) []ProcessMetrics {
	out := make([]ProcessMetrics, 0, len(procs))
	for _, pm := range procs {
		out = append(out, pm)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
