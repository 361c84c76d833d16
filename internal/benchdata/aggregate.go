package benchdata

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Policy decides how rows sharing a Test/Allocator pair collapse into one bar.
type Policy string

const (
	PolicyMean   Policy = "mean"
	PolicyMedian Policy = "median"
	PolicyMin    Policy = "min"
	PolicyMax    Policy = "max"
	PolicySum    Policy = "sum"
)

var policies = []Policy{PolicyMean, PolicyMedian, PolicyMin, PolicyMax, PolicySum}

// ParsePolicy accepts a policy name case-insensitively. Empty means mean.
func ParsePolicy(name string) (Policy, error) {
	if strings.TrimSpace(name) == "" {
		return PolicyMean, nil
	}
	p := Policy(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range policies {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown aggregation policy %q (want one of %v)", name, policies)
}

// Grid is one metric aggregated per Test (row) and Allocator (column),
// both in first-appearance order. Absent pairs are NaN.
type Grid struct {
	Metric     Metric
	Tests      []string
	Allocators []string
	Values     [][]float64
}

func (g *Grid) Lookup(test, allocator string) (float64, bool) {
	ti := indexOf(g.Tests, test)
	ai := indexOf(g.Allocators, allocator)
	if ti < 0 || ai < 0 {
		return math.NaN(), false
	}
	v := g.Values[ti][ai]
	return v, !math.IsNaN(v)
}

// Aggregate groups the table by Test/Allocator and reduces metric with policy.
// Missing measurements are skipped; a pair with nothing left stays absent.
func (t *Table) Aggregate(metric Metric, policy Policy) (*Grid, error) {
	reduce, err := reducer(policy)
	if err != nil {
		return nil, err
	}

	tests := t.TestOrder()
	allocators := t.AllocatorOrder()

	samples := make([][][]float64, len(tests))
	for i := range samples {
		samples[i] = make([][]float64, len(allocators))
	}
	for _, r := range t.Records {
		v := r.Value(metric)
		if math.IsNaN(v) {
			continue
		}
		ti := indexOf(tests, r.Test)
		ai := indexOf(allocators, r.Allocator)
		samples[ti][ai] = append(samples[ti][ai], v)
	}

	grid := &Grid{
		Metric:     metric,
		Tests:      tests,
		Allocators: allocators,
		Values:     make([][]float64, len(tests)),
	}
	for ti := range tests {
		grid.Values[ti] = make([]float64, len(allocators))
		for ai := range allocators {
			if len(samples[ti][ai]) == 0 {
				grid.Values[ti][ai] = math.NaN()
				continue
			}
			v := reduce(samples[ti][ai])
			if math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: %s of %s for %s/%s overflows",
					ErrInputMalformed, policy, metric, tests[ti], allocators[ai])
			}
			grid.Values[ti][ai] = v
		}
	}
	return grid, nil
}

func reducer(policy Policy) (func([]float64) float64, error) {
	switch policy {
	case PolicyMean, "":
		return func(vs []float64) float64 {
			sum := 0.0
			for _, v := range vs {
				sum += v
			}
			return sum / float64(len(vs))
		}, nil
	case PolicyMedian:
		return func(vs []float64) float64 {
			sorted := append([]float64(nil), vs...)
			sort.Float64s(sorted)
			n := len(sorted)
			if n%2 == 1 {
				return sorted[n/2]
			}
			return (sorted[n/2-1] + sorted[n/2]) / 2
		}, nil
	case PolicyMin:
		return func(vs []float64) float64 {
			m := vs[0]
			for _, v := range vs[1:] {
				m = math.Min(m, v)
			}
			return m
		}, nil
	case PolicyMax:
		return func(vs []float64) float64 {
			m := vs[0]
			for _, v := range vs[1:] {
				m = math.Max(m, v)
			}
			return m
		}, nil
	case PolicySum:
		return func(vs []float64) float64 {
			sum := 0.0
			for _, v := range vs {
				sum += v
			}
			return sum
		}, nil
	}
	return nil, fmt.Errorf("unknown aggregation policy %q", policy)
}

func indexOf(values []string, v string) int {
	for i, s := range values {
		if s == v {
			return i
		}
	}
	return -1
}
