package analysis

import (
	"math"
	"slices"

	"github.com/montanaflynn/stats"
)

// mean returns the arithmetic mean, or false for an empty input.
func mean(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	m, err := stats.Mean(values)
	if err != nil {
		return 0, false
	}
	return m, true
}

// meanPtr is mean returning nil for an empty input.
func meanPtr(values []float64) *float64 {
	m, ok := mean(values)
	if !ok {
		return nil
	}
	return &m
}

// populationStdDev is the standard deviation with divisor n. Fewer than two
// values yield 0.
func populationStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	sd, err := stats.StandardDeviationPopulation(values)
	if err != nil {
		return 0
	}
	return sd
}

// percentile interpolates linearly between the two closest ranks, the
// same rule as numpy's default. false for an empty input.
func percentile(values []float64, pct float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	rank := pct / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	p := sorted[lo] + (sorted[hi]-sorted[lo])*(rank-float64(lo))
	if math.IsNaN(p) {
		return 0, false
	}
	return p, true
}

// slope returns the least-squares slope of values against x = 0..n-1.
func slope(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	series := make(stats.Series, len(values))
	for i, v := range values {
		series[i] = stats.Coordinate{X: float64(i), Y: v}
	}
	fit, err := stats.LinearRegression(series)
	if err != nil || len(fit) < 2 {
		return 0
	}
	return fit[1].Y - fit[0].Y
}

// varies reports whether the series holds at least two distinct values.
func varies(values []float64) bool {
	if len(values) < 2 {
		return false
	}
	for _, v := range values[1:] {
		if v != values[0] {
			return true
		}
	}
	return false
}

func minMax(values []float64) (lo, hi float64) {
	lo, _ = stats.Min(values)
	hi, _ = stats.Max(values)
	return lo, hi
}

// round rounds half to even at the given number of decimal places.
func round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.RoundToEven(x*p) / p
}

func roundPtr(x *float64, places int) *float64 {
	if x == nil {
		return nil
	}
	r := round(*x, places)
	return &r
}

func pct(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
