// Package stats holds the small numeric helpers the detectors share. The
// quartile convention lives here in exactly one place: different quartile
// methods yield different fence values, so the method is pinned and
// golden-tested.
package stats

import (
	"math"
	"sort"

	"cleanframe/internal/errors"
)

// Quantile computes the p-quantile (p in [0, 1]) of values using linear
// interpolation on the sorted sample at position (n-1)*p. This is the R-7
// convention, the default of numpy's percentile, chosen because the fence
// contract is golden-tested against it: for [1..9, 100] it yields Q1=3.25
// and Q3=7.75.
func Quantile(values []float64, p float64) (float64, error) {
	if len(values) == 0 {
		return 0, errors.InvalidInput("quantile of an empty sample is undefined")
	}
	if p < 0 || p > 1 {
		return 0, errors.InvalidInput("quantile probability must be between 0 and 1")
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	pos := float64(len(sorted)-1) * p
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo], nil
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo]), nil
}

// Round2 rounds to two decimal places, the precision every reported
// percentage uses.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
