// Package profiling computes per-column profiles: semantic kind, value
// range, missingness, cardinality and distribution shape. Profiles are
// ephemeral; they are recomputed from current dataset state on every call
// and never cached across mutations.
package profiling

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"cleanframe/domain/table"
	"cleanframe/internal/errors"
)

// Profile is the derived summary of one column. Derived, never persisted.
type Profile struct {
	Name string
	Kind table.Kind
	Type table.Type
	Rows int

	IsNumeric bool
	// IsInteger is true when the column is numeric and no present value has
	// a fractional component. Detection is type- and value-based, never a
	// heuristic on string content.
	IsInteger bool
	// Float32Lossless is true when every present numeric value survives a
	// round trip through 32-bit float exactly.
	Float32Lossless bool

	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
	Median float64

	// Skewness and Kurtosis describe distribution shape; zero for samples
	// too small to estimate them.
	Skewness float64
	Kurtosis float64

	MissingCount  int
	DistinctCount int
	IsConstant    bool
}

// HasMissing reports whether the column contains missing entries
func (p Profile) HasMissing() bool { return p.MissingCount > 0 }

// Profiler computes column profiles. It holds no state; profiling is a pure
// read over the column.
type Profiler struct{}

// NewProfiler creates a new profiler
func NewProfiler() *Profiler {
	return &Profiler{}
}

// ProfileColumn computes the profile of one column. A numeric column with no
// present values yields an error: its range and quartile statistics are
// undefined, and callers isolate the failure per column.
func (p *Profiler) ProfileColumn(col *table.Column) (Profile, error) {
	profile := Profile{
		Name:         col.Name(),
		Kind:         col.Kind(),
		Type:         col.Type(),
		Rows:         col.Len(),
		IsNumeric:    col.IsNumeric(),
		MissingCount: col.MissingCount(),
	}

	if !col.IsNumeric() {
		profile.DistinctCount = col.DistinctCount()
		profile.IsConstant = profile.DistinctCount == 1 && profile.MissingCount == 0
		return profile, nil
	}

	present := col.PresentFloats()
	if len(present) == 0 {
		return profile, errors.ColumnError(col.Name(), errors.New(errors.CodeColumnError, "no non-missing values"))
	}

	profile.IsInteger = true
	profile.Float32Lossless = true
	distinct := make(map[float64]struct{}, len(present))
	for _, v := range present {
		if v != math.Trunc(v) {
			profile.IsInteger = false
		}
		if float64(float32(v)) != v {
			profile.Float32Lossless = false
		}
		distinct[v] = struct{}{}
	}
	profile.DistinctCount = len(distinct)
	profile.IsConstant = profile.DistinctCount == 1 && profile.MissingCount == 0

	min, err := stats.Min(present)
	if err != nil {
		return profile, errors.ColumnError(col.Name(), err)
	}
	max, err := stats.Max(present)
	if err != nil {
		return profile, errors.ColumnError(col.Name(), err)
	}
	mean, err := stats.Mean(present)
	if err != nil {
		return profile, errors.ColumnError(col.Name(), err)
	}
	median, err := stats.Median(present)
	if err != nil {
		return profile, errors.ColumnError(col.Name(), err)
	}
	stdDev, err := stats.StandardDeviation(present)
	if err != nil {
		return profile, errors.ColumnError(col.Name(), err)
	}

	profile.Min = min
	profile.Max = max
	profile.Mean = mean
	profile.Median = median
	profile.StdDev = stdDev

	if len(present) >= 3 && stdDev > 0 {
		profile.Skewness = stat.Skew(present, nil)
		profile.Kurtosis = stat.ExKurtosis(present, nil) + 3
	}

	return profile, nil
}
