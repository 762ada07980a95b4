package profiling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleanframe/domain/table"
)

func TestProfileIntColumn(t *testing.T) {
	col := table.NewIntColumn("age", []int64{30, 25, 30, 41}, nil)

	profile, err := NewProfiler().ProfileColumn(col)
	require.NoError(t, err)

	assert.True(t, profile.IsNumeric)
	assert.True(t, profile.IsInteger)
	assert.Equal(t, 25.0, profile.Min)
	assert.Equal(t, 41.0, profile.Max)
	assert.Equal(t, 0, profile.MissingCount)
	assert.Equal(t, 3, profile.DistinctCount)
	assert.False(t, profile.IsConstant)
}

func TestProfileFloatColumnWithIntegralValues(t *testing.T) {
	// A float column whose present values carry no fractional component is
	// still an integer downcast candidate.
	col := table.NewFloatColumn("count", []float64{1, 2, 3, 4}, nil)

	profile, err := NewProfiler().ProfileColumn(col)
	require.NoError(t, err)

	assert.True(t, profile.IsInteger)
	assert.True(t, profile.Float32Lossless)
}

func TestProfileFloatColumnFractional(t *testing.T) {
	col := table.NewFloatColumn("price", []float64{1.5, 2.25, 3.75}, nil)

	profile, err := NewProfiler().ProfileColumn(col)
	require.NoError(t, err)

	assert.False(t, profile.IsInteger)
	assert.True(t, profile.Float32Lossless)
}

func TestProfileFloat32Precision(t *testing.T) {
	// 0.1 is not exactly representable at 32-bit width.
	col := table.NewFloatColumn("ratio", []float64{0.1, 0.5}, nil)

	profile, err := NewProfiler().ProfileColumn(col)
	require.NoError(t, err)

	assert.False(t, profile.Float32Lossless)
}

func TestConstantRequiresNoMissing(t *testing.T) {
	constant, err := NewProfiler().ProfileColumn(
		table.NewIntColumn("c", []int64{5, 5, 5}, nil))
	require.NoError(t, err)
	assert.True(t, constant.IsConstant)

	// A single value plus missing entries still carries presence/absence
	// information and must not be flagged constant.
	withMissing, err := NewProfiler().ProfileColumn(
		table.NewIntColumn("c", []int64{5, 5, 0}, []bool{true, true, false}))
	require.NoError(t, err)
	assert.Equal(t, 1, withMissing.DistinctCount)
	assert.Equal(t, 1, withMissing.MissingCount)
	assert.False(t, withMissing.IsConstant)
}

func TestProfileMissingCounts(t *testing.T) {
	col := table.NewFloatColumn("f", []float64{1, 0, 3, 0}, []bool{true, false, true, false})

	profile, err := NewProfiler().ProfileColumn(col)
	require.NoError(t, err)

	assert.Equal(t, 2, profile.MissingCount)
	assert.True(t, profile.HasMissing())
	// distinct_count counts only non-missing distinct values
	assert.Equal(t, 2, profile.DistinctCount)
}

func TestProfileTextColumn(t *testing.T) {
	col := table.NewTextColumn("city", []string{"oslo", "rome", "oslo"}, nil)

	profile, err := NewProfiler().ProfileColumn(col)
	require.NoError(t, err)

	assert.False(t, profile.IsNumeric)
	assert.Equal(t, 2, profile.DistinctCount)
	assert.False(t, profile.IsConstant)
}

func TestProfileAllMissingNumericFails(t *testing.T) {
	col := table.NewFloatColumn("empty", []float64{0, 0}, []bool{false, false})

	_, err := NewProfiler().ProfileColumn(col)
	assert.Error(t, err)
}
