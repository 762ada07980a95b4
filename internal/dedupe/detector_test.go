package dedupe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleanframe/domain/table"
)

func rowsDataset(t *testing.T, ids []int64, names []string, valid []bool) *table.Dataset {
	t.Helper()
	ds, err := table.New([]*table.Column{
		table.NewIntColumn("id", ids, nil),
		table.NewTextColumn("name", names, valid),
	})
	require.NoError(t, err)
	return ds
}

func TestDuplicateRowsCounts(t *testing.T) {
	// rows [A, B, B, C, B]: B occurs three times
	ds := rowsDataset(t,
		[]int64{1, 2, 2, 3, 2},
		[]string{"a", "b", "b", "c", "b"}, nil)

	summary := NewDetector().DuplicateRows(ds)

	assert.Equal(t, 3, summary.Instances)
	assert.Equal(t, 2, summary.Extra)
	assert.Equal(t, 60.0, summary.Percentage)
	assert.Equal(t, []int{1, 2, 4}, summary.RowIndices)
	require.Len(t, summary.Rows, 3)
	assert.Equal(t, []string{"2", "b"}, summary.Rows[0])
}

func TestDuplicateRowsMissingEqualsMissing(t *testing.T) {
	ds := rowsDataset(t,
		[]int64{1, 1, 2},
		[]string{"", "", "x"},
		[]bool{false, false, true})

	summary := NewDetector().DuplicateRows(ds)
	assert.Equal(t, 2, summary.Instances)
	assert.Equal(t, 1, summary.Extra)
}

func TestDuplicateRowsNone(t *testing.T) {
	ds := rowsDataset(t,
		[]int64{1, 2, 3},
		[]string{"a", "b", "c"}, nil)

	summary := NewDetector().DuplicateRows(ds)
	assert.False(t, summary.HasDuplicates())
	assert.Equal(t, 0, summary.Instances)
}

func TestDuplicateRowIndicesKeepsFirst(t *testing.T) {
	ds := rowsDataset(t,
		[]int64{1, 2, 2, 3, 2},
		[]string{"a", "b", "b", "c", "b"}, nil)

	extra := NewDetector().DuplicateRowIndices(ds)
	assert.Equal(t, []int{2, 4}, extra)
}

func TestConstantColumns(t *testing.T) {
	ds, err := table.New([]*table.Column{
		table.NewIntColumn("const", []int64{5, 5, 5}, nil),
		table.NewIntColumn("almost", []int64{5, 5, 0}, []bool{true, true, false}),
		table.NewTextColumn("city", []string{"oslo", "rome", "oslo"}, nil),
		table.NewTextColumn("fixed", []string{"x", "x", "x"}, nil),
	})
	require.NoError(t, err)

	constants := NewDetector().ConstantColumns(ds)
	// {5,5,missing} is NOT constant: distinct_count=1 but missing_count>0
	assert.Equal(t, []string{"const", "fixed"}, constants)
}
