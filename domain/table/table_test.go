package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidatesShape(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)

	_, err = New([]*Column{
		NewIntColumn("a", []int64{1, 2}, nil),
		NewIntColumn("b", []int64{1}, nil),
	})
	assert.Error(t, err)

	_, err = New([]*Column{
		NewIntColumn("a", []int64{1}, nil),
		NewIntColumn("a", []int64{2}, nil),
	})
	assert.Error(t, err)
}

func TestDropColumnsPreservesOrder(t *testing.T) {
	ds, err := New([]*Column{
		NewIntColumn("a", []int64{1}, nil),
		NewIntColumn("b", []int64{2}, nil),
		NewIntColumn("c", []int64{3}, nil),
	})
	require.NoError(t, err)

	reduced, err := ds.DropColumns("b")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, reduced.ColumnNames())

	// the original snapshot is untouched
	assert.Equal(t, 3, ds.NumColumns())

	_, err = ds.DropColumns("missing")
	assert.Error(t, err)

	_, err = ds.DropColumns("a", "b", "c")
	assert.Error(t, err)
}

func TestDropRowsKeepsAlignment(t *testing.T) {
	ds, err := New([]*Column{
		NewIntColumn("n", []int64{10, 20, 30, 40}, nil),
		NewTextColumn("s", []string{"a", "b", "c", "d"}, nil),
	})
	require.NoError(t, err)

	reduced, err := ds.DropRows([]int{1, 3})
	require.NoError(t, err)
	require.Equal(t, 2, reduced.NumRows())

	assert.Equal(t, NewIntValue(10), reduced.Row(0)[0])
	assert.Equal(t, NewTextValue("a"), reduced.Row(0)[1])
	assert.Equal(t, NewIntValue(30), reduced.Row(1)[0])
	assert.Equal(t, NewTextValue("c"), reduced.Row(1)[1])

	_, err = ds.DropRows([]int{9})
	assert.Error(t, err)
}

func TestRowFingerprintMissingEqualsMissing(t *testing.T) {
	ds, err := New([]*Column{
		NewFloatColumn("f", []float64{0, 0, 1}, []bool{false, false, true}),
	})
	require.NoError(t, err)

	assert.Equal(t, ds.RowFingerprint(0), ds.RowFingerprint(1))
	assert.NotEqual(t, ds.RowFingerprint(0), ds.RowFingerprint(2))
}

func TestConvertIntegerNarrowing(t *testing.T) {
	col := NewIntColumn("n", []int64{0, 200, 255}, nil)

	narrowed, err := col.Convert(TypeUint8)
	require.NoError(t, err)
	assert.Equal(t, TypeUint8, narrowed.Type())
	assert.Equal(t, KindInteger, narrowed.Kind())
	for i := 0; i < col.Len(); i++ {
		assert.True(t, col.Value(i).Equal(narrowed.Value(i)))
	}

	// out of range narrowing is refused
	_, err = NewIntColumn("n", []int64{0, 256}, nil).Convert(TypeUint8)
	assert.Error(t, err)
	_, err = NewIntColumn("n", []int64{-1, 10}, nil).Convert(TypeUint8)
	assert.Error(t, err)
}

func TestConvertFloatToInteger(t *testing.T) {
	col := NewFloatColumn("f", []float64{1, 2, 3}, nil)

	converted, err := col.Convert(TypeUint8)
	require.NoError(t, err)
	assert.Equal(t, KindInteger, converted.Kind())
	assert.Equal(t, NewIntValue(3), converted.Value(2))

	_, err = NewFloatColumn("f", []float64{1.5}, nil).Convert(TypeUint8)
	assert.Error(t, err)
}

func TestConvertPreservesMissing(t *testing.T) {
	col := NewIntColumn("n", []int64{1, 0, 3}, []bool{true, false, true})

	narrowed, err := col.Convert(TypeUint8)
	require.NoError(t, err)
	assert.False(t, narrowed.IsMissing(0))
	assert.True(t, narrowed.IsMissing(1))
	assert.False(t, narrowed.IsMissing(2))
	assert.Equal(t, 1, narrowed.MissingCount())
}

func TestConvertFloat32Precision(t *testing.T) {
	ok, err := NewFloatColumn("f", []float64{0.5, 1.25}, nil).Convert(TypeFloat32)
	require.NoError(t, err)
	assert.Equal(t, TypeFloat32, ok.Type())

	_, err = NewFloatColumn("f", []float64{0.1}, nil).Convert(TypeFloat32)
	assert.Error(t, err)
}

func TestConvertToCategory(t *testing.T) {
	col := NewTextColumn("c", []string{"b", "a", "b", ""}, []bool{true, true, true, false})

	cat, err := col.Convert(TypeCategory)
	require.NoError(t, err)
	assert.Equal(t, KindCategorical, cat.Kind())
	// dictionary in first-seen order
	assert.Equal(t, []string{"b", "a"}, cat.Categories())
	assert.Equal(t, NewTextValue("b"), cat.Value(2))
	assert.True(t, cat.IsMissing(3))

	_, err = NewIntColumn("n", []int64{1}, nil).Convert(TypeCategory)
	assert.Error(t, err)
}

func TestMemoryBytesShrinksOnDowncast(t *testing.T) {
	col := NewIntColumn("n", []int64{1, 2, 3, 4}, nil)
	narrowed, err := col.Convert(TypeUint8)
	require.NoError(t, err)
	assert.Less(t, narrowed.MemoryBytes(), col.MemoryBytes())
}

func TestWithColumnReplaces(t *testing.T) {
	ds, err := New([]*Column{
		NewIntColumn("a", []int64{1, 2}, nil),
		NewTextColumn("b", []string{"x", "y"}, nil),
	})
	require.NoError(t, err)

	replacement, err := ds.Columns()[0].Convert(TypeUint8)
	require.NoError(t, err)
	next, err := ds.WithColumn(replacement)
	require.NoError(t, err)

	col, okFound := next.Column("a")
	require.True(t, okFound)
	assert.Equal(t, TypeUint8, col.Type())
	// original keeps its width
	orig, _ := ds.Column("a")
	assert.Equal(t, TypeInt64, orig.Type())

	_, err = ds.WithColumn(NewIntColumn("zz", []int64{1, 2}, nil))
	assert.Error(t, err)
	_, err = ds.WithColumn(NewIntColumn("a", []int64{1}, nil))
	assert.Error(t, err)
}
