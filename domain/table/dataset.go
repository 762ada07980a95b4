package table

import (
	"bytes"
	"fmt"

	"cleanframe/domain/core"
)

// Dataset is an ordered sequence of named, row-aligned columns. Datasets are
// treated as immutable snapshots: every mutation produces a new Dataset and
// leaves the receiver untouched, so a failed transform can never surface a
// partially-applied state.
type Dataset struct {
	cols   []*Column
	byName map[string]int
	rows   int
}

// New creates a dataset from columns, validating row alignment and name
// uniqueness. Zero rows is allowed here; operations that need data reject it.
func New(cols []*Column) (*Dataset, error) {
	if len(cols) == 0 {
		return nil, core.ErrEmptyDataset
	}
	rows := cols[0].Len()
	byName := make(map[string]int, len(cols))
	for i, col := range cols {
		if col.Len() != rows {
			return nil, fmt.Errorf("column %q: %w: has %d rows, want %d", col.Name(), core.ErrRowMisaligned, col.Len(), rows)
		}
		if _, exists := byName[col.Name()]; exists {
			return nil, fmt.Errorf("%w: %q", core.ErrDuplicateColumn, col.Name())
		}
		byName[col.Name()] = i
	}
	return &Dataset{cols: cols, byName: byName, rows: rows}, nil
}

// NumRows returns the row count
func (d *Dataset) NumRows() int { return d.rows }

// NumColumns returns the column count
func (d *Dataset) NumColumns() int { return len(d.cols) }

// Columns returns the columns in dataset order
func (d *Dataset) Columns() []*Column {
	out := make([]*Column, len(d.cols))
	copy(out, d.cols)
	return out
}

// ColumnNames returns the column names in dataset order
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.cols))
	for i, col := range d.cols {
		names[i] = col.Name()
	}
	return names
}

// Column looks up a column by name
func (d *Dataset) Column(name string) (*Column, bool) {
	i, ok := d.byName[name]
	if !ok {
		return nil, false
	}
	return d.cols[i], true
}

// Row returns the cells of row i in column order
func (d *Dataset) Row(i int) []Value {
	row := make([]Value, len(d.cols))
	for j, col := range d.cols {
		row[j] = col.Value(i)
	}
	return row
}

// RowFingerprint returns a stable fingerprint of row i. Rows with equal
// fingerprints are exact duplicates, missing cells included.
func (d *Dataset) RowFingerprint(i int) core.RowFingerprint {
	var buf bytes.Buffer
	for _, col := range d.cols {
		col.Value(i).encode(&buf)
	}
	return core.NewRowFingerprint(buf.Bytes())
}

// DropColumns returns a new dataset without the named columns. Dropping an
// unknown column is an error; dropping every column is an error.
func (d *Dataset) DropColumns(names ...string) (*Dataset, error) {
	drop := make(map[string]bool, len(names))
	for _, name := range names {
		if _, ok := d.byName[name]; !ok {
			return nil, fmt.Errorf("%w: %q", core.ErrColumnNotFound, name)
		}
		drop[name] = true
	}
	var kept []*Column
	for _, col := range d.cols {
		if !drop[col.Name()] {
			kept = append(kept, col)
		}
	}
	if len(kept) == 0 {
		return nil, core.ErrEmptyDataset
	}
	return New(kept)
}

// DropRows returns a new dataset without the rows at the given indices.
// Row alignment across columns is preserved.
func (d *Dataset) DropRows(indices []int) (*Dataset, error) {
	drop := make(map[int]bool, len(indices))
	for _, i := range indices {
		if i < 0 || i >= d.rows {
			return nil, fmt.Errorf("row index %d out of range [0, %d)", i, d.rows)
		}
		drop[i] = true
	}
	keep := make([]int, 0, d.rows-len(drop))
	for i := 0; i < d.rows; i++ {
		if !drop[i] {
			keep = append(keep, i)
		}
	}
	cols := make([]*Column, len(d.cols))
	for j, col := range d.cols {
		cols[j] = col.filterRows(keep)
	}
	out, err := New(cols)
	if err != nil {
		return nil, err
	}
	out.rows = len(keep)
	return out, nil
}

// WithColumn returns a new dataset with the same-named column replaced.
// The replacement must keep the row count intact.
func (d *Dataset) WithColumn(col *Column) (*Dataset, error) {
	i, ok := d.byName[col.Name()]
	if !ok {
		return nil, fmt.Errorf("%w: %q", core.ErrColumnNotFound, col.Name())
	}
	if col.Len() != d.rows {
		return nil, fmt.Errorf("column %q: %w: has %d rows, want %d", col.Name(), core.ErrRowMisaligned, col.Len(), d.rows)
	}
	cols := make([]*Column, len(d.cols))
	copy(cols, d.cols)
	cols[i] = col
	return New(cols)
}

// MemoryBytes estimates the dataset footprint at declared column widths
func (d *Dataset) MemoryBytes() int64 {
	var total int64
	for _, col := range d.cols {
		total += col.MemoryBytes()
	}
	return total
}
