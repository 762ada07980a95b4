package tabular

import (
	"encoding/csv"
	"io"

	"cleanframe/domain/table"
)

// WriteCSV writes a dataset back out as CSV. Missing cells become empty
// strings, which Reader round-trips back to missing.
func WriteCSV(w io.Writer, ds *table.Dataset) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ds.ColumnNames()); err != nil {
		return err
	}

	cols := ds.Columns()
	record := make([]string, len(cols))
	for i := 0; i < ds.NumRows(); i++ {
		for j, col := range cols {
			v := col.Value(i)
			if v.Kind == table.ValueMissing {
				record[j] = ""
			} else {
				record[j] = v.String()
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
