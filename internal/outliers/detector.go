// Package outliers computes quartile-fence outlier bounds per numeric
// column.
package outliers

import (
	"cleanframe/domain/report"
	"cleanframe/domain/table"
	"cleanframe/internal/errors"
	"cleanframe/internal/stats"
)

// Detector computes IQR fences. Quartiles use the pinned linear-interpolation
// convention from internal/stats; the fences are Q1 - 1.5*IQR and
// Q3 + 1.5*IQR.
type Detector struct{}

// NewDetector creates a new outlier detector
func NewDetector() *Detector {
	return &Detector{}
}

// Detect computes the bounds for one numeric column. Bounds are computed
// even when the column has zero outliers; listing only columns that have
// some is the report's concern. Missing cells are excluded, and the
// percentage is relative to the non-missing count. A constant column
// collapses both fences onto the single quartile value without error.
func (d *Detector) Detect(col *table.Column) (report.OutlierEntry, error) {
	entry := report.OutlierEntry{Column: col.Name()}
	if !col.IsNumeric() {
		return entry, errors.ColumnError(col.Name(), errors.New(errors.CodeColumnError, "not a numeric column"))
	}
	present := col.PresentFloats()
	if len(present) == 0 {
		return entry, errors.ColumnError(col.Name(), errors.New(errors.CodeColumnError, "no non-missing values"))
	}

	q1, err := stats.Quantile(present, 0.25)
	if err != nil {
		return entry, errors.ColumnError(col.Name(), err)
	}
	q3, err := stats.Quantile(present, 0.75)
	if err != nil {
		return entry, errors.ColumnError(col.Name(), err)
	}

	iqr := q3 - q1
	entry.LowerFence = q1 - 1.5*iqr
	entry.UpperFence = q3 + 1.5*iqr

	for _, v := range present {
		if v < entry.LowerFence {
			entry.CountBelow++
		} else if v > entry.UpperFence {
			entry.CountAbove++
		}
	}
	entry.Total = entry.CountBelow + entry.CountAbove
	entry.Percentage = stats.Round2(float64(entry.Total) * 100 / float64(len(present)))
	return entry, nil
}
