// Package dedupe finds fully duplicated rows and single-valued columns.
package dedupe

import (
	"sort"

	"cleanframe/domain/core"
	"cleanframe/domain/report"
	"cleanframe/domain/table"
	"cleanframe/internal/stats"
)

// Detector locates exact duplicate rows and constant columns
type Detector struct{}

// NewDetector creates a new detector
func NewDetector() *Detector {
	return &Detector{}
}

// DuplicateRows finds rows whose every cell matches another row exactly,
// missing cells included (missing equals missing). The summary surfaces all
// occurrences of each duplicated row, not just the repeats beyond the first.
func (d *Detector) DuplicateRows(ds *table.Dataset) report.DuplicateSummary {
	summary := report.DuplicateSummary{}
	rows := ds.NumRows()
	if rows == 0 {
		return summary
	}

	groups := make(map[core.RowFingerprint][]int)
	order := make([]core.RowFingerprint, 0, rows)
	for i := 0; i < rows; i++ {
		fp := ds.RowFingerprint(i)
		if _, seen := groups[fp]; !seen {
			order = append(order, fp)
		}
		groups[fp] = append(groups[fp], i)
	}

	duplicated := 0
	var indices []int
	for _, fp := range order {
		members := groups[fp]
		if len(members) > 1 {
			duplicated++
			indices = append(indices, members...)
		}
	}
	if duplicated == 0 {
		return summary
	}
	sort.Ints(indices)

	summary.Instances = len(indices)
	summary.Extra = len(indices) - duplicated
	summary.Percentage = stats.Round2(float64(summary.Instances) * 100 / float64(rows))
	summary.RowIndices = indices
	summary.Rows = make([][]string, len(indices))
	for k, i := range indices {
		row := ds.Row(i)
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = v.String()
		}
		summary.Rows[k] = cells
	}
	return summary
}

// DuplicateRowIndices returns, for each duplicated row group, every
// occurrence after the first. These are the rows a clean drops.
func (d *Detector) DuplicateRowIndices(ds *table.Dataset) []int {
	seen := make(map[core.RowFingerprint]bool, ds.NumRows())
	var extra []int
	for i := 0; i < ds.NumRows(); i++ {
		fp := ds.RowFingerprint(i)
		if seen[fp] {
			extra = append(extra, i)
			continue
		}
		seen[fp] = true
	}
	return extra
}

// ConstantColumns returns the names of columns whose non-missing values are
// all identical with zero missing entries. A column holding a single value
// plus missing cells still carries presence information and is not constant.
func (d *Detector) ConstantColumns(ds *table.Dataset) []string {
	var constants []string
	for _, col := range ds.Columns() {
		if col.DistinctCount() == 1 && col.MissingCount() == 0 {
			constants = append(constants, col.Name())
		}
	}
	return constants
}
