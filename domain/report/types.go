// Package report defines the structured report snapshot produced by a
// session. Every section is independently empty-able: an empty section means
// "nothing found", never an error, and never affects the other sections.
package report

import (
	"cleanframe/domain/core"
	"cleanframe/domain/table"
)

// Report is a point-in-time snapshot of a dataset's quality issues. It is
// recomputed from current dataset state on every call so before/after
// comparisons across clean/optimize are meaningful.
type Report struct {
	SessionID   core.SessionID `json:"session_id"`
	GeneratedAt core.Timestamp `json:"generated_at"`
	Rows        int            `json:"rows"`
	Columns     int            `json:"columns"`

	ConstantColumns []string           `json:"constant_columns,omitempty"`
	Duplicates      DuplicateSummary   `json:"duplicates"`
	Downcasts       []DowncastGroup    `json:"downcasts,omitempty"`
	Categoricals    []CategoricalEntry `json:"categoricals,omitempty"`
	Outliers        []OutlierEntry     `json:"outliers,omitempty"`
	Missing         []MissingEntry     `json:"missing,omitempty"`

	// Unavailable maps column name to the reason its statistics could not
	// be computed. A failure here never aborts the rest of the report.
	Unavailable map[string]string `json:"unavailable,omitempty"`
}

// DuplicateSummary describes fully duplicated rows. Instances counts every
// occurrence of a duplicated row, first occurrences included; Extra counts
// only the repeats beyond the first of each group.
type DuplicateSummary struct {
	Instances  int     `json:"instances"`
	Extra      int     `json:"extra"`
	Percentage float64 `json:"percentage"`
	// RowIndices are the positions of all duplicated-row occurrences, in
	// ascending order, for inspection.
	RowIndices []int `json:"row_indices,omitempty"`
	// Rows holds the rendered cell values of those rows, aligned with
	// RowIndices.
	Rows [][]string `json:"rows,omitempty"`
}

// HasDuplicates reports whether any duplicated rows were found
func (s DuplicateSummary) HasDuplicates() bool { return s.Instances > 0 }

// DowncastGroup lists the columns recommended for one target type, grouped
// for presentation the way the downcast plan is reported.
type DowncastGroup struct {
	Target  table.Type `json:"target"`
	Columns []string   `json:"columns"`
}

// CategoricalEntry recommends dictionary encoding for one low-cardinality
// column, carrying its distinct values in first-seen order.
type CategoricalEntry struct {
	Column string   `json:"column"`
	Values []string `json:"values"`
}

// OutlierEntry holds fence-based outlier bounds and counts for one numeric
// column. Percentage is relative to the non-missing count, rounded to two
// decimal places.
type OutlierEntry struct {
	Column     string  `json:"column"`
	LowerFence float64 `json:"lower_fence"`
	UpperFence float64 `json:"upper_fence"`
	CountBelow int     `json:"count_below"`
	CountAbove int     `json:"count_above"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// MissingEntry holds missingness counts for one column. Percentage is
// relative to the total row count, rounded to two decimal places.
type MissingEntry struct {
	Column     string  `json:"column"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// CleanResult summarizes what a clean operation changed. Zero counts mean
// the operation found nothing to do, which is a no-op, not an error.
type CleanResult struct {
	DroppedColumns       []string `json:"dropped_columns,omitempty"`
	DroppedMissingRows   int      `json:"dropped_missing_rows"`
	DroppedDuplicateRows int      `json:"dropped_duplicate_rows"`
}

// NothingToDo reports whether the clean changed anything
func (r CleanResult) NothingToDo() bool {
	return len(r.DroppedColumns) == 0 && r.DroppedMissingRows == 0 && r.DroppedDuplicateRows == 0
}

// OptimizeResult summarizes what an optimize operation changed. Columns
// already at minimal width are excluded entirely.
type OptimizeResult struct {
	Downcast    map[string]table.Type `json:"downcast,omitempty"`
	Categorical []string              `json:"categorical,omitempty"`
	BytesBefore int64                 `json:"bytes_before"`
	BytesAfter  int64                 `json:"bytes_after"`
}

// NothingToDo reports whether the optimize changed anything
func (r OptimizeResult) NothingToDo() bool {
	return len(r.Downcast) == 0 && len(r.Categorical) == 0
}
