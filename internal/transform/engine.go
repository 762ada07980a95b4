// Package transform applies the mutating operations: clean and optimize.
// Every operation is all-or-nothing: it builds a new dataset snapshot and
// either returns it complete or returns an error with the input state
// untouched. Calling either operation again with nothing new to do is a
// no-op that reports zero affected columns and rows.
package transform

import (
	"fmt"

	"cleanframe/domain/report"
	"cleanframe/domain/table"
	"cleanframe/internal/categorical"
	"cleanframe/internal/dedupe"
	"cleanframe/internal/downcast"
	"cleanframe/internal/errors"
	"cleanframe/internal/profiling"
)

// Engine executes clean and optimize against dataset snapshots
type Engine struct {
	profiler *profiling.Profiler
	resolver *downcast.Resolver
	advisor  *categorical.Advisor
	dedupe   *dedupe.Detector
}

// NewEngine creates an engine. maxCategories bounds categorical encoding.
func NewEngine(maxCategories int) (*Engine, error) {
	advisor, err := categorical.NewAdvisor(maxCategories)
	if err != nil {
		return nil, err
	}
	return &Engine{
		profiler: profiling.NewProfiler(),
		resolver: downcast.NewResolver(),
		advisor:  advisor,
		dedupe:   dedupe.NewDetector(),
	}, nil
}

// CleanOptions configures a clean operation
type CleanOptions struct {
	// MinMissingRatio is the missingness ratio above which a column is
	// dropped, in [0, 1].
	MinMissingRatio float64
	// DropMissingRows drops every remaining row containing any missing
	// value after the column pass.
	DropMissingRows bool
}

// Validate rejects out-of-range options at call time, before any mutation
func (o CleanOptions) Validate() error {
	if o.MinMissingRatio < 0 || o.MinMissingRatio > 1 {
		return errors.ConfigInvalid(fmt.Sprintf("min missing ratio must be between 0 and 1, got %v", o.MinMissingRatio))
	}
	return nil
}

// Clean drops high-missingness columns, then rows with missing values, then
// exact duplicate rows. Column drop comes first: dropping those columns
// before the row pass keeps rows that were missing only in columns about to
// be discarded anyway.
func (e *Engine) Clean(ds *table.Dataset, opts CleanOptions) (*table.Dataset, report.CleanResult, error) {
	result := report.CleanResult{}
	if err := opts.Validate(); err != nil {
		return nil, result, err
	}
	if err := checkShape(ds); err != nil {
		return nil, result, err
	}

	current := ds
	rows := float64(current.NumRows())
	var dropCols []string
	for _, col := range current.Columns() {
		if float64(col.MissingCount())/rows > opts.MinMissingRatio {
			dropCols = append(dropCols, col.Name())
		}
	}
	if len(dropCols) > 0 {
		next, err := current.DropColumns(dropCols...)
		if err != nil {
			return nil, report.CleanResult{}, errors.Wrap(err, "clean could not drop columns")
		}
		current = next
		result.DroppedColumns = dropCols
	}

	if opts.DropMissingRows {
		// missingness re-evaluated on the reduced column set
		var dropRows []int
		for i := 0; i < current.NumRows(); i++ {
			for _, col := range current.Columns() {
				if col.IsMissing(i) {
					dropRows = append(dropRows, i)
					break
				}
			}
		}
		if len(dropRows) > 0 {
			next, err := current.DropRows(dropRows)
			if err != nil {
				return nil, report.CleanResult{}, errors.Wrap(err, "clean could not drop rows with missing values")
			}
			current = next
			result.DroppedMissingRows = len(dropRows)
		}
	}

	if extra := e.dedupe.DuplicateRowIndices(current); len(extra) > 0 {
		next, err := current.DropRows(extra)
		if err != nil {
			return nil, report.CleanResult{}, errors.Wrap(err, "clean could not drop duplicate rows")
		}
		current = next
		result.DroppedDuplicateRows = len(extra)
	}

	return current, result, nil
}

// Optimize recomputes the downcast and categorical plans against current
// state and applies every conversion. Columns already at minimal width are
// left untouched and excluded from the result.
func (e *Engine) Optimize(ds *table.Dataset) (*table.Dataset, report.OptimizeResult, error) {
	result := report.OptimizeResult{}
	if err := checkShape(ds); err != nil {
		return nil, result, err
	}

	result.BytesBefore = ds.MemoryBytes()
	current := ds
	for _, col := range ds.Columns() {
		if col.IsNumeric() {
			profile, err := e.profiler.ProfileColumn(col)
			if err != nil {
				// no present values: range undefined, nothing to decide
				continue
			}
			target, ok := e.resolver.Resolve(downcast.Input{
				Min:             profile.Min,
				Max:             profile.Max,
				Integer:         profile.IsInteger,
				HasMissing:      profile.HasMissing(),
				Float32Lossless: profile.Float32Lossless,
				Current:         col.Type(),
			})
			if !ok {
				continue
			}
			converted, err := col.Convert(target)
			if err != nil {
				return nil, report.OptimizeResult{}, errors.Wrapf(err, "optimize could not convert column %q to %s", col.Name(), target)
			}
			next, err := current.WithColumn(converted)
			if err != nil {
				return nil, report.OptimizeResult{}, errors.Wrap(err, "optimize could not replace column")
			}
			current = next
			if result.Downcast == nil {
				result.Downcast = make(map[string]table.Type)
			}
			result.Downcast[col.Name()] = target
			continue
		}

		if _, ok := e.advisor.Advise(col); ok {
			converted, err := col.Convert(table.TypeCategory)
			if err != nil {
				return nil, report.OptimizeResult{}, errors.Wrapf(err, "optimize could not encode column %q as categorical", col.Name())
			}
			next, err := current.WithColumn(converted)
			if err != nil {
				return nil, report.OptimizeResult{}, errors.Wrap(err, "optimize could not replace column")
			}
			current = next
			result.Categorical = append(result.Categorical, col.Name())
		}
	}
	result.BytesAfter = current.MemoryBytes()
	return current, result, nil
}

func checkShape(ds *table.Dataset) error {
	if ds == nil || ds.NumColumns() == 0 || ds.NumRows() == 0 {
		return errors.SchemaError("operation requires a dataset with at least one row and one column")
	}
	return nil
}
