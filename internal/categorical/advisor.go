// Package categorical decides whether a low-cardinality column should be
// dictionary encoded.
package categorical

import (
	"cleanframe/domain/table"
	"cleanframe/internal/errors"
)

// Advisor recommends dictionary encoding for non-numeric columns whose
// cardinality stays at or under a configured threshold.
type Advisor struct {
	maxCategories int
}

// NewAdvisor creates an advisor. The threshold must be positive.
func NewAdvisor(maxCategories int) (*Advisor, error) {
	if maxCategories <= 0 {
		return nil, errors.ConfigInvalid("max categories must be a positive integer")
	}
	return &Advisor{maxCategories: maxCategories}, nil
}

// Recommendation carries the distinct values of a recommended column in
// first-seen order, stable across repeated calls on the same data.
type Recommendation struct {
	Column string
	Values []string
}

// Advise evaluates one column. Only text columns are candidates; categorical
// columns are already encoded and numeric columns are the downcast
// resolver's business. The threshold is inclusive: distinct_count equal to
// the threshold IS recommended. Zero distinct values is never recommended.
func (a *Advisor) Advise(col *table.Column) (Recommendation, bool) {
	if col.Kind() != table.KindText {
		return Recommendation{}, false
	}
	values := col.DistinctValues()
	if len(values) == 0 || len(values) > a.maxCategories {
		return Recommendation{}, false
	}
	return Recommendation{Column: col.Name(), Values: values}, true
}
