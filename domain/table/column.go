package table

import (
	"fmt"
	"math"

	"cleanframe/domain/core"
)

// Kind is the semantic kind of a column, independent of its storage width
type Kind string

const (
	KindInteger     Kind = "integer"
	KindFloat       Kind = "float"
	KindText        Kind = "text"
	KindCategorical Kind = "categorical"
)

// Column holds one named sequence of values. Exactly one of the backing
// slices is populated, selected by kind. The validity slice marks missing
// cells out of band, so no storage type has to sacrifice a sentinel value.
type Column struct {
	name   string
	kind   Kind
	typ    Type
	ints   []int64
	floats []float64
	texts  []string
	codes  []int32
	dict   []string
	valid  []bool
}

// NewIntColumn creates an integer column stored at 64-bit width. A nil valid
// slice means every cell is present.
func NewIntColumn(name string, values []int64, valid []bool) *Column {
	return &Column{
		name:  name,
		kind:  KindInteger,
		typ:   TypeInt64,
		ints:  values,
		valid: normalizeValidity(valid, len(values)),
	}
}

// NewFloatColumn creates a floating-point column stored at 64-bit width
func NewFloatColumn(name string, values []float64, valid []bool) *Column {
	return &Column{
		name:   name,
		kind:   KindFloat,
		typ:    TypeFloat64,
		floats: values,
		valid:  normalizeValidity(valid, len(values)),
	}
}

// NewTextColumn creates a text column
func NewTextColumn(name string, values []string, valid []bool) *Column {
	return &Column{
		name:  name,
		kind:  KindText,
		typ:   TypeText,
		texts: values,
		valid: normalizeValidity(valid, len(values)),
	}
}

func normalizeValidity(valid []bool, n int) []bool {
	if valid != nil {
		return valid
	}
	v := make([]bool, n)
	for i := range v {
		v[i] = true
	}
	return v
}

// Name returns the column name
func (c *Column) Name() string { return c.name }

// Kind returns the semantic kind
func (c *Column) Kind() Kind { return c.kind }

// Type returns the declared storage type
func (c *Column) Type() Type { return c.typ }

// Len returns the number of cells, missing included
func (c *Column) Len() int { return len(c.valid) }

// IsNumeric reports whether the column holds numbers
func (c *Column) IsNumeric() bool {
	return c.kind == KindInteger || c.kind == KindFloat
}

// IsMissing reports whether the cell at index i is missing
func (c *Column) IsMissing(i int) bool { return !c.valid[i] }

// MissingCount returns the number of missing cells
func (c *Column) MissingCount() int {
	count := 0
	for _, v := range c.valid {
		if !v {
			count++
		}
	}
	return count
}

// Value returns the cell at index i as a tagged value
func (c *Column) Value(i int) Value {
	if !c.valid[i] {
		return NewMissingValue()
	}
	switch c.kind {
	case KindInteger:
		return NewIntValue(c.ints[i])
	case KindFloat:
		return NewFloatValue(c.floats[i])
	case KindCategorical:
		return NewTextValue(c.dict[c.codes[i]])
	default:
		return NewTextValue(c.texts[i])
	}
}

// Float64 returns the numeric cell at index i as float64. The second return
// is false for missing cells and non-numeric columns.
func (c *Column) Float64(i int) (float64, bool) {
	if !c.valid[i] {
		return 0, false
	}
	switch c.kind {
	case KindInteger:
		return float64(c.ints[i]), true
	case KindFloat:
		return c.floats[i], true
	}
	return 0, false
}

// PresentFloats returns the non-missing numeric values in row order
func (c *Column) PresentFloats() []float64 {
	if !c.IsNumeric() {
		return nil
	}
	out := make([]float64, 0, c.Len())
	for i := 0; i < c.Len(); i++ {
		if v, ok := c.Float64(i); ok {
			out = append(out, v)
		}
	}
	return out
}

// DistinctCount returns the number of distinct non-missing values
func (c *Column) DistinctCount() int {
	return len(c.DistinctValues())
}

// DistinctValues returns the distinct non-missing values in first-seen
// order, rendered as strings. The ordering is stable across repeated calls
// on the same data.
func (c *Column) DistinctValues() []string {
	seen := make(map[string]bool)
	var out []string
	for i := 0; i < c.Len(); i++ {
		if !c.valid[i] {
			continue
		}
		s := c.Value(i).String()
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// Categories returns the dictionary of a categorical column in first-seen
// order, or nil for other kinds.
func (c *Column) Categories() []string {
	if c.kind != KindCategorical {
		return nil
	}
	out := make([]string, len(c.dict))
	copy(out, c.dict)
	return out
}

// Convert produces a new column re-typed to target. The transition is
// validated cell by cell: every present value must survive the round trip
// exactly and every missing cell must stay missing. An unsafe narrowing
// returns an error and leaves the receiver untouched.
func (c *Column) Convert(target Type) (*Column, error) {
	switch {
	case target.IsInteger():
		return c.convertToInteger(target)
	case target.IsFloat():
		return c.convertToFloat(target)
	case target == TypeCategory:
		return c.convertToCategory()
	}
	return nil, fmt.Errorf("column %q: unsupported conversion target %s", c.name, target)
}

func (c *Column) convertToInteger(target Type) (*Column, error) {
	if !c.IsNumeric() {
		return nil, fmt.Errorf("column %q: %w: %s is not numeric", c.name, core.ErrValueOutOfRange, c.kind)
	}
	lo, hi, _ := target.IntegerRange()
	ints := make([]int64, c.Len())
	for i := 0; i < c.Len(); i++ {
		v, ok := c.Float64(i)
		if !ok {
			continue
		}
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("column %q: %w: %v has a fractional component", c.name, core.ErrPrecisionLoss, v)
		}
		n := int64(v)
		if n < lo || n > hi {
			return nil, fmt.Errorf("column %q: %w: %d outside [%d, %d] of %s", c.name, core.ErrValueOutOfRange, n, lo, hi, target)
		}
		ints[i] = n
	}
	valid := make([]bool, c.Len())
	copy(valid, c.valid)
	return &Column{name: c.name, kind: KindInteger, typ: target, ints: ints, valid: valid}, nil
}

func (c *Column) convertToFloat(target Type) (*Column, error) {
	if !c.IsNumeric() {
		return nil, fmt.Errorf("column %q: %w: %s is not numeric", c.name, core.ErrValueOutOfRange, c.kind)
	}
	floats := make([]float64, c.Len())
	for i := 0; i < c.Len(); i++ {
		v, ok := c.Float64(i)
		if !ok {
			continue
		}
		if target == TypeFloat32 && float64(float32(v)) != v {
			return nil, fmt.Errorf("column %q: %w: %v is not exactly representable as float32", c.name, core.ErrPrecisionLoss, v)
		}
		floats[i] = v
	}
	valid := make([]bool, c.Len())
	copy(valid, c.valid)
	return &Column{name: c.name, kind: KindFloat, typ: target, floats: floats, valid: valid}, nil
}

func (c *Column) convertToCategory() (*Column, error) {
	if c.kind == KindCategorical {
		return c.Clone(), nil
	}
	if c.kind != KindText {
		return nil, fmt.Errorf("column %q: only text columns convert to category, got %s", c.name, c.kind)
	}
	index := make(map[string]int32)
	var dict []string
	codes := make([]int32, c.Len())
	for i := 0; i < c.Len(); i++ {
		if !c.valid[i] {
			continue
		}
		code, ok := index[c.texts[i]]
		if !ok {
			code = int32(len(dict))
			index[c.texts[i]] = code
			dict = append(dict, c.texts[i])
		}
		codes[i] = code
	}
	valid := make([]bool, c.Len())
	copy(valid, c.valid)
	return &Column{name: c.name, kind: KindCategorical, typ: TypeCategory, codes: codes, dict: dict, valid: valid}, nil
}

// Clone returns a deep copy of the column
func (c *Column) Clone() *Column {
	out := &Column{name: c.name, kind: c.kind, typ: c.typ}
	out.valid = append([]bool(nil), c.valid...)
	out.ints = append([]int64(nil), c.ints...)
	out.floats = append([]float64(nil), c.floats...)
	out.texts = append([]string(nil), c.texts...)
	out.codes = append([]int32(nil), c.codes...)
	out.dict = append([]string(nil), c.dict...)
	return out
}

// filterRows keeps only the rows at the given indices, in order
func (c *Column) filterRows(keep []int) *Column {
	out := &Column{name: c.name, kind: c.kind, typ: c.typ}
	out.dict = append([]string(nil), c.dict...)
	out.valid = make([]bool, 0, len(keep))
	for _, i := range keep {
		out.valid = append(out.valid, c.valid[i])
		switch c.kind {
		case KindInteger:
			out.ints = append(out.ints, c.ints[i])
		case KindFloat:
			out.floats = append(out.floats, c.floats[i])
		case KindCategorical:
			out.codes = append(out.codes, c.codes[i])
		default:
			out.texts = append(out.texts, c.texts[i])
		}
	}
	return out
}

// MemoryBytes estimates the storage footprint at the declared width
func (c *Column) MemoryBytes() int64 {
	n := int64(c.Len())
	size := n * int64(c.typ.Bytes())
	if c.kind == KindText {
		for _, s := range c.texts {
			size += int64(len(s))
		}
	}
	if c.kind == KindCategorical {
		for _, s := range c.dict {
			size += int64(len(s))
		}
	}
	// validity bitmap, one byte per cell in this representation
	return size + n
}
