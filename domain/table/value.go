package table

import (
	"bytes"
	"fmt"
	"strconv"
)

// ValueKind discriminates the variants of a cell value
type ValueKind int

const (
	ValueMissing ValueKind = iota
	ValueInt
	ValueFloat
	ValueText
)

// Value represents a single cell with an explicit missing state. Missing is
// carried out of band (never as an in-band sentinel), so every storage type
// can represent "no value present".
type Value struct {
	Kind  ValueKind
	Int   int64
	Float float64
	Text  string
}

// NewIntValue creates an integer value
func NewIntValue(v int64) Value {
	return Value{Kind: ValueInt, Int: v}
}

// NewFloatValue creates a floating-point value
func NewFloatValue(v float64) Value {
	return Value{Kind: ValueFloat, Float: v}
}

// NewTextValue creates a text value
func NewTextValue(s string) Value {
	return Value{Kind: ValueText, Text: s}
}

// NewMissingValue creates a missing value
func NewMissingValue() Value {
	return Value{Kind: ValueMissing}
}

// IsMissing returns true if the value is missing
func (v Value) IsMissing() bool {
	return v.Kind == ValueMissing
}

// String returns the string representation of the value
func (v Value) String() string {
	switch v.Kind {
	case ValueInt:
		return strconv.FormatInt(v.Int, 10)
	case ValueFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case ValueText:
		return v.Text
	}
	return "<missing>"
}

// Equal reports whether two values are equal. Missing equals missing.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case ValueInt:
		return v.Int == other.Int
	case ValueFloat:
		return v.Float == other.Float
	case ValueText:
		return v.Text == other.Text
	}
	return true
}

// encode appends a stable byte encoding of the value, used for row
// fingerprints. A kind tag plus separator keeps adjacent cells unambiguous.
func (v Value) encode(buf *bytes.Buffer) {
	switch v.Kind {
	case ValueInt:
		fmt.Fprintf(buf, "i:%d", v.Int)
	case ValueFloat:
		fmt.Fprintf(buf, "f:%x", v.Float)
	case ValueText:
		fmt.Fprintf(buf, "t:%d:%s", len(v.Text), v.Text)
	default:
		buf.WriteString("m")
	}
	buf.WriteByte(0x1f)
}
