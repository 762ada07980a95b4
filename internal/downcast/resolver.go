// Package downcast selects the narrowest fixed-width storage type that can
// losslessly represent a numeric column's observed values.
package downcast

import (
	"cleanframe/domain/table"
)

// The catalog is consulted in this fixed priority so the narrowest fitting
// type wins. Unsigned widths come first for non-negative ranges, signed
// widths otherwise; floating widths only ever narrow float storage.
var (
	unsignedCatalog = []table.Type{table.TypeUint8, table.TypeUint16, table.TypeUint32}
	signedCatalog   = []table.Type{table.TypeInt8, table.TypeInt16, table.TypeInt32}
)

// Input is everything the resolver considers. For identical inputs the
// decision is always identical: no randomness, no dependency on column
// order.
type Input struct {
	Min float64
	Max float64
	// Integer is true when no present value has a fractional component.
	Integer bool
	// HasMissing flags the presence of missing entries. Storage carries
	// missing in an out-of-band validity bitmap, so every catalog type can
	// hold the marker; the flag is part of the contract so that a storage
	// model with in-band sentinels could refuse integer targets here.
	HasMissing bool
	// Float32Lossless is true when every present value survives a round
	// trip through 32-bit float exactly.
	Float32Lossless bool
	// Current is the column's declared storage type.
	Current table.Type
}

// Resolver is a pure decision function consumed by the transform engine
type Resolver struct{}

// NewResolver creates a new downcast resolver
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve returns the narrowest safe target type strictly narrower than the
// current storage, or false when the original width is already minimal. It
// never proposes a narrowing that would drop information: out-of-range
// values, fractional precision, or the missing marker.
func (r *Resolver) Resolve(in Input) (table.Type, bool) {
	if in.Integer {
		return r.resolveInteger(in)
	}
	return r.resolveFloat(in)
}

func (r *Resolver) resolveInteger(in Input) (table.Type, bool) {
	catalog := signedCatalog
	if in.Min >= 0 {
		catalog = unsignedCatalog
	}
	for _, t := range catalog {
		lo, hi, _ := t.IntegerRange()
		if in.Min >= float64(lo) && in.Max <= float64(hi) && t.Bytes() < in.Current.Bytes() {
			return t, true
		}
	}
	return "", false
}

func (r *Resolver) resolveFloat(in Input) (table.Type, bool) {
	if in.Current == table.TypeFloat64 && in.Float32Lossless {
		return table.TypeFloat32, true
	}
	return "", false
}
