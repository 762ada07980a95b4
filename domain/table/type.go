package table

// Type identifies the storage type currently declared for a column. Numeric
// widths form a fixed catalog; narrowing between them is an explicit,
// validated state transition (see Column.Convert).
type Type string

const (
	TypeUint8    Type = "uint8"
	TypeUint16   Type = "uint16"
	TypeUint32   Type = "uint32"
	TypeInt8     Type = "int8"
	TypeInt16    Type = "int16"
	TypeInt32    Type = "int32"
	TypeInt64    Type = "int64"
	TypeFloat32  Type = "float32"
	TypeFloat64  Type = "float64"
	TypeText     Type = "text"
	TypeCategory Type = "category"
)

// Bytes returns the per-value storage width in bytes. Text is reported as a
// pointer-sized reference, category as a 32-bit dictionary code.
func (t Type) Bytes() int {
	switch t {
	case TypeUint8, TypeInt8:
		return 1
	case TypeUint16, TypeInt16:
		return 2
	case TypeUint32, TypeInt32, TypeFloat32, TypeCategory:
		return 4
	default:
		return 8
	}
}

// IsInteger reports whether the type is a fixed-width integer
func (t Type) IsInteger() bool {
	switch t {
	case TypeUint8, TypeUint16, TypeUint32, TypeInt8, TypeInt16, TypeInt32, TypeInt64:
		return true
	}
	return false
}

// IsFloat reports whether the type is a floating-point width
func (t Type) IsFloat() bool {
	return t == TypeFloat32 || t == TypeFloat64
}

// IsNumeric reports whether the type holds numbers
func (t Type) IsNumeric() bool {
	return t.IsInteger() || t.IsFloat()
}

// IntegerRange returns the inclusive value range of an integer type
func (t Type) IntegerRange() (min int64, max int64, ok bool) {
	switch t {
	case TypeUint8:
		return 0, 255, true
	case TypeUint16:
		return 0, 65535, true
	case TypeUint32:
		return 0, 4294967295, true
	case TypeInt8:
		return -128, 127, true
	case TypeInt16:
		return -32768, 32767, true
	case TypeInt32:
		return -2147483648, 2147483647, true
	case TypeInt64:
		return -9223372036854775808, 9223372036854775807, true
	}
	return 0, 0, false
}
