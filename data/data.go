// Package data defines the scalar value model shared between mapped
// objects and storage.
//
// A Row is the serialization boundary: an ordered sequence of tagged
// scalars whose length and positional kinds match the owning schema's
// columns exactly. Accessing a Value through the wrong kind is a caller
// bug and panics rather than returning a zero value.
package data

import "fmt"

// RowID identifies one row within a table. It is assigned by the storage
// engine on insert and never changes afterwards.
type RowID int64

// DataType is the logical scalar kind of a column.
type DataType int

const (
	TypeString DataType = iota
	TypeBytes
	TypeInt64
	TypeFloat64
	TypeBool
)

// String returns the type name used in error messages.
func (t DataType) String() string {
	switch t {
	case TypeString:
		return "String"
	case TypeBytes:
		return "Bytes"
	case TypeInt64:
		return "Int64"
	case TypeFloat64:
		return "Float64"
	case TypeBool:
		return "Bool"
	default:
		return fmt.Sprintf("DataType(%d)", int(t))
	}
}

// Value is one scalar tagged by its DataType.
type Value struct {
	kind DataType
	str  string
	raw  []byte
	i64  int64
	f64  float64
	b    bool
}

func StringValue(s string) Value   { return Value{kind: TypeString, str: s} }
func BytesValue(b []byte) Value    { return Value{kind: TypeBytes, raw: b} }
func Int64Value(i int64) Value     { return Value{kind: TypeInt64, i64: i} }
func Float64Value(f float64) Value { return Value{kind: TypeFloat64, f64: f} }
func BoolValue(b bool) Value       { return Value{kind: TypeBool, b: b} }

// Kind returns the value's tag.
func (v Value) Kind() DataType { return v.kind }

// AsString returns the string payload. Panics if the value is not a
// String; a kind mismatch here means generated (de)serialization code is
// out of sync with its schema.
func (v Value) AsString() string {
	v.mustBe(TypeString)
	return v.str
}

// AsBytes returns the bytes payload. Panics on kind mismatch.
func (v Value) AsBytes() []byte {
	v.mustBe(TypeBytes)
	return v.raw
}

// AsInt64 returns the integer payload. Panics on kind mismatch.
func (v Value) AsInt64() int64 {
	v.mustBe(TypeInt64)
	return v.i64
}

// AsFloat64 returns the float payload. Panics on kind mismatch.
func (v Value) AsFloat64() float64 {
	v.mustBe(TypeFloat64)
	return v.f64
}

// AsBool returns the boolean payload. Panics on kind mismatch.
func (v Value) AsBool() bool {
	v.mustBe(TypeBool)
	return v.b
}

func (v Value) mustBe(want DataType) {
	if v.kind != want {
		panic(fmt.Sprintf("objmap: value is %s, accessed as %s", v.kind, want))
	}
}

// Arg returns the value in a form suitable for positional binding
// through database/sql.
func (v Value) Arg() any {
	switch v.kind {
	case TypeString:
		return v.str
	case TypeBytes:
		return v.raw
	case TypeInt64:
		return v.i64
	case TypeFloat64:
		return v.f64
	case TypeBool:
		return v.b
	default:
		panic(fmt.Sprintf("objmap: unknown value kind %d", int(v.kind)))
	}
}

// Row is an ordered sequence of values representing one table row,
// columns in schema order.
type Row []Value
