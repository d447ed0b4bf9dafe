package model

import (
	"fmt"
	"strconv"
)

// ValueKind is the type tag of a Value.
type ValueKind int

const (
	ValueNull ValueKind = iota
	ValueDouble
	ValueInteger
	ValueBoolean
	ValueString
)

// String returns the name of the kind.
func (k ValueKind) String() string {
	switch k {
	case ValueNull:
		return "null"
	case ValueDouble:
		return "double"
	case ValueInteger:
		return "integer"
	case ValueBoolean:
		return "boolean"
	case ValueString:
		return "string"
	default:
		return fmt.Sprintf("ValueKind(%d)", int(k))
	}
}

// Value is a typed cell of a multi-value table or an instance parameter value.
type Value struct {
	Kind    ValueKind
	Double  float64
	Integer int64
	Boolean bool
	String  string
}

// NullValue returns the empty cell.
func NullValue() Value { return Value{Kind: ValueNull} }

// DoubleValue returns a double cell.
func DoubleValue(v float64) Value { return Value{Kind: ValueDouble, Double: v} }

// IntegerValue returns an integer cell.
func IntegerValue(v int64) Value { return Value{Kind: ValueInteger, Integer: v} }

// BooleanValue returns a boolean cell.
func BooleanValue(v bool) Value { return Value{Kind: ValueBoolean, Boolean: v} }

// StringValue returns a string cell.
func StringValue(v string) Value { return Value{Kind: ValueString, String: v} }

// IsNull reports whether the value is the empty cell.
func (v Value) IsNull() bool { return v.Kind == ValueNull }

// Text renders the value for display.
func (v Value) Text() string {
	switch v.Kind {
	case ValueDouble:
		return strconv.FormatFloat(v.Double, 'g', -1, 64)
	case ValueInteger:
		return strconv.FormatInt(v.Integer, 10)
	case ValueBoolean:
		return strconv.FormatBool(v.Boolean)
	case ValueString:
		return v.String
	default:
		return ""
	}
}
