// Copyright 2020, 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package recsheet

import (
	"database/sql/driver"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind is the dynamic type of a Value.
type Kind uint8

const (
	Null Kind = iota
	Number
	Text
	Date
	Bool
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Number:
		return "number"
	case Text:
		return "text"
	case Date:
		return "date"
	case Bool:
		return "bool"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a loosely typed record value.
// The zero Value is Null.
type Value struct {
	t    time.Time
	s    string
	f    float64
	kind Kind
	b    bool
}

func NullValue() Value             { return Value{} }
func NumberValue(f float64) Value  { return Value{kind: Number, f: f} }
func TextValue(s string) Value     { return Value{kind: Text, s: s} }
func DateValue(t time.Time) Value  { return Value{kind: Date, t: t} }
func BoolValue(b bool) Value       { return Value{kind: Bool, b: b} }
func (v Value) Kind() Kind         { return v.kind }
func (v Value) IsNull() bool       { return v.kind == Null }
func (v Value) Float() float64     { return v.f }
func (v Value) Time() time.Time    { return v.t }
func (v Value) Bool() bool         { return v.b }
func (v Value) Equal(w Value) bool { return v.kind == w.kind && v.f == w.f && v.s == w.s && v.b == w.b && v.t.Equal(w.t) }
func (v Value) GoString() string   { return fmt.Sprintf("%s(%s)", v.kind, v.String()) }

// String returns the default string representation of the value:
// shortest round-trip decimal for numbers, RFC 3339 for dates,
// "true"/"false" for booleans and the empty string for null.
func (v Value) String() string {
	switch v.kind {
	case Number:
		return formatNumber(v.f)
	case Text:
		return v.s
	case Date:
		return v.t.Format(time.RFC3339Nano)
	case Bool:
		return strconv.FormatBool(v.b)
	default:
		return ""
	}
}

func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	if f == 0 {
		// -0 too
		return "0"
	}
	if a := math.Abs(f); a >= 1e21 || a < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		// 1.5e-07 -> 1.5e-7
		if i := strings.LastIndexAny(s, "+-"); i > 0 && s[i-1] == 'e' {
			exp := strings.TrimLeft(s[i+1:], "0")
			if exp == "" {
				exp = "0"
			}
			s = s[:i+1] + exp
		}
		return s
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ValueOf converts a native Go value into a Value.
//
// Unknown types are converted with fmt.Sprint into Text.
func ValueOf(v any) Value {
	if v == nil {
		return Value{}
	}
	// sql.Null* and friends
	if vr, ok := v.(driver.Valuer); ok {
		vv, err := vr.Value()
		if err != nil || vv == nil {
			return Value{}
		}
		v = vv
	}
	switch x := v.(type) {
	case Value:
		return x
	case string:
		return TextValue(x)
	case []byte:
		return TextValue(string(x))
	case bool:
		return BoolValue(x)
	case float64:
		return NumberValue(x)
	case float32:
		return NumberValue(float64(x))
	case int:
		return NumberValue(float64(x))
	case int8:
		return NumberValue(float64(x))
	case int16:
		return NumberValue(float64(x))
	case int32:
		return NumberValue(float64(x))
	case int64:
		return NumberValue(float64(x))
	case uint:
		return NumberValue(float64(x))
	case uint8:
		return NumberValue(float64(x))
	case uint16:
		return NumberValue(float64(x))
	case uint32:
		return NumberValue(float64(x))
	case uint64:
		return NumberValue(float64(x))
	case time.Time:
		if x.IsZero() {
			return Value{}
		}
		return DateValue(x)
	case *time.Time:
		if x == nil || x.IsZero() {
			return Value{}
		}
		return DateValue(*x)
	case fmt.Stringer:
		return TextValue(x.String())
	}
	return TextValue(fmt.Sprint(v))
}
