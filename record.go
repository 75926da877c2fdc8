// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package recsheet

// Field is a named value of a Record.
type Field struct {
	Name  string
	Value Value
}

// Record is an ordered mapping from column name to value.
type Record []Field

// R builds a Record from alternating name, value arguments,
// converting the values with ValueOf.
func R(nameValues ...any) Record {
	rec := make(Record, 0, len(nameValues)/2)
	for i := 0; i+1 < len(nameValues); i += 2 {
		name, _ := nameValues[i].(string)
		rec = append(rec, Field{Name: name, Value: ValueOf(nameValues[i+1])})
	}
	return rec
}

// Keys returns the column names in order.
func (rec Record) Keys() []string {
	keys := make([]string, len(rec))
	for i, f := range rec {
		keys[i] = f.Name
	}
	return keys
}

// Get returns the value of the named column, Null if it is missing.
func (rec Record) Get(name string) Value {
	for _, f := range rec {
		if f.Name == name {
			return f.Value
		}
	}
	return Value{}
}

// Set replaces the named column's value, or appends it.
func (rec *Record) Set(name string, v Value) {
	for i, f := range *rec {
		if f.Name == name {
			(*rec)[i].Value = v
			return
		}
	}
	*rec = append(*rec, Field{Name: name, Value: v})
}

// HeaderMap maps column names to their zero-based position.
type HeaderMap map[string]int

// NewHeaderMap returns the HeaderMap of the record's keys.
func NewHeaderMap(first Record) HeaderMap {
	hm := make(HeaderMap, len(first))
	for i, f := range first {
		hm[f.Name] = i
	}
	return hm
}
