// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package recsheet

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

var (
	ErrInvalidJSON = errors.New("invalid JSON")
	ErrNotArray    = errors.New("not an array of objects")
)

// ParseJSONRecords parses a JSON array of flat objects into records,
// keeping the key order of each object.
//
// Nested objects and arrays are kept as their raw JSON text.
func ParseJSONRecords(data []byte) ([]Record, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, ErrNotArray
	}
	var records []Record
	var err error
	root.ForEach(func(_, item gjson.Result) bool {
		if !item.IsObject() {
			err = fmt.Errorf("%d. item is %s: %w", len(records), item.Type, ErrNotArray)
			return false
		}
		var rec Record
		item.ForEach(func(key, val gjson.Result) bool {
			// the last of duplicate keys wins, at the first one's position
			rec.Set(key.String(), jsonValue(val))
			return true
		})
		records = append(records, rec)
		return true
	})
	return records, err
}

func jsonValue(v gjson.Result) Value {
	switch v.Type {
	case gjson.Null:
		return Value{}
	case gjson.Number:
		return NumberValue(v.Float())
	case gjson.String:
		return TextValue(v.Str)
	case gjson.True:
		return BoolValue(true)
	case gjson.False:
		return BoolValue(false)
	default:
		return TextValue(v.Raw)
	}
}
