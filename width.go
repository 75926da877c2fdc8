// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package recsheet

import "unicode/utf16"

const (
	// MinColumnWidth is the narrowest column, in characters.
	MinColumnWidth = 10
	// dateWidth is len("yyyy-mm-dd hh:mm:ss").
	dateWidth = 19
	// filterPad leaves room for the auto-filter arrow.
	filterPad = 2
)

// EstimateWidths returns one width per column of the first record,
// in header order, sized to fit the header and every stringified cell.
func EstimateWidths(records []Record) []int {
	if len(records) == 0 {
		return []int{}
	}
	headers := records[0].Keys()
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = max(MinColumnWidth, textLength(h))
	}
	for _, rec := range records {
		for i, h := range headers {
			widths[i] = max(widths[i], cellLength(rec.Get(h))+filterPad)
		}
	}
	return widths
}

func cellLength(v Value) int {
	switch v.Kind() {
	case Null:
		return 0
	case Date:
		return dateWidth
	default:
		return textLength(v.String())
	}
}

// textLength counts UTF-16 code units, so characters outside the
// Basic Multilingual Plane count twice.
func textLength(s string) int {
	var n int
	for _, r := range s {
		n += max(1, utf16.RuneLen(r))
	}
	return n
}
