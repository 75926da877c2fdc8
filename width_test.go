// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package recsheet

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEstimateWidths(t *testing.T) {
	assert.Empty(t, EstimateWidths(nil))

	records := []Record{
		R("id", 1, "a_rather_long_header", "x", "when", time.Now(), "amount", 1000000, "note", nil),
		R("id", 2, "a_rather_long_header", "y", "when", nil, "amount", 19.5, "note", "N/A"),
	}
	widths := EstimateWidths(records)
	assert.Equal(t, []int{10, 20, 21, 10, 10}, widths)
	for _, w := range widths {
		assert.GreaterOrEqual(t, w, MinColumnWidth)
	}

	// the first record defines the columns
	records = append(records, R("id", 3, "extra", strings.Repeat("z", 50)))
	assert.Len(t, EstimateWidths(records), 5)
}

func TestEstimateWidthsMonotone(t *testing.T) {
	records := []Record{R("name", "Bob")}
	prev := EstimateWidths(records)[0]
	for _, s := range []string{"Alice", "Bartholomew the Third", "Al", "Maximilian Longname-Smithersonson"} {
		records = append(records, R("name", s))
		w := EstimateWidths(records)[0]
		assert.GreaterOrEqual(t, w, prev, s)
		assert.GreaterOrEqual(t, w, len(s)+2, s)
		prev = w
	}
	assert.Equal(t, len("Maximilian Longname-Smithersonson")+2, prev)
}

func TestEstimateWidthsCountsCharacters(t *testing.T) {
	records := []Record{R("név", "árvíztűrő tükörfúrógép")}
	assert.Equal(t, []int{24}, EstimateWidths(records))

	// emoji are two UTF-16 units each
	records = []Record{R("e", "😀😀😀😀😀😀")}
	assert.Equal(t, []int{14}, EstimateWidths(records))
}
