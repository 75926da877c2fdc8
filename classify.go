// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package recsheet

import (
	"math"
	"regexp"
	"strconv"
	"time"
)

var rISODateTime = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}`)

// Layouts tried, in order, on strings that look like ISO date-times.
// Fractional seconds are accepted after the seconds field by time.Parse.
var isoLayouts = [...]struct {
	layout string
	zoned  bool
}{
	{"2006-01-02T15:04:05Z07:00", true},
	{"2006-01-02T15:04Z07:00", true},
	{"2006-01-02T15:04:05", false},
	{"2006-01-02T15:04", false},
}

// Classifier re-derives the type and display format of sheet cells.
//
// The zero Classifier interprets zoneless date-times in time.Local.
type Classifier struct {
	// Location is the zone of zoneless date-times and of the midnight check.
	Location *time.Location
}

func (c Classifier) location() *time.Location {
	if c.Location != nil {
		return c.Location
	}
	return time.Local
}

// Classify re-types every data cell (rows after the header) of the given range
// in the columns of hm.
//
// Null and missing cells are left alone; everything else becomes a
// number, a date or a text cell with the matching format pattern.
func (c Classifier) Classify(cells Cells, hm HeaderMap, rng CellRange) {
	for _, ci := range hm {
		col := ColLetter(ci)
		for r := rng.StartRow + 1; r <= rng.EndRow; r++ {
			cell := cells[col+strconv.Itoa(r+1)]
			if cell == nil {
				continue
			}
			c.ClassifyCell(cell)
		}
	}
}

// ClassifyCell re-types a single cell in place.
func (c Classifier) ClassifyCell(cell *Cell) {
	v := cell.Value
	if v.IsNull() {
		return
	}

	if v.Kind() == Number {
		cell.Type = CellNumber
		if f := v.Float(); f == math.Trunc(f) && !math.IsInf(f, 0) {
			cell.Format = FormatInteger
		} else {
			cell.Format = FormatDecimal
		}
		return
	}

	if t, ok := c.ParseDate(v); ok {
		cell.Type, cell.Value = CellDate, DateValue(t)
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
			cell.Format = FormatDate
		} else {
			cell.Format = FormatDateTime
		}
		return
	}

	cell.Type, cell.Value, cell.Format = CellText, TextValue(v.String()), ""
}

// ParseDate returns the date of v, in the Classifier's location,
// if v is a date or an ISO-like "YYYY-MM-DDThh:mm..." string that parses as one.
func (c Classifier) ParseDate(v Value) (time.Time, bool) {
	loc := c.location()
	switch v.Kind() {
	case Date:
		return v.Time().In(loc), true
	case Text:
		s := v.String()
		if !rISODateTime.MatchString(s) {
			return time.Time{}, false
		}
		if t, ok := parseISO(s, loc); ok {
			return t.In(loc), true
		}
		// 24:00 is the midnight ending the day
		if s[11:13] == "24" {
			t, ok := parseISO(s[:11]+"00"+s[13:], loc)
			if ok && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
				return t.AddDate(0, 0, 1).In(loc), true
			}
		}
	}
	return time.Time{}, false
}

// parseISO parses s with the first matching layout, in its own zone if it has one.
func parseISO(s string, loc *time.Location) (time.Time, bool) {
	for _, l := range isoLayouts {
		var t time.Time
		var err error
		if l.zoned {
			t, err = time.Parse(l.layout, s)
		} else {
			t, err = time.ParseInLocation(l.layout, s, loc)
		}
		if err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
