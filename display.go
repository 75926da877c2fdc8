// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package recsheet

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Display renders the cell's value as its format pattern would show it.
func Display(cell *Cell) string {
	if cell == nil {
		return ""
	}
	v := cell.Value
	switch cell.Format {
	case FormatInteger:
		if v.Kind() == Number {
			return printer.Sprintf("%.0f", v.Float())
		}
	case FormatDecimal:
		if v.Kind() == Number {
			return printer.Sprintf("%.2f", v.Float())
		}
	case FormatDate:
		if v.Kind() == Date {
			return v.Time().Format("2006-01-02")
		}
	case FormatDateTime:
		if v.Kind() == Date {
			return v.Time().Format("2006-01-02 15:04:05")
		}
	}
	return v.String()
}
