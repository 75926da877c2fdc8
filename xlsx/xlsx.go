// Copyright 2020, 2023, 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

// Package xlsx writes recsheet workbooks as Office Open XML spreadsheets.
package xlsx

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/UNO-SOFT/recsheet"
	"github.com/xuri/excelize/v2"
)

// MaxRowCount is the number of maximum rows.
const MaxRowCount = 1_048_576

var ErrTooManyRows = errors.New("too many rows")

// Encode writes the workbook to w.
func Encode(w io.Writer, wb *recsheet.Workbook) error {
	xlw := &writer{xl: excelize.NewFile()}
	defer xlw.xl.Close()
	for i, name := range wb.SheetNames {
		if i == 0 {
			if err := xlw.xl.SetSheetName("Sheet1", name); err != nil {
				return fmt.Errorf("%q: %w", name, err)
			}
		} else if _, err := xlw.xl.NewSheet(name); err != nil {
			return fmt.Errorf("%q: %w", name, err)
		}
		if err := xlw.writeSheet(name, wb.Sheets[name]); err != nil {
			return err
		}
	}
	_, err := xlw.xl.WriteTo(w)
	return err
}

type writer struct {
	xl     *excelize.File
	styles map[string]int
}

func (xlw *writer) writeSheet(name string, sh *recsheet.Sheet) error {
	for i, width := range sh.Widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err = xlw.xl.SetColWidth(name, col, col, float64(width)); err != nil {
			return fmt.Errorf("%s[%s]: %w", name, col, err)
		}
	}

	// sorted for a deterministic shared string table
	addrs := make([]string, 0, len(sh.Cells))
	for addr := range sh.Cells {
		addrs = append(addrs, addr)
	}
	sort.Strings(addrs)
	for _, addr := range addrs {
		if err := xlw.setCell(name, addr, sh.Cells[addr]); err != nil {
			return fmt.Errorf("%s[%s]: %w", name, addr, err)
		}
	}

	if sh.AutoFilter != "" {
		if err := xlw.xl.AutoFilter(name, sh.AutoFilter, nil); err != nil {
			return fmt.Errorf("%s autofilter %q: %w", name, sh.AutoFilter, err)
		}
	}
	return nil
}

func (xlw *writer) setCell(name, axis string, cell *recsheet.Cell) error {
	if cell == nil || cell.Value.IsNull() {
		return nil
	}
	if _, row, err := excelize.CellNameToCoordinates(axis); err != nil {
		if errors.Is(err, excelize.ErrMaxRows) {
			return ErrTooManyRows
		}
		return err
	} else if row > MaxRowCount {
		return ErrTooManyRows
	}
	v := cell.Value
	var err error
	switch cell.Type {
	case recsheet.CellNumber:
		err = xlw.xl.SetCellFloat(name, axis, v.Float(), -1, 64)
	case recsheet.CellDate:
		err = xlw.xl.SetCellValue(name, axis, wallClock(v.Time()))
	case recsheet.CellBool:
		err = xlw.xl.SetCellBool(name, axis, v.Bool())
	case recsheet.CellStub:
		return nil
	default:
		err = xlw.xl.SetCellStr(name, axis, v.String())
	}
	if err != nil {
		return err
	}
	if cell.Format == "" {
		return nil
	}
	s, err := xlw.getStyle(cell.Format)
	if err != nil {
		return err
	}
	return xlw.xl.SetCellStyle(name, axis, axis, s)
}

func (xlw *writer) getStyle(format string) (int, error) {
	if s, ok := xlw.styles[format]; ok {
		return s, nil
	}
	s, err := xlw.xl.NewStyle(&excelize.Style{CustomNumFmt: &format})
	if err != nil {
		return 0, fmt.Errorf("%q: %w", format, err)
	}
	if xlw.styles == nil {
		xlw.styles = make(map[string]int)
	}
	xlw.styles[format] = s
	return s, nil
}

// wallClock returns t's wall clock in UTC, as spreadsheet dates have no zone.
func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(),
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
