// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

// Package sheetlib is the default recsheet.Library.
package sheetlib

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/UNO-SOFT/recsheet"
	"github.com/UNO-SOFT/recsheet/ods"
	"github.com/UNO-SOFT/recsheet/pdf"
	"github.com/UNO-SOFT/recsheet/xlsx"
	"github.com/xuri/excelize/v2"
)

var _ = recsheet.Library(Library{})

var (
	ErrDuplicateSheet = errors.New("duplicate sheet name")
	ErrEmptySheetName = errors.New("empty sheet name")
)

// Library builds sheets in memory and serializes them with the
// xlsx, ods and pdf packages.
type Library struct{}

// New returns a Library.
func New() Library { return Library{} }

// SheetFromRecords implements recsheet.Library.
//
// The header row holds the first record's keys; dates stay dates,
// null values produce no cell.
func (Library) SheetFromRecords(records []recsheet.Record) *recsheet.Sheet {
	sh := &recsheet.Sheet{Cells: make(recsheet.Cells)}
	if len(records) == 0 {
		return sh
	}
	headers := records[0].Keys()
	for c, h := range headers {
		sh.Cells[recsheet.Addr(0, c)] = &recsheet.Cell{Type: recsheet.CellText, Value: recsheet.TextValue(h)}
	}
	for r, rec := range records {
		for c, h := range headers {
			v := rec.Get(h)
			if v.IsNull() {
				continue
			}
			sh.Cells[recsheet.Addr(r+1, c)] = &recsheet.Cell{Type: guessType(v), Value: v}
		}
	}
	sh.Ref = Library{}.EncodeRange(recsheet.CellRange{
		EndRow: len(records), EndCol: max(len(headers)-1, 0),
	})
	return sh
}

func guessType(v recsheet.Value) recsheet.CellType {
	switch v.Kind() {
	case recsheet.Number:
		return recsheet.CellNumber
	case recsheet.Date:
		return recsheet.CellDate
	case recsheet.Bool:
		return recsheet.CellBool
	case recsheet.Null:
		return recsheet.CellStub
	default:
		return recsheet.CellText
	}
}

// DecodeRange implements recsheet.Library.
func (Library) DecodeRange(ref string) (recsheet.CellRange, error) {
	first, last, ok := strings.Cut(ref, ":")
	if !ok {
		last = first
	}
	c1, r1, err := excelize.CellNameToCoordinates(first)
	if err != nil {
		return recsheet.CellRange{}, fmt.Errorf("%q: %w", ref, err)
	}
	c2, r2, err := excelize.CellNameToCoordinates(last)
	if err != nil {
		return recsheet.CellRange{}, fmt.Errorf("%q: %w", ref, err)
	}
	return recsheet.CellRange{
		StartRow: min(r1, r2) - 1, StartCol: min(c1, c2) - 1,
		EndRow: max(r1, r2) - 1, EndCol: max(c1, c2) - 1,
	}, nil
}

// EncodeRange implements recsheet.Library.
func (Library) EncodeRange(rng recsheet.CellRange) string {
	first := recsheet.Addr(rng.StartRow, rng.StartCol)
	last := recsheet.Addr(rng.EndRow, rng.EndCol)
	if first == last {
		return first
	}
	return first + ":" + last
}

// NewWorkbook implements recsheet.Library.
func (Library) NewWorkbook() *recsheet.Workbook {
	return &recsheet.Workbook{Sheets: make(map[string]*recsheet.Sheet)}
}

// AppendSheet implements recsheet.Library.
func (Library) AppendSheet(wb *recsheet.Workbook, sh *recsheet.Sheet, name string) error {
	if name == "" {
		return ErrEmptySheetName
	}
	if _, ok := wb.Sheets[name]; ok {
		return fmt.Errorf("%q: %w", name, ErrDuplicateSheet)
	}
	wb.Sheets[name] = sh
	wb.SheetNames = append(wb.SheetNames, name)
	return nil
}

// Write implements recsheet.Library.
func (Library) Write(wb *recsheet.Workbook, format recsheet.Format) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch format {
	case recsheet.XLSX:
		err = xlsx.Encode(&buf, wb)
	case recsheet.ODS:
		err = ods.Encode(&buf, wb)
	case recsheet.PDF:
		err = pdf.Encode(&buf, wb)
	default:
		return nil, fmt.Errorf("%q: %w", format, recsheet.ErrUnknownFormat)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
