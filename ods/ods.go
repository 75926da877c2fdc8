// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

// Package ods writes recsheet workbooks as OpenDocument spreadsheets.
package ods

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/UNO-SOFT/recsheet"
	"github.com/klauspost/compress/zip"
	"github.com/xuri/excelize/v2"
)

const mimeType = "application/vnd.oasis.opendocument.spreadsheet"

const manifest = `<?xml version="1.0" encoding="UTF-8"?>
<manifest:manifest xmlns:manifest="urn:oasis:names:tc:opendocument:xmlns:manifest:1.0" manifest:version="1.2">
<manifest:file-entry manifest:full-path="/" manifest:version="1.2" manifest:media-type="` + mimeType + `"/>
<manifest:file-entry manifest:full-path="content.xml" manifest:media-type="text/xml"/>
</manifest:manifest>
`

// cm per character of column width: 7px at 96dpi.
const charWidthCM = 7.0 / 96 * 2.54

var cellStyles = map[string]string{
	recsheet.FormatInteger:  "ceN0",
	recsheet.FormatDecimal:  "ceN2",
	recsheet.FormatDate:     "ceD0",
	recsheet.FormatDateTime: "ceD1",
}

type table struct {
	Name    string
	Filter  string
	Columns []column
	Rows    [][]tableCell
}

type column struct {
	Style, Width string
}

type tableCell struct {
	Style, ValueType, ValueAttr, Value, Text string
}

// Encode writes the workbook to w.
func Encode(w io.Writer, wb *recsheet.Workbook) error {
	tables := make([]table, 0, len(wb.SheetNames))
	var colStyles int
	for _, name := range wb.SheetNames {
		t, err := newTable(name, wb.Sheets[name], &colStyles)
		if err != nil {
			return fmt.Errorf("%q: %w", name, err)
		}
		tables = append(tables, t)
	}

	zw := zip.NewWriter(w)
	// mimetype must be the first, uncompressed entry.
	fw, err := zw.CreateHeader(&zip.FileHeader{Name: "mimetype", Method: zip.Store})
	if err != nil {
		return err
	}
	if _, err = io.WriteString(fw, mimeType); err != nil {
		return err
	}
	if fw, err = zw.Create("META-INF/manifest.xml"); err != nil {
		return err
	}
	if _, err = io.WriteString(fw, manifest); err != nil {
		return err
	}
	if fw, err = zw.Create("content.xml"); err != nil {
		return err
	}
	writeContent(fw, tables)
	return zw.Close()
}

func newTable(name string, sh *recsheet.Sheet, colStyles *int) (table, error) {
	t := table{Name: name}
	if sh.Ref == "" {
		return t, nil
	}
	rng, err := decodeRef(sh.Ref)
	if err != nil {
		return t, err
	}
	for c := 0; c <= rng.EndCol; c++ {
		width := recsheet.MinColumnWidth
		if c < len(sh.Widths) {
			width = sh.Widths[c]
		}
		*colStyles++
		t.Columns = append(t.Columns, column{
			Style: "co" + strconv.Itoa(*colStyles),
			Width: strconv.FormatFloat(float64(width)*charWidthCM, 'f', 3, 64) + "cm",
		})
	}
	t.Rows = make([][]tableCell, rng.EndRow+1)
	for r := range t.Rows {
		row := make([]tableCell, rng.EndCol+1)
		for c := range row {
			row[c] = newCell(sh.Cells[recsheet.Addr(r, c)])
		}
		t.Rows[r] = row
	}
	if sh.AutoFilter != "" {
		first, last, _ := strings.Cut(sh.AutoFilter, ":")
		if last == "" {
			last = first
		}
		q := quoteTable(name)
		t.Filter = q + "." + first + ":" + q + "." + last
	}
	return t, nil
}

func newCell(cell *recsheet.Cell) tableCell {
	if cell == nil || cell.Value.IsNull() || cell.Type == recsheet.CellStub {
		return tableCell{}
	}
	tc := tableCell{Style: cellStyles[cell.Format], Text: recsheet.Display(cell)}
	v := cell.Value
	switch cell.Type {
	case recsheet.CellNumber:
		tc.ValueType, tc.ValueAttr = "float", "value"
		tc.Value = strconv.FormatFloat(v.Float(), 'f', -1, 64)
	case recsheet.CellDate:
		tc.ValueType, tc.ValueAttr = "date", "date-value"
		tc.Value = v.Time().Format("2006-01-02T15:04:05")
	case recsheet.CellBool:
		tc.ValueType, tc.ValueAttr = "boolean", "boolean-value"
		tc.Value = strconv.FormatBool(v.Bool())
	default:
		tc.ValueType = "string"
	}
	return tc
}

// quoteTable quotes a table name for a cell range address, if needed.
func quoteTable(name string) string {
	if !strings.ContainsAny(name, " '.:!-") {
		return name
	}
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

// decodeRef returns the zero-based bounds of an "A1:C3" reference.
func decodeRef(ref string) (recsheet.CellRange, error) {
	var rng recsheet.CellRange
	first, last, ok := strings.Cut(ref, ":")
	if !ok {
		last = first
	}
	var err error
	if rng.StartRow, rng.StartCol, err = parseAddr(first); err != nil {
		return rng, err
	}
	rng.EndRow, rng.EndCol, err = parseAddr(last)
	return rng, err
}

func parseAddr(addr string) (row, col int, err error) {
	c, r, err := excelize.CellNameToCoordinates(addr)
	return r - 1, c - 1, err
}
