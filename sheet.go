// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package recsheet

import "strconv"

// CellType is the one-character type tag of a cell.
type CellType byte

const (
	CellNumber CellType = 'n'
	CellDate   CellType = 'd'
	CellText   CellType = 's'
	CellBool   CellType = 'b'
	CellStub   CellType = 'z'
)

func (t CellType) String() string { return string(rune(t)) }

// Display format patterns.
const (
	FormatInteger  = "#,##0"
	FormatDecimal  = "#,##0.00"
	FormatDate     = "yyyy-mm-dd"
	FormatDateTime = "yyyy-mm-dd hh:mm:ss"
)

// Cell is a single sheet cell.
type Cell struct {
	Value  Value
	Format string
	Type   CellType
}

// Cells holds the cells of a sheet by A1-style address.
type Cells map[string]*Cell

// CellRange is an inclusive rectangle of zero-based coordinates.
// Row 0 is the header row.
type CellRange struct {
	StartRow, StartCol int
	EndRow, EndCol     int
}

// Rows returns the number of rows covered.
func (r CellRange) Rows() int { return r.EndRow - r.StartRow + 1 }

// Cols returns the number of columns covered.
func (r CellRange) Cols() int { return r.EndCol - r.StartCol + 1 }

// Sheet is a single worksheet.
type Sheet struct {
	Cells Cells
	// Ref is the reference of the occupied range, such as "A1:C3".
	Ref string
	// AutoFilter is the reference of the auto-filter range, if any.
	AutoFilter string
	// Widths are the column widths in characters.
	Widths []int
}

// Workbook is an ordered set of sheets.
type Workbook struct {
	Sheets     map[string]*Sheet
	SheetNames []string
}

// ColLetter returns the spreadsheet column label of the zero-based column index
// (0 -> A, 25 -> Z, 26 -> AA).
func ColLetter(n int) string {
	var a [16]byte
	i := len(a)
	for n >= 0 && i > 0 {
		i--
		a[i] = byte('A' + n%26)
		n = n/26 - 1
	}
	return string(a[i:])
}

// Addr returns the A1-style address of the zero-based row and column.
func Addr(row, col int) string {
	return ColLetter(col) + strconv.Itoa(row+1)
}
