// Copyright 2021, 2026 Tamás Gulácsi. All rights reserved.

// Package pdf renders recsheet workbooks as printable tables.
package pdf

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/UNO-SOFT/recsheet"
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/xuri/excelize/v2"
)

// FontSize is the size of the data rows; the header is 1.375 times bigger.
var FontSize = 8.0

// landscapeColumns is the column count above which pages are turned.
const landscapeColumns = 6

// Encode renders the first sheet of the workbook to w.
func Encode(w io.Writer, wb *recsheet.Workbook) error {
	if len(wb.SheetNames) == 0 {
		return fmt.Errorf("empty workbook")
	}
	sh := wb.Sheets[wb.SheetNames[0]]
	rows, cols := extent(sh)
	if cols == 0 {
		return fmt.Errorf("%q: empty sheet", wb.SheetNames[0])
	}
	gridSize, total := GridSizes(sh.Widths, cols)

	orient := orientation.Vertical
	if cols > landscapeColumns {
		orient = orientation.Horizontal
	}
	m := maroto.New(config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orient).
		WithMaxGridSize(total).
		Build())

	header := props.Text{Size: FontSize * 1.375, Style: fontstyle.Bold, Align: align.Center}
	headerCols := make([]core.Col, cols)
	for c := range headerCols {
		headerCols[c] = text.NewCol(gridSize[c], recsheet.Display(sh.Cells[recsheet.Addr(0, c)]), header)
	}
	if err := m.RegisterHeader(row.New(FontSize * 1.2).Add(headerCols...)); err != nil {
		return err
	}

	for r := 1; r < rows; r++ {
		dataCols := make([]core.Col, cols)
		for c := range dataCols {
			cell := sh.Cells[recsheet.Addr(r, c)]
			p := props.Text{Size: FontSize, Align: align.Left}
			if cell != nil && cell.Type == recsheet.CellNumber {
				p.Align = align.Right
			}
			dataCols[c] = text.NewCol(gridSize[c], recsheet.Display(cell), p)
		}
		m.AddRow(FontSize*0.6, dataCols...)
	}

	doc, err := m.Generate()
	if err != nil {
		return err
	}
	_, err = w.Write(doc.GetBytes())
	return err
}

// GridSizes distributes the grid among the columns proportionally to
// their widths, each column getting at least one unit.
// It returns the per-column sizes and their sum.
func GridSizes(widths []int, cols int) ([]int, int) {
	var sum float64
	for c := 0; c < cols; c++ {
		sum += float64(width(widths, c))
	}
	// four grid units for an average column
	unit := sum / float64(cols) / 4
	sizes := make([]int, cols)
	var total int
	for c := range sizes {
		sizes[c] = max(1, int(math.Round(float64(width(widths, c))/unit)))
		total += sizes[c]
	}
	return sizes, total
}

func width(widths []int, c int) int {
	if c < len(widths) {
		return widths[c]
	}
	return recsheet.MinColumnWidth
}

// extent returns the number of rows and columns of the sheet's range.
func extent(sh *recsheet.Sheet) (rows, cols int) {
	_, last, ok := strings.Cut(sh.Ref, ":")
	if !ok {
		last = sh.Ref
	}
	c, r, err := excelize.CellNameToCoordinates(last)
	if err != nil {
		return 0, 0
	}
	return r, c
}
