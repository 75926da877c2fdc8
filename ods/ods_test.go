// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package ods

import (
	"bytes"
	"encoding/xml"
	"io"
	"testing"
	"time"

	"github.com/UNO-SOFT/recsheet"
	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	sh := &recsheet.Sheet{
		Ref:        "A1:B3",
		AutoFilter: "A1:B3",
		Widths:     []int{10, 21},
		Cells: recsheet.Cells{
			"A1": {Type: recsheet.CellText, Value: recsheet.TextValue("amount")},
			"B1": {Type: recsheet.CellText, Value: recsheet.TextValue("<when>")},
			"A2": {Type: recsheet.CellNumber, Format: recsheet.FormatInteger, Value: recsheet.NumberValue(1000000)},
			"B2": {Type: recsheet.CellDate, Format: recsheet.FormatDate,
				Value: recsheet.DateValue(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))},
			"A3": {Type: recsheet.CellNumber, Format: recsheet.FormatDecimal, Value: recsheet.NumberValue(19.5)},
		},
	}
	wb := &recsheet.Workbook{
		Sheets:     map[string]*recsheet.Sheet{"Mis datos": sh},
		SheetNames: []string{"Mis datos"},
	}
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, wb))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, zr.File, 3)
	assert.Equal(t, "mimetype", zr.File[0].Name)
	assert.Equal(t, zip.Store, zr.File[0].Method)
	assert.Equal(t, mimeType, string(readFile(t, zr.File[0])))
	assert.Equal(t, "META-INF/manifest.xml", zr.File[1].Name)

	content := readFile(t, zr.File[2])
	var filter string
	dec := xml.NewDecoder(bytes.NewReader(content))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		require.NoError(t, err, "well-formed XML")
		if se, ok := tok.(xml.StartElement); ok && se.Name.Local == "database-range" {
			for _, a := range se.Attr {
				if a.Name.Local == "target-range-address" {
					filter = a.Value
				}
			}
		}
	}
	assert.Equal(t, "'Mis datos'.A1:'Mis datos'.B3", filter)
	s := string(content)
	for _, want := range []string{
		`<table:table table:name="Mis datos">`,
		`<text:p>&lt;when&gt;</text:p>`,
		`table:style-name="ceN0" office:value-type="float" office:value="1000000"><text:p>1,000,000</text:p>`,
		`table:style-name="ceN2" office:value-type="float" office:value="19.5"><text:p>19.50</text:p>`,
		`table:style-name="ceD0" office:value-type="date" office:date-value="2024-01-01T00:00:00"><text:p>2024-01-01</text:p>`,
		`style:column-width="1.852cm"`,
		`style:column-width="3.889cm"`,
		`<table:table-row><table:table-cell table:style-name="ceN2" office:value-type="float" office:value="19.5"><text:p>19.50</text:p></table:table-cell><table:table-cell/></table:table-row>`,
	} {
		assert.Contains(t, s, want)
	}
}

func readFile(t *testing.T, f *zip.File) []byte {
	t.Helper()
	rc, err := f.Open()
	require.NoError(t, err)
	defer rc.Close()
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	return b
}

func TestNewCell(t *testing.T) {
	assert.Equal(t, tableCell{}, newCell(nil))
	assert.Equal(t, tableCell{}, newCell(&recsheet.Cell{Type: recsheet.CellStub}))
	assert.Equal(t,
		tableCell{ValueType: "boolean", ValueAttr: "boolean-value", Value: "true", Text: "true"},
		newCell(&recsheet.Cell{Type: recsheet.CellBool, Value: recsheet.BoolValue(true)}))
	assert.Equal(t,
		tableCell{ValueType: "string", Text: "N/A"},
		newCell(&recsheet.Cell{Type: recsheet.CellText, Value: recsheet.TextValue("N/A")}))
}

func TestQuoteTable(t *testing.T) {
	for name, want := range map[string]string{
		"Datos":     "Datos",
		"Mis datos": "'Mis datos'",
		"O'Brien":   "'O''Brien'",
		"a.b":       "'a.b'",
	} {
		assert.Equal(t, want, quoteTable(name), name)
	}
}
