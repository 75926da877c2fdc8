// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package ods

import (
	"io"

	qt "github.com/valyala/quicktemplate"
)

const contentHeader = `<?xml version="1.0" encoding="UTF-8"?>
<office:document-content xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0" xmlns:style="urn:oasis:names:tc:opendocument:xmlns:style:1.0" xmlns:text="urn:oasis:names:tc:opendocument:xmlns:text:1.0" xmlns:table="urn:oasis:names:tc:opendocument:xmlns:table:1.0" xmlns:number="urn:oasis:names:tc:opendocument:xmlns:datastyle:1.0" xmlns:fo="urn:oasis:names:tc:opendocument:xmlns:xsl-fo-compatible:1.0" office:version="1.2">
<office:automatic-styles>
`

// dataStyles are the number and date styles of the four display formats,
// with a cell style referring to each.
const dataStyles = `
<number:number-style style:name="N0"><number:number number:decimal-places="0" number:min-integer-digits="1" number:grouping="true"/></number:number-style>
<number:number-style style:name="N2"><number:number number:decimal-places="2" number:min-decimal-places="2" number:min-integer-digits="1" number:grouping="true"/></number:number-style>
<number:date-style style:name="D0"><number:year number:style="long"/><number:text>-</number:text><number:month number:style="long"/><number:text>-</number:text><number:day number:style="long"/></number:date-style>
<number:date-style style:name="D1"><number:year number:style="long"/><number:text>-</number:text><number:month number:style="long"/><number:text>-</number:text><number:day number:style="long"/><number:text> </number:text><number:hours number:style="long"/><number:text>:</number:text><number:minutes number:style="long"/><number:text>:</number:text><number:seconds number:style="long"/></number:date-style>
<style:style style:name="ceN0" style:family="table-cell" style:data-style-name="N0"/>
<style:style style:name="ceN2" style:family="table-cell" style:data-style-name="N2"/>
<style:style style:name="ceD0" style:family="table-cell" style:data-style-name="D0"/>
<style:style style:name="ceD1" style:family="table-cell" style:data-style-name="D1"/>
`

// writeContent writes content.xml of the tables.
func writeContent(w io.Writer, tables []table) {
	qw := qt.AcquireWriter(w)
	defer qt.ReleaseWriter(qw)
	streamContent(qw, tables)
}

func streamContent(qw *qt.Writer, tables []table) {
	qw.N().S(contentHeader)
	qw.N().S(dataStyles)
	qw.N().S("\n")
	for _, t := range tables {
		for _, c := range t.Columns {
			qw.N().S(`<style:style style:name="`)
			qw.E().S(c.Style)
			qw.N().S(`" style:family="table-column"><style:table-column-properties style:column-width="`)
			qw.E().S(c.Width)
			qw.N().S("\"/></style:style>\n")
		}
	}
	qw.N().S("</office:automatic-styles>\n<office:body>\n<office:spreadsheet>\n")
	for _, t := range tables {
		qw.N().S(`<table:table table:name="`)
		qw.E().S(t.Name)
		qw.N().S("\">\n")
		for _, c := range t.Columns {
			qw.N().S(`<table:table-column table:style-name="`)
			qw.E().S(c.Style)
			qw.N().S(`"/>`)
		}
		qw.N().S("\n")
		for _, row := range t.Rows {
			qw.N().S(`<table:table-row>`)
			for _, c := range row {
				streamCell(qw, c)
			}
			qw.N().S("</table:table-row>\n")
		}
		qw.N().S("</table:table>\n")
	}
	qw.N().S("<table:database-ranges>\n")
	for i, t := range tables {
		if t.Filter == "" {
			continue
		}
		qw.N().S(`<table:database-range table:name="__Anonymous_Sheet_DB__`)
		qw.N().D(i)
		qw.N().S(`" table:target-range-address="`)
		qw.E().S(t.Filter)
		qw.N().S("\" table:display-filter-buttons=\"true\"/>\n")
	}
	qw.N().S("</table:database-ranges>\n</office:spreadsheet>\n</office:body>\n</office:document-content>\n")
}

func streamCell(qw *qt.Writer, c tableCell) {
	if c.ValueType == "" {
		qw.N().S(`<table:table-cell/>`)
		return
	}
	qw.N().S(`<table:table-cell`)
	if c.Style != "" {
		qw.N().S(` table:style-name="`)
		qw.E().S(c.Style)
		qw.N().S(`"`)
	}
	qw.N().S(` office:value-type="`)
	qw.E().S(c.ValueType)
	qw.N().S(`"`)
	if c.ValueAttr != "" {
		qw.N().S(` office:`)
		qw.N().S(c.ValueAttr)
		qw.N().S(`="`)
		qw.E().S(c.Value)
		qw.N().S(`"`)
	}
	qw.N().S(`><text:p>`)
	qw.E().S(c.Text)
	qw.N().S(`</text:p></table:table-cell>`)
}
