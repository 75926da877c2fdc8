// Copyright 2020, 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

// Package recsheet turns a batch of uniformly shaped records into a
// single-sheet spreadsheet: it classifies every cell as a number, date or text
// with a display format, sizes the columns, adds an auto-filter and hands the
// serialized document to a download Host.
package recsheet

import (
	"errors"
	"strings"
)

// Library is the spreadsheet serialization collaborator.
type Library interface {
	// SheetFromRecords builds a sheet with a header row and one row per record,
	// guessing an initial type per cell. Null values produce no cell.
	SheetFromRecords(records []Record) *Sheet
	// DecodeRange parses an "A1:C3" style reference.
	DecodeRange(ref string) (CellRange, error)
	// EncodeRange is the inverse of DecodeRange.
	EncodeRange(rng CellRange) string
	NewWorkbook() *Workbook
	AppendSheet(wb *Workbook, sh *Sheet, name string) error
	// Write serializes the workbook in the given container format.
	Write(wb *Workbook, format Format) ([]byte, error)
}

// Host is the environment that turns a blob into a download.
type Host interface {
	// CreateObjectURL returns a temporary reference to the blob.
	CreateObjectURL(Blob) string
	// RevokeObjectURL releases the reference. Revoking twice is a no-op.
	RevokeObjectURL(ref string)
	// Download hands the referenced blob to the user as fileName.
	Download(ref, fileName string) error
}

// Executor runs posted tasks after the current call returns.
type Executor interface {
	Post(task func())
}

// Blob is an in-memory document with its MIME type.
type Blob struct {
	Type string
	Data []byte
}

// Format is a container format.
type Format string

const (
	XLSX Format = "xlsx"
	ODS  Format = "ods"
	PDF  Format = "pdf"
)

var ErrUnknownFormat = errors.New("unknown format")

// ParseFormat returns the Format named by s (case insensitive, leading dot allowed).
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.TrimPrefix(strings.ToLower(s), ".")); f {
	case XLSX, ODS, PDF:
		return f, nil
	case "":
		return XLSX, nil
	}
	return "", ErrUnknownFormat
}

// Ext returns the file name extension, with the dot.
func (f Format) Ext() string { return "." + string(f) }

// MIMEType returns the media type of the format.
func (f Format) MIMEType() string {
	switch f {
	case XLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ODS:
		return "application/vnd.oasis.opendocument.spreadsheet"
	case PDF:
		return "application/pdf"
	}
	return "application/octet-stream"
}

// DefaultFileName is the download name used when none is given.
func (f Format) DefaultFileName() string { return "datos" + f.Ext() }

// DefaultSheetLabel is the sheet name used when none is given.
const DefaultSheetLabel = "Datos"
