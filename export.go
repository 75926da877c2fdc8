// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package recsheet

import (
	"fmt"
	"log/slog"
)

// Exporter builds a single-sheet document from records and downloads it.
type Exporter struct {
	Library  Library
	Host     Host
	Executor Executor
	Logger   *slog.Logger
	// Format defaults to XLSX.
	Format     Format
	Classifier Classifier
}

func (e *Exporter) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}

// Export converts the records into a document named fileName, with a single
// sheet named sheetLabel, and hands it to the Host.
//
// Empty fileName and sheetLabel are replaced by the format's default file name
// and DefaultSheetLabel.
// Empty records are not an error: a warning is logged and nothing is produced.
func (e *Exporter) Export(fileName, sheetLabel string, records []Record) error {
	logger := e.logger()
	if len(records) == 0 {
		logger.Warn("no data")
		return nil
	}
	format := e.Format
	if format == "" {
		format = XLSX
	}
	if sheetLabel == "" {
		sheetLabel = DefaultSheetLabel
	}
	if fileName == "" {
		fileName = format.DefaultFileName()
	}

	b, err := e.Build(sheetLabel, records)
	if err != nil {
		return err
	}
	data, err := e.Library.Write(b, format)
	if err != nil {
		return fmt.Errorf("write %s: %w", format, err)
	}
	logger.Debug("export", "file", fileName, "sheet", sheetLabel,
		"rows", len(records), "format", format, "size", len(data))

	ref := e.Host.CreateObjectURL(Blob{Type: format.MIMEType(), Data: data})
	defer e.post(func() { e.Host.RevokeObjectURL(ref) })
	if err := e.Host.Download(ref, fileName); err != nil {
		return fmt.Errorf("download %q: %w", fileName, err)
	}
	return nil
}

// Build returns the classified, width-annotated, auto-filtered workbook of the
// records, without serializing it.
func (e *Exporter) Build(sheetLabel string, records []Record) (*Workbook, error) {
	sh := e.Library.SheetFromRecords(records)
	rng, err := e.Library.DecodeRange(sh.Ref)
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", sh.Ref, err)
	}
	sh.AutoFilter = e.Library.EncodeRange(rng)
	sh.Widths = EstimateWidths(records)

	e.Classifier.Classify(sh.Cells, NewHeaderMap(records[0]), rng)

	wb := e.Library.NewWorkbook()
	if err := e.Library.AppendSheet(wb, sh, sheetLabel); err != nil {
		return nil, fmt.Errorf("append %q: %w", sheetLabel, err)
	}
	return wb, nil
}

func (e *Exporter) post(task func()) {
	if e.Executor == nil {
		task()
		return
	}
	e.Executor.Post(task)
}
