// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package recsheet_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/UNO-SOFT/recsheet"
	"github.com/UNO-SOFT/recsheet/download"
	"github.com/UNO-SOFT/recsheet/sheetlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type recordingHost struct {
	download.Store
	err       error
	downloads map[string]recsheet.Blob
	revoked   []string
}

func (h *recordingHost) RevokeObjectURL(ref string) {
	h.revoked = append(h.revoked, ref)
	h.Store.RevokeObjectURL(ref)
}

func (h *recordingHost) Download(ref, fileName string) error {
	if h.err != nil {
		return h.err
	}
	b, err := h.Lookup(ref)
	if err != nil {
		return err
	}
	if h.downloads == nil {
		h.downloads = make(map[string]recsheet.Blob)
	}
	h.downloads[fileName] = b
	return nil
}

// deferred collects the posted tasks, to be run by the test.
type deferred []func()

func (d *deferred) Post(task func()) { *d = append(*d, task) }
func (d *deferred) run() {
	for _, task := range *d {
		task()
	}
	*d = nil
}

func sampleRecords() []recsheet.Record {
	return []recsheet.Record{
		recsheet.R("id", 1, "name", "Alice", "joined", "2024-01-01T00:00:00"),
		recsheet.R("id", 2, "name", "Bob", "joined", "2024-06-15T08:30:00"),
	}
}

func TestExportEndToEnd(t *testing.T) {
	host := &recordingHost{}
	var tasks deferred
	exp := recsheet.Exporter{
		Library:    sheetlib.New(),
		Host:       host,
		Executor:   &tasks,
		Classifier: recsheet.Classifier{Location: time.UTC},
	}

	wb, err := exp.Build(recsheet.DefaultSheetLabel, sampleRecords())
	require.NoError(t, err)
	require.Equal(t, []string{"Datos"}, wb.SheetNames)
	sh := wb.Sheets["Datos"]
	assert.Equal(t, "A1:C3", sh.Ref)
	assert.Equal(t, "A1:C3", sh.AutoFilter)
	assert.Equal(t, []int{10, 10, 21}, sh.Widths)
	for _, addr := range []string{"A2", "A3"} {
		assert.Equal(t, recsheet.CellNumber, sh.Cells[addr].Type, addr)
		assert.Equal(t, recsheet.FormatInteger, sh.Cells[addr].Format, addr)
	}
	assert.Equal(t, recsheet.CellText, sh.Cells["B2"].Type)
	assert.Equal(t, recsheet.CellDate, sh.Cells["C2"].Type)
	assert.Equal(t, recsheet.FormatDate, sh.Cells["C2"].Format)
	assert.Equal(t, recsheet.CellDate, sh.Cells["C3"].Type)
	assert.Equal(t, recsheet.FormatDateTime, sh.Cells["C3"].Format)
	assert.True(t, sh.Cells["C3"].Value.Time().Equal(time.Date(2024, 6, 15, 8, 30, 0, 0, time.UTC)))

	require.NoError(t, exp.Export("", "", sampleRecords()))
	require.Len(t, host.downloads, 1)
	blob, ok := host.downloads["datos.xlsx"]
	require.True(t, ok, "default file name")
	assert.Equal(t, recsheet.XLSX.MIMEType(), blob.Type)

	assert.Equal(t, 1, host.Len(), "revocation is deferred")
	assert.Empty(t, host.revoked)
	tasks.run()
	assert.Len(t, host.revoked, 1)
	assert.Equal(t, 0, host.Len())

	xl, err := excelize.OpenReader(bytes.NewReader(blob.Data))
	require.NoError(t, err)
	defer xl.Close()
	assert.Equal(t, []string{"Datos"}, xl.GetSheetList())
	rows, err := xl.GetRows("Datos")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"id", "name", "joined"}, rows[0])
}

func TestExportNamesAndFormats(t *testing.T) {
	for _, format := range []recsheet.Format{recsheet.XLSX, recsheet.ODS, recsheet.PDF} {
		host := &recordingHost{}
		exp := recsheet.Exporter{Library: sheetlib.New(), Host: host, Format: format}
		require.NoError(t, exp.Export("", "", sampleRecords()), format)
		assert.Contains(t, host.downloads, "datos."+string(format))
		assert.Equal(t, 0, host.Len(), "without an Executor, revocation runs at return")

		host = &recordingHost{}
		exp.Host = host
		require.NoError(t, exp.Export("report"+format.Ext(), "Hoja", sampleRecords()))
		assert.Contains(t, host.downloads, "report"+format.Ext())
		assert.Equal(t, format.MIMEType(), host.downloads["report"+format.Ext()].Type)
	}
}

func TestExportEmpty(t *testing.T) {
	var logBuf bytes.Buffer
	host := &recordingHost{}
	var tasks deferred
	exp := recsheet.Exporter{
		Library:  sheetlib.New(),
		Host:     host,
		Executor: &tasks,
		Logger:   slog.New(slog.NewTextHandler(&logBuf, nil)),
	}
	require.NoError(t, exp.Export("x.xlsx", "x", nil))
	require.NoError(t, exp.Export("x.xlsx", "x", []recsheet.Record{}))
	assert.Empty(t, host.downloads)
	assert.Empty(t, tasks)
	assert.Equal(t, 0, host.Len())
	assert.Contains(t, logBuf.String(), "level=WARN")
	assert.Contains(t, logBuf.String(), "no data")
}

func TestExportRevokesOnDownloadError(t *testing.T) {
	errClick := errors.New("click failed")
	host := &recordingHost{err: errClick}
	var tasks deferred
	exp := recsheet.Exporter{Library: sheetlib.New(), Host: host, Executor: &tasks}
	err := exp.Export("", "", sampleRecords())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errClick), "%v", err)
	tasks.run()
	assert.Len(t, host.revoked, 1)
	assert.Equal(t, 0, host.Len())
}

func TestExportUnknownFormat(t *testing.T) {
	host := &recordingHost{}
	exp := recsheet.Exporter{Library: sheetlib.New(), Host: host, Format: "xls"}
	err := exp.Export("", "", sampleRecords())
	assert.True(t, errors.Is(err, recsheet.ErrUnknownFormat), "%v", err)
	assert.Empty(t, host.downloads)
	assert.Equal(t, 0, host.Len())
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]recsheet.Format{
		"": recsheet.XLSX, "xlsx": recsheet.XLSX, ".ODS": recsheet.ODS, "pdf": recsheet.PDF,
	} {
		got, err := recsheet.ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := recsheet.ParseFormat("csv")
	assert.True(t, errors.Is(err, recsheet.ErrUnknownFormat))
}
