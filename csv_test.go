// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package recsheet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	records, err := ReadCSV(strings.NewReader(
		"name;price;when\nAlice;12.5;2024-01-01T00:00:00\nBob;;1e3\nCarol;0x10;-7\n"), "utf-8")
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"name", "price", "when"}, records[0].Keys())
	assert.Equal(t, TextValue("Alice"), records[0].Get("name"))
	assert.Equal(t, NumberValue(12.5), records[0].Get("price"))
	assert.Equal(t, TextValue("2024-01-01T00:00:00"), records[0].Get("when"))
	assert.True(t, records[1].Get("price").IsNull())
	assert.Equal(t, NumberValue(1000), records[1].Get("when"))
	assert.Equal(t, TextValue("0x10"), records[2].Get("price"))
	assert.Equal(t, NumberValue(-7), records[2].Get("when"))
}

func TestReadCSVCharset(t *testing.T) {
	records, err := ReadCSV(strings.NewReader("n\xe9v\nJos\xe9\n"), "iso-8859-1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, []string{"név"}, records[0].Keys())
	assert.Equal(t, TextValue("José"), records[0].Get("név"))

	_, err = ReadCSV(strings.NewReader("a\n"), "no-such-charset")
	assert.Error(t, err)
}

func TestReadCSVEmpty(t *testing.T) {
	records, err := ReadCSV(strings.NewReader(""), "")
	require.NoError(t, err)
	assert.Empty(t, records)
}
