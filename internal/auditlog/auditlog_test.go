package auditlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEntry() Entry {
	return Entry{
		Timestamp:   time.Date(2023, 4, 1, 10, 30, 0, 0, time.UTC),
		File:        "razao-2023.xls",
		Sheet:       "Plan1",
		RowsScanned: 1200,
		Accounts:    34,
		Warnings:    "no accounts detected in 0 rows",
	}
}

func TestMarshalUnmarshalEntry(t *testing.T) {
	row := MarshalEntry(sampleEntry())
	out, err := UnmarshalEntry(row)
	require.NoError(t, err)
	assert.Equal(t, sampleEntry(), out)
}

func TestUnmarshalEntry_BadTimestamp(t *testing.T) {
	row := MarshalEntry(sampleEntry())
	row[0] = "ontem"

	_, err := UnmarshalEntry(row)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing timestamp")
}

func TestJoinWarnings(t *testing.T) {
	assert.Equal(t, "", JoinWarnings(nil))
	assert.Equal(t, "a; b", JoinWarnings([]string{"a", "b"}))
}

func TestAppendRead(t *testing.T) {
	root := t.TempDir()

	require.NoError(t, Append(root, sampleEntry()))
	second := sampleEntry()
	second.File = "razao-2024.xlsx"
	require.NoError(t, Append(root, second))

	data, err := os.ReadFile(filepath.Join(root, "logs", "import-log.csv"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), Header+"\n"))

	entries, err := Read(strings.NewReader(string(data)))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "razao-2023.xls", entries[0].File)
	assert.Equal(t, "razao-2024.xlsx", entries[1].File)
}
