// Package auditlog records one row per import run, so repeated imports
// of a company's ledger can be traced back to their source files.
package auditlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Entry is one row in the import log.
type Entry struct {
	Timestamp   time.Time
	File        string
	Sheet       string
	RowsScanned int
	Accounts    int
	Warnings    string // semicolon-separated
}

// Header is the CSV header for import-log.csv.
const Header = "timestamp,file,sheet,rows_scanned,accounts,warnings"

const (
	numFields    = 6
	logFile      = "logs/import-log.csv"
	colTimestamp = 0
	colFile      = 1
	colSheet     = 2
	colRows      = 3
	colAccounts  = 4
	colWarnings  = 5
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colFile] = e.File
	row[colSheet] = e.Sheet
	row[colRows] = strconv.Itoa(e.RowsScanned)
	row[colAccounts] = strconv.Itoa(e.Accounts)
	row[colWarnings] = e.Warnings
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}
	rows, err := strconv.Atoi(record[colRows])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing rows_scanned %q: %w", record[colRows], err)
	}
	accounts, err := strconv.Atoi(record[colAccounts])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing accounts %q: %w", record[colAccounts], err)
	}

	return Entry{
		Timestamp:   ts,
		File:        record[colFile],
		Sheet:       record[colSheet],
		RowsScanned: rows,
		Accounts:    accounts,
		Warnings:    record[colWarnings],
	}, nil
}

// JoinWarnings flattens parse warnings into the single log field.
func JoinWarnings(warnings []string) string {
	return strings.Join(warnings, "; ")
}

// Append writes an entry to <root>/logs/import-log.csv, creating the
// file with a header when missing.
func Append(root string, e Entry) error {
	path := filepath.Join(root, filepath.FromSlash(logFile))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating log dir: %w", err)
	}

	_, statErr := os.Stat(path)
	isNew := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening import log: %w", err)
	}
	defer f.Close()

	if isNew {
		if _, err := fmt.Fprintln(f, Header); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	cw := csv.NewWriter(f)
	if err := cw.Write(MarshalEntry(e)); err != nil {
		return fmt.Errorf("writing entry: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

// Read reads all entries from an import-log.csv reader.
func Read(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading import log: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
