// Package decoder turns spreadsheet bytes into a uniform grid of raw
// rows, trying the zip-based container first and falling back to the
// legacy binary workbook format.
package decoder

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/balanco-dev/balanco/internal/model"
)

// Grid is the decoder output: ordered raw rows plus the workbook's
// sheet names.
type Grid struct {
	Rows   []model.RawRow
	Sheets []string
}

// Decode reads a spreadsheet from raw bytes. sheet selects a worksheet
// by name; empty means the first sheet. When the standard container
// cannot be opened, or the selected sheet yields no rows, the legacy
// binary reader is tried on the same buffer.
//
// A readable but empty file returns an empty grid, not an error; only a
// byte stream neither path can open fails.
func Decode(data []byte, sheet string) (*Grid, error) {
	grid, xlsxErr := decodeXLSX(data, sheet)
	if xlsxErr == nil && len(grid.Rows) > 0 {
		return grid, nil
	}

	legacy, biffErr := DecodeBIFF(data)
	if biffErr == nil {
		return legacy, nil
	}

	if xlsxErr == nil {
		// The container opened but was empty; that is the result.
		return grid, nil
	}
	return nil, fmt.Errorf("unrecognized spreadsheet: xlsx: %v; legacy: %w", xlsxErr, biffErr)
}

// decodeXLSX opens a zip-based workbook with excelize.
func decodeXLSX(data []byte, sheet string) (*Grid, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &Grid{Sheets: nil}, nil
	}

	target := sheet
	if target == "" {
		target = sheets[0]
	}

	raw, err := f.GetRows(target, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", target, err)
	}

	grid := &Grid{Sheets: sheets}
	for _, cells := range raw {
		row := make(model.RawRow, 0, len(cells))
		blank := true
		for _, c := range cells {
			if c == "" {
				row = append(row, nil)
				continue
			}
			blank = false
			row = append(row, c)
		}
		if blank {
			continue
		}
		grid.Rows = append(grid.Rows, row)
	}
	return grid, nil
}
