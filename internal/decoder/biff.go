package decoder

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"unicode/utf16"

	"github.com/richardlehane/mscfb"

	"github.com/balanco-dev/balanco/internal/model"
)

// Legacy workbook record types. Only the subset needed to recover cell
// values and sheet names is handled; everything else is skipped.
const (
	recEOF        = 0x000A
	recContinue   = 0x003C
	recBoundSheet = 0x0085
	recMulRK      = 0x00BD
	recRString    = 0x00D6
	recSST        = 0x00FC
	recLabelSST   = 0x00FD
	recNumber     = 0x0203
	recLabel      = 0x0204
	recRK         = 0x027E
)

// DecodeBIFF reads a legacy compound-file binary workbook. Cell records
// from every substream are merged into one grid; old accounting exports
// carry a single sheet.
func DecodeBIFF(data []byte) (*Grid, error) {
	stream, err := workbookStream(data)
	if err != nil {
		return nil, err
	}
	return parseWorkbookStream(stream), nil
}

// workbookStream locates the "Workbook" (or pre-97 "Book") stream in
// the compound-file container.
func workbookStream(data []byte) ([]byte, error) {
	doc, err := mscfb.New(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("opening compound file: %w", err)
	}
	for entry, err := doc.Next(); err == nil; entry, err = doc.Next() {
		if entry.Name != "Workbook" && entry.Name != "Book" {
			continue
		}
		buf, readErr := io.ReadAll(entry)
		if readErr != nil {
			return nil, fmt.Errorf("reading workbook stream: %w", readErr)
		}
		return buf, nil
	}
	return nil, errors.New("no workbook stream in compound file")
}

// parseWorkbookStream scans the flat record sequence and assembles a
// sparse cell map, materialized into dense ordered rows at the end.
// Truncated or corrupt records end the scan without discarding rows
// already decoded.
func parseWorkbookStream(stream []byte) *Grid {
	var (
		sheets []string
		sst    []string
		cells  = map[int]map[int]any{}
		maxCol = map[int]int{}
	)

	put := func(row, col int, v any) {
		if cells[row] == nil {
			cells[row] = map[int]any{}
		}
		cells[row][col] = v
		if col > maxCol[row] {
			maxCol[row] = col
		}
	}

	pos := 0
	for pos+4 <= len(stream) {
		typ := binary.LittleEndian.Uint16(stream[pos:])
		length := int(binary.LittleEndian.Uint16(stream[pos+2:]))
		pos += 4
		if typ == 0 && length == 0 {
			break
		}
		if pos+length > len(stream) {
			break
		}
		payload := stream[pos : pos+length]
		pos += length

		switch typ {
		case recBoundSheet:
			if name := boundSheetName(payload); name != "" {
				sheets = append(sheets, name)
			}

		case recSST:
			// A shared-string table may span several continuation
			// records; stitch them together before parsing.
			buf := append([]byte(nil), payload...)
			for pos+4 <= len(stream) && binary.LittleEndian.Uint16(stream[pos:]) == recContinue {
				contLen := int(binary.LittleEndian.Uint16(stream[pos+2:]))
				if pos+4+contLen > len(stream) {
					pos = len(stream)
					break
				}
				buf = append(buf, stream[pos+4:pos+4+contLen]...)
				pos += 4 + contLen
			}
			sst = parseSharedStrings(buf)

		case recLabelSST:
			if len(payload) < 10 {
				continue
			}
			row := int(binary.LittleEndian.Uint16(payload[0:]))
			col := int(binary.LittleEndian.Uint16(payload[2:]))
			idx := int(binary.LittleEndian.Uint32(payload[6:]))
			if idx >= 0 && idx < len(sst) {
				put(row, col, sst[idx])
			}

		case recLabel, recRString:
			if len(payload) < 9 {
				continue
			}
			row := int(binary.LittleEndian.Uint16(payload[0:]))
			col := int(binary.LittleEndian.Uint16(payload[2:]))
			s, _ := readString(payload, 6)
			if s != "" {
				put(row, col, s)
			}

		case recNumber:
			if len(payload) < 14 {
				continue
			}
			row := int(binary.LittleEndian.Uint16(payload[0:]))
			col := int(binary.LittleEndian.Uint16(payload[2:]))
			put(row, col, math.Float64frombits(binary.LittleEndian.Uint64(payload[6:])))

		case recRK:
			if len(payload) < 10 {
				continue
			}
			row := int(binary.LittleEndian.Uint16(payload[0:]))
			col := int(binary.LittleEndian.Uint16(payload[2:]))
			put(row, col, decodeRK(binary.LittleEndian.Uint32(payload[6:])))

		case recMulRK:
			// row, colFirst, (ixfe, rk)*, colLast
			if len(payload) < 12 {
				continue
			}
			row := int(binary.LittleEndian.Uint16(payload[0:]))
			colFirst := int(binary.LittleEndian.Uint16(payload[2:]))
			for i, off := 0, 4; off+6 <= len(payload)-2; i, off = i+1, off+6 {
				put(row, colFirst+i, decodeRK(binary.LittleEndian.Uint32(payload[off+2:])))
			}
		}
	}

	grid := &Grid{Sheets: sheets}
	rowIdx := make([]int, 0, len(cells))
	for r := range cells {
		rowIdx = append(rowIdx, r)
	}
	sort.Ints(rowIdx)
	for _, r := range rowIdx {
		row := make(model.RawRow, maxCol[r]+1)
		for c, v := range cells[r] {
			row[c] = v
		}
		grid.Rows = append(grid.Rows, row)
	}
	return grid
}

// boundSheetName extracts the sheet name from a BOUNDSHEET payload.
func boundSheetName(p []byte) string {
	// 4 bytes substream offset, 1 visibility, 1 sheet type, then the name.
	if len(p) < 8 {
		return ""
	}
	cch := int(p[6])
	grbit := p[7]
	if grbit&0x01 != 0 {
		end := 8 + cch*2
		if end > len(p) {
			end = len(p)
		}
		return utf16String(p[8:end])
	}
	end := 8 + cch
	if end > len(p) {
		end = len(p)
	}
	return latin1String(p[8:end])
}

// parseSharedStrings decodes a stitched shared-string table: a count
// header followed by length-prefixed strings with optional rich-text
// and extended-property suffixes to skip.
func parseSharedStrings(buf []byte) []string {
	if len(buf) < 8 {
		return nil
	}
	unique := int(binary.LittleEndian.Uint32(buf[4:]))
	out := make([]string, 0, unique)
	pos := 8
	for i := 0; i < unique && pos+3 <= len(buf); i++ {
		s, next := readString(buf, pos)
		if next <= pos {
			break
		}
		out = append(out, s)
		pos = next
	}
	return out
}

// readString decodes one length-prefixed unicode string starting at
// pos: cch uint16, option flags byte, then 8-bit or 16-bit characters.
// Returns the string and the offset just past it (including skipped
// rich-text runs and extended data).
func readString(buf []byte, pos int) (string, int) {
	if pos+3 > len(buf) {
		return "", pos
	}
	cch := int(binary.LittleEndian.Uint16(buf[pos:]))
	grbit := buf[pos+2]
	pos += 3

	var runs, ext int
	if grbit&0x08 != 0 { // rich-text run count
		if pos+2 > len(buf) {
			return "", len(buf)
		}
		runs = int(binary.LittleEndian.Uint16(buf[pos:]))
		pos += 2
	}
	if grbit&0x04 != 0 { // extended (phonetic) block size
		if pos+4 > len(buf) {
			return "", len(buf)
		}
		ext = int(binary.LittleEndian.Uint32(buf[pos:]))
		pos += 4
	}

	var s string
	if grbit&0x01 != 0 {
		n := cch * 2
		if pos+n > len(buf) {
			n = len(buf) - pos
		}
		s = utf16String(buf[pos : pos+n])
		pos += n
	} else {
		n := cch
		if pos+n > len(buf) {
			n = len(buf) - pos
		}
		s = latin1String(buf[pos : pos+n])
		pos += n
	}

	pos += runs*4 + ext
	if pos > len(buf) {
		pos = len(buf)
	}
	return s, pos
}

// decodeRK reconstructs a double from the packed 30-bit RK encoding.
// Bit 1 selects integer vs. truncated-float storage; bit 0 marks the
// fixed-point x100 variant.
func decodeRK(rk uint32) float64 {
	var v float64
	if rk&0x02 != 0 {
		v = float64(int32(rk) >> 2)
	} else {
		v = math.Float64frombits(uint64(rk&0xFFFFFFFC) << 32)
	}
	if rk&0x01 != 0 {
		v /= 100
	}
	return v
}

func utf16String(b []byte) string {
	u := make([]uint16, len(b)/2)
	for i := range u {
		u[i] = binary.LittleEndian.Uint16(b[i*2:])
	}
	return string(utf16.Decode(u))
}

// latin1String widens compressed 8-bit characters (low bytes of
// UTF-16) into runes, so accented Portuguese text survives.
func latin1String(b []byte) string {
	r := make([]rune, len(b))
	for i, c := range b {
		r[i] = rune(c)
	}
	return string(r)
}
