package sheetio

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"sheet-arcade/internal/core"
)

// ErrBadHeader is returned when the dimension line cannot be parsed.
var ErrBadHeader = errors.New("bad dimension header")

// Save writes the sheet as a "rows,columns" line followed by one CSV record
// per row.
func Save(w io.Writer, g core.GridView) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%d,%d\n", g.Rows(), g.Columns()); err != nil {
		return err
	}
	cw := csv.NewWriter(bw)
	record := make([]string, g.Columns())
	for row := 0; row < g.Rows(); row++ {
		for col := range record {
			record[col] = g.ContentAt(core.Location{Row: row, Col: col})
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return bw.Flush()
}

// Load reads a sheet written by Save. Missing rows or cells load as empty;
// content beyond the declared dimensions is ignored.
func Load(r io.Reader) (*core.Sheet, error) {
	br := bufio.NewReader(r)
	header, err := br.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && header != "") {
		return nil, fmt.Errorf("read header: %w", err)
	}
	rows, cols, err := parseHeader(header)
	if err != nil {
		return nil, err
	}

	sheet := core.NewSheet(rows, cols)
	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	for row := 0; row < rows; row++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", row, err)
		}
		for col, value := range record {
			if col >= cols {
				break
			}
			value = strings.TrimSpace(value)
			if err := sheet.Update(core.Location{Row: row, Col: col}, value); err != nil {
				return nil, fmt.Errorf("row %d col %d: %w", row, col, err)
			}
		}
	}
	return sheet, nil
}

// CopyInto writes every cell of src into dst. Both must have the same
// dimensions.
func CopyInto(dst core.GridView, src core.GridView) error {
	if dst.Rows() != src.Rows() || dst.Columns() != src.Columns() {
		return fmt.Errorf("dimension mismatch: have %dx%d, file has %dx%d",
			dst.Rows(), dst.Columns(), src.Rows(), src.Columns())
	}
	for row := 0; row < src.Rows(); row++ {
		for col := 0; col < src.Columns(); col++ {
			loc := core.Location{Row: row, Col: col}
			if err := dst.Update(loc, src.ContentAt(loc)); err != nil {
				return err
			}
		}
	}
	return nil
}

func parseHeader(line string) (int, int, error) {
	parts := strings.Split(strings.TrimSpace(line), ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadHeader, line)
	}
	rows, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || rows <= 0 {
		return 0, 0, fmt.Errorf("%w: rows %q", ErrBadHeader, parts[0])
	}
	cols, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || cols <= 0 {
		return 0, 0, fmt.Errorf("%w: columns %q", ErrBadHeader, parts[1])
	}
	return rows, cols, nil
}
