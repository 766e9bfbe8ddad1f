package raster

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ReadASC parses an ESRI ASCII grid (.asc) into a MemGrid. The header keys
// ncols, nrows, xllcorner, yllcorner and cellsize are required;
// nodata_value is optional. Values are row-major from the top row down.
func ReadASC(r io.Reader) (*MemGrid, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 1024*1024), 16*1024*1024)

	header := map[string]float64{}
	var noData *float64
	var body []string

	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		key := strings.ToLower(fields[0])
		if len(fields) == 2 && isHeaderKey(key) {
			v, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return nil, fmt.Errorf("invalid header value for %s: %w", key, err)
			}
			if key == "nodata_value" {
				noData = &v
			} else {
				header[key] = v
			}
			continue
		}
		body = append(body, fields...)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading grid: %w", err)
	}

	for _, key := range []string{"ncols", "nrows", "xllcorner", "yllcorner", "cellsize"} {
		if _, ok := header[key]; !ok {
			return nil, fmt.Errorf("missing header field %s", key)
		}
	}
	cols := int(header["ncols"])
	rows := int(header["nrows"])
	cell := header["cellsize"]
	if cell <= 0 {
		return nil, fmt.Errorf("cellsize must be positive, got %g", cell)
	}
	if len(body) != rows*cols {
		return nil, fmt.Errorf("grid body has %d values, want %d (%dx%d)", len(body), rows*cols, rows, cols)
	}

	// The file origin is the lower-left corner; MemGrid wants the upper-left
	// with a negative row step.
	grid, err := NewMemGrid(rows, cols,
		header["xllcorner"], header["yllcorner"]+float64(rows)*cell,
		cell, -cell, noData)
	if err != nil {
		return nil, err
	}
	for i, tok := range body {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid grid value %q at index %d: %w", tok, i, err)
		}
		grid.Set(i/cols, i%cols, v)
	}
	return grid, nil
}

// OpenASC reads an ESRI ASCII grid from disk.
func OpenASC(path string) (*MemGrid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open height grid: %w", err)
	}
	defer f.Close()
	grid, err := ReadASC(f)
	if err != nil {
		return nil, fmt.Errorf("parse height grid %s: %w", path, err)
	}
	return grid, nil
}

func isHeaderKey(s string) bool {
	switch s {
	case "ncols", "nrows", "xllcorner", "yllcorner", "cellsize", "nodata_value":
		return true
	}
	return false
}
