package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"cleanframe/domain/table"
	apperrors "cleanframe/internal/errors"
)

// Reader loads CSV and Excel files into datasets. Cell values are parsed
// column by column: a column where every present cell parses as an integer
// becomes an integer column, every-cell-float becomes a float column, and
// anything else stays text. Empty cells and non-finite float tokens (NaN,
// Inf) are missing.
type Reader struct {
	sheet string
}

// NewReader creates a reader that loads Excel data from the given sheet.
// Pass "" to use Sheet1.
func NewReader(sheet string) *Reader {
	if sheet == "" {
		sheet = "Sheet1"
	}
	return &Reader{sheet: sheet}
}

// ReadFile loads a dataset from a CSV or XLSX file path
func (r *Reader) ReadFile(path string) (*table.Dataset, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("file not found: %s", path))
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".csv":
		file, err := os.Open(path)
		if err != nil {
			return nil, apperrors.InvalidInput(fmt.Sprintf("failed to open CSV file: %v", err))
		}
		defer file.Close()
		return r.Read(file)
	case ".xlsx":
		return r.readExcel(path)
	}
	return nil, apperrors.InvalidInput(fmt.Sprintf("unsupported file type: %s", ext))
}

// Read loads a dataset from a CSV stream
func (r *Reader) Read(src io.Reader) (*table.Dataset, error) {
	start := time.Now()
	reader := csv.NewReader(src)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.InvalidInput(fmt.Sprintf("failed to read CSV data: %v", err))
	}
	log.Printf("[Reader] CSV read in %.2fms (%d rows)", float64(time.Since(start).Nanoseconds())/1e6, len(rows))
	return r.buildDataset(rows)
}

// readExcel loads the configured sheet from an XLSX file
func (r *Reader) readExcel(path string) (*table.Dataset, error) {
	start := time.Now()
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.InvalidInput(fmt.Sprintf("failed to open Excel file: %v", err))
	}
	defer f.Close()

	rows, err := f.GetRows(r.sheet)
	if err != nil {
		return nil, apperrors.InvalidInput(fmt.Sprintf("failed to read sheet %s: %v", r.sheet, err))
	}
	log.Printf("[Reader] Excel sheet %s read in %.2fms (%d rows)", r.sheet, float64(time.Since(start).Nanoseconds())/1e6, len(rows))
	return r.buildDataset(rows)
}

// buildDataset converts raw string rows into typed columns
func (r *Reader) buildDataset(rows [][]string) (*table.Dataset, error) {
	if len(rows) < 2 {
		return nil, apperrors.InvalidInput("file must have a header row and at least one data row")
	}

	headers := rows[0]
	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
		if headers[i] == "" {
			return nil, apperrors.InvalidInput(fmt.Sprintf("column %d has an empty header", i))
		}
	}

	data := rows[1:]
	cols := make([]*table.Column, len(headers))
	for j, name := range headers {
		raw := make([]string, len(data))
		valid := make([]bool, len(data))
		for i, row := range data {
			// short rows happen with ragged Excel sheets; trailing cells
			// are treated as missing
			if j < len(row) {
				cell := strings.TrimSpace(row[j])
				raw[i] = cell
				valid[i] = cell != "" && !isNonFinite(cell)
			}
		}
		cols[j] = buildColumn(name, raw, valid)
	}

	ds, err := table.New(cols)
	if err != nil {
		return nil, apperrors.SchemaErrorWithCause("failed to assemble dataset", err)
	}
	log.Printf("[Reader] Loaded dataset: %d rows x %d columns", ds.NumRows(), ds.NumColumns())
	return ds, nil
}

// isNonFinite reports whether the cell spells a float with no finite value
// (NaN, Inf, Infinity and sign/case variants). Such cells carry no usable
// value; they are read as missing, never as present floats.
func isNonFinite(cell string) bool {
	f, err := strconv.ParseFloat(cell, 64)
	return err == nil && (math.IsNaN(f) || math.IsInf(f, 0))
}

// buildColumn infers the narrowest of integer, float, text that holds
// every present cell
func buildColumn(name string, raw []string, valid []bool) *table.Column {
	allInt, allFloat := true, true
	for i, cell := range raw {
		if !valid[i] {
			continue
		}
		if allInt {
			if _, err := strconv.ParseInt(cell, 10, 64); err != nil {
				allInt = false
			}
		}
		if allFloat {
			if _, err := strconv.ParseFloat(cell, 64); err != nil {
				allFloat = false
			}
		}
		if !allInt && !allFloat {
			break
		}
	}

	switch {
	case allInt:
		ints := make([]int64, len(raw))
		for i, cell := range raw {
			if valid[i] {
				ints[i], _ = strconv.ParseInt(cell, 10, 64)
			}
		}
		return table.NewIntColumn(name, ints, valid)
	case allFloat:
		floats := make([]float64, len(raw))
		for i, cell := range raw {
			if valid[i] {
				floats[i], _ = strconv.ParseFloat(cell, 64)
			}
		}
		return table.NewFloatColumn(name, floats, valid)
	}
	texts := make([]string, len(raw))
	copy(texts, raw)
	return table.NewTextColumn(name, texts, valid)
}
