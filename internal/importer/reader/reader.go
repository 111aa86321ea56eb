// Package reader loads uploaded import files into raw header-keyed
// rows. Delimited text is parsed with encoding/csv; anything else is
// treated as a spreadsheet workbook and read through excelize.
package reader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	e "github.com/gartstein/registrar/internal/importer/errors"
	"github.com/gartstein/registrar/internal/importer/models"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const csvMimeType = "text/csv"

// Reader parses import files into RawRow slices.
type Reader struct {
	logger *zap.Logger
}

// New constructs a Reader.
func New(logger *zap.Logger) *Reader {
	return &Reader{logger: logger.Named("file_reader")}
}

// Read parses the whole file into rows. A missing file fails with
// ErrFileNotFound before any row is produced; a malformed row inside a
// delimited file aborts the read with ErrParse, never partial results.
func (r *Reader) Read(path, mimeType string) ([]models.RawRow, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", e.ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat import file: %w", err)
	}

	if mimeType == csvMimeType {
		return r.readCSV(path)
	}
	return r.readSpreadsheet(path)
}

func (r *Reader) readCSV(path string) ([]models.RawRow, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open import file: %w", err)
	}
	defer file.Close()

	cr := csv.NewReader(file)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", e.ErrParse, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []models.RawRow
	for {
		cells, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			r.logger.Error("Failed to parse delimited row", zap.Error(err), zap.String("file", path))
			return nil, fmt.Errorf("%w: %v", e.ErrParse, err)
		}
		if row, ok := toRow(header, cells); ok {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (r *Reader) readSpreadsheet(path string) ([]models.RawRow, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", e.ErrParse, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			r.logger.Warn("Failed to close workbook", zap.Error(cerr))
		}
	}()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", e.ErrParse)
	}

	// First sheet only; the first row is the header.
	cells, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", e.ErrParse, err)
	}
	if len(cells) == 0 {
		return nil, nil
	}

	header := make([]string, len(cells[0]))
	for i, h := range cells[0] {
		header[i] = strings.TrimSpace(h)
	}

	var rows []models.RawRow
	for _, line := range cells[1:] {
		if row, ok := toRow(header, line); ok {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// toRow zips header and cells into a RawRow, trimming values. Rows with
// no content at all are skipped.
func toRow(header, cells []string) (models.RawRow, bool) {
	row := make(models.RawRow, len(header))
	empty := true
	for i, name := range header {
		value := ""
		if i < len(cells) {
			value = strings.TrimSpace(cells[i])
		}
		if value != "" {
			empty = false
		}
		row[name] = value
	}
	return row, !empty
}
