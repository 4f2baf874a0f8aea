package parser

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"contacthub/pkg/models"
)

// ParseExcel reads the first sheet of an XLSX workbook into a raw table.
// Short rows are padded silently: trailing empty cells are how
// spreadsheets represent them, so no warning is worth raising. Extra
// cells beyond the header width are truncated with a warning.
func ParseExcel(data []byte) (*models.RawTable, []Warning, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, errors.New("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, nil, errors.New("empty sheet: no header row")
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	var (
		out      []models.RawRecord
		warnings []Warning
	)
	for rowNum, row := range rows[1:] {
		if len(row) > len(headers) {
			warnings = append(warnings, Warning{
				Row:     rowNum + 2,
				Message: fmt.Sprintf("row has %d cells, expected %d; truncating extra cells", len(row), len(headers)),
			})
			row = row[:len(headers)]
		}

		rec := make(models.RawRecord, len(headers))
		for i, h := range headers {
			if i < len(row) {
				rec[h] = row[i]
			} else {
				rec[h] = ""
			}
		}
		out = append(out, rec)
	}

	return &models.RawTable{Headers: headers, Rows: out}, warnings, nil
}
