package parser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"contacthub/pkg/models"
)

// Warning is a non-fatal issue found while reading a file. Warnings are
// surfaced in dataset metadata instead of blocking the upload.
type Warning struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ParseCSV reads comma-separated bytes into a raw table. Mismatched
// column counts are padded or truncated with a warning; rows that fail to
// parse at all are skipped with a warning. A file without a header row is
// unreadable.
func ParseCSV(data []byte) (*models.RawTable, []Warning, error) {
	decoded, _, err := DetectAndDecode(data)
	if err != nil {
		return nil, nil, fmt.Errorf("encoding detection: %w", err)
	}
	if bytes.IndexByte(decoded, 0) >= 0 {
		return nil, nil, errors.New("binary content, not a CSV file")
	}

	r := csv.NewReader(bytes.NewReader(decoded))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	headers, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, errors.New("empty file: no header row")
		}
		return nil, nil, fmt.Errorf("read header row: %w", err)
	}
	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}

	var (
		rows     []models.RawRecord
		warnings []Warning
		rowNum   = 1 // header is row 1
	)
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		rowNum++
		if err != nil {
			warnings = append(warnings, Warning{Row: rowNum, Message: fmt.Sprintf("parse error: %v", err)})
			continue
		}

		if len(row) < len(headers) {
			warnings = append(warnings, Warning{
				Row:     rowNum,
				Message: fmt.Sprintf("row has %d columns, expected %d; padding with empty values", len(row), len(headers)),
			})
			padded := make([]string, len(headers))
			copy(padded, row)
			row = padded
		} else if len(row) > len(headers) {
			warnings = append(warnings, Warning{
				Row:     rowNum,
				Message: fmt.Sprintf("row has %d columns, expected %d; truncating extra columns", len(row), len(headers)),
			})
			row = row[:len(headers)]
		}

		rec := make(models.RawRecord, len(headers))
		for i, h := range headers {
			rec[h] = row[i]
		}
		rows = append(rows, rec)
	}

	return &models.RawTable{Headers: headers, Rows: rows}, warnings, nil
}
