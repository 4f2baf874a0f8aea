// Package parser turns uploaded spreadsheet or CSV bytes into a raw
// table the normalization pipeline can consume. XLSX is the primary
// format; anything that does not open as a workbook is retried as CSV.
package parser

import (
	"fmt"

	"contacthub/pkg/models"
)

// Parse reads uploaded bytes with the primary parser and falls back to
// the secondary one. Only when both fail is the file unreadable; the
// caller gets no partial table in that case.
func Parse(data []byte) (*models.RawTable, []Warning, error) {
	raw, warnings, xlsxErr := ParseExcel(data)
	if xlsxErr == nil {
		return raw, warnings, nil
	}

	raw, warnings, csvErr := ParseCSV(data)
	if csvErr == nil {
		return raw, warnings, nil
	}

	return nil, nil, fmt.Errorf("file unreadable: not a spreadsheet (%v) and not CSV (%v)", xlsxErr, csvErr)
}
