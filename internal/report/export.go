package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"contacthub/pkg/models"
)

// exportColumns is the fixed projection order for CSV downloads. Columns
// absent from the table are dropped, the rest keep this order.
var exportColumns = []models.Field{
	models.FieldNama,
	models.FieldNomorHP,
	models.FieldNomorHPClean,
	models.FieldEmail,
	models.FieldPerusahaan,
	models.FieldStatus,
	models.FieldKeterangan,
	models.FieldLastContact,
	models.FieldDaysSince,
	models.FieldSLAStatus,
	models.FieldLinkWhatsApp,
}

// ExportColumns returns the projection actually present on the table,
// in export order.
func ExportColumns(t *models.Table) []models.Field {
	cols := make([]models.Field, 0, len(exportColumns))
	for _, f := range exportColumns {
		if t.HasField(f) {
			cols = append(cols, f)
		}
	}
	return cols
}

// WriteCSV serializes the table's export projection as UTF-8 CSV with a
// header row. Dates come out as YYYY-MM-DD; absent dates and day counts
// as empty cells.
func WriteCSV(w io.Writer, t *models.Table) error {
	cols := ExportColumns(t)

	cw := csv.NewWriter(w)
	header := make([]string, len(cols))
	for i, f := range cols {
		header[i] = string(f)
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, len(cols))
	for i := range t.Contacts {
		ct := &t.Contacts[i]
		for j, f := range cols {
			row[j] = exportValue(ct, f)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func exportValue(ct *models.Contact, f models.Field) string {
	switch f {
	case models.FieldNama:
		return ct.Nama
	case models.FieldNomorHP:
		return ct.NomorHP
	case models.FieldNomorHPClean:
		return ct.NomorHPClean
	case models.FieldEmail:
		return ct.Email
	case models.FieldPerusahaan:
		return ct.Perusahaan
	case models.FieldStatus:
		return ct.Status
	case models.FieldKeterangan:
		return ct.Keterangan
	case models.FieldLastContact:
		if ct.LastContact == nil {
			return ""
		}
		return ct.LastContact.Format("2006-01-02")
	case models.FieldDaysSince:
		if ct.DaysSince == nil {
			return ""
		}
		return strconv.Itoa(*ct.DaysSince)
	case models.FieldSLAStatus:
		return ct.SLAStatus
	case models.FieldLinkWhatsApp:
		return ct.LinkWhatsApp
	}
	return ""
}
