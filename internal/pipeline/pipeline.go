package pipeline

import (
	"strings"
	"time"

	"contacthub/pkg/models"
)

// Clock supplies "today" for the day-since math. Injected so tests and
// the CLI can pin a reference date; nil falls back to time.Now.
type Clock func() time.Time

// SLA labels, first match wins in slaLabel.
const (
	SLANoDate = "No Date"
	SLARed    = "20+ days (Red)"
	SLAYellow = "7+ days (Yellow)"
	SLAGreen  = "<7 days (Green)"
)

// WhatsAppBase is the chat deep-link prefix the enricher appends the
// cleaned phone number to.
const WhatsAppBase = "https://wa.me/"

// Normalizer is the single entry point of the normalization pipeline:
// reconcile an arbitrary input schema onto the canonical column set, then
// derive the computed columns. Pure apart from the one clock read per
// call; the input table is never mutated.
type Normalizer struct {
	Now Clock
}

// Normalize turns a raw uploaded table into the canonical enriched table.
func (n Normalizer) Normalize(raw models.RawTable) *models.Table {
	rename := Reconcile(raw.Headers)

	fields := make(map[models.Field]bool, len(rename))
	for _, f := range rename {
		fields[f] = true
	}

	contacts := make([]models.Contact, 0, len(raw.Rows))
	for _, row := range raw.Rows {
		var ct models.Contact
		extra := make(map[string]string)
		for col, val := range row {
			key := strings.TrimSpace(col)
			f, ok := rename[key]
			if !ok {
				extra[key] = val
				continue
			}
			switch f {
			case models.FieldNama:
				ct.Nama = val
			case models.FieldNomorHP:
				ct.NomorHP = val
			case models.FieldEmail:
				ct.Email = val
			case models.FieldPerusahaan:
				ct.Perusahaan = val
			case models.FieldAsalFile:
				ct.AsalFile = val
			case models.FieldLinkWhatsApp:
				ct.LinkWhatsApp = val
			case models.FieldStatus:
				ct.Status = val
			case models.FieldKeterangan:
				ct.Keterangan = val
			case models.FieldLastContact:
				ct.LastContactRaw = val
			}
		}
		if len(extra) > 0 {
			ct.Extra = extra
		}
		contacts = append(contacts, ct)
	}

	table := &models.Table{Contacts: contacts, Fields: fields}
	n.enrich(table)
	return table
}

// enrich fills the derived columns in place on the freshly built table.
func (n Normalizer) enrich(t *models.Table) {
	now := n.Now
	if now == nil {
		now = time.Now
	}
	// one clock read per pipeline run
	today := dateOnly(now())

	hasLast := t.Fields[models.FieldLastContact]
	hasPhone := t.Fields[models.FieldNomorHP]
	hasWALink := t.Fields[models.FieldLinkWhatsApp]

	// a Link WhatsApp column where every cell is empty counts as absent
	waAllEmpty := true
	if hasWALink {
		for i := range t.Contacts {
			if strings.TrimSpace(t.Contacts[i].LinkWhatsApp) != "" {
				waAllEmpty = false
				break
			}
		}
	}

	for i := range t.Contacts {
		ct := &t.Contacts[i]

		if hasLast {
			ct.LastContact = ParseDate(ct.LastContactRaw)
		}

		if hasPhone {
			ct.NomorHPClean = NormalizePhone(ct.NomorHP)
		} else {
			ct.NomorHPClean = ""
		}

		if !hasWALink || waAllEmpty || strings.TrimSpace(ct.LinkWhatsApp) == "" {
			ct.LinkWhatsApp = WhatsAppBase + ct.NomorHPClean
		}

		if ct.LastContact != nil {
			d := int(today.Sub(dateOnly(*ct.LastContact)).Hours() / 24)
			ct.DaysSince = &d
		}

		ct.SLAStatus = slaLabel(ct.DaysSince)
	}

	// derived columns are always present on the canonical table
	t.Fields[models.FieldNomorHPClean] = true
	t.Fields[models.FieldLinkWhatsApp] = true
	t.Fields[models.FieldLastContact] = true
	t.Fields[models.FieldDaysSince] = true
	t.Fields[models.FieldSLAStatus] = true
	if hasLast {
		t.Fields[models.FieldLastContactRaw] = true
	}
}

func slaLabel(days *int) string {
	switch {
	case days == nil:
		return SLANoDate
	case *days >= 20:
		return SLARed
	case *days >= 7:
		return SLAYellow
	default:
		return SLAGreen
	}
}
