package models

import "time"

// Field identifies one canonical contact column. The values double as the
// display / export header names.
type Field string

const (
	FieldNama           Field = "Nama"
	FieldNomorHP        Field = "Nomor HP"
	FieldNomorHPClean   Field = "Nomor HP (clean)"
	FieldEmail          Field = "Email"
	FieldPerusahaan     Field = "Perusahaan"
	FieldAsalFile       Field = "Asal File"
	FieldLinkWhatsApp   Field = "Link WhatsApp"
	FieldStatus         Field = "Status Follow-Up"
	FieldKeterangan     Field = "Keterangan"
	FieldLastContact    Field = "Last Contact"
	FieldLastContactRaw Field = "Last Contact (raw)"
	FieldDaysSince      Field = "Days Since Last Contact"
	FieldSLAStatus      Field = "SLA Status"
)

// Contact is the canonical, enriched form of one uploaded row.
//
// Input rows from any recognized schema are mapped into this structure
// first; filtering, summarizing and export all work from this
// representation. String fields hold "" when the source cell was empty;
// whether the column existed at all is tracked on the Table.
type Contact struct {
	Nama           string `json:"nama"`
	NomorHP        string `json:"nomor_hp"`        // phone as entered
	NomorHPClean   string `json:"nomor_hp_clean"`  // 62-prefixed digit string
	Email          string `json:"email"`
	Perusahaan     string `json:"perusahaan"`
	AsalFile       string `json:"asal_file,omitempty"`
	Status         string `json:"status_follow_up"`
	Keterangan     string `json:"keterangan"`
	LastContactRaw string `json:"last_contact_raw,omitempty"` // original cell, kept for audit
	LinkWhatsApp   string `json:"link_whatsapp"`

	LastContact *time.Time `json:"last_contact,omitempty"`
	DaysSince   *int       `json:"days_since_last_contact,omitempty"`
	SLAStatus   string     `json:"sla_status"`

	// Extra holds unmapped input columns under their original names.
	// They pass through untouched and are ignored by every later stage.
	Extra map[string]string `json:"extra,omitempty"`
}

// Table is an ordered sequence of canonical contacts. Row order follows
// input row order. A Table is never mutated once produced; filtering
// builds a new Table sharing no slice storage with its source.
type Table struct {
	Contacts []Contact
	Fields   map[Field]bool // canonical columns present on this table
}

func (t *Table) Len() int {
	return len(t.Contacts)
}

// HasField reports whether a canonical column exists on the table.
// Derived columns are always present after enrichment; source columns
// only when an input column mapped onto them.
func (t *Table) HasField(f Field) bool {
	return t.Fields[f]
}

// CloneFields copies the field-presence set for derived tables.
func (t *Table) CloneFields() map[Field]bool {
	out := make(map[Field]bool, len(t.Fields))
	for f, ok := range t.Fields {
		out[f] = ok
	}
	return out
}

// RawRecord is one uploaded row before reconciliation: an input column
// name to cell value mapping with no further guarantees.
type RawRecord map[string]string

// RawTable is what the file reader produces. Headers preserves the
// observed column order; every row shares the same column set.
type RawTable struct {
	Headers []string
	Rows    []RawRecord
}
