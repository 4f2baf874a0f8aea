package filter

import (
	"strings"
	"time"

	"contacthub/pkg/models"
)

// Criteria collects the optional row predicates. The zero value matches
// every row. Criteria are independent and combined with AND, so the
// result does not depend on any application order.
type Criteria struct {
	Statuses []string   // Status Follow-Up must be one of these
	Note     string     // case-insensitive substring of Keterangan
	From     *time.Time // inclusive lower bound on Last Contact
	To       *time.Time // inclusive upper bound on Last Contact
	Query    string     // case-insensitive search over name/phone/email
}

// IsZero reports whether no criterion is set.
func (c Criteria) IsZero() bool {
	return len(c.Statuses) == 0 && c.Note == "" && c.From == nil && c.To == nil && c.Query == ""
}

// Apply returns a new table holding the subsequence of rows satisfying
// all set criteria. The source table is not modified.
func Apply(t *models.Table, c Criteria) *models.Table {
	out := &models.Table{
		Contacts: make([]models.Contact, 0, len(t.Contacts)),
		Fields:   t.CloneFields(),
	}

	statusSet := make(map[string]bool, len(c.Statuses))
	for _, s := range c.Statuses {
		statusSet[s] = true
	}

	for i := range t.Contacts {
		if matches(t, &t.Contacts[i], c, statusSet) {
			out.Contacts = append(out.Contacts, t.Contacts[i])
		}
	}
	return out
}

func matches(t *models.Table, ct *models.Contact, c Criteria, statusSet map[string]bool) bool {
	// Status membership. If the table has no status column at all the
	// criterion cannot be applied and is skipped.
	if len(statusSet) > 0 && t.HasField(models.FieldStatus) && !statusSet[ct.Status] {
		return false
	}

	// Keterangan substring. Rows without a note never match a non-empty
	// query; an absent column behaves like an empty note on every row.
	if c.Note != "" && !containsFold(ct.Keterangan, c.Note) {
		return false
	}

	// Last Contact range, inclusive on both ends. No date, no match.
	if c.From != nil || c.To != nil {
		if ct.LastContact == nil {
			return false
		}
		if c.From != nil && ct.LastContact.Before(*c.From) {
			return false
		}
		if c.To != nil && ct.LastContact.After(*c.To) {
			return false
		}
	}

	// Multi-field search: any of name, raw phone, clean phone, email.
	if c.Query != "" {
		if !containsFold(ct.Nama, c.Query) &&
			!containsFold(ct.NomorHP, c.Query) &&
			!containsFold(ct.NomorHPClean, c.Query) &&
			!containsFold(ct.Email, c.Query) {
			return false
		}
	}

	return true
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
