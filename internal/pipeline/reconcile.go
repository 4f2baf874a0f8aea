package pipeline

import (
	"strings"

	"contacthub/pkg/models"
)

// aliasTable lists, per canonical field, the input column names we accept
// for it. The canonical name itself comes first by convention; within a
// field the first alias found among the observed columns wins. Fields are
// resolved in declaration order, so if two fields ever claimed the same
// observed name the earlier field would keep it.
var aliasTable = []struct {
	Field   models.Field
	Aliases []string
}{
	{models.FieldNama, []string{"Nama", "name"}},
	{models.FieldNomorHP, []string{"Nomor HP", "No HP", "Phone", "Nomor"}},
	{models.FieldEmail, []string{"Email", "email"}},
	{models.FieldPerusahaan, []string{"Perusahaan", "Company"}},
	{models.FieldAsalFile, []string{"Asal File", "Source"}},
	{models.FieldLinkWhatsApp, []string{"Link WhatsApp", "WA Link", "Whatsapp Link"}},
	{models.FieldStatus, []string{"Status Follow-Up", "Status", "Follow Up Status"}},
	{models.FieldKeterangan, []string{"Keterangan", "Notes"}},
	{models.FieldLastContact, []string{"Last Contact", "LastContact", "Terakhir Kontak"}},
}

// Reconcile maps observed column names (whitespace-trimmed) onto canonical
// fields. A canonical field with no matching alias is simply absent from
// the result; an observed column claimed by no field stays under its
// original name. Never fails.
func Reconcile(headers []string) map[string]models.Field {
	observed := make(map[string]bool, len(headers))
	for _, h := range headers {
		observed[strings.TrimSpace(h)] = true
	}

	rename := make(map[string]models.Field)
	claimed := make(map[string]bool)
	for _, entry := range aliasTable {
		for _, alias := range entry.Aliases {
			if observed[alias] && !claimed[alias] {
				rename[alias] = entry.Field
				claimed[alias] = true
				break
			}
		}
	}
	return rename
}
