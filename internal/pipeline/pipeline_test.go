package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contacthub/pkg/models"
)

// fixedClock pins "today" so day counts are deterministic.
func fixedClock(y int, m time.Month, d int) Clock {
	return func() time.Time {
		return time.Date(y, m, d, 13, 37, 0, 0, time.UTC)
	}
}

func TestReconcile(t *testing.T) {
	t.Run("canonical names map to themselves", func(t *testing.T) {
		rename := Reconcile([]string{"Nama", "Nomor HP", "Email", "Status Follow-Up"})
		assert.Equal(t, models.FieldNama, rename["Nama"])
		assert.Equal(t, models.FieldNomorHP, rename["Nomor HP"])
		assert.Equal(t, models.FieldEmail, rename["Email"])
		assert.Equal(t, models.FieldStatus, rename["Status Follow-Up"])
	})

	t.Run("aliases map", func(t *testing.T) {
		rename := Reconcile([]string{"name", "Phone", "Company", "Notes", "Terakhir Kontak"})
		assert.Equal(t, models.FieldNama, rename["name"])
		assert.Equal(t, models.FieldNomorHP, rename["Phone"])
		assert.Equal(t, models.FieldPerusahaan, rename["Company"])
		assert.Equal(t, models.FieldKeterangan, rename["Notes"])
		assert.Equal(t, models.FieldLastContact, rename["Terakhir Kontak"])
	})

	t.Run("first alias in list wins", func(t *testing.T) {
		// both the canonical name and a later alias are present;
		// only the canonical name is claimed, "Status" stays unmapped
		rename := Reconcile([]string{"Status Follow-Up", "Status"})
		assert.Equal(t, models.FieldStatus, rename["Status Follow-Up"])
		_, mapped := rename["Status"]
		assert.False(t, mapped)
	})

	t.Run("missing fields are simply absent", func(t *testing.T) {
		rename := Reconcile([]string{"Nama"})
		assert.Len(t, rename, 1)
	})

	t.Run("headers are trimmed", func(t *testing.T) {
		rename := Reconcile([]string{"  Nama  "})
		assert.Equal(t, models.FieldNama, rename["Nama"])
	})
}

func TestNormalize_Scenario(t *testing.T) {
	// reference scenario: processed on a fixed "today" of 2024-01-25
	n := Normalizer{Now: fixedClock(2024, time.January, 25)}

	table := n.Normalize(models.RawTable{
		Headers: []string{"Nama", "Nomor HP", "Last Contact"},
		Rows: []models.RawRecord{
			{"Nama": "Budi", "Nomor HP": "081234567890", "Last Contact": "01-Jan-2024"},
		},
	})

	require.Equal(t, 1, table.Len())
	ct := table.Contacts[0]

	assert.Equal(t, "Budi", ct.Nama)
	assert.Equal(t, "6281234567890", ct.NomorHPClean)
	assert.Equal(t, "https://wa.me/6281234567890", ct.LinkWhatsApp)
	require.NotNil(t, ct.DaysSince)
	assert.Equal(t, 24, *ct.DaysSince)
	assert.Equal(t, SLARed, ct.SLAStatus)
	assert.Equal(t, "01-Jan-2024", ct.LastContactRaw)
	require.NotNil(t, ct.LastContact)
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), *ct.LastContact)
}

func TestNormalize_MissingLastContact(t *testing.T) {
	n := Normalizer{Now: fixedClock(2024, time.January, 25)}

	table := n.Normalize(models.RawTable{
		Headers: []string{"Nama"},
		Rows: []models.RawRecord{
			{"Nama": "Budi"},
			{"Nama": "Sari"},
		},
	})

	for _, ct := range table.Contacts {
		assert.Nil(t, ct.LastContact)
		assert.Nil(t, ct.DaysSince)
		assert.Equal(t, SLANoDate, ct.SLAStatus)
	}
	assert.False(t, table.HasField(models.FieldLastContactRaw))
}

func TestNormalize_SLABoundaries(t *testing.T) {
	today := fixedClock(2024, time.June, 30)
	n := Normalizer{Now: today}

	mk := func(daysAgo int) string {
		return today().AddDate(0, 0, -daysAgo).Format("2006-01-02")
	}

	cases := []struct {
		daysAgo int
		want    string
	}{
		{6, SLAGreen},
		{7, SLAYellow},
		{19, SLAYellow},
		{20, SLARed},
		{0, SLAGreen},
	}
	for _, tc := range cases {
		table := n.Normalize(models.RawTable{
			Headers: []string{"Last Contact"},
			Rows:    []models.RawRecord{{"Last Contact": mk(tc.daysAgo)}},
		})
		ct := table.Contacts[0]
		require.NotNil(t, ct.DaysSince, "daysAgo %d", tc.daysAgo)
		assert.Equal(t, tc.daysAgo, *ct.DaysSince)
		assert.Equal(t, tc.want, ct.SLAStatus, "daysAgo %d", tc.daysAgo)
	}
}

func TestNormalize_PhoneColumnAbsent(t *testing.T) {
	table := Normalizer{Now: fixedClock(2024, time.January, 25)}.Normalize(models.RawTable{
		Headers: []string{"Nama"},
		Rows:    []models.RawRecord{{"Nama": "Budi"}},
	})

	ct := table.Contacts[0]
	assert.Equal(t, "", ct.NomorHPClean)
	assert.Equal(t, WhatsAppBase, ct.LinkWhatsApp)
	assert.True(t, table.HasField(models.FieldNomorHPClean))
}

func TestNormalize_WhatsAppLink(t *testing.T) {
	n := Normalizer{Now: fixedClock(2024, time.January, 25)}

	t.Run("existing links preserved, gaps filled", func(t *testing.T) {
		table := n.Normalize(models.RawTable{
			Headers: []string{"Nomor HP", "Link WhatsApp"},
			Rows: []models.RawRecord{
				{"Nomor HP": "0811", "Link WhatsApp": "https://wa.me/custom"},
				{"Nomor HP": "0812", "Link WhatsApp": ""},
			},
		})
		assert.Equal(t, "https://wa.me/custom", table.Contacts[0].LinkWhatsApp)
		assert.Equal(t, "https://wa.me/62812", table.Contacts[1].LinkWhatsApp)
	})

	t.Run("all-empty link column treated as absent", func(t *testing.T) {
		table := n.Normalize(models.RawTable{
			Headers: []string{"Nomor HP", "Link WhatsApp"},
			Rows: []models.RawRecord{
				{"Nomor HP": "0811", "Link WhatsApp": ""},
			},
		})
		assert.Equal(t, "https://wa.me/62811", table.Contacts[0].LinkWhatsApp)
	})
}

func TestNormalize_UnmappedColumnsPreserved(t *testing.T) {
	table := Normalizer{Now: fixedClock(2024, time.January, 25)}.Normalize(models.RawTable{
		Headers: []string{"Nama", "Favorite Color"},
		Rows:    []models.RawRecord{{"Nama": "Budi", "Favorite Color": "green"}},
	})

	assert.Equal(t, "green", table.Contacts[0].Extra["Favorite Color"])
}

func TestNormalize_InputNotMutated(t *testing.T) {
	raw := models.RawTable{
		Headers: []string{"Nama", "Nomor HP"},
		Rows:    []models.RawRecord{{"Nama": "Budi", "Nomor HP": "0812"}},
	}
	_ = Normalizer{Now: fixedClock(2024, time.January, 25)}.Normalize(raw)

	assert.Equal(t, "0812", raw.Rows[0]["Nomor HP"])
	assert.Len(t, raw.Rows[0], 2)
}
