package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contacthub/internal/pipeline"
	"contacthub/pkg/models"
	"contacthub/pkg/parser"
)

func fixtureTable(t *testing.T) *models.Table {
	t.Helper()
	n := pipeline.Normalizer{Now: func() time.Time {
		return time.Date(2024, time.January, 25, 9, 0, 0, 0, time.UTC)
	}}
	return n.Normalize(models.RawTable{
		Headers: []string{"Nama", "Nomor HP", "Email", "Perusahaan", "Status Follow-Up", "Keterangan", "Last Contact"},
		Rows: []models.RawRecord{
			{"Nama": "Budi", "Nomor HP": "081234567890", "Email": "budi@example.com", "Perusahaan": "PT Maju", "Status Follow-Up": "Done Contact", "Keterangan": "Sudah deal", "Last Contact": "01-Jan-2024"},
			{"Nama": "Sari", "Nomor HP": "0813", "Email": "sari@corp.id", "Perusahaan": "Corp ID", "Status Follow-Up": "Pending", "Keterangan": "Tunggu kabar", "Last Contact": "20-Jan-2024"},
			{"Nama": "Andi", "Nomor HP": "0814", "Email": "andi@corp.id", "Perusahaan": "Corp ID", "Status Follow-Up": "Belum dihubungi", "Keterangan": "", "Last Contact": ""},
			{"Nama": "Dewi", "Nomor HP": "0815", "Email": "dewi@corp.id", "Perusahaan": "Corp ID", "Status Follow-Up": "Done Contact", "Keterangan": "", "Last Contact": "20-Jan-2024"},
		},
	})
}

func TestSummarize(t *testing.T) {
	s := Summarize(fixtureTable(t))

	assert.Equal(t, 4, s.TotalContacts)
	require.NotNil(t, s.DoneCount)
	assert.Equal(t, 2, *s.DoneCount)
	require.NotNil(t, s.PendingCount)
	assert.Equal(t, 2, *s.PendingCount) // Pending + Belum dihubungi

	require.NotNil(t, s.LastContact)
	assert.Equal(t, time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC), *s.LastContact)

	// highest bar first
	require.NotEmpty(t, s.StatusCounts)
	assert.Equal(t, StatusCount{Status: "Done Contact", Count: 2}, s.StatusCounts[0])

	assert.Equal(t, []DateCount{
		{Date: "2024-01-01", Count: 1},
		{Date: "2024-01-20", Count: 2},
	}, s.Activity)

	// Budi 24 days = Red, Sari/Dewi 5 days = Green, Andi = No Date
	assert.Equal(t, []StatusCount{
		{Status: pipeline.SLARed, Count: 1},
		{Status: pipeline.SLAYellow, Count: 0},
		{Status: pipeline.SLAGreen, Count: 2},
		{Status: pipeline.SLANoDate, Count: 1},
	}, s.SLACounts)
}

func TestSummarize_NoStatusColumn(t *testing.T) {
	n := pipeline.Normalizer{Now: time.Now}
	table := n.Normalize(models.RawTable{
		Headers: []string{"Nama"},
		Rows:    []models.RawRecord{{"Nama": "Budi"}},
	})

	s := Summarize(table)
	assert.Nil(t, s.DoneCount)
	assert.Nil(t, s.PendingCount)
	assert.Empty(t, s.StatusCounts)
}

func TestStatusValues(t *testing.T) {
	got := StatusValues(fixtureTable(t))
	assert.Equal(t, []string{"Belum dihubungi", "Done Contact", "Pending"}, got)
}

func TestDateRange(t *testing.T) {
	min, max := DateRange(fixtureTable(t))
	require.NotNil(t, min)
	require.NotNil(t, max)
	assert.Equal(t, "2024-01-01", min.Format("2006-01-02"))
	assert.Equal(t, "2024-01-20", max.Format("2006-01-02"))
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	table := fixtureTable(t)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, table))

	reparsed, warnings, err := parser.ParseCSV(buf.Bytes())
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, reparsed.Rows, table.Len())

	assert.Equal(t, []string{
		"Nama", "Nomor HP", "Nomor HP (clean)", "Email", "Perusahaan",
		"Status Follow-Up", "Keterangan", "Last Contact",
		"Days Since Last Contact", "SLA Status", "Link WhatsApp",
	}, reparsed.Headers)

	first := reparsed.Rows[0]
	assert.Equal(t, "Budi", first["Nama"])
	assert.Equal(t, "6281234567890", first["Nomor HP (clean)"])
	assert.Equal(t, "2024-01-01", first["Last Contact"])
	assert.Equal(t, "24", first["Days Since Last Contact"])
	assert.Equal(t, pipeline.SLARed, first["SLA Status"])
	assert.Equal(t, "https://wa.me/6281234567890", first["Link WhatsApp"])

	// no-date row exports empty cells for the date columns
	third := reparsed.Rows[2]
	assert.Equal(t, "", third["Last Contact"])
	assert.Equal(t, "", third["Days Since Last Contact"])
	assert.Equal(t, pipeline.SLANoDate, third["SLA Status"])
}

func TestWriteCSV_AbsentColumnsDropped(t *testing.T) {
	n := pipeline.Normalizer{Now: time.Now}
	table := n.Normalize(models.RawTable{
		Headers: []string{"Nama"},
		Rows:    []models.RawRecord{{"Nama": "Budi"}},
	})

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, table))

	reparsed, _, err := parser.ParseCSV(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Nama", "Nomor HP (clean)", "Last Contact",
		"Days Since Last Contact", "SLA Status", "Link WhatsApp",
	}, reparsed.Headers)
}
