package contacts

import (
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"contacthub/internal/filter"
	"contacthub/internal/pipeline"
	"contacthub/internal/report"
	"contacthub/pkg/models"
	"contacthub/pkg/parser"
)

type Handler struct {
	Store *Store
	Now   pipeline.Clock

	// MaxUploadBytes caps the accepted file size. Zero means no cap.
	MaxUploadBytes int64
}

func NewHandler(store *Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.upload)              // POST   /datasets
	rg.GET("/:id", h.describe)         // GET    /datasets/:id
	rg.DELETE("/:id", h.remove)        // DELETE /datasets/:id
	rg.GET("/:id/contacts", h.list)    // GET    /datasets/:id/contacts
	rg.GET("/:id/summary", h.summary)  // GET    /datasets/:id/summary
	rg.GET("/:id/export", h.exportCSV) // GET    /datasets/:id/export
}

// upload reads a multipart file, runs it through the normalization
// pipeline and hands back a dataset handle. Byte-identical re-uploads
// return the existing handle without re-parsing.
func (h *Handler) upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file field required"})
		return
	}
	if h.MaxUploadBytes > 0 && fh.Size > h.MaxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": fmt.Sprintf("file exceeds %d byte limit", h.MaxUploadBytes),
		})
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot open upload"})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read upload"})
		return
	}

	checksum := Checksum(data)
	if ds := h.Store.Lookup(checksum); ds != nil {
		c.JSON(http.StatusOK, gin.H{
			"id":      ds.ID,
			"rows":    ds.Table.Len(),
			"columns": fieldNames(ds.Table),
			"cached":  true,
		})
		return
	}

	raw, warnings, err := parser.Parse(data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	table := pipeline.Normalizer{Now: h.Now}.Normalize(*raw)
	ds := h.Store.Put(table, fh.Filename, checksum, warnings)

	c.JSON(http.StatusCreated, gin.H{
		"id":      ds.ID,
		"rows":    table.Len(),
		"columns": fieldNames(table),
		"cached":  false,
	})
}

// describe returns dataset metadata: counts, column mapping outcome,
// filter-control seed values and any parse warnings.
func (h *Handler) describe(c *gin.Context) {
	ds := h.Store.Get(c.Param("id"))
	if ds == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "dataset not found"})
		return
	}

	minDate, maxDate := report.DateRange(ds.Table)

	c.JSON(http.StatusOK, gin.H{
		"id":               ds.ID,
		"source":           ds.SourceName,
		"uploaded_at":      ds.UploadedAt,
		"rows":             ds.Table.Len(),
		"columns":          fieldNames(ds.Table),
		"unmapped_columns": unmappedColumns(ds),
		"status_values":    report.StatusValues(ds.Table),
		"date_min":         dateOrNil(minDate),
		"date_max":         dateOrNil(maxDate),
		"warnings":         ds.Warnings,
	})
}

func (h *Handler) remove(c *gin.Context) {
	if !h.Store.Delete(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "dataset not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) list(c *gin.Context) {
	ds := h.Store.Get(c.Param("id"))
	if ds == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "dataset not found"})
		return
	}

	crit, err := parseCriteria(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filtered := filter.Apply(ds.Table, crit)

	limit := parseInt(c.Query("limit"), 50)
	offset := parseInt(c.Query("offset"), 0)
	page := filtered.Contacts
	if offset > len(page) {
		offset = len(page)
	}
	page = page[offset:]
	if limit > 0 && limit < len(page) {
		page = page[:limit]
	}

	c.JSON(http.StatusOK, gin.H{
		"total":  filtered.Len(),
		"limit":  limit,
		"offset": offset,
		"items":  page,
	})
}

func (h *Handler) summary(c *gin.Context) {
	ds := h.Store.Get(c.Param("id"))
	if ds == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "dataset not found"})
		return
	}

	crit, err := parseCriteria(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report.Summarize(filter.Apply(ds.Table, crit)))
}

func (h *Handler) exportCSV(c *gin.Context) {
	ds := h.Store.Get(c.Param("id"))
	if ds == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "dataset not found"})
		return
	}

	crit, err := parseCriteria(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filtered := filter.Apply(ds.Table, crit)

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="contacts_filtered.csv"`)
	if err := report.WriteCSV(c.Writer, filtered); err != nil {
		// headers are already gone; nothing left to do but log-worthy abort
		_ = c.Error(err)
	}
}

// parseCriteria reads the shared filter query params.
// status accepts repeats or comma-separated values, dates are YYYY-MM-DD.
func parseCriteria(c *gin.Context) (filter.Criteria, error) {
	var crit filter.Criteria

	statuses := c.QueryArray("status")
	if len(statuses) == 1 && strings.Contains(statuses[0], ",") {
		statuses = strings.Split(statuses[0], ",")
	}
	for _, s := range statuses {
		if s = strings.TrimSpace(s); s != "" {
			crit.Statuses = append(crit.Statuses, s)
		}
	}

	crit.Note = c.Query("note")
	crit.Query = c.Query("q")

	var err error
	if crit.From, err = parseDateParam(c.Query("from")); err != nil {
		return crit, fmt.Errorf("invalid from date: %w", err)
	}
	if crit.To, err = parseDateParam(c.Query("to")); err != nil {
		return crit, fmt.Errorf("invalid to date: %w", err)
	}
	return crit, nil
}

func parseDateParam(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseInt(s string, def int) int {
	if strings.TrimSpace(s) == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return def
	}
	return n
}

// fieldNames lists the canonical columns present, in export order first
// and any remaining (non-exported passthrough like Asal File) after.
func fieldNames(t *models.Table) []string {
	out := make([]string, 0, len(t.Fields))
	for _, f := range report.ExportColumns(t) {
		out = append(out, string(f))
	}
	var rest []string
	for f := range t.Fields {
		if !containsString(out, string(f)) {
			rest = append(rest, string(f))
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

func containsString(xs []string, want string) bool {
	for _, x := range xs {
		if x == want {
			return true
		}
	}
	return false
}

// unmappedColumns collects input columns no canonical field claimed.
func unmappedColumns(ds *Dataset) []string {
	seen := make(map[string]bool)
	for i := range ds.Table.Contacts {
		for col := range ds.Table.Contacts[i].Extra {
			seen[col] = true
		}
	}
	out := make([]string, 0, len(seen))
	for col := range seen {
		out = append(out, col)
	}
	sort.Strings(out)
	return out
}

func dateOrNil(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Format("2006-01-02")
}
