package report

import (
	"sort"
	"time"

	"contacthub/internal/pipeline"
	"contacthub/pkg/models"
)

// DoneStatus is the follow-up state counted as completed.
const DoneStatus = "Done Contact"

// PendingStatuses are the follow-up states counted as not yet contacted.
var PendingStatuses = []string{"Belum dikontak", "Belum dihubungi", "Pending"}

// StatusCount is one bar of the status-distribution chart.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// DateCount is one point of the per-date activity chart.
type DateCount struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int    `json:"count"`
}

// Summary is the KPI and chart block rendered over a (filtered) table.
// DoneCount and PendingCount are nil when the table has no status column,
// mirroring the "-" the dashboard shows in that case.
type Summary struct {
	TotalContacts int            `json:"total_contacts"`
	DoneCount     *int           `json:"done_count"`
	PendingCount  *int           `json:"pending_count"`
	LastContact   *time.Time     `json:"last_contact,omitempty"` // most recent non-absent date
	StatusCounts  []StatusCount  `json:"status_counts"`
	SLACounts     []StatusCount  `json:"sla_counts"`
	Activity      []DateCount    `json:"activity"`
}

// Summarize computes the KPI block in one pass over the table.
func Summarize(t *models.Table) Summary {
	s := Summary{TotalContacts: t.Len()}

	hasStatus := t.HasField(models.FieldStatus)
	if hasStatus {
		done, pending := 0, 0
		s.DoneCount = &done
		s.PendingCount = &pending
	}

	pendingSet := make(map[string]bool, len(PendingStatuses))
	for _, p := range PendingStatuses {
		pendingSet[p] = true
	}

	statusCounts := make(map[string]int)
	slaCounts := make(map[string]int)
	activity := make(map[string]int)

	for i := range t.Contacts {
		ct := &t.Contacts[i]

		if hasStatus {
			if ct.Status == DoneStatus {
				*s.DoneCount++
			}
			if pendingSet[ct.Status] {
				*s.PendingCount++
			}
			if ct.Status != "" {
				statusCounts[ct.Status]++
			}
		}

		slaCounts[ct.SLAStatus]++

		if ct.LastContact != nil {
			if s.LastContact == nil || ct.LastContact.After(*s.LastContact) {
				s.LastContact = ct.LastContact
			}
			activity[ct.LastContact.Format("2006-01-02")]++
		}
	}

	s.StatusCounts = sortedStatusCounts(statusCounts)
	s.Activity = sortedActivity(activity)

	// SLA buckets in severity order, zeros included so charts stay stable
	for _, label := range []string{pipeline.SLARed, pipeline.SLAYellow, pipeline.SLAGreen, pipeline.SLANoDate} {
		s.SLACounts = append(s.SLACounts, StatusCount{Status: label, Count: slaCounts[label]})
	}

	return s
}

// StatusValues returns the sorted distinct non-empty Status Follow-Up
// values, used to populate the status filter control.
func StatusValues(t *models.Table) []string {
	if !t.HasField(models.FieldStatus) {
		return nil
	}
	seen := make(map[string]bool)
	for i := range t.Contacts {
		if v := t.Contacts[i].Status; v != "" {
			seen[v] = true
		}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// DateRange returns the earliest and latest non-absent Last Contact
// dates, or nils when the table carries no parsed dates. Seeds the
// date-range filter control.
func DateRange(t *models.Table) (min, max *time.Time) {
	for i := range t.Contacts {
		d := t.Contacts[i].LastContact
		if d == nil {
			continue
		}
		if min == nil || d.Before(*min) {
			min = d
		}
		if max == nil || d.After(*max) {
			max = d
		}
	}
	return min, max
}

func sortedStatusCounts(m map[string]int) []StatusCount {
	out := make([]StatusCount, 0, len(m))
	for status, n := range m {
		out = append(out, StatusCount{Status: status, Count: n})
	}
	// highest bar first, name as tiebreak for determinism
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Status < out[j].Status
	})
	return out
}

func sortedActivity(m map[string]int) []DateCount {
	out := make([]DateCount, 0, len(m))
	for date, n := range m {
		out = append(out, DateCount{Date: date, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
