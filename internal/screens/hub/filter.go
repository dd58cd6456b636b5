package hub

import (
	"strings"
	"time"

	"github.com/eldrige/skillsassess/internal/api"
	"github.com/eldrige/skillsassess/internal/recommend"
)

// DateRange narrows the results list to a recent window.
type DateRange int

const (
	RangeAll DateRange = iota
	RangeWeek
	RangeMonth
	RangeYear
)

func (r DateRange) Label() string {
	switch r {
	case RangeWeek:
		return "Past week"
	case RangeMonth:
		return "Past month"
	case RangeYear:
		return "Past year"
	default:
		return "All time"
	}
}

// Next cycles to the following range, wrapping after RangeYear.
func (r DateRange) Next() DateRange {
	return (r + 1) % 4
}

// cutoff returns the oldest completion time the range admits. The zero
// time means no lower bound.
func cutoff(r DateRange, now time.Time) time.Time {
	switch r {
	case RangeWeek:
		return now.AddDate(0, 0, -7)
	case RangeMonth:
		return now.AddDate(0, -1, 0)
	case RangeYear:
		return now.AddDate(-1, 0, 0)
	default:
		return time.Time{}
	}
}

// FilterHistory applies the title search and date range to completed
// attempts. Matching is a case-insensitive substring check. Entries
// without a completion timestamp survive only the all-time range.
func FilterHistory(entries []recommend.HistoryEntry, search string, r DateRange, now time.Time) []recommend.HistoryEntry {
	needle := strings.ToLower(strings.TrimSpace(search))
	min := cutoff(r, now)

	var out []recommend.HistoryEntry
	for _, e := range entries {
		if needle != "" && !strings.Contains(strings.ToLower(e.Title), needle) {
			continue
		}
		if !min.IsZero() && (e.CompletedAt.IsZero() || e.CompletedAt.Before(min)) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterAssessments applies the title search to the catalog.
func FilterAssessments(list []api.Assessment, search string) []api.Assessment {
	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		return list
	}
	var out []api.Assessment
	for _, a := range list {
		if strings.Contains(strings.ToLower(a.Title), needle) {
			out = append(out, a)
		}
	}
	return out
}
