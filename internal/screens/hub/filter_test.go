package hub

import (
	"testing"
	"time"

	"github.com/eldrige/skillsassess/internal/api"
	"github.com/eldrige/skillsassess/internal/recommend"
)

var now = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

func historyFixture() []recommend.HistoryEntry {
	return []recommend.HistoryEntry{
		{ID: 1, Title: "SQL Fundamentals", Score: 80, CompletedAt: now.AddDate(0, 0, -2)},
		{ID: 2, Title: "Effective Communication", Score: 55, CompletedAt: now.AddDate(0, 0, -20)},
		{ID: 3, Title: "Logical Reasoning", Score: 90, CompletedAt: now.AddDate(0, -6, 0)},
		{ID: 4, Title: "SQL Joins", Score: 40},
	}
}

func TestFilterHistory_AllTimeKeepsEverything(t *testing.T) {
	got := FilterHistory(historyFixture(), "", RangeAll, now)
	if len(got) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(got))
	}
}

func TestFilterHistory_WeekWindow(t *testing.T) {
	got := FilterHistory(historyFixture(), "", RangeWeek, now)
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected only entry 1 in the past week, got %+v", got)
	}
}

func TestFilterHistory_MonthWindow(t *testing.T) {
	got := FilterHistory(historyFixture(), "", RangeMonth, now)
	if len(got) != 2 {
		t.Fatalf("expected 2 entries in the past month, got %d", len(got))
	}
}

func TestFilterHistory_YearWindow(t *testing.T) {
	got := FilterHistory(historyFixture(), "", RangeYear, now)
	if len(got) != 3 {
		t.Fatalf("expected 3 dated entries in the past year, got %d", len(got))
	}
}

func TestFilterHistory_UndatedExcludedFromWindows(t *testing.T) {
	got := FilterHistory(historyFixture(), "sql", RangeYear, now)
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("undated entry must not match a bounded range, got %+v", got)
	}
}

func TestFilterHistory_SearchIsCaseInsensitive(t *testing.T) {
	got := FilterHistory(historyFixture(), "  SQL ", RangeAll, now)
	if len(got) != 2 {
		t.Fatalf("expected 2 SQL entries, got %d", len(got))
	}
}

func TestFilterHistory_SearchAndRangeCombine(t *testing.T) {
	got := FilterHistory(historyFixture(), "communication", RangeWeek, now)
	if len(got) != 0 {
		t.Fatalf("expected no matches, got %+v", got)
	}
}

func TestFilterAssessments(t *testing.T) {
	catalog := []api.Assessment{
		{ID: 1, Title: "Time Management"},
		{ID: 2, Title: "Project Management"},
		{ID: 3, Title: "Creative Writing"},
	}

	got := FilterAssessments(catalog, "management")
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}

	got = FilterAssessments(catalog, "")
	if len(got) != 3 {
		t.Fatalf("empty search must keep everything, got %d", len(got))
	}
}

func TestDateRangeCycle(t *testing.T) {
	r := RangeAll
	seen := map[DateRange]bool{}
	for i := 0; i < 4; i++ {
		seen[r] = true
		r = r.Next()
	}
	if r != RangeAll {
		t.Fatalf("expected cycle back to all time, got %v", r)
	}
	if len(seen) != 4 {
		t.Fatalf("expected 4 distinct ranges, saw %d", len(seen))
	}
}
