// Package recommend derives skill recommendations from a user's
// assessment history. It ranks weak skills by an improvement-priority
// heuristic and orders skill records fetched from the backend by that
// local ranking. Like scoring, it is pure logic; the dashboard owns the
// surrounding fetches.
package recommend

import (
	"sort"
	"time"

	"github.com/eldrige/skillsassess/internal/scoring"
)

// Priority weights. Low average scores dominate, but repeated attempts at
// a weak skill raise its urgency up to the attempt cap.
const (
	scoreWeight   = 0.7
	attemptWeight = 0.3
	attemptCap    = 3
)

// HistoryEntry is one completed assessment attempt, as returned by the
// backend history endpoint. SkillID may be zero for legacy records;
// those entries are excluded from ranking but still count toward generic
// activity signals such as the completed-assessments total.
type HistoryEntry struct {
	ID           int       `json:"id"`
	AssessmentID int       `json:"assessmentId"`
	SkillID      int       `json:"skillId,omitempty"`
	Title        string    `json:"title,omitempty"`
	Score        int       `json:"score"`
	Category     string    `json:"category,omitempty"`
	CompletedAt  time.Time `json:"completed_at"`
}

// Passed reports whether this attempt met the passing threshold.
func (e HistoryEntry) Passed() bool {
	return e.Score >= scoring.PassingScore
}

// SkillPriority is the per-skill aggregate computed from history. It is
// recomputed on every recommendation pass and never persisted.
type SkillPriority struct {
	SkillID      int
	AverageScore float64
	Attempts     int
	Priority     float64
}

// RankSkillsForImprovement groups history by skill, averages the scores,
// and ranks skills whose average is below the passing threshold. The
// result is sorted by priority descending; ties keep the order in which
// the skills first appear in history, so output is deterministic.
func RankSkillsForImprovement(history []HistoryEntry) []SkillPriority {
	type agg struct {
		sum      int
		attempts int
		order    int
	}

	aggs := make(map[int]*agg)
	var order []int
	for _, e := range history {
		if e.SkillID == 0 {
			continue
		}
		a, ok := aggs[e.SkillID]
		if !ok {
			a = &agg{order: len(order)}
			aggs[e.SkillID] = a
			order = append(order, e.SkillID)
		}
		a.sum += e.Score
		a.attempts++
	}

	var ranked []SkillPriority
	for _, skillID := range order {
		a := aggs[skillID]
		avg := float64(a.sum) / float64(a.attempts)
		if avg >= scoring.PassingScore {
			continue
		}
		ranked = append(ranked, SkillPriority{
			SkillID:      skillID,
			AverageScore: avg,
			Attempts:     a.attempts,
			Priority:     priority(avg, a.attempts),
		})
	}

	// Stable keeps first-seen order for equal priorities.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Priority > ranked[j].Priority
	})

	return ranked
}

// priority combines a score-deficit term and an attempt term, each
// bounded to [0, 1] before weighting, so the result is always in [0, 1].
func priority(avgScore float64, attempts int) float64 {
	deficit := (float64(scoring.PassingScore) - avgScore) / float64(scoring.PassingScore)
	if deficit < 0 {
		deficit = 0
	}

	persistence := float64(attempts) / attemptCap
	if persistence > 1 {
		persistence = 1
	}

	return scoreWeight*deficit + attemptWeight*persistence
}

// SkillIDs returns the ranked skill identifiers, highest priority first.
func SkillIDs(priorities []SkillPriority) []int {
	ids := make([]int, 0, len(priorities))
	for _, p := range priorities {
		ids = append(ids, p.SkillID)
	}
	return ids
}
