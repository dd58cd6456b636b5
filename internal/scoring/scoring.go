// Package scoring computes assessment scores from question sets and the
// learner's option selections. It is pure logic with no I/O; the caller
// owns submission of the result to the backend.
package scoring

import "math"

// DefaultQuestionType is assumed when the backend omits a question's type tag.
const DefaultQuestionType = "multiple-choice"

// PassingScore is the percentage threshold used everywhere a score is
// judged: assessment results, history badges, and the recommendation
// engine's inclusion rule.
const PassingScore = 70

// Question is a single assessment question as served by the backend.
// Option order is significant: it defines the selectable indices.
type Question struct {
	ID            int      `json:"id"`
	Text          string   `json:"question_text"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Type          string   `json:"type,omitempty"`
}

// Selections maps a question ID to the zero-based index of the chosen
// option. A question with no entry is unanswered; absence is distinct
// from index 0.
type Selections map[int]int

// ScoreResult is the outcome of scoring one assessment attempt.
type ScoreResult struct {
	// Percentage is the rounded score in [0, 100].
	Percentage int
	// TotalQuestions is the number of questions in the assessment.
	TotalQuestions int
}

// Passed reports whether the result meets the passing threshold.
func (r ScoreResult) Passed() bool {
	return r.Percentage >= PassingScore
}

// ComputeScore grades selections against the question list. Unanswered
// questions and out-of-range indices count as incorrect. An answer is
// correct when the selected option string equals the question's correct
// answer.
//
// An empty question list yields ScoreResult{Percentage: 0,
// TotalQuestions: 0}; ComputeScore never panics on it. Neither argument
// is mutated.
func ComputeScore(questions []Question, selections Selections) ScoreResult {
	if len(questions) == 0 {
		return ScoreResult{}
	}

	correct := 0
	for _, q := range questions {
		idx, answered := selections[q.ID]
		if !answered || idx < 0 || idx >= len(q.Options) {
			continue
		}
		if q.Options[idx] == q.CorrectAnswer {
			correct++
		}
	}

	pct := int(math.Round(100 * float64(correct) / float64(len(questions))))
	return ScoreResult{
		Percentage:     pct,
		TotalQuestions: len(questions),
	}
}
