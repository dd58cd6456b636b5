// Package skills holds the skill catalog types shared by the API client,
// the recommendation engine, and the dashboard.
package skills

// Skill is one catalog record as served by the backend.
type Skill struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	Category        string `json:"category"`
	Description     string `json:"description,omitempty"`
	Difficulty      string `json:"difficulty,omitempty"`
	AssessmentCount int    `json:"assessmentCount,omitempty"`

	// Proficiency is the user's percentage for this skill when the
	// backend knows one. Nil means unknown; the UI renders no bar for it.
	Proficiency *int `json:"proficiency,omitempty"`
}

// CategoryAll is the filter value meaning "no category filter".
const CategoryAll = "All"

// Categories are the filter options offered by the dashboard, in display
// order.
func Categories() []string {
	return []string{CategoryAll, "Soft Skills", "Technical", "Cognitive"}
}
