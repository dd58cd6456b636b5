package api

import (
	"github.com/eldrige/skillsassess/internal/skills"
)

// Assessment is one entry of the assessment catalog.
type Assessment struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	SkillID       int    `json:"skillId,omitempty"`
	Category      string `json:"category,omitempty"`
	Description   string `json:"description,omitempty"`
	QuestionCount int    `json:"questionCount,omitempty"`
}

// Submission is the score payload sent when an assessment completes.
type Submission struct {
	UserID         int `json:"userId"`
	AssessmentID   int `json:"assessmentId"`
	Score          int `json:"score"`
	TotalQuestions int `json:"total_questions"`
	TimeTakenSecs  int `json:"time_taken"`
}

// SubmissionAck is the backend's acknowledgement. It is consumed only
// for logging.
type SubmissionAck struct {
	Message  string `json:"message,omitempty"`
	ReportID int    `json:"report_id,omitempty"`
}

// SkillQuery parameterizes the paginated skill endpoints.
type SkillQuery struct {
	// SkillIDs restricts the recommended-skills endpoint to the ranked
	// candidates. Ignored by the catalog endpoint.
	SkillIDs []int

	// Page is 1-based.
	Page  int
	Limit int

	// Category filters by catalog category; skills.CategoryAll (or
	// empty) means no filter.
	Category string

	// Search is a free-text name filter.
	Search string
}

// SkillPage is one page of skill records. HasMore comes from the server
// and is never computed locally.
type SkillPage struct {
	Skills  []skills.Skill `json:"skills"`
	HasMore bool           `json:"hasMore"`
}
