package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/eldrige/skillsassess/internal/auth"
	"github.com/eldrige/skillsassess/internal/recommend"
	"github.com/eldrige/skillsassess/internal/scoring"
	"github.com/eldrige/skillsassess/internal/skills"
)

// Service is the SkillsAssess backend surface this client consumes.
// Screens depend on this interface so tests can stub the backend.
type Service interface {
	// Assessments lists the assessment catalog.
	Assessments(ctx context.Context) ([]Assessment, error)

	// Questions fetches the question set for one assessment.
	Questions(ctx context.Context, assessmentID int) ([]scoring.Question, error)

	// Submit posts a completed attempt's score. Failures are logged and
	// surfaced, never retried.
	Submit(ctx context.Context, sub Submission) (*SubmissionAck, error)

	// History fetches the user's completed attempts. Bearer-authenticated.
	History(ctx context.Context, userID int) ([]recommend.HistoryEntry, error)

	// RecommendedSkills fetches a page of skills matching the ranked
	// candidate IDs. Bearer-authenticated.
	RecommendedSkills(ctx context.Context, q SkillQuery) (*SkillPage, error)

	// AllSkills fetches a page of the full catalog.
	AllSkills(ctx context.Context, q SkillQuery) (*SkillPage, error)

	// Profile fetches the signed-in user's profile. Bearer-authenticated.
	Profile(ctx context.Context) (*auth.Profile, error)
}

// Client is the HTTP implementation of Service.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  auth.TokenSource
}

var _ Service = (*Client)(nil)

// NewClient creates a Client. tokens may be nil for anonymous use; calls
// to authenticated endpoints then fail with ErrUnauthorized.
func NewClient(cfg Config, tokens auth.TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		tokens:  tokens,
	}
}

func (c *Client) Assessments(ctx context.Context) ([]Assessment, error) {
	var out []Assessment
	if err := c.get(ctx, "/assessments/all", nil, false, "assessments", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Questions(ctx context.Context, assessmentID int) ([]scoring.Question, error) {
	path := fmt.Sprintf("/assessments/%d/questions", assessmentID)

	var out []scoring.Question
	if err := c.get(ctx, path, nil, false, "questions", &out); err != nil {
		return nil, err
	}

	// Coerce the optional type tag at the boundary.
	for i := range out {
		if out[i].Type == "" {
			out[i].Type = scoring.DefaultQuestionType
		}
	}
	return out, nil
}

func (c *Client) Submit(ctx context.Context, sub Submission) (*SubmissionAck, error) {
	path := fmt.Sprintf("/assessments/%d/submit", sub.AssessmentID)

	var ack SubmissionAck
	if err := c.send(ctx, http.MethodPost, path, nil, sub, true, "submission-ack", &ack); err != nil {
		return nil, err
	}
	return &ack, nil
}

// historyRecord is the wire shape of one history entry. completed_at is
// parsed leniently since the backend's timestamp format is not pinned.
type historyRecord struct {
	ID           int    `json:"id"`
	AssessmentID int    `json:"assessmentId"`
	SkillID      int    `json:"skillId"`
	Title        string `json:"title"`
	Score        int    `json:"score"`
	Category     string `json:"category"`
	CompletedAt  string `json:"completed_at"`
}

func (c *Client) History(ctx context.Context, userID int) ([]recommend.HistoryEntry, error) {
	query := url.Values{"userId": {strconv.Itoa(userID)}}

	var records []historyRecord
	if err := c.get(ctx, "/user-assessments/history", query, true, "history", &records); err != nil {
		return nil, err
	}

	entries := make([]recommend.HistoryEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, recommend.HistoryEntry{
			ID:           r.ID,
			AssessmentID: r.AssessmentID,
			SkillID:      r.SkillID,
			Title:        r.Title,
			Score:        r.Score,
			Category:     r.Category,
			CompletedAt:  parseTimestamp(r.CompletedAt),
		})
	}
	return entries, nil
}

func (c *Client) RecommendedSkills(ctx context.Context, q SkillQuery) (*SkillPage, error) {
	if q.Limit == 0 {
		q.Limit = RecommendedPageSize
	}

	query := skillQueryValues(q)
	ids := make([]string, 0, len(q.SkillIDs))
	for _, id := range q.SkillIDs {
		ids = append(ids, strconv.Itoa(id))
	}
	query.Set("skillIds", strings.Join(ids, ","))

	var page SkillPage
	if err := c.get(ctx, "/recommended-skills", query, true, "skill-page", &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) AllSkills(ctx context.Context, q SkillQuery) (*SkillPage, error) {
	if q.Limit == 0 {
		q.Limit = CatalogPageSize
	}

	var page SkillPage
	if err := c.get(ctx, "/all-skills", skillQueryValues(q), false, "skill-page", &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) Profile(ctx context.Context) (*auth.Profile, error) {
	var p auth.Profile
	if err := c.get(ctx, "/profile", nil, true, "profile", &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func skillQueryValues(q SkillQuery) url.Values {
	if q.Page < 1 {
		q.Page = 1
	}

	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("limit", strconv.Itoa(q.Limit))
	if q.Category != "" && q.Category != skills.CategoryAll {
		v.Set("category", q.Category)
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	return v
}

func (c *Client) get(ctx context.Context, path string, query url.Values, authed bool, schema string, out any) error {
	return c.send(ctx, http.MethodGet, path, query, nil, authed, schema, out)
}

// send performs one request, classifies failures into the package's
// typed errors, validates the response body, and decodes it into out.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, body any, authed bool, schema string, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s request: %w", path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("build %s request: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if authed {
		if c.tokens == nil {
			return &ErrUnauthorized{Err: auth.ErrNotSignedIn}
		}
		token, err := c.tokens.Token()
		if err != nil {
			return &ErrUnauthorized{Err: err}
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &ErrUnavailable{Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return &ErrUnauthorized{Status: resp.StatusCode}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return &ErrStatus{Endpoint: path, Status: resp.StatusCode}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &ErrUnavailable{Err: err}
	}

	if err := validatePayload(path, schema, raw); err != nil {
		return err
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return &ErrInvalidPayload{Endpoint: path, Content: raw, Err: err}
	}
	return nil
}

// timestampFormats are tried in order when parsing history timestamps.
var timestampFormats = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseTimestamp parses leniently; unparseable values yield the zero
// time rather than failing the whole history fetch.
func parseTimestamp(s string) time.Time {
	for _, layout := range timestampFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
