package api

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/eldrige/skillsassess/internal/auth"
	"github.com/eldrige/skillsassess/internal/recommend"
	"github.com/eldrige/skillsassess/internal/scoring"
)

// LoggingService is a decorator that records every API call's method,
// latency, and outcome to a writer. Logging failures never fail the
// request.
type LoggingService struct {
	inner Service
	mu    sync.Mutex
	w     io.Writer
}

// WithLogging wraps a Service with request logging.
func WithLogging(s Service, w io.Writer) Service {
	return &LoggingService{inner: s, w: w}
}

func (l *LoggingService) log(call string, start time.Time, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	outcome := "ok"
	if err != nil {
		outcome = err.Error()
	}
	fmt.Fprintf(l.w, "%s api %s %dms %s\n",
		time.Now().Format(time.RFC3339), call, time.Since(start).Milliseconds(), outcome)
}

func (l *LoggingService) Assessments(ctx context.Context) ([]Assessment, error) {
	start := time.Now()
	out, err := l.inner.Assessments(ctx)
	l.log("assessments", start, err)
	return out, err
}

func (l *LoggingService) Questions(ctx context.Context, assessmentID int) ([]scoring.Question, error) {
	start := time.Now()
	out, err := l.inner.Questions(ctx, assessmentID)
	l.log(fmt.Sprintf("questions/%d", assessmentID), start, err)
	return out, err
}

func (l *LoggingService) Submit(ctx context.Context, sub Submission) (*SubmissionAck, error) {
	start := time.Now()
	out, err := l.inner.Submit(ctx, sub)
	l.log(fmt.Sprintf("submit/%d score=%d", sub.AssessmentID, sub.Score), start, err)
	return out, err
}

func (l *LoggingService) History(ctx context.Context, userID int) ([]recommend.HistoryEntry, error) {
	start := time.Now()
	out, err := l.inner.History(ctx, userID)
	l.log("history", start, err)
	return out, err
}

func (l *LoggingService) RecommendedSkills(ctx context.Context, q SkillQuery) (*SkillPage, error) {
	start := time.Now()
	out, err := l.inner.RecommendedSkills(ctx, q)
	l.log(fmt.Sprintf("recommended-skills page=%d", q.Page), start, err)
	return out, err
}

func (l *LoggingService) AllSkills(ctx context.Context, q SkillQuery) (*SkillPage, error) {
	start := time.Now()
	out, err := l.inner.AllSkills(ctx, q)
	l.log(fmt.Sprintf("all-skills page=%d", q.Page), start, err)
	return out, err
}

func (l *LoggingService) Profile(ctx context.Context) (*auth.Profile, error) {
	start := time.Now()
	out, err := l.inner.Profile(ctx)
	l.log("profile", start, err)
	return out, err
}
