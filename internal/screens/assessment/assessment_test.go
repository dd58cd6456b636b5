package assessment

import (
	"context"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/eldrige/skillsassess/internal/api"
	"github.com/eldrige/skillsassess/internal/auth"
	"github.com/eldrige/skillsassess/internal/recommend"
	"github.com/eldrige/skillsassess/internal/scoring"
)

// stubService implements api.Service for testing.
type stubService struct {
	questions []scoring.Question
	submitted []api.Submission
	submitErr error
}

func (s *stubService) Assessments(_ context.Context) ([]api.Assessment, error) {
	return nil, nil
}
func (s *stubService) Questions(_ context.Context, _ int) ([]scoring.Question, error) {
	return s.questions, nil
}
func (s *stubService) Submit(_ context.Context, sub api.Submission) (*api.SubmissionAck, error) {
	if s.submitErr != nil {
		return nil, s.submitErr
	}
	s.submitted = append(s.submitted, sub)
	return &api.SubmissionAck{Message: "ok"}, nil
}
func (s *stubService) History(_ context.Context, _ int) ([]recommend.HistoryEntry, error) {
	return nil, nil
}
func (s *stubService) RecommendedSkills(_ context.Context, _ api.SkillQuery) (*api.SkillPage, error) {
	return &api.SkillPage{}, nil
}
func (s *stubService) AllSkills(_ context.Context, _ api.SkillQuery) (*api.SkillPage, error) {
	return &api.SkillPage{}, nil
}
func (s *stubService) Profile(_ context.Context) (*auth.Profile, error) {
	return nil, nil
}

var _ api.Service = (*stubService)(nil)

func twoQuestions() []scoring.Question {
	return []scoring.Question{
		{ID: 10, Text: "Pick A", Options: []string{"A", "B"}, CorrectAnswer: "A"},
		{ID: 20, Text: "Pick D", Options: []string{"C", "D"}, CorrectAnswer: "D"},
	}
}

func loaded(t *testing.T, svc *stubService, creds *auth.Credentials) *AssessmentScreen {
	t.Helper()
	s := New(svc, creds, api.Assessment{ID: 1, Title: "Demo"}, time.Minute)
	s.Update(questionsLoadedMsg{Session: s.session, Questions: svc.questions})
	if s.phase != phaseActive {
		t.Fatalf("expected active phase after load, got %v", s.phase)
	}
	return s
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestStaleQuestionsDropped(t *testing.T) {
	svc := &stubService{questions: twoQuestions()}
	s := New(svc, nil, api.Assessment{ID: 1}, time.Minute)

	s.Update(questionsLoadedMsg{Session: "other-session", Questions: svc.questions})

	if s.phase != phaseLoading {
		t.Fatalf("response from a different session must be ignored, got phase %v", s.phase)
	}
}

func TestStaleTickDropped(t *testing.T) {
	svc := &stubService{questions: twoQuestions()}
	s := loaded(t, svc, nil)

	before := s.clock.Elapsed()
	s.Update(timerTickMsg{Session: "other-session"})

	if s.clock.Elapsed() != before {
		t.Fatal("tick from a different session must not advance the clock")
	}
}

func TestNumberKeyRecordsAnswer(t *testing.T) {
	svc := &stubService{questions: twoQuestions()}
	s := loaded(t, svc, nil)

	s.Update(keyPress('2'))

	if got, ok := s.selected[10]; !ok || got != 1 {
		t.Fatalf("expected option index 1 recorded for question 10, got %v (ok=%v)", got, ok)
	}
}

func TestNavigationPreservesAnswers(t *testing.T) {
	svc := &stubService{questions: twoQuestions()}
	s := loaded(t, svc, nil)

	s.Update(keyPress('1'))
	s.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	if s.current != 1 {
		t.Fatalf("expected question 2, got %d", s.current+1)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	if s.current != 0 {
		t.Fatalf("expected question 1, got %d", s.current+1)
	}
	if s.options.Chosen != 0 {
		t.Fatalf("expected earlier answer restored, got chosen %d", s.options.Chosen)
	}
}

func TestEnterOnLastQuestionFinishes(t *testing.T) {
	svc := &stubService{questions: twoQuestions()}
	s := loaded(t, svc, nil)

	s.Update(keyPress('1'))                       // A, correct
	s.Update(tea.KeyPressMsg{Code: tea.KeyRight}) // question 2
	s.Update(keyPress('2'))                       // D, correct
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	if s.phase != phaseResult {
		t.Fatalf("expected result phase for anonymous user, got %v", s.phase)
	}
	if s.result.Percentage != 100 {
		t.Fatalf("expected 100%%, got %d%%", s.result.Percentage)
	}
}

func TestExpiryAutoSubmits(t *testing.T) {
	svc := &stubService{questions: twoQuestions()}
	s := loaded(t, svc, nil)
	s.Update(keyPress('1'))

	// One-minute budget, so sixty applied ticks expire the session.
	for i := 0; i < 60; i++ {
		s.Update(timerTickMsg{Session: s.session})
	}

	if !s.expired {
		t.Fatal("expected expiry flag after budget consumed")
	}
	if s.phase != phaseResult {
		t.Fatalf("expected result phase after expiry, got %v", s.phase)
	}
	// One of two answered correctly.
	if s.result.Percentage != 50 {
		t.Fatalf("expected 50%%, got %d%%", s.result.Percentage)
	}
}

func TestSubmitCarriesScoreAndDuration(t *testing.T) {
	svc := &stubService{questions: twoQuestions()}
	creds := &auth.Credentials{
		BearerToken: "tok",
		User:        auth.Profile{ID: 7, Name: "Ada"},
	}
	s := loaded(t, svc, creds)

	s.Update(timerTickMsg{Session: s.session})
	s.Update(timerTickMsg{Session: s.session})
	s.Update(keyPress('1'))
	s.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	s.Update(keyPress('1')) // C, wrong
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	if s.phase != phaseSubmitting {
		t.Fatalf("expected submitting phase, got %v", s.phase)
	}
	if cmd == nil {
		t.Fatal("expected a submit command")
	}
	msg := cmd()
	s.Update(msg)

	if len(svc.submitted) != 1 {
		t.Fatalf("expected one submission, got %d", len(svc.submitted))
	}
	sub := svc.submitted[0]
	if sub.UserID != 7 || sub.AssessmentID != 1 {
		t.Errorf("unexpected identifiers: %+v", sub)
	}
	if sub.Score != 50 || sub.TotalQuestions != 2 {
		t.Errorf("unexpected score payload: %+v", sub)
	}
	if sub.TimeTakenSecs != 2 {
		t.Errorf("expected 2 seconds taken, got %d", sub.TimeTakenSecs)
	}
	if s.phase != phaseResult {
		t.Fatalf("expected result phase after ack, got %v", s.phase)
	}
}

func TestQuitConfirmPausesClock(t *testing.T) {
	svc := &stubService{questions: twoQuestions()}
	s := loaded(t, svc, nil)

	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if s.phase != phaseConfirmQuit {
		t.Fatalf("expected quit confirmation, got %v", s.phase)
	}
	if s.clock.Tick() {
		t.Fatal("clock must be stopped while confirming quit")
	}

	s.Update(keyPress('n'))
	if s.phase != phaseActive {
		t.Fatalf("expected return to active phase, got %v", s.phase)
	}
}

func TestResumeRetiresOldTickChain(t *testing.T) {
	svc := &stubService{questions: twoQuestions()}
	s := loaded(t, svc, nil)

	// A tick is in flight when the user pauses and resumes.
	preGen := s.tickGen
	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	s.Update(keyPress('n'))

	_, cmd := s.Update(timerTickMsg{Session: s.session, Gen: preGen})
	if s.clock.Elapsed() != 0 {
		t.Fatal("pre-pause tick must not advance the clock after resume")
	}
	if cmd != nil {
		t.Fatal("pre-pause tick must not reschedule a second chain")
	}

	_, cmd = s.Update(timerTickMsg{Session: s.session, Gen: s.tickGen})
	if s.clock.Elapsed() != time.Second {
		t.Fatalf("current-chain tick must advance the clock, elapsed %v", s.clock.Elapsed())
	}
	if cmd == nil {
		t.Fatal("current-chain tick must schedule the next tick")
	}
}

func TestUnmountInvalidatesSession(t *testing.T) {
	svc := &stubService{questions: twoQuestions()}
	s := loaded(t, svc, nil)
	old := s.session

	s.Unmount()

	if s.session == old {
		t.Fatal("unmount must rotate the session identifier")
	}
	s.Update(timerTickMsg{Session: old})
	if s.clock.Elapsed() != 0 {
		t.Fatal("tick for the old session must be ignored after unmount")
	}
}

func TestEmptyQuestionListIsError(t *testing.T) {
	svc := &stubService{}
	s := New(svc, nil, api.Assessment{ID: 1}, time.Minute)

	s.Update(questionsLoadedMsg{Session: s.session, Questions: nil})

	if s.phase != phaseError {
		t.Fatalf("expected error phase for empty question list, got %v", s.phase)
	}
}
