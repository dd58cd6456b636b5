package assessment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"

	"github.com/eldrige/skillsassess/internal/api"
	"github.com/eldrige/skillsassess/internal/auth"
	"github.com/eldrige/skillsassess/internal/router"
	"github.com/eldrige/skillsassess/internal/scoring"
	"github.com/eldrige/skillsassess/internal/screen"
	"github.com/eldrige/skillsassess/internal/ui/components"
	"github.com/eldrige/skillsassess/internal/ui/layout"
	"github.com/eldrige/skillsassess/internal/ui/theme"
)

type phase int

const (
	phaseLoading phase = iota
	phaseActive
	phaseConfirmQuit
	phaseSubmitting
	phaseResult
	phaseError
)

// Every async message carries the session identifier it was issued
// under. A new attempt (or an unmount) changes the identifier, so
// responses from an abandoned session fall on the floor.
type questionsLoadedMsg struct {
	Session   string
	Questions []scoring.Question
	Err       error
}

type submittedMsg struct {
	Session string
	Ack     *api.SubmissionAck
	Err     error
}

type timerTickMsg struct {
	Session string
	Gen     int
}

// AssessmentScreen runs one timed assessment attempt: fetch the
// questions, step through them, score locally, submit the result.
type AssessmentScreen struct {
	svc        api.Service
	creds      *auth.Credentials
	assessment api.Assessment

	session   string
	phase     phase
	questions []scoring.Question
	selected  scoring.Selections
	current   int
	options   components.OptionList

	clock   *scoring.Clock
	tickGen int
	expired bool

	result    scoring.ScoreResult
	submitErr string
	errMsg    string
}

var _ screen.Screen = (*AssessmentScreen)(nil)
var _ screen.KeyHintProvider = (*AssessmentScreen)(nil)
var _ screen.Unmounter = (*AssessmentScreen)(nil)

// New creates a screen for one attempt of the given assessment. budget
// zero means the default ten minutes.
func New(svc api.Service, creds *auth.Credentials, assessment api.Assessment, budget time.Duration) *AssessmentScreen {
	return &AssessmentScreen{
		svc:        svc,
		creds:      creds,
		assessment: assessment,
		session:    uuid.New().String(),
		phase:      phaseLoading,
		selected:   make(scoring.Selections),
		clock:      scoring.NewClock(budget),
	}
}

func (s *AssessmentScreen) Init() tea.Cmd {
	svc := s.svc
	session := s.session
	id := s.assessment.ID
	return func() tea.Msg {
		qs, err := svc.Questions(context.Background(), id)
		return questionsLoadedMsg{Session: session, Questions: qs, Err: err}
	}
}

func (s *AssessmentScreen) Title() string {
	return s.assessment.Title
}

func (s *AssessmentScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseActive:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Option"},
			{Key: "←→", Description: "Question"},
			{Key: "Enter", Description: "Confirm"},
			{Key: "Esc", Description: "Quit"},
		}
	case phaseConfirmQuit:
		return []layout.KeyHint{
			{Key: "y", Description: "Quit attempt"},
			{Key: "n", Description: "Keep going"},
		}
	case phaseResult, phaseError:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Back"},
			{Key: "h", Description: "Home"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
		}
	}
}

// Unmount invalidates the session so a late fetch, submit, or tick
// cannot touch this screen, and freezes the clock.
func (s *AssessmentScreen) Unmount() {
	s.session = uuid.New().String()
	s.pauseClock()
}

func (s *AssessmentScreen) tickCmd() tea.Cmd {
	session := s.session
	gen := s.tickGen
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return timerTickMsg{Session: session, Gen: gen}
	})
}

// pauseClock freezes the clock and retires the running tick chain. A
// tick already in flight carries the old generation and is dropped
// instead of rescheduling, so resuming never leaves two chains running.
func (s *AssessmentScreen) pauseClock() {
	s.clock.Stop()
	s.tickGen++
}

func (s *AssessmentScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionsLoadedMsg:
		if msg.Session != s.session {
			return s, nil
		}
		if msg.Err != nil {
			s.phase = phaseError
			s.errMsg = errText(msg.Err)
			return s, nil
		}
		if len(msg.Questions) == 0 {
			s.phase = phaseError
			s.errMsg = "This assessment has no questions yet."
			return s, nil
		}
		s.questions = msg.Questions
		s.phase = phaseActive
		s.current = 0
		s.options = components.NewOptionList(s.questions[0].Options)
		s.clock.Start()
		return s, s.tickCmd()

	case timerTickMsg:
		return s.handleTimerTick(msg)

	case submittedMsg:
		if msg.Session != s.session {
			return s, nil
		}
		s.phase = phaseResult
		if msg.Err != nil {
			s.submitErr = errText(msg.Err)
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s, nil
}

func (s *AssessmentScreen) handleTimerTick(msg timerTickMsg) (screen.Screen, tea.Cmd) {
	if msg.Session != s.session || msg.Gen != s.tickGen {
		return s, nil
	}
	if !s.clock.Tick() {
		return s, nil
	}
	if s.clock.Expired() {
		// Time is up. Score whatever was answered so far.
		s.expired = true
		return s, s.finish()
	}
	return s, s.tickCmd()
}

func (s *AssessmentScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch s.phase {
	case phaseActive:
		return s.handleActiveKey(msg)

	case phaseConfirmQuit:
		switch msg.String() {
		case "y", "Y":
			s.Unmount()
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.phase = phaseActive
			s.clock.Start()
			return s, s.tickCmd()
		}

	case phaseResult, phaseError:
		switch msg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "h":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		}

	case phaseLoading:
		if msg.String() == "esc" {
			s.Unmount()
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}

	return s, nil
}

func (s *AssessmentScreen) handleActiveKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.phase = phaseConfirmQuit
		s.pauseClock()
		return s, nil

	case "up", "k":
		s.options.MoveUp()
		return s, nil

	case "down", "j":
		s.options.MoveDown()
		return s, nil

	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		idx := int(msg.String()[0] - '1')
		if idx < len(s.questions[s.current].Options) {
			s.options.Choose(idx)
			s.selected[s.questions[s.current].ID] = idx
		}
		return s, nil

	case "left", "p":
		return s, s.gotoQuestion(s.current - 1)

	case "right", "n":
		return s, s.gotoQuestion(s.current + 1)

	case "enter":
		s.options.Choose(s.options.Cursor)
		s.selected[s.questions[s.current].ID] = s.options.Cursor
		if s.current == len(s.questions)-1 {
			return s, s.finish()
		}
		return s, s.gotoQuestion(s.current + 1)
	}

	return s, nil
}

func (s *AssessmentScreen) gotoQuestion(idx int) tea.Cmd {
	if idx < 0 || idx >= len(s.questions) {
		return nil
	}
	s.current = idx
	s.options = components.NewOptionList(s.questions[idx].Options)
	if choice, ok := s.selected[s.questions[idx].ID]; ok {
		s.options.Choose(choice)
	}
	return nil
}

// finish stops the clock, scores the attempt locally, and submits when
// signed in. The result screen shows regardless of submission outcome.
func (s *AssessmentScreen) finish() tea.Cmd {
	s.pauseClock()
	s.result = scoring.ComputeScore(s.questions, s.selected)

	if s.creds == nil || s.creds.BearerToken == "" {
		s.phase = phaseResult
		s.submitErr = "Result not saved: you are not signed in."
		return nil
	}

	s.phase = phaseSubmitting

	svc := s.svc
	creds := s.creds
	session := s.session
	sub := api.Submission{
		AssessmentID:   s.assessment.ID,
		Score:          s.result.Percentage,
		TotalQuestions: s.result.TotalQuestions,
		TimeTakenSecs:  int(s.clock.Elapsed().Seconds()),
	}
	return func() tea.Msg {
		userID, err := creds.UserID()
		if err != nil {
			return submittedMsg{Session: session, Err: err}
		}
		sub.UserID = userID
		ack, err := svc.Submit(context.Background(), sub)
		return submittedMsg{Session: session, Ack: ack, Err: err}
	}
}

func (s *AssessmentScreen) View(width, height int) string {
	switch s.phase {
	case phaseLoading:
		return centered(width, height, dimText("Loading questions..."))

	case phaseError:
		return centered(width, height,
			lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg)+
				"\n\n"+dimText("Press Enter to go back."))

	case phaseConfirmQuit:
		return centered(width, height,
			lipgloss.NewStyle().Foreground(theme.Warning).Bold(true).Render("Quit this attempt?")+
				"\n\n"+dimText("Your answers will be discarded. (y/n)"))

	case phaseSubmitting:
		return centered(width, height, dimText("Submitting your score..."))

	case phaseResult:
		return centered(width, height, s.renderResult())
	}

	return s.renderQuestion(width, height)
}

func (s *AssessmentScreen) renderQuestion(width, height int) string {
	q := s.questions[s.current]

	progress := theme.Hint.Render(fmt.Sprintf("Question %d of %d", s.current+1, len(s.questions)))

	remaining := s.clock.Remaining()
	timerStyle := lipgloss.NewStyle().Foreground(theme.Secondary)
	if remaining < time.Minute {
		timerStyle = timerStyle.Foreground(theme.Error).Bold(true)
	}
	timer := timerStyle.Render(fmt.Sprintf("⏱ %02d:%02d", int(remaining.Minutes()), int(remaining.Seconds())%60))

	header := progress + "    " + timer

	question := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Width(width - 8).
		Render(q.Text)

	answered := theme.Hint.Render(fmt.Sprintf("%d of %d answered", len(s.selected), len(s.questions)))

	body := strings.Join([]string{header, "", question, "", s.options.View(width), "", answered}, "\n")

	return centered(width, height, body)
}

func (s *AssessmentScreen) renderResult() string {
	var b strings.Builder

	if s.expired {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Warning).Render("Time's up!"))
		b.WriteString("\n\n")
	}

	scoreStyle := lipgloss.NewStyle().
		Foreground(theme.ScoreColor(s.result.Percentage)).
		Bold(true)
	b.WriteString(scoreStyle.Render(fmt.Sprintf("%d%%", s.result.Percentage)))
	b.WriteString("\n\n")

	if s.result.Passed() {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Render("Passed! Great work."))
	} else {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Warning).Render("Not passed yet. Keep practicing."))
	}
	b.WriteString("\n")
	b.WriteString(dimText(fmt.Sprintf("%d questions · %s taken",
		s.result.TotalQuestions, s.clock.Elapsed().Round(time.Second))))

	if s.submitErr != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Warning).Render(s.submitErr))
	}

	b.WriteString("\n\n")
	b.WriteString(dimText("Press Enter to go back."))

	return b.String()
}

func centered(width, height int, content string) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

func dimText(text string) string {
	return lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(text)
}

func errText(err error) string {
	switch {
	case errors.Is(err, auth.ErrNotSignedIn):
		return "Sign in to submit results."
	default:
		var unauthorized *api.ErrUnauthorized
		var unavailable *api.ErrUnavailable
		switch {
		case errors.As(err, &unauthorized):
			return "Session expired. Sign in again."
		case errors.As(err, &unavailable):
			return "Backend unreachable. Check your connection."
		}
		return err.Error()
	}
}
