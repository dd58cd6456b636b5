package hub

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/eldrige/skillsassess/internal/api"
	"github.com/eldrige/skillsassess/internal/auth"
	"github.com/eldrige/skillsassess/internal/recommend"
	"github.com/eldrige/skillsassess/internal/router"
	"github.com/eldrige/skillsassess/internal/screen"
	"github.com/eldrige/skillsassess/internal/screens/assessment"
	"github.com/eldrige/skillsassess/internal/ui/components"
	"github.com/eldrige/skillsassess/internal/ui/layout"
	"github.com/eldrige/skillsassess/internal/ui/theme"
)

type tab int

const (
	tabCatalog tab = iota
	tabResults
)

type catalogLoadedMsg struct {
	Assessments []api.Assessment
	Err         error
}

type resultsLoadedMsg struct {
	Entries []recommend.HistoryEntry
	Err     error
}

// HubScreen lists the assessment catalog and the user's past results.
type HubScreen struct {
	svc    api.Service
	creds  *auth.Credentials
	budget time.Duration

	catalog   []api.Assessment
	catLoaded bool
	catErr    string
	results   []recommend.HistoryEntry
	resLoaded bool
	resErr    string

	active    tab
	search    components.SearchInput
	searching bool
	dateRange DateRange
	selected  int
}

var _ screen.Screen = (*HubScreen)(nil)
var _ screen.KeyHintProvider = (*HubScreen)(nil)

// New creates a new HubScreen.
func New(svc api.Service, creds *auth.Credentials, budget time.Duration) *HubScreen {
	return &HubScreen{
		svc:    svc,
		creds:  creds,
		budget: budget,
		search: components.NewSearchInput("Search by title...", 64),
	}
}

func (s *HubScreen) Init() tea.Cmd {
	cmds := []tea.Cmd{s.fetchCatalog()}
	if s.creds != nil && s.creds.BearerToken != "" {
		cmds = append(cmds, s.fetchResults())
	} else {
		s.resLoaded = true
		s.resErr = "Sign in to see your past results."
	}
	return tea.Batch(cmds...)
}

func (s *HubScreen) fetchCatalog() tea.Cmd {
	svc := s.svc
	return func() tea.Msg {
		list, err := svc.Assessments(context.Background())
		return catalogLoadedMsg{Assessments: list, Err: err}
	}
}

func (s *HubScreen) fetchResults() tea.Cmd {
	svc := s.svc
	creds := s.creds
	return func() tea.Msg {
		userID, err := creds.UserID()
		if err != nil {
			return resultsLoadedMsg{Err: err}
		}
		entries, err := svc.History(context.Background(), userID)
		return resultsLoadedMsg{Entries: entries, Err: err}
	}
}

func (s *HubScreen) Title() string {
	return "Assessments"
}

func (s *HubScreen) KeyHints() []layout.KeyHint {
	if s.searching {
		return []layout.KeyHint{
			{Key: "Enter/Esc", Description: "Done"},
			{Key: "Type", Description: "Search"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "Tab", Description: "Switch tab"},
		{Key: "/", Description: "Search"},
	}
	if s.active == tabCatalog {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Start"})
	} else {
		hints = append(hints, layout.KeyHint{Key: "d", Description: "Date range"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *HubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case catalogLoadedMsg:
		s.catLoaded = true
		if msg.Err != nil {
			s.catErr = errText(msg.Err)
		} else {
			s.catalog = msg.Assessments
		}
		return s, nil

	case resultsLoadedMsg:
		s.resLoaded = true
		if msg.Err != nil {
			s.resErr = errText(msg.Err)
		} else {
			s.results = msg.Entries
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s, nil
}

func (s *HubScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.searching {
		switch msg.String() {
		case "enter", "esc":
			s.searching = false
			s.search.Blur()
			return s, nil
		}
		var cmd tea.Cmd
		s.search, cmd = s.search.Update(msg)
		s.selected = 0
		return s, cmd
	}

	switch msg.String() {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }

	case "/":
		s.searching = true
		return s, s.search.Focus()

	case "tab":
		if s.active == tabCatalog {
			s.active = tabResults
		} else {
			s.active = tabCatalog
		}
		s.selected = 0
		return s, nil

	case "d":
		if s.active == tabResults {
			s.dateRange = s.dateRange.Next()
			s.selected = 0
		}
		return s, nil

	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
		return s, nil

	case "down", "j":
		if s.selected < s.visibleLen()-1 {
			s.selected++
		}
		return s, nil

	case "enter":
		if s.active != tabCatalog {
			return s, nil
		}
		visible := FilterAssessments(s.catalog, s.search.Value())
		if s.selected >= len(visible) {
			return s, nil
		}
		chosen := visible[s.selected]
		svc, creds, budget := s.svc, s.creds, s.budget
		return s, func() tea.Msg {
			return router.PushScreenMsg{
				Screen: assessment.New(svc, creds, chosen, budget),
			}
		}
	}

	return s, nil
}

func (s *HubScreen) visibleLen() int {
	if s.active == tabCatalog {
		return len(FilterAssessments(s.catalog, s.search.Value()))
	}
	return len(FilterHistory(s.results, s.search.Value(), s.dateRange, time.Now()))
}

func (s *HubScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(s.renderTabs())
	b.WriteString("\n\n")
	b.WriteString("  " + s.search.View())
	b.WriteString("\n\n")

	if s.active == tabCatalog {
		b.WriteString(s.renderCatalog(width))
	} else {
		b.WriteString(s.renderResults(width))
	}

	return lipgloss.NewStyle().Width(width).Render(b.String())
}

func (s *HubScreen) renderTabs() string {
	render := func(label string, active bool) string {
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		if active {
			style = style.Foreground(theme.Primary).Bold(true).Underline(true)
		}
		return style.Render(label)
	}
	return "  " + render("Catalog", s.active == tabCatalog) + "    " + render("My Results", s.active == tabResults)
}

func (s *HubScreen) renderCatalog(width int) string {
	if s.catErr != "" {
		return errorLine(s.catErr)
	}
	if !s.catLoaded {
		return dimLine("Loading assessments...")
	}

	visible := FilterAssessments(s.catalog, s.search.Value())
	if len(visible) == 0 {
		return dimLine("No assessments match your search.")
	}

	var rows []string
	for i, a := range visible {
		cursor := "   "
		if i == s.selected {
			cursor = lipgloss.NewStyle().Foreground(theme.Primary).Render(" > ")
		}
		title := lipgloss.NewStyle().Foreground(theme.Text).Bold(i == s.selected).Render(a.Title)
		meta := theme.Hint.Render(fmt.Sprintf("  %s · %d questions", a.Category, a.QuestionCount))
		rows = append(rows, cursor+title+meta)
	}
	return strings.Join(rows, "\n")
}

func (s *HubScreen) renderResults(width int) string {
	if s.resErr != "" {
		return errorLine(s.resErr)
	}
	if !s.resLoaded {
		return dimLine("Loading results...")
	}

	rangeLabel := lipgloss.NewStyle().Foreground(theme.TextDim).Render("  Showing: ") +
		lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(s.dateRange.Label())

	visible := FilterHistory(s.results, s.search.Value(), s.dateRange, time.Now())
	if len(visible) == 0 {
		return rangeLabel + "\n\n" + dimLine("No results in this range. Take an assessment!")
	}

	var rows []string
	for i, e := range visible {
		cursor := "   "
		if i == s.selected {
			cursor = lipgloss.NewStyle().Foreground(theme.Primary).Render(" > ")
		}
		score := lipgloss.NewStyle().
			Foreground(theme.ScoreColor(e.Score)).
			Bold(true).
			Render(fmt.Sprintf("%3d%%", e.Score))
		title := lipgloss.NewStyle().Foreground(theme.Text).Bold(i == s.selected).Render(e.Title)

		when := "—"
		if !e.CompletedAt.IsZero() {
			when = e.CompletedAt.Format("Jan 02, 2006")
		}
		meta := theme.Hint.Render("  " + when)

		verdict := lipgloss.NewStyle().Foreground(theme.Error).Render("  failed")
		if e.Passed() {
			verdict = lipgloss.NewStyle().Foreground(theme.Success).Render("  passed")
		}

		rows = append(rows, cursor+score+"  "+title+meta+verdict)
	}
	return rangeLabel + "\n\n" + strings.Join(rows, "\n")
}

func dimLine(text string) string {
	return lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("   " + text)
}

func errorLine(text string) string {
	return lipgloss.NewStyle().Foreground(theme.Error).Render("   " + text)
}

func errText(err error) string {
	switch {
	case errors.Is(err, auth.ErrNotSignedIn):
		return "Sign in to see your past results."
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
