package dashboard

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
	"github.com/eldrige/skillsassess/internal/skills"
	"github.com/eldrige/skillsassess/internal/ui/components"
	"github.com/eldrige/skillsassess/internal/ui/layout"
	"github.com/eldrige/skillsassess/internal/ui/theme"
)

// searchDebounce is how long typing must pause before the catalog
// search fires.
const searchDebounce = 500 * time.Millisecond

type focusArea int

const (
	focusSearch focusArea = iota
	focusRecommended
	focusCatalog
)

type profileLoadedMsg struct {
	Profile *auth.Profile
	Err     error
}

type historyLoadedMsg struct {
	Priorities []recommend.SkillPriority
	Completed  int
	Err        error
}

type recommendedLoadedMsg struct {
	Page    *api.SkillPage
	PageNum int
	Err     error
}

type catalogLoadedMsg struct {
	Page    *api.SkillPage
	PageNum int
	Gen     int
	Append  bool
	Err     error
}

type searchTickMsg struct {
	Gen int
}

// DashboardScreen shows personalized recommendations beside the full
// skill catalog.
type DashboardScreen struct {
	svc   api.Service
	creds *auth.Credentials

	profile    *auth.Profile
	priorities []recommend.SkillPriority
	completed  int

	recommended     []recommend.RankedSkill
	recommendedPage int
	recommendedMore bool
	recLoading      bool
	recLoaded       bool

	catalog     []skills.Skill
	catalogPage int
	catalogMore bool
	catLoading  bool
	catLoaded   bool
	catErr      string

	search    components.SearchInput
	searchGen int
	category  int // index into skills.Categories()

	focus    focusArea
	selected int
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)

// New creates a new DashboardScreen. creds may be nil; the catalog
// still loads, only the personalized sections need a signed-in user.
func New(svc api.Service, creds *auth.Credentials) *DashboardScreen {
	return &DashboardScreen{
		svc:    svc,
		creds:  creds,
		search: components.NewSearchInput("Search skills...", 64),
		focus:  focusCatalog,
	}
}

func (s *DashboardScreen) Init() tea.Cmd {
	cmds := []tea.Cmd{s.fetchCatalog(1, false, s.searchGen)}
	if s.signedIn() {
		cmds = append(cmds, s.fetchProfile(), s.fetchHistory())
	} else {
		s.recLoaded = true
	}
	return tea.Batch(cmds...)
}

func (s *DashboardScreen) Title() string {
	return "Dashboard"
}

func (s *DashboardScreen) KeyHints() []layout.KeyHint {
	if s.focus == focusSearch {
		return []layout.KeyHint{
			{Key: "Enter/Esc", Description: "Done"},
			{Key: "Type", Description: "Search"},
		}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Section"},
		{Key: "/", Description: "Search"},
		{Key: "c", Description: "Category"},
		{Key: "m", Description: "See more"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *DashboardScreen) signedIn() bool {
	return s.creds != nil && s.creds.BearerToken != ""
}

func (s *DashboardScreen) fetchProfile() tea.Cmd {
	svc := s.svc
	return func() tea.Msg {
		p, err := svc.Profile(context.Background())
		return profileLoadedMsg{Profile: p, Err: err}
	}
}

func (s *DashboardScreen) fetchHistory() tea.Cmd {
	svc := s.svc
	creds := s.creds
	return func() tea.Msg {
		userID, err := creds.UserID()
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		entries, err := svc.History(context.Background(), userID)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		return historyLoadedMsg{
			Priorities: recommend.RankSkillsForImprovement(entries),
			Completed:  len(entries),
		}
	}
}

func (s *DashboardScreen) fetchRecommended(page int) tea.Cmd {
	svc := s.svc
	q := api.SkillQuery{
		SkillIDs: recommend.SkillIDs(s.priorities),
		Page:     page,
		Limit:    api.RecommendedPageSize,
	}
	return func() tea.Msg {
		res, err := svc.RecommendedSkills(context.Background(), q)
		return recommendedLoadedMsg{Page: res, PageNum: page, Err: err}
	}
}

func (s *DashboardScreen) fetchCatalog(page int, appendTo bool, gen int) tea.Cmd {
	svc := s.svc
	q := api.SkillQuery{
		Page:     page,
		Limit:    api.CatalogPageSize,
		Category: skills.Categories()[s.category],
		Search:   s.search.Value(),
	}
	return func() tea.Msg {
		res, err := svc.AllSkills(context.Background(), q)
		return catalogLoadedMsg{Page: res, PageNum: page, Gen: gen, Append: appendTo, Err: err}
	}
}

// restartCatalog throws away pagination and refetches page 1 with the
// current search and category. Bumping the generation makes any
// response still in flight stale.
func (s *DashboardScreen) restartCatalog() tea.Cmd {
	s.searchGen++
	s.catLoading = true
	s.catalogPage = 0
	return s.fetchCatalog(1, false, s.searchGen)
}

func (s *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case profileLoadedMsg:
		if msg.Err == nil {
			s.profile = msg.Profile
		}
		return s, nil

	case historyLoadedMsg:
		if msg.Err != nil {
			// Degrade to the empty recommendation state; the invite to
			// take an assessment beats an error banner here.
			s.recLoaded = true
			return s, nil
		}
		s.priorities = msg.Priorities
		s.completed = msg.Completed
		if len(s.priorities) == 0 {
			s.recLoaded = true
			return s, nil
		}
		s.recLoading = true
		return s, s.fetchRecommended(1)

	case recommendedLoadedMsg:
		s.recLoading = false
		s.recLoaded = true
		if msg.Err != nil {
			return s, nil
		}
		s.recommendedPage = msg.PageNum
		s.recommendedMore = msg.Page.HasMore
		ranked := recommend.SelectRecommendedSkills(s.priorities, msg.Page.Skills)
		if msg.PageNum > 1 {
			s.recommended = recommend.Merge(s.recommended, ranked)
		} else {
			s.recommended = ranked
		}
		s.clampSelection()
		return s, nil

	case catalogLoadedMsg:
		if msg.Gen != s.searchGen {
			// A newer search or filter superseded this response.
			return s, nil
		}
		s.catLoading = false
		s.catLoaded = true
		if msg.Err != nil {
			s.catErr = errText(msg.Err)
			return s, nil
		}
		s.catErr = ""
		s.catalogPage = msg.PageNum
		s.catalogMore = msg.Page.HasMore
		if msg.Append {
			s.catalog = appendSkills(s.catalog, msg.Page.Skills)
		} else {
			s.catalog = msg.Page.Skills
		}
		s.clampSelection()
		return s, nil

	case searchTickMsg:
		if msg.Gen != s.searchGen {
			return s, nil
		}
		s.catLoading = true
		s.catalogPage = 0
		return s, s.fetchCatalog(1, false, s.searchGen)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s, nil
}

func (s *DashboardScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.focus == focusSearch {
		switch msg.String() {
		case "enter", "esc":
			s.search.Blur()
			s.focus = focusCatalog
			return s, nil
		}
		before := s.search.Value()
		var cmd tea.Cmd
		s.search, cmd = s.search.Update(msg)
		if s.search.Value() != before {
			s.searchGen++
			gen := s.searchGen
			return s, tea.Batch(cmd, tea.Tick(searchDebounce, func(time.Time) tea.Msg {
				return searchTickMsg{Gen: gen}
			}))
		}
		return s, cmd
	}

	switch msg.String() {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }

	case "/":
		s.focus = focusSearch
		return s, s.search.Focus()

	case "tab":
		if s.focus == focusRecommended {
			s.focus = focusCatalog
		} else {
			s.focus = focusRecommended
		}
		s.selected = 0
		return s, nil

	case "c":
		s.category = (s.category + 1) % len(skills.Categories())
		return s, s.restartCatalog()

	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
		return s, nil

	case "down", "j":
		if s.selected < s.focusedLen()-1 {
			s.selected++
		}
		return s, nil

	case "m":
		switch {
		case s.focus == focusRecommended && s.recommendedMore && !s.recLoading:
			s.recLoading = true
			return s, s.fetchRecommended(s.recommendedPage + 1)
		case s.focus == focusCatalog && s.catalogMore && !s.catLoading:
			s.catLoading = true
			return s, s.fetchCatalog(s.catalogPage+1, true, s.searchGen)
		}
		return s, nil
	}

	return s, nil
}

func (s *DashboardScreen) focusedLen() int {
	if s.focus == focusRecommended {
		return len(s.recommended)
	}
	return len(s.catalog)
}

func (s *DashboardScreen) clampSelection() {
	if n := s.focusedLen(); s.selected >= n {
		s.selected = n - 1
	}
	if s.selected < 0 {
		s.selected = 0
	}
}

func (s *DashboardScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(s.renderGreeting(width))
	b.WriteString("\n\n")
	b.WriteString(s.renderFilters(width))
	b.WriteString("\n\n")
	b.WriteString(s.renderRecommended(width))
	b.WriteString("\n\n")
	b.WriteString(s.renderCatalog(width))

	return lipgloss.NewStyle().Width(width).Render(b.String())
}

func (s *DashboardScreen) renderGreeting(width int) string {
	name := "there"
	if s.profile != nil && s.profile.Name != "" {
		name = s.profile.Name
	} else if s.creds != nil && s.creds.User.Name != "" {
		name = s.creds.User.Name
	}
	greeting := theme.Title.Render(fmt.Sprintf("  Welcome back, %s!", name))
	subText := "  Track your progress and discover skills to improve."
	if s.completed > 0 {
		plural := "s"
		if s.completed == 1 {
			plural = ""
		}
		subText = fmt.Sprintf("  %d assessment%s completed. Keep it up!", s.completed, plural)
	}
	sub := theme.Hint.Render(subText)
	return greeting + "\n" + sub
}

func (s *DashboardScreen) renderFilters(width int) string {
	cat := skills.Categories()[s.category]
	catLabel := lipgloss.NewStyle().Foreground(theme.TextDim).Render("  Category: ") +
		lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(cat)
	return "  " + s.search.View() + "\n" + catLabel
}

func (s *DashboardScreen) renderRecommended(width int) string {
	title := sectionTitle("Recommended for You", s.focus == focusRecommended)

	var body string
	switch {
	case !s.signedIn():
		body = dimLine("Sign in to get personalized recommendations.")
	case s.recLoading && len(s.recommended) == 0:
		body = dimLine("Loading recommendations...")
	case s.recLoaded && len(s.recommended) == 0:
		body = dimLine("Complete some assessments to get personalized recommendations!")
	default:
		var rows []string
		for i, r := range s.recommended {
			rows = append(rows, s.renderRankedSkill(r, s.focus == focusRecommended && i == s.selected, width))
		}
		if s.recommendedMore {
			rows = append(rows, dimLine("m: see more"))
		}
		body = strings.Join(rows, "\n")
	}

	return title + "\n" + body
}

func (s *DashboardScreen) renderCatalog(width int) string {
	title := sectionTitle("All Skills", s.focus == focusCatalog)

	var body string
	switch {
	case s.catErr != "":
		body = errorLine(s.catErr)
	case s.catLoading && len(s.catalog) == 0:
		body = dimLine("Loading skills...")
	case s.catLoaded && len(s.catalog) == 0:
		body = dimLine("No skills match your search.")
	default:
		var rows []string
		for i, sk := range s.catalog {
			rows = append(rows, s.renderSkill(sk, s.focus == focusCatalog && i == s.selected, width))
		}
		if s.catalogMore {
			rows = append(rows, dimLine("m: see more"))
		}
		body = strings.Join(rows, "\n")
	}

	return title + "\n" + body
}

func (s *DashboardScreen) renderRankedSkill(r recommend.RankedSkill, selected bool, width int) string {
	cursor := "   "
	if selected {
		cursor = lipgloss.NewStyle().Foreground(theme.Primary).Render(" > ")
	}

	name := lipgloss.NewStyle().Foreground(theme.Text).Bold(selected).Render(r.Name)
	meta := theme.Hint.Render(fmt.Sprintf("  %s · %s · %d attempts", r.Category, r.Difficulty, r.Attempts))

	line := cursor + name + meta
	if r.Proficiency != nil {
		bar := components.NewScoreBar("", *r.Proficiency, true, 24)
		line += "\n     " + bar.View()
	}
	return line
}

func (s *DashboardScreen) renderSkill(sk skills.Skill, selected bool, width int) string {
	cursor := "   "
	if selected {
		cursor = lipgloss.NewStyle().Foreground(theme.Primary).Render(" > ")
	}

	name := lipgloss.NewStyle().Foreground(theme.Text).Bold(selected).Render(sk.Name)
	meta := theme.Hint.Render(fmt.Sprintf("  %s · %s · %d assessments", sk.Category, sk.Difficulty, sk.AssessmentCount))

	return cursor + name + meta
}

func sectionTitle(text string, focused bool) string {
	style := lipgloss.NewStyle().Foreground(theme.TextDim).Bold(true)
	if focused {
		style = style.Foreground(theme.Primary)
	}
	return style.Render("  " + text)
}

func dimLine(text string) string {
	return lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("   " + text)
}

func errorLine(text string) string {
	return lipgloss.NewStyle().Foreground(theme.Error).Render("   " + text)
}

// errText maps client errors to the short messages shown inline.
func errText(err error) string {
	switch {
	case errors.Is(err, auth.ErrNotSignedIn):
		return "Sign in to see this section."
	case isUnauthorized(err):
		return "Session expired. Sign in again."
	case isUnavailable(err):
		return "Backend unreachable. Check your connection."
	default:
		return err.Error()
	}
}

func isUnauthorized(err error) bool {
	var e *api.ErrUnauthorized
	return errors.As(err, &e)
}

func isUnavailable(err error) bool {
	var e *api.ErrUnavailable
	return errors.As(err, &e)
}
