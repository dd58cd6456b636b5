package home

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/eldrige/skillsassess/internal/api"
	"github.com/eldrige/skillsassess/internal/auth"
	"github.com/eldrige/skillsassess/internal/router"
	"github.com/eldrige/skillsassess/internal/screen"
	"github.com/eldrige/skillsassess/internal/screens/dashboard"
	"github.com/eldrige/skillsassess/internal/screens/hub"
	"github.com/eldrige/skillsassess/internal/ui/components"
	"github.com/eldrige/skillsassess/internal/ui/theme"
)

// HomeScreen is the entry screen with the main menu.
type HomeScreen struct {
	menu     components.Menu
	signedIn bool
	userName string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(svc api.Service, creds *auth.Credentials, budget time.Duration) *HomeScreen {
	var userName string
	signedIn := creds != nil && creds.BearerToken != ""
	if signedIn {
		userName = creds.User.Name
	}

	var dashboardHint string
	if !signedIn {
		dashboardHint = "(sign in required)"
	}

	items := []components.MenuItem{
		{Label: "DASHBOARD", Hint: dashboardHint, Disabled: !signedIn, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: dashboard.New(svc, creds)}
			}
		}},
		{Label: "ASSESSMENTS", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: hub.New(svc, creds, budget)}
			}
		}},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		menu:     components.NewMenu(items),
		signedIn: signedIn,
		userName: userName,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, renderBanner())
	sections = append(sections, renderStatus(h.signedIn, h.userName))
	sections = append(sections, h.menu.View())

	content := strings.Join(sections, "\n\n")

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func renderBanner() string {
	title := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("Skills") +
		lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render("Assess")

	tagline := theme.Hint.Render("Discover your strengths. Close your gaps.")

	return title + "\n" + tagline
}

func renderStatus(signedIn bool, userName string) string {
	if !signedIn {
		return lipgloss.NewStyle().
			Foreground(theme.Warning).
			Render("Not signed in. Assessment history and submissions are unavailable.")
	}
	if userName == "" {
		return lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Render("Signed in.")
	}
	return lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Render("Signed in as " + userName)
}
