package dashboard

import (
	"errors"
	"strings"
	"testing"

	"github.com/eldrige/skillsassess/internal/api"
	"github.com/eldrige/skillsassess/internal/auth"
	"github.com/eldrige/skillsassess/internal/recommend"
)

const emptyRecommendations = "Complete some assessments to get personalized recommendations!"

func signedInScreen() *DashboardScreen {
	return New(nil, &auth.Credentials{
		BearerToken: "tok",
		User:        auth.Profile{ID: 7, Name: "Ada"},
	})
}

func TestRecommended_HistoryFetchFailureDegradesToEmptyState(t *testing.T) {
	s := signedInScreen()

	s.Update(historyLoadedMsg{Err: &api.ErrUnavailable{Err: errors.New("dial tcp: refused")}})

	got := s.renderRecommended(80)
	if !strings.Contains(got, emptyRecommendations) {
		t.Fatalf("expected the empty-state invite, got %q", got)
	}
	if strings.Contains(got, "unreachable") {
		t.Fatalf("recommended section must not show an error banner, got %q", got)
	}
}

func TestRecommended_SkillFetchFailureDegradesToEmptyState(t *testing.T) {
	s := signedInScreen()

	s.Update(historyLoadedMsg{
		Priorities: []recommend.SkillPriority{{SkillID: 2, AverageScore: 50, Attempts: 1, Priority: 0.3}},
	})
	s.Update(recommendedLoadedMsg{PageNum: 1, Err: &api.ErrUnavailable{Err: errors.New("timeout")}})

	got := s.renderRecommended(80)
	if !strings.Contains(got, emptyRecommendations) {
		t.Fatalf("expected the empty-state invite, got %q", got)
	}
}
