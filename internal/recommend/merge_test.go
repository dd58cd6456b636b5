package recommend

import (
	"testing"

	"github.com/eldrige/skillsassess/internal/skills"
)

func skill(id int, name string) skills.Skill {
	return skills.Skill{ID: id, Name: name, Category: "Technical"}
}

func TestSelectRecommendedSkills_OrdersByPriority(t *testing.T) {
	priorities := []SkillPriority{
		{SkillID: 1, AverageScore: 60, Attempts: 1, Priority: 0.2},
		{SkillID: 2, AverageScore: 20, Attempts: 2, Priority: 0.7},
	}
	page := []skills.Skill{skill(1, "SQL"), skill(2, "Go"), skill(3, "Public Speaking")}

	got := SelectRecommendedSkills(priorities, page)
	if len(got) != 3 {
		t.Fatalf("got %d skills, want 3", len(got))
	}
	if got[0].ID != 2 || got[1].ID != 1 {
		t.Errorf("order = %d, %d; want 2, 1", got[0].ID, got[1].ID)
	}
	// Unranked skill trails with zero priority.
	if got[2].ID != 3 || got[2].Priority != 0 {
		t.Errorf("unranked skill = %+v, want id 3 with zero priority", got[2])
	}
}

func TestSelectRecommendedSkills_AnnotatesProficiency(t *testing.T) {
	priorities := []SkillPriority{{SkillID: 5, AverageScore: 45, Attempts: 2, Priority: 0.5}}

	got := SelectRecommendedSkills(priorities, []skills.Skill{skill(5, "Kubernetes")})
	if got[0].Proficiency == nil || *got[0].Proficiency != 45 {
		t.Fatalf("Proficiency = %v, want 45 from average score", got[0].Proficiency)
	}

	// A server-provided proficiency is not overwritten.
	p := 80
	s := skill(5, "Kubernetes")
	s.Proficiency = &p
	got = SelectRecommendedSkills(priorities, []skills.Skill{s})
	if *got[0].Proficiency != 80 {
		t.Errorf("Proficiency = %d, want server value 80", *got[0].Proficiency)
	}
}

func TestMerge_HigherPriorityWins(t *testing.T) {
	a := []RankedSkill{{Skill: skill(1, "SQL"), Priority: 0.3}}
	b := []RankedSkill{
		{Skill: skill(1, "SQL"), Priority: 0.6},
		{Skill: skill(2, "Go"), Priority: 0.1},
	}

	got := Merge(a, b)
	if len(got) != 2 {
		t.Fatalf("got %d skills, want 2", len(got))
	}
	if got[0].ID != 1 || got[0].Priority != 0.6 {
		t.Errorf("got %+v, want skill 1 at priority 0.6", got[0])
	}
}

func TestMerge_KeepsExistingWhenHigher(t *testing.T) {
	a := []RankedSkill{{Skill: skill(1, "SQL"), Priority: 0.9}}
	b := []RankedSkill{{Skill: skill(1, "SQL"), Priority: 0.2}}

	got := Merge(a, b)
	if len(got) != 1 || got[0].Priority != 0.9 {
		t.Errorf("got %+v, want single skill at 0.9", got)
	}
}

func TestMerge_PreservesFirstSeenOrder(t *testing.T) {
	a := []RankedSkill{
		{Skill: skill(3, "A"), Priority: 0.1},
		{Skill: skill(4, "B"), Priority: 0.1},
	}
	b := []RankedSkill{{Skill: skill(5, "C"), Priority: 0.8}}

	got := Merge(a, b)
	want := []int{3, 4, 5}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}
