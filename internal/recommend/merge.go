package recommend

import (
	"sort"

	"github.com/eldrige/skillsassess/internal/skills"
)

// RankedSkill pairs a catalog skill with the locally computed priority
// metadata that placed it in the recommendation list.
type RankedSkill struct {
	skills.Skill
	Priority     float64
	AverageScore float64
	Attempts     int
}

// SelectRecommendedSkills joins a fetched page of skill records with the
// local priority ranking. Skills the ranking doesn't know keep priority
// zero and sort after ranked ones; duplicate identifiers within the page
// collapse to the higher-priority entry. Order is deterministic: priority
// descending, page order for ties.
func SelectRecommendedSkills(priorities []SkillPriority, page []skills.Skill) []RankedSkill {
	byID := make(map[int]SkillPriority, len(priorities))
	for _, p := range priorities {
		byID[p.SkillID] = p
	}

	var out []RankedSkill
	for _, s := range page {
		rs := RankedSkill{Skill: s}
		if p, ok := byID[s.ID]; ok {
			rs.Priority = p.Priority
			rs.AverageScore = p.AverageScore
			rs.Attempts = p.Attempts
			if s.Proficiency == nil {
				avg := int(p.AverageScore)
				rs.Skill.Proficiency = &avg
			}
		}
		out = append(out, rs)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority > out[j].Priority
	})

	return Merge(nil, out)
}

// Merge combines two recommended-skill lists (e.g. accumulated pages),
// deduplicating by skill identifier. When both lists carry the same
// skill, the entry with the higher priority wins; relative order of the
// surviving entries is preserved.
func Merge(existing, incoming []RankedSkill) []RankedSkill {
	best := make(map[int]RankedSkill, len(existing)+len(incoming))
	var order []int

	add := func(rs RankedSkill) {
		cur, ok := best[rs.ID]
		if !ok {
			best[rs.ID] = rs
			order = append(order, rs.ID)
			return
		}
		if rs.Priority > cur.Priority {
			best[rs.ID] = rs
		}
	}

	for _, rs := range existing {
		add(rs)
	}
	for _, rs := range incoming {
		add(rs)
	}

	out := make([]RankedSkill, 0, len(order))
	for _, id := range order {
		out = append(out, best[id])
	}
	return out
}
