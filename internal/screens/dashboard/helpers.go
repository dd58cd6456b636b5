package dashboard

import "github.com/eldrige/skillsassess/internal/skills"

// appendSkills accumulates a catalog page onto the already loaded
// skills, dropping records whose identifier was already seen. Backends
// occasionally repeat a row on page boundaries.
func appendSkills(existing, incoming []skills.Skill) []skills.Skill {
	seen := make(map[int]bool, len(existing))
	for _, s := range existing {
		seen[s.ID] = true
	}
	out := existing
	for _, s := range incoming {
		if seen[s.ID] {
			continue
		}
		seen[s.ID] = true
		out = append(out, s)
	}
	return out
}
