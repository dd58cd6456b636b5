package recommend

import (
	"math"
	"testing"
)

func entry(skillID, score int) HistoryEntry {
	return HistoryEntry{SkillID: skillID, Score: score}
}

func TestRank_ExcludesPassingAverages(t *testing.T) {
	history := []HistoryEntry{
		entry(1, 50),
		entry(1, 50),
		entry(2, 90),
	}

	ranked := RankSkillsForImprovement(history)
	if len(ranked) != 1 {
		t.Fatalf("ranked %d skills, want 1", len(ranked))
	}

	got := ranked[0]
	if got.SkillID != 1 {
		t.Errorf("SkillID = %d, want 1", got.SkillID)
	}
	if got.AverageScore != 50 {
		t.Errorf("AverageScore = %v, want 50", got.AverageScore)
	}
	if got.Attempts != 2 {
		t.Errorf("Attempts = %d, want 2", got.Attempts)
	}
}

func TestRank_AverageAtThresholdExcluded(t *testing.T) {
	// 60 and 80 average to exactly 70, which is not a candidate.
	history := []HistoryEntry{entry(3, 60), entry(3, 80)}
	if ranked := RankSkillsForImprovement(history); len(ranked) != 0 {
		t.Errorf("ranked %d skills, want 0 for average exactly at threshold", len(ranked))
	}
}

func TestRank_SkipsEntriesWithoutSkill(t *testing.T) {
	history := []HistoryEntry{
		{Score: 10}, // legacy record, no skill
		entry(4, 40),
	}

	ranked := RankSkillsForImprovement(history)
	if len(ranked) != 1 || ranked[0].SkillID != 4 {
		t.Fatalf("ranked = %+v, want only skill 4", ranked)
	}
}

func TestRank_WorkedExample(t *testing.T) {
	// One attempt at 40: 0.7*(30/70) + 0.3*(1/3) = 0.4.
	ranked := RankSkillsForImprovement([]HistoryEntry{entry(7, 40)})
	if len(ranked) != 1 {
		t.Fatalf("ranked %d skills, want 1", len(ranked))
	}
	if diff := math.Abs(ranked[0].Priority - 0.4); diff > 1e-9 {
		t.Errorf("Priority = %v, want 0.4", ranked[0].Priority)
	}
}

func TestRank_PriorityBounds(t *testing.T) {
	history := []HistoryEntry{
		entry(1, 0), entry(1, 0), entry(1, 0), entry(1, 0),
		entry(2, 69),
	}
	for _, p := range RankSkillsForImprovement(history) {
		if p.Priority < 0 || p.Priority > 1 {
			t.Errorf("skill %d priority %v outside [0, 1]", p.SkillID, p.Priority)
		}
	}
}

func TestPriority_MonotonicInScore(t *testing.T) {
	prev := math.Inf(1)
	for avg := 0.0; avg < 70; avg += 5 {
		p := priority(avg, 2)
		if p > prev {
			t.Fatalf("priority rose from %v to %v as average climbed to %v", prev, p, avg)
		}
		prev = p
	}
}

func TestPriority_MonotonicInAttempts(t *testing.T) {
	prev := -1.0
	for attempts := 1; attempts <= 6; attempts++ {
		p := priority(35, attempts)
		if p < prev {
			t.Fatalf("priority fell from %v to %v at %d attempts", prev, p, attempts)
		}
		prev = p
	}

	// Capped at three attempts.
	if priority(35, 3) != priority(35, 30) {
		t.Error("attempt term should cap at three attempts")
	}
}

func TestRank_OrderAndTieBreak(t *testing.T) {
	history := []HistoryEntry{
		entry(10, 60), // weaker priority
		entry(11, 20), // strongest
		entry(12, 60), // ties with 10, appeared later
	}

	ranked := RankSkillsForImprovement(history)
	if len(ranked) != 3 {
		t.Fatalf("ranked %d skills, want 3", len(ranked))
	}
	if ranked[0].SkillID != 11 {
		t.Errorf("first = %d, want 11", ranked[0].SkillID)
	}
	// Equal priorities keep first-seen order.
	if ranked[1].SkillID != 10 || ranked[2].SkillID != 12 {
		t.Errorf("tie order = %d, %d; want 10, 12", ranked[1].SkillID, ranked[2].SkillID)
	}
}

func TestRank_DeterministicAcrossRuns(t *testing.T) {
	history := []HistoryEntry{
		entry(1, 30), entry(2, 30), entry(3, 30), entry(4, 30), entry(5, 30),
	}
	first := RankSkillsForImprovement(history)
	for run := 0; run < 10; run++ {
		again := RankSkillsForImprovement(history)
		for i := range first {
			if again[i].SkillID != first[i].SkillID {
				t.Fatalf("run %d: order changed at %d", run, i)
			}
		}
	}
}

func TestSkillIDs(t *testing.T) {
	ranked := RankSkillsForImprovement([]HistoryEntry{entry(9, 10), entry(8, 50)})
	ids := SkillIDs(ranked)
	if len(ids) != 2 || ids[0] != 9 || ids[1] != 8 {
		t.Errorf("SkillIDs = %v, want [9 8]", ids)
	}
}
