package performance

import (
	"testing"

	"github.com/abhisek/lingoloop/internal/challenge"
)

func TestWeakAreas(t *testing.T) {
	s := NewSnapshot(challenge.LevelBeginner)
	s.ByTopic["cafe"] = Stats{Attempts: 4, Successes: 2, AvgScore: 55, TotalScore: 220}   // 50%
	s.ByTopic["travel"] = Stats{Attempts: 5, Successes: 1, AvgScore: 30, TotalScore: 150} // 20%
	s.ByTopic["food"] = Stats{Attempts: 1, Successes: 0, AvgScore: 10, TotalScore: 10}    // too few
	s.ByTopic["work"] = Stats{Attempts: 5, Successes: 3, AvgScore: 70, TotalScore: 350}   // 60%
	s.ByType[string(challenge.TypeIRL)] = Stats{Attempts: 3, Successes: 1, AvgScore: 40, TotalScore: 120}

	got := WeakAreas(s)
	want := []string{"travel", "irl", "cafe"}
	if len(got) != len(want) {
		t.Fatalf("WeakAreas len = %d, want %d: %+v", len(got), len(want), got)
	}
	for i, k := range want {
		if got[i].Key != k {
			t.Errorf("WeakAreas[%d] = %s, want %s", i, got[i].Key, k)
		}
	}
	if got[1].Kind != AreaType {
		t.Errorf("WeakAreas[1].Kind = %s, want type", got[1].Kind)
	}
}

func TestStrengths(t *testing.T) {
	s := NewSnapshot(challenge.LevelBeginner)
	s.ByTopic["cafe"] = Stats{Attempts: 3, Successes: 3, AvgScore: 80, TotalScore: 240}
	s.ByTopic["travel"] = Stats{Attempts: 5, Successes: 4, AvgScore: 92, TotalScore: 460}
	s.ByTopic["food"] = Stats{Attempts: 2, Successes: 2, AvgScore: 99, TotalScore: 198}  // too few
	s.ByTopic["work"] = Stats{Attempts: 5, Successes: 5, AvgScore: 70, TotalScore: 350}  // low avg
	s.ByTopic["health"] = Stats{Attempts: 5, Successes: 3, AvgScore: 90, TotalScore: 450} // 60%

	got := Strengths(s)
	if len(got) != 2 {
		t.Fatalf("Strengths len = %d, want 2: %+v", len(got), got)
	}
	if got[0].Key != "travel" || got[1].Key != "cafe" {
		t.Errorf("Strengths = [%s %s], want [travel cafe]", got[0].Key, got[1].Key)
	}
}

func TestInsights_Nil(t *testing.T) {
	if WeakAreas(nil) != nil || Strengths(nil) != nil {
		t.Error("expected nil for nil snapshot")
	}
}
