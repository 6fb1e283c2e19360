package report

import (
	"strings"
	"testing"

	"github.com/abhisek/lingoloop/internal/challenge"
	"github.com/abhisek/lingoloop/internal/coach"
	"github.com/abhisek/lingoloop/internal/performance"
	"github.com/abhisek/lingoloop/internal/recommend"
)

func TestBar_Clamps(t *testing.T) {
	full := Bar(150, 10)
	if strings.Count(full, "█") != 10 || strings.Contains(full, "░") {
		t.Errorf("Bar(150) = %q", full)
	}
	empty := Bar(-5, 10)
	if strings.Contains(empty, "█") || strings.Count(empty, "░") != 10 {
		t.Errorf("Bar(-5) = %q", empty)
	}
	half := Bar(50, 10)
	if strings.Count(half, "█") != 5 {
		t.Errorf("Bar(50) = %q", half)
	}
}

func TestRecommendations_Explain(t *testing.T) {
	recs := []recommend.Scored{{
		Challenge:      challenge.Challenge{ID: "cafe-menu-mc", Type: challenge.TypeMultipleChoice, Topic: "cafe", Level: challenge.LevelBeginner, Title: "Read the menu"},
		RelevanceScore: 9,
		Breakdown:      map[string]int{"level": 3, "novelty": 2, "age": 0},
	}}
	out := Recommendations(recs, true)
	for _, want := range []string{"cafe-menu-mc", "Read the menu", "level+3 novelty+2"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "age+0") {
		t.Error("zero-point rules should be omitted")
	}
}

func TestRecommendations_Empty(t *testing.T) {
	if !strings.Contains(Recommendations(nil, false), "No challenges") {
		t.Error("expected empty message")
	}
}

func TestSnapshot(t *testing.T) {
	s := performance.NewSnapshot(challenge.LevelBeginner)
	s.Record(performance.Attempt{
		Challenge: challenge.Challenge{ID: "x", Type: challenge.TypeListening, Topic: "travel", Level: challenge.LevelBeginner},
		Score:     80,
		Passed:    true,
	}, performance.DefaultThresholds())

	out := Snapshot(s)
	for _, want := range []string{"beginner", "stable", "travel", "listening", "Recent:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestInsights_Empty(t *testing.T) {
	out := Insights(&coach.Insights{TotalXP: 42})
	if !strings.Contains(out, "42") || strings.Count(out, "none yet") != 2 {
		t.Errorf("unexpected output:\n%s", out)
	}
}
