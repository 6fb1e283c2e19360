package recommend

import (
	"testing"

	"github.com/abhisek/lingoloop/internal/challenge"
	"github.com/abhisek/lingoloop/internal/performance"
	"github.com/abhisek/lingoloop/internal/profile"
)

func TestExplain_SumsToScore(t *testing.T) {
	c := ch("cafe-1", challenge.TypeListening, "cafe", challenge.LevelBeginner, challenge.AgeGroupAll)
	in := NewInput(adult("cafe", "travel"), nil)
	s := NewScorer()

	sum := 0
	for _, v := range s.Explain(c, in) {
		sum += v
	}
	if sum != s.Score(c, in) {
		t.Errorf("Explain sums to %d, Score = %d", sum, s.Score(c, in))
	}
	if len(s.Explain(c, in)) != len(DefaultRules()) {
		t.Errorf("Explain has %d rules, want %d", len(s.Explain(c, in)), len(DefaultRules()))
	}
}

func TestFilterByProfile_LevelCeiling(t *testing.T) {
	pool := []challenge.Challenge{
		ch("b", challenge.TypeIRL, "t", challenge.LevelBeginner, ""),
		ch("i", challenge.TypeIRL, "t", challenge.LevelIntermediate, ""),
		ch("a", challenge.TypeIRL, "t", challenge.LevelAdvanced, ""),
	}
	got := FilterByProfile(pool, adult(), performance.NewSnapshot(challenge.LevelBeginner))
	if len(got) != 2 || got[0].ID != "b" || got[1].ID != "i" {
		t.Errorf("FilterByProfile = %v, want [b i]", ids(got))
	}

	got = FilterByProfile(pool, adult(), performance.NewSnapshot(challenge.LevelAdvanced))
	if len(got) != 3 {
		t.Errorf("FilterByProfile(advanced) = %v, want all three", ids(got))
	}
}

func TestFilterByProfile_Age(t *testing.T) {
	pool := []challenge.Challenge{
		ch("all", challenge.TypeIRL, "t", challenge.LevelBeginner, challenge.AgeGroupAll),
		ch("kid", challenge.TypeIRL, "t", challenge.LevelBeginner, challenge.AgeGroupChild),
		ch("grown", challenge.TypeIRL, "t", challenge.LevelBeginner, challenge.AgeGroupAdult),
		ch("unset", challenge.TypeIRL, "t", challenge.LevelBeginner, ""),
	}
	got := FilterByProfile(pool, adult(), nil)
	if want := []string{"all", "grown", "unset"}; !equalIDs(ids(got), want) {
		t.Errorf("FilterByProfile = %v, want %v", ids(got), want)
	}

	// No profile: nothing is filtered on age.
	if got := FilterByProfile(pool, nil, nil); len(got) != 4 {
		t.Errorf("FilterByProfile(nil) = %v, want all four", ids(got))
	}
}

func TestFilterByProfile_UsesProfileLevelWithoutSnapshot(t *testing.T) {
	p := adult()
	p.Level = challenge.LevelIntermediate
	pool := []challenge.Challenge{ch("a", challenge.TypeIRL, "t", challenge.LevelAdvanced, "")}
	if got := FilterByProfile(pool, p, nil); len(got) != 1 {
		t.Errorf("FilterByProfile = %v, want [a]", ids(got))
	}
}

func TestRecommend_StableTies(t *testing.T) {
	pool := []challenge.Challenge{
		ch("first", challenge.TypeIRL, "food", challenge.LevelBeginner, challenge.AgeGroupAll),
		ch("second", challenge.TypeIRL, "food", challenge.LevelBeginner, challenge.AgeGroupAll),
		ch("third", challenge.TypeIRL, "food", challenge.LevelBeginner, challenge.AgeGroupAll),
	}
	got := Recommend(pool, adult("cafe", "travel"), nil, Options{})
	if want := []string{"first", "second", "third"}; !equalIDs(scoredIDs(got), want) {
		t.Errorf("Recommend = %v, want %v", scoredIDs(got), want)
	}
}

func TestRecommend_OrdersByScore(t *testing.T) {
	pool := []challenge.Challenge{
		ch("stretch", challenge.TypeIRL, "work", challenge.LevelIntermediate, challenge.AgeGroupAll),
		ch("interest", challenge.TypeIRL, "cafe", challenge.LevelBeginner, challenge.AgeGroupAll),
		ch("plain", challenge.TypeIRL, "work", challenge.LevelBeginner, challenge.AgeGroupAll),
	}
	got := Recommend(pool, adult("cafe", "travel"), nil, Options{Explain: true})
	if want := []string{"interest", "plain", "stretch"}; !equalIDs(scoredIDs(got), want) {
		t.Errorf("Recommend = %v, want %v", scoredIDs(got), want)
	}
	for i := 1; i < len(got); i++ {
		if got[i].RelevanceScore > got[i-1].RelevanceScore {
			t.Errorf("not descending at %d", i)
		}
	}
	if got[0].Breakdown["interest"] != 3 {
		t.Errorf("Breakdown[interest] = %d, want 3", got[0].Breakdown["interest"])
	}
}

func TestRecommend_Limit(t *testing.T) {
	pool := []challenge.Challenge{
		ch("a", challenge.TypeIRL, "t", challenge.LevelBeginner, ""),
		ch("b", challenge.TypeIRL, "t", challenge.LevelBeginner, ""),
		ch("c", challenge.TypeIRL, "t", challenge.LevelBeginner, ""),
	}
	if got := Top(pool, nil, nil, 2); len(got) != 2 {
		t.Errorf("Top(2) len = %d, want 2", len(got))
	}
	if got := Recommend(pool, nil, nil, Options{Limit: 0}); len(got) != 3 {
		t.Errorf("Recommend(limit 0) len = %d, want 3", len(got))
	}
	if got := Recommend(pool, nil, nil, Options{Limit: -1}); len(got) != 3 {
		t.Errorf("Recommend(limit -1) len = %d, want 3", len(got))
	}
}

func TestRecommend_ReturnsCopies(t *testing.T) {
	pool := []challenge.Challenge{{ID: "mc", Type: challenge.TypeMultipleChoice, Topic: "t",
		Level: challenge.LevelBeginner, Options: []string{"a", "b", "c"}}}
	got := Recommend(pool, nil, nil, Options{})
	got[0].Options[0] = "changed"
	got[0].Topic = "changed"
	if pool[0].Options[0] != "a" || pool[0].Topic != "t" {
		t.Errorf("pool mutated: %+v", pool[0])
	}
}

func TestRecommend_SeedPool(t *testing.T) {
	pack, err := challenge.Seed()
	if err != nil {
		t.Fatal(err)
	}
	p := &profile.Profile{AgeGroup: challenge.AgeGroupAdult, Level: challenge.LevelBeginner, Interests: []string{"cafe", "travel"}}
	got := Recommend(pack.Challenges, p, nil, Options{})
	if len(got) == 0 {
		t.Fatal("no recommendations from seed pool")
	}
	for _, s := range got {
		if s.Level == challenge.LevelAdvanced {
			t.Errorf("advanced challenge %s recommended to a beginner", s.ID)
		}
	}
}

func ids(cs []challenge.Challenge) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.ID
	}
	return out
}

func scoredIDs(ss []Scored) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = s.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
