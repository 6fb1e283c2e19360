package recommend

import (
	"sort"

	"github.com/abhisek/lingoloop/internal/challenge"
	"github.com/abhisek/lingoloop/internal/performance"
	"github.com/abhisek/lingoloop/internal/profile"
)

// Scorer sums a list of rules.
type Scorer struct {
	rules []Rule
}

// NewScorer returns a scorer over rules, or DefaultRules when none given.
func NewScorer(rules ...Rule) *Scorer {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Scorer{rules: rules}
}

// Score returns the challenge's relevance score.
func (s *Scorer) Score(c challenge.Challenge, in Input) int {
	total := 0
	for _, r := range s.rules {
		total += r.Points(c, in)
	}
	return total
}

// Explain returns the points each rule awarded, keyed by rule name.
func (s *Scorer) Explain(c challenge.Challenge, in Input) map[string]int {
	out := make(map[string]int, len(s.rules))
	for _, r := range s.rules {
		out[r.Name()] = r.Points(c, in)
	}
	return out
}

// Scored is a ranked copy of a challenge.
type Scored struct {
	challenge.Challenge
	RelevanceScore int            `json:"relevanceScore"`
	Breakdown      map[string]int `json:"breakdown,omitempty"`
}

// FilterByProfile drops challenges for another age group and challenges
// more than one level above the learner. It never filters below.
func FilterByProfile(pool []challenge.Challenge, p *profile.Profile, snap *performance.Snapshot) []challenge.Challenge {
	in := NewInput(p, snap)
	ceiling := effectiveLevel(in).Ordinal() + 1

	out := make([]challenge.Challenge, 0, len(pool))
	for _, c := range pool {
		if ageExcluded(c, p) {
			continue
		}
		if c.Level.Ordinal() > ceiling {
			continue
		}
		out = append(out, c)
	}
	return out
}

func ageExcluded(c challenge.Challenge, p *profile.Profile) bool {
	if c.AgeGroup == "" || c.AgeGroup == challenge.AgeGroupAll {
		return false
	}
	if p == nil || p.AgeGroup == "" {
		return false
	}
	return c.AgeGroup != p.AgeGroup
}

// Options tune Recommend.
type Options struct {
	// Limit truncates the ranking when positive.
	Limit int
	// Explain attaches per-rule breakdowns.
	Explain bool
	// Scorer overrides the default scorer.
	Scorer *Scorer
}

// Recommend filters, scores and ranks pool for the learner. Equal scores
// keep pool order. The returned challenges are copies.
func Recommend(pool []challenge.Challenge, p *profile.Profile, snap *performance.Snapshot, opts Options) []Scored {
	scorer := opts.Scorer
	if scorer == nil {
		scorer = NewScorer()
	}
	in := NewInput(p, snap)

	candidates := FilterByProfile(pool, p, in.Snapshot)
	ranked := make([]Scored, 0, len(candidates))
	for _, c := range candidates {
		sc := Scored{Challenge: c.Clone(), RelevanceScore: scorer.Score(c, in)}
		if opts.Explain {
			sc.Breakdown = scorer.Explain(c, in)
		}
		ranked = append(ranked, sc)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].RelevanceScore > ranked[j].RelevanceScore
	})
	if opts.Limit > 0 && len(ranked) > opts.Limit {
		ranked = ranked[:opts.Limit]
	}
	return ranked
}

// Top returns the n best recommendations.
func Top(pool []challenge.Challenge, p *profile.Profile, snap *performance.Snapshot, n int) []Scored {
	return Recommend(pool, p, snap, Options{Limit: n})
}
