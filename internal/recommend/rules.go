// Package recommend filters, scores and ranks challenges for a learner.
// Everything here is pure and safe for concurrent use.
package recommend

import (
	"github.com/abhisek/lingoloop/internal/challenge"
	"github.com/abhisek/lingoloop/internal/performance"
	"github.com/abhisek/lingoloop/internal/profile"
)

// Input is everything a rule may look at besides the challenge. Build it
// with NewInput so a missing profile or snapshot gets neutral defaults.
type Input struct {
	Profile  *profile.Profile
	Snapshot *performance.Snapshot
}

// NewInput fills in a neutral snapshot when snap is nil: effective level
// from the profile (or beginner), stable trend, no history.
func NewInput(p *profile.Profile, snap *performance.Snapshot) Input {
	if snap == nil {
		snap = performance.NewSnapshot(p.LevelOrDefault())
	}
	return Input{Profile: p, Snapshot: snap}
}

// Rule contributes points to a challenge's relevance score. Rules are
// independent and their points are summed.
type Rule interface {
	Name() string
	Points(c challenge.Challenge, in Input) int
}

// DefaultRules returns the standard rule set in evaluation order.
func DefaultRules() []Rule {
	return []Rule{
		AgeMatch{},
		InterestMatch{},
		LevelMatch{},
		WeakTopic{},
		WeakType{},
		Novelty{},
		Variety{},
	}
}

// AgeMatch awards 2 when the challenge is for everyone or for the
// learner's age group.
type AgeMatch struct{}

func (AgeMatch) Name() string { return "age" }

func (AgeMatch) Points(c challenge.Challenge, in Input) int {
	if c.AgeGroup == challenge.AgeGroupAll {
		return 2
	}
	if in.Profile != nil && in.Profile.AgeGroup != "" && c.AgeGroup == in.Profile.AgeGroup {
		return 2
	}
	return 0
}

// InterestMatch awards 3 when the topic is one of the learner's interests.
type InterestMatch struct{}

func (InterestMatch) Name() string { return "interest" }

func (InterestMatch) Points(c challenge.Challenge, in Input) int {
	if in.Profile.HasInterest(c.Topic) {
		return 3
	}
	return 0
}

// LevelMatch favours challenges at the effective level, then one below,
// then one above. The stretch above pays more while the trend is improving.
type LevelMatch struct{}

func (LevelMatch) Name() string { return "level" }

func (LevelMatch) Points(c challenge.Challenge, in Input) int {
	cl := c.Level.Ordinal()
	if cl < 0 {
		return 0
	}
	switch cl - effectiveLevel(in).Ordinal() {
	case 0:
		return 4
	case -1:
		return 2
	case 1:
		if in.Snapshot.RecentTrend == performance.TrendImproving {
			return 3
		}
		return 1
	}
	return 0
}

// WeakTopic awards 2 for a topic the learner struggles with and 1 for a
// topic never attempted.
type WeakTopic struct{}

func (WeakTopic) Name() string { return "weak-topic" }

func (WeakTopic) Points(c challenge.Challenge, in Input) int {
	return weakness(in.Snapshot.ByTopic, c.Topic, 2, 1)
}

// WeakType awards 1 for a type the learner struggles with or never tried.
type WeakType struct{}

func (WeakType) Name() string { return "weak-type" }

func (WeakType) Points(c challenge.Challenge, in Input) int {
	return weakness(in.Snapshot.ByType, string(c.Type), 1, 1)
}

// Novelty awards 1 when the challenge is not in the recent window.
type Novelty struct{}

func (Novelty) Name() string { return "novelty" }

func (Novelty) Points(c challenge.Challenge, in Input) int {
	if in.Snapshot.HasSeen(c.ID) {
		return 0
	}
	return 1
}

// VarietyShare is the share of typed attempts below which a type counts
// as underrepresented.
const VarietyShare = 0.20

// Variety awards 1 when the challenge's type accounts for less than
// VarietyShare of all typed attempts. With no attempts at all every type
// is underrepresented.
type Variety struct{}

func (Variety) Name() string { return "variety" }

func (Variety) Points(c challenge.Challenge, in Input) int {
	total := in.Snapshot.ByType.TotalAttempts()
	if total == 0 {
		return 1
	}
	share := float64(in.Snapshot.ByType[string(c.Type)].Attempts) / float64(total)
	if share < VarietyShare {
		return 1
	}
	return 0
}

func weakness(d performance.Dimension, key string, struggling, unexplored int) int {
	st, ok := d.Get(key)
	if !ok {
		return unexplored
	}
	if performance.IsWeak(st) {
		return struggling
	}
	return 0
}

// effectiveLevel is the snapshot's level, falling back to the profile's.
func effectiveLevel(in Input) challenge.Level {
	if in.Snapshot != nil && in.Snapshot.EffectiveLevel.Valid() {
		return in.Snapshot.EffectiveLevel
	}
	return in.Profile.LevelOrDefault()
}
