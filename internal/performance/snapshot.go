// Package performance tracks per-user challenge outcomes and derives the
// recent trend and effective level that drive recommendations.
package performance

import (
	"fmt"
	"math"
	"time"

	"github.com/abhisek/lingoloop/internal/challenge"
)

const (
	// SnapshotVersion is the current serialization format of Snapshot.
	SnapshotVersion = 1

	// MaxRecentScores bounds LastFiveScores.
	MaxRecentScores = 5

	// MaxRecentChallenges bounds RecentChallenges.
	MaxRecentChallenges = 20
)

// Trend classifies the direction of recent scores.
type Trend string

const (
	TrendImproving  Trend = "improving"
	TrendStable     Trend = "stable"
	TrendStruggling Trend = "struggling"
)

// Stats aggregates attempts along one dimension key (a type, topic or level).
type Stats struct {
	Attempts   int     `json:"attempts"`
	Successes  int     `json:"successes"`
	AvgScore   float64 `json:"avgScore"`
	TotalScore float64 `json:"totalScore"`
}

// SuccessRate returns successes as a percentage of attempts, 0 when empty.
func (s Stats) SuccessRate() float64 {
	if s.Attempts == 0 {
		return 0
	}
	return float64(s.Successes) / float64(s.Attempts) * 100
}

func (s Stats) record(score float64, passed bool) Stats {
	s.Attempts++
	if passed {
		s.Successes++
	}
	s.TotalScore += score
	s.AvgScore = s.TotalScore / float64(s.Attempts)
	return s
}

// Dimension maps a key (challenge type, topic or level name) to its stats.
// Keys are created on first use.
type Dimension map[string]Stats

func (d Dimension) record(key string, score float64, passed bool) {
	d[key] = d[key].record(score, passed)
}

// Get returns the stats for key and whether the key has been attempted.
func (d Dimension) Get(key string) (Stats, bool) {
	s, ok := d[key]
	return s, ok && s.Attempts > 0
}

// TotalAttempts sums attempts over every key.
func (d Dimension) TotalAttempts() int {
	total := 0
	for _, s := range d {
		total += s.Attempts
	}
	return total
}

func (d Dimension) clone() Dimension {
	out := make(Dimension, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Overall aggregates every attempt regardless of dimension.
type Overall struct {
	TotalAttempts      int     `json:"totalAttempts"`
	SuccessfulAttempts int     `json:"successfulAttempts"`
	SuccessRate        float64 `json:"successRate"`
	AvgScore           float64 `json:"avgScore"`
	TotalScore         float64 `json:"totalScore"`
}

// Snapshot is one user's performance record. It is owned by the Store and
// only changed through Record.
type Snapshot struct {
	Version          int             `json:"version"`
	Overall          Overall         `json:"overall"`
	ByType           Dimension       `json:"byType"`
	ByTopic          Dimension       `json:"byTopic"`
	ByLevel          Dimension       `json:"byLevel"`
	EffectiveLevel   challenge.Level `json:"effectiveLevel"`
	RecentTrend      Trend           `json:"recentTrend"`
	LastFiveScores   []float64       `json:"lastFiveScores"`
	RecentChallenges []string        `json:"recentChallenges"`
	LastUpdated      time.Time       `json:"lastUpdated"`
}

// NewSnapshot returns a default snapshot whose effective level is seeded
// from level (beginner when level is unknown).
func NewSnapshot(level challenge.Level) *Snapshot {
	s := &Snapshot{
		Version:          SnapshotVersion,
		ByType:           make(Dimension),
		ByTopic:          make(Dimension),
		ByLevel:          make(Dimension),
		EffectiveLevel:   level.OrDefault(),
		RecentTrend:      TrendStable,
		LastFiveScores:   []float64{},
		RecentChallenges: []string{},
	}
	for _, t := range challenge.AllTypes() {
		s.ByType[string(t)] = Stats{}
	}
	for _, l := range challenge.AllLevels() {
		s.ByLevel[string(l)] = Stats{}
	}
	return s
}

// Clone returns a deep copy.
func (s *Snapshot) Clone() *Snapshot {
	out := *s
	out.ByType = s.ByType.clone()
	out.ByTopic = s.ByTopic.clone()
	out.ByLevel = s.ByLevel.clone()
	out.LastFiveScores = append([]float64{}, s.LastFiveScores...)
	out.RecentChallenges = append([]string{}, s.RecentChallenges...)
	return &out
}

// HasSeen reports whether id is in the recent challenge window.
func (s *Snapshot) HasSeen(id string) bool {
	for _, r := range s.RecentChallenges {
		if r == id {
			return true
		}
	}
	return false
}

// RecentAverage returns the mean of LastFiveScores, 0 when empty.
func (s *Snapshot) RecentAverage() float64 {
	return mean(s.LastFiveScores)
}

// Validate checks the snapshot invariants. A stored snapshot that fails
// validation is treated as corrupt.
func (s *Snapshot) Validate() error {
	if !s.EffectiveLevel.Valid() {
		return fmt.Errorf("unknown effective level %q", s.EffectiveLevel)
	}
	if err := validateOverall(s.Overall); err != nil {
		return err
	}
	for name, d := range map[string]Dimension{"byType": s.ByType, "byTopic": s.ByTopic, "byLevel": s.ByLevel} {
		for k, st := range d {
			if err := validateStats(st); err != nil {
				return fmt.Errorf("%s[%s]: %w", name, k, err)
			}
		}
	}
	for _, v := range s.LastFiveScores {
		if v < 0 || v > 100 || math.IsNaN(v) {
			return fmt.Errorf("score %v out of range", v)
		}
	}
	return nil
}

// normalize repairs benign gaps in a decoded snapshot: nil maps, missing
// trend, over-long windows.
func (s *Snapshot) normalize() {
	if s.ByType == nil {
		s.ByType = make(Dimension)
	}
	if s.ByTopic == nil {
		s.ByTopic = make(Dimension)
	}
	if s.ByLevel == nil {
		s.ByLevel = make(Dimension)
	}
	if s.LastFiveScores == nil {
		s.LastFiveScores = []float64{}
	}
	if s.RecentChallenges == nil {
		s.RecentChallenges = []string{}
	}
	s.LastFiveScores = keepLast(s.LastFiveScores, MaxRecentScores)
	s.RecentChallenges = keepLast(s.RecentChallenges, MaxRecentChallenges)
	if s.RecentTrend == "" {
		s.RecentTrend = TrendStable
	}
	if s.Version == 0 {
		s.Version = SnapshotVersion
	}
}

func validateStats(st Stats) error {
	if st.Attempts < 0 || st.Successes < 0 {
		return fmt.Errorf("negative counters")
	}
	if st.Successes > st.Attempts {
		return fmt.Errorf("successes %d exceed attempts %d", st.Successes, st.Attempts)
	}
	if math.IsNaN(st.AvgScore) || math.IsNaN(st.TotalScore) {
		return fmt.Errorf("NaN score")
	}
	return nil
}

func validateOverall(o Overall) error {
	if o.TotalAttempts < 0 || o.SuccessfulAttempts < 0 {
		return fmt.Errorf("overall: negative counters")
	}
	if o.SuccessfulAttempts > o.TotalAttempts {
		return fmt.Errorf("overall: successes %d exceed attempts %d", o.SuccessfulAttempts, o.TotalAttempts)
	}
	return nil
}

func keepLast[T any](xs []T, n int) []T {
	if len(xs) > n {
		return xs[len(xs)-n:]
	}
	return xs
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
