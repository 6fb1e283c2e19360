package performance

import "github.com/abhisek/lingoloop/internal/challenge"

// Thresholds tune when the effective level moves. Rates and scores are
// percentages in [0,100].
type Thresholds struct {
	// MinTotalAttempts gates any change on overall experience.
	MinTotalAttempts int `toml:"min_total_attempts"`
	// MinLevelAttempts gates any change on experience at the current level.
	MinLevelAttempts int `toml:"min_level_attempts"`

	PromoteAttempts    int     `toml:"promote_attempts"`
	PromoteSuccessRate float64 `toml:"promote_success_rate"`
	PromoteAvgScore    float64 `toml:"promote_avg_score"`
	PromoteRecentAvg   float64 `toml:"promote_recent_avg"`

	DemoteAttempts    int     `toml:"demote_attempts"`
	DemoteSuccessRate float64 `toml:"demote_success_rate"`
	DemoteRecentAvg   float64 `toml:"demote_recent_avg"`

	// RecentWindow is how many recent scores must exist before the
	// recent-average shortcuts apply.
	RecentWindow int `toml:"recent_window"`
}

// DefaultThresholds returns the standard level thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinTotalAttempts:   5,
		MinLevelAttempts:   3,
		PromoteAttempts:    10,
		PromoteSuccessRate: 85,
		PromoteAvgScore:    80,
		PromoteRecentAvg:   90,
		DemoteAttempts:     5,
		DemoteSuccessRate:  50,
		DemoteRecentAvg:    40,
		RecentWindow:       MaxRecentScores,
	}
}

// AdjustLevel returns the effective level the snapshot should have. It
// moves at most one step, and never above advanced or below beginner.
func AdjustLevel(s *Snapshot, th Thresholds) challenge.Level {
	current := s.EffectiveLevel.OrDefault()

	if s.Overall.TotalAttempts < th.MinTotalAttempts {
		return current
	}
	stats := s.ByLevel[string(current)]
	if stats.Attempts < th.MinLevelAttempts {
		return current
	}

	rate := stats.SuccessRate()
	fullWindow := len(s.LastFiveScores) >= th.RecentWindow
	recentAvg := s.RecentAverage()

	promote := (stats.Attempts >= th.PromoteAttempts && rate > th.PromoteSuccessRate && stats.AvgScore > th.PromoteAvgScore) ||
		(fullWindow && recentAvg > th.PromoteRecentAvg)
	demote := (stats.Attempts >= th.DemoteAttempts && rate < th.DemoteSuccessRate) ||
		(fullWindow && recentAvg < th.DemoteRecentAvg)

	switch current {
	case challenge.LevelBeginner:
		if promote {
			return current.Next()
		}
	case challenge.LevelIntermediate:
		if promote {
			return current.Next()
		}
		if demote {
			return current.Prev()
		}
	case challenge.LevelAdvanced:
		if demote {
			return current.Prev()
		}
	}
	return current
}
