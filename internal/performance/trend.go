package performance

const (
	// TrendMinScores is the fewest scores that carry a trend signal.
	TrendMinScores = 3

	// TrendWindow is how many of the most recent scores are considered.
	TrendWindow = 5

	// TrendDelta is the half-over-half mean change that counts as movement.
	TrendDelta = 10.0

	// TrendHighMean and TrendLowMean classify a flat window by absolute level.
	TrendHighMean = 85.0
	TrendLowMean  = 50.0
)

// DetectTrend classifies an ordered run of scores (oldest first).
//
// The window is split at its midpoint, the later half taking the extra
// element when odd. A half-over-half change beyond TrendDelta decides the
// trend; otherwise the mean of the whole window decides it. The delta check
// always runs first.
func DetectTrend(scores []float64) Trend {
	if len(scores) < TrendMinScores {
		return TrendStable
	}

	window := keepLast(scores, TrendWindow)
	mid := len(window) / 2
	diff := mean(window[mid:]) - mean(window[:mid])

	switch {
	case diff > TrendDelta:
		return TrendImproving
	case diff < -TrendDelta:
		return TrendStruggling
	}

	avg := mean(window)
	switch {
	case avg > TrendHighMean:
		return TrendImproving
	case avg < TrendLowMean:
		return TrendStruggling
	}
	return TrendStable
}
