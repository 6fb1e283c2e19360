// Package report renders coach data for the terminal.
package report

import (
	"fmt"
	"sort"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingoloop/internal/challenge"
	"github.com/abhisek/lingoloop/internal/coach"
	"github.com/abhisek/lingoloop/internal/performance"
	"github.com/abhisek/lingoloop/internal/profile"
	"github.com/abhisek/lingoloop/internal/recommend"
	"github.com/abhisek/lingoloop/internal/store"
	"github.com/abhisek/lingoloop/internal/ui/theme"
)

const barWidth = 20

// col pads s to w cells. Longer values are left intact.
func col(s string, w int) string {
	if n := lipgloss.Width(s); n < w {
		return s + strings.Repeat(" ", w-n)
	}
	return s
}

// Recommendations renders a ranked list. With explain, each row is
// followed by its rule breakdown.
func Recommendations(recs []recommend.Scored, explain bool) string {
	if len(recs) == 0 {
		return theme.Hint.Render("No challenges match this learner.")
	}
	var b strings.Builder
	b.WriteString(theme.Title.Render("Recommended challenges") + "\n")
	for i, r := range recs {
		fmt.Fprintf(&b, "%s %s %s %s %s\n",
			theme.Label.Render(fmt.Sprintf("%2d.", i+1)),
			theme.Highlight.Render(fmt.Sprintf("%3d", r.RelevanceScore)),
			col(r.ID, 26),
			col(theme.Body.Render(r.Title), 34),
			theme.Label.Render(fmt.Sprintf("%s · %s · %s", r.Type.DisplayName(), r.Topic, r.Level)),
		)
		if explain && len(r.Breakdown) > 0 {
			b.WriteString("      " + theme.Hint.Render(breakdown(r.Breakdown)) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func breakdown(m map[string]int) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		if m[k] != 0 {
			parts = append(parts, fmt.Sprintf("%s+%d", k, m[k]))
		}
	}
	if len(parts) == 0 {
		return "no points"
	}
	return strings.Join(parts, " ")
}

// Snapshot renders overall counters and per-dimension success rates.
func Snapshot(s *performance.Snapshot) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Performance") + "\n")
	fmt.Fprintf(&b, "%s %s   %s %s\n",
		theme.Label.Render("Level:"), theme.Highlight.Render(string(s.EffectiveLevel)),
		theme.Label.Render("Trend:"), Trend(s.RecentTrend))
	fmt.Fprintf(&b, "%s %d   %s %.1f\n",
		theme.Label.Render("Attempts:"), s.Overall.TotalAttempts,
		theme.Label.Render("Avg score:"), s.Overall.AvgScore)
	fmt.Fprintf(&b, "%s %s\n", col(theme.Label.Render("Success"), 14), Bar(s.Overall.SuccessRate, barWidth))
	if len(s.LastFiveScores) > 0 {
		scores := make([]string, len(s.LastFiveScores))
		for i, v := range s.LastFiveScores {
			scores[i] = fmt.Sprintf("%.0f", v)
		}
		fmt.Fprintf(&b, "%s %s\n", theme.Label.Render("Recent:"), strings.Join(scores, " "))
	}

	for _, d := range []struct {
		name string
		dim  performance.Dimension
	}{{"By type", s.ByType}, {"By topic", s.ByTopic}, {"By level", s.ByLevel}} {
		if len(d.dim) == 0 {
			continue
		}
		b.WriteString("\n" + theme.Body.Bold(true).Render(d.name) + "\n")
		keys := make([]string, 0, len(d.dim))
		for k := range d.dim {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			st := d.dim[k]
			fmt.Fprintf(&b, "  %s %s %s\n", col(k, 16), Bar(st.SuccessRate(), barWidth),
				theme.Label.Render(fmt.Sprintf("  %d tries, avg %.0f", st.Attempts, st.AvgScore)))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// Trend colors a trend label.
func Trend(t performance.Trend) string {
	switch t {
	case performance.TrendImproving:
		return theme.Good.Render("↑ " + string(t))
	case performance.TrendStruggling:
		return theme.Bad.Render("↓ " + string(t))
	default:
		return theme.Body.Render("→ " + string(t))
	}
}

// Insights renders weak areas, strengths and XP.
func Insights(ins *coach.Insights) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", theme.Label.Render("Total XP:"), theme.Highlight.Render(fmt.Sprint(ins.TotalXP)))
	areas := func(title string, list []performance.Area, style lipgloss.Style) {
		b.WriteString("\n" + style.Render(title) + "\n")
		if len(list) == 0 {
			b.WriteString("  " + theme.Hint.Render("none yet") + "\n")
			return
		}
		for _, a := range list {
			fmt.Fprintf(&b, "  %s %s %s\n", col(string(a.Kind)+": "+a.Key, 24), Bar(a.SuccessRate, barWidth),
				theme.Label.Render(fmt.Sprintf("  avg %.0f over %d", a.AvgScore, a.Attempts)))
		}
	}
	areas("Needs practice", ins.WeakAreas, theme.Bad)
	areas("Strengths", ins.Strengths, theme.Good)
	return strings.TrimRight(b.String(), "\n")
}

// History renders attempts newest first.
func History(events []store.AttemptEvent) string {
	if len(events) == 0 {
		return theme.Hint.Render("No attempts recorded yet.")
	}
	var b strings.Builder
	for _, e := range events {
		mark := theme.Bad.Render("✗")
		if e.Passed {
			mark = theme.Good.Render("✓")
		}
		fmt.Fprintf(&b, "%s %s %s %s %s\n",
			theme.Label.Render(e.Timestamp.Local().Format("2006-01-02 15:04")),
			mark,
			col(e.ChallengeID, 26),
			theme.Highlight.Render(fmt.Sprintf("%3.0f", e.Score)),
			theme.Label.Render(fmt.Sprintf("+%dxp  %s", e.XPEarned, e.EffectiveLevel)),
		)
	}
	return strings.TrimRight(b.String(), "\n")
}

// Challenges renders a pool listing.
func Challenges(cs []challenge.Challenge) string {
	if len(cs) == 0 {
		return theme.Hint.Render("No challenges.")
	}
	var b strings.Builder
	for _, c := range cs {
		fmt.Fprintf(&b, "%s %s %s %s\n",
			col(c.ID, 26),
			col(c.Type.DisplayName(), 18),
			col(c.Topic+" · "+string(c.Level), 24),
			theme.Body.Render(c.Title),
		)
	}
	return strings.TrimRight(b.String(), "\n")
}

// Profile renders a learner profile in a card.
func Profile(userID string, p *profile.Profile) string {
	lines := []string{
		theme.Title.Render(userID),
		theme.Label.Render("Name:      ") + p.DisplayName,
		theme.Label.Render("Age group: ") + string(p.AgeGroup),
		theme.Label.Render("Level:     ") + string(p.Level),
		theme.Label.Render("Interests: ") + strings.Join(p.Interests, ", "),
	}
	if p.NativeLanguage != "" || p.TargetLanguage != "" {
		lines = append(lines, theme.Label.Render("Learning:  ")+p.TargetLanguage+" from "+p.NativeLanguage)
	}
	return theme.Card.Render(strings.Join(lines, "\n"))
}
