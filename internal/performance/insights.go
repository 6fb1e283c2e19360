package performance

import "sort"

const (
	// WeakMinAttempts and WeakSuccessRate define a weak area.
	WeakMinAttempts = 2
	WeakSuccessRate = 60.0

	// StrengthMinAttempts, StrengthSuccessRate and StrengthAvgScore define
	// a strength.
	StrengthMinAttempts = 3
	StrengthSuccessRate = 80.0
	StrengthAvgScore    = 75.0
)

// AreaKind names the dimension an Area belongs to.
type AreaKind string

const (
	AreaTopic AreaKind = "topic"
	AreaType  AreaKind = "type"
)

// Area is one topic or type summarized for display.
type Area struct {
	Kind        AreaKind `json:"kind"`
	Key         string   `json:"key"`
	Attempts    int      `json:"attempts"`
	SuccessRate float64  `json:"successRate"`
	AvgScore    float64  `json:"avgScore"`
}

// IsWeak reports whether st qualifies as a weak area.
func IsWeak(st Stats) bool {
	return st.Attempts >= WeakMinAttempts && st.SuccessRate() < WeakSuccessRate
}

// WeakAreas returns topics and types with at least WeakMinAttempts attempts
// and a success rate below WeakSuccessRate, weakest first.
func WeakAreas(s *Snapshot) []Area {
	if s == nil {
		return nil
	}
	areas := collect(s, IsWeak)
	sort.SliceStable(areas, func(i, j int) bool {
		return areas[i].SuccessRate < areas[j].SuccessRate
	})
	return areas
}

// Strengths returns topics and types with at least StrengthMinAttempts
// attempts, a success rate of StrengthSuccessRate or more and an average
// score of StrengthAvgScore or more, best average first.
func Strengths(s *Snapshot) []Area {
	if s == nil {
		return nil
	}
	areas := collect(s, func(st Stats) bool {
		return st.Attempts >= StrengthMinAttempts &&
			st.SuccessRate() >= StrengthSuccessRate &&
			st.AvgScore >= StrengthAvgScore
	})
	sort.SliceStable(areas, func(i, j int) bool {
		return areas[i].AvgScore > areas[j].AvgScore
	})
	return areas
}

// collect walks topics then types in key order so ties sort deterministically.
func collect(s *Snapshot, keep func(Stats) bool) []Area {
	var out []Area
	for _, d := range []struct {
		kind AreaKind
		dim  Dimension
	}{{AreaTopic, s.ByTopic}, {AreaType, s.ByType}} {
		keys := make([]string, 0, len(d.dim))
		for k := range d.dim {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			st := d.dim[k]
			if !keep(st) {
				continue
			}
			out = append(out, Area{
				Kind:        d.kind,
				Key:         k,
				Attempts:    st.Attempts,
				SuccessRate: st.SuccessRate(),
				AvgScore:    st.AvgScore,
			})
		}
	}
	return out
}
