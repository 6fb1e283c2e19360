package challenge

import "strings"

// Level is a CEFR-like proficiency band. Levels are ordered
// beginner < intermediate < advanced.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

var levelOrder = []Level{LevelBeginner, LevelIntermediate, LevelAdvanced}

// AllLevels returns the levels from lowest to highest.
func AllLevels() []Level {
	return append([]Level(nil), levelOrder...)
}

// ParseLevel normalizes s into a Level. ok is false for unknown values.
func ParseLevel(s string) (Level, bool) {
	l := Level(strings.ToLower(strings.TrimSpace(s)))
	return l, l.Ordinal() >= 0
}

// Ordinal returns the position of l in the level order, or -1 if unknown.
func (l Level) Ordinal() int {
	for i, k := range levelOrder {
		if l == k {
			return i
		}
	}
	return -1
}

// Valid reports whether l is a known level.
func (l Level) Valid() bool {
	return l.Ordinal() >= 0
}

// Next returns the level above l, or l itself at the top.
func (l Level) Next() Level {
	i := l.Ordinal()
	if i < 0 || i == len(levelOrder)-1 {
		return l
	}
	return levelOrder[i+1]
}

// Prev returns the level below l, or l itself at the bottom.
func (l Level) Prev() Level {
	i := l.Ordinal()
	if i <= 0 {
		return l
	}
	return levelOrder[i-1]
}

// OrDefault returns l when valid and LevelBeginner otherwise.
func (l Level) OrDefault() Level {
	if l.Valid() {
		return l
	}
	return LevelBeginner
}
