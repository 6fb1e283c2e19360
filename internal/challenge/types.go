package challenge

import "errors"

// ErrNotFound is returned when a challenge ID is not in the pool.
var ErrNotFound = errors.New("challenge not found")

// Type identifies the kind of exercise a challenge presents.
type Type string

const (
	TypePronunciation  Type = "pronunciation"
	TypeListening      Type = "listening"
	TypeFillBlank      Type = "fill_blank"
	TypeMultipleChoice Type = "multiple_choice"
	TypeIRL            Type = "irl"
)

// AllTypes returns every challenge type in display order.
func AllTypes() []Type {
	return []Type{TypePronunciation, TypeListening, TypeFillBlank, TypeMultipleChoice, TypeIRL}
}

// Valid reports whether t is one of the known challenge types.
func (t Type) Valid() bool {
	for _, k := range AllTypes() {
		if t == k {
			return true
		}
	}
	return false
}

// DisplayName returns a human-readable label for the type.
func (t Type) DisplayName() string {
	switch t {
	case TypePronunciation:
		return "Pronunciation"
	case TypeListening:
		return "Listening"
	case TypeFillBlank:
		return "Fill in the blank"
	case TypeMultipleChoice:
		return "Multiple choice"
	case TypeIRL:
		return "Real world"
	default:
		return string(t)
	}
}

// AgeGroup scopes a challenge to an audience. AgeGroupAll matches everyone.
type AgeGroup string

const (
	AgeGroupChild AgeGroup = "child"
	AgeGroupTeen  AgeGroup = "teen"
	AgeGroupAdult AgeGroup = "adult"
	AgeGroupAll   AgeGroup = "all"
)

// Challenge is a single exercise served to a learner. Only ID, Type, Topic,
// Level and AgeGroup take part in recommendation; the rest is presentational.
type Challenge struct {
	ID       string   `json:"id"`
	Type     Type     `json:"type"`
	Topic    string   `json:"topic"`
	Level    Level    `json:"level"`
	AgeGroup AgeGroup `json:"ageGroup,omitempty"`

	Title   string   `json:"title"`
	Prompt  string   `json:"prompt,omitempty"`
	Options []string `json:"options,omitempty"`
	Answer  string   `json:"answer,omitempty"`
	XP      int      `json:"xp,omitempty"`
}

// Clone returns a copy that shares no slices with c.
func (c Challenge) Clone() Challenge {
	out := c
	if c.Options != nil {
		out.Options = append([]string(nil), c.Options...)
	}
	return out
}
