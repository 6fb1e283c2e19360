// Package profile holds the learner's self-declared profile and its
// key-value backed repository.
package profile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/lingoloop/internal/challenge"
)

// MinInterests is the fewest interests a saved profile may carry.
const MinInterests = 2

// ValidAgeGroups are the age groups a learner may declare. "all" is a
// challenge audience, not a learner age.
var ValidAgeGroups = []challenge.AgeGroup{
	challenge.AgeGroupChild,
	challenge.AgeGroupTeen,
	challenge.AgeGroupAdult,
}

// Profile is what a learner tells us about themselves during onboarding.
type Profile struct {
	DisplayName    string             `json:"displayName,omitempty"`
	AgeGroup       challenge.AgeGroup `json:"ageGroup"`
	Level          challenge.Level    `json:"level"`
	Interests      []string           `json:"interests"`
	NativeLanguage string             `json:"nativeLanguage,omitempty"`
	TargetLanguage string             `json:"targetLanguage,omitempty"`
}

// HasInterest reports whether topic is one of the profile's interests.
// A nil profile has no interests.
func (p *Profile) HasInterest(topic string) bool {
	if p == nil {
		return false
	}
	for _, i := range p.Interests {
		if strings.EqualFold(i, topic) {
			return true
		}
	}
	return false
}

// LevelOrDefault returns the declared level, or beginner for a nil or
// unset profile.
func (p *Profile) LevelOrDefault() challenge.Level {
	if p == nil {
		return challenge.LevelBeginner
	}
	return p.Level.OrDefault()
}

// Normalize trims and lowercases interests and drops duplicates and blanks.
func (p *Profile) Normalize() {
	seen := make(map[string]bool, len(p.Interests))
	out := make([]string, 0, len(p.Interests))
	for _, i := range p.Interests {
		i = strings.ToLower(strings.TrimSpace(i))
		if i == "" || seen[i] {
			continue
		}
		seen[i] = true
		out = append(out, i)
	}
	p.Interests = out
	p.DisplayName = strings.TrimSpace(p.DisplayName)
}

// Validate checks a profile before it is saved. Reads never validate.
func (p *Profile) Validate() error {
	var errs []error
	if !validAgeGroup(p.AgeGroup) {
		errs = append(errs, fmt.Errorf("age group %q must be one of child, teen, adult", p.AgeGroup))
	}
	if !p.Level.Valid() {
		errs = append(errs, fmt.Errorf("level %q must be one of beginner, intermediate, advanced", p.Level))
	}
	if len(p.Interests) < MinInterests {
		errs = append(errs, fmt.Errorf("need at least %d interests, got %d", MinInterests, len(p.Interests)))
	}
	return errors.Join(errs...)
}

func validAgeGroup(g challenge.AgeGroup) bool {
	for _, v := range ValidAgeGroups {
		if g == v {
			return true
		}
	}
	return false
}
