// Package contentgen authors new challenges with an LLM provider and checks
// them before they reach a content pack.
package contentgen

import (
	"fmt"

	"github.com/abhisek/lingoloop/internal/challenge"
)

// MaxCount caps how many challenges one request may ask for.
const MaxCount = 10

// Input describes the challenges to author.
type Input struct {
	Type     challenge.Type
	Topic    string
	Level    challenge.Level
	AgeGroup challenge.AgeGroup

	// Count defaults to 1 and is capped at MaxCount.
	Count int

	// Avoid lists titles or prompts already in the pool so the model does
	// not repeat them.
	Avoid []string
}

func (in Input) count() int {
	switch {
	case in.Count <= 0:
		return 1
	case in.Count > MaxCount:
		return MaxCount
	default:
		return in.Count
	}
}

func (in Input) ageGroup() challenge.AgeGroup {
	if in.AgeGroup == "" {
		return challenge.AgeGroupAll
	}
	return in.AgeGroup
}

// Validate rejects inputs that cannot produce a usable challenge.
func (in Input) Validate() error {
	if !in.Type.Valid() {
		return fmt.Errorf("unknown challenge type %q", in.Type)
	}
	if !in.Level.Valid() {
		return fmt.Errorf("unknown level %q", in.Level)
	}
	if in.Topic == "" {
		return fmt.Errorf("topic is required")
	}
	switch in.ageGroup() {
	case challenge.AgeGroupAll, challenge.AgeGroupChild, challenge.AgeGroupTeen, challenge.AgeGroupAdult:
	default:
		return fmt.Errorf("unknown age group %q", in.AgeGroup)
	}
	return nil
}

// Config controls the behavior of the Generator.
type Config struct {
	// Validators run in order on every generated challenge; the first
	// failure rejects the batch.
	Validators []Validator

	MaxTokens   int
	Temperature float64

	// MaxAvoid bounds how many Avoid entries reach the prompt.
	MaxAvoid int
}

// DefaultConfig returns the standard validator chain and defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&OptionsValidator{},
		},
		MaxTokens:   2048,
		Temperature: 0.8,
		MaxAvoid:    20,
	}
}
