package contentgen

import (
	"strings"

	"github.com/abhisek/lingoloop/internal/challenge"
)

const (
	minOptions = 3
	maxOptions = 5

	// Blank marks the gap in a fill-in-the-blank prompt.
	Blank = "___"
)

// OptionsValidator checks type-specific shape: multiple choice carries 3 to
// 5 distinct options including the answer, fill-blank prompts contain a
// blank, and other types carry no options.
type OptionsValidator struct{}

func (v *OptionsValidator) Name() string { return "options" }

func (v *OptionsValidator) Validate(c *challenge.Challenge) *ValidationError {
	fail := func(msg string) *ValidationError {
		return &ValidationError{Validator: v.Name(), ChallengeID: c.ID, Message: msg}
	}

	if c.Type != challenge.TypeMultipleChoice {
		if len(c.Options) > 0 {
			return fail("options are only allowed for multiple_choice")
		}
		if c.Type == challenge.TypeFillBlank && !strings.Contains(c.Prompt, Blank) {
			return fail("fill_blank prompt must contain " + Blank)
		}
		return nil
	}

	if len(c.Options) < minOptions || len(c.Options) > maxOptions {
		return fail("multiple_choice needs 3 to 5 options")
	}
	seen := make(map[string]bool, len(c.Options))
	found := false
	for _, o := range c.Options {
		key := strings.ToLower(strings.TrimSpace(o))
		if key == "" {
			return fail("options must not be empty")
		}
		if seen[key] {
			return fail("duplicate option " + o)
		}
		seen[key] = true
		if o == c.Answer {
			found = true
		}
	}
	if !found {
		return fail("answer is not one of the options")
	}
	return nil
}
