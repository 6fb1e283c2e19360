package contentgen

import "github.com/abhisek/lingoloop/internal/challenge"

const (
	maxTitleLen  = 120
	maxPromptLen = 500
	maxXP        = 100
)

// StructuralValidator checks required fields and length limits.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(c *challenge.Challenge) *ValidationError {
	fail := func(msg string) *ValidationError {
		return &ValidationError{Validator: v.Name(), ChallengeID: c.ID, Message: msg}
	}
	switch {
	case c.Title == "":
		return fail("title is empty")
	case len(c.Title) > maxTitleLen:
		return fail("title exceeds 120 characters")
	case c.Prompt == "":
		return fail("prompt is empty")
	case len(c.Prompt) > maxPromptLen:
		return fail("prompt exceeds 500 characters")
	case c.XP < 1 || c.XP > maxXP:
		return fail("xp must be between 1 and 100")
	}
	if needsAnswer(c.Type) && c.Answer == "" {
		return fail("answer is required for " + string(c.Type))
	}
	return nil
}

// needsAnswer reports whether a type is graded against a fixed answer.
func needsAnswer(t challenge.Type) bool {
	switch t {
	case challenge.TypeFillBlank, challenge.TypeMultipleChoice, challenge.TypeListening:
		return true
	}
	return false
}
