package contentgen

import (
	"fmt"

	"github.com/abhisek/lingoloop/internal/challenge"
)

// Validator checks one generated challenge.
type Validator interface {
	Name() string
	Validate(c *challenge.Challenge) *ValidationError
}

// ValidationError describes why a challenge was rejected.
type ValidationError struct {
	Validator   string
	ChallengeID string
	Message     string
}

func (e *ValidationError) Error() string {
	if e.ChallengeID != "" {
		return fmt.Sprintf("validator %q: challenge %s: %s", e.Validator, e.ChallengeID, e.Message)
	}
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}
