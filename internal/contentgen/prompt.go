package contentgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/lingoloop/internal/challenge"
)

const systemPrompt = `You write short practice challenges for a language learning app.

Rules:
- Every challenge must fit the requested type, topic, level and audience.
- Keep prompts self-contained and under 500 characters. Titles stay under 120 characters.
- pronunciation: the prompt is a phrase to say aloud; the answer is the phrase.
- listening: the prompt describes audio or a transcript; the answer is what was heard.
- fill_blank: the prompt is a sentence with exactly one gap written as ___; the answer fills the gap.
- multiple_choice: give 3 to 5 distinct options, exactly one correct; the answer is the exact text of that option. Distractors should reflect common learner mistakes.
- irl: a small real-world task; leave the answer empty.
- Options must be an empty array unless the type is multiple_choice.
- Award 10 xp for beginner, 15 for intermediate and 20 for advanced unless the task is unusually long.
- Do not repeat anything from the "already in the pool" list.`

var typeHints = map[challenge.Type]string{
	challenge.TypePronunciation:  "say a phrase aloud",
	challenge.TypeListening:      "understand spoken language",
	challenge.TypeFillBlank:      "complete a sentence",
	challenge.TypeMultipleChoice: "pick the right option",
	challenge.TypeIRL:            "do something in the real world",
}

func buildUserMessage(in Input, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Type: %s (%s)\n", in.Type, typeHints[in.Type])
	fmt.Fprintf(&b, "Topic: %s\n", in.Topic)
	fmt.Fprintf(&b, "Level: %s\n", in.Level)
	fmt.Fprintf(&b, "Audience: %s\n", audience(in.ageGroup()))
	fmt.Fprintf(&b, "Count: %d\n", in.count())

	b.WriteString("\nAlready in the pool:\n")
	b.WriteString(buildAvoid(in.Avoid, cfg.MaxAvoid))
	return b.String()
}

func audience(g challenge.AgeGroup) string {
	switch g {
	case challenge.AgeGroupChild:
		return "children"
	case challenge.AgeGroupTeen:
		return "teenagers"
	case challenge.AgeGroupAdult:
		return "adults"
	default:
		return "any age"
	}
}

// buildAvoid formats the most recent max entries, or "None".
func buildAvoid(avoid []string, max int) string {
	if len(avoid) == 0 {
		return "None"
	}
	if max > 0 && len(avoid) > max {
		avoid = avoid[len(avoid)-max:]
	}

	var b strings.Builder
	for i, a := range avoid {
		fmt.Fprintf(&b, "%d. %s\n", i+1, a)
	}
	return strings.TrimRight(b.String(), "\n")
}
