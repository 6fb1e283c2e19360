package contentgen

import (
	"strings"
	"testing"

	"github.com/abhisek/lingoloop/internal/challenge"
)

func validMC() *challenge.Challenge {
	return &challenge.Challenge{
		ID:      "gen-1",
		Type:    challenge.TypeMultipleChoice,
		Topic:   "greetings",
		Level:   challenge.LevelBeginner,
		Title:   "Say hello",
		Prompt:  "Which one means hello?",
		Options: []string{"hola", "adiós", "gracias"},
		Answer:  "hola",
		XP:      10,
	}
}

func TestStructural_Valid(t *testing.T) {
	if err := (&StructuralValidator{}).Validate(validMC()); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestStructural_Failures(t *testing.T) {
	cases := map[string]func(c *challenge.Challenge){
		"empty title":    func(c *challenge.Challenge) { c.Title = "" },
		"long title":     func(c *challenge.Challenge) { c.Title = strings.Repeat("a", 121) },
		"empty prompt":   func(c *challenge.Challenge) { c.Prompt = "" },
		"long prompt":    func(c *challenge.Challenge) { c.Prompt = strings.Repeat("a", 501) },
		"zero xp":        func(c *challenge.Challenge) { c.XP = 0 },
		"too much xp":    func(c *challenge.Challenge) { c.XP = 101 },
		"missing answer": func(c *challenge.Challenge) { c.Answer = "" },
	}
	for name, mutate := range cases {
		c := validMC()
		mutate(c)
		err := (&StructuralValidator{}).Validate(c)
		if err == nil {
			t.Errorf("%s: expected error", name)
			continue
		}
		if err.Validator != "structural" || err.ChallengeID != "gen-1" {
			t.Errorf("%s: err = %+v", name, err)
		}
	}
}

func TestStructural_IRLNeedsNoAnswer(t *testing.T) {
	c := &challenge.Challenge{Type: challenge.TypeIRL, Title: "Order lunch", Prompt: "Order lunch in Spanish.", XP: 20}
	if err := (&StructuralValidator{}).Validate(c); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestOptions_MultipleChoice(t *testing.T) {
	cases := map[string]struct {
		options []string
		answer  string
		ok      bool
	}{
		"three":         {[]string{"a", "b", "c"}, "a", true},
		"five":          {[]string{"a", "b", "c", "d", "e"}, "e", true},
		"two":           {[]string{"a", "b"}, "a", false},
		"six":           {[]string{"a", "b", "c", "d", "e", "f"}, "a", false},
		"answer absent": {[]string{"a", "b", "c"}, "z", false},
		"duplicate":     {[]string{"a", "A ", "c"}, "a", false},
		"blank option":  {[]string{"a", " ", "c"}, "a", false},
	}
	for name, tc := range cases {
		c := validMC()
		c.Options, c.Answer = tc.options, tc.answer
		err := (&OptionsValidator{}).Validate(c)
		if (err == nil) != tc.ok {
			t.Errorf("%s: err = %v, want ok=%v", name, err, tc.ok)
		}
	}
}

func TestOptions_FillBlank(t *testing.T) {
	c := &challenge.Challenge{Type: challenge.TypeFillBlank, Prompt: "Yo ___ estudiante."}
	if err := (&OptionsValidator{}).Validate(c); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	c.Prompt = "Yo soy estudiante."
	if err := (&OptionsValidator{}).Validate(c); err == nil {
		t.Fatal("expected error for prompt without blank")
	}
}

func TestOptions_OnlyForMultipleChoice(t *testing.T) {
	c := &challenge.Challenge{Type: challenge.TypeListening, Prompt: "Listen", Options: []string{"a", "b", "c"}}
	if err := (&OptionsValidator{}).Validate(c); err == nil {
		t.Fatal("expected error for options on listening")
	}
}
