package cmd

import (
	"testing"

	"github.com/abhisek/lingoloop/internal/store"
)

func TestFilterPurpose(t *testing.T) {
	events := []store.LLMEvent{
		{ID: 4, LLMRequestEventData: store.LLMRequestEventData{Purpose: "challenge-gen"}},
		{ID: 3, LLMRequestEventData: store.LLMRequestEventData{Purpose: "unknown"}},
		{ID: 2, LLMRequestEventData: store.LLMRequestEventData{Purpose: "challenge-gen"}},
		{ID: 1, LLMRequestEventData: store.LLMRequestEventData{Purpose: "challenge-gen"}},
	}

	if got := filterPurpose(events, "", 1); len(got) != 4 {
		t.Errorf("no purpose: got %d events, want all 4", len(got))
	}

	got := filterPurpose(events, "challenge-gen", 2)
	if len(got) != 2 || got[0].ID != 4 || got[1].ID != 2 {
		t.Errorf("got %+v, want IDs 4 and 2", got)
	}

	if got := filterPurpose(events, "other", 5); len(got) != 0 {
		t.Errorf("got %d events, want 0", len(got))
	}
}

func TestFormatCost(t *testing.T) {
	if got := formatCost(0.004); got != "$0.0040" {
		t.Errorf("formatCost(0.004) = %q", got)
	}
	if got := formatCost(1.5); got != "$1.50" {
		t.Errorf("formatCost(1.5) = %q", got)
	}
}
