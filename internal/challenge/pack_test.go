package challenge

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestSeed_Valid(t *testing.T) {
	p, err := Seed()
	if err != nil {
		t.Fatalf("seed pack: %v", err)
	}
	if len(p.Challenges) == 0 {
		t.Fatal("seed pack is empty")
	}

	types := make(map[Type]bool)
	levels := make(map[Level]bool)
	for _, c := range p.Challenges {
		types[c.Type] = true
		levels[c.Level] = true
	}
	for _, ty := range AllTypes() {
		if !types[ty] {
			t.Errorf("seed pack has no %s challenge", ty)
		}
	}
	for _, l := range AllLevels() {
		if !levels[l] {
			t.Errorf("seed pack has no %s challenge", l)
		}
	}
}

func TestParsePack_RejectsMajorVersion(t *testing.T) {
	_, err := ParsePack([]byte(`{"version":"v2.0.0","challenges":[]}`))
	if err == nil || !strings.Contains(err.Error(), "unsupported pack version") {
		t.Fatalf("expected version error, got %v", err)
	}
}

func TestParsePack_RejectsInvalidVersion(t *testing.T) {
	_, err := ParsePack([]byte(`{"version":"1.0","challenges":[]}`))
	if err == nil || !strings.Contains(err.Error(), "invalid pack version") {
		t.Fatalf("expected invalid version error, got %v", err)
	}
}

func TestParsePack_ReportsAllProblems(t *testing.T) {
	_, err := ParsePack([]byte(`{"version":"v1.2.0","challenges":[
		{"id":"a","type":"listening","topic":"cafe","level":"beginner"},
		{"id":"a","type":"essay","topic":"cafe","level":"expert"},
		{"id":"","type":"listening","topic":"cafe","level":"beginner"}
	]}`))
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"duplicate challenge id", "unknown type", "unknown level", "has no id"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
}

func TestSavePack_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "packs", "mine.json")
	in := &Pack{
		Version: "v1.0.0",
		Name:    "mine",
		Challenges: []Challenge{
			{ID: "x1", Type: TypeIRL, Topic: "garden", Level: LevelAdvanced, AgeGroup: AgeGroupAll, Title: "Plants"},
		},
	}
	if err := SavePack(path, in); err != nil {
		t.Fatalf("SavePack: %v", err)
	}
	out, err := LoadPack(path)
	if err != nil {
		t.Fatalf("LoadPack: %v", err)
	}
	if len(out.Challenges) != 1 || out.Challenges[0].Topic != "garden" {
		t.Errorf("unexpected pack: %+v", out)
	}
}
