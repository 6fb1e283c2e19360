package challenge

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/semver"
)

// PackMajor is the only pack format major version this build understands.
const PackMajor = "v1"

// Pack is a versioned bundle of challenges, either the embedded seed or a
// file authored locally (see contentgen).
type Pack struct {
	Version    string      `json:"version"`
	Name       string      `json:"name,omitempty"`
	Challenges []Challenge `json:"challenges"`
}

// ParsePack decodes and validates a pack.
func ParsePack(data []byte) (*Pack, error) {
	var p Pack
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode pack: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// LoadPack reads and validates the pack at path.
func LoadPack(path string) (*Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pack: %w", err)
	}
	p, err := ParsePack(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return p, nil
}

// SavePack validates p and writes it to path, creating parent directories.
func SavePack(path string, p *Pack) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create pack dir: %w", err)
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode pack: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write pack: %w", err)
	}
	return nil
}

// Validate checks the pack version and every challenge. It reports all
// problems found in one error.
func (p *Pack) Validate() error {
	var errs []string

	switch {
	case !semver.IsValid(p.Version):
		errs = append(errs, fmt.Sprintf("invalid pack version %q", p.Version))
	case semver.Major(p.Version) != PackMajor:
		errs = append(errs, fmt.Sprintf("unsupported pack version %s (want %s.x)", p.Version, PackMajor))
	}

	seen := make(map[string]bool, len(p.Challenges))
	for i, c := range p.Challenges {
		if c.ID == "" {
			errs = append(errs, fmt.Sprintf("challenge #%d has no id", i))
			continue
		}
		if seen[c.ID] {
			errs = append(errs, fmt.Sprintf("duplicate challenge id %q", c.ID))
		}
		seen[c.ID] = true
		if !c.Type.Valid() {
			errs = append(errs, fmt.Sprintf("challenge %q has unknown type %q", c.ID, c.Type))
		}
		if !c.Level.Valid() {
			errs = append(errs, fmt.Sprintf("challenge %q has unknown level %q", c.ID, c.Level))
		}
		if c.Topic == "" {
			errs = append(errs, fmt.Sprintf("challenge %q has no topic", c.ID))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid pack:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
