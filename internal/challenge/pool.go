package challenge

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed seed.json
var seedJSON []byte

// Seed returns the pack bundled with the binary.
func Seed() (*Pack, error) {
	p, err := ParsePack(seedJSON)
	if err != nil {
		return nil, fmt.Errorf("seed pack: %w", err)
	}
	return p, nil
}

// Pool is the in-memory challenge pool the recommender draws from.
// Order is preserved: it is the tie-break order for ranking.
type Pool struct {
	items []Challenge
	byID  map[string]int
}

// NewPool merges packs in order. A challenge whose ID was already added
// replaces the earlier one in place.
func NewPool(packs ...*Pack) *Pool {
	p := &Pool{byID: make(map[string]int)}
	for _, pk := range packs {
		if pk == nil {
			continue
		}
		p.Add(pk.Challenges...)
	}
	return p
}

// Add appends challenges, replacing existing entries with the same ID.
func (p *Pool) Add(cs ...Challenge) {
	for _, c := range cs {
		if i, ok := p.byID[c.ID]; ok {
			p.items[i] = c.Clone()
			continue
		}
		p.byID[c.ID] = len(p.items)
		p.items = append(p.items, c.Clone())
	}
}

// Get returns the challenge with the given ID.
func (p *Pool) Get(id string) (Challenge, error) {
	i, ok := p.byID[id]
	if !ok {
		return Challenge{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return p.items[i].Clone(), nil
}

// All returns a copy of every challenge in pool order.
func (p *Pool) All() []Challenge {
	out := make([]Challenge, len(p.items))
	for i, c := range p.items {
		out[i] = c.Clone()
	}
	return out
}

// Len returns the number of challenges.
func (p *Pool) Len() int { return len(p.items) }

// Topics returns the distinct topics in the pool, sorted.
func (p *Pool) Topics() []string {
	set := make(map[string]bool)
	for _, c := range p.items {
		set[c.Topic] = true
	}
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// LoadDir reads every *.json pack in dir, sorted by file name.
// A missing directory yields no packs.
func LoadDir(dir string) ([]*Pack, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read pack dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	packs := make([]*Pack, 0, len(names))
	for _, n := range names {
		pk, err := LoadPack(filepath.Join(dir, n))
		if err != nil {
			return nil, err
		}
		packs = append(packs, pk)
	}
	return packs, nil
}

// LoadPool builds a pool from the seed pack followed by the packs in dir.
func LoadPool(dir string) (*Pool, error) {
	seed, err := Seed()
	if err != nil {
		return nil, err
	}
	packs := []*Pack{seed}
	if dir != "" {
		extra, err := LoadDir(dir)
		if err != nil {
			return nil, err
		}
		packs = append(packs, extra...)
	}
	return NewPool(packs...), nil
}
