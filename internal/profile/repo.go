package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhisek/lingoloop/internal/challenge"
	"github.com/abhisek/lingoloop/internal/kv"
)

// ErrNotFound is returned when no profile is stored for a user. It matches
// kv.ErrNotFound under errors.Is.
var ErrNotFound = fmt.Errorf("profile not found: %w", kv.ErrNotFound)

// ErrInvalid is returned by Save when the profile fails validation.
var ErrInvalid = errors.New("invalid profile")

// Repo stores profiles in a kv.Store.
type Repo struct {
	kv kv.Store
}

// NewRepo creates a profile repository over store.
func NewRepo(store kv.Store) *Repo {
	return &Repo{kv: store}
}

// Key returns the kv key holding userID's profile.
func Key(userID string) string {
	return "profile:" + userID
}

// Load returns the stored profile for userID.
func (r *Repo) Load(ctx context.Context, userID string) (*Profile, error) {
	raw, err := r.kv.Get(ctx, Key(userID))
	if errors.Is(err, kv.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	var p Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return &p, nil
}

// Save normalizes and validates p, then overwrites userID's profile.
func (r *Repo) Save(ctx context.Context, userID string, p *Profile) error {
	p.Normalize()
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := r.kv.Set(ctx, Key(userID), string(data)); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// Delete removes userID's profile. Deleting a missing profile is not an error.
func (r *Repo) Delete(ctx context.Context, userID string) error {
	if err := r.kv.Remove(ctx, Key(userID)); err != nil && !errors.Is(err, kv.ErrNotFound) {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}

// Level returns userID's declared level. It satisfies
// performance.LevelSource.
func (r *Repo) Level(ctx context.Context, userID string) (challenge.Level, error) {
	p, err := r.Load(ctx, userID)
	if err != nil {
		return "", err
	}
	return p.LevelOrDefault(), nil
}
