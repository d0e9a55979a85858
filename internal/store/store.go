package store

import (
	"context"
	"errors"

	"github.com/margadarshak/margadarshak-api/internal"
)

var ErrNotFound = errors.New("profile not found")

// ProfileStore persists one profile document per user id.
type ProfileStore interface {
	// Put creates or replaces the document for p.UserID.
	Put(ctx context.Context, p internal.UserProfile) error
	// Get returns ErrNotFound when no document exists.
	Get(ctx context.Context, userID string) (internal.UserProfile, error)
	// Update applies fn to the stored document atomically and saves the result.
	Update(ctx context.Context, userID string, fn func(*internal.UserProfile) error) (internal.UserProfile, error)
	Close() error
}

func cloneProfile(p internal.UserProfile) internal.UserProfile {
	p.PreferredCollegeType = append([]string(nil), p.PreferredCollegeType...)
	p.LocationPreference = append([]string(nil), p.LocationPreference...)
	if p.MaxBudget != nil {
		v := *p.MaxBudget
		p.MaxBudget = &v
	}
	if p.MinBudget != nil {
		v := *p.MinBudget
		p.MinBudget = &v
	}
	return p
}
