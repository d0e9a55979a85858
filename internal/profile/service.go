// Package profile manages student profiles used to personalize college comparisons.
package profile

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/margadarshak/margadarshak-api/internal"
	"github.com/margadarshak/margadarshak-api/internal/store"
)

var (
	ReservationCategories = []string{"General", "OBC", "SC", "ST", "EWS", "SEBC", "NT-A", "NT-B", "NT-C", "NT-D", "VJ-A", "SBC"}
	Genders               = []string{"Male", "Female", "Other", "Prefer not to say"}
	Domiciles             = []string{"Maharashtra", "Outside Maharashtra"}
	CollegeTypes          = []string{"Government", "Private", "Aided", "Autonomous", "Any"}
	Locations             = []string{"Mumbai", "Pune", "Nagpur", "Nashik", "Aurangabad", "Any"}
)

// ValidationError names the first offending field.
type ValidationError struct {
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Field, e.Value)
}

type Service struct {
	store store.ProfileStore
	now   func() time.Time
	log   zerolog.Logger
}

func NewService(s store.ProfileStore, log zerolog.Logger) *Service {
	return &Service{
		store: s,
		now:   time.Now,
		log:   log.With().Str("component", "profile").Logger(),
	}
}

// Create writes a fresh profile for userID, replacing any existing one.
func (s *Service) Create(ctx context.Context, userID string, data internal.UserProfile) (internal.UserProfile, error) {
	if err := validate(data); err != nil {
		return internal.UserProfile{}, err
	}
	now := s.now().UTC()
	data.UserID = userID
	data.CreatedAt = now
	data.UpdatedAt = now
	data.IsProfileComplete = IsComplete(data)

	if err := s.store.Put(ctx, data); err != nil {
		return internal.UserProfile{}, fmt.Errorf("create profile: %w", err)
	}
	s.log.Info().Str("user_id", userID).Bool("complete", data.IsProfileComplete).Msg("profile created")
	return data, nil
}

// Get returns store.ErrNotFound when the user has no profile.
func (s *Service) Get(ctx context.Context, userID string) (internal.UserProfile, error) {
	return s.store.Get(ctx, userID)
}

// Update merges the provided fields into the stored profile.
func (s *Service) Update(ctx context.Context, userID string, patch internal.ProfileUpdate) (internal.UserProfile, error) {
	p, err := s.store.Update(ctx, userID, func(p *internal.UserProfile) error {
		apply(p, patch)
		if err := validate(*p); err != nil {
			return err
		}
		p.UpdatedAt = s.now().UTC()
		p.IsProfileComplete = IsComplete(*p)
		return nil
	})
	if err != nil {
		return internal.UserProfile{}, err
	}
	s.log.Info().Str("user_id", userID).Bool("complete", p.IsProfileComplete).Msg("profile updated")
	return p, nil
}

// IsComplete reports whether every field needed for personalization is set.
func IsComplete(p internal.UserProfile) bool {
	for _, v := range []string{p.Name, p.Email, p.ReservationCategory, p.Gender, p.Domicile} {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

// ComparisonFactors projects the personalization block sent to the compare backend.
func ComparisonFactors(p internal.UserProfile) internal.ComparisonFactors {
	return internal.ComparisonFactors{
		Category:                    p.ReservationCategory,
		Gender:                      p.Gender,
		Domicile:                    p.Domicile,
		MaxBudget:                   p.MaxBudget,
		HostelRequired:              p.HostelRequired,
		PreferredCollegeType:        nonNil(p.PreferredCollegeType),
		LocationPreference:          nonNil(p.LocationPreference),
		PreferSmallCampus:           p.PreferSmallCampus,
		PrioritizeGovernmentCollege: p.PrioritizeGovernmentCollege,
	}
}

func apply(p *internal.UserProfile, u internal.ProfileUpdate) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Email != nil {
		p.Email = *u.Email
	}
	if u.Phone != nil {
		p.Phone = *u.Phone
	}
	if u.ReservationCategory != nil {
		p.ReservationCategory = *u.ReservationCategory
	}
	if u.Gender != nil {
		p.Gender = *u.Gender
	}
	if u.Domicile != nil {
		p.Domicile = *u.Domicile
	}
	if u.PreferredCollegeType != nil {
		p.PreferredCollegeType = *u.PreferredCollegeType
	}
	if u.LocationPreference != nil {
		p.LocationPreference = *u.LocationPreference
	}
	if u.MaxBudget != nil {
		p.MaxBudget = u.MaxBudget
	}
	if u.MinBudget != nil {
		p.MinBudget = u.MinBudget
	}
	if u.HostelRequired != nil {
		p.HostelRequired = *u.HostelRequired
	}
	if u.PreferSmallCampus != nil {
		p.PreferSmallCampus = *u.PreferSmallCampus
	}
	if u.PrioritizeGovernmentCollege != nil {
		p.PrioritizeGovernmentCollege = *u.PrioritizeGovernmentCollege
	}
}

// validate accepts empty enum fields; only set values must be known.
func validate(p internal.UserProfile) error {
	checks := []struct {
		field   string
		value   string
		allowed []string
	}{
		{"reservationCategory", p.ReservationCategory, ReservationCategories},
		{"gender", p.Gender, Genders},
		{"domicile", p.Domicile, Domiciles},
	}
	for _, c := range checks {
		if c.value != "" && !slices.Contains(c.allowed, c.value) {
			return &ValidationError{Field: c.field, Value: c.value}
		}
	}
	for _, v := range p.PreferredCollegeType {
		if !slices.Contains(CollegeTypes, v) {
			return &ValidationError{Field: "preferredCollegeType", Value: v}
		}
	}
	for _, v := range p.LocationPreference {
		if !slices.Contains(Locations, v) {
			return &ValidationError{Field: "locationPreference", Value: v}
		}
	}
	if p.MaxBudget != nil && *p.MaxBudget < 0 {
		return &ValidationError{Field: "maxBudget", Value: fmt.Sprint(*p.MaxBudget)}
	}
	if p.MinBudget != nil && *p.MinBudget < 0 {
		return &ValidationError{Field: "minBudget", Value: fmt.Sprint(*p.MinBudget)}
	}
	if p.MinBudget != nil && p.MaxBudget != nil && *p.MinBudget > *p.MaxBudget {
		return &ValidationError{Field: "minBudget", Value: fmt.Sprint(*p.MinBudget)}
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
