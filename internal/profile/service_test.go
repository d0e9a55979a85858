package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/margadarshak/margadarshak-api/internal"
	"github.com/margadarshak/margadarshak-api/internal/store"
)

func newTestService(t *testing.T) (*Service, *time.Time) {
	t.Helper()
	clock := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	s := NewService(store.NewMemoryStore(), zerolog.Nop())
	s.now = func() time.Time { return clock }
	return s, &clock
}

func ptr[T any](v T) *T { return &v }

func TestCreate_Complete(t *testing.T) {
	s, clock := newTestService(t)

	p, err := s.Create(context.Background(), "u-1", internal.UserProfile{
		UserID:              "spoofed",
		Name:                "Rohan",
		Email:               "rohan@example.com",
		ReservationCategory: "NT-B",
		Gender:              "Male",
		Domicile:            "Maharashtra",
	})
	require.NoError(t, err)

	assert.Equal(t, "u-1", p.UserID)
	assert.True(t, p.IsProfileComplete)
	assert.Equal(t, *clock, p.CreatedAt)
	assert.Equal(t, *clock, p.UpdatedAt)

	got, err := s.Get(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestCreate_Incomplete(t *testing.T) {
	s, _ := newTestService(t)

	p, err := s.Create(context.Background(), "u-2", internal.UserProfile{Name: "Meera", Email: "m@example.com"})
	require.NoError(t, err)
	assert.False(t, p.IsProfileComplete)
}

func TestCreate_Invalid(t *testing.T) {
	s, _ := newTestService(t)

	tests := []struct {
		name  string
		in    internal.UserProfile
		field string
	}{
		{"category", internal.UserProfile{ReservationCategory: "XYZ"}, "reservationCategory"},
		{"gender", internal.UserProfile{Gender: "male"}, "gender"},
		{"location", internal.UserProfile{LocationPreference: []string{"Pune", "Goa"}}, "locationPreference"},
		{"college type", internal.UserProfile{PreferredCollegeType: []string{"Deemed"}}, "preferredCollegeType"},
		{"budget range", internal.UserProfile{MinBudget: ptr(5.0), MaxBudget: ptr(1.0)}, "minBudget"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Create(context.Background(), "u", tt.in)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestUpdate_MergesAndRecomputes(t *testing.T) {
	s, clock := newTestService(t)
	ctx := context.Background()
	_, err := s.Create(ctx, "u-1", internal.UserProfile{
		Name:               "Rohan",
		Email:              "rohan@example.com",
		LocationPreference: []string{"Pune"},
	})
	require.NoError(t, err)

	*clock = clock.Add(time.Hour)
	p, err := s.Update(ctx, "u-1", internal.ProfileUpdate{
		ReservationCategory: ptr("OBC"),
		Gender:              ptr("Prefer not to say"),
		Domicile:            ptr("Outside Maharashtra"),
		HostelRequired:      ptr(true),
	})
	require.NoError(t, err)

	assert.Equal(t, "Rohan", p.Name)
	assert.Equal(t, []string{"Pune"}, p.LocationPreference)
	assert.True(t, p.HostelRequired)
	assert.True(t, p.IsProfileComplete)
	assert.Equal(t, *clock, p.UpdatedAt)
	assert.Equal(t, clock.Add(-time.Hour), p.CreatedAt)
}

func TestUpdate_Errors(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	_, err := s.Update(ctx, "ghost", internal.ProfileUpdate{Name: ptr("x")})
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.Create(ctx, "u-1", internal.UserProfile{Name: "Rohan"})
	require.NoError(t, err)
	_, err = s.Update(ctx, "u-1", internal.ProfileUpdate{Domicile: ptr("Goa")})
	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))

	got, err := s.Get(ctx, "u-1")
	require.NoError(t, err)
	assert.Empty(t, got.Domicile)
}

func TestComparisonFactors(t *testing.T) {
	p := internal.UserProfile{
		ReservationCategory:         "SC",
		Gender:                      "Female",
		Domicile:                    "Maharashtra",
		MaxBudget:                   ptr(300000.0),
		HostelRequired:              true,
		PrioritizeGovernmentCollege: true,
	}

	f := ComparisonFactors(p)

	assert.Equal(t, "SC", f.Category)
	assert.Equal(t, 300000.0, *f.MaxBudget)
	assert.True(t, f.HostelRequired)
	assert.True(t, f.PrioritizeGovernmentCollege)
	assert.NotNil(t, f.PreferredCollegeType)
	assert.NotNil(t, f.LocationPreference)
}
