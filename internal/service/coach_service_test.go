package service

import (
	"alcyxob/coach-app/internal/domain"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCoachFixture(t *testing.T) (*fixture, CoachService) {
	t.Helper()
	f := newFixture(t)
	coaches := NewCoachService(&memCoachRepo{s: f.store}, &memUserRepo{s: f.store})
	return f, coaches
}

func TestListCoachesStripsPasswordHash(t *testing.T) {
	f, coaches := newCoachFixture(t)

	for i := range f.store.users {
		f.store.users[i].PasswordHash = "bcrypt-stuff"
	}

	details, err := coaches.ListCoaches(context.Background())
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, f.coachUser.ID, details[0].User.ID)
	assert.Empty(t, details[0].User.PasswordHash)
}

func TestUpdateCoachProfileWelcomeSettings(t *testing.T) {
	f, coaches := newCoachFixture(t)

	updated, err := coaches.UpdateProfile(context.Background(), f.coachUser.ID, "Marathon specialist.", domain.CoachSettings{
		SendWelcomeMessage: true,
		WelcomeMessage:     "Hi {athlete_name}, let's get to work.",
	})
	require.NoError(t, err)
	assert.Equal(t, "Marathon specialist.", updated.Description)
	assert.True(t, updated.Settings.SendWelcomeMessage)

	// Persisted, not just returned.
	stored, err := coaches.GetByUserID(context.Background(), f.coachUser.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hi {athlete_name}, let's get to work.", stored.Settings.WelcomeMessage)
}

func TestUpdateCoachProfileRequiresCoach(t *testing.T) {
	f, coaches := newCoachFixture(t)

	_, err := coaches.UpdateProfile(context.Background(), f.athleteUser.ID, "nope", domain.CoachSettings{})
	assert.ErrorIs(t, err, ErrNotACoach)
}
