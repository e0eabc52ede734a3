package service

import (
	"context"
	"testing"

	"namdo-bot-be/internal/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_Profile(t *testing.T) {
	factory := setupFactory(t)
	user := seedUser(t, factory, "profile")
	svc := NewUserService(factory)
	ctx := context.Background()

	got, err := svc.GetProfile(ctx, user.Id)
	require.NoError(t, err)
	assert.Equal(t, "profile", got.Username)

	name := "새 이름"
	updated, err := svc.UpdateProfile(ctx, user.Id, &dto.UpdateProfileRequest{FullName: &name})
	require.NoError(t, err)
	assert.Equal(t, name, updated.FullName)
	assert.Nil(t, updated.ProfilePicture)

	_, err = svc.GetProfile(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_Preferences(t *testing.T) {
	factory := setupFactory(t)
	user := seedUser(t, factory, "prefs")
	svc := NewUserService(factory)
	ctx := context.Background()

	first, err := svc.SavePreference(ctx, user.Id, &dto.PreferenceRequest{PreferenceType: "energy_preference", PreferenceValue: "활기"})
	require.NoError(t, err)
	second, err := svc.SavePreference(ctx, user.Id, &dto.PreferenceRequest{PreferenceType: "energy_preference", PreferenceValue: "휴식"})
	require.NoError(t, err)
	assert.Equal(t, first.Id, second.Id)

	_, err = svc.SavePreference(ctx, user.Id, &dto.PreferenceRequest{PreferenceType: "default_companion", PreferenceValue: "친구"})
	require.NoError(t, err)

	prefs, err := svc.GetPreferences(ctx, user.Id)
	require.NoError(t, err)
	require.Len(t, prefs, 2)
	assert.Equal(t, "default_companion", prefs[0].PreferenceType)
	assert.Equal(t, "energy_preference", prefs[1].PreferenceType)
	assert.Equal(t, "휴식", prefs[1].PreferenceValue)
}
