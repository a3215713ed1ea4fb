package service

import (
	"context"
	"testing"

	"pet-adoption-server/internal/model"
	"pet-adoption-server/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetMyProfile_StripsPasswordHash(t *testing.T) {
	userRepo := new(MockUserRepository)
	petRepo := new(MockPetRepository)
	profileService := NewProfileService(nil, userRepo, petRepo)

	userRepo.On("FindByUUID", mock.Anything, mock.Anything, "user-1").
		Return(activeUser("user-1"), nil)
	petRepo.On("List", mock.Anything, mock.Anything, mock.MatchedBy(func(filter model.PetFilter) bool {
		return filter.CreatedBy == "user-1"
	})).Return([]model.Pet{*ownedPet("pet-1", "user-1")}, nil)

	profile, err := profileService.GetMyProfile(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Empty(t, profile.User.PasswordHash)
	assert.Len(t, profile.Pets, 1)
}

func TestGetMyProfile_NotFound(t *testing.T) {
	userRepo := new(MockUserRepository)
	petRepo := new(MockPetRepository)
	profileService := NewProfileService(nil, userRepo, petRepo)

	userRepo.On("FindByUUID", mock.Anything, mock.Anything, "missing").
		Return(nil, repository.ErrNotFound)

	_, err := profileService.GetMyProfile(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateMyProfile_PhoneConflict(t *testing.T) {
	userRepo := new(MockUserRepository)
	petRepo := new(MockPetRepository)
	profileService := NewProfileService(nil, userRepo, petRepo)

	phone := "+15550002"
	userRepo.On("UpdateProfile", mock.Anything, mock.Anything, "user-1", mock.Anything).
		Return(nil, repository.ErrConflict)

	_, err := profileService.UpdateMyProfile(context.Background(), "user-1", model.ProfilePatch{PhoneNumber: &phone})

	assert.ErrorIs(t, err, ErrConflict)
}

func TestUpdateMyProfile_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	petRepo := new(MockPetRepository)
	profileService := NewProfileService(nil, userRepo, petRepo)

	name := "Ana Maria"
	updated := activeUser("user-1")
	updated.Name = name
	userRepo.On("UpdateProfile", mock.Anything, mock.Anything, "user-1", model.ProfilePatch{Name: &name}).
		Return(updated, nil)

	user, err := profileService.UpdateMyProfile(context.Background(), "user-1", model.ProfilePatch{Name: &name})

	require.NoError(t, err)
	assert.Equal(t, name, user.Name)
	assert.Empty(t, user.PasswordHash)
}
