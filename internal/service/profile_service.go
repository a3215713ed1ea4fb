package service

import (
	"context"
	"errors"

	"pet-adoption-server/config"
	"pet-adoption-server/internal/model"
	"pet-adoption-server/internal/ports"
	"pet-adoption-server/internal/repository"
	"pet-adoption-server/internal/util"
)

// ErrUserNotFound — профиль не найден.
var ErrUserNotFound = errors.New("пользователь не найден")

type ProfileService struct {
	db            *config.Database
	userRepo      ports.UserRepository
	petRepository ports.PetRepository
}

func NewProfileService(db *config.Database, userRepo ports.UserRepository, petRepository ports.PetRepository) *ProfileService {
	return &ProfileService{db: db, userRepo: userRepo, petRepository: petRepository}
}

// GetMyProfile : профиль текущего пользователя вместе с его карточками
func (s *ProfileService) GetMyProfile(ctx context.Context, userUUID string) (*model.Profile, error) {
	user, err := s.userRepo.FindByUUID(ctx, s.db, userUUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, util.LogError("[ProfileService] не удалось получить профиль", err)
	}

	// хэш наружу не отдается
	user.PasswordHash = ""

	pets, err := s.petRepository.List(ctx, s.db, model.PetFilter{CreatedBy: userUUID, Limit: 100})
	if err != nil {
		return nil, util.LogError("[ProfileService] не удалось получить карточки пользователя", err)
	}

	return &model.Profile{User: user, Pets: pets}, nil
}

// UpdateMyProfile : частичное обновление name/phone_number/location
func (s *ProfileService) UpdateMyProfile(ctx context.Context, userUUID string, patch model.ProfilePatch) (*model.User, error) {
	updated, err := s.userRepo.UpdateProfile(ctx, s.db, userUUID, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrConflict
		}
		return nil, util.LogError("[ProfileService] не удалось обновить профиль", err)
	}

	updated.PasswordHash = ""
	return updated, nil
}
