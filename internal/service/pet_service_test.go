package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"pet-adoption-server/internal/model"
	"pet-adoption-server/internal/repository"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPetRepository struct {
	mock.Mock

	rollbackCalled bool
	commitCalled   bool
}

func (m *MockPetRepository) Create(ctx context.Context, exec sqlx.ExtContext, pet *model.Pet) (*model.Pet, error) {
	args := m.Called(ctx, exec, pet)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Pet), args.Error(1)
}

func (m *MockPetRepository) GetByUUID(ctx context.Context, exec sqlx.ExtContext, petUUID string) (*model.Pet, error) {
	args := m.Called(ctx, exec, petUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Pet), args.Error(1)
}

func (m *MockPetRepository) List(ctx context.Context, exec sqlx.ExtContext, filter model.PetFilter) ([]model.Pet, error) {
	args := m.Called(ctx, exec, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Pet), args.Error(1)
}

func (m *MockPetRepository) Update(ctx context.Context, exec sqlx.ExtContext, petUUID string, patch map[string]interface{}) (*model.Pet, error) {
	args := m.Called(ctx, exec, petUUID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Pet), args.Error(1)
}

func (m *MockPetRepository) Delete(ctx context.Context, exec sqlx.ExtContext, petUUID string) error {
	args := m.Called(ctx, exec, petUUID)
	return args.Error(0)
}

func (m *MockPetRepository) AddMedia(ctx context.Context, exec sqlx.ExtContext, media *model.PetMedia) error {
	args := m.Called(ctx, exec, media)
	return args.Error(0)
}

func (m *MockPetRepository) ListMedia(ctx context.Context, exec sqlx.ExtContext, petUUID string) ([]model.PetMedia, error) {
	args := m.Called(ctx, exec, petUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PetMedia), args.Error(1)
}

func (m *MockPetRepository) DeleteMedia(ctx context.Context, exec sqlx.ExtContext, petUUID string) error {
	args := m.Called(ctx, exec, petUUID)
	return args.Error(0)
}

func (m *MockPetRepository) BeginTXx(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error) {
	args := m.Called(ctx)
	rollback := func() error {
		m.rollbackCalled = true
		return nil
	}
	commit := func() error {
		m.commitCalled = true
		return nil
	}
	return nil, rollback, commit, args.Error(0)
}

type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) SetPet(ctx context.Context, pet *model.PetWithMedia) error {
	args := m.Called(ctx, pet)
	return args.Error(0)
}

func (m *MockCacheRepository) GetPet(ctx context.Context, petUUID string) (*model.PetWithMedia, error) {
	args := m.Called(ctx, petUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PetWithMedia), args.Error(1)
}

func (m *MockCacheRepository) DeletePet(ctx context.Context, petUUID string) error {
	args := m.Called(ctx, petUUID)
	return args.Error(0)
}

type MockS3Storage struct {
	mock.Mock
}

func (m *MockS3Storage) PutObject(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	args := m.Called(ctx, key, body, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockS3Storage) GeneratePresignedGetURL(ctx context.Context, key string, expire time.Duration) (string, error) {
	args := m.Called(ctx, key, expire)
	return args.String(0), args.Error(1)
}

func (m *MockS3Storage) DeleteObject(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func newTestPetService() (*PetService, *MockPetRepository, *MockCacheRepository, *MockS3Storage) {
	petRepo := new(MockPetRepository)
	cacheRepo := new(MockCacheRepository)
	storage := new(MockS3Storage)
	return NewPetService(nil, petRepo, cacheRepo, storage), petRepo, cacheRepo, storage
}

func ownedPet(petUUID, ownerUUID string) *model.Pet {
	return &model.Pet{
		UUID:      petUUID,
		Name:      "Барсик",
		Type:      model.PetTypeCat,
		Category:  model.PetCategoryStray,
		CreatedBy: &ownerUUID,
		IsActive:  true,
	}
}

func TestCreatePetWithMedia_Success(t *testing.T) {
	petService, petRepo, _, _ := newTestPetService()

	petRepo.On("BeginTXx", mock.Anything).Return(nil)
	petRepo.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(pet *model.Pet) bool {
		return pet.CreatedBy != nil && *pet.CreatedBy == "user-1" && pet.UUID != ""
	})).Return(ownedPet("pet-1", "user-1"), nil)
	petRepo.On("AddMedia", mock.Anything, mock.Anything, mock.MatchedBy(func(media *model.PetMedia) bool {
		return media.PetUUID == "pet-1" && media.UUID != ""
	})).Return(nil)

	created, err := petService.CreatePetWithMedia(context.Background(), "user-1",
		&model.Pet{Name: "Барсик", Type: model.PetTypeCat, Category: model.PetCategoryStray},
		[]model.PetMedia{{MediaType: model.MediaTypeImage, URL: "https://bucket.s3.eu-central-1.amazonaws.com/pets/m1", IsProfile: true}},
	)

	require.NoError(t, err)
	assert.Equal(t, "pet-1", created.Pet.UUID)
	assert.Len(t, created.Media, 1)
	assert.True(t, petRepo.commitCalled)
}

func TestCreatePetWithMedia_TwoProfileMedia(t *testing.T) {
	petService, petRepo, _, _ := newTestPetService()

	_, err := petService.CreatePetWithMedia(context.Background(), "user-1",
		&model.Pet{Name: "Барсик", Type: model.PetTypeCat, Category: model.PetCategoryStray},
		[]model.PetMedia{{IsProfile: true}, {IsProfile: true}},
	)

	assert.ErrorIs(t, err, ErrTooManyProfileMedia)
	petRepo.AssertNotCalled(t, "BeginTXx", mock.Anything)
}

func TestCreatePetWithMedia_CreateFailureRollsBack(t *testing.T) {
	petService, petRepo, _, _ := newTestPetService()

	petRepo.On("BeginTXx", mock.Anything).Return(nil)
	petRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("ошибка вставки"))

	_, err := petService.CreatePetWithMedia(context.Background(), "user-1",
		&model.Pet{Name: "Барсик", Type: model.PetTypeCat, Category: model.PetCategoryStray}, nil)

	assert.Error(t, err)
	assert.True(t, petRepo.rollbackCalled)
	assert.False(t, petRepo.commitCalled)
}

func TestGetPetByUUID_CacheHit(t *testing.T) {
	petService, petRepo, cacheRepo, _ := newTestPetService()

	cached := &model.PetWithMedia{Pet: ownedPet("pet-1", "user-1")}
	cacheRepo.On("GetPet", mock.Anything, "pet-1").Return(cached, nil)

	got, err := petService.GetPetByUUID(context.Background(), "pet-1")

	require.NoError(t, err)
	assert.Equal(t, cached, got)
	petRepo.AssertNotCalled(t, "GetByUUID", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetPetByUUID_CacheMissFillsCache(t *testing.T) {
	petService, petRepo, cacheRepo, _ := newTestPetService()

	cacheRepo.On("GetPet", mock.Anything, "pet-1").Return(nil, nil)
	petRepo.On("GetByUUID", mock.Anything, mock.Anything, "pet-1").
		Return(ownedPet("pet-1", "user-1"), nil)
	petRepo.On("ListMedia", mock.Anything, mock.Anything, "pet-1").
		Return([]model.PetMedia{{UUID: "media-1", PetUUID: "pet-1"}}, nil)
	cacheRepo.On("SetPet", mock.Anything, mock.MatchedBy(func(pet *model.PetWithMedia) bool {
		return pet.Pet.UUID == "pet-1" && len(pet.Media) == 1
	})).Return(nil)

	got, err := petService.GetPetByUUID(context.Background(), "pet-1")

	require.NoError(t, err)
	assert.Equal(t, "pet-1", got.Pet.UUID)
	cacheRepo.AssertExpectations(t)
}

func TestGetPetByUUID_CacheErrorDoesNotFailRequest(t *testing.T) {
	petService, petRepo, cacheRepo, _ := newTestPetService()

	cacheRepo.On("GetPet", mock.Anything, "pet-1").Return(nil, errors.New("redis недоступен"))
	petRepo.On("GetByUUID", mock.Anything, mock.Anything, "pet-1").
		Return(ownedPet("pet-1", "user-1"), nil)
	petRepo.On("ListMedia", mock.Anything, mock.Anything, "pet-1").
		Return([]model.PetMedia{}, nil)
	cacheRepo.On("SetPet", mock.Anything, mock.Anything).Return(errors.New("redis недоступен"))

	got, err := petService.GetPetByUUID(context.Background(), "pet-1")

	require.NoError(t, err)
	assert.Equal(t, "pet-1", got.Pet.UUID)
}

func TestGetPetByUUID_NotFound(t *testing.T) {
	petService, petRepo, cacheRepo, _ := newTestPetService()

	cacheRepo.On("GetPet", mock.Anything, "missing").Return(nil, nil)
	petRepo.On("GetByUUID", mock.Anything, mock.Anything, "missing").
		Return(nil, repository.ErrNotFound)

	_, err := petService.GetPetByUUID(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrPetNotFound)
}

func TestUpdatePet_OwnerOnly(t *testing.T) {
	petService, petRepo, _, _ := newTestPetService()

	petRepo.On("GetByUUID", mock.Anything, mock.Anything, "pet-1").
		Return(ownedPet("pet-1", "owner-1"), nil)

	_, err := petService.UpdatePet(context.Background(), "pet-1", "intruder", model.RoleUser, map[string]interface{}{"name": "Мурзик"})

	assert.ErrorIs(t, err, ErrForbidden)
	petRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdatePet_AdminBypassesOwnership(t *testing.T) {
	petService, petRepo, cacheRepo, _ := newTestPetService()

	patch := map[string]interface{}{"is_active": false}
	petRepo.On("Update", mock.Anything, mock.Anything, "pet-1", patch).
		Return(ownedPet("pet-1", "owner-1"), nil)
	cacheRepo.On("DeletePet", mock.Anything, "pet-1").Return(nil)

	_, err := petService.UpdatePet(context.Background(), "pet-1", "admin-1", model.RoleAdmin, patch)

	require.NoError(t, err)
	// ADMIN не проходит проверку владельца
	petRepo.AssertNotCalled(t, "GetByUUID", mock.Anything, mock.Anything, mock.Anything)
	cacheRepo.AssertExpectations(t)
}

func TestUpdatePet_OrphanedPetForbiddenForUser(t *testing.T) {
	petService, petRepo, _, _ := newTestPetService()

	pet := ownedPet("pet-1", "owner-1")
	pet.CreatedBy = nil
	petRepo.On("GetByUUID", mock.Anything, mock.Anything, "pet-1").Return(pet, nil)

	_, err := petService.UpdatePet(context.Background(), "pet-1", "owner-1", model.RoleUser, map[string]interface{}{"name": "X"})

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestReplacePetMedia_CleansUpOldObjects(t *testing.T) {
	petService, petRepo, cacheRepo, storage := newTestPetService()

	oldMedia := []model.PetMedia{
		{UUID: "media-1", URL: "https://bucket.s3.eu-central-1.amazonaws.com/pets/old-1"},
		{UUID: "media-2", URL: "https://bucket.s3.eu-central-1.amazonaws.com/pets/old-2"},
	}

	petRepo.On("GetByUUID", mock.Anything, mock.Anything, "pet-1").
		Return(ownedPet("pet-1", "user-1"), nil)
	petRepo.On("ListMedia", mock.Anything, mock.Anything, "pet-1").Return(oldMedia, nil)
	petRepo.On("BeginTXx", mock.Anything).Return(nil)
	petRepo.On("DeleteMedia", mock.Anything, mock.Anything, "pet-1").Return(nil)
	petRepo.On("AddMedia", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	cacheRepo.On("DeletePet", mock.Anything, "pet-1").Return(nil)

	storage.On("DeleteObject", mock.Anything, "pets/old-1").Return(nil)
	storage.On("DeleteObject", mock.Anything, "pets/old-2").Return(errors.New("s3 недоступен"))

	saved, err := petService.ReplacePetMedia(context.Background(), "pet-1", "user-1", model.RoleUser,
		[]model.PetMedia{{MediaType: model.MediaTypeImage, URL: "https://bucket.s3.eu-central-1.amazonaws.com/pets/new-1"}},
	)

	// ошибка S3 не валит замену, объекты чистятся best-effort
	require.NoError(t, err)
	assert.Len(t, saved, 1)
	assert.True(t, petRepo.commitCalled)
	storage.AssertExpectations(t)
}

func TestDeletePet_NotFound(t *testing.T) {
	petService, petRepo, _, _ := newTestPetService()

	petRepo.On("GetByUUID", mock.Anything, mock.Anything, "missing").
		Return(nil, repository.ErrNotFound)

	err := petService.DeletePet(context.Background(), "missing", "user-1", model.RoleUser)

	assert.ErrorIs(t, err, ErrPetNotFound)
}

func TestStorageKeyFromURL(t *testing.T) {
	assert.Equal(t, "pets/abc", storageKeyFromURL("https://bucket.s3.eu-central-1.amazonaws.com/pets/abc"))
	assert.Equal(t, "pets/abc", storageKeyFromURL("http://localhost:9000/bucket/pets/abc"))
	assert.Equal(t, "", storageKeyFromURL("https://example.com/other/abc"))
}
