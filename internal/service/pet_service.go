package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"pet-adoption-server/config"
	"pet-adoption-server/internal/model"
	"pet-adoption-server/internal/ports"
	"pet-adoption-server/internal/repository"
	"pet-adoption-server/internal/util"

	"github.com/google/uuid"
)

var (
	// ErrPetNotFound — карточка не найдена.
	ErrPetNotFound = errors.New("карточка не найдена")
	// ErrForbidden — редактировать карточку может владелец или ADMIN.
	ErrForbidden = errors.New("доступ запрещён")
	// ErrTooManyProfileMedia — профильным может быть максимум одно медиа.
	ErrTooManyProfileMedia = errors.New("профильным может быть только одно медиа")
)

type PetService struct {
	db              *config.Database
	petRepository   ports.PetRepository
	cacheRepository ports.CacheRepository
	storage         ports.S3Storage
}

func NewPetService(
	db *config.Database,
	petRepository ports.PetRepository,
	cacheRepository ports.CacheRepository,
	storage ports.S3Storage,
) *PetService {
	return &PetService{
		db:              db,
		petRepository:   petRepository,
		cacheRepository: cacheRepository,
		storage:         storage,
	}
}

// CreatePetWithMedia : создает карточку вместе с медиа одной транзакцией
func (s *PetService) CreatePetWithMedia(ctx context.Context, createdBy string, pet *model.Pet, media []model.PetMedia) (*model.PetWithMedia, error) {
	if err := validateProfileMedia(media); err != nil {
		return nil, err
	}

	pet.UUID = uuid.New().String()
	pet.CreatedBy = &createdBy
	if pet.Category == "" || pet.Type == "" {
		return nil, fmt.Errorf("[PetService] category и type обязательны")
	}

	exec, rollback, commit, err := s.petRepository.BeginTXx(ctx)
	if err != nil {
		return nil, util.LogError("[PetService] не удалось начать транзакцию", err)
	}
	defer rollback()

	created, err := s.petRepository.Create(ctx, exec, pet)
	if err != nil {
		return nil, util.LogError("[PetService] не удалось сохранить карточку", err)
	}

	saved := make([]model.PetMedia, 0, len(media))
	for _, m := range media {
		m.UUID = uuid.New().String()
		m.PetUUID = created.UUID
		if err := s.petRepository.AddMedia(ctx, exec, &m); err != nil {
			return nil, util.LogError("[PetService] не удалось сохранить медиа", err)
		}
		saved = append(saved, m)
	}

	if err := commit(); err != nil {
		return nil, util.LogError("[PetService] не удалось закоммитить транзакцию", err)
	}

	log.Printf("[PetService] карточка %s успешно создана", created.UUID)

	return &model.PetWithMedia{Pet: created, Media: saved}, nil
}

// ListPets : список карточек по фильтрам, без кэша
func (s *PetService) ListPets(ctx context.Context, filter model.PetFilter) ([]model.Pet, error) {
	pets, err := s.petRepository.List(ctx, s.db, filter)
	if err != nil {
		return nil, util.LogError("[PetService] не удалось получить список карточек", err)
	}
	return pets, nil
}

// GetPetByUUID : возвращает карточку с медиа.
// Сначала Redis, при промахе — БД с последующим наполнением кэша;
// ошибка кэша не валит запрос, только логируется.
func (s *PetService) GetPetByUUID(ctx context.Context, petUUID string) (*model.PetWithMedia, error) {
	cached, err := s.cacheRepository.GetPet(ctx, petUUID)
	if err != nil {
		log.Printf("[PetService] ошибка кэширования: %v", err)
	}
	if cached != nil {
		return cached, nil
	}

	pet, err := s.petRepository.GetByUUID(ctx, s.db, petUUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPetNotFound
		}
		return nil, util.LogError("[PetService] не удалось получить карточку", err)
	}

	media, err := s.petRepository.ListMedia(ctx, s.db, petUUID)
	if err != nil {
		return nil, util.LogError("[PetService] не удалось получить медиа карточки", err)
	}

	result := &model.PetWithMedia{Pet: pet, Media: media}

	if err := s.cacheRepository.SetPet(ctx, result); err != nil {
		log.Printf("[PetService] ошибка кэширования карточки: %v", err)
	}

	return result, nil
}

// UpdatePet : частичное обновление карточки с проверкой владельца
func (s *PetService) UpdatePet(ctx context.Context, petUUID, userUUID, role string, patch map[string]interface{}) (*model.Pet, error) {
	if err := s.assertCanEdit(ctx, petUUID, userUUID, role); err != nil {
		return nil, err
	}

	updated, err := s.petRepository.Update(ctx, s.db, petUUID, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPetNotFound
		}
		return nil, util.LogError("[PetService] не удалось обновить карточку", err)
	}

	if err := s.cacheRepository.DeletePet(ctx, petUUID); err != nil {
		log.Printf("[PetService] не удалось инвалидировать кэш: %v", err)
	}

	return updated, nil
}

// ReplacePetMedia : полная замена медиа карточки.
// Удаление старых строк и вставка новых — одна транзакция; объекты в S3
// подчищаются после коммита best-effort, неудача только логируется.
func (s *PetService) ReplacePetMedia(ctx context.Context, petUUID, userUUID, role string, media []model.PetMedia) ([]model.PetMedia, error) {
	if err := validateProfileMedia(media); err != nil {
		return nil, err
	}

	if err := s.assertCanEdit(ctx, petUUID, userUUID, role); err != nil {
		return nil, err
	}

	oldMedia, err := s.petRepository.ListMedia(ctx, s.db, petUUID)
	if err != nil {
		return nil, util.LogError("[PetService] не удалось получить старые медиа", err)
	}

	exec, rollback, commit, err := s.petRepository.BeginTXx(ctx)
	if err != nil {
		return nil, util.LogError("[PetService] не удалось начать транзакцию", err)
	}
	defer rollback()

	if err := s.petRepository.DeleteMedia(ctx, exec, petUUID); err != nil {
		return nil, util.LogError("[PetService] не удалось удалить старые медиа", err)
	}

	saved := make([]model.PetMedia, 0, len(media))
	for _, m := range media {
		m.UUID = uuid.New().String()
		m.PetUUID = petUUID
		if err := s.petRepository.AddMedia(ctx, exec, &m); err != nil {
			return nil, util.LogError("[PetService] не удалось сохранить медиа", err)
		}
		saved = append(saved, m)
	}

	if err := commit(); err != nil {
		return nil, util.LogError("[PetService] не удалось закоммитить транзакцию", err)
	}

	s.cleanupStorage(ctx, oldMedia)

	if err := s.cacheRepository.DeletePet(ctx, petUUID); err != nil {
		log.Printf("[PetService] не удалось инвалидировать кэш: %v", err)
	}

	return saved, nil
}

// DeletePet : жесткое удаление карточки, медиа каскадом; S3 подчищается best-effort
func (s *PetService) DeletePet(ctx context.Context, petUUID, userUUID, role string) error {
	if err := s.assertCanEdit(ctx, petUUID, userUUID, role); err != nil {
		return err
	}

	oldMedia, err := s.petRepository.ListMedia(ctx, s.db, petUUID)
	if err != nil {
		return util.LogError("[PetService] не удалось получить медиа карточки", err)
	}

	if err := s.petRepository.Delete(ctx, s.db, petUUID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPetNotFound
		}
		return util.LogError("[PetService] не удалось удалить карточку", err)
	}

	s.cleanupStorage(ctx, oldMedia)

	if err := s.cacheRepository.DeletePet(ctx, petUUID); err != nil {
		log.Printf("[PetService] не удалось инвалидировать кэш: %v", err)
	}

	return nil
}

// assertCanEdit : ADMIN может всё, остальные — только свои карточки.
// Карточка с created_by = NULL (владелец удален) доступна только ADMIN.
func (s *PetService) assertCanEdit(ctx context.Context, petUUID, userUUID, role string) error {
	if role == model.RoleAdmin {
		return nil
	}

	pet, err := s.petRepository.GetByUUID(ctx, s.db, petUUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPetNotFound
		}
		return util.LogError("[PetService] ошибка проверки владельца", err)
	}

	if pet.CreatedBy == nil || *pet.CreatedBy != userUUID {
		return ErrForbidden
	}

	return nil
}

// cleanupStorage : best-effort удаление замененных объектов из S3
func (s *PetService) cleanupStorage(ctx context.Context, media []model.PetMedia) {
	for _, m := range media {
		key := storageKeyFromURL(m.URL)
		if key == "" {
			continue
		}
		if err := s.storage.DeleteObject(ctx, key); err != nil {
			log.Printf("[PetService] не удалось удалить объект %s из S3: %v", key, err)
		}
	}
}

// storageKeyFromURL : достает ключ объекта из URL вида https://bucket.s3.region.amazonaws.com/pets/<uuid>
func storageKeyFromURL(url string) string {
	idx := strings.Index(url, "/pets/")
	if idx < 0 {
		return ""
	}
	return url[idx+1:]
}

func validateProfileMedia(media []model.PetMedia) error {
	profileCount := 0
	for _, m := range media {
		if m.IsProfile {
			profileCount++
		}
	}
	if profileCount > 1 {
		return ErrTooManyProfileMedia
	}
	return nil
}
