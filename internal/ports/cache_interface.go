package ports

import (
	"context"

	"pet-adoption-server/internal/model"
)

// CacheRepository : Redis слой для карточек животных
type CacheRepository interface {
	SetPet(ctx context.Context, pet *model.PetWithMedia) error
	GetPet(ctx context.Context, uuid string) (*model.PetWithMedia, error)
	DeletePet(ctx context.Context, uuid string) error
}
