package ports

import (
	"context"

	"pet-adoption-server/internal/model"

	"github.com/jmoiron/sqlx"
)

type PetRepository interface {
	Create(ctx context.Context, exec sqlx.ExtContext, pet *model.Pet) (*model.Pet, error)
	GetByUUID(ctx context.Context, exec sqlx.ExtContext, petUUID string) (*model.Pet, error)
	List(ctx context.Context, exec sqlx.ExtContext, filter model.PetFilter) ([]model.Pet, error)
	Update(ctx context.Context, exec sqlx.ExtContext, petUUID string, patch map[string]interface{}) (*model.Pet, error)
	Delete(ctx context.Context, exec sqlx.ExtContext, petUUID string) error

	AddMedia(ctx context.Context, exec sqlx.ExtContext, media *model.PetMedia) error
	ListMedia(ctx context.Context, exec sqlx.ExtContext, petUUID string) ([]model.PetMedia, error)
	DeleteMedia(ctx context.Context, exec sqlx.ExtContext, petUUID string) error

	BeginTXx(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error)
}

type PetService interface {
	CreatePetWithMedia(ctx context.Context, createdBy string, pet *model.Pet, media []model.PetMedia) (*model.PetWithMedia, error)
	ListPets(ctx context.Context, filter model.PetFilter) ([]model.Pet, error)
	GetPetByUUID(ctx context.Context, petUUID string) (*model.PetWithMedia, error)
	UpdatePet(ctx context.Context, petUUID, userUUID, role string, patch map[string]interface{}) (*model.Pet, error)
	ReplacePetMedia(ctx context.Context, petUUID, userUUID, role string, media []model.PetMedia) ([]model.PetMedia, error)
	DeletePet(ctx context.Context, petUUID, userUUID, role string) error
}
