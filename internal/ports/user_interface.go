package ports

import (
	"context"

	"pet-adoption-server/internal/model"

	"github.com/jmoiron/sqlx"
)

type UserRepository interface {
	CreateUser(ctx context.Context, exec sqlx.ExtContext, user *model.User) (*model.User, error)
	FindByPhone(ctx context.Context, exec sqlx.ExtContext, phoneNumber string) (*model.User, error)
	FindByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.User, error)
	UpdateProfile(ctx context.Context, exec sqlx.ExtContext, uuid string, patch model.ProfilePatch) (*model.User, error)
	Deactivate(ctx context.Context, exec sqlx.ExtContext, uuid string) error
}

type ProfileService interface {
	GetMyProfile(ctx context.Context, userUUID string) (*model.Profile, error)
	UpdateMyProfile(ctx context.Context, userUUID string, patch model.ProfilePatch) (*model.User, error)
}
