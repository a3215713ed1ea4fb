package ports

import (
	"context"
	"time"

	"pet-adoption-server/internal/model"
	"pet-adoption-server/internal/security"

	"github.com/jmoiron/sqlx"
)

// RefreshTokenRepositoryInterface : хранилище refresh-токенов.
// Методы принимают sqlx.ExtContext, чтобы их можно было выполнять
// внутри объемлющей транзакции (ротация = insert + revise одним коммитом).
type RefreshTokenRepositoryInterface interface {
	Save(ctx context.Context, exec sqlx.ExtContext, token *model.RefreshToken) error
	FindByDigest(ctx context.Context, exec sqlx.ExtContext, digest string) (*model.RefreshToken, error)
	Revise(ctx context.Context, exec sqlx.ExtContext, tokenUUID string, revokedAt time.Time, replacedByUUID *string) error
	RevokeByDigest(ctx context.Context, exec sqlx.ExtContext, digest string, revokedAt time.Time) error
	BeginTXx(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error)
}

type JWTServiceInterface interface {
	GenerateAccessToken(userUUID string, role string) (string, error)
	ValidateJWT(tokenString string) (*security.Claims, error)
}
