package ports

import (
	"context"

	"pet-adoption-server/internal/model"
)

// AuthenticationService : оркестратор жизненного цикла учетных данных.
// Login намеренно не выпускает токены — политику выпуска определяет handler.
type AuthenticationService interface {
	Register(ctx context.Context, input model.RegisterUserInput) (*model.User, error)
	Login(ctx context.Context, phoneNumber, password string) (*model.AuthIdentity, error)
	IssueRefreshToken(ctx context.Context, userUUID, userAgent, ipAddress string) (*model.IssuedRefreshToken, error)
	RotateRefreshToken(ctx context.Context, rawToken, userAgent, ipAddress string) (*model.RotationResult, error)
	RevokeRefreshToken(ctx context.Context, rawToken string) error
}
