package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pet-adoption-server/config"
	"pet-adoption-server/internal/model"
	"pet-adoption-server/internal/util"

	"github.com/jmoiron/sqlx"
)

type RefreshTokenRepository struct {
	*config.Database
}

func NewRefreshTokenRepository(database *config.Database) *RefreshTokenRepository {
	return &RefreshTokenRepository{database}
}

// Save сохраняет refresh-токен в базе данных.
// В строку попадает только digest, сырой токен сюда не доходит.
func (r *RefreshTokenRepository) Save(ctx context.Context, exec sqlx.ExtContext, refreshToken *model.RefreshToken) error {
	query := `INSERT INTO refresh_tokens (uuid, user_uuid, token_digest, expires_at, user_agent, ip_address)
				VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := exec.ExecContext(ctx, query,
		refreshToken.UUID,
		refreshToken.UserUUID,
		refreshToken.TokenDigest,
		refreshToken.ExpiresAt,
		refreshToken.UserAgent,
		refreshToken.IpAddress,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("[RefreshTokenRepo] digest уже существует: %w", ErrConflict)
		}
		return util.LogError("[RefreshTokenRepo] ошибка вставки данных в БД", err)
	}

	return nil
}

// FindByDigest ищет refresh-токен по digest сырого токена.
// Отсутствие строки возвращается как ErrNotFound.
func (r *RefreshTokenRepository) FindByDigest(ctx context.Context, exec sqlx.ExtContext, digest string) (*model.RefreshToken, error) {
	query := `
	SELECT uuid, user_uuid, token_digest, expires_at, user_agent, ip_address, created_at, revoked_at, replaced_by_uuid
	FROM refresh_tokens WHERE token_digest = $1
	`

	refreshToken := &model.RefreshToken{}
	err := sqlx.GetContext(ctx, exec, refreshToken, query, digest)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, util.LogError("[RefreshTokenRepo] ошибка при выполнении запроса", err)
	}

	return refreshToken, nil
}

// Revise помечает строку отозванной и связывает её с преемником.
// Строка refresh-токена меняется только здесь и только один раз:
// условие revoked_at IS NULL не даёт второй конкурентной ротации
// перезаписать уже отозванный токен.
func (r *RefreshTokenRepository) Revise(ctx context.Context, exec sqlx.ExtContext, tokenUUID string, revokedAt time.Time, replacedByUUID *string) error {
	query := `
	UPDATE refresh_tokens SET revoked_at = $2, replaced_by_uuid = $3
	WHERE uuid = $1 AND revoked_at IS NULL
	`

	result, err := exec.ExecContext(ctx, query, tokenUUID, revokedAt, replacedByUUID)
	if err != nil {
		return util.LogError("[RefreshTokenRepo] не удалось отозвать refresh-токен", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[RefreshTokenRepo] не удалось проверить, отозван ли токен", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// RevokeByDigest отзывает токен по digest. Идемпотентна: повторный отзыв
// или отзыв неизвестного токена — no-op, logout не должен падать из-за
// устаревшего состояния.
func (r *RefreshTokenRepository) RevokeByDigest(ctx context.Context, exec sqlx.ExtContext, digest string, revokedAt time.Time) error {
	query := `UPDATE refresh_tokens SET revoked_at = $2 WHERE token_digest = $1 AND revoked_at IS NULL`

	if _, err := exec.ExecContext(ctx, query, digest, revokedAt); err != nil {
		return util.LogError("[RefreshTokenRepo] не удалось отозвать refresh-токен", err)
	}

	return nil
}

// BeginTXx открывает транзакцию, ротация выполняет insert нового
// и revise старого токена одним коммитом
func (r *RefreshTokenRepository) BeginTXx(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, nil, err
	}
	return tx, func() error { return tx.Rollback() }, func() error { return tx.Commit() }, nil
}
