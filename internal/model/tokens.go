package model

import "time"

// RefreshToken : одна выданная сессия.
// В БД хранится только digest сырого токена (sha256), сам токен
// отдается клиенту один раз и нигде не сохраняется.
// Жизненный цикл: LIVE -> REVOKED (ротация или logout) либо LIVE -> EXPIRED
// (просрочка определяется лениво при поиске, строка не изменяется).
type RefreshToken struct {
	UUID           string     `db:"uuid"`
	UserUUID       string     `db:"user_uuid"`
	TokenDigest    string     `db:"token_digest"`
	ExpiresAt      time.Time  `db:"expires_at"`
	UserAgent      string     `db:"user_agent"`
	IpAddress      string     `db:"ip_address"`
	CreatedAt      time.Time  `db:"created_at"`
	RevokedAt      *time.Time `db:"revoked_at"`
	ReplacedByUUID *string    `db:"replaced_by_uuid"`
}

// Revoked : токен отозван (ротацией, logout или при обнаружении кражи)
func (t *RefreshToken) Revoked() bool {
	return t.RevokedAt != nil
}

// Expired : срок жизни токена истёк на момент now
func (t *RefreshToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// RotationResult : результат успешной ротации refresh-токена
type RotationResult struct {
	UserUUID     string
	Role         string
	NewRawToken  string
	NewExpiresAt time.Time
}

// IssuedRefreshToken : результат выпуска refresh-токена.
// RawToken возвращается единственный раз.
type IssuedRefreshToken struct {
	RawToken  string
	ExpiresAt time.Time
}
