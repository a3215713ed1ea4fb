package security

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"

	"pet-adoption-server/internal/util"
)

// OpaqueTokenBytes : 32 байта = 256 бит энтропии
const OpaqueTokenBytes = 32

// NewOpaqueToken генерирует криптографически случайный refresh-токен.
// Сырое значение отдается клиенту один раз и никогда не сохраняется.
func NewOpaqueToken(byteLength int) (string, error) {
	if byteLength <= 0 {
		byteLength = OpaqueTokenBytes
	}

	tokenBytes := make([]byte, byteLength)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", util.LogError("[Security] ошибка генерации токена", err)
	}

	return base64.RawURLEncoding.EncodeToString(tokenBytes), nil
}

// TokenDigest : детерминированный sha256-digest сырого токена.
// Используется только как ключ поиска в БД (не как барьер конфиденциальности,
// для этого у токена достаточно собственной энтропии), поэтому быстрый
// sha256, а не адаптивный bcrypt.
func TokenDigest(rawToken string) string {
	digest := sha256.Sum256([]byte(rawToken))
	return base64.RawURLEncoding.EncodeToString(digest[:])
}
