package repository

import (
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrNotFound : запись не найдена
	ErrNotFound = errors.New("запись не найдена")
	// ErrConflict : нарушение уникальности (phone_number, email, token_digest)
	ErrConflict = errors.New("нарушение уникальности")
)

// isUniqueViolation : код 23505 у Postgres — unique_violation
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
