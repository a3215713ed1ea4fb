package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"pet-adoption-server/config"
	"pet-adoption-server/internal/model"
	"pet-adoption-server/internal/util"

	"github.com/jmoiron/sqlx"
)

type UserRepository struct {
	*config.Database
}

func NewUserRepository(database *config.Database) *UserRepository {
	return &UserRepository{database}
}

// CreateUser : сохраняет нового пользователя.
// Дубликат phone_number или email возвращается как ErrConflict, а не как
// неклассифицированная ошибка БД.
func (r *UserRepository) CreateUser(ctx context.Context, exec sqlx.ExtContext, user *model.User) (*model.User, error) {
	query := `
	INSERT INTO users (uuid, name, phone_number, email, password_hash, role, age, sex, location, is_active)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING uuid, name, phone_number, email, role, age, sex, location, is_active, joined_date
	`

	createdUser := &model.User{}
	err := exec.QueryRowxContext(ctx, query,
		user.UUID,
		user.Name,
		user.PhoneNumber,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.Age,
		user.Sex,
		user.Location,
		user.IsActive,
	).StructScan(createdUser)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("[UserRepo] телефон или email уже заняты: %w", ErrConflict)
		}
		return nil, util.LogError("[UserRepo] ошибка вставки данных в БД", err)
	}

	return createdUser, nil
}

// FindByPhone : ищет пользователя по номеру телефона (логину)
func (r *UserRepository) FindByPhone(ctx context.Context, exec sqlx.ExtContext, phoneNumber string) (*model.User, error) {
	query := `
	SELECT uuid, name, phone_number, email, password_hash, role, age, sex, location, avatar_img, is_active, joined_date
	FROM users WHERE phone_number = $1
	`
	var user model.User
	err := sqlx.GetContext(ctx, exec, &user, query, phoneNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, util.LogError("[UserRepo] не удалось найти пользователя по телефону", err)
	}
	return &user, nil
}

// FindByUUID : ищет пользователя по UUID
func (r *UserRepository) FindByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.User, error) {
	query := `
	SELECT uuid, name, phone_number, email, password_hash, role, age, sex, location, avatar_img, is_active, joined_date
	FROM users WHERE uuid = $1
	`
	var user model.User
	err := sqlx.GetContext(ctx, exec, &user, query, uuid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, util.LogError("[UserRepo] не удалось найти пользователя в БД", err)
	}
	return &user, nil
}

// UpdateProfile : частичное обновление профиля, собирает SET только из переданных полей
func (r *UserRepository) UpdateProfile(ctx context.Context, exec sqlx.ExtContext, uuid string, patch model.ProfilePatch) (*model.User, error) {
	sets := make([]string, 0, 3)
	values := make([]interface{}, 0, 4)

	if patch.Name != nil {
		values = append(values, *patch.Name)
		sets = append(sets, fmt.Sprintf("name = $%d", len(values)))
	}
	if patch.PhoneNumber != nil {
		values = append(values, *patch.PhoneNumber)
		sets = append(sets, fmt.Sprintf("phone_number = $%d", len(values)))
	}
	if patch.Location != nil {
		values = append(values, *patch.Location)
		sets = append(sets, fmt.Sprintf("location = $%d", len(values)))
	}

	if len(sets) == 0 {
		return nil, fmt.Errorf("[UserRepo] нет полей для обновления")
	}

	values = append(values, uuid)
	query := fmt.Sprintf(`
		UPDATE users SET %s
		WHERE uuid = $%d
		RETURNING uuid, name, phone_number, email, role, age, sex, location, avatar_img, is_active, joined_date
	`, strings.Join(sets, ", "), len(values))

	updated := &model.User{}
	if err := exec.QueryRowxContext(ctx, query, values...).StructScan(updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("[UserRepo] телефон уже занят: %w", ErrConflict)
		}
		return nil, util.LogError("[UserRepo] не удалось обновить профиль", err)
	}

	return updated, nil
}

// Deactivate : сброс флага is_active, физического удаления учетной записи нет
func (r *UserRepository) Deactivate(ctx context.Context, exec sqlx.ExtContext, uuid string) error {
	query := `UPDATE users SET is_active = FALSE WHERE uuid = $1`
	_, err := exec.ExecContext(ctx, query, uuid)
	if err != nil {
		return util.LogError("[UserRepo] не удалось деактивировать пользователя", err)
	}
	return nil
}
