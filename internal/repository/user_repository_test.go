package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"pet-adoption-server/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateUser(t *testing.T) {
	database, mockDB := newMockDatabase(t)
	repo := NewUserRepository(database)

	user := &model.User{
		UUID:         "user-1",
		Name:         "Ana",
		PhoneNumber:  "+15550001",
		PasswordHash: "$2a$10$hash",
		Role:         model.RoleUser,
		IsActive:     true,
	}

	rows := sqlmock.NewRows([]string{
		"uuid", "name", "phone_number", "email", "role", "age", "sex", "location", "is_active", "joined_date",
	}).AddRow("user-1", "Ana", "+15550001", nil, model.RoleUser, nil, nil, nil, true, time.Now().UTC())

	mockDB.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs(user.UUID, user.Name, user.PhoneNumber, user.Email, user.PasswordHash, user.Role, user.Age, user.Sex, user.Location, user.IsActive).
		WillReturnRows(rows)

	created, err := repo.CreateUser(context.Background(), database, user)

	require.NoError(t, err)
	assert.Equal(t, "user-1", created.UUID)
	assert.Equal(t, model.RoleUser, created.Role)
	assert.True(t, created.IsActive)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestUserRepository_CreateUser_DuplicatePhone(t *testing.T) {
	database, mockDB := newMockDatabase(t)
	repo := NewUserRepository(database)

	mockDB.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.CreateUser(context.Background(), database, &model.User{UUID: "user-1"})

	assert.ErrorIs(t, err, ErrConflict)
}

func TestUserRepository_FindByPhone(t *testing.T) {
	database, mockDB := newMockDatabase(t)
	repo := NewUserRepository(database)

	rows := sqlmock.NewRows([]string{
		"uuid", "name", "phone_number", "email", "password_hash", "role", "age", "sex", "location", "avatar_img", "is_active", "joined_date",
	}).AddRow("user-1", "Ana", "+15550001", nil, "$2a$10$hash", model.RoleUser, nil, nil, nil, nil, true, time.Now().UTC())

	mockDB.ExpectQuery(regexp.QuoteMeta("FROM users WHERE phone_number = $1")).
		WithArgs("+15550001").
		WillReturnRows(rows)

	user, err := repo.FindByPhone(context.Background(), database, "+15550001")

	require.NoError(t, err)
	assert.Equal(t, "user-1", user.UUID)
	assert.Equal(t, "$2a$10$hash", user.PasswordHash)
}

func TestUserRepository_FindByPhone_NotFound(t *testing.T) {
	database, mockDB := newMockDatabase(t)
	repo := NewUserRepository(database)

	mockDB.ExpectQuery(regexp.QuoteMeta("FROM users WHERE phone_number = $1")).
		WithArgs("+15559999").
		WillReturnRows(sqlmock.NewRows([]string{"uuid"}))

	_, err := repo.FindByPhone(context.Background(), database, "+15559999")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepository_UpdateProfile(t *testing.T) {
	database, mockDB := newMockDatabase(t)
	repo := NewUserRepository(database)

	location := "Astana"

	rows := sqlmock.NewRows([]string{
		"uuid", "name", "phone_number", "email", "role", "age", "sex", "location", "avatar_img", "is_active", "joined_date",
	}).AddRow("user-1", "Ana", "+15550001", nil, model.RoleUser, nil, nil, location, nil, true, time.Now().UTC())

	mockDB.ExpectQuery(regexp.QuoteMeta("UPDATE users SET location = $1")).
		WithArgs(location, "user-1").
		WillReturnRows(rows)

	updated, err := repo.UpdateProfile(context.Background(), database, "user-1", model.ProfilePatch{Location: &location})

	require.NoError(t, err)
	require.NotNil(t, updated.Location)
	assert.Equal(t, location, *updated.Location)
}

func TestUserRepository_UpdateProfile_NoFields(t *testing.T) {
	database, _ := newMockDatabase(t)
	repo := NewUserRepository(database)

	_, err := repo.UpdateProfile(context.Background(), database, "user-1", model.ProfilePatch{})

	assert.Error(t, err)
}

func TestUserRepository_Deactivate(t *testing.T) {
	database, mockDB := newMockDatabase(t)
	repo := NewUserRepository(database)

	mockDB.ExpectExec(regexp.QuoteMeta("UPDATE users SET is_active = FALSE WHERE uuid = $1")).
		WithArgs("user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Deactivate(context.Background(), database, "user-1")

	assert.NoError(t, err)
}
