package model

import "time"

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User : учетная запись пользователя маркетплейса.
// Логином служит номер телефона. Учетная запись физически не удаляется,
// вместо этого сбрасывается флаг IsActive (деактивация запрещает вход).
type User struct {
	UUID         string     `db:"uuid" json:"uuid"`
	Name         string     `db:"name" json:"name"`
	PhoneNumber  string     `db:"phone_number" json:"phone_number"`
	Email        *string    `db:"email" json:"email,omitempty"`
	PasswordHash string     `db:"password_hash" json:"-"`
	Role         string     `db:"role" json:"role"`
	Age          *int       `db:"age" json:"age,omitempty"`
	Sex          *string    `db:"sex" json:"sex,omitempty"`
	Location     *string    `db:"location" json:"location,omitempty"`
	AvatarImg    *string    `db:"avatar_img" json:"avatar_img,omitempty"`
	IsActive     bool       `db:"is_active" json:"is_active"`
	JoinedDate   time.Time  `db:"joined_date" json:"joined_date"`
	DeletedAt    *time.Time `db:"deleted_at" json:"-"`
}

// RegisterUserInput : данные регистрации нового пользователя
type RegisterUserInput struct {
	Name        string
	PhoneNumber string
	Email       *string
	Password    string
	Age         *int
	Sex         *string
	Location    *string
}

// AuthIdentity : минимальная идентичность, которую возвращает Login.
// Сервис аутентификации сам токены не выпускает — решение о выпуске
// принимает вызывающая сторона (handler).
type AuthIdentity struct {
	UUID string
	Role string
}

// ProfilePatch : частичное обновление профиля, nil-поля не трогаются
type ProfilePatch struct {
	Name        *string
	PhoneNumber *string
	Location    *string
}

// Profile : профиль пользователя вместе с его карточками
type Profile struct {
	User *User `json:"user"`
	Pets []Pet `json:"pets"`
}
