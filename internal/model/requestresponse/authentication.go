package requestresponse

// RegisterRequest : тело запроса регистрации
type RegisterRequest struct {
	Name        string  `json:"name" example:"Ana"`
	PhoneNumber string  `json:"phone_number" example:"+15550001"`
	Email       *string `json:"email,omitempty" example:"ana@example.com"`
	Password    string  `json:"password" example:"longpassword1"`
	Age         *int    `json:"age,omitempty" example:"25"`
	Sex         *string `json:"sex,omitempty" example:"FEMALE"`
	Location    *string `json:"location,omitempty" example:"Almaty"`
}

// RegisterResponse : успешный ответ
type RegisterResponse struct {
	User RegisteredUser `json:"user"`
}

type RegisteredUser struct {
	UUID        string `json:"uuid" example:"b6a1e1c4-4b1d-4f1e-8b29-1234567890ab"`
	Name        string `json:"name" example:"Ana"`
	PhoneNumber string `json:"phone_number" example:"+15550001"`
	Role        string `json:"role" example:"USER"`
}

// LoginRequest : тело запроса на аутентификацию
type LoginRequest struct {
	PhoneNumber string `json:"phone_number" example:"+15550001"`
	Password    string `json:"password" example:"longpassword1"`
}

// AccessTokenResponse : ответ на login и refresh.
// Refresh-токен в теле не ходит, только в Set-Cookie.
type AccessTokenResponse struct {
	AccessToken string `json:"accessToken" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// CurrentUserResponse : информация о текущем пользователе
type CurrentUserResponse struct {
	Response struct {
		UserUUID string `json:"user_uuid" example:"b6a1e1c4-4b1d-4f1e-8b29-1234567890ab"`
		Role     string `json:"role" example:"USER"`
	} `json:"response"`
}

// LogoutResponse : ответ на завершение сессии
type LogoutResponse struct {
	Ok bool `json:"ok" example:"true"`
}

// ErrorResponse : стандартная структура ошибки
type ErrorResponse struct {
	Error   string `json:"error" example:"Unauthorized"`
	Message string `json:"message" example:"unauthorized"`
	Code    int    `json:"code" example:"401"`
}
