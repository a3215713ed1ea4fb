package security

import (
	"net/http"
	"time"
)

// RefreshCookieName : имя cookie, в которой ходит сырой refresh-токен
const RefreshCookieName = "refresh_token"

// RefreshCookiePath : cookie ограничена маршрутом ротации,
// на остальные запросы браузер её не отправляет
const RefreshCookiePath = "/api/auth/refresh"

// RefreshCookie собирает cookie для refresh-токена.
// HttpOnly закрывает её от скриптов страницы, SameSite=Lax режет кросс-сайтовые
// запросы, Secure обязателен в production. Срок жизни cookie совпадает
// со сроком жизни строки refresh-токена в БД.
func RefreshCookie(rawToken string, expiresAt time.Time, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     RefreshCookieName,
		Value:    rawToken,
		Path:     RefreshCookiePath,
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearRefreshCookie : сброс cookie при logout
func ClearRefreshCookie(secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     RefreshCookieName,
		Value:    "",
		Path:     RefreshCookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}
