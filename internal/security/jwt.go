package security

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pet-adoption-server/config"
	"pet-adoption-server/internal/util"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const (
	UserContextKey contextKey = "user"
)

type Claims struct {
	UserUUID string `json:"user_uuid"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type JWTService struct {
	*config.JWTConfig
}

func NewJWTService(cfg *config.JWTConfig) *JWTService {
	return &JWTService{cfg}
}

// GenerateAccessToken выпускает подписанный access-токен с коротким TTL.
// Токен самодостаточен: subject и роль лежат в claims, в БД ничего не пишется.
func (service *JWTService) GenerateAccessToken(userUUID string, role string) (string, error) {
	return service.generateAccessTokenAt(userUUID, role, time.Now())
}

func (service *JWTService) generateAccessTokenAt(userUUID string, role string, now time.Time) (string, error) {
	timeDuration, err := time.ParseDuration(service.AccessTokenTTL)
	if err != nil {
		return "", util.LogError("[JWTService] ошибка парсинга access_token_ttl", err)
	}

	claims := Claims{
		UserUUID: userUUID,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userUUID,
			ExpiresAt: jwt.NewNumericDate(now.Add(timeDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "pet-adoption-server",
		},
	}

	jwtToken := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	accessToken, err := jwtToken.SignedString([]byte(service.SecretKey))
	if err != nil {
		return "", util.LogError("[JWTService] ошибка подписи токена", err)
	}

	return accessToken, nil
}

// ValidateJWT проверяет подпись и срок жизни access-токена.
// Любая причина отказа (подпись, exp, формат) наружу не различается.
func (service *JWTService) ValidateJWT(jwtTokenStr string) (*Claims, error) {
	var claims = &Claims{}

	jwtToken, err := jwt.ParseWithClaims(jwtTokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Header["alg"] != jwt.SigningMethodHS512.Alg() {
			return nil, fmt.Errorf("неверный способ подписи токена: %v", token.Header["alg"])
		}
		return []byte(service.SecretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}))

	if err != nil || !jwtToken.Valid {
		return nil, fmt.Errorf("невалидный токен")
	}

	return claims, nil
}

// JWTMiddleware : request gate для защищенных маршрутов.
// Проверка stateless — только подпись и exp, без похода в БД;
// на любой отказ единый 401 без уточнения причины.
func JWTMiddleware(jwtService *JWTService) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authorizationHeader := request.Header.Get("Authorization")
			if !strings.HasPrefix(authorizationHeader, "Bearer ") {
				util.HandleError(writer, "unauthorized", http.StatusUnauthorized)
				return
			}

			token := strings.TrimPrefix(authorizationHeader, "Bearer ")

			claims, err := jwtService.ValidateJWT(token)
			if err != nil {
				util.HandleError(writer, "unauthorized", http.StatusUnauthorized)
				return
			}

			req := request.WithContext(context.WithValue(request.Context(), UserContextKey, claims))
			next.ServeHTTP(writer, req)
		})
	}
}

func GetClaimsFromContext(ctx context.Context) (*Claims, error) {
	claims, ok := ctx.Value(UserContextKey).(*Claims)
	if !ok || claims == nil {
		return nil, fmt.Errorf("пользователь не авторизован")
	}
	return claims, nil
}
