package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"pet-adoption-server/config"
	"pet-adoption-server/internal/model"
	"pet-adoption-server/internal/model/requestresponse"
	"pet-adoption-server/internal/ports"
	"pet-adoption-server/internal/security"
	"pet-adoption-server/internal/service"
)

type AuthenticationHandler struct {
	ports.AuthenticationService
	ports.JWTServiceInterface
	cfg *config.AppConfig
}

func NewAuthenticationHandler(
	authenticationService ports.AuthenticationService,
	jwtServiceInterface ports.JWTServiceInterface,
	cfg *config.AppConfig,
) *AuthenticationHandler {
	return &AuthenticationHandler{
		authenticationService,
		jwtServiceInterface,
		cfg,
	}
}

// Register godoc
// @Summary Регистрация нового пользователя
// @Description Создает пользователя с ролью USER. Логином служит номер телефона.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.RegisterRequest true "Тело запроса"
// @Success 201 {object} requestresponse.RegisterResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректный JSON или слабый пароль"
// @Failure 409 {object} requestresponse.ErrorResponse "Телефон или email уже заняты"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/auth/register [post]
func (h *AuthenticationHandler) Register(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	var req requestresponse.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "некорректный JSON")
		return
	}

	if req.Name == "" || req.PhoneNumber == "" || req.Password == "" {
		sendErrorResponse(w, http.StatusBadRequest, "name, phone_number и password обязательны")
		return
	}

	user, err := h.AuthenticationService.Register(ctx, model.RegisterUserInput{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		Password:    req.Password,
		Age:         req.Age,
		Sex:         req.Sex,
		Location:    req.Location,
	})
	if err != nil {
		log.Println(err)
		switch {
		case errors.Is(err, service.ErrConflict):
			// дубликат телефона/email — это 409, а не неклассифицированный сбой
			sendErrorResponse(w, http.StatusConflict, "телефон или email уже заняты")
		case errors.Is(err, service.ErrValidation):
			sendErrorResponse(w, http.StatusBadRequest, err.Error())
		default:
			sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		}
		return
	}

	resp := requestresponse.RegisterResponse{
		User: requestresponse.RegisteredUser{
			UUID:        user.UUID,
			Name:        user.Name,
			PhoneNumber: user.PhoneNumber,
			Role:        user.Role,
		},
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resp)
}

// Login godoc
// @Summary Аутентификация пользователя
// @Description Проверяет телефон и пароль, возвращает access-токен и ставит refresh-cookie.
// @Description Несуществующий логин и неверный пароль наружу неразличимы.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.LoginRequest true "Тело запроса"
// @Success 200 {object} requestresponse.AccessTokenResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректный JSON или пустые поля"
// @Failure 401 {object} requestresponse.ErrorResponse "Неверные учетные данные или неактивная учетная запись"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/auth/login [post]
func (h *AuthenticationHandler) Login(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	var req requestresponse.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "некорректный JSON")
		return
	}

	if req.PhoneNumber == "" || req.Password == "" {
		sendErrorResponse(w, http.StatusBadRequest, "phone_number и password обязательны")
		return
	}

	identity, err := h.AuthenticationService.Login(ctx, req.PhoneNumber, req.Password)
	if err != nil {
		log.Println(err)
		switch {
		case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrUserInactive):
			// причины различаются только в логе выше
			sendErrorResponse(w, http.StatusUnauthorized, "неверный логин или пароль")
		default:
			sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		}
		return
	}

	accessToken, err := h.JWTServiceInterface.GenerateAccessToken(identity.UUID, identity.Role)
	if err != nil {
		log.Println(err)
		sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		return
	}

	refresh, err := h.AuthenticationService.IssueRefreshToken(ctx, identity.UUID, r.UserAgent(), r.RemoteAddr)
	if err != nil {
		log.Println(err)
		sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		return
	}

	http.SetCookie(w, security.RefreshCookie(refresh.RawToken, refresh.ExpiresAt, h.cfg.IsProduction()))

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(requestresponse.AccessTokenResponse{AccessToken: accessToken})
}

// Refresh godoc
// @Summary Ротация refresh-токена
// @Description Обменивает refresh-токен из cookie на новый access-токен и новую refresh-cookie.
// @Description Предъявленный токен отзывается атомарно с выпуском преемника; любая причина отказа — единый 401.
// @Tags Authentication
// @Produce json
// @Success 200 {object} requestresponse.AccessTokenResponse
// @Failure 401 {object} requestresponse.ErrorResponse "Токен отсутствует, просрочен, отозван или неизвестен"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/auth/refresh [post]
func (h *AuthenticationHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	cookie, err := r.Cookie(security.RefreshCookieName)
	if err != nil || cookie.Value == "" {
		sendErrorResponse(w, http.StatusUnauthorized, "не удалось обновить токены")
		return
	}

	rotated, err := h.AuthenticationService.RotateRefreshToken(ctx, cookie.Value, r.UserAgent(), r.RemoteAddr)
	if err != nil {
		log.Println(err)
		switch {
		case errors.Is(err, service.ErrInvalidToken),
			errors.Is(err, service.ErrTokenRevoked),
			errors.Is(err, service.ErrTokenExpired),
			errors.Is(err, service.ErrUserUnavailable):
			sendErrorResponse(w, http.StatusUnauthorized, "не удалось обновить токены")
		default:
			sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		}
		return
	}

	accessToken, err := h.JWTServiceInterface.GenerateAccessToken(rotated.UserUUID, rotated.Role)
	if err != nil {
		log.Println(err)
		sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		return
	}

	http.SetCookie(w, security.RefreshCookie(rotated.NewRawToken, rotated.NewExpiresAt, h.cfg.IsProduction()))

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(requestresponse.AccessTokenResponse{AccessToken: accessToken})
}

// Logout godoc
// @Summary Завершение сессии
// @Description Отзывает refresh-токен из cookie и сбрасывает cookie.
// @Description Идемпотентен: повторный logout и logout без cookie — тоже 200.
// @Tags Authentication
// @Produce json
// @Success 200 {object} requestresponse.LogoutResponse
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/auth/logout [post]
func (h *AuthenticationHandler) Logout(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	if cookie, err := r.Cookie(security.RefreshCookieName); err == nil && cookie.Value != "" {
		if err := h.AuthenticationService.RevokeRefreshToken(ctx, cookie.Value); err != nil {
			log.Println(err)
			sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
			return
		}
	}

	http.SetCookie(w, security.ClearRefreshCookie(h.cfg.IsProduction()))

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(requestresponse.LogoutResponse{Ok: true})
}

// Me godoc
// @Summary Текущий пользователь
// @Description Возвращает идентичность из access-токена
// @Tags Authentication
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.CurrentUserResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/auth/me [get]
func (h *AuthenticationHandler) Me(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		sendErrorResponse(w, http.StatusUnauthorized, "не авторизован")
		return
	}

	resp := requestresponse.CurrentUserResponse{}
	resp.Response.UserUUID = claims.UserUUID
	resp.Response.Role = claims.Role

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}
