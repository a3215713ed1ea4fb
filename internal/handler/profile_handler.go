package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"pet-adoption-server/internal/model"
	"pet-adoption-server/internal/model/requestresponse"
	"pet-adoption-server/internal/ports"
	"pet-adoption-server/internal/security"
	"pet-adoption-server/internal/service"
)

type ProfileHandler struct {
	ports.ProfileService
}

func NewProfileHandler(profileService ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService}
}

// GetProfile godoc
// @Summary Профиль текущего пользователя
// @Description Возвращает профиль без хеша пароля вместе со списком объявлений пользователя
// @Tags Profile
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.ProfileResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/profile [get]
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil {
		sendErrorResponse(w, http.StatusUnauthorized, "не авторизован")
		return
	}

	profile, err := h.ProfileService.GetMyProfile(ctx, claims.UserUUID)
	if err != nil {
		log.Println(err)
		if errors.Is(err, service.ErrUserNotFound) {
			sendErrorResponse(w, http.StatusNotFound, "пользователь не найден")
			return
		}
		sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(requestresponse.ProfileResponse{
		User: profile.User,
		Pets: profile.Pets,
	})
}

// UpdateProfile godoc
// @Summary Обновление профиля
// @Description Частично обновляет имя, телефон и локацию текущего пользователя
// @Tags Profile
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param body body requestresponse.UpdateProfileRequest true "Изменяемые поля"
// @Success 200 {object} requestresponse.UpdateProfileResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 409 {object} requestresponse.ErrorResponse "Номер телефона уже занят"
// @Router /api/profile [patch]
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil {
		sendErrorResponse(w, http.StatusUnauthorized, "не авторизован")
		return
	}

	var req requestresponse.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "некорректный JSON")
		return
	}

	if req.Name == nil && req.PhoneNumber == nil && req.Location == nil {
		sendErrorResponse(w, http.StatusBadRequest, "пустой список изменений")
		return
	}

	user, err := h.ProfileService.UpdateMyProfile(ctx, claims.UserUUID, model.ProfilePatch{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Location:    req.Location,
	})
	if err != nil {
		log.Println(err)
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			sendErrorResponse(w, http.StatusNotFound, "пользователь не найден")
		case errors.Is(err, service.ErrConflict):
			sendErrorResponse(w, http.StatusConflict, "номер телефона уже занят")
		default:
			sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		}
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(requestresponse.UpdateProfileResponse{User: user})
}
