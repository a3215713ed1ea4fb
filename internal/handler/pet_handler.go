package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"pet-adoption-server/internal/model"
	"pet-adoption-server/internal/model/requestresponse"
	"pet-adoption-server/internal/ports"
	"pet-adoption-server/internal/security"
	"pet-adoption-server/internal/service"
)

type PetHandler struct {
	ports.PetService
}

func NewPetHandler(petService ports.PetService) *PetHandler {
	return &PetHandler{petService}
}

// CreatePet godoc
// @Summary Создание объявления о питомце
// @Description Создает карточку питомца вместе с медиа-вложениями одной транзакцией
// @Tags Pets
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param body body requestresponse.CreatePetRequest true "Тело запроса"
// @Success 201 {object} requestresponse.PetResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/pets [post]
func (h *PetHandler) CreatePet(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil {
		sendErrorResponse(w, http.StatusUnauthorized, "не авторизован")
		return
	}

	var req requestresponse.CreatePetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "некорректный JSON")
		return
	}

	if req.Name == "" || req.Type == "" || req.Category == "" {
		sendErrorResponse(w, http.StatusBadRequest, "name, type и category обязательны")
		return
	}

	pet := &model.Pet{
		Name:        req.Name,
		Age:         req.Age,
		Sex:         req.Sex,
		Breed:       req.Breed,
		Category:    req.Category,
		Type:        req.Type,
		Location:    req.Location,
		About:       req.About,
		ContactInfo: req.ContactInfo,
		IsActive:    true,
	}
	if req.BirthDate != nil {
		birthDate, err := time.Parse("2006-01-02", *req.BirthDate)
		if err != nil {
			sendErrorResponse(w, http.StatusBadRequest, "birth_date должен быть в формате YYYY-MM-DD")
			return
		}
		pet.BirthDate = &birthDate
	}
	if req.AdoptionFee != nil {
		pet.AdoptionFee = *req.AdoptionFee
	}
	if req.Vaccinated != nil {
		pet.Vaccinated = *req.Vaccinated
	}
	if req.Dewormed != nil {
		pet.Dewormed = *req.Dewormed
	}
	if req.Sprayed != nil {
		pet.Sprayed = *req.Sprayed
	}
	if req.IsActive != nil {
		pet.IsActive = *req.IsActive
	}

	created, err := h.PetService.CreatePetWithMedia(ctx, claims.UserUUID, pet, mediaFromInput(req.Media))
	if err != nil {
		log.Println(err)
		if errors.Is(err, service.ErrTooManyProfileMedia) {
			sendErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(requestresponse.PetResponse{Pet: created.Pet, Media: created.Media})
}

// ListPets godoc
// @Summary Список питомцев
// @Description Возвращает страницу объявлений с фильтрами по типу, категории и поисковой строке
// @Tags Pets
// @Produce json
// @Param type query string false "Тип питомца" Enums(DOG, CAT)
// @Param category query string false "Категория" Enums(STRAY, OWNED)
// @Param search query string false "Поиск по имени и описанию"
// @Param created_by query string false "UUID владельца объявлений"
// @Param limit query int false "Размер страницы (по умолчанию 20, максимум 100)"
// @Param offset query int false "Смещение"
// @Success 200 {object} requestresponse.PetListResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/pets [get]
func (h *PetHandler) ListPets(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	query := r.URL.Query()
	filter := model.PetFilter{
		Type:      query.Get("type"),
		Category:  query.Get("category"),
		Search:    query.Get("search"),
		CreatedBy: query.Get("created_by"),
	}
	if raw := query.Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil {
			filter.Limit = limit
		}
	}
	if raw := query.Get("offset"); raw != "" {
		if offset, err := strconv.Atoi(raw); err == nil {
			filter.Offset = offset
		}
	}

	pets, err := h.PetService.ListPets(ctx, filter)
	if err != nil {
		log.Println(err)
		sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(requestresponse.PetListResponse{Pets: pets})
}

// GetPet godoc
// @Summary Карточка питомца
// @Description Возвращает питомца с медиа. Горячие карточки отдаются из кеша.
// @Tags Pets
// @Produce json
// @Param uuid path string true "UUID питомца"
// @Success 200 {object} requestresponse.PetResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/pets/{uuid} [get]
func (h *PetHandler) GetPet(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	petUUID := chi.URLParam(r, "uuid")

	pet, err := h.PetService.GetPetByUUID(ctx, petUUID)
	if err != nil {
		log.Println(err)
		if errors.Is(err, service.ErrPetNotFound) {
			sendErrorResponse(w, http.StatusNotFound, "питомец не найден")
			return
		}
		sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(requestresponse.PetResponse{Pet: pet.Pet, Media: pet.Media})
}

// UpdatePet godoc
// @Summary Обновление объявления
// @Description Частичное обновление полей питомца. Разрешено владельцу и администратору.
// @Tags Pets
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param uuid path string true "UUID питомца"
// @Param body body map[string]interface{} true "Изменяемые поля"
// @Success 200 {object} requestresponse.PetResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/pets/{uuid} [patch]
func (h *PetHandler) UpdatePet(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil {
		sendErrorResponse(w, http.StatusUnauthorized, "не авторизован")
		return
	}

	petUUID := chi.URLParam(r, "uuid")

	var patch map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "некорректный JSON")
		return
	}
	if len(patch) == 0 {
		sendErrorResponse(w, http.StatusBadRequest, "пустой список изменений")
		return
	}

	updated, err := h.PetService.UpdatePet(ctx, petUUID, claims.UserUUID, claims.Role, patch)
	if err != nil {
		log.Println(err)
		writePetServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(requestresponse.PetResponse{Pet: updated})
}

// ReplaceMedia godoc
// @Summary Замена медиа питомца
// @Description Атомарно заменяет весь набор вложений; прежние файлы удаляются из хранилища в фоне
// @Tags Pets
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param uuid path string true "UUID питомца"
// @Param body body requestresponse.ReplaceMediaRequest true "Новый набор медиа"
// @Success 200 {object} requestresponse.ReplaceMediaResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/pets/{uuid}/media [put]
func (h *PetHandler) ReplaceMedia(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil {
		sendErrorResponse(w, http.StatusUnauthorized, "не авторизован")
		return
	}

	petUUID := chi.URLParam(r, "uuid")

	var req requestresponse.ReplaceMediaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "некорректный JSON")
		return
	}

	media, err := h.PetService.ReplacePetMedia(ctx, petUUID, claims.UserUUID, claims.Role, mediaFromInput(req.Media))
	if err != nil {
		log.Println(err)
		if errors.Is(err, service.ErrTooManyProfileMedia) {
			sendErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		writePetServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(requestresponse.ReplaceMediaResponse{Media: media})
}

// DeletePet godoc
// @Summary Удаление объявления
// @Description Удаляет питомца вместе с медиа. Разрешено владельцу и администратору.
// @Tags Pets
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param uuid path string true "UUID питомца"
// @Success 200 {object} requestresponse.DeletePetResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/pets/{uuid} [delete]
func (h *PetHandler) DeletePet(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil {
		sendErrorResponse(w, http.StatusUnauthorized, "не авторизован")
		return
	}

	petUUID := chi.URLParam(r, "uuid")

	if err := h.PetService.DeletePet(ctx, petUUID, claims.UserUUID, claims.Role); err != nil {
		log.Println(err)
		writePetServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(requestresponse.DeletePetResponse{Ok: true, UUID: petUUID})
}

func mediaFromInput(items []requestresponse.PetMediaInput) []model.PetMedia {
	media := make([]model.PetMedia, 0, len(items))
	for _, item := range items {
		media = append(media, model.PetMedia{
			MediaType: item.MediaType,
			URL:       item.URL,
			IsProfile: item.IsProfile,
		})
	}
	return media
}

func writePetServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrPetNotFound):
		sendErrorResponse(w, http.StatusNotFound, "питомец не найден")
	case errors.Is(err, service.ErrForbidden):
		sendErrorResponse(w, http.StatusForbidden, "нет прав на изменение этого объявления")
	default:
		sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
	}
}
