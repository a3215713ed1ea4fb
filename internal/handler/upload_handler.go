package handler

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"pet-adoption-server/internal/model"
	"pet-adoption-server/internal/model/requestresponse"
	"pet-adoption-server/internal/ports"
	"pet-adoption-server/internal/security"
)

// максимальный размер загружаемого файла
const maxUploadBytes = 25 << 20

// срок жизни presigned-ссылки на скачивание
const presignedURLTTL = 15 * time.Minute

type UploadHandler struct {
	ports.S3Storage
}

func NewUploadHandler(s3Storage ports.S3Storage) *UploadHandler {
	return &UploadHandler{s3Storage}
}

// UploadPetMedia godoc
// @Summary Загрузка медиа-файла
// @Description Принимает multipart-файл, кладет его в объектное хранилище и возвращает публичный URL
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param file formData file true "Изображение или видео"
// @Success 201 {object} requestresponse.UploadResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/uploads [post]
func (h *UploadHandler) UploadPetMedia(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	if _, err := security.GetClaimsFromContext(ctx); err != nil {
		sendErrorResponse(w, http.StatusUnauthorized, "не авторизован")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "не удалось прочитать multipart-форму")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "поле file обязательно")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	mediaType := model.MediaTypeImage
	if strings.HasPrefix(contentType, "video/") {
		mediaType = model.MediaTypeVideo
	}

	key := fmt.Sprintf("pets/%s", uuid.New().String())

	url, err := h.S3Storage.PutObject(ctx, key, file, contentType)
	if err != nil {
		log.Println(err)
		sendErrorResponse(w, http.StatusInternalServerError, "не удалось загрузить файл")
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(requestresponse.UploadResponse{
		URL:       url,
		Key:       key,
		MediaType: mediaType,
	})
}

// PresignDownload godoc
// @Summary Presigned-ссылка на скачивание
// @Description Возвращает временную ссылку на объект в хранилище
// @Tags Uploads
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param key query string true "Ключ объекта (pets/<uuid>)"
// @Success 200 {object} requestresponse.PresignedURLResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/uploads/presign [get]
func (h *UploadHandler) PresignDownload(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	if _, err := security.GetClaimsFromContext(ctx); err != nil {
		sendErrorResponse(w, http.StatusUnauthorized, "не авторизован")
		return
	}

	key := r.URL.Query().Get("key")
	if !strings.HasPrefix(key, "pets/") {
		sendErrorResponse(w, http.StatusBadRequest, "key должен начинаться с pets/")
		return
	}

	url, err := h.S3Storage.GeneratePresignedGetURL(ctx, key, presignedURLTTL)
	if err != nil {
		log.Println(err)
		sendErrorResponse(w, http.StatusInternalServerError, "не удалось сгенерировать ссылку")
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(requestresponse.PresignedURLResponse{URL: url})
}
