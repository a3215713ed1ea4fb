package requestresponse

import "pet-adoption-server/internal/model"

// ProfileResponse : профиль пользователя с его карточками
type ProfileResponse struct {
	User *model.User `json:"user"`
	Pets []model.Pet `json:"pets"`
}

// UpdateProfileRequest : частичное обновление профиля
type UpdateProfileRequest struct {
	Name        *string `json:"name,omitempty" example:"Ana"`
	PhoneNumber *string `json:"phone_number,omitempty" example:"+15550002"`
	Location    *string `json:"location,omitempty" example:"Astana"`
}

// UpdateProfileResponse : успешный ответ
type UpdateProfileResponse struct {
	User *model.User `json:"user"`
}

// PresignedURLResponse : временная ссылка на объект в хранилище
type PresignedURLResponse struct {
	URL string `json:"url" example:"https://bucket.s3.eu-central-1.amazonaws.com/pets/123?X-Amz-Signature=..."`
}

// UploadResponse : результат загрузки файла в хранилище
type UploadResponse struct {
	URL       string `json:"url" example:"https://bucket.s3.eu-central-1.amazonaws.com/pets/123"`
	Key       string `json:"key" example:"pets/123"`
	MediaType string `json:"media_type" example:"IMAGE"`
}
