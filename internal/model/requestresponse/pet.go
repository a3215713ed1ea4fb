package requestresponse

import "pet-adoption-server/internal/model"

// PetMediaInput : медиа в теле создания/замены
type PetMediaInput struct {
	MediaType string `json:"media_type" example:"IMAGE"`
	URL       string `json:"url" example:"https://bucket.s3.eu-central-1.amazonaws.com/pets/123"`
	IsProfile bool   `json:"is_profile" example:"true"`
}

// CreatePetRequest : тело запроса создания карточки
type CreatePetRequest struct {
	Name        string          `json:"name" example:"Барсик"`
	BirthDate   *string         `json:"birth_date,omitempty" example:"2021-04-01"`
	Age         *int            `json:"age,omitempty" example:"3"`
	Sex         *string         `json:"sex,omitempty" example:"MALE"`
	Breed       *string         `json:"breed,omitempty" example:"сиамская"`
	AdoptionFee *int64          `json:"adoption_fee,omitempty" example:"0"`
	Category    string          `json:"category" example:"STRAY"`
	Type        string          `json:"type" example:"CAT"`
	Location    *string         `json:"location,omitempty" example:"Алматы"`
	About       *string         `json:"about,omitempty" example:"очень ласковый"`
	ContactInfo *string         `json:"contact_info,omitempty" example:"+7700..."`
	Vaccinated  *bool           `json:"vaccinated,omitempty" example:"true"`
	Dewormed    *bool           `json:"dewormed,omitempty" example:"false"`
	Sprayed     *bool           `json:"sprayed,omitempty" example:"false"`
	IsActive    *bool           `json:"is_active,omitempty" example:"true"`
	Media       []PetMediaInput `json:"media,omitempty"`
}

// PetResponse : карточка с медиа
type PetResponse struct {
	Pet   *model.Pet       `json:"pet"`
	Media []model.PetMedia `json:"media"`
}

// PetListResponse : список карточек
type PetListResponse struct {
	Pets []model.Pet `json:"pets"`
}

// ReplaceMediaRequest : тело полной замены медиа
type ReplaceMediaRequest struct {
	Media []PetMediaInput `json:"media"`
}

// ReplaceMediaResponse : новый набор медиа после замены
type ReplaceMediaResponse struct {
	Media []model.PetMedia `json:"media"`
}

// DeletePetResponse : ответ на удаление
type DeletePetResponse struct {
	Ok   bool   `json:"ok" example:"true"`
	UUID string `json:"uuid" example:"b6a1e1c4-4b1d-4f1e-8b29-1234567890ab"`
}
