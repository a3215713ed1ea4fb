package model

import "time"

const (
	PetTypeDog = "DOG"
	PetTypeCat = "CAT"

	PetCategoryStray = "STRAY"
	PetCategoryOwned = "OWNED"

	MediaTypeImage = "IMAGE"
	MediaTypeVideo = "VIDEO"
)

// Pet : карточка животного
type Pet struct {
	UUID        string     `db:"uuid" json:"uuid"`
	Name        string     `db:"name" json:"name"`
	BirthDate   *time.Time `db:"birth_date" json:"birth_date,omitempty"`
	Age         *int       `db:"age" json:"age,omitempty"`
	Sex         *string    `db:"sex" json:"sex,omitempty"`
	Breed       *string    `db:"breed" json:"breed,omitempty"`
	AdoptionFee int64      `db:"adoption_fee" json:"adoption_fee"`
	Category    string     `db:"category" json:"category"`
	Type        string     `db:"type" json:"type"`
	Location    *string    `db:"location" json:"location,omitempty"`
	About       *string    `db:"about" json:"about,omitempty"`
	ContactInfo *string    `db:"contact_info" json:"contact_info,omitempty"`
	Vaccinated  bool       `db:"vaccinated" json:"vaccinated"`
	Dewormed    bool       `db:"dewormed" json:"dewormed"`
	Sprayed     bool       `db:"sprayed" json:"sprayed"`
	CreatedBy   *string    `db:"created_by" json:"created_by,omitempty"`
	IsActive    bool       `db:"is_active" json:"is_active"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// PetMedia : фото или видео карточки; is_profile может быть максимум у одного
type PetMedia struct {
	UUID      string    `db:"uuid" json:"uuid"`
	PetUUID   string    `db:"pet_uuid" json:"pet_uuid"`
	MediaType string    `db:"media_type" json:"media_type"`
	URL       string    `db:"url" json:"url"`
	IsProfile bool      `db:"is_profile" json:"is_profile"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// PetWithMedia : карточка вместе с медиа, в таком виде она кэшируется в Redis
type PetWithMedia struct {
	Pet   *Pet       `json:"pet"`
	Media []PetMedia `json:"media"`
}

// PetFilter : фильтры списка /api/pets из query-строки
type PetFilter struct {
	Type      string
	Category  string
	IsActive  *bool
	CreatedBy string
	Search    string
	Limit     int
	Offset    int
}
