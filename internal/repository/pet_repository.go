package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"pet-adoption-server/config"
	"pet-adoption-server/internal/model"
	"pet-adoption-server/internal/util"

	"github.com/jmoiron/sqlx"
)

// колонки pets, которые разрешено менять через patch
var petPatchColumns = map[string]bool{
	"name": true, "birth_date": true, "age": true, "sex": true,
	"breed": true, "adoption_fee": true, "category": true, "type": true,
	"location": true, "about": true, "contact_info": true,
	"vaccinated": true, "dewormed": true, "sprayed": true, "is_active": true,
}

const petColumns = `uuid, name, birth_date, age, sex, breed, adoption_fee, category, type,
		location, about, contact_info, vaccinated, dewormed, sprayed, created_by, is_active, created_at, updated_at`

type PetRepository struct {
	*config.Database
}

func NewPetRepository(database *config.Database) *PetRepository {
	return &PetRepository{database}
}

// Create : сохраняет новую карточку
func (r *PetRepository) Create(ctx context.Context, exec sqlx.ExtContext, pet *model.Pet) (*model.Pet, error) {
	query := `
	INSERT INTO pets (uuid, name, birth_date, age, sex, breed, adoption_fee, category, type,
		location, about, contact_info, vaccinated, dewormed, sprayed, created_by, is_active)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	RETURNING ` + petColumns

	created := &model.Pet{}
	err := exec.QueryRowxContext(ctx, query,
		pet.UUID, pet.Name, pet.BirthDate, pet.Age, pet.Sex, pet.Breed, pet.AdoptionFee,
		pet.Category, pet.Type, pet.Location, pet.About, pet.ContactInfo,
		pet.Vaccinated, pet.Dewormed, pet.Sprayed, pet.CreatedBy, pet.IsActive,
	).StructScan(created)

	if err != nil {
		return nil, util.LogError("[PetRepo] ошибка вставки карточки в БД", err)
	}

	return created, nil
}

// GetByUUID : возвращает карточку
func (r *PetRepository) GetByUUID(ctx context.Context, exec sqlx.ExtContext, petUUID string) (*model.Pet, error) {
	query := `SELECT ` + petColumns + ` FROM pets WHERE uuid = $1`

	var pet model.Pet
	err := sqlx.GetContext(ctx, exec, &pet, query, petUUID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, util.LogError("[PetRepo] не удалось найти карточку", err)
	}

	return &pet, nil
}

// List : список карточек с фильтрами из query-строки.
// search ищет по name/breed/location/about через ILIKE.
func (r *PetRepository) List(ctx context.Context, exec sqlx.ExtContext, filter model.PetFilter) ([]model.Pet, error) {
	where := make([]string, 0, 5)
	values := make([]interface{}, 0, 7)

	if filter.Type != "" {
		values = append(values, filter.Type)
		where = append(where, fmt.Sprintf("type = $%d", len(values)))
	}
	if filter.Category != "" {
		values = append(values, filter.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(values)))
	}
	if filter.IsActive != nil {
		values = append(values, *filter.IsActive)
		where = append(where, fmt.Sprintf("is_active = $%d", len(values)))
	}
	if filter.CreatedBy != "" {
		values = append(values, filter.CreatedBy)
		where = append(where, fmt.Sprintf("created_by = $%d", len(values)))
	}
	if filter.Search != "" {
		values = append(values, "%"+filter.Search+"%")
		n := len(values)
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR breed ILIKE $%d OR location ILIKE $%d OR about ILIKE $%d)", n, n, n, n))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	whereSQL := ""
	if len(where) > 0 {
		whereSQL = "WHERE " + strings.Join(where, " AND ")
	}

	values = append(values, limit, offset)
	query := fmt.Sprintf(`
		SELECT %s
		FROM pets
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, petColumns, whereSQL, len(values)-1, len(values))

	var pets []model.Pet
	if err := sqlx.SelectContext(ctx, exec, &pets, query, values...); err != nil {
		return nil, util.LogError("[PetRepo] не удалось получить список карточек", err)
	}

	return pets, nil
}

// Update : частичное обновление карточки, неизвестные колонки отбрасываются
func (r *PetRepository) Update(ctx context.Context, exec sqlx.ExtContext, petUUID string, patch map[string]interface{}) (*model.Pet, error) {
	sets := make([]string, 0, len(patch))
	values := make([]interface{}, 0, len(patch)+1)

	for column, value := range patch {
		if !petPatchColumns[column] {
			continue
		}
		values = append(values, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(values)))
	}

	if len(sets) == 0 {
		return nil, fmt.Errorf("[PetRepo] нет полей для обновления")
	}

	values = append(values, petUUID)
	query := fmt.Sprintf(`
		UPDATE pets SET %s, updated_at = NOW()
		WHERE uuid = $%d
		RETURNING %s
	`, strings.Join(sets, ", "), len(values), petColumns)

	updated := &model.Pet{}
	if err := exec.QueryRowxContext(ctx, query, values...).StructScan(updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, util.LogError("[PetRepo] не удалось обновить карточку", err)
	}

	return updated, nil
}

// Delete : жесткое удаление, строки pet_media удаляются каскадом
func (r *PetRepository) Delete(ctx context.Context, exec sqlx.ExtContext, petUUID string) error {
	result, err := exec.ExecContext(ctx, `DELETE FROM pets WHERE uuid = $1`, petUUID)
	if err != nil {
		return util.LogError("[PetRepo] не удалось удалить карточку", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[PetRepo] не удалось проверить удаление", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// AddMedia : добавляет медиа к карточке
func (r *PetRepository) AddMedia(ctx context.Context, exec sqlx.ExtContext, media *model.PetMedia) error {
	query := `
	INSERT INTO pet_media (uuid, pet_uuid, media_type, url, is_profile)
	VALUES ($1, $2, $3, $4, $5)
	`
	_, err := exec.ExecContext(ctx, query, media.UUID, media.PetUUID, media.MediaType, media.URL, media.IsProfile)
	if err != nil {
		return util.LogError("[PetRepo] не удалось сохранить медиа", err)
	}
	return nil
}

// ListMedia : медиа карточки, профильное первым
func (r *PetRepository) ListMedia(ctx context.Context, exec sqlx.ExtContext, petUUID string) ([]model.PetMedia, error) {
	query := `
	SELECT uuid, pet_uuid, media_type, url, is_profile, created_at
	FROM pet_media
	WHERE pet_uuid = $1
	ORDER BY is_profile DESC, created_at ASC
	`
	var media []model.PetMedia
	if err := sqlx.SelectContext(ctx, exec, &media, query, petUUID); err != nil {
		return nil, util.LogError("[PetRepo] не удалось получить медиа карточки", err)
	}
	return media, nil
}

// DeleteMedia : удаляет все медиа карточки (используется при полной замене)
func (r *PetRepository) DeleteMedia(ctx context.Context, exec sqlx.ExtContext, petUUID string) error {
	if _, err := exec.ExecContext(ctx, `DELETE FROM pet_media WHERE pet_uuid = $1`, petUUID); err != nil {
		return util.LogError("[PetRepo] не удалось удалить медиа карточки", err)
	}
	return nil
}

// BeginTXx : создание карточки с медиа и замена медиа выполняются одной транзакцией
func (r *PetRepository) BeginTXx(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, nil, err
	}
	return tx, func() error { return tx.Rollback() }, func() error { return tx.Commit() }, nil
}
