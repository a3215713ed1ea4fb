package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pet-adoption-server/config"
	"pet-adoption-server/internal/model"
	"pet-adoption-server/internal/util"

	"github.com/redis/go-redis/v9"
)

type CacheRepository struct {
	client *config.RedisClient
	ttl    time.Duration
}

func NewCacheRepository(rdb *config.RedisClient, ttl time.Duration) *CacheRepository {
	return &CacheRepository{rdb, ttl}
}

func (r *CacheRepository) SetPet(ctx context.Context, pet *model.PetWithMedia) error {
	data, err := json.Marshal(pet)
	if err != nil {
		return util.LogError("ошибка сериализации карточки", err)
	}

	cmd := r.client.Client.Set(ctx, r.key(pet.Pet.UUID), data, r.ttl)
	if err = cmd.Err(); err != nil {
		return util.LogError("ошибка сохранения в Redis", err)
	}

	return nil
}

func (r *CacheRepository) GetPet(ctx context.Context, uuid string) (*model.PetWithMedia, error) {
	val, err := r.client.Client.Get(ctx, r.key(uuid)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil // нет в кэше
	} else if err != nil {
		return nil, util.LogError("ошибка получения карточки из Redis", err)
	}

	var pet model.PetWithMedia
	if err := json.Unmarshal([]byte(val), &pet); err != nil {
		return nil, util.LogError("ошибка десериализации карточки из кэша", err)
	}
	return &pet, nil
}

func (r *CacheRepository) DeletePet(ctx context.Context, uuid string) error {
	if err := r.client.Client.Del(ctx, r.key(uuid)).Err(); err != nil {
		return util.LogError("ошибка удаления карточки из Redis", err)
	}
	return nil
}

func (r *CacheRepository) key(uuid string) string {
	return fmt.Sprintf("pet:%s", uuid)
}
