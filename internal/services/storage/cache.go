package storage

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"

	"github.com/phambaophuc/image-autocrop/internal/models"
	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "autocrop:"

// CachedCrop is a cropped image together with the report that produced it.
type CachedCrop struct {
	Report *models.CropReport `json:"report"`
	Data   []byte             `json:"data"`
}

func (s *StorageService) GetFromCache(ctx context.Context, cacheKey string) ([]byte, error) {
	if s.redisClient == nil {
		return nil, nil
	}
	data, err := s.redisClient.Get(ctx, cacheKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, fmt.Errorf("cache get error: %w", err)
	}
	return data, nil
}

func (s *StorageService) SetCache(ctx context.Context, cacheKey string, data []byte) error {
	if s.redisClient == nil {
		return nil
	}
	return s.redisClient.Set(ctx, cacheKey, data, s.cacheDuration).Err()
}

// GetCrop returns the cached crop for cacheKey, or nil on a miss.
func (s *StorageService) GetCrop(ctx context.Context, cacheKey string) (*CachedCrop, error) {
	data, err := s.GetFromCache(ctx, cacheKey)
	if err != nil || data == nil {
		return nil, err
	}
	var cached CachedCrop
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, fmt.Errorf("cache decode error: %w", err)
	}
	return &cached, nil
}

func (s *StorageService) SetCrop(ctx context.Context, cacheKey string, cached *CachedCrop) error {
	data, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("cache encode error: %w", err)
	}
	return s.SetCache(ctx, cacheKey, data)
}

// GenerateCacheKey derives a key from the source image bytes and the crop
// parameters.
func GenerateCacheKey(data []byte, req *models.CropRequest) string {
	hash := md5.New()
	hash.Write(data)
	if req != nil {
		hash.Write([]byte(fmt.Sprintf("mode_%s_policy_%s", req.Mode, req.Policy)))
	}
	return fmt.Sprintf("%s%x", cacheKeyPrefix, hash.Sum(nil))
}
