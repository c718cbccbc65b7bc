package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/phambaophuc/image-autocrop/internal/models"
)

const jobKeyPrefix = cacheKeyPrefix + "job:"

func jobKey(id string) string {
	return jobKeyPrefix + id
}

// SaveJob records the latest state of a crop job.
func (s *StorageService) SaveJob(ctx context.Context, job *models.CropJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}
	return s.SetCache(ctx, jobKey(job.ID), data)
}

// GetJob returns the recorded state of a crop job, or nil when unknown.
func (s *StorageService) GetJob(ctx context.Context, id string) (*models.CropJob, error) {
	data, err := s.GetFromCache(ctx, jobKey(id))
	if err != nil || data == nil {
		return nil, err
	}
	var job models.CropJob
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job: %w", err)
	}
	return &job, nil
}
