package storage

import (
	"bytes"
	"context"
	"fmt"

	storage_go "github.com/supabase-community/storage-go"
)

// Replace overwrites the object at path with data.
func (s *StorageService) Replace(ctx context.Context, path string, data []byte, contentType string) error {
	if s.sbClient == nil {
		return ErrNotConfigured
	}
	_, err := s.sbClient.UpdateFile(s.bucket, path, bytes.NewReader(data), storage_go.FileOptions{
		ContentType: &contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to update %q in supabase: %w", path, err)
	}
	return nil
}
