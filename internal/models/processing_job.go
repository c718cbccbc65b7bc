package models

import "time"

// CropJob asks a worker to crop an object held in remote storage in place.
type CropJob struct {
	ID        string      `json:"id"`
	Path      string      `json:"path" binding:"required"`
	Request   CropRequest `json:"request"`
	Status    string      `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	Result    *CropReport `json:"result,omitempty"`
	Error     string      `json:"error,omitempty"`
	ErrorKind string      `json:"error_kind,omitempty"`
}

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// QueueStats describes the crop job queue as seen by the broker.
type QueueStats struct {
	Name      string `json:"name"`
	Messages  int    `json:"messages"`
	Consumers int    `json:"consumers"`
}
