package models

// CropResult pairs a path from a batch with its outcome.
type CropResult struct {
	Path   string      `json:"path"`
	Report *CropReport `json:"report,omitempty"`
	Err    error       `json:"-"`
}
