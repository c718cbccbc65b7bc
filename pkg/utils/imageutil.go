package utils

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

var (
	tiffLittleEndian = []byte("II*\x00")
	tiffBigEndian    = []byte("MM\x00*")
)

// DetectContentType sniffs the MIME type of an encoded image. TIFF is
// recognized on top of what net/http knows about.
func DetectContentType(data []byte) string {
	if bytes.HasPrefix(data, tiffLittleEndian) || bytes.HasPrefix(data, tiffBigEndian) {
		return "image/tiff"
	}
	return http.DetectContentType(data)
}

// IsValidImageType checks if content type is a format the croppers decode
func IsValidImageType(contentType string) bool {
	validTypes := []string{
		"image/jpeg",
		"image/jpg",
		"image/png",
		"image/gif",
		"image/bmp",
		"image/tiff",
	}

	ct := strings.ToLower(contentType)
	for _, validType := range validTypes {
		if strings.Contains(ct, validType) {
			return true
		}
	}
	return false
}

// ContentTypeForFormat maps a decoder format name ("png", "gif", ...) to its
// MIME type.
func ContentTypeForFormat(format string) string {
	switch strings.ToLower(format) {
	case "jpeg", "jpg":
		return "image/jpeg"
	case "tif", "tiff":
		return "image/tiff"
	case "":
		return "application/octet-stream"
	default:
		return "image/" + strings.ToLower(format)
	}
}

// NewJobID generates a unique identifier for a crop job or request.
func NewJobID() string {
	return uuid.New().String()
}
