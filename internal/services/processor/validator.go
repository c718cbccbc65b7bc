package processor

import (
	"bytes"
	"errors"
	"fmt"
	"image"
)

var ErrTooLarge = errors.New("image too large")

// ValidateImage checks the size limit and that data holds a decodable image
// header.
func (p *ImageProcessor) ValidateImage(data []byte, maxSize int64) error {
	if maxSize > 0 && int64(len(data)) > maxSize {
		return fmt.Errorf("%w: size %d exceeds maximum allowed size %d", ErrTooLarge, len(data), maxSize)
	}

	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("%w: invalid image format: %w", ErrDecode, err)
	}
	return nil
}
