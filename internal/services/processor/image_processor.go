package processor

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"io"

	"github.com/phambaophuc/image-autocrop/internal/models"
)

type ImageProcessor struct{}

func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{}
}

// Crop reads an encoded image from r and crops its transparent margins.
// See CropBytes.
func (p *ImageProcessor) Crop(r io.Reader, req *models.CropRequest) (*bytes.Buffer, *models.CropReport, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: failed to read image: %w", ErrDecode, err)
	}
	return p.CropBytes(data, req)
}

// CropBytes crops the transparent margins of the encoded image in data and
// returns the re-encoded result in the same format. When the crop box covers
// the whole image the returned buffer holds data unchanged and
// report.Changed is false.
//
// The report is returned alongside ErrEmptyContent so callers can still
// print the image size.
func (p *ImageProcessor) CropBytes(data []byte, req *models.CropRequest) (*bytes.Buffer, *models.CropReport, error) {
	if req == nil {
		req = &models.CropRequest{}
	}
	if !req.Mode.Valid() {
		return nil, nil, fmt.Errorf("invalid mode %q", req.Mode)
	}
	if !req.Policy.Valid() {
		return nil, nil, fmt.Errorf("invalid policy %q", req.Policy)
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	if format == "gif" && req.Mode != models.ModeStatic {
		g, err := gif.DecodeAll(bytes.NewReader(data))
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrDecode, err)
		}
		if req.Mode == models.ModeAnimated || len(g.Image) > 1 {
			return p.cropAnimation(data, g, req.Policy)
		}
	}

	if req.Mode == models.ModeAnimated {
		return nil, nil, fmt.Errorf("%w: %s images have no frames to animate", ErrDecode, format)
	}
	return p.cropStatic(data, format, req.Policy)
}

func sizeOf(r image.Rectangle) models.Size {
	return models.Size{Width: r.Dx(), Height: r.Dy()}
}
