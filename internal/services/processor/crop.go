package processor

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/phambaophuc/image-autocrop/internal/models"
)

func (p *ImageProcessor) cropStatic(data []byte, format string, policy models.Policy) (*bytes.Buffer, *models.CropReport, error) {
	outFormat, err := imaging.FormatFromExtension(format)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: unsupported format %q: %w", ErrEncode, format, err)
	}

	src, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	if policy == "" {
		policy = models.PolicyBounds
	}

	img := imaging.Clone(src)
	canvas := img.Bounds()
	report := &models.CropReport{
		Format:   format,
		Mode:     models.ModeStatic,
		Policy:   policy,
		Frames:   1,
		Original: sizeOf(canvas),
	}

	content, ok := OpaqueBounds(img)
	if !ok {
		return nil, report, ErrEmptyContent
	}

	box := CropBox(canvas, content, policy)
	report.Content = models.BoxFromRect(content)
	report.Box = models.BoxFromRect(box)
	report.Cropped = sizeOf(box)
	report.Changed = box != canvas
	if !report.Changed {
		return bytes.NewBuffer(data), report, nil
	}

	var fallback color.Palette
	if pm, ok := src.(*image.Paletted); ok {
		fallback = pm.Palette
	}

	buffer := &bytes.Buffer{}
	if err := p.encodeImage(buffer, imaging.Crop(img, box), outFormat, fallback); err != nil {
		return nil, report, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return buffer, report, nil
}
