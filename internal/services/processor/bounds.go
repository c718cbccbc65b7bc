package processor

import (
	"image"

	"github.com/phambaophuc/image-autocrop/internal/models"
)

// OpaqueBounds returns the smallest rectangle holding every pixel of img
// whose alpha is non-zero. ok is false when img is fully transparent.
func OpaqueBounds(img image.Image) (r image.Rectangle, ok bool) {
	b := img.Bounds()
	minX, minY := b.Max.X, b.Max.Y
	maxX, maxY := b.Min.X-1, b.Min.Y-1

	mark := func(x, y int) {
		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
	}

	switch src := img.(type) {
	case *image.NRGBA:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			i := src.PixOffset(b.Min.X, y)
			for x := b.Min.X; x < b.Max.X; x++ {
				if src.Pix[i+3] != 0 {
					mark(x, y)
				}
				i += 4
			}
		}
	case *image.RGBA:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			i := src.PixOffset(b.Min.X, y)
			for x := b.Min.X; x < b.Max.X; x++ {
				if src.Pix[i+3] != 0 {
					mark(x, y)
				}
				i += 4
			}
		}
	default:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				if _, _, _, a := img.At(x, y).RGBA(); a != 0 {
					mark(x, y)
				}
			}
		}
	}

	if maxX < minX || maxY < minY {
		return image.Rectangle{}, false
	}
	return image.Rect(minX, minY, maxX+1, maxY+1), true
}

// UnionBounds returns the smallest rectangle containing every non-empty box.
func UnionBounds(boxes ...image.Rectangle) image.Rectangle {
	var u image.Rectangle
	for _, b := range boxes {
		u = u.Union(b)
	}
	return u
}

// CropBox turns the content bounds found inside canvas into the rectangle
// the image is cropped to.
func CropBox(canvas, content image.Rectangle, policy models.Policy) image.Rectangle {
	switch policy {
	case models.PolicyBottom:
		return image.Rect(canvas.Min.X, canvas.Min.Y, canvas.Max.X, content.Max.Y).Intersect(canvas)
	default:
		return content.Intersect(canvas)
	}
}
