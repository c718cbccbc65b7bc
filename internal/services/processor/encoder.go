package processor

import (
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"io"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

const jpegQuality = 95

func (p *ImageProcessor) encodeImage(w io.Writer, img image.Image, format imaging.Format, fallback color.Palette) error {
	switch format {
	case imaging.GIF:
		// imaging quantizes GIFs against Plan9, which has no transparent entry.
		return gif.Encode(w, toPaletted(img, fallback), nil)
	case imaging.JPEG:
		return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality))
	default:
		return imaging.Encode(w, img, format)
	}
}

// toPaletted converts img to a paletted image that keeps a fully transparent
// entry. Images with at most 256 distinct colors are converted losslessly;
// otherwise pixels are mapped to the nearest color of fallback (or Plan9).
func toPaletted(img image.Image, fallback color.Palette) *image.Paletted {
	b := img.Bounds()
	pal := exactPalette(img)
	if pal == nil {
		if len(fallback) == 0 {
			fallback = palette.Plan9
		}
		pal = withTransparent(fallback)
	}
	dst := image.NewPaletted(b, pal)
	draw.Copy(dst, b.Min, img, b, draw.Src, nil)
	return dst
}

// exactPalette returns the distinct colors of img, or nil when there are more
// than 256 of them. Fully transparent pixels share a single entry.
func exactPalette(img image.Image) color.Palette {
	b := img.Bounds()
	seen := make(map[color.NRGBA]struct{}, 256)
	pal := make(color.Palette, 0, 256)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.A == 0 {
				c = color.NRGBA{}
			}
			if _, ok := seen[c]; ok {
				continue
			}
			if len(pal) == 256 {
				return nil
			}
			seen[c] = struct{}{}
			pal = append(pal, c)
		}
	}
	if len(pal) == 0 {
		pal = append(pal, color.NRGBA{})
	}
	return pal
}

func withTransparent(p color.Palette) color.Palette {
	out := make(color.Palette, len(p), len(p)+1)
	copy(out, p)
	for _, c := range out {
		if _, _, _, a := c.RGBA(); a == 0 {
			return out
		}
	}
	if len(out) < 256 {
		return append(out, color.NRGBA{})
	}
	out[len(out)-1] = color.NRGBA{}
	return out
}
