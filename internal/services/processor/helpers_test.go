package processor

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	opaqueRed   = color.NRGBA{R: 0xff, A: 0xff}
	opaqueGreen = color.NRGBA{G: 0xff, A: 0xff}
	gifPalette  = color.Palette{color.RGBA{}, color.RGBA{R: 0xff, A: 0xff}, color.RGBA{B: 0xff, A: 0xff}}
)

// pixelImage returns a transparent w x h image with opaque pixels at pts.
func pixelImage(w, h int, pts ...image.Point) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for _, pt := range pts {
		img.SetNRGBA(pt.X, pt.Y, opaqueRed)
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// rowFrame returns a transparent paletted frame with one opaque row.
func rowFrame(w, h, row int) *image.Paletted {
	m := image.NewPaletted(image.Rect(0, 0, w, h), gifPalette)
	if row >= 0 {
		for x := 0; x < w; x++ {
			m.SetColorIndex(x, row, 1)
		}
	}
	return m
}

func encodeGIF(t *testing.T, g *gif.GIF) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, gif.EncodeAll(&buf, g))
	return buf.Bytes()
}

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0640))
	return path
}
