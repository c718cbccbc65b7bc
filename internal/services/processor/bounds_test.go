package processor

import (
	"image"
	"image/color"
	"testing"

	"github.com/phambaophuc/image-autocrop/internal/models"
	"github.com/stretchr/testify/require"
)

func TestOpaqueBoundsSinglePixel(t *testing.T) {
	for _, pt := range []image.Point{{0, 0}, {3, 7}, {9, 9}, {5, 0}} {
		img := pixelImage(10, 10, pt)
		r, ok := OpaqueBounds(img)
		require.True(t, ok)
		require.Equal(t, image.Rect(pt.X, pt.Y, pt.X+1, pt.Y+1), r, "pixel %v", pt)
	}
}

func TestOpaqueBoundsTransparent(t *testing.T) {
	_, ok := OpaqueBounds(image.NewNRGBA(image.Rect(0, 0, 8, 8)))
	require.False(t, ok)

	_, ok = OpaqueBounds(image.NewNRGBA(image.Rect(0, 0, 0, 0)))
	require.False(t, ok)
}

func TestOpaqueBoundsAnyAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 6, 6))
	img.SetNRGBA(1, 2, color.NRGBA{A: 1})
	img.SetNRGBA(4, 4, color.NRGBA{R: 0xff, A: 0x80})
	r, ok := OpaqueBounds(img)
	require.True(t, ok)
	require.Equal(t, image.Rect(1, 2, 5, 5), r)
}

func TestOpaqueBoundsImageKinds(t *testing.T) {
	want := image.Rect(2, 3, 5, 4)

	rgba := image.NewRGBA(image.Rect(0, 0, 8, 8))
	rgba.Set(2, 3, opaqueGreen)
	rgba.Set(4, 3, opaqueGreen)

	pal := image.NewPaletted(image.Rect(0, 0, 8, 8), gifPalette)
	pal.SetColorIndex(2, 3, 2)
	pal.SetColorIndex(4, 3, 1)

	gray := image.NewGray(image.Rect(0, 0, 8, 8))

	for name, tc := range map[string]struct {
		img  image.Image
		want image.Rectangle
		ok   bool
	}{
		"rgba":     {rgba, want, true},
		"paletted": {pal, want, true},
		"gray":     {gray, gray.Bounds(), true},
	} {
		t.Run(name, func(t *testing.T) {
			r, ok := OpaqueBounds(tc.img)
			require.Equal(t, tc.ok, ok)
			require.Equal(t, tc.want, r)
		})
	}
}

func TestOpaqueBoundsOffsetOrigin(t *testing.T) {
	img := image.NewNRGBA(image.Rect(10, 20, 30, 40))
	img.SetNRGBA(15, 25, opaqueRed)
	r, ok := OpaqueBounds(img)
	require.True(t, ok)
	require.Equal(t, image.Rect(15, 25, 16, 26), r)
}

func TestUnionBounds(t *testing.T) {
	u := UnionBounds(
		image.Rect(2, 2, 4, 3),
		image.Rectangle{},
		image.Rect(0, 5, 1, 6),
		image.Rect(3, 8, 9, 9),
	)
	require.Equal(t, image.Rect(0, 2, 9, 9), u)
	require.True(t, UnionBounds().Empty())
}

func TestCropBox(t *testing.T) {
	canvas := image.Rect(0, 0, 10, 12)
	content := image.Rect(3, 2, 7, 9)

	require.Equal(t, content, CropBox(canvas, content, models.PolicyBounds))
	require.Equal(t, content, CropBox(canvas, content, ""))
	require.Equal(t, image.Rect(0, 0, 10, 9), CropBox(canvas, content, models.PolicyBottom))

	box := CropBox(canvas, image.Rect(-2, -2, 20, 20), models.PolicyBounds)
	require.True(t, box.In(canvas))
}
