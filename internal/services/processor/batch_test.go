package processor

import (
	"image"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCropFiles(t *testing.T) {
	p := NewImageProcessor()
	a := writeTemp(t, "a.png", encodePNG(t, pixelImage(6, 6, image.Pt(1, 1))))
	b := writeTemp(t, "b.png", encodePNG(t, image.NewNRGBA(image.Rect(0, 0, 4, 4))))
	missing := filepath.Join(t.TempDir(), "missing.png")

	results := p.CropFiles([]string{a, b, a, missing}, nil, 3)
	require.Len(t, results, 3)

	require.Equal(t, a, results[0].Path)
	require.NoError(t, results[0].Err)
	require.True(t, results[0].Report.Changed)

	require.Equal(t, b, results[1].Path)
	require.ErrorIs(t, results[1].Err, ErrEmptyContent)

	require.Equal(t, missing, results[2].Path)
	require.ErrorIs(t, results[2].Err, ErrNotFound)
}

func TestCropFilesEmpty(t *testing.T) {
	p := NewImageProcessor()
	require.Empty(t, p.CropFiles(nil, nil, 0))
}
