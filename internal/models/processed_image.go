package models

import (
	"fmt"
	"image"
)

// Box is a half-open rectangle: Left/Top inclusive, Right/Bottom exclusive.
type Box struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

func BoxFromRect(r image.Rectangle) Box {
	return Box{Left: r.Min.X, Top: r.Min.Y, Right: r.Max.X, Bottom: r.Max.Y}
}

func (b Box) Rect() image.Rectangle {
	return image.Rect(b.Left, b.Top, b.Right, b.Bottom)
}

func (b Box) String() string {
	return fmt.Sprintf("(%d, %d, %d, %d)", b.Left, b.Top, b.Right, b.Bottom)
}

type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// CropReport describes what a crop did (or would do) to one image.
type CropReport struct {
	Path     string `json:"path,omitempty"`
	Format   string `json:"format"`
	Mode     Mode   `json:"mode"`
	Policy   Policy `json:"policy"`
	Frames   int    `json:"frames"`
	Original Size   `json:"original"`
	Content  Box    `json:"content"`
	Box      Box    `json:"box"`
	Cropped  Size   `json:"cropped"`
	// Changed is false when the crop box covers the whole image; nothing is
	// written in that case.
	Changed bool `json:"changed"`
}
