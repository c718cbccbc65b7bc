package models

// Mode selects which cropper handles an image.
type Mode string

const (
	ModeStatic   Mode = "static"
	ModeAnimated Mode = "animated"
	// ModeAuto uses the animated cropper for multi-frame GIFs and the static
	// cropper for everything else.
	ModeAuto Mode = "auto"
)

// Policy decides which edges of the content bounds are trimmed.
type Policy string

const (
	// PolicyBounds crops to the tight bounding box of the content.
	PolicyBounds Policy = "bounds"
	// PolicyBottom keeps the canvas origin and width and only pulls the
	// bottom edge up to the lowest content row.
	PolicyBottom Policy = "bottom"
)

type CropRequest struct {
	Mode   Mode   `json:"mode" binding:"omitempty,oneof=static animated auto"`
	Policy Policy `json:"policy" binding:"omitempty,oneof=bounds bottom"`
}

// Valid reports whether m is a known mode. The empty mode is treated as auto.
func (m Mode) Valid() bool {
	switch m {
	case "", ModeStatic, ModeAnimated, ModeAuto:
		return true
	}
	return false
}

// Valid reports whether p is a known policy. The empty policy selects the
// cropper's default.
func (p Policy) Valid() bool {
	switch p {
	case "", PolicyBounds, PolicyBottom:
		return true
	}
	return false
}
