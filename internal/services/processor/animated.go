package processor

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/gif"

	"github.com/disintegration/imaging"
	"github.com/phambaophuc/image-autocrop/internal/models"
	"golang.org/x/image/draw"
)

const (
	// defaultDelay is used for frames without a delay, in 1/100 s. The
	// decoder reports a missing delay as 0, so explicit zero delays are
	// normalized to it as well.
	defaultDelay = 10
	// loopForever is the GIF loop count for an endless animation.
	loopForever = 0
)

func (p *ImageProcessor) cropAnimation(data []byte, g *gif.GIF, policy models.Policy) (*bytes.Buffer, *models.CropReport, error) {
	if len(g.Image) == 0 {
		return nil, nil, fmt.Errorf("%w: no frames found", ErrDecode)
	}
	if policy == "" {
		policy = models.PolicyBottom
	}

	frames, canvas := compositeFrames(g)
	report := &models.CropReport{
		Format:   "gif",
		Mode:     models.ModeAnimated,
		Policy:   policy,
		Frames:   len(frames),
		Original: sizeOf(canvas),
	}

	var content image.Rectangle
	for _, frame := range frames {
		if r, ok := OpaqueBounds(frame); ok {
			content = UnionBounds(content, r)
		}
	}
	if content.Empty() {
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

	out := &gif.GIF{
		Image:           make([]*image.Paletted, len(g.Image)),
		Delay:           make([]int, len(g.Image)),
		Disposal:        make([]byte, len(g.Image)),
		LoopCount:       loopCount(g),
		BackgroundIndex: g.BackgroundIndex,
		Config: image.Config{
			ColorModel: g.Config.ColorModel,
			Width:      box.Dx(),
			Height:     box.Dy(),
		},
	}
	for i, m := range g.Image {
		out.Image[i], out.Disposal[i] = cropFrame(m, box, frameDisposal(g, i))
		out.Delay[i] = frameDelay(g, i)
	}

	buffer := &bytes.Buffer{}
	if err := gif.EncodeAll(buffer, out); err != nil {
		return nil, report, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return buffer, report, nil
}

// cropFrame cuts the part of frame m that lies inside box and moves it to
// the cropped screen. Pixel indexes and the palette are kept as they are, so
// frames with local color tables survive unchanged. A frame that lies fully
// outside box becomes a single transparent pixel that is not disposed.
func cropFrame(m *image.Paletted, box image.Rectangle, disposal byte) (*image.Paletted, byte) {
	r := m.Bounds().Intersect(box)
	if r.Empty() {
		blank := image.NewPaletted(image.Rect(0, 0, 1, 1), color.Palette{color.RGBA{}})
		return blank, gif.DisposalNone
	}

	sub := m.SubImage(r).(*image.Paletted)
	return &image.Paletted{
		Pix:     sub.Pix,
		Stride:  sub.Stride,
		Rect:    r.Sub(box.Min),
		Palette: sub.Palette,
	}, disposal
}

// compositeFrames renders every frame of g onto the logical screen and
// returns an independent copy of the screen after each one.
func compositeFrames(g *gif.GIF) ([]*image.NRGBA, image.Rectangle) {
	canvasRect := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if canvasRect.Empty() {
		var u image.Rectangle
		for _, m := range g.Image {
			u = u.Union(m.Bounds())
		}
		canvasRect = image.Rect(0, 0, u.Max.X, u.Max.Y)
	}

	canvas := image.NewNRGBA(canvasRect)
	frames := make([]*image.NRGBA, 0, len(g.Image))
	for i, m := range g.Image {
		disposal := frameDisposal(g, i)
		var previous *image.NRGBA
		if disposal == gif.DisposalPrevious {
			previous = imaging.Clone(canvas)
		}

		draw.Copy(canvas, m.Bounds().Min, m, m.Bounds(), draw.Over, nil)
		frames = append(frames, imaging.Clone(canvas))

		switch disposal {
		case gif.DisposalBackground:
			draw.Copy(canvas, m.Bounds().Min, image.Transparent, m.Bounds(), draw.Src, nil)
		case gif.DisposalPrevious:
			canvas = previous
		}
	}
	return frames, canvasRect
}

func frameDisposal(g *gif.GIF, i int) byte {
	if i < len(g.Disposal) {
		return g.Disposal[i]
	}
	return gif.DisposalNone
}

func frameDelay(g *gif.GIF, i int) int {
	if i < len(g.Delay) && g.Delay[i] > 0 {
		return g.Delay[i]
	}
	return defaultDelay
}

// loopCount maps a missing NETSCAPE loop extension (decoded as -1) to an
// endless loop.
func loopCount(g *gif.GIF) int {
	if g.LoopCount < 0 {
		return loopForever
	}
	return g.LoopCount
}
