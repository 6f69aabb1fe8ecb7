// Package layout turns an incident record plus a solved size set into an
// ordered list of draw instructions for one card or report page. It is
// backend-agnostic: both renderer backends consume the same Plan.
package layout

import (
	"image"
	"image/color"

	"github.com/safetyfirst/incident-engine/internal/textmetrics"
)

// Rect is a pixel-space box on the canvas.
type Rect struct {
	X, Y, W, H float64
}

// Align positions text horizontally inside its box.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Op is one draw instruction.
type Op interface {
	op()
}

// TextOp draws wrapped text inside a box. MaxLines of 0 lets the backend
// derive the line budget from the box height; a positive value caps and
// truncates (used only for meta values).
type TextOp struct {
	Text     string
	Box      Rect
	Size     float64
	Weight   textmetrics.Weight
	Color    color.RGBA
	Align    Align
	MaxLines int
}

// RectOp draws a filled and/or stroked rectangle, optionally rounded.
type RectOp struct {
	Box         Rect
	Fill        color.RGBA
	Radius      float64
	BorderColor color.RGBA
	BorderWidth float64
}

// ImageOp composites a decoded image into a box. The box is already
// aspect-fitted by the engine; backends only place and optionally round.
type ImageOp struct {
	Img          image.Image
	Box          Rect
	CornerRadius float64
}

func (TextOp) op()  {}
func (RectOp) op()  {}
func (ImageOp) op() {}

// Plan is the full instruction list for one canvas.
type Plan struct {
	Width  int
	Height int
	Ops    []Op
}

func (p *Plan) add(ops ...Op) {
	p.Ops = append(p.Ops, ops...)
}

// AddImage appends an extra image op, aspect-fitted into box. Used by the
// report exporter for the footer QR code.
func (p *Plan) AddImage(img image.Image, box Rect, cornerRadius float64) {
	if img == nil {
		return
	}
	p.add(ImageOp{Img: img, Box: AspectFit(img.Bounds(), box), CornerRadius: cornerRadius})
}

// AspectFit scales src bounds to fit inside box, centered both ways.
func AspectFit(src image.Rectangle, box Rect) Rect {
	sw := float64(src.Dx())
	sh := float64(src.Dy())
	if sw <= 0 || sh <= 0 {
		return Rect{X: box.X, Y: box.Y}
	}

	scale := box.W / sw
	if s := box.H / sh; s < scale {
		scale = s
	}
	w := sw * scale
	h := sh * scale
	return Rect{
		X: box.X + (box.W-w)/2,
		Y: box.Y + (box.H-h)/2,
		W: w,
		H: h,
	}
}
