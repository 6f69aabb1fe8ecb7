package renderer

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/safetyfirst/incident-engine/internal/layout"
	"github.com/safetyfirst/incident-engine/internal/textmetrics"
)

// Thumbnail dimensions for the downscaled preview output.
const (
	ThumbWidth  = 480
	ThumbHeight = 270
)

// PreviewBackend is the fast renderer used for on-screen previews. It
// rasterizes with the pure-Go font.Drawer and uniform fills; corners of
// rects and images are drawn square, which is the accepted visual
// difference to the final backend. All layout decisions are shared.
type PreviewBackend struct {
	fm      *textmetrics.FontManager
	metrics *textmetrics.Metrics
}

// NewPreviewBackend creates the preview renderer.
func NewPreviewBackend(fm *textmetrics.FontManager) *PreviewBackend {
	return &PreviewBackend{fm: fm, metrics: textmetrics.New(fm)}
}

// Name implements Backend.
func (b *PreviewBackend) Name() string { return "preview" }

// Render implements Backend.
func (b *PreviewBackend) Render(plan *layout.Plan, background image.Image) (image.Image, error) {
	canvas := image.NewRGBA(image.Rect(0, 0, plan.Width, plan.Height))
	if background != nil {
		draw.Draw(canvas, canvas.Bounds(), background, background.Bounds().Min, draw.Src)
	} else {
		draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	}

	for _, op := range plan.Ops {
		switch o := op.(type) {
		case layout.RectOp:
			b.drawRect(canvas, o)
		case layout.ImageOp:
			b.drawImage(canvas, o)
		case layout.TextOp:
			b.drawText(canvas, o)
		default:
			return nil, fmt.Errorf("unsupported plan op %T", op)
		}
	}

	return canvas, nil
}

// Thumbnail downscales a rendered card for the preview list view.
func (b *PreviewBackend) Thumbnail(card image.Image) image.Image {
	return imaging.Resize(card, ThumbWidth, ThumbHeight, imaging.Lanczos)
}

func (b *PreviewBackend) drawRect(canvas *image.RGBA, op layout.RectOp) {
	r := image.Rect(int(op.Box.X), int(op.Box.Y), int(op.Box.X+op.Box.W), int(op.Box.Y+op.Box.H))
	r = r.Intersect(canvas.Bounds())
	if op.Fill.A > 0 {
		draw.Draw(canvas, r, image.NewUniform(op.Fill), image.Point{}, draw.Over)
	}
	if op.BorderWidth > 0 && op.BorderColor.A > 0 {
		bw := int(op.BorderWidth)
		src := image.NewUniform(op.BorderColor)
		draw.Draw(canvas, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+bw), src, image.Point{}, draw.Over)
		draw.Draw(canvas, image.Rect(r.Min.X, r.Max.Y-bw, r.Max.X, r.Max.Y), src, image.Point{}, draw.Over)
		draw.Draw(canvas, image.Rect(r.Min.X, r.Min.Y, r.Min.X+bw, r.Max.Y), src, image.Point{}, draw.Over)
		draw.Draw(canvas, image.Rect(r.Max.X-bw, r.Min.Y, r.Max.X, r.Max.Y), src, image.Point{}, draw.Over)
	}
}

func (b *PreviewBackend) drawImage(canvas *image.RGBA, op layout.ImageOp) {
	fitted := imaging.Resize(op.Img, int(op.Box.W), int(op.Box.H), imaging.Lanczos)
	r := image.Rect(int(op.Box.X), int(op.Box.Y), int(op.Box.X)+fitted.Bounds().Dx(), int(op.Box.Y)+fitted.Bounds().Dy())
	draw.Draw(canvas, r.Intersect(canvas.Bounds()), fitted, image.Point{}, draw.Over)
}

func (b *PreviewBackend) drawText(canvas *image.RGBA, op layout.TextOp) {
	fitted := fitText(b.metrics, op)
	face := b.fm.Face(op.Weight, fitted.size)
	lineH := fitted.size * textmetrics.LineHeightFactor
	ascent := fitted.size * 0.8

	for i, line := range fitted.lines {
		if line == "" {
			continue
		}
		w := b.metrics.MeasureWidth(line, op.Weight, fitted.size)
		x := lineX(op, w)
		y := op.Box.Y + float64(i)*lineH + ascent
		drawer := &font.Drawer{
			Dst:  canvas,
			Src:  image.NewUniform(op.Color),
			Face: face,
			Dot:  fixed.P(int(x), int(y)),
		}
		drawer.DrawString(line)
	}
}
