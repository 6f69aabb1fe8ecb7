package renderer

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/safetyfirst/incident-engine/internal/layout"
	"github.com/safetyfirst/incident-engine/internal/textmetrics"
)

// FinalBackend is the high-fidelity renderer that produces the stored
// artifact: anti-aliased text via truetype faces, rounded
// rectangles, and alpha-masked image corners.
type FinalBackend struct {
	fm      *textmetrics.FontManager
	metrics *textmetrics.Metrics
}

// NewFinalBackend creates the final renderer.
func NewFinalBackend(fm *textmetrics.FontManager) *FinalBackend {
	return &FinalBackend{fm: fm, metrics: textmetrics.New(fm)}
}

// Name implements Backend.
func (b *FinalBackend) Name() string { return "final" }

// Render implements Backend.
func (b *FinalBackend) Render(plan *layout.Plan, background image.Image) (image.Image, error) {
	dc := gg.NewContext(plan.Width, plan.Height)
	if background != nil {
		dc.DrawImage(background, 0, 0)
	} else {
		dc.SetRGB(1, 1, 1)
		dc.Clear()
	}

	for _, op := range plan.Ops {
		switch o := op.(type) {
		case layout.RectOp:
			b.drawRect(dc, o)
		case layout.ImageOp:
			b.drawImage(dc, o)
		case layout.TextOp:
			b.drawText(dc, o)
		default:
			return nil, fmt.Errorf("unsupported plan op %T", op)
		}
	}

	return dc.Image(), nil
}

func (b *FinalBackend) drawRect(dc *gg.Context, op layout.RectOp) {
	if op.Fill.A > 0 {
		dc.SetColor(op.Fill)
		if op.Radius > 0 {
			dc.DrawRoundedRectangle(op.Box.X, op.Box.Y, op.Box.W, op.Box.H, op.Radius)
		} else {
			dc.DrawRectangle(op.Box.X, op.Box.Y, op.Box.W, op.Box.H)
		}
		dc.Fill()
	}
	if op.BorderWidth > 0 && op.BorderColor.A > 0 {
		dc.SetColor(op.BorderColor)
		dc.SetLineWidth(op.BorderWidth)
		if op.Radius > 0 {
			dc.DrawRoundedRectangle(op.Box.X, op.Box.Y, op.Box.W, op.Box.H, op.Radius)
		} else {
			dc.DrawRectangle(op.Box.X, op.Box.Y, op.Box.W, op.Box.H)
		}
		dc.Stroke()
	}
}

func (b *FinalBackend) drawImage(dc *gg.Context, op layout.ImageOp) {
	fitted := imaging.Resize(op.Img, int(op.Box.W), int(op.Box.H), imaging.Lanczos)

	if op.CornerRadius > 0 {
		// Rounded corners via a clip mask over the fitted image.
		dc.Push()
		dc.DrawRoundedRectangle(op.Box.X, op.Box.Y, op.Box.W, op.Box.H, op.CornerRadius)
		dc.Clip()
		dc.DrawImage(fitted, int(op.Box.X), int(op.Box.Y))
		dc.ResetClip()
		dc.Pop()
		return
	}

	dc.DrawImage(fitted, int(op.Box.X), int(op.Box.Y))
}

func (b *FinalBackend) drawText(dc *gg.Context, op layout.TextOp) {
	fitted := fitText(b.metrics, op)
	dc.SetFontFace(b.fm.Face(op.Weight, fitted.size))
	dc.SetColor(op.Color)

	lineH := fitted.size * textmetrics.LineHeightFactor
	ascent := fitted.size * 0.8

	for i, line := range fitted.lines {
		if line == "" {
			continue
		}
		w := b.metrics.MeasureWidth(line, op.Weight, fitted.size)
		x := lineX(op, w)
		y := op.Box.Y + float64(i)*lineH + ascent
		dc.DrawString(line, x, y)
	}
}
