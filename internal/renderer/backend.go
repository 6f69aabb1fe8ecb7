// Package renderer draws layout plans onto template backgrounds and
// packages the results as card and report artifacts. It contains the two
// backend implementations (preview and final) plus the filename/template
// resolver and the compositor orchestration.
package renderer

import (
	"image"

	"github.com/safetyfirst/incident-engine/internal/fontfit"
	"github.com/safetyfirst/incident-engine/internal/layout"
	"github.com/safetyfirst/incident-engine/internal/textmetrics"
)

// Backend renders one plan onto a background. Implementations differ in
// rendering technology only; every layout decision is made upstream so
// both backends reach identical pagination and sizing from one record.
type Backend interface {
	Name() string
	Render(plan *layout.Plan, background image.Image) (image.Image, error)
}

// fittedText is the draw-ready form of a TextOp after the safety net ran.
type fittedText struct {
	lines   []string
	size    float64
	clipped bool
}

// fitText re-verifies a TextOp with real glyph metrics at draw time. Ops
// with an explicit line cap (meta values, section labels) keep their
// planned size and truncate; that is the one sanctioned truncation point
// and it never shrinks. Everything else wraps at the planned size, and
// when the solver's word-count estimate was optimistic the size steps
// down, clamped to the absolute floor. Whatever still does not fit at
// the floor is clipped; that is the documented last resort, not a silent
// one.
func fitText(m *textmetrics.Metrics, op layout.TextOp) fittedText {
	size := op.Size
	var lines []string

	if op.MaxLines > 0 {
		lines = m.WrapToLines(op.Text, op.Box.W, op.Weight, size)
	} else {
		for {
			lines = m.WrapToLines(op.Text, op.Box.W, op.Weight, size)
			if len(lines) <= lineBudget(op, size) || size <= fontfit.FloorBase {
				break
			}
			size--
			if size < fontfit.FloorBase {
				size = fontfit.FloorBase
			}
		}
	}

	budget := lineBudget(op, size)
	clipped := false
	if len(lines) > budget {
		lines = lines[:budget]
		clipped = true
	}
	return fittedText{lines: lines, size: size, clipped: clipped}
}

// lineBudget is how many lines of the given size fit the op's box. An
// explicit MaxLines (meta values, single-line labels) wins over the
// height-derived budget.
func lineBudget(op layout.TextOp, size float64) int {
	if op.MaxLines > 0 {
		return op.MaxLines
	}
	n := int(op.Box.H / (size * textmetrics.LineHeightFactor))
	if n < 1 {
		n = 1
	}
	return n
}

// lineX returns the X origin for one wrapped line given its width.
func lineX(op layout.TextOp, lineWidth float64) float64 {
	switch op.Align {
	case layout.AlignCenter:
		return op.Box.X + (op.Box.W-lineWidth)/2
	case layout.AlignRight:
		return op.Box.X + op.Box.W - lineWidth
	default:
		return op.Box.X
	}
}
