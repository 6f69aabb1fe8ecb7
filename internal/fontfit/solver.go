// Package fontfit chooses the base font size for a card and decides
// pagination. It is pure and shared by both renderer backends so preview
// and final output can never reach different decisions from one record.
package fontfit

import (
	"math"

	"github.com/safetyfirst/incident-engine/internal/textmetrics"
	"github.com/safetyfirst/incident-engine/pkg/incidentformat"
)

const (
	// FloorBase is the absolute minimum base size. Returned when even it
	// does not fit; the renderer's draw-time safety net handles the rest.
	FloorBase = 12

	// AutoMaxBase is the ceiling searched from in auto mode, and the
	// size pagination is always evaluated at.
	AutoMaxBase = 22

	ratioTitle   = 1.6
	ratioDesc    = 1.0
	ratioContent = 0.9

	// Estimation geometry: the text column widths of the card layout
	// and the vertical budget the solver fits into.
	descWidthPx    = 1100
	descMaxHeight  = 380
	totalBudget    = 700
	headerSpacing  = 120
	lineHeightLoad = textmetrics.LineHeightFactor
)

// ColumnEstimateWidth is the width the solver assumes for the split
// section columns. It must stay at or under the rendered column body
// width (482px inside padding) so the estimate errs toward pagination,
// never toward draw-time shrinking.
const ColumnEstimateWidth = 480

// Fields carries the four free-text fields the solver sizes against.
type Fields struct {
	Title       string
	Description string
	RootCauses  string
	Actions     string
}

// FieldsFromIncident extracts the sized fields from a record.
func FieldsFromIncident(inc *incidentformat.Incident) Fields {
	return Fields{
		Title:       inc.TitleShort,
		Description: inc.Description,
		RootCauses:  inc.RootCauses,
		Actions:     inc.Actions,
	}
}

// SizeSet is the trio of pixel sizes derived from one base size. The
// three values are never set independently of the ratios.
type SizeSet struct {
	Base        int
	Title       int
	Description int
	Content     int
}

// Derive builds a SizeSet from a single base size.
func Derive(base int) SizeSet {
	return SizeSet{
		Base:        base,
		Title:       int(math.Round(float64(base) * ratioTitle)),
		Description: int(math.Round(float64(base) * ratioDesc)),
		Content:     int(math.Round(float64(base) * ratioContent)),
	}
}

// MaxBaseFor maps a font-size preset to its base-size ceiling. The empty
// preset is auto mode.
func MaxBaseFor(preset string) int {
	switch preset {
	case incidentformat.SizeXS:
		return 14
	case incidentformat.SizeS:
		return 16
	case incidentformat.SizeM:
		return 18
	case incidentformat.SizeL:
		return 20
	case incidentformat.SizeXL:
		return 24
	default:
		return AutoMaxBase
	}
}

// Solve searches downward from maxBase for the largest base size whose
// estimated content height fits the layout budget. If nothing fits even
// at the floor, the floor is returned anyway; that is graceful
// degradation, not an error.
func Solve(f Fields, maxBase int) SizeSet {
	if maxBase < FloorBase {
		maxBase = FloorBase
	}
	for base := maxBase; base >= FloorBase; base-- {
		if FitsAt(f, base) {
			return Derive(base)
		}
	}
	return Derive(FloorBase)
}

// FitsAt reports whether the estimated content height at the given base
// size stays inside the layout budget. Exposed for the pagination
// decision, which must be evaluated at the maximum size, never at an
// already-reduced one.
func FitsAt(f Fields, base int) bool {
	s := Derive(base)

	descH := estimateHeight(f.Description, descWidthPx, s.Description)
	if descH > descMaxHeight {
		return false
	}

	causesH := estimateHeight(f.RootCauses, ColumnEstimateWidth, s.Content)
	actionsH := estimateHeight(f.Actions, ColumnEstimateWidth, s.Content)
	columnH := math.Max(causesH, actionsH)

	return descH+columnH+headerSpacing <= totalBudget
}

// estimateHeight predicts the rendered height of one text block using
// the fast character-count estimate. Empty text contributes nothing.
func estimateHeight(text string, widthPx float64, size int) float64 {
	cpl := textmetrics.CharsPerLine(widthPx, float64(size))
	lines := textmetrics.EstimateLineCount(text, cpl)
	return float64(lines) * float64(size) * lineHeightLoad
}
