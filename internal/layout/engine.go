package layout

import (
	"fmt"
	"image"

	"github.com/safetyfirst/incident-engine/internal/fontfit"
	"github.com/safetyfirst/incident-engine/internal/textmetrics"
	"github.com/safetyfirst/incident-engine/pkg/incidentformat"
)

// Variant selects one of the card layouts.
type Variant int

const (
	// VariantStandard is the hazard/incident card, also used when an
	// investigation is forced single by asset fallback.
	VariantStandard Variant = iota
	// VariantSplit is the single-card investigation with side-by-side
	// root-causes/actions sections.
	VariantSplit
	// VariantCardOne is page 1 of a paginated investigation: title and
	// description only, sections deferred to page 2.
	VariantCardOne
	// VariantCardTwo is page 2: repeated title, then two full-height
	// columns. No meta boxes, no image.
	VariantCardTwo
)

// Engine builds plans. It needs real glyph metrics because the
// description Y position depends on the actual wrapped title height.
type Engine struct {
	metrics *textmetrics.Metrics
}

// NewEngine creates a layout engine on top of the given metrics.
func NewEngine(m *textmetrics.Metrics) *Engine {
	return &Engine{metrics: m}
}

// PlanCard lays out one 1920x1080 card. embedded may be nil.
func (e *Engine) PlanCard(inc *incidentformat.Incident, sizes fontfit.SizeSet, variant Variant, embedded image.Image) *Plan {
	g := Card
	labels := LabelsFor(inc.Language)
	plan := &Plan{Width: g.Width, Height: g.Height}

	titleSize := float64(sizes.Title)
	descSize := float64(sizes.Description)
	contentSize := float64(sizes.Content)

	titleWidth := g.ContentWidth
	if variant == VariantCardTwo {
		titleWidth = float64(g.Width) - 2*g.MarginX
	}

	// Title height is measured, not assumed: long titles push the
	// description further down.
	titleLines := e.metrics.WrapToLines(inc.TitleShort, titleWidth, textmetrics.WeightBold, titleSize)
	titleH := lineCountHeight(len(titleLines), titleSize)
	plan.add(TextOp{
		Text:   inc.TitleShort,
		Box:    Rect{X: g.MarginX, Y: g.TitleTop, W: titleWidth, H: titleH},
		Size:   titleSize,
		Weight: textmetrics.WeightBold,
		Color:  ColorText,
	})

	contentY := g.TitleTop + titleH + g.TitleGap

	switch variant {
	case VariantStandard, VariantCardOne:
		e.addDescription(plan, inc, contentY, g.MetaTop-g.SectionBuffer, descSize)
		e.addMetaBoxes(plan, inc, labels, descSize)
		e.addEmbeddedImage(plan, embedded)

	case VariantSplit:
		descH := e.descriptionHeight(inc.Description, descSize)
		descBottom := contentY + descH
		e.addDescription(plan, inc, contentY, descBottom, descSize)

		sectionTop := descBottom + g.SectionGap
		sectionBottom := g.MetaTop - g.SectionBuffer
		colW := (g.ContentWidth - g.ColumnGap) / 2
		e.addSection(plan, labels.RootCauses, inc.RootCauses,
			Rect{X: g.MarginX, Y: sectionTop, W: colW, H: sectionBottom - sectionTop}, contentSize)
		e.addSection(plan, labels.Actions, inc.Actions,
			Rect{X: g.MarginX + colW + g.ColumnGap, Y: sectionTop, W: colW, H: sectionBottom - sectionTop}, contentSize)

		e.addMetaBoxes(plan, inc, labels, descSize)
		e.addEmbeddedImage(plan, embedded)

	case VariantCardTwo:
		colTop := contentY
		colBottom := float64(g.Height) - g.BottomMargin
		colW := (float64(g.Width) - 2*g.MarginX - g.ColumnGap) / 2
		e.addSection(plan, labels.RootCauses, inc.RootCauses,
			Rect{X: g.MarginX, Y: colTop, W: colW, H: colBottom - colTop}, contentSize)
		e.addSection(plan, labels.Actions, inc.Actions,
			Rect{X: g.MarginX + colW + g.ColumnGap, Y: colTop, W: colW, H: colBottom - colTop}, contentSize)
	}

	switch variant {
	case VariantCardOne:
		e.addPageIndicator(plan, 1, contentSize)
	case VariantCardTwo:
		e.addPageIndicator(plan, 2, contentSize)
	}

	return plan
}

// addPageIndicator marks a paginated card with its position in the pair.
func (e *Engine) addPageIndicator(plan *Plan, page int, size float64) {
	g := Card
	plan.add(TextOp{
		Text:     fmt.Sprintf("%d/2", page),
		Box:      Rect{X: float64(g.Width) - g.MarginX - g.PageIndicatorW, Y: g.PageIndicatorTop, W: g.PageIndicatorW, H: size * textmetrics.LineHeightFactor},
		Size:     size,
		Weight:   textmetrics.WeightBold,
		Color:    ColorMuted,
		Align:    AlignRight,
		MaxLines: 1,
	})
}

func (e *Engine) addDescription(plan *Plan, inc *incidentformat.Incident, top, bottom, size float64) {
	if inc.Description == "" || bottom <= top {
		return
	}
	plan.add(TextOp{
		Text:  inc.Description,
		Box:   Rect{X: Card.MarginX, Y: top, W: Card.ContentWidth, H: bottom - top},
		Size:  size,
		Color: ColorText,
	})
}

// descriptionHeight is the wrapped height of the description, capped so
// the split sections always keep room above the meta boxes.
func (e *Engine) descriptionHeight(text string, size float64) float64 {
	lines := e.metrics.WrapToLines(text, Card.ContentWidth, textmetrics.WeightRegular, size)
	h := lineCountHeight(len(lines), size)
	maxH := (Card.MetaTop - Card.SectionBuffer - Card.TitleTop) / 2
	if h > maxH {
		h = maxH
	}
	return h
}

// addSection draws a bordered section: a solid header bar with inverse
// label text, body text beneath.
func (e *Engine) addSection(plan *Plan, label, body string, box Rect, size float64) {
	if box.H <= Card.SectionHeaderH {
		return
	}
	plan.add(RectOp{
		Box:         box,
		Fill:        ColorSection,
		BorderColor: ColorBorder,
		BorderWidth: 2,
	})
	plan.add(RectOp{
		Box:  Rect{X: box.X, Y: box.Y, W: box.W, H: Card.SectionHeaderH},
		Fill: ColorHeaderBar,
	})
	plan.add(TextOp{
		Text:     label,
		Box:      Rect{X: box.X + Card.SectionPad, Y: box.Y, W: box.W - 2*Card.SectionPad, H: Card.SectionHeaderH},
		Size:     size,
		Weight:   textmetrics.WeightBold,
		Color:    ColorInverse,
		MaxLines: 1,
	})
	if body == "" {
		return
	}
	bodyTop := box.Y + Card.SectionHeaderH + Card.SectionPad
	plan.add(TextOp{
		Text:  body,
		Box:   Rect{X: box.X + Card.SectionPad, Y: bodyTop, W: box.W - 2*Card.SectionPad, H: box.Y + box.H - Card.SectionPad - bodyTop},
		Size:  size,
		Color: ColorText,
	})
}

// addMetaBoxes places the site and date info boxes at the fixed
// bottom-anchored position. Values wrap to at most three lines and are
// then truncated; this is the one sanctioned truncation point.
func (e *Engine) addMetaBoxes(plan *Plan, inc *incidentformat.Incident, labels Labels, size float64) {
	site := inc.Site
	if inc.SiteDetail != "" {
		if site != "" {
			site += ", "
		}
		site += inc.SiteDetail
	}
	if site == "" {
		site = Placeholder
	}

	e.addMetaBox(plan, labels.Site, site, Card.MarginX, size)
	e.addMetaBox(plan, labels.Date, FormatDate(inc.OccurredAt), Card.MarginX+Card.MetaBoxW+Card.MetaGap, size)
}

func (e *Engine) addMetaBox(plan *Plan, label, value string, x, size float64) {
	g := Card
	labelSize := size * 0.65
	plan.add(RectOp{
		Box:    Rect{X: x, Y: g.MetaTop, W: g.MetaBoxW, H: g.MetaBoxH},
		Fill:   ColorMetaBg,
		Radius: 16,
	})
	plan.add(TextOp{
		Text:     label,
		Box:      Rect{X: x + g.MetaPad, Y: g.MetaTop + g.MetaPad, W: g.MetaBoxW - 2*g.MetaPad, H: labelSize * textmetrics.LineHeightFactor},
		Size:     labelSize,
		Weight:   textmetrics.WeightBold,
		Color:    ColorMuted,
		MaxLines: 1,
	})
	valueTop := g.MetaTop + g.MetaPad + labelSize*textmetrics.LineHeightFactor + 6
	plan.add(TextOp{
		Text:     value,
		Box:      Rect{X: x + g.MetaPad, Y: valueTop, W: g.MetaBoxW - 2*g.MetaPad, H: g.MetaTop + g.MetaBoxH - g.MetaPad - valueTop},
		Size:     size * 0.85,
		Color:    ColorText,
		MaxLines: 3,
	})
}

func (e *Engine) addEmbeddedImage(plan *Plan, embedded image.Image) {
	if embedded == nil {
		return
	}
	plan.add(ImageOp{
		Img:          embedded,
		Box:          AspectFit(embedded.Bounds(), Card.ImageBox),
		CornerRadius: Card.ImageCornerRadius,
	})
}

func lineCountHeight(lines int, size float64) float64 {
	if lines < 1 {
		lines = 1
	}
	return float64(lines) * size * textmetrics.LineHeightFactor
}
