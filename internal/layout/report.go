package layout

import (
	"image"

	"github.com/safetyfirst/incident-engine/internal/fontfit"
	"github.com/safetyfirst/incident-engine/internal/textmetrics"
	"github.com/safetyfirst/incident-engine/pkg/incidentformat"
)

// PlanReport lays out the A4 @300dpi report page: type badge, date,
// title, meta boxes, the embedded image centered, the full description,
// then full-width stacked root-causes/actions sections that grow with
// their content. The page is tall enough that sections stack instead of
// competing for height the way the card split view does.
func (e *Engine) PlanReport(inc *incidentformat.Incident, sizes fontfit.SizeSet, embedded image.Image) *Plan {
	g := Report
	labels := LabelsFor(inc.Language)
	plan := &Plan{Width: g.Width, Height: g.Height}

	titleSize := float64(sizes.Title) * g.FontScale
	descSize := float64(sizes.Description) * g.FontScale
	contentSize := float64(sizes.Content) * g.FontScale
	badgeSize := descSize * 0.9

	contentW := float64(g.Width) - 2*g.Margin
	y := g.Margin

	// Type badge with the localized type name, date to the right.
	badgeText := labels.TypeName(inc.Type)
	badgeW := textmetrics.EstimateWidth(badgeText, badgeSize)*1.3 + 2*g.MetaPad
	plan.add(RectOp{
		Box:    Rect{X: g.Margin, Y: y, W: badgeW, H: g.BadgeH},
		Fill:   BadgeColor(inc.Type),
		Radius: g.BadgeRadius,
	})
	plan.add(TextOp{
		Text:     badgeText,
		Box:      Rect{X: g.Margin, Y: y, W: badgeW, H: g.BadgeH},
		Size:     badgeSize,
		Weight:   textmetrics.WeightBold,
		Color:    ColorInverse,
		Align:    AlignCenter,
		MaxLines: 1,
	})
	plan.add(TextOp{
		Text:     FormatDate(inc.OccurredAt),
		Box:      Rect{X: g.Margin + badgeW, Y: y, W: contentW - badgeW, H: g.BadgeH},
		Size:     badgeSize,
		Color:    ColorMuted,
		Align:    AlignRight,
		MaxLines: 1,
	})
	y += g.BadgeH + g.HeaderGap

	titleLines := e.metrics.WrapToLines(inc.TitleShort, contentW, textmetrics.WeightBold, titleSize)
	titleH := lineCountHeight(len(titleLines), titleSize)
	plan.add(TextOp{
		Text:   inc.TitleShort,
		Box:    Rect{X: g.Margin, Y: y, W: contentW, H: titleH},
		Size:   titleSize,
		Weight: textmetrics.WeightBold,
		Color:  ColorText,
	})
	y += titleH + g.TitleGap

	y = e.addReportMetaRow(plan, inc, labels, y, descSize)

	if embedded != nil {
		box := AspectFit(embedded.Bounds(), Rect{X: g.Margin, Y: y, W: contentW, H: g.ImageMaxH})
		plan.add(ImageOp{Img: embedded, Box: box, CornerRadius: Card.ImageCornerRadius})
		y += box.H + g.SectionGap
	}

	if inc.Description != "" {
		descLines := e.metrics.WrapToLines(inc.Description, contentW, textmetrics.WeightRegular, descSize)
		descH := lineCountHeight(len(descLines), descSize)
		plan.add(TextOp{
			Text:  inc.Description,
			Box:   Rect{X: g.Margin, Y: y, W: contentW, H: descH},
			Size:  descSize,
			Color: ColorText,
		})
		y += descH + g.SectionGap
	}

	y = e.addReportSection(plan, labels.RootCauses, inc.RootCauses, y, contentSize)
	e.addReportSection(plan, labels.Actions, inc.Actions, y, contentSize)

	return plan
}

// addReportMetaRow places the two meta boxes side by side and returns the
// next free Y.
func (e *Engine) addReportMetaRow(plan *Plan, inc *incidentformat.Incident, labels Labels, y, size float64) float64 {
	g := Report
	contentW := float64(g.Width) - 2*g.Margin
	boxW := (contentW - g.MetaGap) / 2

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

	e.addReportMetaBox(plan, labels.Site, site, g.Margin, y, boxW, size)
	e.addReportMetaBox(plan, labels.Date, FormatDate(inc.OccurredAt), g.Margin+boxW+g.MetaGap, y, boxW, size)

	return y + g.MetaBoxH + g.SectionGap
}

func (e *Engine) addReportMetaBox(plan *Plan, label, value string, x, y, w, size float64) {
	g := Report
	labelSize := size * 0.6
	plan.add(RectOp{
		Box:    Rect{X: x, Y: y, W: w, H: g.MetaBoxH},
		Fill:   ColorMetaBg,
		Radius: 16,
	})
	plan.add(TextOp{
		Text:     label,
		Box:      Rect{X: x + g.MetaPad, Y: y + g.MetaPad, W: w - 2*g.MetaPad, H: labelSize * textmetrics.LineHeightFactor},
		Size:     labelSize,
		Weight:   textmetrics.WeightBold,
		Color:    ColorMuted,
		MaxLines: 1,
	})
	valueTop := y + g.MetaPad + labelSize*textmetrics.LineHeightFactor + 8
	plan.add(TextOp{
		Text:     value,
		Box:      Rect{X: x + g.MetaPad, Y: valueTop, W: w - 2*g.MetaPad, H: y + g.MetaBoxH - g.MetaPad - valueTop},
		Size:     size * 0.8,
		Color:    ColorText,
		MaxLines: 3,
	})
}

// addReportSection renders one full-width tinted section sized to its
// wrapped content and returns the next free Y. Empty sections are
// skipped entirely.
func (e *Engine) addReportSection(plan *Plan, label, body string, y, size float64) float64 {
	if body == "" {
		return y
	}
	g := Report
	contentW := float64(g.Width) - 2*g.Margin
	innerW := contentW - 2*g.SectionPad

	headerH := size * textmetrics.LineHeightFactor
	bodyLines := e.metrics.WrapToLines(body, innerW, textmetrics.WeightRegular, size)
	bodyH := lineCountHeight(len(bodyLines), size)
	boxH := g.SectionPad + headerH + g.SectionPad/2 + bodyH + g.SectionPad

	// Clamp to the page; the backend safety net shrinks and finally
	// clips if a section would run off the bottom.
	if y+boxH > float64(g.Height)-g.Margin {
		boxH = float64(g.Height) - g.Margin - y
		if boxH <= 0 {
			return y
		}
	}

	plan.add(RectOp{
		Box:    Rect{X: g.Margin, Y: y, W: contentW, H: boxH},
		Fill:   ColorSection,
		Radius: g.SectionRadius,
	})
	plan.add(TextOp{
		Text:     label,
		Box:      Rect{X: g.Margin + g.SectionPad, Y: y + g.SectionPad, W: innerW, H: headerH},
		Size:     size,
		Weight:   textmetrics.WeightBold,
		Color:    ColorHeaderBar,
		MaxLines: 1,
	})
	bodyTop := y + g.SectionPad + headerH + g.SectionPad/2
	plan.add(TextOp{
		Text:  body,
		Box:   Rect{X: g.Margin + g.SectionPad, Y: bodyTop, W: innerW, H: y + boxH - g.SectionPad - bodyTop},
		Size:  size,
		Color: ColorText,
	})

	return y + boxH + g.SectionGap
}
