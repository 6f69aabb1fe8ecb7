package layout

import "image/color"

// CardGeometry fixes every static pixel offset of the 1920x1080 card.
// Template redesigns touch this one value, not scattered draw calls.
type CardGeometry struct {
	Width, Height int

	MarginX      float64
	TitleTop     float64
	TitleGap     float64 // gap between title block and description
	ContentWidth float64

	ImageBox          Rect
	ImageCornerRadius float64

	MetaTop  float64
	MetaBoxW float64
	MetaBoxH float64
	MetaGap  float64
	MetaPad  float64

	SectionGap     float64
	SectionHeaderH float64
	SectionBuffer  float64 // kept clear above the meta boxes in split view
	SectionPad     float64
	ColumnGap      float64

	PageIndicatorTop float64
	PageIndicatorW   float64

	BottomMargin float64
}

// Card is the geometry of all card variants.
var Card = CardGeometry{
	Width:  1920,
	Height: 1080,

	MarginX:      96,
	TitleTop:     110,
	TitleGap:     36,
	ContentWidth: 1100,

	ImageBox:          Rect{X: 1280, Y: 120, W: 544, H: 420},
	ImageCornerRadius: 24,

	MetaTop:  880,
	MetaBoxW: 380,
	MetaBoxH: 120,
	MetaGap:  44,
	MetaPad:  22,

	SectionGap:     40,
	SectionHeaderH: 56,
	SectionBuffer:  40,
	SectionPad:     24,
	ColumnGap:      40,

	PageIndicatorTop: 44,
	PageIndicatorW:   200,

	BottomMargin: 80,
}

// ReportGeometry fixes the A4 @300dpi report page.
type ReportGeometry struct {
	Width, Height int

	Margin float64

	BadgeH       float64
	BadgeRadius  float64
	HeaderGap    float64
	TitleGap     float64
	MetaBoxH     float64
	MetaGap      float64
	MetaPad      float64
	ImageMaxH    float64
	SectionGap   float64
	SectionPad   float64
	SectionRadius float64

	QRSize float64

	// Scale applied to card font sizes; the report page is denser dpi.
	FontScale float64
}

// Report is the geometry of the A4 report variant.
var Report = ReportGeometry{
	Width:  2480,
	Height: 3508,

	Margin: 180,

	BadgeH:        96,
	BadgeRadius:   20,
	HeaderGap:     60,
	TitleGap:      48,
	MetaBoxH:      170,
	MetaGap:       60,
	MetaPad:       32,
	ImageMaxH:     900,
	SectionGap:    70,
	SectionPad:    40,
	SectionRadius: 24,

	QRSize: 220,

	FontScale: 2.0,
}

// Shared palette. Templates carry the visual identity; these cover the
// overlaid text and boxes.
var (
	ColorText      = color.RGBA{R: 0x21, G: 0x24, B: 0x28, A: 0xff}
	ColorMuted     = color.RGBA{R: 0x6b, G: 0x70, B: 0x76, A: 0xff}
	ColorInverse   = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	ColorMetaBg    = color.RGBA{R: 0xf2, G: 0xf2, B: 0xf2, A: 0xd9}
	ColorHeaderBar = color.RGBA{R: 0x2c, G: 0x3e, B: 0x50, A: 0xff}
	ColorSection   = color.RGBA{R: 0xf6, G: 0xf7, B: 0xf8, A: 0xff}
	ColorBorder    = color.RGBA{R: 0xd4, G: 0xd7, B: 0xda, A: 0xff}

	badgeColors = map[string]color.RGBA{
		"hazard":        {R: 0xe6, G: 0x7e, B: 0x22, A: 0xff},
		"incident":      {R: 0xc0, G: 0x39, B: 0x2b, A: 0xff},
		"investigation": {R: 0x2c, G: 0x3e, B: 0x50, A: 0xff},
	}
)

// BadgeColor returns the fill for a type badge.
func BadgeColor(incidentType string) color.RGBA {
	if c, ok := badgeColors[incidentType]; ok {
		return c
	}
	return ColorHeaderBar
}
