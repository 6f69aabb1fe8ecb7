package textmetrics

import (
	"strings"

	"golang.org/x/image/font"
)

const (
	// CharWidthRatio is the canonical average glyph width as a fraction
	// of the font size. Used for the estimation paths; the real wrap
	// measures actual glyph advances.
	CharWidthRatio = 0.52

	// LineHeightFactor converts a font size to a line advance.
	LineHeightFactor = 1.35
)

// Metrics wraps and measures text. With a FontManager it uses real glyph
// advances; with a nil manager it degrades to the fixed character-width
// ratio, which is only suitable for estimation.
type Metrics struct {
	fm *FontManager
}

// New creates a Metrics backed by real glyph measurement.
func New(fm *FontManager) *Metrics {
	return &Metrics{fm: fm}
}

// NewEstimator creates a Metrics that measures by character count only.
func NewEstimator() *Metrics {
	return &Metrics{}
}

// MeasureWidth returns the pixel width of text at the given weight and size.
func (m *Metrics) MeasureWidth(text string, weight Weight, size float64) float64 {
	if m.fm == nil {
		return EstimateWidth(text, size)
	}
	face := m.fm.Face(weight, size)
	return float64(font.MeasureString(face, text).Ceil())
}

// EstimateWidth approximates text width from rune count alone.
func EstimateWidth(text string, size float64) float64 {
	return float64(len([]rune(text))) * size * CharWidthRatio
}

// CharsPerLine returns how many average-width characters fit in widthPx
// at the given size. Never returns less than 1.
func CharsPerLine(widthPx, size float64) int {
	n := int(widthPx / (size * CharWidthRatio))
	if n < 1 {
		n = 1
	}
	return n
}

// WrapToLines wraps text into lines no wider than maxWidthPx. Paragraph
// breaks are kept as empty-line markers so layout can space paragraphs.
// A single word wider than the box is placed alone on its line; words are
// never broken mid-word. Leading dashes become bullet glyphs.
func (m *Metrics) WrapToLines(text string, maxWidthPx float64, weight Weight, size float64) []string {
	text = NormalizeParagraphs(text)
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var lines []string
	for _, para := range strings.Split(text, "\n") {
		para = ApplyBullet(strings.TrimRight(para, " \t"))
		if para == "" {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, m.wrapParagraph(para, maxWidthPx, weight, size)...)
	}
	return lines
}

func (m *Metrics) wrapParagraph(para string, maxWidthPx float64, weight Weight, size float64) []string {
	words := strings.Fields(para)
	if len(words) == 0 {
		return nil
	}

	// One face for the whole paragraph. The face stays local to this
	// call, so concurrent wraps never touch each other's glyph cache.
	measure := func(s string) float64 { return EstimateWidth(s, size) }
	if m.fm != nil {
		face := m.fm.Face(weight, size)
		measure = func(s string) float64 {
			return float64(font.MeasureString(face, s).Ceil())
		}
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if measure(candidate) <= maxWidthPx {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	return append(lines, current)
}

// EstimateLineCount predicts how many wrapped lines text will occupy at
// charsPerLine characters per line, without touching font metrics. It
// uses the same ratio convention as the fallback wrap so the real wrap
// does not produce materially more lines than estimated. Empty text is
// zero lines, not one.
func EstimateLineCount(text string, charsPerLine int) int {
	text = NormalizeParagraphs(text)
	if strings.TrimSpace(text) == "" {
		return 0
	}
	if charsPerLine < 1 {
		charsPerLine = 1
	}

	total := 0
	for _, para := range strings.Split(text, "\n") {
		runes := len([]rune(strings.TrimSpace(para)))
		if runes == 0 {
			total++ // blank spacer line between paragraphs
			continue
		}
		total += (runes + charsPerLine - 1) / charsPerLine
	}
	return total
}

// NormalizeParagraphs collapses runs of three or more newlines down to
// exactly two, so pasted text cannot create runaway vertical gaps.
func NormalizeParagraphs(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	for strings.Contains(text, "\n\n\n") {
		text = strings.ReplaceAll(text, "\n\n\n", "\n\n")
	}
	return text
}

// ApplyBullet rewrites a leading dash into a bullet glyph. Presentation
// transform only; applied once per line at wrap time.
func ApplyBullet(line string) string {
	trimmed := strings.TrimLeft(line, " \t")
	if rest, ok := strings.CutPrefix(trimmed, "-"); ok {
		return "• " + strings.TrimLeft(rest, " \t")
	}
	return line
}
