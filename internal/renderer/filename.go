package renderer

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/safetyfirst/incident-engine/internal/layout"
	"github.com/safetyfirst/incident-engine/pkg/incidentformat"
)

const (
	maxSiteSegment  = 30
	maxTitleSegment = 50
)

// OutputFilename builds the artifact name:
// SF_{yyyy_mm_dd}_{TYPE}_{site}-{title}-{LANG}{_N}.jpg
// The convention is stable across calls and ASCII-clean; existing
// consumers match on it, so it must not change shape.
func OutputFilename(inc *incidentformat.Incident, cardNumber int) string {
	date := filenameDate(inc.OccurredAt)
	site := truncate(Sanitize(inc.Site), maxSiteSegment)
	title := truncate(Sanitize(inc.TitleShort), maxTitleSegment)

	suffix := ""
	if cardNumber >= 2 {
		suffix = fmt.Sprintf("_%d", cardNumber)
	}

	return fmt.Sprintf("SF_%s_%s_%s-%s-%s%s.jpg",
		date,
		strings.ToUpper(inc.Type),
		site,
		title,
		strings.ToUpper(inc.Language),
		suffix,
	)
}

func filenameDate(raw string) string {
	formatted := layout.FormatDate(raw) // dd.mm.yyyy or placeholder
	if formatted == layout.Placeholder {
		// Deterministic even for undated records; the filename must be
		// byte-stable across repeated calls.
		return "0000_00_00"
	}
	t, _ := time.Parse("02.01.2006", formatted)
	return t.Format("2006_01_02")
}

var asciiFold = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Sanitize transliterates to ASCII where possible (accents stripped via
// NFD decomposition) and drops every remaining character outside
// [A-Za-z0-9_-]. Spaces become underscores.
func Sanitize(s string) string {
	folded, _, err := transform.String(asciiFold, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	for _, r := range folded {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		case r == ' ' || r == '\t':
			b.WriteRune('_')
		}
	}
	return b.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
