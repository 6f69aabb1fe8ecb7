package layout

import "time"

// Placeholder rendered where a value is missing or unparseable. A bad
// field degrades to this; it never blocks the rest of the card.
const Placeholder = "–"

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"02.01.2006",
	"02/01/2006",
}

// FormatDate parses a loosely-formatted timestamp and renders it as
// dd.mm.yyyy. Unparseable input yields the placeholder.
func FormatDate(raw string) string {
	if raw == "" {
		return Placeholder
	}
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, raw); err == nil {
			return t.Format("02.01.2006")
		}
	}
	return Placeholder
}
