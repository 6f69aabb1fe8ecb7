package renderer

import (
	"regexp"
	"strings"
	"testing"

	"github.com/safetyfirst/incident-engine/pkg/incidentformat"
)

func filenameIncident() *incidentformat.Incident {
	return &incidentformat.Incident{
		Type:       incidentformat.TypeIncident,
		Language:   "de",
		TitleShort: "Gabelstapler Beinahe-Unfall an Tor 2",
		Site:       "Werk München",
		OccurredAt: "2026-03-14",
	}
}

func TestOutputFilename_Shape(t *testing.T) {
	got := OutputFilename(filenameIncident(), 0)
	want := "SF_2026_03_14_INCIDENT_Werk_Munchen-Gabelstapler_Beinahe-Unfall_an_Tor_2-DE.jpg"
	if got != want {
		t.Errorf("OutputFilename = %q, want %q", got, want)
	}
}

func TestOutputFilename_CardSuffix(t *testing.T) {
	got := OutputFilename(filenameIncident(), 2)
	if !strings.HasSuffix(got, "_2.jpg") {
		t.Errorf("Expected _2.jpg suffix, got %q", got)
	}
}

func TestOutputFilename_StableAcrossCalls(t *testing.T) {
	inc := filenameIncident()
	first := OutputFilename(inc, 0)
	for i := 0; i < 10; i++ {
		if got := OutputFilename(inc, 0); got != first {
			t.Fatalf("Filename not stable: %q vs %q", got, first)
		}
	}
}

func TestOutputFilename_StableWithoutDate(t *testing.T) {
	inc := filenameIncident()
	inc.OccurredAt = "not-a-date"
	first := OutputFilename(inc, 0)
	second := OutputFilename(inc, 0)
	if first != second {
		t.Errorf("Undated filename not stable: %q vs %q", first, second)
	}
	if !strings.Contains(first, "0000_00_00") {
		t.Errorf("Expected deterministic zero date, got %q", first)
	}
}

func TestOutputFilename_Charset(t *testing.T) {
	inc := filenameIncident()
	inc.TitleShort = "Ölaustritt +++ an Presse #4 (наблюдение)!"
	inc.Site = "Łódź / Hala B"

	got := OutputFilename(inc, 0)
	if ok, _ := regexp.MatchString(`^[A-Za-z0-9_.-]+$`, got); !ok {
		t.Errorf("Filename contains characters outside [A-Za-z0-9_.-]: %q", got)
	}
}

func TestSanitize_Transliterates(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Werk München", "Werk_Munchen"},
		{"café crème", "cafe_creme"},
		{"plain-name_1", "plain-name_1"},
		{"slash/colon:q?", "slashcolonq"},
	}
	for _, c := range cases {
		if got := Sanitize(c.in); got != c.want {
			t.Errorf("Sanitize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestOutputFilename_SegmentTruncation(t *testing.T) {
	inc := filenameIncident()
	inc.Site = strings.Repeat("S", 100)
	inc.TitleShort = strings.Repeat("T", 200)

	got := OutputFilename(inc, 0)
	if strings.Contains(got, strings.Repeat("S", 31)) {
		t.Error("Site segment exceeds 30 characters")
	}
	if strings.Contains(got, strings.Repeat("T", 51)) {
		t.Error("Title segment exceeds 50 characters")
	}
}
