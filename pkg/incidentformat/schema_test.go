package incidentformat

import (
	"testing"
)

func TestValidate_ValidRecord(t *testing.T) {
	inc := &Incident{
		Type:       TypeHazard,
		Language:   "en",
		TitleShort: "Slippery floor near loading dock",
	}

	if err := Validate(inc); err != nil {
		t.Errorf("Expected valid incident, got error: %v", err)
	}
}

func TestValidate_MissingType(t *testing.T) {
	inc := &Incident{
		Language:   "en",
		TitleShort: "Something happened",
	}

	if err := Validate(inc); err == nil {
		t.Error("Expected error for missing type")
	}
}

func TestValidate_UnknownType(t *testing.T) {
	inc := &Incident{
		Type:       "near-miss",
		Language:   "en",
		TitleShort: "Something happened",
	}

	if err := Validate(inc); err == nil {
		t.Error("Expected error for unknown type")
	}
}

func TestValidate_UnsupportedLanguage(t *testing.T) {
	inc := &Incident{
		Type:       TypeIncident,
		Language:   "sv",
		TitleShort: "Something happened",
	}

	if err := Validate(inc); err == nil {
		t.Error("Expected error for unsupported language")
	}
}

func TestValidate_MissingTitle(t *testing.T) {
	inc := &Incident{
		Type:     TypeIncident,
		Language: "de",
	}

	if err := Validate(inc); err == nil {
		t.Error("Expected error for missing title")
	}
}

func TestValidate_FontSizePresets(t *testing.T) {
	for _, fs := range []string{SizeAuto, SizeXS, SizeS, SizeM, SizeL, SizeXL} {
		inc := &Incident{
			Type:       TypeInvestigation,
			Language:   "fr",
			TitleShort: "Titre",
			FontSize:   fs,
		}
		if err := Validate(inc); err != nil {
			t.Errorf("Expected preset %q to validate, got: %v", fs, err)
		}
	}

	inc := &Incident{
		Type:       TypeInvestigation,
		Language:   "fr",
		TitleShort: "Titre",
		FontSize:   "XXL",
	}
	if err := Validate(inc); err == nil {
		t.Error("Expected error for invalid font_size preset")
	}
}

func TestParse_DefaultsLanguage(t *testing.T) {
	data := []byte(`{"type":"hazard","title_short":"Spill in aisle 4"}`)

	inc, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if inc.Language != "en" {
		t.Errorf("Expected language to default to en, got %q", inc.Language)
	}
}

func TestParse_InvalidJSON(t *testing.T) {
	if _, err := Parse([]byte(`{not json`)); err == nil {
		t.Error("Expected error for invalid JSON")
	}
}
