package renderer

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
)

// TemplateFilename maps (type, language, card number) to the background
// asset name. Pure; existence is the resolver's concern.
// Single-card templates are SF_bg_{type}_{lang}.jpg, the investigation
// two-card set carries the card number infix: SF_bg_{type}_{n}_{lang}.jpg.
func TemplateFilename(incidentType, lang string, cardNumber int) string {
	if cardNumber > 0 {
		return fmt.Sprintf("SF_bg_%s_%d_%s.jpg", incidentType, cardNumber, lang)
	}
	return fmt.Sprintf("SF_bg_%s_%s.jpg", incidentType, lang)
}

// ResolvedTemplate is the outcome of a template lookup, including whether
// asset availability forced the layout back to a single card.
type ResolvedTemplate struct {
	Path         string
	ForcedSingle bool
}

// ResolveTemplate finds the background file for a render, walking the
// fallback chain: exact match, then (for carded layouts) the single-card
// template with the layout forced single, then the English variant, then
// the generic default. Missing assets degrade, they never crash a render;
// only an empty chain is an error.
func ResolveTemplate(templateDir, incidentType, lang string, cardNumber int) (ResolvedTemplate, error) {
	try := func(name string) (string, bool) {
		p := filepath.Join(templateDir, name)
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
		return "", false
	}

	if p, ok := try(TemplateFilename(incidentType, lang, cardNumber)); ok {
		return ResolvedTemplate{Path: p}, nil
	}

	if cardNumber > 0 {
		// Visual completeness beats the pagination decision: without a
		// two-card asset the record renders as a single card.
		if p, ok := try(TemplateFilename(incidentType, lang, 0)); ok {
			log.Printf("Warning: template %s missing, falling back to single-card layout",
				TemplateFilename(incidentType, lang, cardNumber))
			return ResolvedTemplate{Path: p, ForcedSingle: true}, nil
		}
	}

	if lang != "en" {
		if p, ok := try(TemplateFilename(incidentType, "en", 0)); ok {
			log.Printf("Warning: no %s template for type %s, using English variant", lang, incidentType)
			return ResolvedTemplate{Path: p, ForcedSingle: cardNumber > 0}, nil
		}
	}

	if p, ok := try("SF_bg_default.jpg"); ok {
		log.Printf("Warning: no template for type %s lang %s, using generic default", incidentType, lang)
		return ResolvedTemplate{Path: p, ForcedSingle: cardNumber > 0}, nil
	}

	return ResolvedTemplate{}, fmt.Errorf("no template available for type %s lang %s in %s",
		incidentType, lang, templateDir)
}

// LoadTemplate decodes a background image from disk.
func LoadTemplate(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open template %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode template %s: %w", path, err)
	}
	return img, nil
}
