package incidentformat

import (
	"fmt"
	"strings"
)

// Validate validates an Incident record
func Validate(i *Incident) error {
	switch i.Type {
	case TypeHazard, TypeIncident, TypeInvestigation:
	case "":
		return fmt.Errorf("type is required")
	default:
		return fmt.Errorf("unknown incident type: %s", i.Type)
	}

	if i.Language == "" {
		return fmt.Errorf("language is required")
	}
	valid := false
	for _, l := range SupportedLanguages {
		if i.Language == l {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("unsupported language: %s (must be one of %s)",
			i.Language, strings.Join(SupportedLanguages, ", "))
	}

	if strings.TrimSpace(i.TitleShort) == "" {
		return fmt.Errorf("title_short is required")
	}

	if err := validateFontSize(i.FontSize); err != nil {
		return err
	}

	return nil
}

func validateFontSize(fs string) error {
	switch fs {
	case SizeAuto, SizeXS, SizeS, SizeM, SizeL, SizeXL:
		return nil
	default:
		return fmt.Errorf("invalid font_size '%s' (must be XS, S, M, L, or XL)", fs)
	}
}
