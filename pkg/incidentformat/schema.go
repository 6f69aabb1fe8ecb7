// Package incidentformat defines the types for the incident record format
package incidentformat

// Incident types
const (
	TypeHazard        = "hazard"
	TypeIncident      = "incident"
	TypeInvestigation = "investigation"
)

// SupportedLanguages lists the locale codes templates exist for
var SupportedLanguages = []string{"en", "de", "fr", "it", "pl"}

// Font size preset names, mapped to base-size ceilings by the solver
const (
	SizeAuto = "" // auto mode, search from the fixed ceiling downward
	SizeXS   = "XS"
	SizeS    = "S"
	SizeM    = "M"
	SizeL    = "L"
	SizeXL   = "XL"
)

// Incident represents one incident record as handed over by the
// persistence layer. All fields are plain strings; the compositor
// never writes back.
type Incident struct {
	Reference  string `json:"reference,omitempty"`
	Type       string `json:"type"`
	Language   string `json:"language"`
	TitleShort string `json:"title_short"`

	Description string `json:"description,omitempty"`
	RootCauses  string `json:"root_causes,omitempty"`
	Actions     string `json:"actions,omitempty"`

	Site       string `json:"site,omitempty"`
	SiteDetail string `json:"site_detail,omitempty"`
	OccurredAt string `json:"occurred_at,omitempty"`

	FontSize string `json:"font_size,omitempty"`

	// Embedded image lookup order: base64 > grid bitmap > numbered slots
	ImageBase64 string `json:"image_base64,omitempty"`
	GridImage   string `json:"grid_image,omitempty"`
}

// IsInvestigation reports whether the record uses the paginating layout.
func (i *Incident) IsInvestigation() bool {
	return i.Type == TypeInvestigation
}
