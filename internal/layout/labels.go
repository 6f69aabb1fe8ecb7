package layout

// Labels are the fixed strings rendered onto cards, per language.
type Labels struct {
	RootCauses string
	Actions    string
	Site       string
	Date       string

	TypeNames map[string]string
}

var labelSets = map[string]Labels{
	"en": {
		RootCauses: "ROOT CAUSES",
		Actions:    "ACTIONS",
		Site:       "SITE",
		Date:       "DATE",
		TypeNames: map[string]string{
			"hazard":        "HAZARD",
			"incident":      "INCIDENT",
			"investigation": "INVESTIGATION",
		},
	},
	"de": {
		RootCauses: "URSACHEN",
		Actions:    "MASSNAHMEN",
		Site:       "STANDORT",
		Date:       "DATUM",
		TypeNames: map[string]string{
			"hazard":        "GEFAHR",
			"incident":      "VORFALL",
			"investigation": "UNTERSUCHUNG",
		},
	},
	"fr": {
		RootCauses: "CAUSES RACINES",
		Actions:    "ACTIONS",
		Site:       "SITE",
		Date:       "DATE",
		TypeNames: map[string]string{
			"hazard":        "DANGER",
			"incident":      "INCIDENT",
			"investigation": "ENQUÊTE",
		},
	},
	"it": {
		RootCauses: "CAUSE PRINCIPALI",
		Actions:    "AZIONI",
		Site:       "SITO",
		Date:       "DATA",
		TypeNames: map[string]string{
			"hazard":        "PERICOLO",
			"incident":      "INCIDENTE",
			"investigation": "INDAGINE",
		},
	},
	"pl": {
		RootCauses: "PRZYCZYNY",
		Actions:    "DZIAŁANIA",
		Site:       "ZAKŁAD",
		Date:       "DATA",
		TypeNames: map[string]string{
			"hazard":        "ZAGROŻENIE",
			"incident":      "ZDARZENIE",
			"investigation": "DOCHODZENIE",
		},
	},
}

// LabelsFor returns the label set for a language, falling back to English.
func LabelsFor(lang string) Labels {
	if l, ok := labelSets[lang]; ok {
		return l
	}
	return labelSets["en"]
}

// TypeName returns the localized badge text for an incident type.
func (l Labels) TypeName(incidentType string) string {
	if n, ok := l.TypeNames[incidentType]; ok {
		return n
	}
	return incidentType
}
