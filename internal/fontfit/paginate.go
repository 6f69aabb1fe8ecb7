package fontfit

import (
	"github.com/safetyfirst/incident-engine/pkg/incidentformat"
)

// NeedsSecondCard decides whether an investigation record overflows onto
// a second card. The decision is always made at the auto ceiling and
// ignores any user font-size preset, so the page count never changes
// with the preset. Non-investigation records are always single.
func NeedsSecondCard(inc *incidentformat.Incident) bool {
	if !inc.IsInvestigation() {
		return false
	}
	return !FitsAt(FieldsFromIncident(inc), AutoMaxBase)
}
