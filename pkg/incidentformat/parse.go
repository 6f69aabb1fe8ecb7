package incidentformat

import (
	"encoding/json"
	"fmt"
	"os"
)

// Parse parses an incident record from a byte slice
func Parse(data []byte) (*Incident, error) {
	var inc Incident
	if err := json.Unmarshal(data, &inc); err != nil {
		return nil, fmt.Errorf("failed to parse incident: %w", err)
	}

	if inc.Language == "" {
		inc.Language = "en"
	}

	if err := Validate(&inc); err != nil {
		return nil, err
	}

	return &inc, nil
}

// ParseFile parses an incident record file from disk
func ParseFile(path string) (*Incident, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read incident file: %w", err)
	}

	return Parse(data)
}

// ToJSON converts an Incident to JSON bytes
func (i *Incident) ToJSON() ([]byte, error) {
	return json.MarshalIndent(i, "", "  ")
}
