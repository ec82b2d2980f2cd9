package teams

import "strings"

// Team represents the normalized team shape for use inside games.
// Kept in its own package to keep domain models modular and reusable across providers/fixtures.
type Team struct {
	Name           string `json:"name"`
	Abbreviation   string `json:"abbreviation" validate:"required,min=2,max=5"`
	Conference     string `json:"conference,omitempty"`
	RotationNumber string `json:"rotationNumber,omitempty"`
}

// Stadium describes where a game is played. Dome stadiums skip weather enrichment.
type Stadium struct {
	Name    string `json:"name"`
	City    string `json:"city"`
	State   string `json:"state"`
	Dome    bool   `json:"dome"`
	Surface string `json:"surface,omitempty"`
}

// NormalizeAbbreviation uppercases and trims a team abbreviation for matching.
func NormalizeAbbreviation(abbr string) string {
	return strings.ToUpper(strings.TrimSpace(abbr))
}
