package odds

import "time"

// DefaultJuice is the standard vig attached to spread and total bets.
const DefaultJuice = -110

// Movement captures a single observation of a game's betting line.
// Numeric fields carry validation ranges enforced by internal/validate;
// odds are in American format (negative favorites, positive underdogs).
type Movement struct {
	League         string     `json:"league" validate:"required,oneof=NFL NCAAF"`
	AwayTeam       string     `json:"awayTeam" validate:"required"`
	HomeTeam       string     `json:"homeTeam" validate:"required"`
	AwayRotation   string     `json:"awayRotation,omitempty"`
	HomeRotation   string     `json:"homeRotation,omitempty"`
	Spread         float64    `json:"spread" validate:"gte=-50,lte=50"`
	SpreadOdds     int        `json:"spreadOdds" validate:"american_odds"`
	OverUnder      float64    `json:"overUnder" validate:"gte=20,lte=100"`
	TotalOdds      int        `json:"totalOdds" validate:"american_odds"`
	MoneylineHome  *int       `json:"moneylineHome,omitempty" validate:"omitempty,american_odds"`
	MoneylineAway  *int       `json:"moneylineAway,omitempty" validate:"omitempty,american_odds"`
	Sportsbook     string     `json:"sportsbook"`
	Timestamp      time.Time  `json:"timestamp"`
	OpeningSpread  *float64   `json:"openingSpread,omitempty" validate:"omitempty,gte=-50,lte=50"`
	OpeningTotal   *float64   `json:"openingTotal,omitempty" validate:"omitempty,gte=20,lte=100"`
	Source         string     `json:"source"`
}

// ToDecimal converts American odds to decimal format.
func ToDecimal(american int) float64 {
	if american > 0 {
		return float64(american)/100 + 1
	}
	if american < 0 {
		return 100/float64(-american) + 1
	}
	return 0
}

// SpreadDecimal returns the spread price in decimal format.
func (m Movement) SpreadDecimal() float64 {
	return ToDecimal(m.SpreadOdds)
}

// TotalDecimal returns the total price in decimal format.
func (m Movement) TotalDecimal() float64 {
	return ToDecimal(m.TotalOdds)
}

// SpreadDelta reports how far the spread has moved from open, when the
// opening line is known.
func (m Movement) SpreadDelta() (float64, bool) {
	if m.OpeningSpread == nil {
		return 0, false
	}
	return m.Spread - *m.OpeningSpread, true
}
