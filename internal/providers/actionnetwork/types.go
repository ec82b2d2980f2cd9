package actionnetwork

type scoreboardResponse struct {
	Games []gameEntry `json:"games"`
}

type gameEntry struct {
	ID         int         `json:"id"`
	StartTime  string      `json:"start_time"`
	HomeTeamID int         `json:"home_team_id"`
	AwayTeamID int         `json:"away_team_id"`
	Teams      []teamEntry `json:"teams"`
	Odds       []oddsEntry `json:"odds"`
}

type teamEntry struct {
	ID             int    `json:"id"`
	FullName       string `json:"full_name"`
	Abbreviation   string `json:"abbr"`
	Conference     string `json:"conference_type"`
	RotationNumber int    `json:"rotation_number"`
}

type oddsEntry struct {
	Type           string  `json:"type"`
	BookID         int     `json:"book_id"`
	Opener         bool    `json:"opener"`
	SpreadHome     float64 `json:"spread_home"`
	SpreadHomeLine int     `json:"spread_home_line"`
	Total          float64 `json:"total"`
	OverLine       int     `json:"over_line"`
	MoneylineHome  int     `json:"ml_home"`
	MoneylineAway  int     `json:"ml_away"`
	Inserted       string  `json:"inserted"`
}
