package overtime

type loginRequest struct {
	CustomerID string `json:"customer_id"`
	Password   string `json:"password"`
}

type loginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

type gamesResponse struct {
	Games []gameResponse `json:"games"`
}

type gameResponse struct {
	GameID    string           `json:"game_id"`
	League    string           `json:"league"`
	HomeTeam  teamResponse     `json:"home_team"`
	AwayTeam  teamResponse     `json:"away_team"`
	GameTime  string           `json:"game_time"`
	Week      int              `json:"week"`
	Season    int              `json:"season"`
	Status    string           `json:"status"`
	HomeScore *int             `json:"home_score"`
	AwayScore *int             `json:"away_score"`
	Stadium   *stadiumResponse `json:"stadium"`
	Playoff   bool             `json:"playoff"`
	BowlGame  bool             `json:"bowl_game"`
}

type teamResponse struct {
	Name           string `json:"name"`
	Abbreviation   string `json:"abbreviation"`
	Conference     string `json:"conference"`
	RotationNumber string `json:"rotation_number"`
}

type stadiumResponse struct {
	Name    string `json:"name"`
	City    string `json:"city"`
	State   string `json:"state"`
	Dome    bool   `json:"dome"`
	Surface string `json:"surface"`
}

type teamStatsResponse struct {
	Team          teamResponse `json:"team"`
	League        string       `json:"league"`
	Season        int          `json:"season"`
	Wins          int          `json:"wins"`
	Losses        int          `json:"losses"`
	PointsFor     float64      `json:"points_for"`
	PointsAgainst float64      `json:"points_against"`
	YardsPerPlay  float64      `json:"yards_per_play"`
}
