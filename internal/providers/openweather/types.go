package openweather

type currentResponse struct {
	Weather []weatherDesc `json:"weather"`
	Main    mainReading   `json:"main"`
	Wind    windReading   `json:"wind"`
	Rain    *volume       `json:"rain"`
	Snow    *volume       `json:"snow"`
	Dt      int64         `json:"dt"`
}

type forecastResponse struct {
	List []forecastEntry `json:"list"`
}

type forecastEntry struct {
	Dt      int64         `json:"dt"`
	Main    mainReading   `json:"main"`
	Weather []weatherDesc `json:"weather"`
	Wind    windReading   `json:"wind"`
	Pop     float64       `json:"pop"`
	Rain    *volume       `json:"rain"`
	Snow    *volume       `json:"snow"`
}

type weatherDesc struct {
	Main        string `json:"main"`
	Description string `json:"description"`
}

type mainReading struct {
	Temp     float64 `json:"temp"`
	Humidity float64 `json:"humidity"`
}

type windReading struct {
	Speed float64 `json:"speed"`
	Deg   float64 `json:"deg"`
}

type volume struct {
	OneHour   float64 `json:"1h"`
	ThreeHour float64 `json:"3h"`
}
