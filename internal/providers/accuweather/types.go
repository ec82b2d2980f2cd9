package accuweather

type locationResult struct {
	Key           string `json:"Key"`
	LocalizedName string `json:"LocalizedName"`
}

type measurement struct {
	Value float64 `json:"Value"`
	Unit  string  `json:"Unit"`
}

type unitVariants struct {
	Imperial measurement `json:"Imperial"`
}

type currentConditions struct {
	WeatherText        string       `json:"WeatherText"`
	Temperature        unitVariants `json:"Temperature"`
	RelativeHumidity   float64      `json:"RelativeHumidity"`
	Wind               windReading  `json:"Wind"`
	HasPrecipitation   bool         `json:"HasPrecipitation"`
	PrecipitationType  string       `json:"PrecipitationType"`
	LocalObservationAt string       `json:"LocalObservationDateTime"`
}

type windReading struct {
	Speed     unitVariants  `json:"Speed"`
	Direction windDirection `json:"Direction"`
}

type windDirection struct {
	Degrees float64 `json:"Degrees"`
	English string  `json:"English"`
}

type hourlyForecast struct {
	DateTime                 string      `json:"DateTime"`
	IconPhrase               string      `json:"IconPhrase"`
	Temperature              measurement `json:"Temperature"`
	Wind                     hourlyWind  `json:"Wind"`
	PrecipitationProbability float64     `json:"PrecipitationProbability"`
	HasPrecipitation         bool        `json:"HasPrecipitation"`
	PrecipitationType        string      `json:"PrecipitationType"`
	RelativeHumidity         float64     `json:"RelativeHumidity"`
}

type hourlyWind struct {
	Speed     measurement   `json:"Speed"`
	Direction windDirection `json:"Direction"`
}
