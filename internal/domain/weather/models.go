package weather

import "time"

// Source identifies which upstream produced a set of conditions.
type Source string

const (
	SourceAccuWeather Source = "accuweather"
	SourceOpenWeather Source = "openweather"
)

// Conditions is the common weather schema all sources normalize into.
// Optional fields are pointers so "not reported" is distinguishable
// from a legitimate zero reading.
type Conditions struct {
	TemperatureF  *float64   `json:"temperatureF,omitempty" validate:"omitempty,gte=-50,lte=150"`
	WindSpeedMPH  *float64   `json:"windSpeedMph,omitempty" validate:"omitempty,gte=0,lte=100"`
	WindDirection string     `json:"windDirection,omitempty"`
	PrecipChance  *float64   `json:"precipChance,omitempty" validate:"omitempty,gte=0,lte=100"`
	PrecipType    string     `json:"precipType,omitempty"`
	Humidity      *float64   `json:"humidity,omitempty" validate:"omitempty,gte=0,lte=100"`
	Summary       string     `json:"summary,omitempty"`
	ForecastTime  *time.Time `json:"forecastTime,omitempty"`
	Source        Source     `json:"source"`
}

// Float returns a pointer to v; convenience for building Conditions literals.
func Float(v float64) *float64 { return &v }
