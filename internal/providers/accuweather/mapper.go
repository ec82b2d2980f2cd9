package accuweather

import (
	"time"

	"gridiron-data-service/internal/domain/weather"
)

func mapCurrent(c currentConditions) weather.Conditions {
	conditions := weather.Conditions{
		TemperatureF:  weather.Float(c.Temperature.Imperial.Value),
		WindSpeedMPH:  weather.Float(c.Wind.Speed.Imperial.Value),
		WindDirection: c.Wind.Direction.English,
		Humidity:      weather.Float(c.RelativeHumidity),
		Summary:       c.WeatherText,
		Source:        weather.SourceAccuWeather,
	}
	if c.HasPrecipitation {
		conditions.PrecipType = c.PrecipitationType
	}
	if ts, err := time.Parse(time.RFC3339, c.LocalObservationAt); err == nil {
		conditions.ForecastTime = &ts
	}
	return conditions
}

func mapHourly(h hourlyForecast) weather.Conditions {
	conditions := weather.Conditions{
		TemperatureF:  weather.Float(h.Temperature.Value),
		WindSpeedMPH:  weather.Float(h.Wind.Speed.Value),
		WindDirection: h.Wind.Direction.English,
		PrecipChance:  weather.Float(h.PrecipitationProbability),
		Humidity:      weather.Float(h.RelativeHumidity),
		Summary:       h.IconPhrase,
		Source:        weather.SourceAccuWeather,
	}
	if h.HasPrecipitation {
		conditions.PrecipType = h.PrecipitationType
	}
	if ts, err := time.Parse(time.RFC3339, h.DateTime); err == nil {
		conditions.ForecastTime = &ts
	}
	return conditions
}
