package openweather

import (
	"math"
	"time"

	"gridiron-data-service/internal/domain/weather"
)

var cardinals = []string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// windCardinal converts a wind bearing in degrees to 16-point compass
// text. Each sector spans 22.5 degrees centered on its cardinal.
func windCardinal(deg float64) string {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	idx := int(math.Round(deg/22.5)) % len(cardinals)
	return cardinals[idx]
}

func mapCurrent(c currentResponse) weather.Conditions {
	conditions := weather.Conditions{
		TemperatureF:  weather.Float(c.Main.Temp),
		WindSpeedMPH:  weather.Float(c.Wind.Speed),
		WindDirection: windCardinal(c.Wind.Deg),
		Humidity:      weather.Float(c.Main.Humidity),
		Summary:       summaryText(c.Weather),
		PrecipType:    precipType(c.Rain, c.Snow),
		Source:        weather.SourceOpenWeather,
	}
	if c.Dt > 0 {
		ts := time.Unix(c.Dt, 0).UTC()
		conditions.ForecastTime = &ts
	}
	return conditions
}

func mapForecast(e forecastEntry) weather.Conditions {
	conditions := weather.Conditions{
		TemperatureF:  weather.Float(e.Main.Temp),
		WindSpeedMPH:  weather.Float(e.Wind.Speed),
		WindDirection: windCardinal(e.Wind.Deg),
		PrecipChance:  weather.Float(e.Pop * 100),
		Humidity:      weather.Float(e.Main.Humidity),
		Summary:       summaryText(e.Weather),
		PrecipType:    precipType(e.Rain, e.Snow),
		Source:        weather.SourceOpenWeather,
	}
	if e.Dt > 0 {
		ts := time.Unix(e.Dt, 0).UTC()
		conditions.ForecastTime = &ts
	}
	return conditions
}

func summaryText(descs []weatherDesc) string {
	if len(descs) == 0 {
		return ""
	}
	return descs[0].Description
}

func precipType(rain, snow *volume) string {
	switch {
	case snow != nil && (snow.OneHour > 0 || snow.ThreeHour > 0):
		return "snow"
	case rain != nil && (rain.OneHour > 0 || rain.ThreeHour > 0):
		return "rain"
	}
	return ""
}
