package openweather

import (
	"testing"
)

func TestWindCardinal(t *testing.T) {
	cases := []struct {
		deg  float64
		want string
	}{
		{0, "N"},
		{11, "N"},
		{12, "NNE"},
		{45, "NE"},
		{90, "E"},
		{180, "S"},
		{270, "W"},
		{315, "NW"},
		{359, "N"},
		{360, "N"},
		{-90, "W"},
		{450, "E"},
	}
	for _, tt := range cases {
		if got := windCardinal(tt.deg); got != tt.want {
			t.Errorf("windCardinal(%v) = %s, want %s", tt.deg, got, tt.want)
		}
	}
}

func TestMapCurrentNormalizesFields(t *testing.T) {
	got := mapCurrent(currentResponse{
		Weather: []weatherDesc{{Main: "Rain", Description: "light rain"}},
		Main:    mainReading{Temp: 54.3, Humidity: 88},
		Wind:    windReading{Speed: 12.5, Deg: 200},
		Rain:    &volume{OneHour: 0.4},
		Dt:      1765735200,
	})

	if got.TemperatureF == nil || *got.TemperatureF != 54.3 {
		t.Errorf("temperature = %v", got.TemperatureF)
	}
	if got.WindDirection != "SSW" {
		t.Errorf("wind direction = %s, want SSW", got.WindDirection)
	}
	if got.PrecipType != "rain" {
		t.Errorf("precip type = %q, want rain", got.PrecipType)
	}
	if got.Summary != "light rain" {
		t.Errorf("summary = %q", got.Summary)
	}
	if got.Source != "openweather" {
		t.Errorf("source = %s", got.Source)
	}
	if got.ForecastTime == nil {
		t.Error("forecast time missing")
	}
}

func TestMapForecastScalesPrecipChance(t *testing.T) {
	got := mapForecast(forecastEntry{
		Main:    mainReading{Temp: 28, Humidity: 70},
		Weather: []weatherDesc{{Description: "snow"}},
		Wind:    windReading{Speed: 18, Deg: 340},
		Pop:     0.65,
		Snow:    &volume{ThreeHour: 1.2},
	})

	if got.PrecipChance == nil || *got.PrecipChance != 65 {
		t.Errorf("precip chance = %v, want 65", got.PrecipChance)
	}
	if got.PrecipType != "snow" {
		t.Errorf("precip type = %q, want snow", got.PrecipType)
	}
	if got.WindDirection != "NNW" {
		t.Errorf("wind direction = %s, want NNW", got.WindDirection)
	}
}

func TestPrecipTypeWithoutVolume(t *testing.T) {
	if got := precipType(&volume{}, nil); got != "" {
		t.Errorf("precipType = %q, want empty for zero volume", got)
	}
	if got := precipType(nil, nil); got != "" {
		t.Errorf("precipType = %q, want empty", got)
	}
}
