package config

import "time"

const (
	envOvertimeBaseURL  = "OVERTIME_BASE_URL"
	envOvertimeCustomer = "OV_CUSTOMER_ID"
	envOvertimePassword = "OV_PASSWORD"

	envActionBaseURL = "ACTION_BASE_URL"
	envActionRate    = "ACTION_RATE_LIMIT"

	envAccuWeatherKey   = "ACCUWEATHER_API_KEY"
	envOpenWeatherKey   = "OPENWEATHER_API_KEY"
	envPreferredWeather = "PREFERRED_WEATHER_SOURCE"

	defaultOvertimeBaseURL = "https://api.overtime.tv"
	defaultActionBaseURL   = "https://api.actionnetwork.com"
	defaultActionRate      = 2 * Duration(time.Second)
)

// OvertimeConfig controls how we talk to the Overtime game-data API.
type OvertimeConfig struct {
	BaseURL    string
	CustomerID string
	Password   string
}

func loadOvertime() OvertimeConfig {
	return OvertimeConfig{
		BaseURL:    envOrDefault(envOvertimeBaseURL, defaultOvertimeBaseURL),
		CustomerID: envOrDefault(envOvertimeCustomer, ""),
		Password:   envOrDefault(envOvertimePassword, ""),
	}
}

// Configured reports whether credentials are present.
func (c OvertimeConfig) Configured() bool {
	return c.CustomerID != "" && c.Password != ""
}

// ActionNetworkConfig controls how we talk to the odds feed.
type ActionNetworkConfig struct {
	BaseURL   string
	RateLimit time.Duration
}

func loadActionNetwork() ActionNetworkConfig {
	return ActionNetworkConfig{
		BaseURL:   envOrDefault(envActionBaseURL, defaultActionBaseURL),
		RateLimit: durationEnvOrDefault(envActionRate, defaultActionRate),
	}
}

// WeatherConfig holds keys for both weather sources plus the preference order.
type WeatherConfig struct {
	AccuWeatherKey  string
	OpenWeatherKey  string
	PreferredSource string
}

func loadWeather() WeatherConfig {
	return WeatherConfig{
		AccuWeatherKey:  envOrDefault(envAccuWeatherKey, ""),
		OpenWeatherKey:  envOrDefault(envOpenWeatherKey, ""),
		PreferredSource: envOrDefault(envPreferredWeather, "accuweather"),
	}
}

// Configured reports whether at least one weather source has a key.
func (c WeatherConfig) Configured() bool {
	return c.AccuWeatherKey != "" || c.OpenWeatherKey != ""
}
