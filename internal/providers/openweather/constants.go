package openweather

import "time"

const (
	providerName       = "openweather"
	defaultBaseURL     = "https://api.openweathermap.org"
	defaultMinInterval = 1 * time.Second
	defaultHTTPTimeout = 30 * time.Second
	defaultCountry     = "US"
)
