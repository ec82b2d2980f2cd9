package accuweather

import "time"

const (
	providerName       = "accuweather"
	defaultBaseURL     = "https://dataservice.accuweather.com"
	defaultMinInterval = 1 * time.Second
	defaultHTTPTimeout = 30 * time.Second
	hourlyWindow       = "12hour"
)
