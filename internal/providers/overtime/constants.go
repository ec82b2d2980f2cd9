package overtime

import "time"

const (
	providerName       = "overtime"
	defaultBaseURL     = "https://api.overtime-data.com"
	defaultMinInterval = 1 * time.Second
	defaultHTTPTimeout = 30 * time.Second
)
