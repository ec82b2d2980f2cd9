package actionnetwork

import "time"

const (
	providerName       = "actionnetwork"
	defaultBaseURL     = "https://api.actionnetwork.com"
	defaultMinInterval = 2 * time.Second
	defaultHTTPTimeout = 30 * time.Second
)

// bookNames maps upstream book ids to display names. Book 15 is the
// market consensus line.
var bookNames = map[int]string{
	15: "consensus",
	30: "fanduel",
	68: "draftkings",
	69: "mgm",
	79: "caesars",
}

const consensusBookID = 15
