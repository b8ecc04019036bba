package twitch

import "time"

const (
	providerName   = "twitch"
	defaultBaseURL = "https://api.twitch.tv/helix"
	defaultAuthURL = "https://id.twitch.tv/oauth2/token"

	searchFirst  = 10
	streamsFirst = 100

	headerClientID = "Client-Id"

	// Tokens are refreshed slightly before Helix would reject them.
	tokenExpirySlack = time.Minute

	confidenceExact   = 1.0
	confidencePartial = 0.7

	exactMatchThreshold = 0.95
)
