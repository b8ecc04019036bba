package gamalytic

import "time"

const (
	providerName   = "gamalytic"
	defaultBaseURL = "https://api.gamalytic.com"

	headerAPIKey = "X-API-Key"

	endpointSearch  = "search"
	endpointDetails = "details"

	// After this many consecutive failures an endpoint's breaker opens and
	// calls fail fast until the cooldown elapses.
	breakerThreshold = 3
	breakerCooldown  = 5 * time.Minute

	searchLimit = 10

	confidenceExact   = 1.0
	confidencePartial = 0.7

	exactMatchThreshold = 0.95

	maxSimilarGames = 10
)
