package rawg

const (
	providerName    = "rawg"
	defaultBaseURL  = "https://api.rawg.io/api"
	defaultPageSize = 5

	// Confidence assigned from how the candidate name relates to the query.
	confidenceExact     = 1.0
	confidenceSubstring = 0.7
	confidenceFuzzy     = 0.4

	exactMatchThreshold = 0.95
)
