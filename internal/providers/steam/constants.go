package steam

const (
	providerName        = "steam"
	defaultWebBaseURL   = "https://api.steampowered.com"
	defaultStoreBaseURL = "https://store.steampowered.com/api"

	playerCountPath = "/ISteamUserStats/GetNumberOfCurrentPlayers/v1/"

	// Store endpoints want a country and language for stable pricing.
	countryCode = "US"
	language    = "en"

	confidenceExact     = 1.0
	confidenceSubstring = 0.7
	confidenceFuzzy     = 0.4

	exactMatchThreshold = 0.95
)
