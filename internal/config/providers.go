package config

import "time"

const (
	envRawgBaseURL = "RAWG_BASE_URL"
	envRawgAPIKey  = "RAWG_API_KEY"

	envSteamWebBaseURL   = "STEAM_WEB_BASE_URL"
	envSteamStoreBaseURL = "STEAM_STORE_BASE_URL"
	envSteamAPIKey       = "STEAM_API_KEY"

	envSteamSpyBaseURL = "STEAMSPY_BASE_URL"

	envTwitchBaseURL      = "TWITCH_BASE_URL"
	envTwitchAuthURL      = "TWITCH_AUTH_URL"
	envTwitchClientID     = "TWITCH_CLIENT_ID"
	envTwitchClientSecret = "TWITCH_CLIENT_SECRET"

	envGamalyticBaseURL = "GAMALYTIC_BASE_URL"
	envGamalyticAPIKey  = "GAMALYTIC_API_KEY"

	defaultRawgBaseURL       = "https://api.rawg.io/api"
	defaultSteamWebBaseURL   = "https://api.steampowered.com"
	defaultSteamStoreBaseURL = "https://store.steampowered.com/api"
	defaultSteamSpyBaseURL   = "https://steamspy.com/api.php"
	defaultTwitchBaseURL     = "https://api.twitch.tv/helix"
	defaultTwitchAuthURL     = "https://id.twitch.tv/oauth2/token"
	defaultGamalyticBaseURL  = "https://api.gamalytic.com"
)

// RateLimit is a fixed-window request budget for one provider.
type RateLimit struct {
	Limit  int
	Window Duration
}

// Documented upstream rate contracts. Steady per-second tiers for most
// providers; SteamSpy bulk requests are limited to one per minute.
var (
	rawgRateLimit      = RateLimit{Limit: 1, Window: Duration(time.Second)}
	steamRateLimit     = RateLimit{Limit: 1, Window: Duration(time.Second)}
	steamSpyRateLimit  = RateLimit{Limit: 1, Window: Duration(time.Second)}
	steamSpyBulkLimit  = RateLimit{Limit: 1, Window: 60 * Duration(time.Second)}
	twitchRateLimit    = RateLimit{Limit: 1, Window: Duration(time.Second)}
	gamalyticRateLimit = RateLimit{Limit: 1, Window: Duration(time.Second)}
)

// RAWGConfig controls how we talk to the RAWG games database.
type RAWGConfig struct {
	BaseURL   string
	APIKey    string
	RateLimit RateLimit
}

func loadRAWG() RAWGConfig {
	return RAWGConfig{
		BaseURL:   envOrDefault(envRawgBaseURL, defaultRawgBaseURL),
		APIKey:    envOrDefault(envRawgAPIKey, ""),
		RateLimit: rawgRateLimit,
	}
}

// SteamConfig controls the Steam Web API and Store API endpoints.
type SteamConfig struct {
	WebBaseURL   string
	StoreBaseURL string
	APIKey       string
	RateLimit    RateLimit
}

func loadSteam() SteamConfig {
	return SteamConfig{
		WebBaseURL:   envOrDefault(envSteamWebBaseURL, defaultSteamWebBaseURL),
		StoreBaseURL: envOrDefault(envSteamStoreBaseURL, defaultSteamStoreBaseURL),
		APIKey:       envOrDefault(envSteamAPIKey, ""),
		RateLimit:    steamRateLimit,
	}
}

// SteamSpyConfig controls the SteamSpy analytics mirror. The mirror needs no
// key but enforces a much slower window on its bulk "all" endpoint.
type SteamSpyConfig struct {
	BaseURL       string
	RateLimit     RateLimit
	BulkRateLimit RateLimit
}

func loadSteamSpy() SteamSpyConfig {
	return SteamSpyConfig{
		BaseURL:       envOrDefault(envSteamSpyBaseURL, defaultSteamSpyBaseURL),
		RateLimit:     steamSpyRateLimit,
		BulkRateLimit: steamSpyBulkLimit,
	}
}

// TwitchConfig controls the Twitch Helix API and its OAuth token endpoint.
type TwitchConfig struct {
	BaseURL      string
	AuthURL      string
	ClientID     string
	ClientSecret string
	RateLimit    RateLimit
}

func loadTwitch() TwitchConfig {
	return TwitchConfig{
		BaseURL:      envOrDefault(envTwitchBaseURL, defaultTwitchBaseURL),
		AuthURL:      envOrDefault(envTwitchAuthURL, defaultTwitchAuthURL),
		ClientID:     envOrDefault(envTwitchClientID, ""),
		ClientSecret: envOrDefault(envTwitchClientSecret, ""),
		RateLimit:    twitchRateLimit,
	}
}

// GamalyticConfig controls the Gamalytic market intelligence API.
type GamalyticConfig struct {
	BaseURL   string
	APIKey    string
	RateLimit RateLimit
}

func loadGamalytic() GamalyticConfig {
	return GamalyticConfig{
		BaseURL:   envOrDefault(envGamalyticBaseURL, defaultGamalyticBaseURL),
		APIKey:    envOrDefault(envGamalyticAPIKey, ""),
		RateLimit: gamalyticRateLimit,
	}
}
