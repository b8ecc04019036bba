package config

// Config holds runtime configuration for the server.
type Config struct {
	Port          string
	QueryTimeout  Duration
	ResolverCache string
	RAWG          RAWGConfig
	Steam         SteamConfig
	SteamSpy      SteamSpyConfig
	Twitch        TwitchConfig
	Gamalytic     GamalyticConfig
	Metrics       MetricsConfig
}

// Load reads configuration from environment variables with sensible defaults.
// Nothing outside this package reads the environment.
func Load() Config {
	return Config{
		Port:          envOrDefault(envPort, defaultPort),
		QueryTimeout:  durationEnvOrDefault(envQueryTimeout, defaultQueryTimeout),
		ResolverCache: envOrDefault(envResolverDB, ""),
		RAWG:          loadRAWG(),
		Steam:         loadSteam(),
		SteamSpy:      loadSteamSpy(),
		Twitch:        loadTwitch(),
		Gamalytic:     loadGamalytic(),
		Metrics:       loadMetrics(),
	}
}
