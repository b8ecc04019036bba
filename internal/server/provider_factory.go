package server

import (
	"context"
	"log/slog"
	"time"

	"game-data-service/internal/config"
	"game-data-service/internal/metrics"
	"game-data-service/internal/providers"
	"game-data-service/internal/providers/gamalytic"
	"game-data-service/internal/providers/rawg"
	"game-data-service/internal/providers/steam"
	"game-data-service/internal/providers/steamspy"
	"game-data-service/internal/providers/twitch"
	"game-data-service/internal/quota"
)

// steamSpyBulkKey is the scheduler budget for SteamSpy's slow catalog
// endpoint; its appdetails calls draw from the steady per-second budget.
const steamSpyBulkKey = "steamspy:bulk"

// twitchAuthKey is the scheduler budget for the Twitch OAuth token endpoint,
// which lives on a different host than Helix and so gets its own draws.
const twitchAuthKey = "twitch:auth"

// steamDetailsDraws accounts for the two wire calls behind one Steam details
// fetch: store appdetails plus the Web API player count.
const steamDetailsDraws = 2

type providerFactory struct {
	logger   *slog.Logger
	recorder *metrics.Recorder
	sched    *quota.Scheduler
}

func newProviderFactory(logger *slog.Logger, recorder *metrics.Recorder, sched *quota.Scheduler) *providerFactory {
	return &providerFactory{logger: logger, recorder: recorder, sched: sched}
}

// build registers every provider's quota budget and returns the decorated
// adapter for each source. Decoration order matters: quota admission and
// instrumentation sit inside the retry loop, so every retry re-admits and is
// counted as its own attempt.
func (f *providerFactory) build(cfg config.Config) []providers.Adapter {
	f.register("rawg", cfg.RAWG.RateLimit)
	f.register("steam", cfg.Steam.RateLimit)
	f.register("steamspy", cfg.SteamSpy.RateLimit)
	f.register(steamSpyBulkKey, cfg.SteamSpy.BulkRateLimit)
	f.register("twitch", cfg.Twitch.RateLimit)
	f.register(twitchAuthKey, cfg.Twitch.RateLimit)
	f.register("gamalytic", cfg.Gamalytic.RateLimit)

	return []providers.Adapter{
		f.wrap(rawg.NewClient(rawg.Config{
			BaseURL: cfg.RAWG.BaseURL,
			APIKey:  cfg.RAWG.APIKey,
		}), providers.ThrottleKeys{}),
		f.wrap(steam.NewClient(steam.Config{
			WebBaseURL:   cfg.Steam.WebBaseURL,
			StoreBaseURL: cfg.Steam.StoreBaseURL,
			APIKey:       cfg.Steam.APIKey,
		}), providers.ThrottleKeys{DetailsDraws: steamDetailsDraws}),
		f.wrap(steamspy.NewClient(steamspy.Config{
			BaseURL: cfg.SteamSpy.BaseURL,
		}), providers.ThrottleKeys{Search: steamSpyBulkKey}),
		f.wrap(twitch.NewClient(twitch.Config{
			BaseURL:      cfg.Twitch.BaseURL,
			AuthURL:      cfg.Twitch.AuthURL,
			ClientID:     cfg.Twitch.ClientID,
			ClientSecret: cfg.Twitch.ClientSecret,
			AuthAdmit: func(ctx context.Context) error {
				return f.sched.Admit(ctx, twitchAuthKey)
			},
		}), providers.ThrottleKeys{}),
		f.wrap(gamalytic.NewClient(gamalytic.Config{
			BaseURL: cfg.Gamalytic.BaseURL,
			APIKey:  cfg.Gamalytic.APIKey,
		}), providers.ThrottleKeys{}),
	}
}

func (f *providerFactory) register(key string, limit config.RateLimit) {
	f.sched.Register(key, quota.Policy{
		Limit:  limit.Limit,
		Window: time.Duration(limit.Window),
	})
}

func (f *providerFactory) wrap(base providers.Adapter, keys providers.ThrottleKeys) providers.Adapter {
	throttled := providers.NewThrottledAdapter(base, f.sched, keys, f.logger)
	instrumented := providers.NewInstrumentedAdapter(throttled, f.recorder)
	return providers.NewRetryingAdapter(instrumented, f.logger, 0, 0)
}
