package source

import (
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/config"
)

// BuildProviders assembles every provider the configuration enables. A
// provider with no credentials is skipped with a log line rather than an
// error: missing sources degrade the run, they do not fail it.
func BuildProviders(cfg config.SourcesConfig) []Provider {
	f := newFetcher(fetcherOptions{
		UserAgent:  cfg.UserAgent,
		Timeout:    time.Duration(cfg.TimeoutSecs) * time.Second,
		MaxRetries: cfg.MaxRetries,
	})

	var out []Provider

	if cfg.Reddit.ClientID != "" && cfg.Reddit.ClientSecret != "" {
		out = append(out, NewRedditProvider(cfg.Reddit, f))
	} else {
		zap.L().Info("source: reddit not configured, skipping")
	}

	// News always registers: it falls back to RSS feeds without a key.
	out = append(out, NewNewsProvider(cfg.NewsAPI, f))

	if cfg.Twitter.BearerToken != "" {
		out = append(out, NewTwitterProvider(cfg.Twitter, f))
	} else {
		zap.L().Info("source: twitter not configured, skipping")
	}

	if cfg.HackerNews.Enabled {
		out = append(out, NewHackerNewsProvider(cfg.HackerNews, f))
	}
	if cfg.SEC.Enabled {
		out = append(out, NewSECProvider(cfg.SEC, f))
	}
	if cfg.DataGov.Enabled {
		out = append(out, NewDataGovProvider(cfg.DataGov, f))
	}
	if cfg.BizBuySell.Enabled {
		out = append(out, NewBizBuySellProvider(cfg.BizBuySell, f))
	}
	if cfg.LinkedIn.Enabled {
		out = append(out, NewLinkedInJobsProvider(cfg.LinkedIn, f))
	}

	return out
}
