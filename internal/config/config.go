package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store      StoreConfig      `yaml:"store" mapstructure:"store"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
	Cache      CacheConfig      `yaml:"cache" mapstructure:"cache"`
	Sources    SourcesConfig    `yaml:"sources" mapstructure:"sources"`
	Scoring    ScoringConfig    `yaml:"scoring" mapstructure:"scoring"`
	Gate       GateConfig       `yaml:"gate" mapstructure:"gate"`
	Pipeline   PipelineConfig   `yaml:"pipeline" mapstructure:"pipeline"`
	Hunter     HunterConfig     `yaml:"hunter" mapstructure:"hunter"`
	Clearbit   ClearbitConfig   `yaml:"clearbit" mapstructure:"clearbit"`
	Anthropic  AnthropicConfig  `yaml:"anthropic" mapstructure:"anthropic"`
	Notion     NotionConfig     `yaml:"notion" mapstructure:"notion"`
	Salesforce SalesforceConfig `yaml:"salesforce" mapstructure:"salesforce"`
}

// StoreConfig configures the lead store backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"` // "sqlite" or "postgres"
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	SQLitePath  string `yaml:"sqlite_path" mapstructure:"sqlite_path"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port     int    `yaml:"port" mapstructure:"port"`
	AdminKey string `yaml:"admin_key" mapstructure:"admin_key"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// CacheConfig configures the search response cache.
type CacheConfig struct {
	TTLMinutes int `yaml:"ttl_minutes" mapstructure:"ttl_minutes"`
	Capacity   int `yaml:"capacity" mapstructure:"capacity"`
}

// SourcesConfig holds per-provider credentials and limits. A provider with
// no credentials is skipped, not an error.
type SourcesConfig struct {
	TimeoutSecs int            `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxRetries  int            `yaml:"max_retries" mapstructure:"max_retries"`
	UserAgent   string         `yaml:"user_agent" mapstructure:"user_agent"`
	Reddit      RedditConfig   `yaml:"reddit" mapstructure:"reddit"`
	NewsAPI     NewsAPIConfig  `yaml:"newsapi" mapstructure:"newsapi"`
	Twitter     TwitterConfig  `yaml:"twitter" mapstructure:"twitter"`
	HackerNews  EndpointConfig `yaml:"hackernews" mapstructure:"hackernews"`
	SEC         EndpointConfig `yaml:"sec" mapstructure:"sec"`
	DataGov     EndpointConfig `yaml:"datagov" mapstructure:"datagov"`
	BizBuySell  EndpointConfig `yaml:"bizbuysell" mapstructure:"bizbuysell"`
	LinkedIn    EndpointConfig `yaml:"linkedin" mapstructure:"linkedin"`
}

// RedditConfig holds Reddit OAuth client credentials.
type RedditConfig struct {
	ClientID     string   `yaml:"client_id" mapstructure:"client_id"`
	ClientSecret string   `yaml:"client_secret" mapstructure:"client_secret"`
	Subreddits   []string `yaml:"subreddits" mapstructure:"subreddits"`
	BaseURL      string   `yaml:"base_url" mapstructure:"base_url"`
	AuthURL      string   `yaml:"auth_url" mapstructure:"auth_url"`
}

// NewsAPIConfig holds NewsAPI credentials plus the RSS fallback feeds.
type NewsAPIConfig struct {
	Key      string   `yaml:"key" mapstructure:"key"`
	BaseURL  string   `yaml:"base_url" mapstructure:"base_url"`
	Domains  []string `yaml:"domains" mapstructure:"domains"`
	RSSFeeds []string `yaml:"rss_feeds" mapstructure:"rss_feeds"`
}

// TwitterConfig holds Twitter API v2 bearer auth.
type TwitterConfig struct {
	BearerToken string `yaml:"bearer_token" mapstructure:"bearer_token"`
	BaseURL     string `yaml:"base_url" mapstructure:"base_url"`
}

// EndpointConfig configures a keyless HTTP source.
type EndpointConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// ScoringConfig is the canonical intent-scoring weight table. Every signal's
// point value lives here; the scorer never invents contributions ad hoc.
type ScoringConfig struct {
	ForumHighPoints       int `yaml:"forum_high_points" mapstructure:"forum_high_points"`
	ForumMediumPoints     int `yaml:"forum_medium_points" mapstructure:"forum_medium_points"`
	ForumLowPoints        int `yaml:"forum_low_points" mapstructure:"forum_low_points"`
	FundingPoints         int `yaml:"funding_points" mapstructure:"funding_points"`
	NewsFundingPoints     int `yaml:"news_funding_points" mapstructure:"news_funding_points"`
	OptimalSizePoints     int `yaml:"optimal_size_points" mapstructure:"optimal_size_points"`
	PrimaryMarketPoints   int `yaml:"primary_market_points" mapstructure:"primary_market_points"`
	SecondaryMarketPoints int `yaml:"secondary_market_points" mapstructure:"secondary_market_points"`
	IndustryPoints        int `yaml:"industry_points" mapstructure:"industry_points"`
	VerifiedContactPoints int `yaml:"verified_contact_points" mapstructure:"verified_contact_points"`
	ContactPoints         int `yaml:"contact_points" mapstructure:"contact_points"`

	MinEmployees int `yaml:"min_employees" mapstructure:"min_employees"`
	MaxEmployees int `yaml:"max_employees" mapstructure:"max_employees"`

	// ContactConfidenceThreshold separates verified from unverified contacts
	// (0-100 scale, exclusive).
	ContactConfidenceThreshold int `yaml:"contact_confidence_threshold" mapstructure:"contact_confidence_threshold"`

	PrimaryMarkets      []string `yaml:"primary_markets" mapstructure:"primary_markets"`
	SecondaryMarkets    []string `yaml:"secondary_markets" mapstructure:"secondary_markets"`
	HighValueIndustries []string `yaml:"high_value_industries" mapstructure:"high_value_industries"`
}

// GateConfig sets the post-merge qualification thresholds.
type GateConfig struct {
	ForumIntentMin      int `yaml:"forum_intent_min" mapstructure:"forum_intent_min"`
	NewsMentionsMin     int `yaml:"news_mentions_min" mapstructure:"news_mentions_min"`
	SocialEngagementMin int `yaml:"social_engagement_min" mapstructure:"social_engagement_min"`
	BackfillBelow       int `yaml:"backfill_below" mapstructure:"backfill_below"`
	BackfillCount       int `yaml:"backfill_count" mapstructure:"backfill_count"`
}

// PipelineConfig configures the orchestrator.
type PipelineConfig struct {
	SourceTimeoutSecs   int `yaml:"source_timeout_secs" mapstructure:"source_timeout_secs"`
	MaxResults          int `yaml:"max_results" mapstructure:"max_results"`
	HighIntentThreshold int `yaml:"high_intent_threshold" mapstructure:"high_intent_threshold"`
}

// HunterConfig holds Hunter.io domain-search settings.
type HunterConfig struct {
	Key           string `yaml:"key" mapstructure:"key"`
	BaseURL       string `yaml:"base_url" mapstructure:"base_url"`
	MinConfidence int    `yaml:"min_confidence" mapstructure:"min_confidence"`
	MaxContacts   int    `yaml:"max_contacts" mapstructure:"max_contacts"`
}

// ClearbitConfig holds Clearbit company-find settings.
type ClearbitConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// AnthropicConfig holds Anthropic API settings for the narrative summary.
type AnthropicConfig struct {
	Key       string `yaml:"key" mapstructure:"key"`
	Model     string `yaml:"model" mapstructure:"model"`
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// NotionConfig holds Notion API credentials for lead export.
type NotionConfig struct {
	Token  string `yaml:"token" mapstructure:"token"`
	LeadDB string `yaml:"lead_db" mapstructure:"lead_db"`
}

// SalesforceConfig holds Salesforce JWT auth settings for lead export.
type SalesforceConfig struct {
	ClientID string `yaml:"client_id" mapstructure:"client_id"`
	Username string `yaml:"username" mapstructure:"username"`
	KeyPath  string `yaml:"key_path" mapstructure:"key_path"`
	LoginURL string `yaml:"login_url" mapstructure:"login_url"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("LEADGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.sqlite_path", "leadgen.db")
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("cache.ttl_minutes", 30)
	v.SetDefault("cache.capacity", 100)

	v.SetDefault("sources.timeout_secs", 15)
	v.SetDefault("sources.max_retries", 1)
	v.SetDefault("sources.user_agent", "Mozilla/5.0 (compatible; leadgen-cli/1.0)")
	v.SetDefault("sources.reddit.base_url", "https://oauth.reddit.com")
	v.SetDefault("sources.reddit.auth_url", "https://www.reddit.com/api/v1/access_token")
	v.SetDefault("sources.reddit.subreddits", []string{
		"business", "entrepreneur", "smallbusiness", "startups",
		"investing", "sales", "marketing", "consulting",
	})
	v.SetDefault("sources.newsapi.base_url", "https://newsapi.org/v2")
	v.SetDefault("sources.newsapi.domains", []string{
		"techcrunch.com", "bloomberg.com", "reuters.com", "wsj.com",
		"fortune.com", "businessinsider.com", "cnbc.com", "financialpost.com",
	})
	v.SetDefault("sources.twitter.base_url", "https://api.twitter.com/2")
	v.SetDefault("sources.hackernews.enabled", true)
	v.SetDefault("sources.hackernews.base_url", "https://hn.algolia.com/api/v1")
	v.SetDefault("sources.sec.enabled", true)
	v.SetDefault("sources.sec.base_url", "https://efts.sec.gov/LATEST/search-index")
	v.SetDefault("sources.datagov.enabled", true)
	v.SetDefault("sources.datagov.base_url", "https://catalog.data.gov/api/3")
	v.SetDefault("sources.bizbuysell.enabled", false)
	v.SetDefault("sources.bizbuysell.base_url", "https://www.bizbuysell.com")
	v.SetDefault("sources.linkedin.enabled", false)
	v.SetDefault("sources.linkedin.base_url", "https://www.linkedin.com")

	v.SetDefault("scoring.forum_high_points", 30)
	v.SetDefault("scoring.forum_medium_points", 20)
	v.SetDefault("scoring.forum_low_points", 10)
	v.SetDefault("scoring.funding_points", 25)
	v.SetDefault("scoring.news_funding_points", 20)
	v.SetDefault("scoring.optimal_size_points", 15)
	v.SetDefault("scoring.primary_market_points", 25)
	v.SetDefault("scoring.secondary_market_points", 15)
	v.SetDefault("scoring.industry_points", 15)
	v.SetDefault("scoring.verified_contact_points", 15)
	v.SetDefault("scoring.contact_points", 8)
	v.SetDefault("scoring.min_employees", 10)
	v.SetDefault("scoring.max_employees", 500)
	v.SetDefault("scoring.contact_confidence_threshold", 90)
	v.SetDefault("scoring.primary_markets", []string{
		"toronto", "vancouver", "montreal", "calgary", "ottawa", "canada",
	})
	v.SetDefault("scoring.secondary_markets", []string{
		"new york", "san francisco", "los angeles", "chicago", "boston",
		"seattle", "usa", "united states",
	})
	v.SetDefault("scoring.high_value_industries", []string{
		"software", "saas", "technology", "fintech", "healthtech",
		"ai", "artificial intelligence",
	})

	v.SetDefault("gate.forum_intent_min", 6)
	v.SetDefault("gate.news_mentions_min", 2)
	v.SetDefault("gate.social_engagement_min", 20)
	v.SetDefault("gate.backfill_below", 2)
	v.SetDefault("gate.backfill_count", 3)

	v.SetDefault("pipeline.source_timeout_secs", 20)
	v.SetDefault("pipeline.max_results", 15)
	v.SetDefault("pipeline.high_intent_threshold", 60)

	v.SetDefault("hunter.base_url", "https://api.hunter.io/v2")
	v.SetDefault("hunter.min_confidence", 70)
	v.SetDefault("hunter.max_contacts", 3)
	v.SetDefault("clearbit.base_url", "https://company-stream.clearbit.com/v2")

	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("anthropic.max_tokens", 1024)

	v.SetDefault("salesforce.login_url", "https://login.salesforce.com")
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
