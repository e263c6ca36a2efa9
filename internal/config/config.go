package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Config represents the main configuration structure
type Config struct {
	ListenAddr           string       `yaml:"listen_addr" validate:"required"`
	SweepIntervalSeconds int          `yaml:"sweep_interval_seconds" validate:"gte=1"`
	Trivia               TriviaConfig `yaml:"trivia"`
	Stocks               StocksConfig `yaml:"stocks"`
	News                 NewsConfig   `yaml:"news"`
}

// TriviaConfig configures the question provider and cache.
type TriviaConfig struct {
	APIURL         string   `yaml:"api_url" validate:"required,url"`
	TTLSeconds     int      `yaml:"ttl_seconds" validate:"gte=1"`
	TimeoutSeconds int      `yaml:"timeout_seconds" validate:"gte=1"`
	WarmCategories []string `yaml:"warm_categories" validate:"dive,lowercase"`
}

// StocksConfig configures the quote provider, cache, and ledger.
type StocksConfig struct {
	APIURL          string  `yaml:"api_url" validate:"required,url"`
	TTLSeconds      int     `yaml:"ttl_seconds" validate:"gte=1"`
	TimeoutSeconds  int     `yaml:"timeout_seconds" validate:"gte=1"`
	StartingBalance float64 `yaml:"starting_balance" validate:"gte=0"`
}

// NewsConfig configures the post store and the RSS feed.
type NewsConfig struct {
	FeedTitle        string `yaml:"feed_title" validate:"required"`
	FeedDescription  string `yaml:"feed_description"`
	SiteURL          string `yaml:"site_url" validate:"required,url"`
	MaxPosts         int    `yaml:"max_posts" validate:"gte=1"`
	FeedItems        int    `yaml:"feed_items" validate:"gte=1"`
	FeedCacheSeconds int    `yaml:"feed_cache_seconds" validate:"gte=1"`
}

var validate = validator.New()

// LoadConfig loads configuration from file path. An empty path yields the
// built-in defaults.
func LoadConfig(configPath string, logger *zap.Logger) (*Config, error) {
	var config Config

	if configPath == "" {
		logger.Info("No config file provided, using defaults")
	} else {
		logger.Info("Loading configuration", zap.String("path", configPath))

		file, err := os.Open(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open config file: %w", err)
		}
		defer func() { _ = file.Close() }()

		decoder := yaml.NewDecoder(file)
		if err := decoder.Decode(&config); err != nil {
			return nil, fmt.Errorf("failed to decode YAML config: %w", err)
		}
	}

	config.applyDefaults()

	if err := validate.Struct(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &config, nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.ListenAddr == "" {
		c.ListenAddr = ":8080"
	}
	if c.SweepIntervalSeconds == 0 {
		c.SweepIntervalSeconds = 300
	}

	if c.Trivia.APIURL == "" {
		c.Trivia.APIURL = "https://opentdb.com/api.php"
	}
	if c.Trivia.TTLSeconds == 0 {
		c.Trivia.TTLSeconds = 600
	}
	if c.Trivia.TimeoutSeconds == 0 {
		c.Trivia.TimeoutSeconds = 10
	}

	if c.Stocks.APIURL == "" {
		c.Stocks.APIURL = "https://query1.finance.yahoo.com/v7/finance/quote"
	}
	if c.Stocks.TTLSeconds == 0 {
		c.Stocks.TTLSeconds = 60
	}
	if c.Stocks.TimeoutSeconds == 0 {
		c.Stocks.TimeoutSeconds = 10
	}
	if c.Stocks.StartingBalance == 0 {
		c.Stocks.StartingBalance = 10000
	}

	if c.News.FeedTitle == "" {
		c.News.FeedTitle = "Trivia Night News"
	}
	if c.News.FeedDescription == "" {
		c.News.FeedDescription = "News and updates from the trivia desk"
	}
	if c.News.SiteURL == "" {
		c.News.SiteURL = "http://localhost:8080"
	}
	if c.News.MaxPosts == 0 {
		c.News.MaxPosts = 100
	}
	if c.News.FeedItems == 0 {
		c.News.FeedItems = 20
	}
	if c.News.FeedCacheSeconds == 0 {
		c.News.FeedCacheSeconds = 60
	}
}

// SweepInterval returns the staleness sweep interval.
func (c *Config) SweepInterval() time.Duration {
	return time.Duration(c.SweepIntervalSeconds) * time.Second
}

// TTL returns the question cache TTL.
func (c TriviaConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// Timeout returns the HTTP timeout for question fetches.
func (c TriviaConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// TTL returns the quote cache TTL.
func (c StocksConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// Timeout returns the HTTP timeout for quote fetches.
func (c StocksConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// FeedCacheTTL returns how long a rendered feed stays cached.
func (c NewsConfig) FeedCacheTTL() time.Duration {
	return time.Duration(c.FeedCacheSeconds) * time.Second
}
