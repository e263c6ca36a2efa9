package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/ninotmecheast-source/trivia/internal/config"
	"github.com/ninotmecheast-source/trivia/internal/httpserver"
	"github.com/ninotmecheast-source/trivia/internal/news"
	"github.com/ninotmecheast-source/trivia/internal/stocks"
	"github.com/ninotmecheast-source/trivia/internal/sweeper"
	"github.com/ninotmecheast-source/trivia/internal/trivia"
)

// CompositionRoot holds all application dependencies and provides a
// centralized place for dependency injection and service initialization.
//
// Initialization order:
// 1. Logger (needed by all other components)
// 2. Configuration
// 3. Domain components (caches, ledger, news store, feed)
// 4. Staleness sweeper over both caches
// 5. HTTP Server (uses all above components)
type CompositionRoot struct {
	Config *config.Config
	Logger *zap.Logger

	// Domain components
	Questions *trivia.QuestionCache
	Quotes    *stocks.QuoteCache
	Ledger    *stocks.Ledger
	Posts     *news.Store
	Feed      *news.Feed

	// Services
	Sweeper    *sweeper.Sweeper
	HTTPServer *httpserver.Server
}

// NewCompositionRoot creates and initializes all application dependencies.
func NewCompositionRoot() (*CompositionRoot, error) {
	root := &CompositionRoot{}

	if err := root.initLogger(); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := root.loadConfig(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := root.initDomainComponents(); err != nil {
		return nil, fmt.Errorf("failed to initialize domain components: %w", err)
	}

	root.initSweeper()
	root.initHTTPServer()

	return root, nil
}

// initLogger initializes the application logger
func (r *CompositionRoot) initLogger() error {
	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	r.Logger = logger
	return nil
}

// loadConfig loads the application configuration
func (r *CompositionRoot) loadConfig() error {
	configPath := os.Getenv("TRIVIA_CONFIG_FILE")

	cfg, err := config.LoadConfig(configPath, r.Logger)
	if err != nil {
		return err
	}

	r.Config = cfg
	return nil
}

// initDomainComponents wires the upstream clients into their caches and
// creates the ledger, post store, and feed renderer.
func (r *CompositionRoot) initDomainComponents() error {
	triviaClient := trivia.NewClient(r.Config.Trivia.APIURL, r.Config.Trivia.Timeout(), r.Logger)
	r.Questions = trivia.NewQuestionCache(triviaClient, r.Config.Trivia.TTL(), r.Logger)

	stocksClient := stocks.NewClient(r.Config.Stocks.APIURL, r.Config.Stocks.Timeout(), r.Logger)
	r.Quotes = stocks.NewQuoteCache(stocksClient, r.Config.Stocks.TTL(), r.Logger)

	r.Ledger = stocks.NewLedger(r.Config.Stocks.StartingBalance)
	r.Posts = news.NewStore(r.Config.News.MaxPosts)

	feed, err := news.NewFeed(r.Posts, news.FeedOptions{
		Title:       r.Config.News.FeedTitle,
		SiteURL:     r.Config.News.SiteURL,
		Description: r.Config.News.FeedDescription,
		MaxItems:    r.Config.News.FeedItems,
		CacheTTL:    r.Config.News.FeedCacheTTL(),
	}, r.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize feed: %w", err)
	}
	r.Feed = feed

	return nil
}

// initSweeper sets up the periodic staleness sweep over both caches
func (r *CompositionRoot) initSweeper() {
	r.Sweeper = sweeper.New(r.Config.SweepInterval(), r.Logger,
		sweeper.Target{Name: "questions", Sweep: r.Questions.Sweep, Stats: r.Questions.Stats},
		sweeper.Target{Name: "quotes", Sweep: r.Quotes.Sweep, Stats: r.Quotes.Stats},
	)
}

// initHTTPServer initializes the HTTP server
func (r *CompositionRoot) initHTTPServer() {
	r.HTTPServer = httpserver.NewServer(httpserver.Deps{
		Questions: r.Questions,
		Quotes:    r.Quotes,
		Ledger:    r.Ledger,
		Posts:     r.Posts,
		Feed:      r.Feed,
	}, r.Logger)
}

// Cleanup performs cleanup of all resources
func (r *CompositionRoot) Cleanup() error {
	var errs []error

	if r.Logger != nil {
		if err := r.Logger.Sync(); err != nil {
			errs = append(errs, fmt.Errorf("failed to sync logger: %w", err))
		}
	}

	if r.Feed != nil {
		if err := r.Feed.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close feed cache: %w", err))
		}
	}

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

// GetListenAddr returns the address the server should bind, letting the PORT
// environment variable override the configured one.
func (r *CompositionRoot) GetListenAddr() string {
	if port := os.Getenv("PORT"); port != "" {
		return ":" + port
	}
	return r.Config.ListenAddr
}
