package news

import (
	"context"
	"fmt"
	"time"

	"github.com/allegro/bigcache/v3"
	"github.com/gorilla/feeds"
	"go.uber.org/zap"

	"github.com/ninotmecheast-source/trivia/internal/metrics"
)

const feedCacheType = "feed"

// FeedOptions configures the rendered RSS channel.
type FeedOptions struct {
	Title       string
	SiteURL     string
	Description string
	MaxItems    int
	CacheTTL    time.Duration
}

// Feed renders the RSS view of a post store. Rendered XML is kept in an
// in-memory byte cache keyed by the store generation, so a new post
// invalidates the cached feed while unchanged feeds are served without
// re-rendering.
type Feed struct {
	store  *Store
	cache  *bigcache.BigCache
	logger *zap.Logger
	opts   FeedOptions
}

// NewFeed creates the RSS renderer over store.
func NewFeed(store *Store, opts FeedOptions, logger *zap.Logger) (*Feed, error) {
	if opts.MaxItems <= 0 {
		opts.MaxItems = 20
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = time.Minute
	}

	config := bigcache.DefaultConfig(opts.CacheTTL)
	config.Verbose = false
	config.MaxEntrySize = 1024 * 1024 // 1MB max entry size

	cache, err := bigcache.New(context.Background(), config)
	if err != nil {
		return nil, fmt.Errorf("failed to create feed cache: %w", err)
	}

	return &Feed{
		store:  store,
		cache:  cache,
		logger: logger,
		opts:   opts,
	}, nil
}

// RSS returns the rendered RSS 2.0 XML for the newest posts.
func (f *Feed) RSS() ([]byte, error) {
	key := fmt.Sprintf("rss:%d", f.store.Generation())

	metrics.RecordCacheRequest(feedCacheType)
	if data, err := f.cache.Get(key); err == nil {
		metrics.RecordCacheHit(feedCacheType)
		return data, nil
	}
	metrics.RecordCacheMiss(feedCacheType)

	xml, err := f.render()
	if err != nil {
		return nil, err
	}

	if err := f.cache.Set(key, xml); err != nil {
		f.logger.Warn("failed to cache rendered feed", zap.Error(err))
	}
	return xml, nil
}

func (f *Feed) render() ([]byte, error) {
	feed := &feeds.Feed{
		Title:       f.opts.Title,
		Link:        &feeds.Link{Href: f.opts.SiteURL},
		Description: f.opts.Description,
		Created:     time.Now(),
	}

	for _, post := range f.store.List(f.opts.MaxItems) {
		id := fmt.Sprintf("%s/news/%d", f.opts.SiteURL, post.ID)
		link := post.Link
		if link == "" {
			link = id
		}
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          id,
			Title:       post.Title,
			Link:        &feeds.Link{Href: link},
			Description: post.Summary,
			Content:     post.Body,
			Created:     post.CreatedAt,
		})
	}

	rss, err := feed.ToRss()
	if err != nil {
		return nil, fmt.Errorf("failed to render feed: %w", err)
	}
	return []byte(rss), nil
}

// Close releases the feed cache.
func (f *Feed) Close() error {
	return f.cache.Close()
}
