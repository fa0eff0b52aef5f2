// Package fetcher implements the link-collection service: it resolves a
// profile's post and media URLs through a browser session, memoizing results
// in the cache for a short TTL.
package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"instagrab/internal/browser"
	"instagrab/internal/config"
	"instagrab/pkg/cache"
	"instagrab/pkg/domain"
	"instagrab/pkg/logger"
	"instagrab/pkg/metrics"
	"instagrab/pkg/serrors"
)

// Options configure caching and request limits.
// These settings are typically derived from application configuration.
type Options struct {
	// CacheTTL is how long a collected listing stays valid. Profiles change
	// rarely enough that even a short TTL absorbs request bursts.
	CacheTTL time.Duration
	// MaxCount caps how many posts a single request may ask for.
	MaxCount int
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		CacheTTL: cfg.Instagram.CacheTTL,
		MaxCount: cfg.Instagram.MaxCount,
	}
}

// Browser is the session-pool surface the fetcher needs. It is implemented
// by browser.Pool.
type Browser interface {
	Acquire(ctx context.Context) (*browser.Session, error)
	Release(s *browser.Session)
	Login(ctx context.Context, s *browser.Session)
	ValidateProfile(ctx context.Context, s *browser.Session, username string) error
	ProfilePostURLs(ctx context.Context,
		s *browser.Session,
		username string,
		mediaType domain.MediaType,
		max int) ([]string, error)
	PostMediaURLs(ctx context.Context,
		s *browser.Session,
		postURL string,
		mediaType domain.MediaType) ([]string, error)
}

// fetcher is the concrete implementation of the Fetcher interface.
// It coordinates the browser pool with the cache layer.
type fetcher struct {
	options Options
	browser Browser
	cache   cache.Cache
}

// New creates a new Fetcher backed by the provided browser pool and cache.
func New(b Browser, c cache.Cache, options Options) Fetcher {
	return &fetcher{
		options: options,
		browser: b,
		cache:   c,
	}
}

// MediaURLs returns the source URLs of media of the given type from the
// user's most recent posts, inspecting at most maxCount posts.
func (f *fetcher) MediaURLs(ctx context.Context,
	username string,
	mediaType domain.MediaType,
	maxCount int) (domain.Links, error) {
	username, maxCount, err := f.validate(username, maxCount)
	if err != nil {
		return domain.Links{}, err
	}
	if maxCount == 0 {
		return domain.NewLinks(nil), nil
	}

	return f.fetch(ctx, "media", mediaType, username, cache.MediaKey(mediaType, username, maxCount),
		func(ctx context.Context, s *browser.Session) ([]string, error) {
			posts, err := f.browser.ProfilePostURLs(ctx, s, username, mediaType, maxCount)
			if err != nil {
				return nil, err
			}

			var urls []string
			for _, post := range posts {
				media, err := f.browser.PostMediaURLs(ctx, s, post, mediaType)
				if err != nil {
					return nil, err
				}
				urls = append(urls, media...)
			}

			return urls, nil
		})
}

// PostURLs returns the page URLs of the user's most recent posts holding
// media of the given type, at most maxCount of them.
func (f *fetcher) PostURLs(ctx context.Context,
	username string,
	mediaType domain.MediaType,
	maxCount int) (domain.Links, error) {
	username, maxCount, err := f.validate(username, maxCount)
	if err != nil {
		return domain.Links{}, err
	}
	if maxCount == 0 {
		return domain.NewLinks(nil), nil
	}

	return f.fetch(ctx, "posts", mediaType, username, cache.PostsKey(mediaType, username, maxCount),
		func(ctx context.Context, s *browser.Session) ([]string, error) {
			return f.browser.ProfilePostURLs(ctx, s, username, mediaType, maxCount)
		})
}

// validate normalizes the username and bounds maxCount. A negative count is
// a bad request; counts above the configured cap are clamped.
func (f *fetcher) validate(username string, maxCount int) (string, int, error) {
	username, err := NormalizeUsername(username)
	if err != nil {
		return "", 0, err
	}

	if maxCount < 0 {
		return "", 0, serrors.With(serrors.ErrBadRequest, "max_count must not be negative")
	}
	if f.options.MaxCount > 0 && maxCount > f.options.MaxCount {
		maxCount = f.options.MaxCount
	}

	return username, maxCount, nil
}

// fetch serves a listing from the cache when possible and otherwise runs
// scrape inside a checked-out browser session, storing the result afterwards.
// Cache failures degrade to scraping; they never fail the request.
func (f *fetcher) fetch(ctx context.Context,
	kind string,
	mediaType domain.MediaType,
	username string,
	key string,
	scrape func(ctx context.Context, s *browser.Session) ([]string, error)) (domain.Links, error) {
	if links, ok := f.cached(ctx, key); ok {
		return links, nil
	}

	start := time.Now()
	s, err := f.browser.Acquire(ctx)
	if err != nil {
		return domain.Links{}, fmt.Errorf("could not acquire browser session: %w", err)
	}
	defer f.browser.Release(s)

	f.browser.Login(ctx, s)

	// The profile page must render before anything can be collected from it.
	if err := f.browser.ValidateProfile(ctx, s, username); err != nil {
		return domain.Links{}, err
	}

	urls, err := scrape(ctx, s)
	if err != nil {
		return domain.Links{}, fmt.Errorf("could not collect %s links: %w", kind, err)
	}
	metrics.FetchDuration.WithLabelValues(kind, string(mediaType)).Observe(time.Since(start).Seconds())

	links := domain.NewLinks(urls)
	f.store(ctx, key, links)

	return links, nil
}

// cached returns the listing stored under key, or false on a miss or any
// cache failure.
func (f *fetcher) cached(ctx context.Context, key string) (domain.Links, bool) {
	raw, err := f.cache.Get(ctx, key)
	switch {
	case err == nil:
	case errors.Is(err, cache.ErrMiss):
		metrics.CacheRequests.WithLabelValues("miss").Inc()

		return domain.Links{}, false
	default:
		metrics.CacheRequests.WithLabelValues("error").Inc()
		logger.Warn(ctx, "cache read failed", zap.String("key", key), zap.Error(err))

		return domain.Links{}, false
	}

	var links domain.Links
	if err := json.Unmarshal(raw, &links); err != nil {
		metrics.CacheRequests.WithLabelValues("error").Inc()
		logger.Warn(ctx, "cache entry is corrupt", zap.String("key", key), zap.Error(err))

		return domain.Links{}, false
	}
	metrics.CacheRequests.WithLabelValues("hit").Inc()

	return links, true
}

// store writes the listing to the cache with the configured TTL. Failures
// are logged and swallowed.
func (f *fetcher) store(ctx context.Context, key string, links domain.Links) {
	raw, err := json.Marshal(links)
	if err != nil {
		logger.Warn(ctx, "could not encode listing for cache", zap.String("key", key), zap.Error(err))

		return
	}
	if err := f.cache.Set(ctx, key, raw, f.options.CacheTTL); err != nil {
		logger.Warn(ctx, "cache write failed", zap.String("key", key), zap.Error(err))
	}
}
