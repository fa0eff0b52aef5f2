// Package browser drives a fixed-size pool of headless Chrome sessions used
// to scrape Instagram pages. One browser process is launched at startup and
// each worker owns a dedicated page; acquisition blocks until a session is
// free. Navigations across all sessions share a cooperative throttle.
package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"instagrab/internal/config"
)

// Options configure the browser pool and the scraping target.
type Options struct {
	// BrowserPath is the browser binary to launch; empty lets the launcher decide.
	BrowserPath string
	// Workers is the fixed number of concurrent sessions.
	Workers int
	// Headless toggles headless mode.
	Headless bool
	// PageTimeout bounds individual page interactions.
	PageTimeout time.Duration
	// NavMinInterval is the minimum interval between navigations across all sessions.
	NavMinInterval time.Duration
	// BaseURL is the Instagram web root.
	BaseURL string
	// Username and Password identify the account used to log in before scraping.
	Username string
	Password string
	// ScrollPause is the settle time between profile page scrolls.
	ScrollPause time.Duration
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		BrowserPath:    cfg.Driver.BrowserPath,
		Workers:        cfg.Browser.Workers,
		Headless:       cfg.Browser.Headless,
		PageTimeout:    cfg.Browser.PageTimeout,
		NavMinInterval: cfg.Browser.NavMinInterval,
		BaseURL:        cfg.Instagram.BaseURL,
		Username:       cfg.Instagram.Username,
		Password:       cfg.Instagram.Password,
		ScrollPause:    cfg.Instagram.ScrollPause,
	}
}

// Session wraps a single browser page checked out from the pool.
type Session struct {
	page *rod.Page
}

// Pool owns the browser process and its fixed set of sessions.
type Pool struct {
	opts     Options
	launcher *launcher.Launcher
	browser  *rod.Browser
	sessions chan *Session
	throttle *throttler
}

// NewPool launches the browser and creates the configured number of
// sessions. The browser runs with sandboxing and image loading disabled,
// matching the flags the scraper has always needed inside containers.
func NewPool(ctx context.Context, opts Options) (*Pool, error) {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}

	l := launcher.New().
		Headless(opts.Headless).
		NoSandbox(true).
		Set("disable-dev-shm-usage").
		Set("blink-settings", "imagesEnabled=false")
	if opts.BrowserPath != "" {
		l = l.Bin(opts.BrowserPath)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("could not launch browser: %w", err)
	}

	b := rod.New().ControlURL(controlURL).Context(ctx)
	if err := b.Connect(); err != nil {
		l.Cleanup()

		return nil, fmt.Errorf("could not connect to browser: %w", err)
	}

	p := &Pool{
		opts:     opts,
		launcher: l,
		browser:  b,
		sessions: make(chan *Session, opts.Workers),
		throttle: newThrottler(opts.NavMinInterval),
	}

	for i := 0; i < opts.Workers; i++ {
		page, err := b.Page(proto.TargetCreateTarget{URL: "about:blank"})
		if err != nil {
			p.Close()

			return nil, fmt.Errorf("could not create session page: %w", err)
		}
		p.sessions <- &Session{page: page}
	}

	return p, nil
}

// Size returns the fixed number of sessions in the pool.
func (p *Pool) Size() int {
	return p.opts.Workers
}

// Acquire checks out a session, blocking until one is free or ctx is done.
func (p *Pool) Acquire(ctx context.Context) (*Session, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("timeout acquiring browser session: %w", ctx.Err())
	case s := <-p.sessions:
		return s, nil
	}
}

// Release returns a session to the pool. Passing nil is a no-op.
func (p *Pool) Release(s *Session) {
	if s == nil {
		return
	}
	p.sessions <- s
}

// Close shuts down the browser process and its launcher.
func (p *Pool) Close() {
	if p.browser != nil {
		_ = p.browser.Close()
	}
	if p.launcher != nil {
		p.launcher.Cleanup()
	}
}

// navigate moves the session's page to url, honoring the shared throttle and
// waiting for the load event.
func (p *Pool) navigate(ctx context.Context, s *Session, url string) error {
	if err := p.throttle.Wait(ctx); err != nil {
		return err
	}

	page := s.page.Context(ctx).Timeout(p.opts.PageTimeout)
	if err := page.Navigate(url); err != nil {
		return fmt.Errorf("could not navigate to %q: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("could not load %q: %w", url, err)
	}

	return nil
}
