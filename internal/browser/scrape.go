package browser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"

	"instagrab/pkg/domain"
	"instagrab/pkg/logger"
	"instagrab/pkg/serrors"
)

const (
	// postPathMarker identifies post links among a profile page's anchors.
	postPathMarker = "/p/"
	// postsTabXPath locates the marker proving a profile page rendered.
	postsTabXPath = "//span[contains(text(), 'Posts')]"
	// dismissXPath locates the "Not Now" buttons Instagram shows after login.
	dismissXPath = "//button[contains(text(), 'Not Now')]"
)

// Login signs the session into Instagram with the configured account. It is
// best effort: a missing login form usually means the session is already
// authenticated, and profile pages render without auth for public accounts.
func (p *Pool) Login(ctx context.Context, s *Session) {
	if p.opts.Username == "" {
		return
	}

	if err := p.navigate(ctx, s, p.opts.BaseURL); err != nil {
		logger.Warn(ctx, "could not open login page", zap.Error(err))

		return
	}

	page := s.page.Context(ctx).Timeout(p.opts.PageTimeout)

	userField, err := page.Element("input[name='username']")
	if err != nil {
		logger.Debug(ctx, "login form not present, skipping login")

		return
	}
	passField, err := page.Element("input[name='password']")
	if err != nil {
		logger.Debug(ctx, "password field not present, skipping login")

		return
	}

	if err := userField.Input(p.opts.Username); err != nil {
		logger.Warn(ctx, "could not fill username", zap.Error(err))

		return
	}
	if err := passField.Input(p.opts.Password); err != nil {
		logger.Warn(ctx, "could not fill password", zap.Error(err))

		return
	}

	submit, err := page.Element("button[type='submit']")
	if err != nil {
		logger.Warn(ctx, "login submit button not found", zap.Error(err))

		return
	}
	if err := submit.Click(proto.InputMouseButtonLeft, 1); err != nil {
		logger.Warn(ctx, "could not submit login form", zap.Error(err))

		return
	}

	// "save your login info" and the notifications popup, both dismissed the
	// same way when present.
	p.dismissDialog(ctx, s)
	p.dismissDialog(ctx, s)
}

// dismissDialog clicks the "Not Now" button when it is present.
func (p *Pool) dismissDialog(ctx context.Context, s *Session) {
	page := s.page.Context(ctx)
	has, el, err := page.HasX(dismissXPath)
	if err != nil || !has {
		return
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		logger.Debug(ctx, "could not dismiss dialog", zap.Error(err))
	}
}

// profileURL builds the page URL for an Instagram username.
func (p *Pool) profileURL(username string) string {
	return fmt.Sprintf("%s/%s", p.opts.BaseURL, username)
}

// ValidateProfile opens the user's profile page and verifies it rendered.
// A profile without the posts tab marker does not exist.
func (p *Pool) ValidateProfile(ctx context.Context, s *Session, username string) error {
	if err := p.navigate(ctx, s, p.profileURL(username)); err != nil {
		return err
	}

	_, err := s.page.Context(ctx).Timeout(p.opts.PageTimeout).ElementX(postsTabXPath)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return serrors.With(serrors.ErrNotFound, "user not found: %s", username)
		}

		return fmt.Errorf("could not inspect profile page: %w", err)
	}

	return nil
}

// ProfilePostURLs scroll-collects post links from the user's profile page,
// keeping only posts whose media matches mediaType, until max links are
// gathered or the page ends. The session must already be on a validated
// profile page (see ValidateProfile).
func (p *Pool) ProfilePostURLs(ctx context.Context,
	s *Session,
	username string,
	mediaType domain.MediaType,
	max int) ([]string, error) {
	posts := make([]string, 0, max)
	var lastBatch []string

	for {
		hrefs, err := p.anchorHrefs(ctx, s)
		if err != nil {
			return nil, err
		}

		fresh := filterPostLinks(hrefs, lastBatch)
		for _, link := range fresh {
			ok, err := p.matchesMediaType(ctx, s, link, mediaType)
			if err != nil {
				return nil, err
			}
			if ok {
				posts = append(posts, link)
			}
			if len(posts) >= max {
				return posts, nil
			}
		}
		lastBatch = fresh

		pageEnd, err := p.scrollPage(ctx, s)
		if err != nil {
			return nil, err
		}
		if pageEnd {
			return posts, nil
		}
	}
}

// PostMediaURLs opens a post page and returns the source URLs of media
// elements matching mediaType.
func (p *Pool) PostMediaURLs(ctx context.Context,
	s *Session,
	postURL string,
	mediaType domain.MediaType) ([]string, error) {
	sel := mediaType.Selector()
	if sel == "" {
		return nil, serrors.With(serrors.ErrBadRequest, "media type %q has no element selector", mediaType)
	}

	if err := p.navigate(ctx, s, postURL); err != nil {
		return nil, err
	}

	page := s.page.Context(ctx)

	// Media loads asynchronously; wait for the first match, treating a
	// timeout as "no media of this type".
	if _, err := page.Timeout(p.opts.PageTimeout).Element(sel); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, nil
		}

		return nil, fmt.Errorf("could not inspect post page: %w", err)
	}

	els, err := page.Elements(sel)
	if err != nil {
		return nil, fmt.Errorf("could not collect media elements: %w", err)
	}

	urls := make([]string, 0, len(els))
	for _, el := range els {
		src, err := el.Property("src")
		if err != nil {
			return nil, fmt.Errorf("could not read media source: %w", err)
		}
		if v := src.Str(); v != "" {
			urls = append(urls, v)
		}
	}

	return urls, nil
}

// anchorHrefs returns the resolved href of every anchor on the page.
func (p *Pool) anchorHrefs(ctx context.Context, s *Session) ([]string, error) {
	els, err := s.page.Context(ctx).Timeout(p.opts.PageTimeout).Elements("a")
	if err != nil {
		return nil, fmt.Errorf("could not collect anchors: %w", err)
	}

	hrefs := make([]string, 0, len(els))
	for _, el := range els {
		href, err := el.Property("href")
		if err != nil {
			return nil, fmt.Errorf("could not read anchor href: %w", err)
		}
		if v := href.Str(); v != "" {
			hrefs = append(hrefs, v)
		}
	}

	return hrefs, nil
}

// matchesMediaType reports whether the post behind link holds media of the
// wanted type. The post's tile svg carries an aria-label naming clips and
// carousels; plain photos have no label. Carousels are probed by opening the
// post, then the session returns to the page it came from.
func (p *Pool) matchesMediaType(ctx context.Context,
	s *Session,
	link string,
	wanted domain.MediaType) (bool, error) {
	if wanted == "" {
		return true, nil
	}

	rel := strings.TrimPrefix(link, p.opts.BaseURL)
	label, err := p.tileAriaLabel(ctx, s, rel)
	if err != nil {
		return false, err
	}
	postType := classifyPost(label)

	if postType == domain.MediaTypeCarousel {
		if wanted == domain.MediaTypeCarousel {
			return true, nil
		}

		info, err := s.page.Info()
		if err != nil {
			return false, fmt.Errorf("could not read current page: %w", err)
		}
		media, err := p.PostMediaURLs(ctx, s, link, wanted)
		if err != nil {
			return false, err
		}
		if err := p.navigate(ctx, s, info.URL); err != nil {
			return false, err
		}

		return len(media) > 0, nil
	}

	return wanted == postType, nil
}

// tileAriaLabel reads the aria-label of the svg inside the post tile whose
// href matches rel, or empty when the tile or svg is absent.
func (p *Pool) tileAriaLabel(ctx context.Context, s *Session, rel string) (string, error) {
	res, err := s.page.Context(ctx).Eval(`(href) => {
		const a = document.querySelector('a[href="' + href + '"]');
		if (!a) return "";
		const svg = a.querySelector("svg");
		return svg ? (svg.getAttribute("aria-label") || "") : "";
	}`, rel)
	if err != nil {
		return "", fmt.Errorf("could not read post tile label: %w", err)
	}

	return res.Value.Str(), nil
}

// scrollPage scrolls to the bottom, waits for content to settle, scrolls
// again and reports whether the page stopped growing.
func (p *Pool) scrollPage(ctx context.Context, s *Session) (bool, error) {
	before, err := p.scrollToBottom(ctx, s)
	if err != nil {
		return false, err
	}

	select {
	case <-ctx.Done():
		return false, fmt.Errorf("timeout while scrolling: %w", ctx.Err())
	case <-time.After(p.opts.ScrollPause):
	}

	after, err := p.scrollToBottom(ctx, s)
	if err != nil {
		return false, err
	}

	return after == before, nil
}

// scrollToBottom scrolls the page and returns the resulting scroll height.
func (p *Pool) scrollToBottom(ctx context.Context, s *Session) (int, error) {
	res, err := s.page.Context(ctx).Eval(`() => {
		window.scrollTo(0, document.body.scrollHeight);
		return document.body.scrollHeight;
	}`)
	if err != nil {
		return 0, fmt.Errorf("could not scroll page: %w", err)
	}

	return res.Value.Int(), nil
}

// filterPostLinks keeps hrefs that point at posts and were not seen in the
// previous collection pass.
func filterPostLinks(hrefs, prev []string) []string {
	seen := make(map[string]struct{}, len(prev))
	for _, u := range prev {
		seen[u] = struct{}{}
	}

	var out []string
	for _, u := range hrefs {
		if !strings.Contains(u, postPathMarker) {
			continue
		}
		if _, ok := seen[u]; ok {
			continue
		}
		out = append(out, u)
	}

	return out
}

// classifyPost maps a post tile's svg aria-label to a media type. Photos
// carry no label.
func classifyPost(ariaLabel string) domain.MediaType {
	switch strings.ToLower(ariaLabel) {
	case "clip":
		return domain.MediaTypeClip
	case "carousel":
		return domain.MediaTypeCarousel
	default:
		return domain.MediaTypePhoto
	}
}
