package webdriver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// missingKeySentinel is the substring the release index returns when no
// driver release exists for the requested major version.
const missingKeySentinel = "NoSuchKey"

// Default endpoints. The index and primary archive live on the legacy driver
// release bucket; the fallback archive uses the chrome-for-testing layout,
// keyed by the full browser version instead of an index lookup.
const (
	DefaultReleaseIndexURL     = "https://chromedriver.storage.googleapis.com/LATEST_RELEASE_%s"
	DefaultDownloadURLTemplate = "https://chromedriver.storage.googleapis.com/%s/chromedriver_linux64.zip"
	DefaultFallbackURLTemplate = "https://storage.googleapis.com/chrome-for-testing-public/%s/linux64/chromedriver-linux64.zip" //nolint: lll
)

// Options configure the driver bootstrap.
type Options struct {
	// BrowserPath is the installed browser binary whose version the driver must match.
	BrowserPath string
	// InstallDir is where the staged driver binary and its version marker are written.
	InstallDir string
	// ReleaseIndexURL is the index endpoint template; %s receives the browser major version.
	ReleaseIndexURL string
	// DownloadURLTemplate is the primary archive URL template; %s receives the resolved driver version.
	DownloadURLTemplate string
	// FallbackURLTemplate is the alternate archive URL template; %s receives the full browser version.
	FallbackURLTemplate string
	// HTTPTimeout bounds each index lookup and archive download.
	HTTPTimeout time.Duration
}

// Bootstrap resolves, downloads and stages a driver binary. It is safe for
// concurrent use.
type Bootstrap struct {
	httpClient *http.Client // httpClient performs index lookups and archive downloads
	opts       Options
}

// New constructs a Bootstrap with the provided options. Empty endpoint
// templates fall back to the package defaults. When httpClient is nil a
// client bounded by Options.HTTPTimeout is used.
func New(httpClient *http.Client, opts Options) *Bootstrap {
	if opts.ReleaseIndexURL == "" {
		opts.ReleaseIndexURL = DefaultReleaseIndexURL
	}
	if opts.DownloadURLTemplate == "" {
		opts.DownloadURLTemplate = DefaultDownloadURLTemplate
	}
	if opts.FallbackURLTemplate == "" {
		opts.FallbackURLTemplate = DefaultFallbackURLTemplate
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.HTTPTimeout}
	}

	return &Bootstrap{httpClient: httpClient, opts: opts}
}

// NeedsFallback reports whether an index response body means the lookup
// failed and the alternate download source must be used. This is true for an
// empty body and for any body containing the missing-key sentinel.
func NeedsFallback(body string) bool {
	return body == "" || strings.Contains(body, missingKeySentinel)
}

// ResolveDriverVersion determines the driver version and archive URL for the
// given browser version. It queries the release index for the major version;
// when the index returns a missing-key indicator, an empty body, or fails
// outright, it switches to the fallback source keyed by the full browser
// version.
func (b *Bootstrap) ResolveDriverVersion(ctx context.Context,
	browserFull, browserMajor string) (version, downloadURL string, err error) {
	body, err := b.queryIndex(ctx, browserMajor)
	if err != nil || NeedsFallback(body) {
		// Index lookup failed; derive the driver version from the browser
		// itself and use the alternate archive layout.
		return browserFull, fmt.Sprintf(b.opts.FallbackURLTemplate, browserFull), nil
	}

	version = strings.TrimSpace(body)

	return version, fmt.Sprintf(b.opts.DownloadURLTemplate, version), nil
}

// queryIndex fetches the latest driver release for a browser major version.
// A non-2xx status is returned as the body so the sentinel check applies to
// bucket-style XML errors.
func (b *Bootstrap) queryIndex(ctx context.Context, major string) (string, error) {
	req, err := http.NewRequestWithContext(ctx,
		http.MethodGet,
		fmt.Sprintf(b.opts.ReleaseIndexURL, major),
		nil)
	if err != nil {
		return "", fmt.Errorf("could not create request: %w", err)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("could not query release index: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("could not read index response: %w", err)
	}

	return strings.TrimSpace(string(raw)), nil
}
