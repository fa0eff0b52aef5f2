package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config represents the application configuration structure.
// It contains settings for the environment, HTTP server, cache connection,
// driver bootstrap, browser sessions, and graceful shutdown behavior.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`

	// HTTP contains all HTTP server related configurations
	HTTP struct {
		// Addr is the address and port the HTTP server will listen on
		Addr string `env:"HTTP_ADDR" env-default:":8000" yaml:"addr"`
		// ReadTimeout is the maximum duration for reading the entire request, including the body
		ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"1m" yaml:"readTimeout"`
		// ReadHeaderTimeout is the amount of time allowed to read request headers
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		// WriteTimeout is the maximum duration before timing out writes of the response
		WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"2m" yaml:"writeTimeout"`
		// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
		IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		// RequestTimeout is the maximum time allowed for processing a single request.
		// Scrapes drive a real browser, so this is generous by default.
		RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" env-default:"2m" yaml:"requestTimeout"`
		// MaxHeaderBytes controls the maximum number of bytes the server will read parsing the request header
		MaxHeaderBytes int `env:"HTTP_MAX_HEADER_BYTES" env-default:"0" yaml:"maxHeaderBytes"`
		// MetricsPath defines the URL path where metrics are exposed
		MetricsPath string `env:"HTTP_METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`
	} `yaml:"http"`

	// Redis contains the cache service connection configurations
	Redis struct {
		// Addr is the redis server address in host:port form
		Addr string `env:"REDIS_ADDR" env-default:"localhost:6379" yaml:"addr"`
		// Password authenticates against the redis server; empty means no auth
		Password string `env:"REDIS_PASSWORD" env-default:"" yaml:"password"`
		// DB selects the redis logical database
		DB int `env:"REDIS_DB" env-default:"0" yaml:"db"`
		// DialTimeout bounds the initial connection attempt
		DialTimeout time.Duration `env:"REDIS_DIAL_TIMEOUT" env-default:"5s" yaml:"dialTimeout"`
	} `yaml:"redis"`

	// Driver contains the browser driver bootstrap configurations
	Driver struct {
		// BrowserPath is the installed browser binary whose version the driver must match
		BrowserPath string `env:"DRIVER_BROWSER_PATH" env-default:"/usr/bin/google-chrome" yaml:"browserPath"`
		// InstallDir is where the staged driver binary and its version marker live
		InstallDir string `env:"DRIVER_INSTALL_DIR" env-default:"/usr/local/bin" yaml:"installDir"`
		// ReleaseIndexURL is the release index endpoint template; %s receives the browser major version
		ReleaseIndexURL string `env:"DRIVER_RELEASE_INDEX_URL" env-default:"" yaml:"releaseIndexURL"`
		// DownloadURLTemplate is the primary archive URL template; %s receives the resolved driver version
		DownloadURLTemplate string `env:"DRIVER_DOWNLOAD_URL_TEMPLATE" env-default:"" yaml:"downloadURLTemplate"`
		// FallbackURLTemplate is the alternate archive URL template used when the index lookup fails
		FallbackURLTemplate string `env:"DRIVER_FALLBACK_URL_TEMPLATE" env-default:"" yaml:"fallbackURLTemplate"`
		// HTTPTimeout bounds each index lookup and archive download
		HTTPTimeout time.Duration `env:"DRIVER_HTTP_TIMEOUT" env-default:"2m" yaml:"httpTimeout"`
	} `yaml:"driver"`

	// Browser contains the headless browser session pool configurations
	Browser struct {
		// Workers is the fixed number of concurrent browser sessions
		Workers int `env:"WORKERS" env-default:"4" yaml:"workers"`
		// Headless toggles headless mode; disable only for local debugging
		Headless bool `env:"BROWSER_HEADLESS" env-default:"true" yaml:"headless"`
		// PageTimeout bounds individual page interactions (navigation, element lookups)
		PageTimeout time.Duration `env:"BROWSER_PAGE_TIMEOUT" env-default:"30s" yaml:"pageTimeout"`
		// NavMinInterval is the minimum interval between page navigations across all sessions
		NavMinInterval time.Duration `env:"BROWSER_NAV_MIN_INTERVAL" env-default:"500ms" yaml:"navMinInterval"`
	} `yaml:"browser"`

	// Instagram contains scraping target configurations
	Instagram struct {
		// BaseURL is the Instagram web root
		BaseURL string `env:"INST_URL" env-default:"https://www.instagram.com" yaml:"baseURL"`
		// Username is the account used to log in before scraping
		Username string `env:"INST_USERNAME" env-default:"" yaml:"username"`
		// Password is the account password
		Password string `env:"INST_PASSWORD" env-default:"" yaml:"password"`
		// CacheTTL is how long scrape results are served from the cache
		CacheTTL time.Duration `env:"INST_CACHE_TTL" env-default:"15s" yaml:"cacheTTL"`
		// ScrollPause is the settle time between profile page scrolls
		ScrollPause time.Duration `env:"INST_SCROLL_PAUSE" env-default:"5s" yaml:"scrollPause"`
		// MaxCount caps how many links a single request may ask for
		MaxCount int `env:"INST_MAX_COUNT" env-default:"100" yaml:"maxCount"`
	} `yaml:"instagram"`

	// JWT contains the API authentication key material. Auth is disabled when
	// PublicKey is empty.
	JWT struct {
		// PublicKey is the PEM-encoded RSA public key used to verify bearer tokens
		PublicKey string `env:"JWT_PUBLIC_KEY" env-default:"" yaml:"publicKey"`
		// PrivateKey is the PEM-encoded RSA private key used by the jwt subcommand
		PrivateKey string `env:"JWT_PRIVATE_KEY" env-default:"" yaml:"privateKey"`
	} `yaml:"jwt"`

	// GracefulShutdownTimeout is the maximum duration to wait for ongoing requests to complete during shutdown
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Load receives the path for yaml config file and returns a filled Config struct.
func Load(configPath string) (*Config, error) {
	var cfg Config
	err := cleanenv.ReadConfig(configPath, &cfg)
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	return &cfg, nil
}
