package fetcher

import (
	"fmt"
	"time"

	"github.com/codenough/news-feed-app/pkg/config"
)

// FeedFetchConfig controls the feed document transport.
type FeedFetchConfig struct {
	// Timeout bounds a single feed request, including retries' individual
	// attempts.
	Timeout time.Duration

	// MaxBodySize caps the feed document size in bytes. Enforced while
	// reading, not from the Content-Length header.
	MaxBodySize int64

	// MaxRedirects bounds redirect chains. Every redirect target is
	// re-validated.
	MaxRedirects int

	// RequestsPerSecond throttles outbound feed requests across all
	// sources. Zero disables throttling.
	RequestsPerSecond float64

	// DenyPrivateIPs rejects URLs resolving to private or loopback
	// addresses. Keep enabled outside local development.
	DenyPrivateIPs bool

	// UserAgent identifies the aggregator to feed servers.
	UserAgent string
}

// ContentFetchConfig controls the article-page content enhancer.
type ContentFetchConfig struct {
	// Enabled toggles content enhancement without a redeploy.
	Enabled bool

	// Threshold is the minimum description length (runes) below which the
	// article page is fetched for fuller text.
	Threshold int

	// MaxLength caps the extracted description length (runes).
	MaxLength int

	Timeout        time.Duration
	MaxBodySize    int64
	MaxRedirects   int
	DenyPrivateIPs bool
	UserAgent      string
}

const defaultUserAgent = "NewsFeedBot/1.0"

// DefaultFeedFetchConfig returns production defaults for the feed transport.
func DefaultFeedFetchConfig() FeedFetchConfig {
	return FeedFetchConfig{
		Timeout:           15 * time.Second,
		MaxBodySize:       10 * 1024 * 1024,
		MaxRedirects:      5,
		RequestsPerSecond: 5,
		DenyPrivateIPs:    true,
		UserAgent:         defaultUserAgent,
	}
}

// DefaultContentFetchConfig returns production defaults for the enhancer.
func DefaultContentFetchConfig() ContentFetchConfig {
	return ContentFetchConfig{
		Enabled:        true,
		Threshold:      80,
		MaxLength:      500,
		Timeout:        10 * time.Second,
		MaxBodySize:    10 * 1024 * 1024,
		MaxRedirects:   5,
		DenyPrivateIPs: true,
		UserAgent:      defaultUserAgent,
	}
}

// FeedFetchConfigFromEnv loads the feed transport configuration, falling
// back to defaults for unset or malformed variables.
func FeedFetchConfigFromEnv() FeedFetchConfig {
	cfg := DefaultFeedFetchConfig()
	cfg.Timeout = config.GetEnvDuration("FEED_FETCH_TIMEOUT", cfg.Timeout)
	cfg.MaxBodySize = int64(config.GetEnvInt("FEED_FETCH_MAX_BODY_SIZE", int(cfg.MaxBodySize)))
	cfg.MaxRedirects = config.GetEnvInt("FEED_FETCH_MAX_REDIRECTS", cfg.MaxRedirects)
	cfg.DenyPrivateIPs = config.GetEnvBool("FEED_FETCH_DENY_PRIVATE_IPS", cfg.DenyPrivateIPs)
	cfg.UserAgent = config.GetEnvString("FEED_FETCH_USER_AGENT", cfg.UserAgent)
	return cfg
}

// ContentFetchConfigFromEnv loads the enhancer configuration, falling back
// to defaults for unset or malformed variables.
func ContentFetchConfigFromEnv() ContentFetchConfig {
	cfg := DefaultContentFetchConfig()
	cfg.Enabled = config.GetEnvBool("CONTENT_FETCH_ENABLED", cfg.Enabled)
	cfg.Threshold = config.GetEnvInt("CONTENT_FETCH_THRESHOLD", cfg.Threshold)
	cfg.MaxLength = config.GetEnvInt("CONTENT_FETCH_MAX_LENGTH", cfg.MaxLength)
	cfg.Timeout = config.GetEnvDuration("CONTENT_FETCH_TIMEOUT", cfg.Timeout)
	cfg.MaxBodySize = int64(config.GetEnvInt("CONTENT_FETCH_MAX_BODY_SIZE", int(cfg.MaxBodySize)))
	cfg.MaxRedirects = config.GetEnvInt("CONTENT_FETCH_MAX_REDIRECTS", cfg.MaxRedirects)
	cfg.DenyPrivateIPs = config.GetEnvBool("CONTENT_FETCH_DENY_PRIVATE_IPS", cfg.DenyPrivateIPs)
	cfg.UserAgent = config.GetEnvString("CONTENT_FETCH_USER_AGENT", cfg.UserAgent)
	return cfg
}

// Validate rejects configurations that would waste resources or disable
// protections accidentally.
func (c *FeedFetchConfig) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	if c.MaxBodySize < 1024 {
		return fmt.Errorf("max body size must be at least 1KB, got %d", c.MaxBodySize)
	}
	if c.MaxRedirects < 0 || c.MaxRedirects > 10 {
		return fmt.Errorf("max redirects must be 0-10, got %d", c.MaxRedirects)
	}
	return nil
}

// Validate rejects invalid enhancer configurations.
func (c *ContentFetchConfig) Validate() error {
	if c.Threshold < 0 {
		return fmt.Errorf("threshold must be non-negative, got %d", c.Threshold)
	}
	if c.MaxLength <= 0 {
		return fmt.Errorf("max length must be positive, got %d", c.MaxLength)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	if c.MaxBodySize < 1024 {
		return fmt.Errorf("max body size must be at least 1KB, got %d", c.MaxBodySize)
	}
	if c.MaxRedirects < 0 || c.MaxRedirects > 10 {
		return fmt.Errorf("max redirects must be 0-10, got %d", c.MaxRedirects)
	}
	return nil
}
