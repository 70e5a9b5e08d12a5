package fetcher

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/codenough/news-feed-app/internal/resilience/circuitbreaker"
	"github.com/codenough/news-feed-app/internal/resilience/retry"
	"github.com/codenough/news-feed-app/internal/usecase/fetch"
)

// FeedFetcher retrieves raw feed documents over HTTP. It implements the
// fetch.TransportFetcher interface.
//
// The fetcher layers rate limiting, retry with backoff, and a circuit
// breaker around a hardened HTTP client: URL validation blocks private
// targets, redirects are re-validated, and response bodies are size
// limited while reading.
//
// Thread safety: FeedFetcher is safe for concurrent use.
type FeedFetcher struct {
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	limiter        *rate.Limiter
	config         FeedFetchConfig
}

// NewFeedFetcher creates a feed transport with the given configuration.
func NewFeedFetcher(config FeedFetchConfig) *FeedFetcher {
	f := &FeedFetcher{
		circuitBreaker: circuitbreaker.New(circuitbreaker.FeedFetchConfig()),
		config:         config,
	}

	if config.RequestsPerSecond > 0 {
		f.limiter = rate.NewLimiter(rate.Limit(config.RequestsPerSecond), 1)
	}

	f.client = &http.Client{
		Timeout: config.Timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= f.config.MaxRedirects {
				return fmt.Errorf("%w: %d redirects", fetch.ErrTooManyRedirects, len(via))
			}
			if err := validateURL(req.URL.String(), f.config.DenyPrivateIPs); err != nil {
				return fmt.Errorf("redirect target rejected: %w", err)
			}
			return nil
		},
	}
	return f
}

// Fetch retrieves the feed document at the given URL and returns its body.
//
// Transient failures (network errors, HTTP 5xx, 429) are retried with
// exponential backoff. Persistent failures trip the circuit breaker so a
// dead feed host stops consuming the fetch budget.
func (f *FeedFetcher) Fetch(ctx context.Context, urlStr string) (string, error) {
	if err := validateURL(urlStr, f.config.DenyPrivateIPs); err != nil {
		return "", err
	}

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limit wait: %w", err)
		}
	}

	var body string
	err := retry.WithBackoff(ctx, retry.FeedFetchConfig(), func() error {
		result, err := f.circuitBreaker.Execute(func() (interface{}, error) {
			return f.doFetch(ctx, urlStr)
		})
		if err != nil {
			return err
		}
		body = result.(string)
		return nil
	})
	if err != nil {
		return "", err
	}
	return body, nil
}

func (f *FeedFetcher) doFetch(ctx context.Context, urlStr string) (interface{}, error) {
	reqCtx, cancel := context.WithTimeout(ctx, f.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, urlStr, nil)
	if err != nil {
		return "", fmt.Errorf("%w: create request: %v", fetch.ErrInvalidURL, err)
	}
	req.Header.Set("User-Agent", f.config.UserAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/xml")

	resp, err := f.client.Do(req)
	if err != nil {
		if reqCtx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("%w: request exceeded %v", fetch.ErrTimeout, f.config.Timeout)
		}
		if urlErr, ok := err.(*url.Error); ok && urlErr.Err != nil {
			return "", urlErr.Err
		}
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// HTTPErrorとして返すことでリトライ判定に使う
		return "", &retry.HTTPError{
			StatusCode: resp.StatusCode,
			Message:    resp.Status,
		}
	}

	limited := io.LimitReader(resp.Body, f.config.MaxBodySize+1)
	data, err := io.ReadAll(limited)
	if err != nil {
		return "", fmt.Errorf("read response body: %w", err)
	}
	if int64(len(data)) > f.config.MaxBodySize {
		return "", fmt.Errorf("%w: response exceeds %d bytes", fetch.ErrBodyTooLarge, f.config.MaxBodySize)
	}

	return string(data), nil
}
