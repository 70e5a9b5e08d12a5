package entity

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Source represents a configured feed endpoint.
//
// Sources are owned by the source registry. The fetch pipeline only reads
// the enabled subset and never mutates a source except for LastFetchedAt.
type Source struct {
	ID            string     `yaml:"id" json:"id"`
	Name          string     `yaml:"name" json:"name"`
	FeedURL       string     `yaml:"url" json:"url"`
	Enabled       bool       `yaml:"enabled" json:"enabled"`
	LastFetchedAt *time.Time `yaml:"last_fetched_at,omitempty" json:"last_fetched_at,omitempty"`
}

// Validate checks the Source fields required before it can be fetched.
func (s *Source) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidSource)
	}
	if strings.TrimSpace(s.FeedURL) == "" {
		return fmt.Errorf("%w: feed url is required", ErrInvalidSource)
	}
	u, err := url.Parse(s.FeedURL)
	if err != nil {
		return fmt.Errorf("%w: invalid feed url: %v", ErrInvalidSource, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: feed url must be http or https, got %q", ErrInvalidSource, u.Scheme)
	}
	return nil
}
