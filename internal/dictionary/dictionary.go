// Package dictionary looks words up in the Korean open dictionary service.
package dictionary

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// NoResultsDefinition is the placeholder definition for an empty lookup.
const NoResultsDefinition = "검색 결과가 없습니다."

const (
	// DefaultLimit caps the number of senses returned by a lookup.
	DefaultLimit = 4

	unknownPos  = "N/A"
	maxBodySize = 1 << 20
)

// Meaning is one sense of a dictionary entry.
type Meaning struct {
	Word       string `json:"word,omitempty"`
	Definition string `json:"definition"`
	Pos        string `json:"pos,omitempty"`
	Category   string `json:"category,omitempty"`
}

// NoResults is the meanings list returned to readers when nothing matched.
func NoResults() []Meaning {
	return []Meaning{{Definition: NoResultsDefinition}}
}

// Config configures a Client.
type Config struct {
	BaseURL string
	APIKey  string
	Limit   int
	Timeout time.Duration
}

// Client queries the dictionary service. Lookups never fail: any upstream
// problem yields an empty result.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
	limit   int
	cache   Cache
}

// Option customizes a Client.
type Option func(*Client)

// WithCache stores successful lookups in c.
func WithCache(c Cache) Option {
	return func(cl *Client) { cl.cache = c }
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(cl *Client) { cl.http = h }
}

// New creates a Client.
func New(cfg Config, opts ...Option) *Client {
	limit := cfg.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	c := &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		limit:   limit,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search returns up to the configured limit of senses for word, in
// upstream order.
func (c *Client) Search(ctx context.Context, word string) []Meaning {
	if c.apiKey == "" {
		slog.Warn("Dictionary API key not configured")
		return nil
	}

	key := cacheKey(word, c.limit)
	if c.cache != nil {
		meanings, ok, err := c.cache.Get(ctx, key)
		if err != nil {
			slog.Warn("Dictionary cache read failed", "word", word, "error", err)
		} else if ok {
			return meanings
		}
	}

	meanings, err := c.fetch(ctx, word)
	if err != nil {
		slog.Warn("Dictionary lookup failed", "word", word, "error", err)
		return nil
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, meanings); err != nil {
			slog.Warn("Dictionary cache write failed", "word", word, "error", err)
		}
	}
	return meanings
}

type searchResponse struct {
	Items []struct {
		Word   string `xml:"word"`
		Senses []struct {
			Definition string  `xml:"definition"`
			Pos        *string `xml:"pos"`
			Cat        string  `xml:"cat"`
		} `xml:"sense"`
	} `xml:"item"`
}

func (c *Client) fetch(ctx context.Context, word string) ([]Meaning, error) {
	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("q", word)
	q.Set("part", "word")
	q.Set("sort", "popular")
	q.Set("method", "exact")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var parsed searchResponse
	if err := xml.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	meanings := make([]Meaning, 0, c.limit)
	for _, item := range parsed.Items {
		for _, sense := range item.Senses {
			pos := unknownPos
			if sense.Pos != nil && strings.TrimSpace(*sense.Pos) != "" {
				pos = strings.TrimSpace(*sense.Pos)
			}
			meanings = append(meanings, Meaning{
				Word:       strings.TrimSpace(item.Word),
				Definition: strings.TrimSpace(sense.Definition),
				Pos:        pos,
				Category:   strings.TrimSpace(sense.Cat),
			})
			if len(meanings) >= c.limit {
				return meanings, nil
			}
		}
	}
	return meanings, nil
}

func cacheKey(word string, limit int) string {
	return "dictionary:" + strconv.Itoa(limit) + ":" + strings.TrimSpace(word)
}
