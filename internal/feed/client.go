package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gator-threads/internal/utils"

	"github.com/gojek/heimdall/v7"
	"github.com/gojek/heimdall/v7/httpclient"
)

// maxListingBytes caps how much of a listing response is decoded.
const maxListingBytes = 10 << 20

// ClientConfig configures the feed HTTP client.
type ClientConfig struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// Client fetches listings over HTTP. It makes exactly one attempt per call.
type Client struct {
	http      heimdall.Client
	baseURL   string
	userAgent string
}

var _ Fetcher = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	httpClient := httpclient.NewClient(
		httpclient.WithHTTPTimeout(cfg.Timeout),
		httpclient.WithRetryCount(0),
	)
	httpClient.AddPlugin(&requestLogger{})

	return &Client{
		http:      httpClient,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
	}
}

// BaseURL returns the feed host the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListingURL builds <base>/r/<topic>.json.
func (c *Client) ListingURL(topic string) string {
	return c.baseURL + "/r/" + url.PathEscape(topic) + ".json"
}

// Fetch retrieves and decodes the listing for topic. Transport failures,
// non-2xx statuses and undecodable bodies all return ErrUpstream.
func (c *Client) Fetch(ctx context.Context, topic string) ([]Post, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ListingURL(topic), nil)
	if err != nil {
		return nil, utils.NewAppError(utils.ErrUpstream, "failed to build feed request", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, utils.NewAppError(utils.ErrUpstream, "feed request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, utils.NewAppError(utils.ErrUpstream, fmt.Sprintf("feed returned status %d", resp.StatusCode), nil)
	}

	var doc listing
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxListingBytes)).Decode(&doc); err != nil {
		return nil, utils.NewAppError(utils.ErrUpstream, "failed to decode feed", err)
	}

	posts := make([]Post, 0, len(doc.Data.Children))
	for _, child := range doc.Data.Children {
		posts = append(posts, child.Data)
	}
	return posts, nil
}
