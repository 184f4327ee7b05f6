// Package hunter is a thin client for the Hunter.io domain-search API.
package hunter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://api.hunter.io/v2"

// Client performs domain searches against Hunter.io.
type Client interface {
	DomainSearch(ctx context.Context, domain string, limit int) (*DomainSearchResult, error)
}

// DomainSearchResult is the data object from GET /domain-search.
type DomainSearchResult struct {
	Domain       string  `json:"domain"`
	Organization string  `json:"organization"`
	Country      string  `json:"country"`
	Pattern      string  `json:"pattern"`
	Emails       []Email `json:"emails"`
}

// Email is one discovered address with its verification confidence.
type Email struct {
	Value      string `json:"value"`
	Type       string `json:"type"`
	Confidence int    `json:"confidence"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Position   string `json:"position"`
	Department string `json:"department"`
	Seniority  string `json:"seniority"`
}

type envelope struct {
	Data DomainSearchResult `json:"data"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(u string) Option {
	return func(c *httpClient) {
		c.baseURL = u
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithRateLimit overrides the default request rate.
func WithRateLimit(r rate.Limit, burst int) Option {
	return func(c *httpClient) {
		c.limiter = rate.NewLimiter(r, burst)
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a Hunter.io API client. The free tier allows roughly
// one request per second, so that is the default limit.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) DomainSearch(ctx context.Context, domain string, limit int) (*DomainSearchResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "hunter: rate limit wait")
	}

	q := url.Values{}
	q.Set("domain", domain)
	q.Set("api_key", c.apiKey)
	q.Set("limit", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/domain-search?"+q.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "hunter: create request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "hunter: send request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "hunter: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("hunter: unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, eris.Wrap(err, "hunter: unmarshal response")
	}

	return &env.Data, nil
}
