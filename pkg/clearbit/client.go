// Package clearbit is a thin client for the Clearbit company-find API.
package clearbit

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://company-stream.clearbit.com/v2"

// ErrNotFound is returned when Clearbit has no record for a domain.
var ErrNotFound = eris.New("clearbit: company not found")

// Client looks up firmographic data by domain.
type Client interface {
	FindCompany(ctx context.Context, domain string) (*Company, error)
}

// Company is the subset of the Clearbit company record the pipeline uses.
type Company struct {
	Name        string   `json:"name"`
	LegalName   string   `json:"legalName"`
	Domain      string   `json:"domain"`
	Description string   `json:"description"`
	FoundedYear int      `json:"foundedYear"`
	Category    Category `json:"category"`
	Geo         Geo      `json:"geo"`
	Metrics     Metrics  `json:"metrics"`
}

// Category classifies the company's industry.
type Category struct {
	Sector      string `json:"sector"`
	IndustryGrp string `json:"industryGroup"`
	Industry    string `json:"industry"`
	SubIndustry string `json:"subIndustry"`
}

// Geo locates the company's headquarters.
type Geo struct {
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}

// Metrics carries the firmographic numbers.
type Metrics struct {
	Employees              int     `json:"employees"`
	Raised                 float64 `json:"raised"`
	EstimatedAnnualRevenue float64 `json:"annualRevenue"`
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

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a Clearbit API client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Every(1500*time.Millisecond), 1),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) FindCompany(ctx context.Context, domain string) (*Company, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "clearbit: rate limit wait")
	}

	q := url.Values{}
	q.Set("domain", domain)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/companies/find?"+q.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "clearbit: create request")
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "clearbit: send request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "clearbit: read response")
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrNotFound
	default:
		return nil, eris.Errorf("clearbit: unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var out Company
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, eris.Wrap(err, "clearbit: unmarshal response")
	}

	return &out, nil
}
