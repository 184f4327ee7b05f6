package source

import (
	"context"
	"encoding/json"
	"io"
	"math"
	"math/rand/v2"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// fetcherOptions configures the shared HTTP fetcher.
type fetcherOptions struct {
	UserAgent  string
	Timeout    time.Duration
	MaxRetries int
}

// fetcher is the HTTP layer every provider goes through: per-host rate
// limiting plus retry with exponential backoff on transient failures.
type fetcher struct {
	client   *http.Client
	opts     fetcherOptions
	limiters map[string]*rate.Limiter
	fallback *rate.Limiter
}

// defaultLimiters returns the per-host request rates for hosts with
// published or observed limits.
func defaultLimiters() map[string]*rate.Limiter {
	return map[string]*rate.Limiter{
		"oauth.reddit.com":       rate.NewLimiter(1, 2),
		"www.reddit.com":         rate.NewLimiter(1, 2),
		"api.twitter.com":        rate.NewLimiter(rate.Every(2*time.Second), 1),
		"efts.sec.gov":           rate.NewLimiter(10, 10),
		"www.sec.gov":            rate.NewLimiter(10, 10),
		"catalog.data.gov":       rate.NewLimiter(2, 2),
		"www.bizbuysell.com":     rate.NewLimiter(rate.Every(5*time.Second), 1),
		"www.google.com":         rate.NewLimiter(rate.Every(3*time.Second), 1),
	}
}

func newFetcher(opts fetcherOptions) *fetcher {
	if opts.Timeout == 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = 2
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "leadgen-cli/1.0"
	}
	return &fetcher{
		client: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		opts:     opts,
		limiters: defaultLimiters(),
		fallback: rate.NewLimiter(5, 5),
	}
}

func (f *fetcher) limiterFor(rawURL string) *rate.Limiter {
	u, err := url.Parse(rawURL)
	if err != nil {
		return f.fallback
	}
	if lim, ok := f.limiters[u.Host]; ok {
		return lim
	}
	return f.fallback
}

// do executes the request with rate limiting and retries on network
// errors, 429, and 5xx.
func (f *fetcher) do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", f.opts.UserAgent)
	}

	var lastErr error
	for attempt := range f.opts.MaxRetries {
		if err := f.limiterFor(req.URL.String()).Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "source: rate limiter wait")
		}

		resp, err := f.client.Do(req.Clone(ctx))
		if err != nil {
			lastErr = err
			f.backoff(ctx, attempt)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			_ = resp.Body.Close()
			lastErr = eris.Errorf("source: http %d from %s", resp.StatusCode, req.URL.Host)
			zap.L().Warn("source: retryable status",
				zap.String("host", req.URL.Host),
				zap.Int("status", resp.StatusCode),
				zap.Int("attempt", attempt+1),
			)
			f.backoff(ctx, attempt)
			continue
		}

		return resp, nil
	}

	return nil, eris.Wrap(lastErr, "source: all retries exhausted")
}

// getJSON fetches a URL and decodes the JSON response into out.
func (f *fetcher) getJSON(ctx context.Context, rawURL string, header http.Header, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return eris.Wrap(err, "source: create request")
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := f.do(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrap(err, "source: read response")
	}
	if resp.StatusCode != http.StatusOK {
		return eris.Errorf("source: unexpected status %d from %s: %s", resp.StatusCode, req.URL.Host, truncate(string(body), 200))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return eris.Wrapf(err, "source: unmarshal response from %s", req.URL.Host)
	}
	return nil
}

// getHTML fetches a URL and returns the response body for parsing.
func (f *fetcher) getHTML(ctx context.Context, rawURL string, header http.Header) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "source: create request")
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := f.do(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, eris.Errorf("source: unexpected status %d from %s", resp.StatusCode, req.URL.Host)
	}
	return resp.Body, nil
}

func (f *fetcher) backoff(ctx context.Context, attempt int) {
	d := time.Duration(float64(time.Second) * math.Pow(2, float64(attempt)))
	if d > 10*time.Second {
		d = 10 * time.Second
	}
	d += time.Duration(rand.Int64N(int64(d) / 2))

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

func decodeJSON(r io.Reader, out any) error {
	return json.NewDecoder(r).Decode(out)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
