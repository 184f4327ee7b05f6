package source

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/config"
	"github.com/sells-group/leadgen-cli/internal/intent"
	"github.com/sells-group/leadgen-cli/internal/model"
)

const (
	redditPerSubreddit = 10
	redditMaxResults   = 20
	redditIntentFloor  = 3
)

// RedditProvider searches business subreddits for buying-intent
// discussions. Results below a minimal intent floor are dropped at the
// source so the pipeline only sees posts worth extracting from.
type RedditProvider struct {
	cfg     config.RedditConfig
	fetcher *fetcher

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

// NewRedditProvider returns a provider using Reddit's OAuth client
// credentials flow.
func NewRedditProvider(cfg config.RedditConfig, f *fetcher) *RedditProvider {
	return &RedditProvider{cfg: cfg, fetcher: f}
}

func (p *RedditProvider) Type() model.SourceType { return model.SourceForumPost }

type redditListing struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	Title       string  `json:"title"`
	SelfText    string  `json:"selftext"`
	Permalink   string  `json:"permalink"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
	CreatedUTC  float64 `json:"created_utc"`
}

// Fetch searches every configured subreddit and returns the highest-intent
// posts. A failing subreddit is skipped, not fatal.
func (p *RedditProvider) Fetch(ctx context.Context, query string) ([]model.RawMention, error) {
	token, err := p.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	type scored struct {
		mention model.RawMention
		intent  int
	}
	var posts []scored

	for _, sub := range p.cfg.Subreddits {
		q := url.Values{}
		q.Set("q", query)
		q.Set("sort", "relevance")
		q.Set("limit", "10")
		q.Set("type", "link")
		q.Set("t", "month")
		q.Set("restrict_sr", "true")

		header := http.Header{}
		header.Set("Authorization", "Bearer "+token)

		var listing redditListing
		u := p.cfg.BaseURL + "/r/" + sub + "/search?" + q.Encode()
		if err := p.fetcher.getJSON(ctx, u, header, &listing); err != nil {
			zap.L().Warn("reddit: subreddit search failed",
				zap.String("subreddit", sub),
				zap.Error(err),
			)
			continue
		}

		for _, child := range listing.Data.Children {
			post := child.Data
			if len(post.Title) <= 20 || (len(post.SelfText) <= 50 && post.NumComments <= 3) {
				continue
			}
			m := model.RawMention{
				Source:    model.SourceForumPost,
				Text:      strings.TrimSpace(post.Title + " " + post.SelfText),
				Timestamp: time.Unix(int64(post.CreatedUTC), 0).UTC(),
				Engagement: model.Engagement{
					Comments: post.NumComments,
					Score:    post.Score,
				},
				URL: "https://reddit.com" + post.Permalink,
			}
			if pre := intent.Prescale(&m); pre >= redditIntentFloor {
				posts = append(posts, scored{mention: m, intent: pre})
			}
		}
	}

	sort.SliceStable(posts, func(i, j int) bool { return posts[i].intent > posts[j].intent })
	if len(posts) > redditMaxResults {
		posts = posts[:redditMaxResults]
	}

	out := make([]model.RawMention, 0, len(posts))
	for _, s := range posts {
		out = append(out, s.mention)
	}
	return out, nil
}

type redditTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// accessToken returns a cached app-only token, refreshing when expired.
func (p *RedditProvider) accessToken(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.token != "" && time.Now().Before(p.tokenExpiry) {
		return p.token, nil
	}
	if p.cfg.ClientID == "" || p.cfg.ClientSecret == "" {
		return "", eris.New("reddit: client credentials not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.AuthURL,
		strings.NewReader("grant_type=client_credentials"))
	if err != nil {
		return "", eris.Wrap(err, "reddit: create token request")
	}
	auth := base64.StdEncoding.EncodeToString([]byte(p.cfg.ClientID + ":" + p.cfg.ClientSecret))
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.fetcher.do(ctx, req)
	if err != nil {
		return "", eris.Wrap(err, "reddit: request token")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", eris.Errorf("reddit: token status %d", resp.StatusCode)
	}

	var tok redditTokenResponse
	if err := decodeJSON(resp.Body, &tok); err != nil {
		return "", eris.Wrap(err, "reddit: decode token")
	}

	p.token = tok.AccessToken
	p.tokenExpiry = time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second)
	return p.token, nil
}
