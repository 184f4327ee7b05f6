package source

import (
	"context"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/sells-group/leadgen-cli/internal/config"
	"github.com/sells-group/leadgen-cli/internal/model"
)

const twitterMaxResults = 10

var twitterBusinessIndicators = []string{
	"company", "business", "ceo", "founder", "startup", "funding",
	"hiring", "launched", "announcing", "partnership",
}

// TwitterProvider searches recent tweets for business signals.
type TwitterProvider struct {
	cfg     config.TwitterConfig
	fetcher *fetcher
}

// NewTwitterProvider returns a provider over the Twitter API v2 recent
// search endpoint.
func NewTwitterProvider(cfg config.TwitterConfig, f *fetcher) *TwitterProvider {
	return &TwitterProvider{cfg: cfg, fetcher: f}
}

func (p *TwitterProvider) Type() model.SourceType { return model.SourceSocialPost }

type twitterResponse struct {
	Data []struct {
		Text          string    `json:"text"`
		CreatedAt     time.Time `json:"created_at"`
		PublicMetrics struct {
			LikeCount    int `json:"like_count"`
			RetweetCount int `json:"retweet_count"`
			ReplyCount   int `json:"reply_count"`
		} `json:"public_metrics"`
	} `json:"data"`
}

func (p *TwitterProvider) Fetch(ctx context.Context, query string) ([]model.RawMention, error) {
	q := url.Values{}
	q.Set("query", `"`+query+`" (company OR business OR startup OR CEO OR founder OR hiring OR funding OR launched) -is:retweet lang:en`)
	q.Set("max_results", "20")
	q.Set("tweet.fields", "created_at,public_metrics")

	header := http.Header{}
	header.Set("Authorization", "Bearer "+p.cfg.BearerToken)

	var resp twitterResponse
	if err := p.fetcher.getJSON(ctx, p.cfg.BaseURL+"/tweets/search/recent?"+q.Encode(), header, &resp); err != nil {
		return nil, err
	}

	var out []model.RawMention
	for _, tw := range resp.Data {
		text := strings.ToLower(tw.Text)
		if len(tw.Text) <= 50 || strings.Contains(text, "rt @") {
			continue
		}
		if tw.PublicMetrics.LikeCount <= 1 && tw.PublicMetrics.RetweetCount == 0 {
			continue
		}
		if !matchAny(text, twitterBusinessIndicators) {
			continue
		}
		out = append(out, model.RawMention{
			Source:    model.SourceSocialPost,
			Text:      tw.Text,
			Timestamp: tw.CreatedAt,
			Engagement: model.Engagement{
				Likes:    tw.PublicMetrics.LikeCount,
				Shares:   tw.PublicMetrics.RetweetCount,
				Comments: tw.PublicMetrics.ReplyCount,
			},
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Engagement.Weighted() > out[j].Engagement.Weighted()
	})
	if len(out) > twitterMaxResults {
		out = out[:twitterMaxResults]
	}
	return out, nil
}

func matchAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
