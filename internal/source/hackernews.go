package source

import (
	"context"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/sells-group/leadgen-cli/internal/config"
	"github.com/sells-group/leadgen-cli/internal/model"
)

const hnMaxResults = 8

var hnRelevantTerms = []string{"company", "startup", "business", "tech", "saas", "ai"}

// HackerNewsProvider queries the Algolia HN search API for tech trend
// stories. Keyless, so it is enabled by default.
type HackerNewsProvider struct {
	cfg     config.EndpointConfig
	fetcher *fetcher
}

// NewHackerNewsProvider returns a provider over hn.algolia.com.
func NewHackerNewsProvider(cfg config.EndpointConfig, f *fetcher) *HackerNewsProvider {
	return &HackerNewsProvider{cfg: cfg, fetcher: f}
}

func (p *HackerNewsProvider) Type() model.SourceType { return model.SourceTechStory }

type hnSearchResponse struct {
	Hits []struct {
		Title       string    `json:"title"`
		URL         string    `json:"url"`
		Points      int       `json:"points"`
		NumComments int       `json:"num_comments"`
		CreatedAt   time.Time `json:"created_at"`
	} `json:"hits"`
}

func (p *HackerNewsProvider) Fetch(ctx context.Context, query string) ([]model.RawMention, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("tags", "story")
	q.Set("hitsPerPage", "15")
	q.Set("numericFilters", "points>5")

	var resp hnSearchResponse
	if err := p.fetcher.getJSON(ctx, p.cfg.BaseURL+"/search?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}

	var out []model.RawMention
	for _, hit := range resp.Hits {
		if len(out) >= hnMaxResults {
			break
		}
		title := strings.ToLower(hit.Title)
		if len(hit.Title) <= 20 || !matchAny(title, hnRelevantTerms) {
			continue
		}
		out = append(out, model.RawMention{
			Source:    model.SourceTechStory,
			Text:      hit.Title,
			Timestamp: hit.CreatedAt,
			Engagement: model.Engagement{
				Score:    hit.Points,
				Comments: hit.NumComments,
			},
			URL: hit.URL,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Engagement, out[j].Engagement
		return a.Score+a.Comments > b.Score+b.Comments
	})
	return out, nil
}
