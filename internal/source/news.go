package source

import (
	"context"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/config"
	"github.com/sells-group/leadgen-cli/internal/model"
)

const newsMaxResults = 12

var newsBusinessKeywords = []string{
	"company", "business", "startup", "funding", "ceo", "founder",
	"investment", "acquisition", "merger", "ipo", "revenue",
}

// NewsProvider fetches recent business coverage. NewsAPI is the primary
// source; when no key is configured it degrades to scanning the
// configured RSS feeds instead of returning nothing.
type NewsProvider struct {
	cfg     config.NewsAPIConfig
	fetcher *fetcher
	parser  *gofeed.Parser
}

// NewNewsProvider returns a provider over NewsAPI and the RSS fallback.
func NewNewsProvider(cfg config.NewsAPIConfig, f *fetcher) *NewsProvider {
	return &NewsProvider{cfg: cfg, fetcher: f, parser: gofeed.NewParser()}
}

func (p *NewsProvider) Type() model.SourceType { return model.SourceNewsArticle }

type newsAPIResponse struct {
	Articles []struct {
		Title       string    `json:"title"`
		Description string    `json:"description"`
		URL         string    `json:"url"`
		PublishedAt time.Time `json:"publishedAt"`
	} `json:"articles"`
}

func (p *NewsProvider) Fetch(ctx context.Context, query string) ([]model.RawMention, error) {
	if p.cfg.Key == "" {
		return p.fetchRSS(ctx, query)
	}

	mentions, err := p.fetchAPI(ctx, query)
	if err != nil {
		zap.L().Warn("news: api fetch failed, trying rss feeds", zap.Error(err))
		return p.fetchRSS(ctx, query)
	}
	return mentions, nil
}

func (p *NewsProvider) fetchAPI(ctx context.Context, query string) ([]model.RawMention, error) {
	q := url.Values{}
	q.Set("q", `"`+query+`" AND (company OR business OR startup OR CEO OR funding OR acquisition OR investment)`)
	q.Set("apiKey", p.cfg.Key)
	q.Set("sortBy", "publishedAt")
	q.Set("language", "en")
	q.Set("pageSize", "30")
	q.Set("from", time.Now().AddDate(0, 0, -30).Format("2006-01-02"))
	q.Set("domains", strings.Join(p.cfg.Domains, ","))

	var resp newsAPIResponse
	if err := p.fetcher.getJSON(ctx, p.cfg.BaseURL+"/everything?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}

	var out []model.RawMention
	for _, a := range resp.Articles {
		if len(out) >= newsMaxResults {
			break
		}
		if !newsworthy(a.Title, a.Description) {
			continue
		}
		out = append(out, model.RawMention{
			Source:    model.SourceNewsArticle,
			Text:      strings.TrimSpace(a.Title + " " + a.Description),
			Timestamp: a.PublishedAt,
			URL:       a.URL,
		})
	}
	return out, nil
}

// fetchRSS scans the configured feeds for items mentioning the query.
func (p *NewsProvider) fetchRSS(ctx context.Context, query string) ([]model.RawMention, error) {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return nil, nil
	}

	var out []model.RawMention
	for _, feedURL := range p.cfg.RSSFeeds {
		feed, err := p.parser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			zap.L().Warn("news: rss feed unavailable", zap.String("feed", feedURL), zap.Error(err))
			continue
		}
		for _, item := range feed.Items {
			text := strings.TrimSpace(item.Title + " " + item.Description)
			if !containsAll(strings.ToLower(text), terms) {
				continue
			}
			m := model.RawMention{
				Source: model.SourceNewsArticle,
				Text:   text,
				URL:    item.Link,
			}
			if item.PublishedParsed != nil {
				m.Timestamp = *item.PublishedParsed
			}
			out = append(out, m)
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	if len(out) > newsMaxResults {
		out = out[:newsMaxResults]
	}
	return out, nil
}

// newsworthy filters out thin or non-business items.
func newsworthy(title, description string) bool {
	if len(title) <= 20 || len(description) <= 50 {
		return false
	}
	if strings.Contains(strings.ToLower(title), "[removed]") {
		return false
	}
	content := strings.ToLower(title + " " + description)
	for _, kw := range newsBusinessKeywords {
		if strings.Contains(content, kw) {
			return true
		}
	}
	return false
}

func containsAll(text string, terms []string) bool {
	for _, t := range terms {
		if !strings.Contains(text, t) {
			return false
		}
	}
	return true
}
