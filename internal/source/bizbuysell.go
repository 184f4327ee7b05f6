package source

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"

	"github.com/sells-group/leadgen-cli/internal/config"
	"github.com/sells-group/leadgen-cli/internal/model"
)

const bizBuySellMaxResults = 8

// listingSelectors are tried in order; the site rotates its card markup.
var listingSelectors = []string{
	".business-card", ".listing-card", ".business-listing", ".result-item", ".bfs-listing",
}

// BizBuySellProvider scrapes businesses-for-sale listings, which signal
// owners actively selling. Disabled by default since scraping is brittle.
type BizBuySellProvider struct {
	cfg     config.EndpointConfig
	fetcher *fetcher
}

// NewBizBuySellProvider returns a provider over bizbuysell.com search.
func NewBizBuySellProvider(cfg config.EndpointConfig, f *fetcher) *BizBuySellProvider {
	return &BizBuySellProvider{cfg: cfg, fetcher: f}
}

func (p *BizBuySellProvider) Type() model.SourceType { return model.SourceListing }

func (p *BizBuySellProvider) Fetch(ctx context.Context, query string) ([]model.RawMention, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("location", "Canada")
	q.Set("sort", "relevance")

	header := http.Header{}
	header.Set("Referer", p.cfg.BaseURL + "/")

	body, err := p.fetcher.getHTML(ctx, p.cfg.BaseURL+"/businesses-for-sale/search/?"+q.Encode(), header)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, eris.Wrap(err, "bizbuysell: parse page")
	}

	var out []model.RawMention
	for _, sel := range listingSelectors {
		doc.Find(sel).EachWithBreak(func(_ int, card *goquery.Selection) bool {
			if len(out) >= bizBuySellMaxResults {
				return false
			}
			title := strings.TrimSpace(card.Find("h3, .title, .listing-title").First().Text())
			desc := strings.TrimSpace(card.Find("p, .description, .listing-description").First().Text())
			price := strings.TrimSpace(card.Find(".price, .asking-price").First().Text())
			link, _ := card.Find("a").First().Attr("href")

			if len(title) <= 10 {
				return true
			}
			text := title + " " + desc
			if price != "" {
				text += " asking " + price
			}
			out = append(out, model.RawMention{
				Source: model.SourceListing,
				Text:   strings.TrimSpace(text),
				URL:    absoluteURL(p.cfg.BaseURL, link),
			})
			return true
		})
		if len(out) > 0 {
			break
		}
	}
	return out, nil
}

func absoluteURL(base, href string) string {
	if href == "" || strings.HasPrefix(href, "http") {
		return href
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(href, "/")
}
