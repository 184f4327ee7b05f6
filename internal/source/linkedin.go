package source

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"

	"github.com/sells-group/leadgen-cli/internal/config"
	"github.com/sells-group/leadgen-cli/internal/model"
)

const linkedInMaxResults = 10

// hiringPattern pulls "Acme Corp is hiring" style phrases out of result
// snippets when the job title itself names no company.
var hiringPattern = regexp.MustCompile(`([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)\s+is hiring`)

// LinkedInJobsProvider finds hiring signals. LinkedIn itself blocks
// scraping aggressively, so this goes through a web search restricted to
// linkedin.com/jobs, the same trick the scraping community settled on.
// Disabled by default.
type LinkedInJobsProvider struct {
	cfg     config.EndpointConfig
	fetcher *fetcher
}

// NewLinkedInJobsProvider returns a provider over a site-restricted
// web search.
func NewLinkedInJobsProvider(cfg config.EndpointConfig, f *fetcher) *LinkedInJobsProvider {
	return &LinkedInJobsProvider{cfg: cfg, fetcher: f}
}

func (p *LinkedInJobsProvider) Type() model.SourceType { return model.SourceJobPosting }

func (p *LinkedInJobsProvider) Fetch(ctx context.Context, query string) ([]model.RawMention, error) {
	q := url.Values{}
	q.Set("q", `site:linkedin.com/jobs "`+query+`" hiring Canada`)
	q.Set("num", "20")
	q.Set("hl", "en")

	body, err := p.fetcher.getHTML(ctx, "https://www.google.com/search?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, eris.Wrap(err, "linkedin: parse results")
	}

	var out []model.RawMention
	doc.Find(".g").EachWithBreak(func(_ int, res *goquery.Selection) bool {
		if len(out) >= linkedInMaxResults {
			return false
		}
		title := strings.TrimSpace(res.Find("h3").First().Text())
		link, _ := res.Find("a").First().Attr("href")
		snippet := strings.TrimSpace(res.Find(".VwiC3b").First().Text())

		if title == "" || !strings.Contains(link, "linkedin.com/jobs") {
			return true
		}

		text := title + " " + snippet
		if m := hiringPattern.FindStringSubmatch(snippet); m != nil {
			text = m[1] + " is hiring. " + text
		}
		out = append(out, model.RawMention{
			Source: model.SourceJobPosting,
			Text:   strings.TrimSpace(text),
			URL:    link,
		})
		return true
	})
	return out, nil
}
