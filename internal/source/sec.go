package source

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/sells-group/leadgen-cli/internal/config"
	"github.com/sells-group/leadgen-cli/internal/model"
)

const secMaxResults = 10

// SECProvider queries the EDGAR full-text search API for recent filings
// mentioning the query. Keyless.
type SECProvider struct {
	cfg     config.EndpointConfig
	fetcher *fetcher
}

// NewSECProvider returns a provider over efts.sec.gov.
func NewSECProvider(cfg config.EndpointConfig, f *fetcher) *SECProvider {
	return &SECProvider{cfg: cfg, fetcher: f}
}

func (p *SECProvider) Type() model.SourceType { return model.SourceFiling }

type edgarResponse struct {
	Hits struct {
		Hits []struct {
			ID     string `json:"_id"`
			Source struct {
				DisplayNames []string `json:"display_names"`
				FileType     string   `json:"file_type"`
				FileDate     string   `json:"file_date"`
			} `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func (p *SECProvider) Fetch(ctx context.Context, query string) ([]model.RawMention, error) {
	q := url.Values{}
	q.Set("q", `"`+query+`"`)
	q.Set("dateRange", "custom")
	q.Set("startdt", time.Now().AddDate(-1, 0, 0).Format("2006-01-02"))
	q.Set("enddt", time.Now().Format("2006-01-02"))

	var resp edgarResponse
	if err := p.fetcher.getJSON(ctx, p.cfg.BaseURL+"?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}

	var out []model.RawMention
	for _, hit := range resp.Hits.Hits {
		if len(out) >= secMaxResults {
			break
		}
		if len(hit.Source.DisplayNames) == 0 || hit.Source.FileType == "" {
			continue
		}
		name := cleanDisplayName(hit.Source.DisplayNames[0])
		m := model.RawMention{
			Source: model.SourceFiling,
			Text:   fmt.Sprintf("%s filed %s with the SEC", name, hit.Source.FileType),
			URL:    "https://www.sec.gov/Archives/edgar/data/" + hit.ID,
		}
		if ts, err := time.Parse("2006-01-02", hit.Source.FileDate); err == nil {
			m.Timestamp = ts
		}
		out = append(out, m)
	}
	return out, nil
}

// cleanDisplayName strips the ticker and CIK suffixes EDGAR appends,
// e.g. "Acme Corp (ACME) (CIK 0001234567)" -> "Acme Corp".
func cleanDisplayName(name string) string {
	if i := strings.Index(name, "  ("); i >= 0 {
		name = name[:i]
	}
	if i := strings.Index(name, " ("); i >= 0 {
		name = name[:i]
	}
	return strings.TrimSpace(name)
}
