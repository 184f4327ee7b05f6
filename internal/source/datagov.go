package source

import (
	"context"
	"net/url"
	"strings"

	"github.com/sells-group/leadgen-cli/internal/config"
	"github.com/sells-group/leadgen-cli/internal/model"
)

const datagovMaxResults = 8

// DataGovProvider searches the Data.gov CKAN catalog for datasets related
// to the query. Keyless; dataset titles occasionally surface company and
// sector names worth extracting.
type DataGovProvider struct {
	cfg     config.EndpointConfig
	fetcher *fetcher
}

// NewDataGovProvider returns a provider over catalog.data.gov.
func NewDataGovProvider(cfg config.EndpointConfig, f *fetcher) *DataGovProvider {
	return &DataGovProvider{cfg: cfg, fetcher: f}
}

func (p *DataGovProvider) Type() model.SourceType { return model.SourceDataset }

type ckanResponse struct {
	Result struct {
		Results []struct {
			Title string `json:"title"`
			Notes string `json:"notes"`
			Name  string `json:"name"`
		} `json:"results"`
	} `json:"result"`
}

func (p *DataGovProvider) Fetch(ctx context.Context, query string) ([]model.RawMention, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("rows", "20")
	q.Set("sort", "score desc, metadata_modified desc")

	var resp ckanResponse
	if err := p.fetcher.getJSON(ctx, p.cfg.BaseURL+"/action/package_search?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}

	var out []model.RawMention
	for _, ds := range resp.Result.Results {
		if len(out) >= datagovMaxResults {
			break
		}
		if len(ds.Title) <= 10 {
			continue
		}
		out = append(out, model.RawMention{
			Source: model.SourceDataset,
			Text:   strings.TrimSpace(ds.Title + " " + ds.Notes),
			URL:    "https://catalog.data.gov/dataset/" + ds.Name,
		})
	}
	return out, nil
}
