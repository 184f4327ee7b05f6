package enrich

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadgen-cli/internal/config"
	"github.com/sells-group/leadgen-cli/internal/model"
	"github.com/sells-group/leadgen-cli/pkg/clearbit"
	"github.com/sells-group/leadgen-cli/pkg/hunter"
)

type stubClearbit struct {
	company *clearbit.Company
	err     error
}

func (s *stubClearbit) FindCompany(context.Context, string) (*clearbit.Company, error) {
	return s.company, s.err
}

type stubHunter struct {
	result *hunter.DomainSearchResult
	err    error
}

func (s *stubHunter) DomainSearch(context.Context, string, int) (*hunter.DomainSearchResult, error) {
	return s.result, s.err
}

func hunterCfg() config.HunterConfig {
	return config.HunterConfig{MinConfidence: 70, MaxContacts: 3}
}

func TestExtractDomain(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://www.techflow.com", "techflow.com"},
		{"http://acme.io/about?x=1", "acme.io"},
		{"shopify.com", "shopify.com"},
		{"not a domain", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractDomain(tt.in), "input: %q", tt.in)
	}
}

func TestEnrichSetsFirmographics(t *testing.T) {
	svc := NewService(&stubClearbit{company: &clearbit.Company{
		FoundedYear: 2018,
		Category:    clearbit.Category{Industry: "Software", Sector: "Technology"},
		Geo:         clearbit.Geo{City: "Toronto", State: "Ontario", Country: "Canada"},
		Metrics:     clearbit.Metrics{Employees: 45, Raised: 2_000_000},
	}}, nil, hunterCfg())

	c := &model.Company{Name: "TechFlow", Website: "https://www.techflow.com"}
	svc.Enrich(context.Background(), c)

	require.NotNil(t, c.Enrichment)
	assert.Equal(t, 45, c.Enrichment.Employees)
	assert.Equal(t, 2_000_000.0, c.Enrichment.RaisedUSD)
	assert.Equal(t, "Software Technology", c.Enrichment.Industry)
	assert.Equal(t, "Toronto, Ontario, Canada", c.Enrichment.Location)
}

func TestEnrichNotFoundLeavesCompanyUntouched(t *testing.T) {
	svc := NewService(&stubClearbit{err: clearbit.ErrNotFound}, nil, hunterCfg())

	c := &model.Company{Name: "Ghost", Website: "https://www.ghost.com"}
	svc.Enrich(context.Background(), c)

	assert.Nil(t, c.Enrichment)
}

func TestEnrichNoDomainSkipsLookups(t *testing.T) {
	svc := NewService(&stubClearbit{err: clearbit.ErrNotFound}, &stubHunter{}, hunterCfg())

	c := &model.Company{Name: "Nameless"}
	svc.Enrich(context.Background(), c)

	assert.Nil(t, c.Enrichment)
	assert.Empty(t, c.Contacts)
}

func TestEnrichSelectsContacts(t *testing.T) {
	svc := NewService(nil, &stubHunter{result: &hunter.DomainSearchResult{
		Emails: []hunter.Email{
			{Value: "intern@x.com", Confidence: 95, Position: "Intern"},
			{Value: "ceo@x.com", Confidence: 92, Position: "CEO"},
			{Value: "weak@x.com", Confidence: 40, Position: "Founder"},
			{Value: "sales@x.com", Confidence: 80, Position: "Sales Manager"},
			{Value: "vp@x.com", Confidence: 85, Position: "Director of Ops"},
			{Value: "mkt@x.com", Confidence: 75, Position: "Marketing Lead"},
		},
	}}, hunterCfg())

	c := &model.Company{Name: "X", Website: "https://x.com"}
	svc.Enrich(context.Background(), c)

	require.Len(t, c.Contacts, 3, "irrelevant roles and weak confidence dropped, capped at 3")
	assert.Equal(t, "ceo@x.com", c.Contacts[0].Email)
	assert.Equal(t, "vp@x.com", c.Contacts[1].Email)
	assert.Equal(t, "sales@x.com", c.Contacts[2].Email)
	assert.Equal(t, "hunter.io", c.Contacts[0].Source)
}
