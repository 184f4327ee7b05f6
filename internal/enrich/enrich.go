// Package enrich layers third-party firmographic and contact data onto
// merged companies. Enrichment is strictly best-effort: a missing key,
// an unknown domain, or an upstream failure leaves the company exactly
// as it was.
package enrich

import (
	"context"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/config"
	"github.com/sells-group/leadgen-cli/internal/model"
	"github.com/sells-group/leadgen-cli/pkg/clearbit"
	"github.com/sells-group/leadgen-cli/pkg/hunter"
)

// relevantRoles marks the positions worth surfacing as outreach contacts.
var relevantRoles = []string{
	"ceo", "founder", "president", "director", "sales",
	"business development", "marketing", "manager",
}

// Enricher fills in a company's enrichment and contact data in place.
type Enricher interface {
	Enrich(ctx context.Context, c *model.Company)
}

// Service is the production Enricher. Either client may be nil when its
// credentials are not configured; the corresponding lookup is skipped.
type Service struct {
	clearbit clearbit.Client
	hunter   hunter.Client
	cfg      config.HunterConfig
}

// NewService returns a Service over the given clients.
func NewService(cb clearbit.Client, h hunter.Client, cfg config.HunterConfig) *Service {
	return &Service{clearbit: cb, hunter: h, cfg: cfg}
}

// Enrich looks up firmographics and contacts for the company's domain.
func (s *Service) Enrich(ctx context.Context, c *model.Company) {
	domain := ExtractDomain(c.Website)
	if domain == "" {
		return
	}
	log := zap.L().With(zap.String("company", c.Name), zap.String("domain", domain))

	if s.clearbit != nil {
		rec, err := s.clearbit.FindCompany(ctx, domain)
		switch {
		case eris.Is(err, clearbit.ErrNotFound):
			// unknown domain, nothing to layer on
		case err != nil:
			log.Warn("enrich: firmographics lookup failed", zap.Error(err))
		default:
			c.Enrichment = &model.Enrichment{
				Employees:     rec.Metrics.Employees,
				RaisedUSD:     rec.Metrics.Raised,
				AnnualRevenue: rec.Metrics.EstimatedAnnualRevenue,
				FoundedYear:   rec.FoundedYear,
				Industry:      industryText(rec.Category),
				Location:      locationText(rec.Geo),
			}
			if c.Description == "" {
				c.Description = rec.Description
			}
		}
	}

	if s.hunter != nil {
		res, err := s.hunter.DomainSearch(ctx, domain, s.cfg.MaxContacts*2)
		if err != nil {
			log.Warn("enrich: contact lookup failed", zap.Error(err))
			return
		}
		c.Contacts = selectContacts(res.Emails, s.cfg.MinConfidence, s.cfg.MaxContacts)
	}
}

// selectContacts keeps confident, decision-maker addresses, best first.
func selectContacts(emails []hunter.Email, minConfidence, limit int) []model.Contact {
	var kept []hunter.Email
	for _, e := range emails {
		if e.Confidence > minConfidence && roleRelevant(e.Position) {
			kept = append(kept, e)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Confidence > kept[j].Confidence })
	if len(kept) > limit {
		kept = kept[:limit]
	}

	out := make([]model.Contact, 0, len(kept))
	for _, e := range kept {
		out = append(out, model.Contact{
			Email:      e.Value,
			FirstName:  e.FirstName,
			LastName:   e.LastName,
			Role:       e.Position,
			Confidence: e.Confidence,
			Source:     "hunter.io",
		})
	}
	return out
}

func roleRelevant(position string) bool {
	role := strings.ToLower(position)
	for _, r := range relevantRoles {
		if strings.Contains(role, r) {
			return true
		}
	}
	return false
}

func industryText(cat clearbit.Category) string {
	parts := []string{cat.Industry, cat.Sector, cat.SubIndustry}
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

func locationText(geo clearbit.Geo) string {
	parts := []string{geo.City, geo.State, geo.Country}
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}

// ExtractDomain reduces a website URL to its bare domain.
func ExtractDomain(website string) string {
	d := strings.TrimSpace(strings.ToLower(website))
	d = strings.TrimPrefix(d, "https://")
	d = strings.TrimPrefix(d, "http://")
	d = strings.TrimPrefix(d, "www.")
	if i := strings.IndexAny(d, "/?#"); i >= 0 {
		d = d[:i]
	}
	if !strings.Contains(d, ".") {
		return ""
	}
	return d
}
