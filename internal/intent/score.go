// Package intent computes weighted intent scores for merged companies.
// Every point value comes from the configured weight table; the scorer
// never invents a contribution per record.
package intent

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/sells-group/leadgen-cli/internal/config"
	"github.com/sells-group/leadgen-cli/internal/model"
)

var fundingKeywords = []string{"funding", "investment", "raised", "series"}

// Scorer applies the weight table to one company at a time.
type Scorer struct {
	cfg config.ScoringConfig
}

// NewScorer returns a Scorer bound to the given weight table.
func NewScorer(cfg config.ScoringConfig) *Scorer {
	return &Scorer{cfg: cfg}
}

// Score computes the company's intent score, confidence score, and signal
// list in place. Deterministic for a given company. The intent score is
// the sum of every triggered condition, capped at 100; confidence is the
// mean signal confidence on a 0-100 scale.
func (s *Scorer) Score(c *model.Company) {
	var signals []model.Signal

	signals = append(signals, s.forumSignals(c)...)
	signals = append(signals, s.fundingSignals(c)...)
	signals = append(signals, s.sizeSignal(c)...)
	signals = append(signals, s.marketSignal(c)...)
	signals = append(signals, s.industrySignal(c)...)
	signals = append(signals, s.contactSignal(c)...)

	total := 0
	confSum := 0.0
	for _, sig := range signals {
		total += sig.Score
		confSum += sig.Confidence
	}

	c.IntentScore = min(100, total)
	if len(signals) > 0 {
		c.ConfidenceScore = int(math.Round(confSum / float64(len(signals)) * 100))
	} else {
		c.ConfidenceScore = 0
	}

	// Display contract: strongest contributions first.
	sort.SliceStable(signals, func(i, j int) bool { return signals[i].Score > signals[j].Score })
	c.Signals = signals
}

// forumSignals awards tiered points per forum mention based on its
// pre-scale intent estimate.
func (s *Scorer) forumSignals(c *model.Company) []model.Signal {
	var out []model.Signal
	for _, m := range c.Mentions[model.SourceForumPost] {
		pre := Prescale(m)
		switch {
		case pre >= 8:
			out = append(out, model.Signal{
				Type:        "forum_high_intent",
				Description: fmt.Sprintf("High intent discussion: %q", excerpt(m.Text, 60)),
				Score:       s.cfg.ForumHighPoints,
				Confidence:  0.9,
				Source:      string(model.SourceForumPost),
				URL:         m.URL,
			})
		case pre >= 6:
			out = append(out, model.Signal{
				Type:        "forum_medium_intent",
				Description: fmt.Sprintf("Active discussion: %q", excerpt(m.Text, 60)),
				Score:       s.cfg.ForumMediumPoints,
				Confidence:  0.8,
				Source:      string(model.SourceForumPost),
				URL:         m.URL,
			})
		case pre >= 4:
			out = append(out, model.Signal{
				Type:        "forum_low_intent",
				Description: fmt.Sprintf("Business mention: %q", excerpt(m.Text, 60)),
				Score:       s.cfg.ForumLowPoints,
				Confidence:  0.6,
				Source:      string(model.SourceForumPost),
				URL:         m.URL,
			})
		}
	}
	return out
}

// fundingSignals covers verified funding from enrichment plus every news
// mention carrying a funding keyword.
func (s *Scorer) fundingSignals(c *model.Company) []model.Signal {
	var out []model.Signal

	if c.Enrichment != nil && c.Enrichment.RaisedUSD > 0 {
		out = append(out, model.Signal{
			Type:        "recent_funding",
			Description: fmt.Sprintf("Company raised: $%.1fM", c.Enrichment.RaisedUSD/1e6),
			Score:       s.cfg.FundingPoints,
			Confidence:  0.95,
			Source:      "enrichment",
		})
	}

	for _, m := range c.Mentions[model.SourceNewsArticle] {
		if !matchKeywords(fundingKeywords, m.Text) {
			continue
		}
		out = append(out, model.Signal{
			Type:        "news_funding",
			Description: fmt.Sprintf("Funding news: %q", excerpt(m.Text, 60)),
			Score:       s.cfg.NewsFundingPoints,
			Confidence:  0.8,
			Source:      string(model.SourceNewsArticle),
			URL:         m.URL,
		})
	}

	return out
}

func (s *Scorer) sizeSignal(c *model.Company) []model.Signal {
	if c.Enrichment == nil || c.Enrichment.Employees == 0 {
		return nil
	}
	n := c.Enrichment.Employees
	if n < s.cfg.MinEmployees || n > s.cfg.MaxEmployees {
		return nil
	}
	return []model.Signal{{
		Type:        "optimal_company_size",
		Description: fmt.Sprintf("Optimal size: %d employees", n),
		Score:       s.cfg.OptimalSizePoints,
		Confidence:  0.9,
		Source:      "enrichment",
	}}
}

func (s *Scorer) marketSignal(c *model.Company) []model.Signal {
	if c.Enrichment == nil || c.Enrichment.Location == "" {
		return nil
	}
	loc := c.Enrichment.Location
	if matchKeywords(s.cfg.PrimaryMarkets, loc) {
		return []model.Signal{{
			Type:        "target_market_primary",
			Description: fmt.Sprintf("Located in primary market: %s", loc),
			Score:       s.cfg.PrimaryMarketPoints,
			Confidence:  0.95,
			Source:      "location",
		}}
	}
	if matchKeywords(s.cfg.SecondaryMarkets, loc) {
		return []model.Signal{{
			Type:        "target_market_secondary",
			Description: fmt.Sprintf("Located in secondary market: %s", loc),
			Score:       s.cfg.SecondaryMarketPoints,
			Confidence:  0.85,
			Source:      "location",
		}}
	}
	return nil
}

func (s *Scorer) industrySignal(c *model.Company) []model.Signal {
	if c.Enrichment == nil || c.Enrichment.Industry == "" {
		return nil
	}
	if !matchKeywords(s.cfg.HighValueIndustries, c.Enrichment.Industry) {
		return nil
	}
	return []model.Signal{{
		Type:        "high_value_industry",
		Description: fmt.Sprintf("High-value industry: %s", c.Enrichment.Industry),
		Score:       s.cfg.IndustryPoints,
		Confidence:  0.8,
		Source:      "enrichment",
	}}
}

func (s *Scorer) contactSignal(c *model.Company) []model.Signal {
	if len(c.Contacts) == 0 {
		return nil
	}
	verified := 0
	for _, ct := range c.Contacts {
		if ct.Confidence > s.cfg.ContactConfidenceThreshold {
			verified++
		}
	}
	if verified > 0 {
		return []model.Signal{{
			Type:        "high_quality_contacts",
			Description: fmt.Sprintf("%d high-confidence contact(s) available", verified),
			Score:       s.cfg.VerifiedContactPoints,
			Confidence:  0.9,
			Source:      "contacts",
		}}
	}
	return []model.Signal{{
		Type:        "contacts_available",
		Description: fmt.Sprintf("%d contact(s) available", len(c.Contacts)),
		Score:       s.cfg.ContactPoints,
		Confidence:  0.7,
		Source:      "contacts",
	}}
}

// matchKeywords reports whether any keyword appears in any of the texts,
// case-insensitive.
func matchKeywords(keywords []string, texts ...string) bool {
	for _, text := range texts {
		lowered := strings.ToLower(text)
		for _, kw := range keywords {
			if strings.Contains(lowered, strings.ToLower(kw)) {
				return true
			}
		}
	}
	return false
}

func excerpt(text string, n int) string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) <= n {
		return string(runes)
	}
	return string(runes[:n]) + "..."
}
