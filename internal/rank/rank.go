// Package rank orders scored companies by a composite of intent and
// actionability. Intent alone ignores whether a lead can actually be
// worked: a verified contact path and enrichment data both raise the
// rank of a slightly lower-intent company.
package rank

import (
	"sort"

	"github.com/sells-group/leadgen-cli/internal/config"
	"github.com/sells-group/leadgen-cli/internal/model"
)

// Ranker filters, orders, and truncates scored companies.
type Ranker struct {
	maxResults         int
	contactThreshold   int
	intentWeight       float64
	confidenceWeight   float64
	signalCap          float64
	signalPoints       float64
	contactBase        float64
	contactPerVerified float64
	enrichmentBase     float64
	enrichmentPerField float64
}

// New returns a Ranker with the canonical composite weights.
func New(pipeline config.PipelineConfig, scoring config.ScoringConfig) *Ranker {
	return &Ranker{
		maxResults:         pipeline.MaxResults,
		contactThreshold:   scoring.ContactConfidenceThreshold,
		intentWeight:       0.4,
		confidenceWeight:   0.1,
		signalCap:          10,
		signalPoints:       2,
		contactBase:        25,
		contactPerVerified: 5,
		enrichmentBase:     20,
		enrichmentPerField: 5,
	}
}

// Rank drops zero-score companies, sorts the rest by descending rank
// score, and truncates to the result budget. Ties break by descending
// intent score, then by discovery order; the sort is stable so equal
// companies keep their input order.
func (r *Ranker) Rank(companies []*model.Company) []*model.Company {
	out := make([]*model.Company, 0, len(companies))
	for _, c := range companies {
		if c.IntentScore == 0 {
			continue
		}
		c.RankScore = r.score(c)
		out = append(out, c)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.RankScore != b.RankScore {
			return a.RankScore > b.RankScore
		}
		if a.IntentScore != b.IntentScore {
			return a.IntentScore > b.IntentScore
		}
		return a.Order < b.Order
	})

	if r.maxResults > 0 && len(out) > r.maxResults {
		out = out[:r.maxResults]
	}
	return out
}

func (r *Ranker) score(c *model.Company) float64 {
	score := r.intentWeight*float64(c.IntentScore) + r.confidenceWeight*float64(c.ConfidenceScore)

	signalPoints := r.signalPoints * float64(len(c.Signals))
	if signalPoints > r.signalCap {
		signalPoints = r.signalCap
	}
	score += signalPoints

	if len(c.Contacts) > 0 {
		verified := 0
		for _, ct := range c.Contacts {
			if ct.Confidence > r.contactThreshold {
				verified++
			}
		}
		score += r.contactBase + r.contactPerVerified*float64(verified)
	}

	if c.Enrichment != nil {
		score += r.enrichmentBase
		if c.Enrichment.AnnualRevenue > 0 {
			score += r.enrichmentPerField
		}
		if c.Enrichment.Employees > 0 {
			score += r.enrichmentPerField
		}
	}

	return score
}
