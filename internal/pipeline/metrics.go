package pipeline

import (
	"math"

	"github.com/sells-group/leadgen-cli/internal/model"
)

// Summarize derives the per-run aggregate metrics from the raw source
// collections and the final scored companies. Pure and total: empty or
// absent collections count as zero, an empty company list yields the
// no_data tier, and nothing here can fail.
func Summarize(collections map[model.SourceType][]model.RawMention, companies []*model.Company, highIntentMin, contactThreshold int) model.AggregateMetrics {
	m := model.AggregateMetrics{
		TotalSources: len(model.AllSources()),
	}

	for _, src := range model.AllSources() {
		n := len(collections[src])
		if n > 0 {
			m.SourcesWithData++
		}
		m.TotalDataPoints += n
	}

	m.CompaniesFound = len(companies)
	if len(companies) == 0 {
		m.DataQuality = model.QualityNoData
		return m
	}

	intentSum, confSum := 0, 0
	for _, c := range companies {
		intentSum += c.IntentScore
		confSum += c.ConfidenceScore
		if len(c.Contacts) > 0 {
			m.CompaniesWithContacts++
		}
		if c.HasVerifiedContact(contactThreshold) {
			m.CompaniesWithVerifiedContacts++
		}
		if c.IntentScore >= highIntentMin {
			m.CompaniesHighIntent++
		}
		if c.Enrichment != nil {
			m.CompaniesEnriched++
		}
	}

	total := float64(len(companies))
	m.AvgIntentScore = int(math.Round(float64(intentSum) / total))
	m.AvgConfidence = int(math.Round(float64(confSum) / total))

	contactRate := float64(m.CompaniesWithContacts) / total
	highIntentRate := float64(m.CompaniesHighIntent) / total
	enrichmentRate := float64(m.CompaniesEnriched) / total
	m.DataQuality = qualityTier((contactRate + highIntentRate + enrichmentRate) / 3)

	return m
}

func qualityTier(avg float64) model.DataQuality {
	switch {
	case avg >= 0.7:
		return model.QualityHigh
	case avg >= 0.4:
		return model.QualityMedium
	case avg >= 0.2:
		return model.QualityLow
	default:
		return model.QualityVeryLow
	}
}
