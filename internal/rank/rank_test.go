package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadgen-cli/internal/config"
	"github.com/sells-group/leadgen-cli/internal/model"
)

func newRanker(maxResults int) *Ranker {
	return New(
		config.PipelineConfig{MaxResults: maxResults},
		config.ScoringConfig{ContactConfidenceThreshold: 90},
	)
}

func TestRankDropsZeroScores(t *testing.T) {
	companies := []*model.Company{
		{Name: "A", IntentScore: 0},
		{Name: "B", IntentScore: 30, ConfidenceScore: 60},
	}

	got := newRanker(15).Rank(companies)

	require.Len(t, got, 1)
	assert.Equal(t, "B", got[0].Name)
}

func TestRankContactBeatsPureIntent(t *testing.T) {
	highIntent := &model.Company{
		Name: "NoContact", IntentScore: 70, ConfidenceScore: 80,
		Signals: make([]model.Signal, 3),
	}
	actionable := &model.Company{
		Name: "WithContact", IntentScore: 60, ConfidenceScore: 80,
		Signals:  make([]model.Signal, 3),
		Contacts: []model.Contact{{Email: "a@b.com", Confidence: 95}},
	}

	got := newRanker(15).Rank([]*model.Company{highIntent, actionable})

	require.Len(t, got, 2)
	assert.Equal(t, "WithContact", got[0].Name)
}

func TestRankDescendingOrderInvariant(t *testing.T) {
	companies := []*model.Company{
		{Name: "A", IntentScore: 20, ConfidenceScore: 60},
		{Name: "B", IntentScore: 90, ConfidenceScore: 90, Enrichment: &model.Enrichment{Employees: 50}},
		{Name: "C", IntentScore: 50, ConfidenceScore: 70, Contacts: []model.Contact{{Email: "x@y.com", Confidence: 50}}},
	}

	got := newRanker(15).Rank(companies)

	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].RankScore, got[i].RankScore)
	}
}

func TestRankTiesBreakByDiscoveryOrder(t *testing.T) {
	a := &model.Company{Name: "First", IntentScore: 40, ConfidenceScore: 80, Order: 0}
	b := &model.Company{Name: "Second", IntentScore: 40, ConfidenceScore: 80, Order: 1}

	got := newRanker(15).Rank([]*model.Company{b, a})

	require.Len(t, got, 2)
	assert.Equal(t, "First", got[0].Name)
}

func TestRankTruncates(t *testing.T) {
	var companies []*model.Company
	for i := 0; i < 20; i++ {
		companies = append(companies, &model.Company{IntentScore: 10 + i, Order: i})
	}

	got := newRanker(15).Rank(companies)

	assert.Len(t, got, 15)
	assert.Equal(t, 29, got[0].IntentScore)
}

func TestRankEnrichmentBonuses(t *testing.T) {
	c := &model.Company{
		IntentScore:     50,
		ConfidenceScore: 80,
		Enrichment:      &model.Enrichment{Employees: 100, AnnualRevenue: 5_000_000},
	}

	got := newRanker(15).Rank([]*model.Company{c})

	require.Len(t, got, 1)
	// 0.4*50 + 0.1*80 + 0 signals + (20 + 5 + 5)
	assert.InDelta(t, 58.0, got[0].RankScore, 0.001)
}
