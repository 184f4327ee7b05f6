package model

import "time"

// DataQuality grades how much of the run's output is backed by contacts,
// high intent, and enrichment.
type DataQuality string

const (
	QualityHigh    DataQuality = "high"
	QualityMedium  DataQuality = "medium"
	QualityLow     DataQuality = "low"
	QualityVeryLow DataQuality = "very_low"
	QualityNoData  DataQuality = "no_data"
)

// AggregateMetrics is the per-run summary. Derived, never persisted.
type AggregateMetrics struct {
	TotalSources                  int         `json:"total_sources"`
	SourcesWithData               int         `json:"sources_with_data"`
	TotalDataPoints               int         `json:"total_data_points"`
	CompaniesFound                int         `json:"companies_found"`
	CompaniesWithContacts         int         `json:"companies_with_contacts"`
	CompaniesWithVerifiedContacts int         `json:"companies_with_verified_contacts"`
	CompaniesHighIntent           int         `json:"companies_high_intent"`
	CompaniesEnriched             int         `json:"companies_enriched"`
	AvgIntentScore                int         `json:"avg_intent_score"`
	AvgConfidence                 int         `json:"avg_confidence"`
	DataQuality                   DataQuality `json:"data_quality"`
}

// Result is the full pipeline output for one query.
type Result struct {
	Query       string             `json:"query"`
	Companies   []Company          `json:"companies"`
	Sources     map[SourceType]int `json:"sources"` // items fetched per source
	Metrics     AggregateMetrics   `json:"metrics"`
	Analysis    string             `json:"analysis,omitempty"`
	GeneratedAt time.Time          `json:"generated_at"`
}
