package model

// DiscoverySourceBackfill tags placeholder companies synthesized from the
// query term when extraction produced too little evidence.
const DiscoverySourceBackfill = "market_research"

// Contact is one candidate outreach contact for a company.
type Contact struct {
	Email      string `json:"email"`
	FirstName  string `json:"first_name,omitempty"`
	LastName   string `json:"last_name,omitempty"`
	Role       string `json:"role,omitempty"`
	Confidence int    `json:"confidence"` // 0-100
	Source     string `json:"source"`
}

// Enrichment holds third-party firmographic data keyed by company domain.
type Enrichment struct {
	Employees     int     `json:"employees,omitempty"`
	RaisedUSD     float64 `json:"raised_usd,omitempty"`
	AnnualRevenue float64 `json:"annual_revenue,omitempty"`
	FoundedYear   int     `json:"founded_year,omitempty"`
	Industry      string  `json:"industry,omitempty"`
	Location      string  `json:"location,omitempty"`
}

// Signal is one itemized, weighted contribution to a company's intent score.
// Score values come from the configured weight table, never invented per record.
type Signal struct {
	Type        string  `json:"type"`
	Description string  `json:"description"`
	Score       int     `json:"score"`
	Confidence  float64 `json:"confidence"`
	Source      string  `json:"source,omitempty"`
	URL         string  `json:"url,omitempty"`
}

// Company is the merged, scored output entity. Created during merge when a
// normalized name is first seen; mention counts and signals accumulate as
// later candidates arrive. Never deleted within a run, only filtered from
// the final output when it scores zero.
type Company struct {
	Name             string                       `json:"name"`
	Website          string                       `json:"website"`
	Description      string                       `json:"description,omitempty"`
	DiscoverySource  string                       `json:"discovery_source"`
	DiscoveryContext string                       `json:"discovery_context,omitempty"`
	Mentions         map[SourceType][]*RawMention `json:"mentions,omitempty"`
	MentionCounts    map[SourceType]int           `json:"mention_counts"`
	Enrichment       *Enrichment                  `json:"enrichment,omitempty"`
	Contacts         []Contact                    `json:"contacts,omitempty"`
	IntentScore      int                          `json:"intent_score"`
	ConfidenceScore  int                          `json:"confidence_score"`
	Signals          []Signal                     `json:"signals"`

	// RankScore orders the final output; it is never shown to callers.
	RankScore float64 `json:"-"`
	// Order is the discovery position, used as the final ranking tiebreak.
	Order int `json:"-"`
}

// MentionCount returns the number of mentions from one source.
func (c *Company) MentionCount(src SourceType) int {
	if c.MentionCounts == nil {
		return 0
	}
	return c.MentionCounts[src]
}

// TotalMentions sums mention counts across all sources.
func (c *Company) TotalMentions() int {
	n := 0
	for _, v := range c.MentionCounts {
		n += v
	}
	return n
}

// HasVerifiedContact reports whether any contact exceeds the given
// confidence threshold (0-100 scale).
func (c *Company) HasVerifiedContact(threshold int) bool {
	for _, ct := range c.Contacts {
		if ct.Confidence > threshold {
			return true
		}
	}
	return false
}
