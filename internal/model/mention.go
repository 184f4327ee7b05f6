// Package model defines the domain types shared across the pipeline:
// raw source mentions, candidate entities, merged companies, leads, and
// the per-run aggregate metrics.
package model

import "time"

// SourceType identifies which provider class a mention came from.
type SourceType string

const (
	SourceForumPost   SourceType = "forum_post"
	SourceNewsArticle SourceType = "news_article"
	SourceSocialPost  SourceType = "social_post"
	SourceTechStory   SourceType = "tech_story"
	SourceFiling      SourceType = "filing"
	SourceDataset     SourceType = "dataset"
	SourceListing     SourceType = "listing"
	SourceJobPosting  SourceType = "job_posting"
)

// AllSources returns every source type in canonical order.
func AllSources() []SourceType {
	return []SourceType{
		SourceForumPost,
		SourceNewsArticle,
		SourceSocialPost,
		SourceTechStory,
		SourceFiling,
		SourceDataset,
		SourceListing,
		SourceJobPosting,
	}
}

// Engagement holds the source-specific interaction counters of a mention.
type Engagement struct {
	Comments int `json:"comments,omitempty"`
	Score    int `json:"score,omitempty"`
	Likes    int `json:"likes,omitempty"`
	Shares   int `json:"shares,omitempty"`
}

// Weighted folds the counters into one comparable engagement number.
// Shares carry the most signal, then likes, then comments.
func (e Engagement) Weighted() int {
	return e.Likes*2 + e.Shares*3 + e.Comments
}

// RawMention is one piece of text evidence fetched from one source.
// Immutable once created; consumed by extraction and discarded after
// merge, only derived signals persist.
type RawMention struct {
	Source     SourceType `json:"source"`
	Text       string     `json:"text"` // title + body, concatenated
	Timestamp  time.Time  `json:"timestamp"`
	Engagement Engagement `json:"engagement"`
	URL        string     `json:"url,omitempty"`
}

// CandidateEntity is one company name extracted from one mention. Many
// candidates fold into a single Company during merge.
type CandidateEntity struct {
	Name           string      `json:"name"`
	InferredDomain string      `json:"inferred_domain,omitempty"`
	Mention        *RawMention `json:"-"`
	Confidence     float64     `json:"confidence"`
}
