package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadgen-cli/internal/config"
	"github.com/sells-group/leadgen-cli/internal/model"
)

func testGate() config.GateConfig {
	return config.GateConfig{
		ForumIntentMin:      6,
		NewsMentionsMin:     2,
		SocialEngagementMin: 20,
		BackfillBelow:       2,
		BackfillCount:       3,
	}
}

func TestMergeFoldsByNormalizedName(t *testing.T) {
	collections := map[model.SourceType][]model.RawMention{
		model.SourceNewsArticle: {
			{Source: model.SourceNewsArticle, Text: "DataFlow Systems raised a Series A"},
			{Source: model.SourceNewsArticle, Text: "Dataflow Systems expands to Toronto"},
		},
	}

	got := New(testGate()).Merge("data pipelines", collections)

	require.Len(t, got, 1)
	c := got[0]
	assert.Equal(t, "DataFlow Systems", c.Name, "first-seen surface form wins")
	assert.Equal(t, 2, c.MentionCount(model.SourceNewsArticle))
	assert.Equal(t, string(model.SourceNewsArticle), c.DiscoverySource)
}

func TestMergeGateSuppressesSingletons(t *testing.T) {
	collections := map[model.SourceType][]model.RawMention{
		model.SourceNewsArticle: {
			{Source: model.SourceNewsArticle, Text: "BrightPath Consulting opens a new office"},
		},
	}

	got := New(testGate()).Merge("", collections)

	for _, c := range got {
		assert.NotEqual(t, "BrightPath Consulting", c.Name)
	}
}

func TestMergeForumBudgetQualifies(t *testing.T) {
	collections := map[model.SourceType][]model.RawMention{
		model.SourceForumPost: {
			{Source: model.SourceForumPost, Text: "BrightPath Consulting quoted us, sharing since we have a $10k budget"},
		},
	}

	got := New(testGate()).Merge("", collections)

	require.NotEmpty(t, got)
	assert.Equal(t, "BrightPath Consulting", got[0].Name)
}

func TestMergeSocialEngagementQualifies(t *testing.T) {
	collections := map[model.SourceType][]model.RawMention{
		model.SourceSocialPost: {
			{
				Source:     model.SourceSocialPost,
				Text:       "Big shoutout to CloudNine for shipping fast",
				Engagement: model.Engagement{Likes: 15, Shares: 4},
			},
		},
	}

	got := New(testGate()).Merge("", collections)

	require.NotEmpty(t, got)
	assert.Equal(t, "CloudNine", got[0].Name)
}

func TestMergeBackfillOnNoSurvivors(t *testing.T) {
	collections := map[model.SourceType][]model.RawMention{
		model.SourceForumPost: {
			{
				Source:     model.SourceForumPost,
				Text:       "Need a physiotherapy clinic ASAP, budget $5000, Toronto",
				Engagement: model.Engagement{Comments: 12, Score: 45},
			},
		},
	}

	got := New(testGate()).Merge("physiotherapy clinic", collections)

	require.NotEmpty(t, got)
	c := got[0]
	assert.Equal(t, model.DiscoverySourceBackfill, c.DiscoverySource)
	assert.Contains(t, c.Name, "Physiotherapy Clinic")
	assert.Equal(t, 1, c.MentionCount(model.SourceForumPost), "placeholder carries the evidence")
}

func TestMergeBackfillCappedAndDeterministic(t *testing.T) {
	collections := map[model.SourceType][]model.RawMention{
		model.SourceForumPost:   {{Source: model.SourceForumPost, Text: "nothing useful here"}},
		model.SourceNewsArticle: {{Source: model.SourceNewsArticle, Text: "nothing useful here either"}},
		model.SourceSocialPost:  {{Source: model.SourceSocialPost, Text: "still nothing"}},
		model.SourceTechStory:   {{Source: model.SourceTechStory, Text: "and nothing"}},
	}

	first := New(testGate()).Merge("hvac repair", collections)
	second := New(testGate()).Merge("hvac repair", collections)

	require.Len(t, first, 3)
	for _, c := range first {
		assert.Equal(t, model.DiscoverySourceBackfill, c.DiscoverySource)
	}
	require.Len(t, second, 3)
	for i := range first {
		assert.Equal(t, first[i].Name, second[i].Name)
	}
}

func TestMergeNoEvidenceNoBackfill(t *testing.T) {
	got := New(testGate()).Merge("anything", map[model.SourceType][]model.RawMention{})
	assert.Empty(t, got)
}

func TestMergeMentionCountsMonotonic(t *testing.T) {
	collections := map[model.SourceType][]model.RawMention{
		model.SourceNewsArticle: {
			{Source: model.SourceNewsArticle, Text: "Acme Solutions Inc raised funding"},
			{Source: model.SourceNewsArticle, Text: "Acme Solutions Inc lands new investment"},
			{Source: model.SourceNewsArticle, Text: "Acme Solutions Inc hires a CFO"},
		},
	}

	got := New(testGate()).Merge("", collections)

	require.NotEmpty(t, got)
	assert.Equal(t, 3, got[0].MentionCount(model.SourceNewsArticle))
	assert.Len(t, got[0].Mentions[model.SourceNewsArticle], 3)
}
