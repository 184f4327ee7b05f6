package source

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadgen-cli/internal/config"
	"github.com/sells-group/leadgen-cli/internal/model"
)

func testFetcher() *fetcher {
	return newFetcher(fetcherOptions{MaxRetries: 1})
}

func TestRedditProviderFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/token":
			assert.Equal(t, http.MethodPost, r.Method)
			fmt.Fprint(w, `{"access_token":"tok123","expires_in":3600}`)
		case "/r/smallbusiness/search":
			assert.Equal(t, "Bearer tok123", r.Header.Get("Authorization"))
			assert.Equal(t, "hvac repair", r.URL.Query().Get("q"))
			fmt.Fprint(w, `{"data":{"children":[
				{"data":{"title":"Need urgently an HVAC company in Toronto, budget $8000","selftext":"Looking for recommendations, we want this done soon","score":45,"num_comments":12,"permalink":"/r/smallbusiness/1","created_utc":1700000000}},
				{"data":{"title":"short","selftext":"","score":1,"num_comments":0,"permalink":"/r/smallbusiness/2","created_utc":1700000000}}
			]}}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	p := NewRedditProvider(config.RedditConfig{
		ClientID:     "id",
		ClientSecret: "secret",
		Subreddits:   []string{"smallbusiness"},
		BaseURL:      srv.URL,
		AuthURL:      srv.URL + "/token",
	}, testFetcher())

	got, err := p.Fetch(context.Background(), "hvac repair")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, model.SourceForumPost, got[0].Source)
	assert.Contains(t, got[0].Text, "HVAC company in Toronto")
	assert.Equal(t, 12, got[0].Engagement.Comments)
	assert.Equal(t, "https://reddit.com/r/smallbusiness/1", got[0].URL)
}

func TestRedditProviderMissingCredentials(t *testing.T) {
	p := NewRedditProvider(config.RedditConfig{Subreddits: []string{"business"}}, testFetcher())
	_, err := p.Fetch(context.Background(), "anything")
	assert.Error(t, err)
}

func TestNewsProviderFiltersThinArticles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/everything", r.URL.Path)
		fmt.Fprint(w, `{"articles":[
			{"title":"TechFlow Solutions Inc raises new funding for expansion","description":"The Toronto company closed a Series A to grow its field service business across Canada.","url":"https://news.example/1","publishedAt":"2026-08-01T10:00:00Z"},
			{"title":"short","description":"too thin","url":"https://news.example/2","publishedAt":"2026-08-02T10:00:00Z"},
			{"title":"A headline about weather patterns this week in July","description":"Nothing relating to commerce here at all, only meteorology and forecasts for the coming days.","url":"https://news.example/3","publishedAt":"2026-08-03T10:00:00Z"}
		]}`)
	}))
	defer srv.Close()

	p := NewNewsProvider(config.NewsAPIConfig{Key: "k", BaseURL: srv.URL}, testFetcher())

	got, err := p.Fetch(context.Background(), "field service")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, model.SourceNewsArticle, got[0].Source)
	assert.Contains(t, got[0].Text, "TechFlow Solutions Inc")
}

func TestTwitterProviderMapsEngagement(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer btok", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"data":[
			{"text":"Excited to share our startup CloudNine just launched its new platform for contractors!","created_at":"2026-08-10T12:00:00Z","public_metrics":{"like_count":10,"retweet_count":3,"reply_count":4}},
			{"text":"rt @someone: company stuff being reshared here with plenty of extra words to pass length","created_at":"2026-08-10T12:00:00Z","public_metrics":{"like_count":50,"retweet_count":9,"reply_count":0}}
		]}`)
	}))
	defer srv.Close()

	p := NewTwitterProvider(config.TwitterConfig{BearerToken: "btok", BaseURL: srv.URL}, testFetcher())

	got, err := p.Fetch(context.Background(), "contractor software")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, model.SourceSocialPost, got[0].Source)
	assert.Equal(t, 10, got[0].Engagement.Likes)
	assert.Equal(t, 3, got[0].Engagement.Shares)
	assert.Equal(t, 33, got[0].Engagement.Weighted())
}

func TestHackerNewsProviderFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "story", r.URL.Query().Get("tags"))
		fmt.Fprint(w, `{"hits":[
			{"title":"Show HN: DataFlow, an open source saas for pipeline monitoring","url":"https://hn.example/1","points":120,"num_comments":45,"created_at":"2026-08-05T08:00:00Z"},
			{"title":"A pointless rant","url":"https://hn.example/2","points":50,"num_comments":10,"created_at":"2026-08-05T09:00:00Z"}
		]}`)
	}))
	defer srv.Close()

	p := NewHackerNewsProvider(config.EndpointConfig{Enabled: true, BaseURL: srv.URL}, testFetcher())

	got, err := p.Fetch(context.Background(), "pipeline monitoring")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, model.SourceTechStory, got[0].Source)
	assert.Equal(t, 120, got[0].Engagement.Score)
}

func TestSECProviderCleansDisplayNames(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"hits":{"hits":[
			{"_id":"abc","_source":{"display_names":["Acme Corp  (ACME)  (CIK 0001234567)"],"file_type":"8-K","file_date":"2026-07-15"}}
		]}}`)
	}))
	defer srv.Close()

	p := NewSECProvider(config.EndpointConfig{Enabled: true, BaseURL: srv.URL}, testFetcher())

	got, err := p.Fetch(context.Background(), "acme")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, model.SourceFiling, got[0].Source)
	assert.Equal(t, "Acme Corp filed 8-K with the SEC", got[0].Text)
	assert.Equal(t, "2026-07-15", got[0].Timestamp.Format("2006-01-02"))
}

func TestDataGovProviderFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/action/package_search", r.URL.Path)
		fmt.Fprint(w, `{"result":{"results":[
			{"title":"Small Business Lending Statistics by Province","notes":"Quarterly lending volumes","name":"sb-lending"},
			{"title":"tiny","notes":"","name":"tiny"}
		]}}`)
	}))
	defer srv.Close()

	p := NewDataGovProvider(config.EndpointConfig{Enabled: true, BaseURL: srv.URL}, testFetcher())

	got, err := p.Fetch(context.Background(), "small business lending")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, model.SourceDataset, got[0].Source)
	assert.Contains(t, got[0].URL, "sb-lending")
}

func TestBuildProvidersSkipsUnconfigured(t *testing.T) {
	cfg := config.SourcesConfig{
		HackerNews: config.EndpointConfig{Enabled: true, BaseURL: "https://hn.algolia.com/api/v1"},
		SEC:        config.EndpointConfig{Enabled: false},
	}

	providers := BuildProviders(cfg)

	types := make(map[model.SourceType]bool)
	for _, p := range providers {
		types[p.Type()] = true
	}
	assert.True(t, types[model.SourceTechStory])
	assert.True(t, types[model.SourceNewsArticle], "news registers even without a key via rss fallback")
	assert.False(t, types[model.SourceForumPost])
	assert.False(t, types[model.SourceFiling])
}
