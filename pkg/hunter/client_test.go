package hunter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainSearch_Success(t *testing.T) {
	t.Parallel()

	want := DomainSearchResult{
		Domain:       "techflowsolutions.com",
		Organization: "TechFlow Solutions",
		Country:      "US",
		Pattern:      "{first}.{last}",
		Emails: []Email{
			{
				Value:      "sam.rivera@techflowsolutions.com",
				Type:       "personal",
				Confidence: 94,
				FirstName:  "Sam",
				LastName:   "Rivera",
				Position:   "VP of Operations",
				Seniority:  "executive",
			},
		},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/domain-search", r.URL.Path)
		assert.Equal(t, "techflowsolutions.com", r.URL.Query().Get("domain"))
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"data": want})
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	got, err := client.DomainSearch(context.Background(), "techflowsolutions.com", 5)

	require.NoError(t, err)
	assert.Equal(t, want.Organization, got.Organization)
	require.Len(t, got.Emails, 1)
	assert.Equal(t, "sam.rivera@techflowsolutions.com", got.Emails[0].Value)
	assert.Equal(t, 94, got.Emails[0].Confidence)
	assert.Equal(t, "VP of Operations", got.Emails[0].Position)
}

func TestDomainSearch_HTTPError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"errors":[{"details":"rate limit exceeded"}]}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := client.DomainSearch(context.Background(), "techflowsolutions.com", 5)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestDomainSearch_MalformedJSON(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := client.DomainSearch(context.Background(), "techflowsolutions.com", 5)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal")
}

func TestDomainSearch_ContextCanceled(t *testing.T) {
	t.Parallel()

	client := NewClient("test-key")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.DomainSearch(ctx, "techflowsolutions.com", 5)
	require.Error(t, err)
}
