package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regsync-labs/regsync-cli/internal/core/domain"
)

// newDirectoryServer serves a canned agency directory and counts hits.
func newDirectoryServer(t *testing.T, hits *int) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc(agenciesPath, func(w http.ResponseWriter, _ *http.Request) {
		*hits++
		agencies := []apiAgency{
			{Name: "Environmental Protection Agency", ShortName: "EPA", RecentArticlesURL: "https://register.test/epa"},
			{Name: "Food and Drug Administration", ShortName: "FDA", RecentArticlesURL: "https://register.test/fda"},
			{Name: "Administrative Conference of the United States", ShortName: "", RecentArticlesURL: "https://register.test/acus"},
		}
		require.NoError(t, json.NewEncoder(w).Encode(agencies))
	})
	return httptest.NewServer(mux)
}

func fastSource(baseURL string) *Source {
	src := NewSource(Config{
		BaseURL:   baseURL,
		RateLimit: RateLimitConfig{RequestsPerSecond: 10000, BurstSize: 100},
	})
	src.client.retryDelay = time.Millisecond
	return src
}

func TestResolveAgency_MatchesShortName(t *testing.T) {
	var hits int
	srv := newDirectoryServer(t, &hits)
	defer srv.Close()

	src := fastSource(srv.URL)
	ref, err := src.ResolveAgency(context.Background(), "epa")
	require.NoError(t, err)

	assert.Equal(t, "EPA", ref.Slug)
	assert.Equal(t, "Environmental Protection Agency", ref.Name)
	assert.Equal(t, "https://register.test/epa", ref.DocumentsURL)
}

func TestResolveAgency_MatchesFullName(t *testing.T) {
	var hits int
	srv := newDirectoryServer(t, &hits)
	defer srv.Close()

	src := fastSource(srv.URL)
	ref, err := src.ResolveAgency(context.Background(), "food and drug administration")
	require.NoError(t, err)
	assert.Equal(t, "FDA", ref.Slug)
}

func TestResolveAgency_NoShortNameFallsBackToName(t *testing.T) {
	var hits int
	srv := newDirectoryServer(t, &hits)
	defer srv.Close()

	src := fastSource(srv.URL)
	ref, err := src.ResolveAgency(context.Background(), "Administrative Conference of the United States")
	require.NoError(t, err)
	assert.Equal(t, "Administrative Conference of the United States", ref.Slug)
}

func TestResolveAgency_Unknown(t *testing.T) {
	var hits int
	srv := newDirectoryServer(t, &hits)
	defer srv.Close()

	src := fastSource(srv.URL)
	_, err := src.ResolveAgency(context.Background(), "Ministry of Silly Walks")
	assert.ErrorIs(t, err, domain.ErrUnknownAgency)
}

func TestResolveAgency_DirectoryFetchedOnce(t *testing.T) {
	var hits int
	srv := newDirectoryServer(t, &hits)
	defer srv.Close()

	src := fastSource(srv.URL)
	_, err := src.ResolveAgency(context.Background(), "EPA")
	require.NoError(t, err)
	_, err = src.ResolveAgency(context.Background(), "FDA")
	require.NoError(t, err)

	assert.Equal(t, 1, hits, "directory must be cached per source")
}

func TestListNotices_MapsFieldsAndPaginates(t *testing.T) {
	var srvURL string
	mux := http.NewServeMux()
	mux.HandleFunc("/docs", func(w http.ResponseWriter, _ *http.Request) {
		page := documentsPage{
			Results: []apiDocument{
				{
					DocumentNumber:  "2024-00002",
					Title:           "Newer Notice",
					Abstract:        "Second abstract",
					PublicationDate: "2024-02-01",
					PDFURL:          "https://register.test/2024-00002.pdf",
				},
			},
			NextPageURL: srvURL + "/docs-2",
		}
		require.NoError(t, json.NewEncoder(w).Encode(page))
	})
	mux.HandleFunc("/docs-2", func(w http.ResponseWriter, _ *http.Request) {
		page := documentsPage{
			Results: []apiDocument{
				{
					DocumentNumber:  "2024-00001",
					Title:           "Older Notice",
					Abstract:        "First abstract",
					PublicationDate: "2024-01-01",
					PDFURL:          "https://register.test/2024-00001.pdf",
				},
			},
		}
		require.NoError(t, json.NewEncoder(w).Encode(page))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()
	srvURL = srv.URL

	src := fastSource(srv.URL)
	ctx := context.Background()

	notices, next, err := src.ListNotices(ctx, srv.URL+"/docs")
	require.NoError(t, err)
	require.Len(t, notices, 1)
	assert.Equal(t, "2024-00002", notices[0].DocumentNumber)
	assert.Equal(t, "Newer Notice", notices[0].Title)
	assert.Equal(t, "Second abstract", notices[0].Abstract)
	assert.Equal(t, "2024-02-01", notices[0].PublicationDate)
	assert.Equal(t, "https://register.test/2024-00002.pdf", notices[0].DocumentURL)
	assert.Equal(t, srv.URL+"/docs-2", next)

	notices, next, err = src.ListNotices(ctx, next)
	require.NoError(t, err)
	require.Len(t, notices, 1)
	assert.Equal(t, "2024-00001", notices[0].DocumentNumber)
	assert.Empty(t, next, "last page has no next_page_url")
}

func TestFetchDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/doc.pdf" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4 fake"))
	}))
	defer srv.Close()

	src := fastSource(srv.URL)
	ctx := context.Background()

	data, err := src.FetchDocument(ctx, srv.URL+"/doc.pdf")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4 fake"), data)

	_, err = src.FetchDocument(ctx, srv.URL+"/missing.pdf")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClient_RetriesTransientErrors(t *testing.T) {
	var attempts int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		if attempts <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `{"ok":true}`)
	}))
	defer srv.Close()

	src := fastSource(srv.URL)
	data, err := src.client.get(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(data))
	assert.Equal(t, 3, attempts)
}

func TestClient_ExhaustsRetries(t *testing.T) {
	var attempts int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	src := fastSource(srv.URL)
	_, err := src.client.get(context.Background(), srv.URL)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, 1+MaxRetries, attempts)
}

func TestClient_NoRetryOnClientError(t *testing.T) {
	var attempts int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	src := fastSource(srv.URL)
	_, err := src.client.get(context.Background(), srv.URL)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, 1, attempts)
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(&APIError{StatusCode: 500}))
	assert.True(t, IsRetryable(&APIError{StatusCode: 503}))
	assert.True(t, IsRetryable(&APIError{StatusCode: 429}))
	assert.False(t, IsRetryable(&APIError{StatusCode: 404}))
	assert.False(t, IsRetryable(&APIError{StatusCode: 400}))
	assert.False(t, IsRetryable(fmt.Errorf("plain error")))
}
