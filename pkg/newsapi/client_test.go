package newsapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/samvad-hq/vernacular-news/internal/domain"
	"github.com/samvad-hq/vernacular-news/pkg/httpclient"
)

const sampleResponse = `{
  "status": "ok",
  "totalResults": 2,
  "articles": [
    {"source": {"id": null, "name": "The Hindu"}, "title": "Monsoon arrives", "description": "Rain in Kerala", "url": "https://example.com/1", "urlToImage": "https://example.com/1.jpg", "publishedAt": "2024-06-01T10:00:00Z"},
    {"source": null, "title": "Budget", "description": null, "url": "https://example.com/2", "urlToImage": null}
  ]
}`

func TestSearchDecodesArticlesInOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if got := r.URL.Query().Get("q"); got != "india sports" {
			t.Errorf("q = %q", got)
		}
		if got := r.URL.Query().Get("pageSize"); got != "20" {
			t.Errorf("pageSize = %q", got)
		}
		if r.URL.Query().Get("apiKey") != "" {
			t.Errorf("api key must not travel in the query string")
		}
		if got := r.Header.Get(apiKeyHeader); got != "secret" {
			t.Errorf("%s = %q", apiKeyHeader, got)
		}
		_, _ = w.Write([]byte(sampleResponse))
	}))
	defer srv.Close()

	client := New(httpclient.NewRestyClient(0), srv.URL, "secret", WithPageSize(20))
	articles, err := client.Search(context.Background(), Query{Topic: "india", Category: domain.CategorySports})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}
	if articles[0].Title != "Monsoon arrives" || articles[0].SourceName() != "The Hindu" {
		t.Fatalf("unexpected first article %+v", articles[0])
	}
	if articles[1].Source != nil || articles[1].Description != "" || articles[1].URLToImage != "" {
		t.Fatalf("null fields should decode to zero values, got %+v", articles[1])
	}
}

func TestSearchReturnsAPIErrorOnNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status":"error","code":"apiKeyInvalid","message":"Your API key is invalid."}`))
	}))
	defer srv.Close()

	_, err := New(httpclient.NewRestyClient(0), srv.URL, "bad").Search(context.Background(), Query{Topic: "india"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized || apiErr.Code != "apiKeyInvalid" {
		t.Fatalf("unexpected api error %+v", apiErr)
	}
}

func TestSearchHandlesPlainTextServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := New(httpclient.NewRestyClient(0), srv.URL, "k").Search(context.Background(), Query{Topic: "india"})
	if err == nil || !strings.Contains(err.Error(), "status 500") {
		t.Fatalf("expected status 500 error, got %v", err)
	}
}

func TestSearchEmptyResultsYieldEmptySlice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok","totalResults":0}`))
	}))
	defer srv.Close()

	articles, err := New(httpclient.NewRestyClient(0), srv.URL, "k").Search(context.Background(), Query{Topic: "india"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if articles == nil || len(articles) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", articles)
	}
}

func TestSearchTerm(t *testing.T) {
	cases := []struct {
		q    Query
		want string
	}{
		{Query{Topic: "india", Category: domain.CategoryGeneral}, "india"},
		{Query{Topic: "india"}, "india"},
		{Query{Topic: "india", Category: domain.CategoryHealth}, "india health"},
		{Query{Category: domain.CategoryScience}, "science"},
	}
	for _, tc := range cases {
		if got := tc.q.SearchTerm(); got != tc.want {
			t.Errorf("SearchTerm(%+v) = %q, want %q", tc.q, got, tc.want)
		}
	}
}
