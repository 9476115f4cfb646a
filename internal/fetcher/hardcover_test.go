// file: internal/fetcher/hardcover_test.go
// version: 1.0.0
// guid: 2e8c33af-6dd7-4aa4-b33d-6ea656776b80

package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHardcoverTestServer(t *testing.T) *HardcoverFetcher {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var req graphqlRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		switch {
		case strings.Contains(req.Query, "ValidateList"):
			fmt.Fprint(w, `{"data": {"lists": [{"id": 7, "name": "SF Classics", "books_count": 2}]}}`)
		case strings.Contains(req.Query, "ListBooks"):
			fmt.Fprint(w, `{"data": {"list_books": [
				{"id": 1, "date_added": "2024-03-01", "book": {
					"id": 101, "title": "Dune", "release_year": 1965, "pages": 412,
					"rating": 4.3, "description": "Spice.", "cached_image": "https://img/101.jpg",
					"contributions": [{"author": {"name": "Frank Herbert"}}]
				}}
			]}}`)
		default:
			fmt.Fprint(w, `{"errors": [{"message": "unknown query"}]}`)
		}
	}))
	t.Cleanup(srv.Close)

	f := NewHardcoverFetcher(func() string { return "test-token" })
	f.apiURL = srv.URL
	return f
}

func TestHardcoverValidateConfig(t *testing.T) {
	f := newHardcoverTestServer(t)

	result := f.ValidateConfig(context.Background(), Config{"list_id": "7"})
	assert.True(t, result.Valid, result.Error)

	result = f.ValidateConfig(context.Background(), Config{"list_id": "abc"})
	assert.False(t, result.Valid)

	result = f.ValidateConfig(context.Background(), Config{})
	assert.False(t, result.Valid)
}

func TestHardcoverFetchBooks(t *testing.T) {
	f := newHardcoverTestServer(t)

	result, err := f.FetchBooks(context.Background(), Config{"list_id": "7"}, 1)
	require.NoError(t, err)
	require.Len(t, result.Books, 1)

	dune := result.Books[0]
	assert.Equal(t, "Dune", dune.Title)
	assert.Equal(t, "Frank Herbert", dune.Author)
	assert.Equal(t, "101", dune.SourceBookID)
	assert.Equal(t, "hardcover:101", dune.Hash)
	assert.Equal(t, 1965, dune.PublishedYear)
	assert.False(t, dune.AddedAt.IsZero())

	// One row against a page size of 50: last page.
	assert.False(t, result.HasMore)
}

func TestHardcoverGraphQLError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"errors": [{"message": "field not found"}]}`)
	}))
	defer srv.Close()

	f := NewHardcoverFetcher(func() string { return "test-token" })
	f.apiURL = srv.URL

	result := f.ValidateConfig(context.Background(), Config{"list_id": "7"})
	assert.False(t, result.Valid)
	assert.Contains(t, result.Error, "field not found")
}
