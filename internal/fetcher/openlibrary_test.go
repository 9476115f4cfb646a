// file: internal/fetcher/openlibrary_test.go
// version: 1.0.0
// guid: 26beefe4-32b1-4623-9759-9cc9ad173d02

package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const openLibraryPageJSON = `{
	"page": 1,
	"reading_log_entries": [
		{
			"logged_date": "2024/03/01, 10:15:00",
			"work": {
				"key": "/works/OL45883W",
				"title": "The Hobbit",
				"author_names": ["J.R.R. Tolkien"],
				"first_publish_year": 1937,
				"cover_id": 21
			}
		},
		{
			"logged_date": "2024/03/02, 09:00:00",
			"work": {
				"key": "/works/OL893415W",
				"title": "Dune",
				"author_names": ["Frank Herbert"],
				"first_publish_year": 1965
			}
		}
	]
}`

func newOpenLibraryTestServer(t *testing.T) (*OpenLibraryFetcher, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/people/testuser.json":
			fmt.Fprint(w, `{"key": "/people/testuser"}`)
		case "/people/testuser/books/want-to-read.json":
			fmt.Fprint(w, openLibraryPageJSON)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	f := NewOpenLibraryFetcher()
	f.baseURL = srv.URL
	return f, srv
}

func TestOpenLibraryFetchBooks(t *testing.T) {
	f, _ := newOpenLibraryTestServer(t)

	result, err := f.FetchBooks(context.Background(), Config{"username": "testuser"}, 1)
	require.NoError(t, err)
	require.Len(t, result.Books, 2)

	hobbit := result.Books[0]
	assert.Equal(t, "The Hobbit", hobbit.Title)
	assert.Equal(t, "J.R.R. Tolkien", hobbit.Author)
	assert.Equal(t, "OL45883W", hobbit.SourceBookID)
	assert.Equal(t, "openlibrary:OL45883W", hobbit.Hash)
	assert.Equal(t, 1937, hobbit.PublishedYear)
	assert.Contains(t, hobbit.CoverURL, "covers.openlibrary.org")
	assert.False(t, hobbit.AddedAt.IsZero())

	// Two entries against a page size of 100: no further pages.
	assert.False(t, result.HasMore)
	assert.Equal(t, 0, result.NextPage)
}

func TestOpenLibraryFetchBooks_MissingUsername(t *testing.T) {
	f := NewOpenLibraryFetcher()
	_, err := f.FetchBooks(context.Background(), Config{}, 1)
	assert.Error(t, err)
}

func TestOpenLibraryValidateConfig(t *testing.T) {
	f, _ := newOpenLibraryTestServer(t)

	result := f.ValidateConfig(context.Background(), Config{"username": "testuser"})
	assert.True(t, result.Valid)

	// Unknown user 404s; the failure must come back as data, not a panic.
	result = f.ValidateConfig(context.Background(), Config{"username": "nobody"})
	assert.False(t, result.Valid)
	assert.NotEmpty(t, result.Error)

	result = f.ValidateConfig(context.Background(), Config{})
	assert.False(t, result.Valid)
}

func TestOpenLibraryGetAvailableLists(t *testing.T) {
	f, _ := newOpenLibraryTestServer(t)

	lists, err := f.GetAvailableLists(context.Background(), Config{"username": "testuser"})
	require.NoError(t, err)
	require.Len(t, lists, 3)
	assert.Equal(t, "want-to-read", lists[0].ID)
}

func TestOpenLibraryParseProfileURL(t *testing.T) {
	f := NewOpenLibraryFetcher()

	id, ok := f.ParseProfileURL("https://openlibrary.org/people/mekBot")
	require.True(t, ok)
	assert.Equal(t, "mekBot", id)

	id, ok = f.ParseProfileURL("https://openlibrary.org/people/mekBot/books/want-to-read")
	require.True(t, ok)
	assert.Equal(t, "mekBot", id)

	_, ok = f.ParseProfileURL("https://www.goodreads.com/user/show/123-someone")
	assert.False(t, ok)
}
