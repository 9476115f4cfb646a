// file: internal/fetcher/factory_test.go
// version: 1.0.0
// guid: f4fdfa05-9bdd-4cd0-86dc-94b6dfdd687b

package fetcher

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryGet(t *testing.T) {
	r := NewRegistry(RegistryOptions{})

	for _, source := range []Source{SourceOpenLibrary, SourceGoodreads, SourceHardcover} {
		f, err := r.Get(source)
		require.NoError(t, err)
		assert.Equal(t, source, f.Source())
	}

	_, err := r.Get("librarything")
	assert.Error(t, err)
}

func TestRegistrySources(t *testing.T) {
	r := NewRegistry(RegistryOptions{})
	infos := r.Sources()
	require.Len(t, infos, 3)

	bySource := map[Source]SourceInfo{}
	for _, info := range infos {
		bySource[info.Source] = info
	}
	assert.True(t, bySource[SourceOpenLibrary].SupportsListEnumeration)
	assert.True(t, bySource[SourceGoodreads].SupportsProfileURL)
	assert.True(t, bySource[SourceHardcover].RequiresToken)
	assert.False(t, bySource[SourceOpenLibrary].RequiresToken)
}

func TestRegistryParseProfileURL(t *testing.T) {
	r := NewRegistry(RegistryOptions{})

	source, id, ok := r.ParseProfileURL("https://www.goodreads.com/user/show/42-someone")
	require.True(t, ok)
	assert.Equal(t, SourceGoodreads, source)
	assert.Equal(t, "42", id)

	source, id, ok = r.ParseProfileURL("https://openlibrary.org/people/mekBot")
	require.True(t, ok)
	assert.Equal(t, SourceOpenLibrary, source)
	assert.Equal(t, "mekBot", id)

	_, _, ok = r.ParseProfileURL("https://example.com/profile/1")
	assert.False(t, ok)
}

func TestHardcoverRequiresToken(t *testing.T) {
	f := NewHardcoverFetcher(func() string { return "" })

	result := f.ValidateConfig(context.Background(), Config{"list_id": "7"})
	assert.False(t, result.Valid)
	assert.Contains(t, result.Error, "token")

	_, err := f.FetchBooks(context.Background(), Config{"list_id": "7"}, 1)
	assert.Error(t, err)
}

func TestHardcoverParseProfileURL(t *testing.T) {
	f := NewHardcoverFetcher(nil)

	id, ok := f.ParseProfileURL("https://hardcover.app/@reader")
	require.True(t, ok)
	assert.Equal(t, "reader", id)

	_, ok = f.ParseProfileURL("https://hardcover.app/books/99")
	assert.False(t, ok)
}
