// file: internal/database/sqlite_store_test.go
// version: 1.0.0
// guid: c30b8827-c69c-4738-87f5-5e65b5a7c509

package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestImportListCRUD(t *testing.T) {
	store := newTestStore(t)

	list, err := store.CreateImportList(&ImportList{
		UserID: "user-1",
		Source: "openlibrary",
		Name:   "Want to Read",
		SourceConfig: map[string]string{
			"username": "mekBot",
			"shelf":    "want-to-read",
		},
		Enabled: true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, list.ID)
	assert.Equal(t, ImportModeAll, list.ImportMode)

	got, err := store.GetImportListByID(list.ID)
	require.NoError(t, err)
	assert.Equal(t, "Want to Read", got.Name)
	assert.Equal(t, "mekBot", got.SourceConfig["username"])
	assert.True(t, got.Enabled)
	assert.Nil(t, got.LastFetchedAt)

	got.Name = "Renamed"
	got.Enabled = false
	updated, err := store.UpdateImportList(list.ID, got)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)

	enabled, err := store.GetEnabledImportLists()
	require.NoError(t, err)
	assert.Empty(t, enabled)

	require.NoError(t, store.DeleteImportList(list.ID))
	_, err = store.GetImportListByID(list.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecordImportListFetch(t *testing.T) {
	store := newTestStore(t)

	list, err := store.CreateImportList(&ImportList{
		UserID: "user-1", Source: "goodreads", Name: "Shelf", Enabled: true,
	})
	require.NoError(t, err)

	require.NoError(t, store.RecordImportListFetch(list.ID, 7, nil))
	got, err := store.GetImportListByID(list.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, got.TotalBooksImported)
	require.NotNil(t, got.LastFetchedAt)
	assert.Nil(t, got.FetchError)

	msg := "remote returned HTTP 503"
	require.NoError(t, store.RecordImportListFetch(list.ID, 0, &msg))
	got, err = store.GetImportListByID(list.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, got.TotalBooksImported)
	require.NotNil(t, got.FetchError)
	assert.Equal(t, msg, *got.FetchError)

	err = store.RecordImportListFetch("no-such-list", 1, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestImportedHashes(t *testing.T) {
	store := newTestStore(t)

	seen, err := store.HasImportedHash("list-1", "goodreads:42")
	require.NoError(t, err)
	assert.False(t, seen)

	require.NoError(t, store.AddImportedHash("list-1", "goodreads:42", "md5abc"))
	// Re-adding the same hash is a no-op, not an error.
	require.NoError(t, store.AddImportedHash("list-1", "goodreads:42", "md5abc"))

	seen, err = store.HasImportedHash("list-1", "goodreads:42")
	require.NoError(t, err)
	assert.True(t, seen)

	// Hashes are scoped per list.
	seen, err = store.HasImportedHash("list-2", "goodreads:42")
	require.NoError(t, err)
	assert.False(t, seen)

	count, err := store.CountImportedHashes("list-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestBookUpsertAndSearch(t *testing.T) {
	store := newTestStore(t)

	book := &Book{
		Md5:     "abc123",
		Title:   "The Hobbit",
		Authors: []string{"J.R.R. Tolkien"},
		Format:  "epub",
		Year:    1937,
	}
	require.NoError(t, store.UpsertBook(book))

	// Upsert with the same md5 replaces fields, does not duplicate.
	book.Format = "mobi"
	require.NoError(t, store.UpsertBook(book))

	count, err := store.CountBooks()
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	got, err := store.GetBookByMd5("abc123")
	require.NoError(t, err)
	assert.Equal(t, "mobi", got.Format)
	assert.Equal(t, []string{"J.R.R. Tolkien"}, got.Authors)

	found, err := store.SearchBooks("hobbit", 10)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "abc123", found[0].Md5)

	found, err = store.SearchBooks("tolkien", 10)
	require.NoError(t, err)
	assert.Len(t, found, 1)

	_, err = store.GetBookByMd5("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetBooksByISBN(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.UpsertBook(&Book{
		Md5: "m1", Title: "Dune", Authors: []string{"Frank Herbert"}, ISBN: "9780441172719",
	}))
	require.NoError(t, store.UpsertBook(&Book{
		Md5: "m2", Title: "Dune", Authors: []string{"Frank Herbert"}, ISBN: "0441172717",
	}))

	found, err := store.GetBooksByISBN("9780441172719")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "m1", found[0].Md5)

	found, err = store.GetBooksByISBN("0000000000")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestDownloadRequestLifecycleRows(t *testing.T) {
	store := newTestStore(t)

	req, err := store.CreateDownloadRequest(&DownloadRequest{
		UserID: "user-1",
		Query:  QueryParams{Title: "Dune", Author: "Frank Herbert"},
		Status: StatusActive,
	})
	require.NoError(t, err)
	require.NotEmpty(t, req.ID)

	got, err := store.GetDownloadRequestByID(req.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", got.Query.Title)
	assert.Nil(t, got.LastCheckedAt)

	now := time.Now().UTC()
	require.NoError(t, store.TouchRequestChecked(req.ID, now))
	got, err = store.GetDownloadRequestByID(req.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastCheckedAt)

	md5 := "deadbeef"
	got.Status = StatusFulfilled
	got.FulfilledBookMd5 = &md5
	got.FulfilledAt = &now
	_, err = store.UpdateDownloadRequest(req.ID, got)
	require.NoError(t, err)

	got, err = store.GetDownloadRequestByID(req.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusFulfilled, got.Status)
	require.NotNil(t, got.FulfilledBookMd5)
	assert.Equal(t, md5, *got.FulfilledBookMd5)
}

func TestCreateDownloadRequestPersistsApproval(t *testing.T) {
	store := newTestStore(t)

	approver := "admin-1"
	approvedAt := time.Now().UTC().Truncate(time.Second)
	req, err := store.CreateDownloadRequest(&DownloadRequest{
		UserID:     "user-1",
		Query:      QueryParams{Title: "Dune"},
		Status:     StatusActive,
		ApproverID: &approver,
		ApprovedAt: &approvedAt,
	})
	require.NoError(t, err)

	got, err := store.GetDownloadRequestByID(req.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusActive, got.Status)
	require.NotNil(t, got.ApprovedAt)
	assert.WithinDuration(t, approvedAt, *got.ApprovedAt, time.Second)
	require.NotNil(t, got.ApproverID)
	assert.Equal(t, approver, *got.ApproverID)
}

func TestFindDuplicateRequest(t *testing.T) {
	store := newTestStore(t)

	query := QueryParams{Title: "The Hobbit", Author: "J.R.R. Tolkien"}
	_, err := store.CreateDownloadRequest(&DownloadRequest{
		UserID: "user-1", Query: query, Status: StatusActive,
	})
	require.NoError(t, err)

	// Same search differing only in case and punctuation collides.
	dup, err := store.FindDuplicateRequest("user-1", QueryHash(QueryParams{
		Title: "the hobbit", Author: "jrr tolkien",
	}))
	require.NoError(t, err)
	assert.NotNil(t, dup)

	// Different user is allowed.
	dup, err = store.FindDuplicateRequest("user-2", QueryHash(query))
	require.NoError(t, err)
	assert.Nil(t, dup)

	// Fulfilled requests do not block new ones.
	first, err := store.GetDownloadRequestsByUserID("user-1")
	require.NoError(t, err)
	require.Len(t, first, 1)
	upd := first[0]
	upd.Status = StatusFulfilled
	_, err = store.UpdateDownloadRequest(upd.ID, &upd)
	require.NoError(t, err)

	dup, err = store.FindDuplicateRequest("user-1", QueryHash(query))
	require.NoError(t, err)
	assert.Nil(t, dup)
}

func TestGetActiveRequestsOrdered(t *testing.T) {
	store := newTestStore(t)

	a, err := store.CreateDownloadRequest(&DownloadRequest{
		UserID: "u", Query: QueryParams{Title: "A"}, Status: StatusActive,
	})
	require.NoError(t, err)
	b, err := store.CreateDownloadRequest(&DownloadRequest{
		UserID: "u", Query: QueryParams{Title: "B"}, Status: StatusActive,
	})
	require.NoError(t, err)
	_, err = store.CreateDownloadRequest(&DownloadRequest{
		UserID: "u", Query: QueryParams{Title: "C"}, Status: StatusCancelled,
	})
	require.NoError(t, err)

	// a was checked recently, b never: b must come first.
	require.NoError(t, store.TouchRequestChecked(a.ID, time.Now().UTC()))

	active, err := store.GetActiveRequestsOrdered()
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, b.ID, active[0].ID)
	assert.Equal(t, a.ID, active[1].ID)
}

func TestSettings(t *testing.T) {
	store := newTestStore(t)

	value, err := store.GetSetting("list_fetch_interval")
	require.NoError(t, err)
	assert.Equal(t, "", value)

	require.NoError(t, store.SetSetting("list_fetch_interval", "1h"))
	require.NoError(t, store.SetSetting("list_fetch_interval", "30m"))

	value, err = store.GetSetting("list_fetch_interval")
	require.NoError(t, err)
	assert.Equal(t, "30m", value)

	all, err := store.GetAllSettings()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestGetListStats(t *testing.T) {
	store := newTestStore(t)

	stats, err := store.GetListStats()
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalLists)
	assert.Nil(t, stats.LastFetchedAt)

	l1, err := store.CreateImportList(&ImportList{UserID: "u", Source: "goodreads", Name: "a", Enabled: true})
	require.NoError(t, err)
	_, err = store.CreateImportList(&ImportList{UserID: "u", Source: "openlibrary", Name: "b", Enabled: false})
	require.NoError(t, err)

	require.NoError(t, store.RecordImportListFetch(l1.ID, 3, nil))

	stats, err = store.GetListStats()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalLists)
	assert.Equal(t, 1, stats.EnabledLists)
	assert.Equal(t, 3, stats.TotalBooksImported)
	assert.NotNil(t, stats.LastFetchedAt)
}
