// file: internal/checker/listchecker_test.go
// version: 1.0.0
// guid: 3d751c01-aad7-43c3-9dec-0a3afee149e5

package checker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdfalk/bookwatch/internal/database"
	"github.com/jdfalk/bookwatch/internal/fetcher"
	"github.com/jdfalk/bookwatch/internal/importer"
)

type fakeFetcher struct {
	source fetcher.Source
	pages  map[string][]fetcher.ListBook
	err    error
}

func (f *fakeFetcher) Source() fetcher.Source { return f.source }

func (f *fakeFetcher) ValidateConfig(ctx context.Context, cfg fetcher.Config) fetcher.ValidationResult {
	return fetcher.ValidationResult{Valid: true}
}

func (f *fakeFetcher) FetchBooks(ctx context.Context, cfg fetcher.Config, page int) (*fetcher.FetchResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &fetcher.FetchResult{Books: f.pages[cfg["user"]]}, nil
}

type fakeProvider struct {
	fetchers map[fetcher.Source]fetcher.Fetcher
}

func (p *fakeProvider) Get(source fetcher.Source) (fetcher.Fetcher, error) {
	f, ok := p.fetchers[source]
	if !ok {
		return nil, errors.New("unknown source")
	}
	return f, nil
}

type checkerFixture struct {
	lists    []database.ImportList
	fetched  []string
	imported map[string]bool
	mu       sync.Mutex
	store    *database.MockStore
}

func newCheckerFixture(t *testing.T, lists []database.ImportList) *checkerFixture {
	t.Helper()
	fx := &checkerFixture{lists: lists, imported: map[string]bool{}}
	fx.store = &database.MockStore{
		GetEnabledImportListsFunc: func() ([]database.ImportList, error) {
			var enabled []database.ImportList
			for _, l := range fx.lists {
				if l.Enabled {
					enabled = append(enabled, l)
				}
			}
			return enabled, nil
		},
		GetImportListByIDFunc: func(id string) (*database.ImportList, error) {
			for i := range fx.lists {
				if fx.lists[i].ID == id {
					fx.mu.Lock()
					fx.fetched = append(fx.fetched, id)
					fx.mu.Unlock()
					list := fx.lists[i]
					return &list, nil
				}
			}
			return nil, database.ErrNotFound
		},
		HasImportedHashFunc: func(listID, hash string) (bool, error) {
			return fx.imported[listID+":"+hash], nil
		},
		AddImportedHashFunc: func(listID, hash, bookMd5 string) error {
			fx.imported[listID+":"+hash] = true
			return nil
		},
		UpsertBookFunc:            func(book *database.Book) error { return nil },
		RecordImportListFetchFunc: func(id string, newBooks int, fetchErr *string) error { return nil },
	}
	return fx
}

func testList(id, source, user string) database.ImportList {
	now := time.Now()
	return database.ImportList{
		ID:            id,
		UserID:        "u1",
		Source:        source,
		Name:          id,
		SourceConfig:  map[string]string{"user": user},
		ImportMode:    database.ImportModeAll,
		Enabled:       true,
		LastFetchedAt: &now,
	}
}

func noSleep(ctx context.Context, d time.Duration) {}

func TestCheckAllListsProcessesEveryEnabledList(t *testing.T) {
	lists := []database.ImportList{
		testList("l1", "openlibrary", "alice"),
		testList("l2", "openlibrary", "bob"),
	}
	disabled := testList("l3", "openlibrary", "carol")
	disabled.Enabled = false
	lists = append(lists, disabled)

	fx := newCheckerFixture(t, lists)
	provider := &fakeProvider{fetchers: map[fetcher.Source]fetcher.Fetcher{
		fetcher.SourceOpenLibrary: &fakeFetcher{
			source: fetcher.SourceOpenLibrary,
			pages: map[string][]fetcher.ListBook{
				"alice": {{Hash: "h1", Title: "Dune", Author: "Frank Herbert"}},
				"bob":   {{Hash: "h2", Title: "Hyperion", Author: "Dan Simmons"}},
			},
		},
	}}

	checker := NewListChecker(fx.store, importer.New(fx.store, provider))
	checker.sleep = noSleep
	checker.CheckAllLists(context.Background())

	assert.Equal(t, []string{"l1", "l2"}, fx.fetched)
	status := checker.GetStatus()
	assert.False(t, status.Running)
	assert.Equal(t, 2, status.ListsChecked)
	assert.Equal(t, 0, status.ErrorCount)
	require.NotNil(t, status.LastRunAt)
}

func TestCheckAllListsIsolatesPerListErrors(t *testing.T) {
	lists := []database.ImportList{
		testList("l1", "openlibrary", "alice"),
		testList("l2", "goodreads", "12345"),
		testList("l3", "openlibrary", "bob"),
	}
	fx := newCheckerFixture(t, lists)
	provider := &fakeProvider{fetchers: map[fetcher.Source]fetcher.Fetcher{
		fetcher.SourceOpenLibrary: &fakeFetcher{source: fetcher.SourceOpenLibrary, pages: map[string][]fetcher.ListBook{}},
		fetcher.SourceGoodreads:   &fakeFetcher{source: fetcher.SourceGoodreads, err: errors.New("503 from shelf page")},
	}}

	checker := NewListChecker(fx.store, importer.New(fx.store, provider))
	checker.sleep = noSleep
	checker.CheckAllLists(context.Background())

	// The failing middle list does not stop the cycle.
	assert.Equal(t, []string{"l1", "l2", "l3"}, fx.fetched)
	status := checker.GetStatus()
	assert.Equal(t, 3, status.ListsChecked)
	assert.Equal(t, 1, status.ErrorCount)
}

func TestCheckAllListsNonReentrant(t *testing.T) {
	fx := newCheckerFixture(t, []database.ImportList{testList("l1", "openlibrary", "alice")})
	release := make(chan struct{})
	entered := make(chan struct{})
	provider := &fakeProvider{fetchers: map[fetcher.Source]fetcher.Fetcher{
		fetcher.SourceOpenLibrary: &blockingFetcher{entered: entered, release: release},
	}}

	checker := NewListChecker(fx.store, importer.New(fx.store, provider))
	checker.sleep = noSleep

	go checker.CheckAllLists(context.Background())
	<-entered

	// Second invocation while the first is mid-cycle is a no-op.
	checker.CheckAllLists(context.Background())
	assert.Len(t, fx.fetched, 1)
	assert.ErrorIs(t, checker.TriggerNow(context.Background()), ErrCheckInProgress)

	close(release)
	assert.Eventually(t, func() bool {
		return !checker.GetStatus().Running
	}, 2*time.Second, 10*time.Millisecond)

	// After the cycle finishes, a new trigger is accepted again.
	require.NoError(t, checker.TriggerNow(context.Background()))
	assert.Eventually(t, func() bool {
		return !checker.GetStatus().Running
	}, 2*time.Second, 10*time.Millisecond)
}

type blockingFetcher struct {
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (f *blockingFetcher) Source() fetcher.Source { return fetcher.SourceOpenLibrary }

func (f *blockingFetcher) ValidateConfig(ctx context.Context, cfg fetcher.Config) fetcher.ValidationResult {
	return fetcher.ValidationResult{Valid: true}
}

func (f *blockingFetcher) FetchBooks(ctx context.Context, cfg fetcher.Config, page int) (*fetcher.FetchResult, error) {
	f.once.Do(func() { close(f.entered) })
	<-f.release
	return &fetcher.FetchResult{}, nil
}

func TestJitterBetweenListsRange(t *testing.T) {
	for i := 0; i < 200; i++ {
		d := jitterBetweenLists()
		assert.GreaterOrEqual(t, d, 3000*time.Millisecond)
		assert.Less(t, d, 5000*time.Millisecond)
	}
}
