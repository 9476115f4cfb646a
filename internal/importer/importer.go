// file: internal/importer/importer.go
// version: 1.1.0
// guid: 04c84393-1747-4f7d-9990-9e543dd3e381

// Package importer turns fetcher pages into persisted catalog entries. It
// deduplicates against the per-list imported-hash index and keeps the list's
// fetch stats current.
package importer

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/jdfalk/bookwatch/internal/database"
	"github.com/jdfalk/bookwatch/internal/fetcher"
)

// DefaultMaxPages bounds a single list sync so a huge remote shelf cannot
// monopolize a cycle. The next scheduled tick continues naturally because
// already-imported hashes are skipped.
const DefaultMaxPages = 50

// FetcherProvider resolves the fetcher for a source. *fetcher.Registry
// satisfies it; tests substitute their own.
type FetcherProvider interface {
	Get(source fetcher.Source) (fetcher.Fetcher, error)
}

// ImportResult summarizes one list sync.
type ImportResult struct {
	ListID   string `json:"list_id"`
	Pages    int    `json:"pages"`
	Seen     int    `json:"seen"`
	NewBooks int    `json:"new_books"`
}

// Importer is the list-import orchestrator.
type Importer struct {
	store    database.Store
	fetchers FetcherProvider
	maxPages int
}

func New(store database.Store, fetchers FetcherProvider) *Importer {
	return &Importer{
		store:    store,
		fetchers: fetchers,
		maxPages: DefaultMaxPages,
	}
}

// FetchAndProcessList syncs one import list: pages through the source,
// skips already-imported entries, persists the rest and updates the list's
// stats. Fetch failures are recorded on the list row and returned; they do
// not panic past this boundary.
func (imp *Importer) FetchAndProcessList(ctx context.Context, listID string) (*ImportResult, error) {
	list, err := imp.store.GetImportListByID(listID)
	if err != nil {
		return nil, fmt.Errorf("failed to load list %s: %w", listID, err)
	}

	f, err := imp.fetchers.Get(fetcher.Source(list.Source))
	if err != nil {
		msg := err.Error()
		if recErr := imp.store.RecordImportListFetch(listID, 0, &msg); recErr != nil {
			log.Printf("[WARN] Failed to record fetch error for list %s: %v", listID, recErr)
		}
		return nil, err
	}

	// In "future" mode the first sync only marks the current contents as
	// seen; imports start with whatever the source adds later.
	markOnly := list.LastFetchedAt == nil && list.ImportMode == database.ImportModeFuture
	if markOnly {
		log.Printf("[INFO] List %s (%s): first sync in future mode, marking current entries as seen", list.Name, listID)
	}

	result := &ImportResult{ListID: listID}
	cfg := fetcher.Config(list.SourceConfig)
	page := 1

	for result.Pages < imp.maxPages {
		fetched, err := f.FetchBooks(ctx, cfg, page)
		if err != nil {
			msg := err.Error()
			if recErr := imp.store.RecordImportListFetch(listID, result.NewBooks, &msg); recErr != nil {
				log.Printf("[WARN] Failed to record fetch error for list %s: %v", listID, recErr)
			}
			return result, fmt.Errorf("fetch failed for list %s page %d: %w", listID, page, err)
		}
		result.Pages++

		for _, book := range fetched.Books {
			result.Seen++
			seen, err := imp.store.HasImportedHash(listID, book.Hash)
			if err != nil {
				return result, fmt.Errorf("dedup check failed for list %s: %w", listID, err)
			}
			if seen {
				continue
			}

			if !markOnly {
				if err := imp.store.UpsertBook(imp.toCatalogBook(list, book)); err != nil {
					return result, fmt.Errorf("failed to persist book %q: %w", book.Title, err)
				}
				result.NewBooks++
			}
			if err := imp.store.AddImportedHash(listID, book.Hash, book.Hash); err != nil {
				return result, fmt.Errorf("failed to record imported hash: %w", err)
			}
		}

		if !fetched.HasMore {
			break
		}
		if fetched.NextPage > page {
			page = fetched.NextPage
		} else {
			page++
		}
	}

	if err := imp.store.RecordImportListFetch(listID, result.NewBooks, nil); err != nil {
		return result, fmt.Errorf("failed to record fetch for list %s: %w", listID, err)
	}

	log.Printf("[INFO] List %s (%s): %d pages, %d seen, %d new", list.Name, listID, result.Pages, result.Seen, result.NewBooks)
	return result, nil
}

// toCatalogBook converts a fetched entry to a catalog row. List sources do
// not expose a content md5, so the entry's dedup hash doubles as the
// catalog identity.
func (imp *Importer) toCatalogBook(list *database.ImportList, book fetcher.ListBook) *database.Book {
	language := list.SearchDefaults.Language
	if list.UseBookLanguage && book.Language != "" {
		language = book.Language
	}

	var authors []string
	for _, a := range strings.Split(book.Author, ",") {
		if a = strings.TrimSpace(a); a != "" {
			authors = append(authors, a)
		}
	}

	return &database.Book{
		Md5:         book.Hash,
		Title:       book.Title,
		Authors:     authors,
		Format:      list.SearchDefaults.Format,
		Language:    language,
		Year:        book.PublishedYear,
		ISBN:        book.ISBN,
		CoverURL:    book.CoverURL,
		Description: book.Description,
		SourceURL:   book.SourceURL,
	}
}
