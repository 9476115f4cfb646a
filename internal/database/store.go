// file: internal/database/store.go
// version: 1.1.0
// guid: 01fed719-f922-4d9d-b220-30e496870170

package database

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for our database operations. The abstraction
// keeps the schedulers and services testable against MockStore.
type Store interface {
	// Lifecycle
	Close() error
	Reset() error

	// Import lists
	GetAllImportLists() ([]ImportList, error)
	GetEnabledImportLists() ([]ImportList, error)
	GetImportListByID(id string) (*ImportList, error)
	GetImportListsByUserID(userID string) ([]ImportList, error)
	CreateImportList(list *ImportList) (*ImportList, error) // Generates ULID if ID is empty
	UpdateImportList(id string, list *ImportList) (*ImportList, error)
	DeleteImportList(id string) error
	// RecordImportListFetch updates lastFetchedAt, increments the imported
	// total by newBooks and sets or clears the fetch error.
	RecordImportListFetch(id string, newBooks int, fetchErr *string) error
	GetListStats() (*ListStats, error)

	// Imported-hash dedup index (per list)
	HasImportedHash(listID, hash string) (bool, error)
	AddImportedHash(listID, hash, bookMd5 string) error
	CountImportedHashes(listID string) (int, error)

	// Books
	GetBookByMd5(md5 string) (*Book, error)
	UpsertBook(book *Book) error
	GetAllBooks(limit, offset int) ([]Book, error)
	GetBooksAddedSince(since time.Time) ([]Book, error)
	SearchBooks(query string, limit int) ([]Book, error)
	GetBooksByISBN(isbn string) ([]Book, error)
	CountBooks() (int, error)

	// Download requests
	CreateDownloadRequest(req *DownloadRequest) (*DownloadRequest, error) // Generates ULID if ID is empty
	GetDownloadRequestByID(id string) (*DownloadRequest, error)
	GetDownloadRequestsByUserID(userID string) ([]DownloadRequest, error)
	GetDownloadRequestsByStatus(status string) ([]DownloadRequest, error)
	// GetActiveRequestsOrdered returns active requests oldest-checked-first
	// (never-checked requests first).
	GetActiveRequestsOrdered() ([]DownloadRequest, error)
	UpdateDownloadRequest(id string, req *DownloadRequest) (*DownloadRequest, error)
	// FindDuplicateRequest looks for a pending_approval or active request of
	// the same user with an identical normalized query. Returns nil, nil
	// when there is none.
	FindDuplicateRequest(userID, queryHash string) (*DownloadRequest, error)
	TouchRequestChecked(id string, at time.Time) error
	CountRequestsByStatus() (map[string]int, error)

	// Settings
	GetSetting(key string) (string, error) // "" when unset
	SetSetting(key, value string) error
	GetAllSettings() ([]Setting, error)
}

// GlobalStore is the process-wide store instance.
var GlobalStore Store

// InitializeStore opens the SQLite store at path and installs it globally.
func InitializeStore(path string) error {
	store, err := NewSQLiteStore(path)
	if err != nil {
		return fmt.Errorf("failed to initialize SQLite store: %w", err)
	}
	GlobalStore = store
	return nil
}

// CloseStore closes the global store if one is open.
func CloseStore() error {
	if GlobalStore != nil {
		err := GlobalStore.Close()
		GlobalStore = nil
		return err
	}
	return nil
}
