// file: internal/database/models.go
// version: 1.0.0
// guid: 098e0733-8f46-49e3-b8f7-ac610a4905b8

// Package database provides persistence for import lists, download requests,
// the discovered-book catalog and runtime settings, behind a Store interface
// with a SQLite implementation and a mock for tests.
package database

import "time"

// Import modes for an ImportList.
const (
	ImportModeAll    = "all"    // import everything the source returns
	ImportModeFuture = "future" // mark the current contents as seen, import only later additions
)

// DownloadRequest status values. Transitions are monotonic:
// pending_approval -> active|rejected, active -> fulfilled|cancelled,
// cancelled -> active (reactivation only).
const (
	StatusPendingApproval = "pending_approval"
	StatusActive          = "active"
	StatusFulfilled       = "fulfilled"
	StatusCancelled       = "cancelled"
	StatusRejected        = "rejected"
)

// SearchDefaults are per-list defaults applied to searches created from
// imported books.
type SearchDefaults struct {
	Format   string `json:"format,omitempty"`
	Language string `json:"language,omitempty"`
}

// ImportList is a user-configured subscription to an external book-list
// source, checked periodically by the list checker.
type ImportList struct {
	ID                 string            `json:"id"`
	UserID             string            `json:"user_id"`
	Source             string            `json:"source"`
	Name               string            `json:"name"`
	SourceConfig       map[string]string `json:"source_config"`
	SearchDefaults     SearchDefaults    `json:"search_defaults"`
	ImportMode         string            `json:"import_mode"`
	UseBookLanguage    bool              `json:"use_book_language"`
	Enabled            bool              `json:"enabled"`
	LastFetchedAt      *time.Time        `json:"last_fetched_at,omitempty"`
	FetchError         *string           `json:"fetch_error,omitempty"`
	TotalBooksImported int               `json:"total_books_imported"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

// QueryParams are the search criteria of a DownloadRequest.
type QueryParams struct {
	Title    string `json:"title,omitempty"`
	Author   string `json:"author,omitempty"`
	Format   string `json:"format,omitempty"`
	Language string `json:"language,omitempty"`
}

// DownloadRequest is a saved search that the request checker periodically
// matches against newly discovered books.
type DownloadRequest struct {
	ID               string      `json:"id"`
	UserID           string      `json:"user_id"`
	Query            QueryParams `json:"query_params"`
	Status           string      `json:"status"`
	TargetBookMd5    *string     `json:"target_book_md5,omitempty"`
	FulfilledBookMd5 *string     `json:"fulfilled_book_md5,omitempty"`
	ApproverID       *string     `json:"approver_id,omitempty"`
	RejectionReason  *string     `json:"rejection_reason,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
	LastCheckedAt    *time.Time  `json:"last_checked_at,omitempty"`
	FulfilledAt      *time.Time  `json:"fulfilled_at,omitempty"`
	ApprovedAt       *time.Time  `json:"approved_at,omitempty"`
	RejectedAt       *time.Time  `json:"rejected_at,omitempty"`
}

// Book is a catalog record discovered through list imports. The md5 content
// hash is its primary identity; matching treats books as read-only input.
type Book struct {
	Md5         string    `json:"md5"`
	Title       string    `json:"title"`
	Authors     []string  `json:"authors"`
	Format      string    `json:"format,omitempty"`
	Language    string    `json:"language,omitempty"`
	Size        int64     `json:"size,omitempty"`
	Year        int       `json:"year,omitempty"`
	ISBN        string    `json:"isbn,omitempty"`
	CoverURL    string    `json:"cover_url,omitempty"`
	Description string    `json:"description,omitempty"`
	SourceURL   string    `json:"source_url,omitempty"`
	AddedAt     time.Time `json:"added_at"`
}

// Setting is a runtime-tunable configuration value. Database settings
// override file configuration.
type Setting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ListStats summarize the import-list subsystem for the stats endpoint.
type ListStats struct {
	TotalLists         int        `json:"total_lists"`
	EnabledLists       int        `json:"enabled_lists"`
	ListsWithErrors    int        `json:"lists_with_errors"`
	TotalBooksImported int        `json:"total_books_imported"`
	LastFetchedAt      *time.Time `json:"last_fetched_at,omitempty"`
}
