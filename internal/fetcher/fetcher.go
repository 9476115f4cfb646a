// file: internal/fetcher/fetcher.go
// version: 1.1.0
// guid: 30069074-8019-4936-8b03-70f5d1f221f9

// Package fetcher provides list-source integrations. Each source knows how
// to page through one external catalog type and yields candidate book
// records for the import orchestrator.
package fetcher

import (
	"context"
	"time"
)

// Source identifies a supported external list source.
type Source string

const (
	SourceOpenLibrary Source = "openlibrary"
	SourceGoodreads   Source = "goodreads"
	SourceHardcover   Source = "hardcover"
)

// SourceInfo describes a source for the configuration UI.
type SourceInfo struct {
	Source      Source `json:"source"`
	Name        string `json:"name"`
	Description string `json:"description"`
	// Capability flags so the UI can hide unsupported inputs.
	SupportsListEnumeration bool `json:"supports_list_enumeration"`
	SupportsProfileURL      bool `json:"supports_profile_url"`
	RequiresToken           bool `json:"requires_token"`
}

// Config holds opaque per-source parameters (remote username, list id, shelf
// name). Keys are source-specific.
type Config map[string]string

// ListBook is one candidate book produced by a fetcher. It is consumed
// immediately by the import orchestrator and discarded.
type ListBook struct {
	Title          string    `json:"title"`
	Author         string    `json:"author"`
	Hash           string    `json:"hash"` // dedup key, see BookHash
	SourceBookID   string    `json:"source_book_id,omitempty"`
	SourceURL      string    `json:"source_url,omitempty"`
	CoverURL       string    `json:"cover_url,omitempty"`
	ISBN           string    `json:"isbn,omitempty"`
	SeriesName     string    `json:"series_name,omitempty"`
	SeriesPosition float64   `json:"series_position,omitempty"`
	PublishedYear  int       `json:"published_year,omitempty"`
	Pages          int       `json:"pages,omitempty"`
	Rating         float64   `json:"rating,omitempty"`
	AverageRating  float64   `json:"average_rating,omitempty"`
	Genres         []string  `json:"genres,omitempty"`
	Description    string    `json:"description,omitempty"`
	Language       string    `json:"language,omitempty"`
	AddedAt        time.Time `json:"added_at,omitempty"`
}

// FetchResult is one page of results. Ordering follows the source's own
// paging order and is deterministic; HasMore is derived from the returned
// row count against the source page size or from a pagination forward-link.
type FetchResult struct {
	Books    []ListBook `json:"books"`
	HasMore  bool       `json:"has_more"`
	NextPage int        `json:"next_page,omitempty"`
}

// ValidationResult is the outcome of a live config check. Network and
// timeout failures yield Valid=false with a human-readable error, never a
// panic or a raw transport fault.
type ValidationResult struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// AvailableList is a named remote collection (e.g. a shelf) the account
// exposes.
type AvailableList struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	BookCount int    `json:"book_count,omitempty"`
}

// Fetcher pages through exactly one external catalog type. Implementations
// must catch network errors, non-2xx responses and parse failures per page:
// FetchBooks returns such failures as an error value and never panics past
// the fetcher boundary. The caller decides whether to retry on the next
// scheduled cycle.
type Fetcher interface {
	Source() Source
	// ValidateConfig verifies the source-specific config actually resolves
	// against the remote source (a live network check, not schema-only).
	ValidateConfig(ctx context.Context, cfg Config) ValidationResult
	// FetchBooks fetches one page. Page numbering starts at 1.
	FetchBooks(ctx context.Context, cfg Config, page int) (*FetchResult, error)
}

// ListEnumerator is an optional capability: enumerating the named
// collections a remote account exposes.
type ListEnumerator interface {
	GetAvailableLists(ctx context.Context, cfg Config) ([]AvailableList, error)
}

// ProfileURLParser is an optional capability: extracting a source-native
// identifier from a pasted profile URL. Returns ok=false when the URL does
// not belong to the source.
type ProfileURLParser interface {
	ParseProfileURL(url string) (userID string, ok bool)
}
