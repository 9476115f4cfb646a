// file: internal/fetcher/openlibrary.go
// version: 1.1.0
// guid: 67409230-7dfe-481a-9e81-7ab50c26dfba

package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	openLibraryBaseURL  = "https://openlibrary.org"
	openLibraryPageSize = 100
)

// Shelves the Open Library reading log exposes for every account.
var openLibraryShelves = []AvailableList{
	{ID: "want-to-read", Name: "Want to Read"},
	{ID: "currently-reading", Name: "Currently Reading"},
	{ID: "already-read", Name: "Already Read"},
}

var openLibraryProfileRe = regexp.MustCompile(`openlibrary\.org/people/([^/?#]+)`)

// OpenLibraryFetcher pages through a public Open Library reading-log shelf.
// Config keys: "username" (required), "shelf" (default "want-to-read").
type OpenLibraryFetcher struct {
	baseURL string
	http    *httpClient
}

func NewOpenLibraryFetcher() *OpenLibraryFetcher {
	return &OpenLibraryFetcher{
		baseURL: openLibraryBaseURL,
		http:    newHTTPClient(15*time.Second, 2),
	}
}

func (f *OpenLibraryFetcher) Source() Source { return SourceOpenLibrary }

func (f *OpenLibraryFetcher) shelf(cfg Config) string {
	if s := cfg["shelf"]; s != "" {
		return s
	}
	return "want-to-read"
}

func (f *OpenLibraryFetcher) ValidateConfig(ctx context.Context, cfg Config) ValidationResult {
	username := strings.TrimSpace(cfg["username"])
	if username == "" {
		return ValidationResult{Valid: false, Error: "username is required"}
	}
	url := fmt.Sprintf("%s/people/%s.json", f.baseURL, username)
	if _, err := f.http.get(ctx, url); err != nil {
		return ValidationResult{Valid: false, Error: fmt.Sprintf("Open Library user %q not reachable: %v", username, err)}
	}
	return ValidationResult{Valid: true}
}

type openLibraryLogEntry struct {
	LoggedDate string `json:"logged_date"`
	Work       struct {
		Key              string   `json:"key"`
		Title            string   `json:"title"`
		AuthorNames      []string `json:"author_names"`
		FirstPublishYear int      `json:"first_publish_year"`
		CoverID          int64    `json:"cover_id"`
	} `json:"work"`
}

type openLibraryLogPage struct {
	Page    int                   `json:"page"`
	Entries []openLibraryLogEntry `json:"reading_log_entries"`
}

func (f *OpenLibraryFetcher) FetchBooks(ctx context.Context, cfg Config, page int) (*FetchResult, error) {
	username := strings.TrimSpace(cfg["username"])
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if page < 1 {
		page = 1
	}

	url := fmt.Sprintf("%s/people/%s/books/%s.json?page=%d", f.baseURL, username, f.shelf(cfg), page)
	data, err := f.http.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reading log: %w", err)
	}

	var parsed openLibraryLogPage
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse reading log: %w", err)
	}

	books := make([]ListBook, 0, len(parsed.Entries))
	for _, entry := range parsed.Entries {
		workID := strings.TrimPrefix(entry.Work.Key, "/works/")
		book := ListBook{
			Title:         entry.Work.Title,
			Author:        strings.Join(entry.Work.AuthorNames, ", "),
			SourceBookID:  workID,
			SourceURL:     f.baseURL + entry.Work.Key,
			PublishedYear: entry.Work.FirstPublishYear,
		}
		if entry.Work.CoverID > 0 {
			book.CoverURL = fmt.Sprintf("https://covers.openlibrary.org/b/id/%d-L.jpg", entry.Work.CoverID)
		}
		if t, err := time.Parse("2006/01/02, 15:04:05", entry.LoggedDate); err == nil {
			book.AddedAt = t
		}
		book.Hash = BookHash(SourceOpenLibrary, book.SourceBookID, book.Title, book.Author)
		books = append(books, book)
	}

	result := &FetchResult{
		Books:   books,
		HasMore: len(parsed.Entries) == openLibraryPageSize,
	}
	if result.HasMore {
		result.NextPage = page + 1
	}
	return result, nil
}

func (f *OpenLibraryFetcher) GetAvailableLists(ctx context.Context, cfg Config) ([]AvailableList, error) {
	// The reading-log shelves are fixed per account; verify the account
	// exists so a bad username surfaces here rather than at fetch time.
	if result := f.ValidateConfig(ctx, cfg); !result.Valid {
		return nil, fmt.Errorf("%s", result.Error)
	}
	shelves := make([]AvailableList, len(openLibraryShelves))
	copy(shelves, openLibraryShelves)
	return shelves, nil
}

func (f *OpenLibraryFetcher) ParseProfileURL(url string) (string, bool) {
	m := openLibraryProfileRe.FindStringSubmatch(url)
	if m == nil {
		return "", false
	}
	return m[1], true
}
