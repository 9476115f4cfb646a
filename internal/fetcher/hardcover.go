// file: internal/fetcher/hardcover.go
// version: 1.1.0
// guid: 9af40852-f279-4e7b-a1de-a82fda84b8c3

package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	hardcoverAPIURL   = "https://api.hardcover.app/v1/graphql"
	hardcoverPageSize = 50
)

var hardcoverProfileRe = regexp.MustCompile(`hardcover\.app/@([^/?#]+)`)

// HardcoverFetcher pages through a Hardcover list via the GraphQL API.
// Config keys: "list_id" (required, numeric). The API token comes from
// settings through the token getter so rotating it needs no list edits.
type HardcoverFetcher struct {
	apiURL string
	http   *httpClient
	token  func() string
}

func NewHardcoverFetcher(token func() string) *HardcoverFetcher {
	if token == nil {
		token = func() string { return "" }
	}
	return &HardcoverFetcher{
		apiURL: hardcoverAPIURL,
		http:   newHTTPClient(20*time.Second, 1),
		token:  token,
	}
}

func (f *HardcoverFetcher) Source() Source { return SourceHardcover }

type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type graphqlError struct {
	Message string `json:"message"`
}

func (f *HardcoverFetcher) query(ctx context.Context, query string, variables map[string]interface{}, out interface{}) error {
	token := f.token()
	if token == "" {
		return fmt.Errorf("hardcover API token is not configured")
	}

	payload, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("failed to marshal GraphQL request: %w", err)
	}

	headers := map[string]string{"Authorization": "Bearer " + token}
	data, err := f.http.postJSON(ctx, f.apiURL, headers, payload)
	if err != nil {
		return fmt.Errorf("hardcover API request failed: %w", err)
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []graphqlError  `json:"errors"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return fmt.Errorf("failed to parse hardcover response: %w", err)
	}
	if len(envelope.Errors) > 0 {
		return fmt.Errorf("hardcover API error: %s", envelope.Errors[0].Message)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("failed to parse hardcover data: %w", err)
	}
	return nil
}

const hardcoverValidateQuery = `
query ValidateList($id: Int!) {
  lists(where: {id: {_eq: $id}}, limit: 1) {
    id
    name
    books_count
  }
}`

// Ordered by position with the row id as a stable secondary key so paging
// is deterministic even when positions collide.
const hardcoverListBooksQuery = `
query ListBooks($id: Int!, $limit: Int!, $offset: Int!) {
  list_books(
    where: {list_id: {_eq: $id}},
    order_by: [{position: asc}, {id: asc}],
    limit: $limit,
    offset: $offset
  ) {
    id
    date_added
    book {
      id
      title
      release_year
      pages
      rating
      description
      cached_image
      contributions { author { name } }
    }
  }
}`

const hardcoverUserListsQuery = `
query UserLists($username: citext!) {
  lists(where: {user: {username: {_eq: $username}}}, order_by: {id: asc}) {
    id
    name
    books_count
  }
}`

func (f *HardcoverFetcher) listID(cfg Config) (int, error) {
	raw := strings.TrimSpace(cfg["list_id"])
	if raw == "" {
		return 0, fmt.Errorf("list_id is required")
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("list_id %q is not numeric", raw)
	}
	return id, nil
}

func (f *HardcoverFetcher) ValidateConfig(ctx context.Context, cfg Config) ValidationResult {
	id, err := f.listID(cfg)
	if err != nil {
		return ValidationResult{Valid: false, Error: err.Error()}
	}

	var result struct {
		Lists []struct {
			ID int `json:"id"`
		} `json:"lists"`
	}
	if err := f.query(ctx, hardcoverValidateQuery, map[string]interface{}{"id": id}, &result); err != nil {
		return ValidationResult{Valid: false, Error: fmt.Sprintf("hardcover list check failed: %v", err)}
	}
	if len(result.Lists) == 0 {
		return ValidationResult{Valid: false, Error: fmt.Sprintf("hardcover list %d not found", id)}
	}
	return ValidationResult{Valid: true}
}

func (f *HardcoverFetcher) FetchBooks(ctx context.Context, cfg Config, page int) (*FetchResult, error) {
	id, err := f.listID(cfg)
	if err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}

	var result struct {
		ListBooks []struct {
			ID        int64  `json:"id"`
			DateAdded string `json:"date_added"`
			Book      struct {
				ID            int64   `json:"id"`
				Title         string  `json:"title"`
				ReleaseYear   int     `json:"release_year"`
				Pages         int     `json:"pages"`
				Rating        float64 `json:"rating"`
				Description   string  `json:"description"`
				CachedImage   string  `json:"cached_image"`
				Contributions []struct {
					Author struct {
						Name string `json:"name"`
					} `json:"author"`
				} `json:"contributions"`
			} `json:"book"`
		} `json:"list_books"`
	}

	variables := map[string]interface{}{
		"id":     id,
		"limit":  hardcoverPageSize,
		"offset": (page - 1) * hardcoverPageSize,
	}
	if err := f.query(ctx, hardcoverListBooksQuery, variables, &result); err != nil {
		return nil, err
	}

	books := make([]ListBook, 0, len(result.ListBooks))
	for _, entry := range result.ListBooks {
		var authors []string
		for _, c := range entry.Book.Contributions {
			if c.Author.Name != "" {
				authors = append(authors, c.Author.Name)
			}
		}
		book := ListBook{
			Title:         entry.Book.Title,
			Author:        strings.Join(authors, ", "),
			SourceBookID:  strconv.FormatInt(entry.Book.ID, 10),
			SourceURL:     fmt.Sprintf("https://hardcover.app/books/%d", entry.Book.ID),
			CoverURL:      entry.Book.CachedImage,
			PublishedYear: entry.Book.ReleaseYear,
			Pages:         entry.Book.Pages,
			AverageRating: entry.Book.Rating,
			Description:   entry.Book.Description,
		}
		if t, err := time.Parse("2006-01-02", entry.DateAdded); err == nil {
			book.AddedAt = t
		}
		book.Hash = BookHash(SourceHardcover, book.SourceBookID, book.Title, book.Author)
		books = append(books, book)
	}

	fetchResult := &FetchResult{
		Books:   books,
		HasMore: len(result.ListBooks) == hardcoverPageSize,
	}
	if fetchResult.HasMore {
		fetchResult.NextPage = page + 1
	}
	return fetchResult, nil
}

func (f *HardcoverFetcher) GetAvailableLists(ctx context.Context, cfg Config) ([]AvailableList, error) {
	username := strings.TrimSpace(cfg["username"])
	if username == "" {
		return nil, fmt.Errorf("username is required to enumerate lists")
	}

	var result struct {
		Lists []struct {
			ID         int    `json:"id"`
			Name       string `json:"name"`
			BooksCount int    `json:"books_count"`
		} `json:"lists"`
	}
	if err := f.query(ctx, hardcoverUserListsQuery, map[string]interface{}{"username": username}, &result); err != nil {
		return nil, err
	}

	lists := make([]AvailableList, 0, len(result.Lists))
	for _, l := range result.Lists {
		lists = append(lists, AvailableList{
			ID:        strconv.Itoa(l.ID),
			Name:      l.Name,
			BookCount: l.BooksCount,
		})
	}
	return lists, nil
}

func (f *HardcoverFetcher) ParseProfileURL(url string) (string, bool) {
	m := hardcoverProfileRe.FindStringSubmatch(url)
	if m == nil {
		return "", false
	}
	return m[1], true
}
