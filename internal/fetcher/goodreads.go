// file: internal/fetcher/goodreads.go
// version: 1.2.0
// guid: c063b727-fac6-4c1e-85f7-2e5470b1e7d6

package fetcher

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	goodreadsBaseURL  = "https://www.goodreads.com"
	goodreadsPageSize = 50
)

var (
	goodreadsProfileRe = regexp.MustCompile(`goodreads\.com/user/show/(\d+)`)
	goodreadsBookIDRe  = regexp.MustCompile(`/book/show/(\d+)`)
	goodreadsShelfRe   = regexp.MustCompile(`[?&]shelf=([^&]+)`)
	goodreadsCountRe   = regexp.MustCompile(`\((\d+)\)`)
)

// GoodreadsFetcher scrapes a public Goodreads shelf in table view.
// Config keys: "user_id" (required, numeric), "shelf" (default "read").
type GoodreadsFetcher struct {
	baseURL string
	http    *httpClient
}

func NewGoodreadsFetcher() *GoodreadsFetcher {
	return &GoodreadsFetcher{
		baseURL: goodreadsBaseURL,
		http:    newHTTPClient(30*time.Second, 1),
	}
}

func (f *GoodreadsFetcher) Source() Source { return SourceGoodreads }

func (f *GoodreadsFetcher) shelf(cfg Config) string {
	if s := cfg["shelf"]; s != "" {
		return s
	}
	return "read"
}

func (f *GoodreadsFetcher) listURL(cfg Config, page int) string {
	return fmt.Sprintf("%s/review/list/%s?shelf=%s&page=%d&per_page=%d&print=true",
		f.baseURL, url.PathEscape(cfg["user_id"]), url.QueryEscape(f.shelf(cfg)), page, goodreadsPageSize)
}

func (f *GoodreadsFetcher) ValidateConfig(ctx context.Context, cfg Config) ValidationResult {
	userID := strings.TrimSpace(cfg["user_id"])
	if userID == "" {
		return ValidationResult{Valid: false, Error: "user_id is required"}
	}
	if _, err := strconv.Atoi(userID); err != nil {
		return ValidationResult{Valid: false, Error: fmt.Sprintf("user_id %q is not numeric", userID)}
	}

	doc, err := f.http.getDocument(ctx, f.listURL(cfg, 1))
	if err != nil {
		return ValidationResult{Valid: false, Error: fmt.Sprintf("Goodreads shelf not reachable: %v", err)}
	}
	if doc.Find("#privateProfile").Length() > 0 {
		return ValidationResult{Valid: false, Error: "Goodreads profile is private"}
	}
	if doc.Find("table#books").Length() == 0 {
		return ValidationResult{Valid: false, Error: "Goodreads shelf page has no book table (profile private or shelf missing)"}
	}
	return ValidationResult{Valid: true}
}

func (f *GoodreadsFetcher) FetchBooks(ctx context.Context, cfg Config, page int) (*FetchResult, error) {
	if strings.TrimSpace(cfg["user_id"]) == "" {
		return nil, fmt.Errorf("user_id is required")
	}
	if page < 1 {
		page = 1
	}

	doc, err := f.http.getDocument(ctx, f.listURL(cfg, page))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shelf page: %w", err)
	}

	books := parseGoodreadsShelf(doc)
	for i := range books {
		if books[i].SourceURL != "" && !strings.HasPrefix(books[i].SourceURL, "http") {
			books[i].SourceURL = f.baseURL + books[i].SourceURL
		}
	}

	// Prefer the pagination forward-link when present; fall back to
	// comparing the row count against the page size.
	hasMore := doc.Find("a.next_page").Length() > 0
	if !hasMore {
		hasMore = len(books) == goodreadsPageSize && doc.Find("div#pagination, div.pagination").Length() == 0
	}

	result := &FetchResult{Books: books, HasMore: hasMore}
	if hasMore {
		result.NextPage = page + 1
	}
	return result, nil
}

// parseGoodreadsShelf extracts books from a shelf page in table view. Row
// order is the shelf's own paging order, which Goodreads keys by date-added
// and then internal review id, so it is already total.
func parseGoodreadsShelf(doc *goquery.Document) []ListBook {
	var books []ListBook
	doc.Find("table#books tr.bookalike.review").Each(func(_ int, row *goquery.Selection) {
		titleLink := row.Find("td.field.title a").First()
		title := strings.TrimSpace(titleLink.Text())
		if title == "" {
			return
		}

		book := ListBook{
			Title:  title,
			Author: normalizeGoodreadsAuthor(strings.TrimSpace(row.Find("td.field.author a").First().Text())),
		}

		if href, ok := titleLink.Attr("href"); ok {
			book.SourceURL = href
			if m := goodreadsBookIDRe.FindStringSubmatch(href); m != nil {
				book.SourceBookID = m[1]
			}
		}
		if cover, ok := row.Find("td.field.cover img").First().Attr("src"); ok {
			book.CoverURL = cover
		}
		if isbn := strings.TrimSpace(row.Find("td.field.isbn .value").Text()); isbn != "" {
			book.ISBN = isbn
		}
		if avg := strings.TrimSpace(row.Find("td.field.avg_rating .value").Text()); avg != "" {
			if v, err := strconv.ParseFloat(avg, 64); err == nil {
				book.AverageRating = v
			}
		}
		if pages := strings.TrimSpace(row.Find("td.field.num_pages .value").First().Text()); pages != "" {
			fields := strings.Fields(pages)
			if len(fields) > 0 {
				if v, err := strconv.Atoi(strings.ReplaceAll(fields[0], ",", "")); err == nil {
					book.Pages = v
				}
			}
		}
		if added := strings.TrimSpace(row.Find("td.field.date_added .value span").First().Text()); added != "" {
			if t, err := time.Parse("Jan 02, 2006", added); err == nil {
				book.AddedAt = t
			}
		}

		book.Hash = BookHash(SourceGoodreads, book.SourceBookID, book.Title, book.Author)
		books = append(books, book)
	})
	return books
}

// normalizeGoodreadsAuthor flips "Tolkien, J.R.R." to "J.R.R. Tolkien".
func normalizeGoodreadsAuthor(name string) string {
	parts := strings.SplitN(name, ",", 2)
	if len(parts) != 2 {
		return name
	}
	return strings.TrimSpace(parts[1]) + " " + strings.TrimSpace(parts[0])
}

func (f *GoodreadsFetcher) GetAvailableLists(ctx context.Context, cfg Config) ([]AvailableList, error) {
	if strings.TrimSpace(cfg["user_id"]) == "" {
		return nil, fmt.Errorf("user_id is required")
	}

	doc, err := f.http.getDocument(ctx, f.listURL(cfg, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shelf list: %w", err)
	}

	var shelves []AvailableList
	doc.Find("div#shelves a, div.userShelf a").Each(func(_ int, link *goquery.Selection) {
		href, ok := link.Attr("href")
		if !ok {
			return
		}
		m := goodreadsShelfRe.FindStringSubmatch(href)
		if m == nil {
			return
		}
		id, err := url.QueryUnescape(m[1])
		if err != nil {
			id = m[1]
		}
		shelf := AvailableList{ID: id, Name: id}
		text := strings.TrimSpace(link.Text())
		if cm := goodreadsCountRe.FindStringSubmatch(text); cm != nil {
			if n, err := strconv.Atoi(cm[1]); err == nil {
				shelf.BookCount = n
			}
			shelf.Name = strings.TrimSpace(goodreadsCountRe.ReplaceAllString(text, ""))
		} else if text != "" {
			shelf.Name = text
		}
		shelves = append(shelves, shelf)
	})
	return shelves, nil
}

func (f *GoodreadsFetcher) ParseProfileURL(url string) (string, bool) {
	m := goodreadsProfileRe.FindStringSubmatch(url)
	if m == nil {
		return "", false
	}
	return m[1], true
}
