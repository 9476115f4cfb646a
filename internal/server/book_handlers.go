// file: internal/server/book_handlers.go
// version: 1.1.0
// guid: e52b65c6-914e-4d3a-9665-d14d0b0a7d6b

package server

import (
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/jdfalk/bookwatch/internal/database"
)

const defaultBookLimit = 50

// getBooks serves the catalog: plain pagination, substring search via the
// store, or fuzzy search when fuzzy=true.
func (s *Server) getBooks(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultBookLimit)))
	if err != nil || limit < 1 || limit > 500 {
		limit = defaultBookLimit
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	if since := c.Query("added_since"); since != "" {
		t, err := time.Parse(time.RFC3339, since)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "added_since must be RFC3339"})
			return
		}
		books, err := s.store.GetBooksAddedSince(t)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, ListResponse{Items: books, Count: len(books)})
		return
	}

	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		books, err := s.store.GetAllBooks(limit, offset)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		total, _ := s.store.CountBooks()
		c.JSON(http.StatusOK, ListResponse{Items: books, Count: len(books), Limit: limit, Offset: offset, Total: total})
		return
	}

	// ISBN-looking queries can short-circuit to an exact lookup.
	if s.settings.SearchByISBNFirst() && looksLikeISBN(query) {
		books, err := s.store.GetBooksByISBN(query)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if len(books) > 0 {
			c.JSON(http.StatusOK, ListResponse{Items: books, Count: len(books)})
			return
		}
	}

	if c.Query("fuzzy") == "true" {
		books, err := s.fuzzySearchBooks(query, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, ListResponse{Items: books, Count: len(books), Limit: limit})
		return
	}

	books, err := s.store.SearchBooks(query, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ListResponse{Items: books, Count: len(books), Limit: limit})
}

// fuzzySearchBooks ranks the whole catalog by fuzzy distance to the query.
func (s *Server) fuzzySearchBooks(query string, limit int) ([]database.Book, error) {
	type ranked struct {
		book database.Book
		rank int
	}
	var hits []ranked
	const pageSize = 500
	for offset := 0; ; offset += pageSize {
		page, err := s.store.GetAllBooks(pageSize, offset)
		if err != nil {
			return nil, err
		}
		for _, book := range page {
			haystack := book.Title + " " + strings.Join(book.Authors, " ")
			rank := fuzzy.RankMatchNormalizedFold(query, haystack)
			if rank < 0 {
				continue
			}
			hits = append(hits, ranked{book: book, rank: rank})
		}
		if len(page) < pageSize {
			break
		}
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].rank < hits[j].rank })
	if len(hits) > limit {
		hits = hits[:limit]
	}
	books := make([]database.Book, len(hits))
	for i, h := range hits {
		books[i] = h.book
	}
	return books, nil
}

// looksLikeISBN reports whether a query is a plausible ISBN-10 or ISBN-13
// (digits with optional hyphens, X check digit allowed).
func looksLikeISBN(query string) bool {
	cleaned := strings.ReplaceAll(query, "-", "")
	if len(cleaned) != 10 && len(cleaned) != 13 {
		return false
	}
	for i, r := range cleaned {
		if r >= '0' && r <= '9' {
			continue
		}
		if (r == 'X' || r == 'x') && len(cleaned) == 10 && i == 9 {
			continue
		}
		return false
	}
	return true
}

func (s *Server) getBook(c *gin.Context) {
	book, err := s.store.GetBookByMd5(c.Param("md5"))
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "book not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ItemResponse{Data: book})
}
