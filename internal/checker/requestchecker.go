// file: internal/checker/requestchecker.go
// version: 1.1.0
// guid: 413dcf94-ef84-43ee-9c1e-6762733f6e83

package checker

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/jdfalk/bookwatch/internal/database"
	"github.com/jdfalk/bookwatch/internal/matcher"
	"github.com/jdfalk/bookwatch/internal/metrics"
	"github.com/jdfalk/bookwatch/internal/settings"
)

const candidateLimit = 50

// RequestCheckerStatus is a snapshot of the request checker state.
type RequestCheckerStatus struct {
	Running       bool       `json:"running"`
	LastRunAt     *time.Time `json:"lastRunAt,omitempty"`
	LastDuration  string     `json:"lastDuration,omitempty"`
	Checked       int        `json:"checked"`
	Fulfilled     int        `json:"fulfilled"`
	ActiveBacklog int        `json:"activeBacklog"`
}

// RequestChecker matches active download requests against the catalog and
// marks them fulfilled when a book scores above the configured threshold.
type RequestChecker struct {
	store    database.Store
	settings *settings.Service

	mu           sync.Mutex
	running      bool
	lastRunAt    *time.Time
	lastDuration time.Duration
	checked      int
	fulfilled    int
	backlog      int
}

// NewRequestChecker creates a request checker over the given store.
func NewRequestChecker(store database.Store, svc *settings.Service) *RequestChecker {
	return &RequestChecker{store: store, settings: svc}
}

// CheckAllRequests runs one fulfillment cycle over the active requests,
// oldest-checked-first so no request starves. If a cycle is already running
// it returns immediately.
func (c *RequestChecker) CheckAllRequests(ctx context.Context) {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		log.Printf("[DEBUG] Request check already running, skipping")
		return
	}
	c.running = true
	c.mu.Unlock()

	start := time.Now()
	defer func() {
		elapsed := time.Since(start)
		c.mu.Lock()
		c.running = false
		now := time.Now()
		c.lastRunAt = &now
		c.lastDuration = elapsed
		c.mu.Unlock()
		metrics.IncCheckCycle("requests")
		metrics.ObserveCycleDuration("requests", elapsed)
	}()

	requests, err := c.store.GetActiveRequestsOrdered()
	if err != nil {
		log.Printf("[ERROR] Failed to load active requests: %v", err)
		return
	}

	metrics.SetActiveRequests(len(requests))
	log.Printf("[INFO] Starting request check cycle: %d active requests", len(requests))

	policy := c.settings.MatchPolicy()
	checked := 0
	fulfilled := 0
	for i := range requests {
		if ctx.Err() != nil {
			log.Printf("[INFO] Request check cycle cancelled after %d requests", checked)
			break
		}
		req := &requests[i]
		checked++
		match, err := c.findMatch(req, policy)
		if err != nil {
			log.Printf("[WARN] Request %s check failed: %v", req.ID, err)
		} else if match != nil {
			if err := c.fulfill(req, match); err != nil {
				log.Printf("[ERROR] Failed to fulfill request %s: %v", req.ID, err)
			} else {
				fulfilled++
				metrics.IncRequestFulfilled()
				log.Printf("[INFO] Request %s fulfilled by %q (%s)", req.ID, match.Title, match.Md5)
			}
		}
		// The checked timestamp advances even on failure so the ordering
		// rotates through the backlog.
		if err := c.store.TouchRequestChecked(req.ID, time.Now()); err != nil {
			log.Printf("[WARN] Failed to touch request %s: %v", req.ID, err)
		}
		metrics.AddRequestsChecked(1)
	}

	c.mu.Lock()
	c.checked = checked
	c.fulfilled = fulfilled
	c.backlog = len(requests) - fulfilled
	c.mu.Unlock()

	log.Printf("[INFO] Request check cycle complete: %d checked, %d fulfilled in %s",
		checked, fulfilled, time.Since(start).Round(time.Millisecond))
}

// findMatch returns the best catalog book for a request, or nil when nothing
// clears the match threshold.
func (c *RequestChecker) findMatch(req *database.DownloadRequest, policy matcher.MatchPolicy) (*database.Book, error) {
	// A pinned target book short-circuits scoring entirely.
	if req.TargetBookMd5 != nil && *req.TargetBookMd5 != "" {
		book, err := c.store.GetBookByMd5(*req.TargetBookMd5)
		if err == database.ErrNotFound {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return book, nil
	}

	candidates, err := c.candidates(req)
	if err != nil {
		return nil, err
	}

	var best *database.Book
	bestScore := 0.0
	for i := range candidates {
		book := &candidates[i]
		if !formatAcceptable(req.Query.Format, book.Format) {
			continue
		}
		if !languageAcceptable(req.Query.Language, book.Language) {
			continue
		}
		score := policy.CalculateBookMatchScore(req.Query.Title, req.Query.Author, book.Title, book.Authors)
		if score > bestScore {
			bestScore = score
			best = book
		}
	}
	if best == nil || bestScore < policy.Threshold {
		return nil, nil
	}
	return best, nil
}

// candidates pulls catalog rows for the request query, fuzzy-ranked so the
// exact scorer only sees plausible titles.
func (c *RequestChecker) candidates(req *database.DownloadRequest) ([]database.Book, error) {
	query := req.Query.Title
	if query == "" {
		query = req.Query.Author
	}
	books, err := c.store.SearchBooks(query, candidateLimit)
	if err != nil {
		return nil, err
	}
	if len(books) > 0 || req.Query.Title == "" {
		return books, nil
	}

	// SQL LIKE missed; fall back to a fuzzy scan so typos in the request
	// title still find their book.
	target := strings.ToLower(req.Query.Title)
	var matched []database.Book
	const pageSize = 500
	for offset := 0; ; offset += pageSize {
		page, err := c.store.GetAllBooks(pageSize, offset)
		if err != nil {
			return nil, err
		}
		for _, book := range page {
			if fuzzy.MatchNormalizedFold(target, book.Title) {
				matched = append(matched, book)
				if len(matched) >= candidateLimit {
					return matched, nil
				}
			}
		}
		if len(page) < pageSize {
			return matched, nil
		}
	}
}

func (c *RequestChecker) fulfill(req *database.DownloadRequest, book *database.Book) error {
	now := time.Now()
	req.Status = database.StatusFulfilled
	req.FulfilledAt = &now
	req.FulfilledBookMd5 = &book.Md5
	_, err := c.store.UpdateDownloadRequest(req.ID, req)
	return err
}

// formatAcceptable reports whether a requested format constraint admits the
// book. An unconstrained request or an unknown book format passes.
func formatAcceptable(want, have string) bool {
	if want == "" || have == "" {
		return true
	}
	return strings.EqualFold(want, have)
}

func languageAcceptable(want, have string) bool {
	if want == "" || have == "" {
		return true
	}
	return strings.EqualFold(want, have)
}

// GetStatus returns a snapshot of the checker state.
func (c *RequestChecker) GetStatus() RequestCheckerStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	status := RequestCheckerStatus{
		Running:       c.running,
		LastRunAt:     c.lastRunAt,
		Checked:       c.checked,
		Fulfilled:     c.fulfilled,
		ActiveBacklog: c.backlog,
	}
	if c.lastDuration > 0 {
		status.LastDuration = c.lastDuration.Round(time.Millisecond).String()
	}
	return status
}

// TriggerNow starts a cycle in the background, or reports that one is
// already running.
func (c *RequestChecker) TriggerNow(ctx context.Context) error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return ErrCheckInProgress
	}
	c.mu.Unlock()

	go c.CheckAllRequests(ctx)
	return nil
}
