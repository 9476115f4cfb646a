// file: internal/checker/listchecker.go
// version: 1.2.0
// guid: 29b6933a-3ad3-41f1-ba1e-1435211d2fb5

// Package checker runs the periodic background loops: the list checker that
// syncs import lists from their sources, and the request checker that tries
// to fulfill active download requests against the catalog.
package checker

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/jdfalk/bookwatch/internal/database"
	"github.com/jdfalk/bookwatch/internal/importer"
	"github.com/jdfalk/bookwatch/internal/metrics"
)

// ErrCheckInProgress is returned when a manual trigger races a running cycle.
var ErrCheckInProgress = errors.New("check already in progress")

// ListCheckerStatus is a snapshot of the list checker state.
type ListCheckerStatus struct {
	Running      bool       `json:"running"`
	LastRunAt    *time.Time `json:"lastRunAt,omitempty"`
	LastDuration string     `json:"lastDuration,omitempty"`
	ListsChecked int        `json:"listsChecked"`
	ErrorCount   int        `json:"errorCount"`
}

// ListChecker walks every enabled import list and syncs it. A cycle is
// strictly sequential with a randomized pause between lists so source sites
// never see burst traffic.
type ListChecker struct {
	store    database.Store
	importer *importer.Importer

	// sleep is swapped out in tests.
	sleep func(ctx context.Context, d time.Duration)

	mu           sync.Mutex
	running      bool
	lastRunAt    *time.Time
	lastDuration time.Duration
	listsChecked int
	errorCount   int
}

// NewListChecker creates a list checker over the given store and importer.
func NewListChecker(store database.Store, imp *importer.Importer) *ListChecker {
	return &ListChecker{
		store:    store,
		importer: imp,
		sleep:    sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

// jitterBetweenLists returns a random pause in [3s, 5s).
func jitterBetweenLists() time.Duration {
	return time.Duration(3000+rand.Intn(2000)) * time.Millisecond
}

// CheckAllLists runs one sync cycle. If a cycle is already running it
// returns immediately without doing anything.
func (c *ListChecker) CheckAllLists(ctx context.Context) {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		log.Printf("[DEBUG] List check already running, skipping")
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
		metrics.IncCheckCycle("lists")
		metrics.ObserveCycleDuration("lists", elapsed)
	}()

	lists, err := c.store.GetEnabledImportLists()
	if err != nil {
		log.Printf("[ERROR] Failed to load import lists: %v", err)
		return
	}

	metrics.SetEnabledLists(len(lists))
	log.Printf("[INFO] Starting list check cycle: %d enabled lists", len(lists))

	checked := 0
	failures := 0
	for i, list := range lists {
		if ctx.Err() != nil {
			log.Printf("[INFO] List check cycle cancelled after %d lists", checked)
			break
		}
		if i > 0 {
			c.sleep(ctx, jitterBetweenLists())
			if ctx.Err() != nil {
				break
			}
		}

		result, err := c.importer.FetchAndProcessList(ctx, list.ID)
		checked++
		if err != nil {
			failures++
			metrics.AddListFetchErrors(1)
			log.Printf("[WARN] List %s (%s) failed: %v", list.ID, list.Name, err)
			continue
		}
		metrics.AddListsProcessed(1)
		metrics.AddBooksImported(result.NewBooks)
		log.Printf("[INFO] List %s (%s): %d pages, %d seen, %d new",
			list.ID, list.Name, result.Pages, result.Seen, result.NewBooks)
	}

	c.mu.Lock()
	c.listsChecked = checked
	c.errorCount = failures
	c.mu.Unlock()

	log.Printf("[INFO] List check cycle complete: %d checked, %d failed in %s",
		checked, failures, time.Since(start).Round(time.Millisecond))
}

// TriggerNow starts a cycle in the background, or reports that one is
// already running.
func (c *ListChecker) TriggerNow(ctx context.Context) error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return ErrCheckInProgress
	}
	c.mu.Unlock()

	go c.CheckAllLists(ctx)
	return nil
}

// GetStatus returns a snapshot of the checker state.
func (c *ListChecker) GetStatus() ListCheckerStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	status := ListCheckerStatus{
		Running:      c.running,
		LastRunAt:    c.lastRunAt,
		ListsChecked: c.listsChecked,
		ErrorCount:   c.errorCount,
	}
	if c.lastDuration > 0 {
		status.LastDuration = c.lastDuration.Round(time.Millisecond).String()
	}
	return status
}
