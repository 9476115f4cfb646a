// file: internal/requests/service.go
// version: 1.1.0
// guid: 3cf2d781-23a0-414d-9bd9-b6daa6393cbe

// Package requests implements the download request lifecycle: creation with
// a duplicate guard, approval workflow transitions, and reactivation of
// cancelled requests.
package requests

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jdfalk/bookwatch/internal/database"
)

var (
	// ErrDuplicateRequest means the same user already has a live request
	// for an equivalent query.
	ErrDuplicateRequest = errors.New("duplicate request")
	// ErrInvalidTransition means the requested status change is not allowed
	// from the request's current status.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Service owns download request state changes. All writes go through it so
// the status machine stays consistent.
type Service struct {
	store database.Store
}

func New(store database.Store) *Service {
	return &Service{store: store}
}

// CreateParams are the inputs for a new download request.
type CreateParams struct {
	UserID        string               `json:"user_id"`
	Query         database.QueryParams `json:"query_params"`
	TargetBookMd5 string               `json:"target_book_md5,omitempty"`
	AutoApprove   bool                 `json:"-"`
}

// Create validates and stores a new request. Requests start in
// pending_approval unless AutoApprove is set. A second live request from the
// same user for an equivalent query (same normalized title/author, format
// and language) is rejected with ErrDuplicateRequest.
func (s *Service) Create(params CreateParams) (*database.DownloadRequest, error) {
	if params.UserID == "" {
		return nil, fmt.Errorf("user_id is required")
	}
	title := strings.TrimSpace(params.Query.Title)
	author := strings.TrimSpace(params.Query.Author)
	if title == "" && author == "" && params.TargetBookMd5 == "" {
		return nil, fmt.Errorf("a title, an author or a target book is required")
	}

	hash := database.QueryHash(params.Query)
	existing, err := s.store.FindDuplicateRequest(params.UserID, hash)
	if err != nil {
		return nil, fmt.Errorf("duplicate check failed: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: request %s already covers this query", ErrDuplicateRequest, existing.ID)
	}

	req := &database.DownloadRequest{
		UserID: params.UserID,
		Query:  params.Query,
		Status: database.StatusPendingApproval,
	}
	if params.TargetBookMd5 != "" {
		req.TargetBookMd5 = &params.TargetBookMd5
	}
	if params.AutoApprove {
		now := time.Now()
		req.Status = database.StatusActive
		req.ApprovedAt = &now
	}

	created, err := s.store.CreateDownloadRequest(req)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	log.Printf("[INFO] Created download request %s for user %s (%s)", created.ID, created.UserID, created.Status)
	return created, nil
}

// Approve moves a pending request to active.
func (s *Service) Approve(id, approverID string) (*database.DownloadRequest, error) {
	return s.transition(id, database.StatusActive, func(req *database.DownloadRequest) error {
		if req.Status != database.StatusPendingApproval {
			return fmt.Errorf("%w: cannot approve a %s request", ErrInvalidTransition, req.Status)
		}
		now := time.Now()
		req.ApprovedAt = &now
		if approverID != "" {
			req.ApproverID = &approverID
		}
		return nil
	})
}

// Reject moves a pending request to rejected with an optional reason.
func (s *Service) Reject(id, approverID, reason string) (*database.DownloadRequest, error) {
	return s.transition(id, database.StatusRejected, func(req *database.DownloadRequest) error {
		if req.Status != database.StatusPendingApproval {
			return fmt.Errorf("%w: cannot reject a %s request", ErrInvalidTransition, req.Status)
		}
		now := time.Now()
		req.RejectedAt = &now
		if approverID != "" {
			req.ApproverID = &approverID
		}
		if reason != "" {
			req.RejectionReason = &reason
		}
		return nil
	})
}

// Cancel stops an active or pending request.
func (s *Service) Cancel(id string) (*database.DownloadRequest, error) {
	return s.transition(id, database.StatusCancelled, func(req *database.DownloadRequest) error {
		if req.Status != database.StatusActive && req.Status != database.StatusPendingApproval {
			return fmt.Errorf("%w: cannot cancel a %s request", ErrInvalidTransition, req.Status)
		}
		return nil
	})
}

// Reactivate puts a cancelled request back into the checking rotation. The
// duplicate guard applies again so reactivation cannot create two live
// requests for one query.
func (s *Service) Reactivate(id string) (*database.DownloadRequest, error) {
	req, err := s.store.GetDownloadRequestByID(id)
	if err != nil {
		return nil, err
	}
	if req.Status != database.StatusCancelled {
		return nil, fmt.Errorf("%w: cannot reactivate a %s request", ErrInvalidTransition, req.Status)
	}
	dup, err := s.store.FindDuplicateRequest(req.UserID, database.QueryHash(req.Query))
	if err != nil {
		return nil, fmt.Errorf("duplicate check failed: %w", err)
	}
	if dup != nil && dup.ID != req.ID {
		return nil, fmt.Errorf("%w: request %s already covers this query", ErrDuplicateRequest, dup.ID)
	}

	req.Status = database.StatusActive
	req.LastCheckedAt = nil
	updated, err := s.store.UpdateDownloadRequest(id, req)
	if err != nil {
		return nil, err
	}
	log.Printf("[INFO] Reactivated download request %s", id)
	return updated, nil
}

func (s *Service) transition(id, to string, apply func(*database.DownloadRequest) error) (*database.DownloadRequest, error) {
	req, err := s.store.GetDownloadRequestByID(id)
	if err != nil {
		return nil, err
	}
	if err := apply(req); err != nil {
		return nil, err
	}
	req.Status = to
	updated, err := s.store.UpdateDownloadRequest(id, req)
	if err != nil {
		return nil, err
	}
	log.Printf("[INFO] Download request %s -> %s", id, to)
	return updated, nil
}

// Get returns one request by id.
func (s *Service) Get(id string) (*database.DownloadRequest, error) {
	return s.store.GetDownloadRequestByID(id)
}

// ListByUser returns all requests of one user, newest first.
func (s *Service) ListByUser(userID string) ([]database.DownloadRequest, error) {
	return s.store.GetDownloadRequestsByUserID(userID)
}

// ListByStatus returns all requests in one status.
func (s *Service) ListByStatus(status string) ([]database.DownloadRequest, error) {
	return s.store.GetDownloadRequestsByStatus(status)
}

// Counts returns the number of requests per status.
func (s *Service) Counts() (map[string]int, error) {
	return s.store.CountRequestsByStatus()
}
