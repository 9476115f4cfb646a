// file: internal/server/request_handlers.go
// version: 1.1.0
// guid: d314af57-d3eb-45e8-9ecc-b8d9c91adc0a

package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jdfalk/bookwatch/internal/checker"
	"github.com/jdfalk/bookwatch/internal/database"
	"github.com/jdfalk/bookwatch/internal/requests"
)

func (s *Server) getRequests(c *gin.Context) {
	var (
		items []database.DownloadRequest
		err   error
	)
	switch {
	case c.Query("user_id") != "":
		items, err = s.requests.ListByUser(c.Query("user_id"))
	case c.Query("status") != "":
		items, err = s.requests.ListByStatus(c.Query("status"))
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id or status query parameter is required"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ListResponse{Items: items, Count: len(items)})
}

func (s *Server) getRequest(c *gin.Context) {
	req, err := s.requests.Get(c.Param("id"))
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "request not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ItemResponse{Data: req})
}

func (s *Server) createRequest(c *gin.Context) {
	var params requests.CreateParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := s.requests.Create(params)
	if err != nil {
		if errors.Is(err, requests.ErrDuplicateRequest) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, ItemResponse{Data: created})
}

// mutateRequest centralizes the error mapping of workflow transitions.
func (s *Server) mutateRequest(c *gin.Context, fn func(id string) (*database.DownloadRequest, error)) {
	req, err := fn(c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, database.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "request not found"})
		case errors.Is(err, requests.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, requests.ErrDuplicateRequest):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, ItemResponse{Data: req})
}

func (s *Server) approveRequest(c *gin.Context) {
	var payload struct {
		ApproverID string `json:"approver_id"`
	}
	_ = c.ShouldBindJSON(&payload)
	s.mutateRequest(c, func(id string) (*database.DownloadRequest, error) {
		return s.requests.Approve(id, payload.ApproverID)
	})
}

func (s *Server) rejectRequest(c *gin.Context) {
	var payload struct {
		ApproverID string `json:"approver_id"`
		Reason     string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&payload)
	s.mutateRequest(c, func(id string) (*database.DownloadRequest, error) {
		return s.requests.Reject(id, payload.ApproverID, payload.Reason)
	})
}

func (s *Server) cancelRequest(c *gin.Context) {
	s.mutateRequest(c, s.requests.Cancel)
}

func (s *Server) reactivateRequest(c *gin.Context) {
	s.mutateRequest(c, s.requests.Reactivate)
}

func (s *Server) getRequestCounts(c *gin.Context) {
	counts, err := s.requests.Counts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ItemResponse{Data: counts})
}

func (s *Server) triggerRequestCheck(c *gin.Context) {
	if err := s.requestChecker.TriggerNow(context.Background()); err != nil {
		if errors.Is(err, checker.ErrCheckInProgress) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, MessageResponse{Message: "request check started"})
}

func (s *Server) getRequestCheckStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.requestChecker.GetStatus())
}
