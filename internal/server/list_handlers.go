// file: internal/server/list_handlers.go
// version: 1.2.0
// guid: 6eedadb3-0d55-41e1-a4f6-90544988f9aa

package server

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jdfalk/bookwatch/internal/checker"
	"github.com/jdfalk/bookwatch/internal/database"
	"github.com/jdfalk/bookwatch/internal/fetcher"
)

type listPayload struct {
	UserID          string                  `json:"user_id"`
	Source          string                  `json:"source" binding:"required"`
	Name            string                  `json:"name" binding:"required"`
	SourceConfig    map[string]string       `json:"source_config" binding:"required"`
	SearchDefaults  database.SearchDefaults `json:"search_defaults"`
	ImportMode      string                  `json:"import_mode"`
	UseBookLanguage bool                    `json:"use_book_language"`
	Enabled         *bool                   `json:"enabled"`
}

func (s *Server) getLists(c *gin.Context) {
	var (
		lists []database.ImportList
		err   error
	)
	if userID := c.Query("user_id"); userID != "" {
		lists, err = s.store.GetImportListsByUserID(userID)
	} else {
		lists, err = s.store.GetAllImportLists()
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ListResponse{Items: lists, Count: len(lists)})
}

func (s *Server) getList(c *gin.Context) {
	list, err := s.store.GetImportListByID(c.Param("id"))
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "list not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ItemResponse{Data: list})
}

func (s *Server) createList(c *gin.Context) {
	var payload listPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := s.registry.Get(fetcher.Source(payload.Source)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	mode := payload.ImportMode
	if mode == "" {
		mode = database.ImportModeAll
	}
	if mode != database.ImportModeAll && mode != database.ImportModeFuture {
		c.JSON(http.StatusBadRequest, gin.H{"error": "import_mode must be \"all\" or \"future\""})
		return
	}

	list := &database.ImportList{
		UserID:          payload.UserID,
		Source:          payload.Source,
		Name:            payload.Name,
		SourceConfig:    payload.SourceConfig,
		SearchDefaults:  payload.SearchDefaults,
		ImportMode:      mode,
		UseBookLanguage: payload.UseBookLanguage,
		Enabled:         payload.Enabled == nil || *payload.Enabled,
	}
	created, err := s.store.CreateImportList(list)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, ItemResponse{Data: created})
}

func (s *Server) updateList(c *gin.Context) {
	id := c.Param("id")
	existing, err := s.store.GetImportListByID(id)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "list not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var payload listPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	existing.Name = payload.Name
	existing.SourceConfig = payload.SourceConfig
	existing.SearchDefaults = payload.SearchDefaults
	existing.UseBookLanguage = payload.UseBookLanguage
	if payload.ImportMode != "" {
		existing.ImportMode = payload.ImportMode
	}
	if payload.Enabled != nil {
		existing.Enabled = *payload.Enabled
	}

	updated, err := s.store.UpdateImportList(id, existing)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ItemResponse{Data: updated})
}

func (s *Server) deleteList(c *gin.Context) {
	id := c.Param("id")
	if err := s.store.DeleteImportList(id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "list not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, DeleteResponse{Deleted: true, ID: id})
}

// refreshList syncs one list immediately, outside the scheduled cycle.
func (s *Server) refreshList(c *gin.Context) {
	id := c.Param("id")
	if _, err := s.store.GetImportListByID(id); errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "list not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Minute)
	defer cancel()
	result, err := s.importer.FetchAndProcessList(ctx, id)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ItemResponse{Data: result})
}

func (s *Server) getListStats(c *gin.Context) {
	stats, err := s.store.GetListStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ItemResponse{Data: stats})
}

func (s *Server) getListSources(c *gin.Context) {
	sources := s.registry.Sources()
	c.JSON(http.StatusOK, ListResponse{Items: sources, Count: len(sources)})
}

// getAvailableLists enumerates the shelves/collections a source account
// exposes, for sources that support it.
func (s *Server) getAvailableLists(c *gin.Context) {
	f, err := s.registry.Get(fetcher.Source(c.Param("source")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	enumerator, ok := f.(fetcher.ListEnumerator)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "source does not support list enumeration"})
		return
	}

	cfg := fetcher.Config{}
	for key, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			cfg[key] = values[0]
		}
	}
	keys := make([]string, 0, len(cfg))
	for key := range cfg {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	cacheKey := c.Param("source")
	for _, key := range keys {
		cacheKey += "|" + key + "=" + cfg[key]
	}
	if lists, ok := s.shelfCache.Get(cacheKey); ok {
		c.JSON(http.StatusOK, ListResponse{Items: lists, Count: len(lists)})
		return
	}
	lists, err := enumerator.GetAvailableLists(c.Request.Context(), cfg)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	s.shelfCache.Set(cacheKey, lists)
	c.JSON(http.StatusOK, ListResponse{Items: lists, Count: len(lists)})
}

func (s *Server) validateListConfig(c *gin.Context) {
	var payload struct {
		Source string         `json:"source" binding:"required"`
		Config fetcher.Config `json:"config" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	f, err := s.registry.Get(fetcher.Source(payload.Source))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result := f.ValidateConfig(c.Request.Context(), payload.Config)
	c.JSON(http.StatusOK, ItemResponse{Data: result})
}

func (s *Server) parseProfileURL(c *gin.Context) {
	var payload struct {
		URL string `json:"url" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	source, userID, ok := s.registry.ParseProfileURL(payload.URL)
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "URL does not match any known source"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"source": source, "user_id": userID})
}

// triggerListCheck kicks off a full cycle; 409 when one is already running.
func (s *Server) triggerListCheck(c *gin.Context) {
	if err := s.listChecker.TriggerNow(context.Background()); err != nil {
		if errors.Is(err, checker.ErrCheckInProgress) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, MessageResponse{Message: "list check started"})
}

func (s *Server) getListCheckStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.listChecker.GetStatus())
}
