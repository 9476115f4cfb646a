// file: internal/server/settings_handlers.go
// version: 1.1.0
// guid: 1079f611-21d9-40e7-a016-8cd87170236c

package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) getSettings(c *gin.Context) {
	items, err := s.settings.All()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ListResponse{Items: items, Count: len(items)})
}

func (s *Server) putSetting(c *gin.Context) {
	var payload struct {
		Value string `json:"value"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	key := c.Param("key")
	if err := s.settings.Set(key, payload.Value); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if s.onSettingsChanged != nil {
		s.onSettingsChanged()
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "setting updated", Code: key})
}
