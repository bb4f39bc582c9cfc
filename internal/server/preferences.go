package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type darkModeRequest struct {
	DarkMode *bool `json:"darkMode"`
}

func (s *Server) handleGetDarkMode(c *gin.Context) {
	enabled, err := s.store.DarkMode(c.Request.Context())
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"darkMode": enabled})
}

func (s *Server) handleSetDarkMode(c *gin.Context) {
	var req darkModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	if req.DarkMode == nil {
		s.respondError(c, http.StatusBadRequest, fmt.Errorf("darkMode is required"))
		return
	}
	if err := s.store.SetDarkMode(c.Request.Context(), *req.DarkMode); err != nil {
		s.respondStoreError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"darkMode": *req.DarkMode})
}
