package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"taskboard/internal/models"
	"taskboard/internal/stats"
	"taskboard/internal/storage"
)

type taskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Deadline    *string `json:"deadline"`
	CreatedAt   *string `json:"createdAt"`
}

// handleListTasks returns every task.
func (s *Server) handleListTasks(c *gin.Context) {
	tasks, err := s.store.ListTasks(c.Request.Context())
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, tasks)
}

// handleCreateTask validates and stores a new task.
func (s *Server) handleCreateTask(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Title == nil || strings.TrimSpace(*req.Title) == "" {
		s.respondError(c, http.StatusBadRequest, fmt.Errorf("%w: title is required", storage.ErrValidation))
		return
	}

	deadline, err := parseTimestamp("deadline", req.Deadline)
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	createdAt, err := parseTimestamp("createdAt", req.CreatedAt)
	if err != nil {
		s.respondStoreError(c, err)
		return
	}

	task, err := s.store.CreateTask(c.Request.Context(), models.NewTask{
		Title:       *req.Title,
		Description: optionalText(req.Description),
		Deadline:    deadline,
		CreatedAt:   createdAt,
	})
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	s.countMutation("create")
	respondSuccess(c, http.StatusCreated, task)
}

// handleGetTask returns a single task.
func (s *Server) handleGetTask(c *gin.Context) {
	task, err := s.store.GetTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, task)
}

// handleToggleTask flips the completion flag.
func (s *Server) handleToggleTask(c *gin.Context) {
	task, err := s.store.ToggleTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	s.countMutation("toggle")
	respondSuccess(c, http.StatusOK, task)
}

// handleDeleteTask removes a task completely.
func (s *Server) handleDeleteTask(c *gin.Context) {
	if err := s.store.DeleteTask(c.Request.Context(), c.Param("id")); err != nil {
		s.respondStoreError(c, err)
		return
	}
	s.countMutation("delete")
	respondSuccess(c, http.StatusNoContent, nil)
}

// handleTaskStats computes the dashboard summary from a fresh listing.
func (s *Server) handleTaskStats(c *gin.Context) {
	tasks, err := s.store.ListTasks(c.Request.Context())
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, stats.Compute(tasks, s.now()))
}

func (s *Server) countMutation(op string) {
	if s.metrics != nil {
		s.metrics.TaskMutation(op)
	}
}

// optionalText treats a missing or blank string as absent.
func optionalText(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func getString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
