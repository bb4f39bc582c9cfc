package server

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taskboard/internal/metrics"
	"taskboard/internal/storage"
	"taskboard/internal/storage/sqlite"
)

// Server provides HTTP handlers for the task board backend.
type Server struct {
	engine    *gin.Engine
	store     *sqlite.Store
	logger    *slog.Logger
	metrics   *metrics.Metrics
	staticDir string
	now       func() time.Time
}

// New constructs the HTTP server with routes and middleware configured.
// A nil metrics value disables the /metrics endpoint.
func New(store *sqlite.Store, logger *slog.Logger, m *metrics.Metrics, staticDir string) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithWriter(gin.DefaultWriter, "/api", "/metrics"))
	if m != nil {
		router.Use(m.Middleware())
	}

	srv := &Server{
		engine:    router,
		store:     store,
		logger:    logger,
		metrics:   m,
		staticDir: staticDir,
		now:       time.Now,
	}

	srv.registerRoutes()
	return srv
}

// Engine exposes the underlying Gin engine.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// registerRoutes wires all API and static handlers together.
func (s *Server) registerRoutes() {
	if s.metrics != nil {
		s.engine.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}

	api := s.engine.Group("/api")
	{
		api.GET("/healthz", s.handleHealth)

		tasks := api.Group("/tasks")
		{
			tasks.GET("", s.handleListTasks)
			tasks.POST("", s.handleCreateTask)
			tasks.GET("/stats", s.handleTaskStats)
			tasks.GET("/:id", s.handleGetTask)
			tasks.POST("/:id/toggle", s.handleToggleTask)
			tasks.DELETE("/:id", s.handleDeleteTask)
		}

		members := api.Group("/team-members")
		{
			members.GET("", s.handleListMembers)
			members.POST("", s.handleCreateMember)
			members.GET("/:id", s.handleGetMember)
			members.PATCH("/:id", s.handleUpdateMember)
			members.DELETE("/:id", s.handleDeleteMember)
		}

		projects := api.Group("/projects")
		{
			projects.GET("", s.handleListProjects)
			projects.POST("", s.handleCreateProject)
			projects.GET("/:id", s.handleGetProject)
			projects.PATCH("/:id", s.handleUpdateProject)
			projects.DELETE("/:id", s.handleDeleteProject)
		}

		api.GET("/darkmode", s.handleGetDarkMode)
		api.PUT("/darkmode", s.handleSetDarkMode)
	}

	s.mountStatic()
}

// handleHealth reports readiness, including a database ping.
func (s *Server) handleHealth(c *gin.Context) {
	if err := s.store.Ping(c.Request.Context()); err != nil {
		s.respondError(c, http.StatusServiceUnavailable, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// statusFor maps store errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, storage.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondStoreError answers with the status matching a store error.
func (s *Server) respondStoreError(c *gin.Context, err error) {
	s.respondError(c, statusFor(err), err)
}

// respondError logs the error and returns a JSON payload.
func (s *Server) respondError(c *gin.Context, status int, err error) {
	attrs := []any{slog.String("path", c.FullPath()), slog.Int("status", status), slog.String("error", err.Error())}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", attrs...)
	} else {
		s.logger.Warn("request rejected", attrs...)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// respondSuccess wraps a payload in a JSON envelope for consistency.
func respondSuccess(c *gin.Context, status int, payload any) {
	if payload == nil {
		c.Status(status)
		return
	}
	c.JSON(status, payload)
}
