package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/watchmon/pkg/domain"
	"github.com/umputun/watchmon/pkg/metrics"
	"github.com/umputun/watchmon/pkg/scheduler"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store
//go:generate moq -out mocks/scheduler.go -pkg mocks -skip-ensure -fmt goimports . Scheduler

// Server represents HTTP server instance
type Server struct {
	config    ConfigProvider
	store     Store
	scheduler Scheduler
	version   string
	debug     bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Store interface for watched item and action management
type Store interface {
	ListWatchedItems(ctx context.Context, activeOnly bool) ([]domain.WatchedItem, error)
	GetWatchedItem(ctx context.Context, id int64) (*domain.WatchedItem, error)
	CreateWatchedItem(ctx context.Context, item *domain.WatchedItem) error
	SetWatchedItemStatus(ctx context.Context, id int64, status domain.WatchStatus) error
	UpdateWatchedItemGoal(ctx context.Context, id int64, goal string) error
	DeleteWatchedItem(ctx context.Context, id int64) error
	ListActions(ctx context.Context, filter domain.ActionFilter) ([]domain.Action, error)
	GetAction(ctx context.Context, id int64) (*domain.Action, error)
	UpdateActionStatus(ctx context.Context, id int64, status domain.ActionStatus) error
	ClearActionsByStatus(ctx context.Context, status domain.ActionStatus) (int64, error)
}

// Scheduler interface for manual sweeps and status reporting
type Scheduler interface {
	SyncNow(ctx context.Context) (scheduler.SweepResult, bool)
	Status() scheduler.Status
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
}

// New initializes a new server instance
func New(cfg ConfigProvider, store Store, sched Scheduler, version string, debug bool) *Server {
	s := &Server{
		config:    cfg,
		store:     store,
		scheduler: sched,
		version:   version,
		debug:     debug,
		router:    routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	lgr.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       timeout,
		// manual sync runs a whole sweep inside the request
		WriteTimeout: 0,
	}
	srv := s.httpServer
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		lgr.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			lgr.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("watchmon", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(64 * 1024))
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("POST /sync", s.syncHandler)

		r.HandleFunc("GET /watched", s.listWatchedHandler)
		r.HandleFunc("POST /watched", s.createWatchedHandler)
		r.HandleFunc("PUT /watched/{id}/status", s.watchedStatusHandler)
		r.HandleFunc("PUT /watched/{id}/goal", s.watchedGoalHandler)
		r.HandleFunc("DELETE /watched/{id}", s.deleteWatchedHandler)

		r.HandleFunc("GET /actions", s.listActionsHandler)
		r.HandleFunc("PUT /actions/{id}/status", s.actionStatusHandler)
		r.HandleFunc("DELETE /actions", s.clearActionsHandler)
	})

	s.router.Handle("GET /metrics", metrics.Handler())
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			lgr.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
