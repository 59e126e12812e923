// Package server exposes a loaded pattern catalog over HTTP: a JSON API
// for the query operations, rendered documentation pages, and a
// websocket channel that notifies browsers when the catalog is reloaded
// from disk.
//
// The catalog follows a single-writer/multiple-reader discipline:
// request handlers only ever read; reloads swap the whole catalog under
// the server's write lock.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/patternbook/patternbook/internal/catalog"
	"github.com/patternbook/patternbook/internal/config"
	"github.com/patternbook/patternbook/internal/logging"
	"github.com/patternbook/patternbook/internal/query"
)

// CatalogServer serves a pattern catalog over HTTP.
type CatalogServer struct {
	config *config.Config
	logger logging.Logger

	mutex sync.RWMutex
	cat   *catalog.Catalog

	clientsMutex sync.Mutex
	clients      map[*wsClient]struct{}

	httpServer *http.Server
}

// New creates a catalog server around an already-loaded catalog.
func New(cfg *config.Config, cat *catalog.Catalog, logger logging.Logger) *CatalogServer {
	if logger == nil {
		logger = logging.NewLogger(nil)
	}
	return &CatalogServer{
		config:  cfg,
		logger:  logger.WithComponent("server"),
		cat:     cat,
		clients: make(map[*wsClient]struct{}),
	}
}

// Swap replaces the served catalog after a reload and notifies connected
// live-reload clients. The old catalog is left for the GC; in-flight
// requests finish against whichever catalog they captured.
func (s *CatalogServer) Swap(cat *catalog.Catalog) {
	s.mutex.Lock()
	s.cat = cat
	s.mutex.Unlock()

	s.broadcast([]byte(`{"type":"reload"}`))
}

// queries returns a read-only view over the current catalog.
func (s *CatalogServer) queries() *query.Query {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return query.New(s.cat)
}

// Handler builds the route table.
func (s *CatalogServer) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /api/patterns", s.handlePatterns)
	mux.HandleFunc("GET /api/patterns/{name}", s.handlePattern)
	mux.HandleFunc("GET /api/categories/{category}", s.handleCategory)
	mux.HandleFunc("GET /api/search", s.handleSearch)
	mux.HandleFunc("GET /render", s.handleRender)
	mux.HandleFunc("GET /ws", s.handleWebSocket)

	return mux
}

// Start runs the HTTP server until ctx is cancelled, then shuts down
// gracefully.
func (s *CatalogServer) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.ListenAndServe()
	}()

	s.logger.Info(ctx, "Catalog server listening", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.closeClients()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down server: %w", err)
		}
		return nil
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("serving catalog: %w", err)
		}
		return nil
	}
}
