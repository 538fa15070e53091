package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"
)

const (
	httpReadTimeout  = 15 * time.Second
	httpWriteTimeout = 15 * time.Second
)

// Server ties the HTTP handler, the WebSocket hub, and the file watcher
// together for `swatch serve`.
type Server struct {
	httpServer *http.Server
	wsHub      *WebSocketHub
	watcherMu  sync.Mutex
	watcher    *FileWatcher // Guarded by watcherMu across library switches
}

// NewServer wires up the full serving stack. An empty libraryRoot disables
// file watching and the WebSocket endpoint.
func NewServer(handler *Handler, port int, libraryRoot string) *Server {
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	s := &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", port),
			ReadTimeout:  httpReadTimeout,
			WriteTimeout: httpWriteTimeout,
		},
	}

	if libraryRoot != "" {
		s.wsHub = NewWebSocketHub()
		mux.HandleFunc("GET /api/v1/ws", s.wsHub.ServeWS)

		watcher, err := NewFileWatcher(libraryRoot)
		if err != nil {
			log.Printf("Warning: failed to create file watcher: %v", err)
		} else {
			watcher.Subscribe(s.wsHub)
			s.watcher = watcher
		}
	}

	s.httpServer.Handler = Logging(Cors(mux))

	// Rebuild the watcher whenever the browser switches libraries
	handler.SetOnLibrarySwitch(s.switchWatcher)

	return s
}

// Start runs the file watcher and then blocks serving HTTP until shutdown.
func (s *Server) Start() error {
	if s.watcher != nil {
		if err := s.watcher.Start(); err != nil {
			log.Printf("Warning: failed to start file watcher: %v", err)
		}
	}
	return s.httpServer.ListenAndServe()
}

// Shutdown stops the watcher and drains the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.watcher != nil {
		s.watcher.Stop()
	}
	return s.httpServer.Shutdown(ctx)
}

// Addr returns the address the server is listening on.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// switchWatcher replaces the running watcher with one rooted at the newly
// selected library. Watchers are single-use, so switch means stop and rebuild.
func (s *Server) switchWatcher(newLibraryRoot string) {
	s.watcherMu.Lock()
	defer s.watcherMu.Unlock()

	if s.watcher != nil {
		if err := s.watcher.Stop(); err != nil {
			log.Printf("Warning: failed to stop file watcher: %v", err)
		}
		s.watcher = nil
	}

	if s.wsHub == nil {
		return // File watching was never enabled
	}

	watcher, err := NewFileWatcher(newLibraryRoot)
	if err != nil {
		log.Printf("Warning: failed to create file watcher for %s: %v", newLibraryRoot, err)
		return
	}

	watcher.Subscribe(s.wsHub)
	if err := watcher.Start(); err != nil {
		log.Printf("Warning: failed to start file watcher: %v", err)
		return
	}

	s.watcher = watcher
	log.Printf("File watcher switched to: %s", newLibraryRoot)
}
