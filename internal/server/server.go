// Package server exposes the answer engine over HTTP: the chat endpoint the
// widget calls, article lookups, the websocket transport, and the
// interaction log.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/talentpath/assist/internal/answer"
	"github.com/talentpath/assist/internal/interactions"
	"github.com/talentpath/assist/internal/knowledge"
)

// Config holds server configuration.
type Config struct {
	Port     int
	AllowAll bool // allow all CORS origins (dev mode)
}

// Server is the assist HTTP server.
type Server struct {
	cfg        Config
	engine     *answer.Engine
	kb         *knowledge.Store
	log        *interactions.Store
	router     chi.Router
	httpServer *http.Server
}

// New creates a server with all dependencies. The interactions store may be
// nil, in which case turns are not persisted.
func New(cfg Config, engine *answer.Engine, kb *knowledge.Store, logStore *interactions.Store) *Server {
	s := &Server{
		cfg:    cfg,
		engine: engine,
		kb:     kb,
		log:    logStore,
	}

	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	corsOpts := cors.Options{
		AllowedOrigins:   []string{"https://*.talentpath.io", "http://localhost:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Post("/api/chat", s.handleChat)
	r.Get("/api/articles", s.handleListArticles)
	r.Get("/api/articles/{id}", s.handleGetArticle)
	r.Get("/ws/chat", s.handleWebSocket)

	if s.log != nil {
		interactions.RegisterRoutes(r, s.log)
	}

	return r
}

// Router returns the chi router, mainly for tests.
func (s *Server) Router() chi.Router { return s.router }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("assist server listening on %s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
