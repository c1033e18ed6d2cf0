// cmd/detector/server.go
package main

import (
	"context"
	"html/template"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/M0105R/FakeNewsDetector/internal/classifier"
)

// Server wires the classifier, fact checker, fetcher and extractor behind
// an HTTP interface. Each user action maps to one request handler.
type Server struct {
	cfg           *Config
	classifier    *classifier.Classifier
	classifierErr error
	factChecker   *FactChecker
	fetcher       *HeadlineFetcher
	extractor     *Extractor
	sources       []Source
	hub           *wsHub
	router        *mux.Router
	httpSrv       *http.Server
	tmpl          *template.Template
}

// NewServer builds a server. A nil classifier (with its load error) is
// accepted: classification endpoints then report the model unavailable
// instead of crashing.
func NewServer(cfg *Config, clf *classifier.Classifier, clfErr error, sources []Source) *Server {
	limiter := newHostLimiter(cfg.FetchRatePerHost, cfg.FetchBurst)

	s := &Server{
		cfg:           cfg,
		classifier:    clf,
		classifierErr: clfErr,
		factChecker:   NewFactChecker(cfg),
		fetcher:       NewHeadlineFetcher(cfg, limiter),
		extractor:     NewExtractor(cfg, limiter),
		sources:       sources,
		hub:           newWSHub(),
		tmpl:          template.Must(template.New("index").Parse(indexHTML)),
	}

	s.router = mux.NewRouter()
	s.routes()

	s.httpSrv = &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	return s
}

// routes sets up the HTTP routes
func (s *Server) routes() {
	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/analyze", s.handleAnalyze).Methods("POST")
	api.HandleFunc("/headlines", s.handleHeadlines).Methods("POST")
	api.HandleFunc("/sources", s.handleSources).Methods("GET")
	api.HandleFunc("/status", s.handleStatus).Methods("GET")
	api.HandleFunc("/config", s.handleConfig).Methods("GET")
	api.HandleFunc("/metrics", s.handleMetrics).Methods("GET")
	api.HandleFunc("/ws", s.hub.handleWebsocket)

	s.router.HandleFunc("/", s.handleIndex).Methods("GET")
	s.router.HandleFunc("/healthcheck", s.handleHealthCheck).Methods("GET")
}

// Start runs the HTTP server until Shutdown is called
func (s *Server) Start() error {
	Logger().Info("Starting detector on %s", s.cfg.ListenAddr)
	err := s.httpSrv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return NewError(ErrorTypeServer, ErrServerStart, "server failed", err)
	}
	return nil
}

// Shutdown drains connections and stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

// ModelAvailable reports whether local classification can run
func (s *Server) ModelAvailable() bool {
	return s.classifier != nil
}

// handleIndex renders the single-page UI
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := map[string]interface{}{
		"Version":          VERSION,
		"DefaultThreshold": s.cfg.DefaultThreshold,
		"MaxPerSource":     s.cfg.MaxPerSource,
		"FactCheckEnabled": s.cfg.EnableFactCheck && s.factChecker.Enabled(),
		"ModelAvailable":   s.ModelAvailable(),
		"Sources":          s.sources,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.Execute(w, data); err != nil {
		Logger().Error("Failed to render index: %v", err)
	}
}

// handleHealthCheck provides a simple health check endpoint
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	if !s.ModelAvailable() {
		status = "degraded"
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"status":  status,
		"version": VERSION,
		"uptime":  FormatDuration(time.Since(processStart)),
	})
}
