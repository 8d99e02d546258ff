// Package server provides the HTTP JSON API for the contact validator.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/mwalker/contact-validator/internal/config"
	"github.com/mwalker/contact-validator/internal/db"
	"github.com/mwalker/contact-validator/internal/generator"
	"github.com/mwalker/contact-validator/internal/smarty"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// ContactStore is the store surface the server depends on.
type ContactStore interface {
	FetchContacts(ctx context.Context) ([]db.Contact, error)
	UpdateValidationStatus(ctx context.Context, id int64, status json.RawMessage) error
	Ping(ctx context.Context) error
}

// AddressValidator checks a postal address against the verification service.
type AddressValidator interface {
	Validate(ctx context.Context, street, city, state, zipcode string) (smarty.Outcome, error)
	Configured() bool
}

// Server handles all HTTP endpoints.
type Server struct {
	httpServer *http.Server
	cfg        *config.Config
	store      ContactStore
	validator  AddressValidator
	generator  *generator.Generator
}

// New wires the server: each request is dispatched statelessly onto the
// store, validator and generator.
func New(cfg *config.Config, store ContactStore, validator AddressValidator, gen *generator.Generator) *Server {
	s := &Server{
		cfg:       cfg,
		store:     store,
		validator: validator,
		generator: gen,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /api/contacts", s.handleListContacts)
	mux.HandleFunc("GET /api/contacts/{id}", s.handleGetContact)
	mux.HandleFunc("POST /api/validate", s.handleValidateAll)
	mux.HandleFunc("POST /api/validate/{id}", s.handleValidateOne)
	mux.HandleFunc("POST /api/generate", s.handleGenerate)
	mux.HandleFunc("GET /download/{filename}", s.handleDownload)
	mux.HandleFunc("GET /api/templates", s.handleTemplateStyles)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/config", s.handleConfig)

	s.httpServer = &http.Server{
		Addr:         cfg.ListenAddr(),
		Handler:      s.withRecovery(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // validate-all walks every contact sequentially
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler exposes the composed handler chain, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start listens for requests until SIGINT/SIGTERM, then drains.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s (debug=%v)", s.httpServer.Addr, s.cfg.Debug)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

// withRecovery catches panics at the endpoint boundary and reports a generic 500.
func (s *Server) withRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("Unexpected error: %v", rec)
				s.errorResponse(w, http.StatusInternalServerError, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// withLogging tags each request with an id and logs method, path and duration.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()[:8]
		start := time.Now()
		if s.cfg.Debug {
			log.Printf("[%s] %s %s from %s", requestID, r.Method, r.URL.RequestURI(), r.RemoteAddr)
		} else {
			log.Printf("[%s] %s %s", requestID, r.Method, r.URL.Path)
		}
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s %s completed in %v", requestID, r.Method, r.URL.Path, time.Since(start))
	})
}

// withCORS adds CORS headers.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// storeError logs the store failure detail and reports a generic 500.
func (s *Server) storeError(w http.ResponseWriter, err error) {
	log.Printf("Database error: %v", err)
	s.errorResponse(w, http.StatusInternalServerError, "Database connection failed")
}
