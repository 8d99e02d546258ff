package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mwalker/contact-validator/internal/db"
	"github.com/mwalker/contact-validator/internal/generator"
	"github.com/mwalker/contact-validator/internal/rendering"
)

// GenerateRequest is the request body for POST /api/generate. Both fields are
// optional; defaults come from configuration.
type GenerateRequest struct {
	TemplateStyle  string `json:"template_style,omitempty"`
	OutputFilename string `json:"output_filename,omitempty"`
}

// handleIndex serves the landing page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	path := filepath.Join(s.cfg.TemplatesDir, "index.html")
	if _, err := os.Stat(path); err != nil {
		s.errorResponse(w, http.StatusNotFound, "Not found")
		return
	}
	http.ServeFile(w, r, path)
}

// handleListContacts returns every contact with count and timestamp.
func (s *Server) handleListContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := s.store.FetchContacts(r.Context())
	if err != nil {
		s.storeError(w, err)
		return
	}
	if contacts == nil {
		contacts = []db.Contact{}
	}

	log.Printf("Fetched %d contacts from database", len(contacts))
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"contacts":  contacts,
		"count":     len(contacts),
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// handleGetContact returns a single contact by id.
func (s *Server) handleGetContact(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid contact ID")
		return
	}

	contact, err := s.findContact(r.Context(), id)
	if err != nil {
		s.storeError(w, err)
		return
	}
	if contact == nil {
		s.errorResponse(w, http.StatusNotFound, "Contact not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, contact)
}

// findContact fetches all contacts and returns the one with the given id,
// or nil when no row matches.
func (s *Server) findContact(ctx context.Context, id int64) (*db.Contact, error) {
	contacts, err := s.store.FetchContacts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range contacts {
		if contacts[i].ID == id {
			return &contacts[i], nil
		}
	}
	return nil, nil
}

// validateContact runs one contact through the verification service and
// persists the outcome. The returned contact carries the new status.
func (s *Server) validateContact(ctx context.Context, contact *db.Contact) error {
	outcome, err := s.validator.Validate(ctx, contact.Address, contact.City, contact.State, contact.Zipcode)
	if err != nil {
		return err
	}

	status := outcome.Status()
	if err := s.store.UpdateValidationStatus(ctx, contact.ID, status); err != nil {
		return err
	}
	contact.Valid = status

	log.Printf("Validated %s %s: %s", contact.FirstName, contact.LastName, status)
	return nil
}

// handleValidateAll validates every contact in store order, persisting each
// result before moving on. A store or decode failure aborts the request;
// updates already written stay committed.
func (s *Server) handleValidateAll(w http.ResponseWriter, r *http.Request) {
	contacts, err := s.store.FetchContacts(r.Context())
	if err != nil {
		s.storeError(w, err)
		return
	}
	if len(contacts) == 0 {
		s.errorResponse(w, http.StatusNotFound, "No contacts found")
		return
	}

	for i := range contacts {
		if err := s.validateContact(r.Context(), &contacts[i]); err != nil {
			s.storeError(w, err)
			return
		}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"message":  "Address validation completed",
		"contacts": contacts,
		"count":    len(contacts),
	})
}

// handleValidateOne validates a single contact by id.
func (s *Server) handleValidateOne(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid contact ID")
		return
	}

	contact, err := s.findContact(r.Context(), id)
	if err != nil {
		s.storeError(w, err)
		return
	}
	if contact == nil {
		s.errorResponse(w, http.StatusNotFound, "Contact not found")
		return
	}

	if err := s.validateContact(r.Context(), contact); err != nil {
		s.storeError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"message": "Address validation completed",
		"contact": contact,
	})
}

// handleGenerate renders the contact report and writes it to the output
// directory.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.TemplateStyle == "" {
		req.TemplateStyle = s.cfg.TemplateStyle
	}
	if req.OutputFilename == "" {
		req.OutputFilename = "index.html"
	}

	contacts, err := s.store.FetchContacts(r.Context())
	if err != nil {
		s.storeError(w, err)
		return
	}
	if len(contacts) == 0 {
		s.errorResponse(w, http.StatusNotFound, "No contacts found")
		return
	}

	outputPath, style, err := s.generator.Generate(contacts, req.TemplateStyle, req.OutputFilename)
	if err != nil {
		var missing *rendering.TemplateMissingError
		switch {
		case errors.As(err, &missing):
			s.errorResponse(w, http.StatusBadRequest, missing.Error())
		case errors.Is(err, generator.ErrInvalidFilename):
			s.errorResponse(w, http.StatusBadRequest, err.Error())
		default:
			log.Printf("Generation error: %v", err)
			s.errorResponse(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"message":        "HTML file generated successfully",
		"output_path":    outputPath,
		"template_style": style,
		"contacts_count": len(contacts),
		"download_url":   "/download/" + req.OutputFilename,
	})
}

// handleDownload streams a generated file from the output directory.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	filename := r.PathValue("filename")
	if filename == "" || filename != filepath.Base(filename) || strings.HasPrefix(filename, ".") {
		s.errorResponse(w, http.StatusNotFound, "File not found")
		return
	}

	path := filepath.Join(s.generator.OutputDir(), filename)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		s.errorResponse(w, http.StatusNotFound, "File not found")
		return
	}

	http.ServeFile(w, r, path)
}

// handleTemplateStyles lists the available styles.
func (s *Server) handleTemplateStyles(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"template_styles": rendering.StyleNames(),
		"default":         s.cfg.TemplateStyle,
	})
}

// handleHealth reports liveness and store reachability.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := "healthy"
	dbStatus := "healthy"
	if err := s.store.Ping(ctx); err != nil {
		status = "unhealthy"
		dbStatus = "error: " + err.Error()
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":    status,
		"database":  dbStatus,
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   Version,
	})
}

// handleConfig echoes the non-secret configuration.
func (s *Server) handleConfig(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"template_style":    s.cfg.TemplateStyle,
		"templates_dir":     s.cfg.TemplatesDir,
		"output_dir":        s.cfg.OutputDir,
		"smarty_configured": s.validator.Configured(),
	})
}
