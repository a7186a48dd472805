package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/notedex/internal/domain"
	"github.com/kailas-cloud/notedex/internal/domain/note"
	"github.com/kailas-cloud/notedex/internal/metrics"
	healthuc "github.com/kailas-cloud/notedex/internal/usecase/health"
	notesuc "github.com/kailas-cloud/notedex/internal/usecase/notes"
	searchuc "github.com/kailas-cloud/notedex/internal/usecase/search"
)

// Error codes used in the wire error envelope.
const (
	codeBadRequest          = "bad_request"
	codeValidationFailed    = "validation_failed"
	codeNoteNotFound        = "note_not_found"
	codeInvalidQuery        = "invalid_query"
	codeSemanticUnavailable = "semantic_unavailable"
	codeInternalError       = "internal_error"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server exposes the notes CRUD and search API.
type Server struct {
	notes         *notesuc.Service
	search        *searchuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	notes *notesuc.Service,
	search *searchuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		notes:  notes,
		search: search,
		health: health,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrNoteNotFound, http.StatusNotFound, codeNoteNotFound),
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, codeInvalidQuery),
		sentinelHandler(domain.ErrInvalidInput, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrSemanticUnavailable, http.StatusBadGateway, codeSemanticUnavailable),
	}
	return s
}

// Register mounts all routes on the given router.
func (s *Server) Register(r chi.Router) {
	r.Get("/health", s.GetHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/notes", func(r chi.Router) {
			r.Get("/", s.ListNotes)
			r.Post("/", s.CreateNote)
			r.Put("/", s.ReplaceNotes)
			r.Get("/search", s.FieldedSearch)
			r.Get("/{id}", s.GetNote)
			r.Put("/{id}", s.UpdateNote)
			r.Delete("/{id}", s.DeleteNote)
		})
		r.Post("/search", s.SearchNotes)
	})
}

// ListNotes handles GET /api/v1/notes.
func (s *Server) ListNotes(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 0)

	result, err := s.notes.List(r.Context(), page, limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pageToResponse(result))
}

// CreateNote handles POST /api/v1/notes.
func (s *Server) CreateNote(w http.ResponseWriter, r *http.Request) {
	in, ok := s.decodeInput(w, r)
	if !ok {
		return
	}

	created, err := s.notes.Create(r.Context(), in)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, noteToResponse(&created))
}

// GetNote handles GET /api/v1/notes/{id}.
func (s *Server) GetNote(w http.ResponseWriter, r *http.Request) {
	n, err := s.notes.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, noteToResponse(&n))
}

// UpdateNote handles PUT /api/v1/notes/{id}.
func (s *Server) UpdateNote(w http.ResponseWriter, r *http.Request) {
	in, ok := s.decodeInput(w, r)
	if !ok {
		return
	}

	updated, err := s.notes.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, noteToResponse(&updated))
}

// DeleteNote handles DELETE /api/v1/notes/{id}.
func (s *Server) DeleteNote(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.notes.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "note deleted",
		"note":    noteToResponse(&deleted),
	})
}

// ReplaceNotes handles PUT /api/v1/notes: a bulk corpus replacement.
func (s *Server) ReplaceNotes(w http.ResponseWriter, r *http.Request) {
	var reqs []noteRequest
	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	inputs := make([]note.Input, len(reqs))
	for i := range reqs {
		in, err := reqs[i].toInput()
		if err != nil {
			s.handleDomainError(w, err)
			return
		}
		inputs[i] = in
	}

	replaced, err := s.notes.ReplaceAll(r.Context(), inputs)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "notes replaced",
		"count":   len(replaced),
		"notes":   notesToResponse(replaced),
	})
}

// FieldedSearch handles GET /api/v1/notes/search with structured params.
func (s *Server) FieldedSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := notesuc.Filter{
		Query:        q.Get("q"),
		ClientName:   q.Get("clientName"),
		MeetingType:  note.MeetingType(q.Get("meetingType")),
		Timeline:     note.Timeline(q.Get("timeline")),
		PropertyType: note.PropertyType(q.Get("propertyType")),
		MinBedrooms:  queryInt(r, "minBedrooms", 0),
		MaxPrice:     queryInt(r, "maxPrice", 0),
		Area:         q.Get("area"),
		Tag:          q.Get("tag"),
	}

	matched, err := s.notes.Search(r.Context(), filter)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"notes": notesToResponse(matched),
		"total": len(matched),
	})
}

// SearchNotes handles POST /api/v1/search: the natural-language search.
func (s *Server) SearchNotes(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	start := time.Now()
	resp, err := s.search.Search(r.Context(), req.Query)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	approach := baseApproach(resp.Approach())
	metrics.SearchRequestsTotal.WithLabelValues(approach).Inc()
	metrics.SearchDuration.WithLabelValues(approach).Observe(time.Since(start).Seconds())

	writeJSON(w, http.StatusOK, searchToResponse(&resp))
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

func (s *Server) decodeInput(w http.ResponseWriter, r *http.Request) (note.Input, bool) {
	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return note.Input{}, false
	}
	in, err := req.toInput()
	if err != nil {
		s.handleDomainError(w, err)
		return note.Input{}, false
	}
	return in, true
}

// baseApproach strips any diagnostic suffix so the metric label stays
// low-cardinality.
func baseApproach(approach string) string {
	if i := strings.Index(approach, " "); i > 0 {
		return approach[:i]
	}
	return approach
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without
// exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrNoteNotFound,
		domain.ErrInvalidInput,
		domain.ErrInvalidQuery,
		domain.ErrSemanticUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
