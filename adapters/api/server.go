// Package api exposes sessions over HTTP. Each uploaded dataset gets its
// own session; every operation addresses a session by id.
package api

import (
	"encoding/json"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"cleanframe/adapters/render"
	"cleanframe/adapters/tabular"
	"cleanframe/domain/core"
	"cleanframe/domain/table"
	apperrors "cleanframe/internal/errors"
	"cleanframe/internal/session"
	"cleanframe/internal/transform"
	"cleanframe/ports"
)

// maxUploadBytes bounds in-memory multipart parsing
const maxUploadBytes = 128 << 20

// Server routes session operations over HTTP
type Server struct {
	router    *chi.Mux
	reader    ports.DatasetReader
	snapshots ports.SnapshotRepository
	markdown  *render.MarkdownWriter
	cfg       session.Config

	mu       sync.RWMutex
	sessions map[core.SessionID]*session.Session
}

// Option customizes server construction
type Option func(*Server)

// WithSnapshotRepository enables report persistence. Without one, reports
// are compute-only.
func WithSnapshotRepository(repo ports.SnapshotRepository) Option {
	return func(s *Server) {
		s.snapshots = repo
	}
}

// WithDatasetReader overrides the default CSV/XLSX reader
func WithDatasetReader(reader ports.DatasetReader) Option {
	return func(s *Server) {
		if reader != nil {
			s.reader = reader
		}
	}
}

// NewServer creates an HTTP server over an in-memory session registry
func NewServer(cfg session.Config, opts ...Option) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		reader:   tabular.NewReader(""),
		markdown: render.NewMarkdownWriter(),
		cfg:      cfg,
		sessions: make(map[core.SessionID]*session.Session),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.setupRoutes()
	return s
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	s.router.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreateSession)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/report", s.handleReport)
			r.Get("/report.html", s.handleReportHTML)
			r.Post("/clean", s.handleClean)
			r.Post("/optimize", s.handleOptimize)
			r.Get("/dataset", s.handleDataset)
			r.Get("/snapshots", s.handleSnapshots)
		})
	})
}

// handleCreateSession accepts a multipart dataset upload and opens a session
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.writeError(w, apperrors.InvalidInput("expected a multipart upload with a 'file' field"))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, apperrors.InvalidInput("missing 'file' field"))
		return
	}
	defer file.Close()

	if ext := strings.ToLower(filepath.Ext(header.Filename)); ext != ".csv" && ext != "" {
		s.writeError(w, apperrors.InvalidInput("only CSV uploads are supported over HTTP"))
		return
	}

	ds, err := s.reader.Read(file)
	if err != nil {
		s.writeError(w, err)
		return
	}

	cfg := s.cfg
	if v := r.FormValue("max_num_categories"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			s.writeError(w, apperrors.InvalidInput("max_num_categories must be a positive integer"))
			return
		}
		cfg.MaxNumCategories = n
	}

	sess, err := session.New(ds, cfg)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.mu.Lock()
	s.sessions[sess.ID()] = sess
	s.mu.Unlock()
	log.Printf("[API] opened session %s for %s (%d rows, %d columns)",
		sess.ID(), header.Filename, ds.NumRows(), ds.NumColumns())

	s.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"session_id":       sess.ID(),
		"rows":             sess.Dataset().NumRows(),
		"columns":          sess.Dataset().NumColumns(),
		"constant_columns": sess.ConstantColumns(),
	})
}

// handleReport computes a fresh report, optionally persisting it
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}

	rep, err := sess.Report(r.Context(), session.ReportOptions{})
	if err != nil {
		s.writeError(w, err)
		return
	}

	if r.URL.Query().Get("save") == "true" {
		if s.snapshots == nil {
			s.writeError(w, apperrors.ConfigInvalid("snapshot persistence is not configured"))
			return
		}
		if _, err := s.snapshots.Save(r.Context(), sess.ID(), rep); err != nil {
			s.writeError(w, err)
			return
		}
	}

	s.writeJSON(w, http.StatusOK, rep)
}

// handleReportHTML renders the report for a browser
func (s *Server) handleReportHTML(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	rep, err := sess.Report(r.Context(), session.ReportOptions{})
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(s.markdown.HTML(rep, sess.Dataset().ColumnNames()))
}

type cleanRequest struct {
	MinMissingRatio *float64 `json:"min_missing_ratio,omitempty"`
	DropMissingRows *bool    `json:"drop_missing_rows,omitempty"`
}

// handleClean applies the column/row dropping pipeline
func (s *Server) handleClean(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}

	opts := transform.CleanOptions{MinMissingRatio: 0.05, DropMissingRows: true}
	if r.Body != nil && r.ContentLength != 0 {
		var req cleanRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeError(w, apperrors.InvalidInput("invalid JSON body"))
			return
		}
		if req.MinMissingRatio != nil {
			opts.MinMissingRatio = *req.MinMissingRatio
		}
		if req.DropMissingRows != nil {
			opts.DropMissingRows = *req.DropMissingRows
		}
	}

	result, err := sess.Clean(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

// handleOptimize applies downcast and categorical conversions
func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	result, err := sess.Optimize(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

type columnInfo struct {
	Name    string     `json:"name"`
	Type    table.Type `json:"type"`
	Missing int        `json:"missing"`
}

// handleDataset returns current dataset shape and per-column metadata
func (s *Server) handleDataset(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	ds := sess.Dataset()
	cols := make([]columnInfo, 0, ds.NumColumns())
	for _, col := range ds.Columns() {
		cols = append(cols, columnInfo{Name: col.Name(), Type: col.Type(), Missing: col.MissingCount()})
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"rows":         ds.NumRows(),
		"columns":      cols,
		"memory_bytes": ds.MemoryBytes(),
	})
}

// handleSnapshots lists persisted reports for the session, newest first
func (s *Server) handleSnapshots(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	if s.snapshots == nil {
		s.writeError(w, apperrors.ConfigInvalid("snapshot persistence is not configured"))
		return
	}
	reports, err := s.snapshots.ListBySession(r.Context(), sess.ID(), 20)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"snapshots": reports})
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id, err := core.ParseSessionID(chi.URLParam(r, "sessionID"))
	if err != nil {
		s.writeError(w, apperrors.InvalidInput("invalid session id"))
		return nil, false
	}
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		s.writeError(w, apperrors.NotFound("session"))
		return nil, false
	}
	return sess, true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[API] failed to encode response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch apperrors.GetCode(err) {
	case apperrors.CodeInvalidInput, apperrors.CodeConfigInvalid, apperrors.CodeSchemaError:
		status = http.StatusBadRequest
	case apperrors.CodeNotFound:
		status = http.StatusNotFound
	}
	s.writeJSON(w, status, map[string]string{
		"code":  apperrors.GetCode(err),
		"error": err.Error(),
	})
}
