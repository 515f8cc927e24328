// Package server implements the plotforge HTTP API.
//
// The API exposes the rendering pipeline and the plot gallery:
//
//	POST   /api/render             render a plot document
//	GET    /api/themes             list built-in palettes
//	POST   /api/plots              save a document to the gallery
//	GET    /api/plots              list gallery entries
//	GET    /api/plots/{id}         fetch a gallery entry
//	DELETE /api/plots/{id}         remove a gallery entry
//	GET    /api/plots/{id}/render  render a stored document
//	GET    /healthz                liveness probe
package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	apperrors "github.com/plotforge/plotforge/pkg/errors"
	"github.com/plotforge/plotforge/pkg/gallery"
	"github.com/plotforge/plotforge/pkg/pipeline"
	"github.com/plotforge/plotforge/pkg/plotfile"
	"github.com/plotforge/plotforge/pkg/theme"
)

// maxBodySize caps request bodies at 1 MiB; plot documents are small.
const maxBodySize = 1 << 20

// Server handles HTTP API requests.
type Server struct {
	runner *pipeline.Runner
	store  gallery.Store
	logger *log.Logger
}

// New creates a server backed by the given pipeline runner and gallery store.
// A nil store disables the gallery endpoints.
func New(runner *pipeline.Runner, store gallery.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		runner: runner,
		store:  store,
		logger: logger,
	}
}

// Router builds the chi router with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/render", s.handleRender)
		r.Get("/themes", s.handleThemes)

		if s.store != nil {
			r.Route("/plots", func(r chi.Router) {
				r.Post("/", s.handlePlotCreate)
				r.Get("/", s.handlePlotList)
				r.Get("/{id}", s.handlePlotGet)
				r.Delete("/{id}", s.handlePlotDelete)
				r.Get("/{id}/render", s.handlePlotRender)
			})
		}
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// renderRequest is the body of POST /api/render: a plot document plus an
// optional name used when the result is saved.
type renderRequest struct {
	plotfile.Document
}

// renderResponse is the JSON envelope returned when more than one format
// is requested. Artifacts are base64-encoded by encoding/json.
type renderResponse struct {
	SpecHash  string            `json:"spec_hash"`
	Artifacts map[string][]byte `json:"artifacts"`
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, s.logger, err)
		return
	}

	s.renderDocument(w, r, &req.Document)
}

// renderDocument runs the pipeline for a document and writes the result.
// A single requested format is returned raw with its content type; multiple
// formats are returned as a JSON envelope.
func (s *Server) renderDocument(w http.ResponseWriter, r *http.Request, doc *plotfile.Document) {
	if err := doc.Validate(); err != nil {
		writeError(w, s.logger, err)
		return
	}
	// File-backed theme refs from clients must stay relative; an absolute
	// path would let a request read arbitrary files on the host.
	if theme.IsFileRef(doc.Theme) {
		if err := apperrors.ValidatePath(doc.Theme); err != nil {
			writeError(w, s.logger, err)
			return
		}
	}

	opts := doc.Options()
	if format := r.URL.Query().Get("format"); format != "" {
		opts.Formats = []string{format}
	}
	if style := r.URL.Query().Get("style"); style != "" {
		opts.Style = style
	}
	opts.Refresh = r.URL.Query().Get("refresh") == "true"

	result, err := s.runner.Execute(r.Context(), doc.Dataset(), opts)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	if len(result.Artifacts) == 1 {
		for format, data := range result.Artifacts {
			w.Header().Set("Content-Type", contentType(format))
			w.Header().Set("X-Spec-Hash", result.SpecHash)
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(data)
			return
		}
	}

	writeJSON(w, http.StatusOK, renderResponse{
		SpecHash:  result.SpecHash,
		Artifacts: result.Artifacts,
	})
}

// themeInfo describes a built-in palette in API responses.
type themeInfo struct {
	Name   string            `json:"name"`
	Colors map[string]string `json:"colors"`
}

func (s *Server) handleThemes(w http.ResponseWriter, r *http.Request) {
	names := theme.Names()
	themes := make([]themeInfo, 0, len(names))
	for _, name := range names {
		provider, err := theme.Builtin(name)
		if err != nil {
			continue
		}
		colors, err := provider.Colors()
		if err != nil {
			continue
		}
		themes = append(themes, themeInfo{Name: name, Colors: colors})
	}
	writeJSON(w, http.StatusOK, map[string]any{"themes": themes})
}

// plotCreateRequest is the body of POST /api/plots.
type plotCreateRequest struct {
	Name     string             `json:"name"`
	Document *plotfile.Document `json:"document"`
}

func (s *Server) handlePlotCreate(w http.ResponseWriter, r *http.Request) {
	var req plotCreateRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, s.logger, err)
		return
	}
	if req.Document == nil {
		writeError(w, s.logger, apperrors.New(apperrors.ErrCodeInvalidInput, "document is required"))
		return
	}
	if err := req.Document.Validate(); err != nil {
		writeError(w, s.logger, err)
		return
	}

	entry := gallery.New(req.Name, req.Document)
	if err := s.store.Put(r.Context(), entry); err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handlePlotList(w http.ResponseWriter, r *http.Request) {
	entries, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"plots": entries})
}

func (s *Server) handlePlotGet(w http.ResponseWriter, r *http.Request) {
	entry, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handlePlotDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, s.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePlotRender(w http.ResponseWriter, r *http.Request) {
	entry, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	s.renderDocument(w, r, entry.Document)
}

// decodeBody decodes a JSON request body, rejecting unknown fields.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "decode request body")
	}
	// Reject trailing garbage after the JSON value
	if dec.More() {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "unexpected data after JSON body")
	}
	return nil
}

func contentType(format string) string {
	switch format {
	case pipeline.FormatSVG:
		return "image/svg+xml"
	case pipeline.FormatPNG:
		return "image/png"
	case pipeline.FormatPDF:
		return "application/pdf"
	default:
		return "application/json"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// writeError maps application errors to HTTP status codes.
func writeError(w http.ResponseWriter, logger *log.Logger, err error) {
	status := http.StatusInternalServerError
	code := apperrors.GetCode(err)

	switch {
	case errors.Is(err, gallery.ErrNotFound):
		status = http.StatusNotFound
		code = apperrors.ErrCodeNotFound
	case code == apperrors.ErrCodeEmptyDataset,
		code == apperrors.ErrCodeMissingColorKey,
		code == apperrors.ErrCodeInvalidColor,
		code == apperrors.ErrCodeInvalidDataset,
		code == apperrors.ErrCodeInvalidFormat,
		code == apperrors.ErrCodeInvalidStyle,
		code == apperrors.ErrCodeInvalidDocument,
		code == apperrors.ErrCodeInvalidTheme,
		code == apperrors.ErrCodeInvalidInput,
		code == apperrors.ErrCodeInvalidPath:
		status = http.StatusBadRequest
	case code == apperrors.ErrCodeNotFound,
		code == apperrors.ErrCodeThemeNotFound,
		code == apperrors.ErrCodeFileNotFound,
		code == apperrors.ErrCodePlotNotFound:
		status = http.StatusNotFound
	case code == apperrors.ErrCodeTimeout:
		status = http.StatusGatewayTimeout
	}

	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "error", err)
	}

	writeJSON(w, status, errorResponse{
		Error: apperrors.UserMessage(err),
		Code:  string(code),
	})
}
