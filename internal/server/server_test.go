package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/plotforge/plotforge/pkg/gallery"
	"github.com/plotforge/plotforge/pkg/pipeline"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store, err := gallery.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })

	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(nil, nil, logger)
	return New(runner, store, logger)
}

const renderBody = `{
	"title": "Revenue",
	"theme": "ocean",
	"data": [[2020, 100], [2021, 110]],
	"formats": ["svg"]
}`

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestRenderSVG(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/render", strings.NewReader(renderBody))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q, want image/svg+xml", ct)
	}
	if rec.Header().Get("X-Spec-Hash") == "" {
		t.Error("X-Spec-Hash header missing")
	}

	body := rec.Body.String()
	if !strings.Contains(body, `stroke="#2596be"`) {
		t.Error("svg missing ocean primary stroke")
	}
	if strings.Contains(body, "<rect") {
		t.Error("svg contains a background rect")
	}
}

func TestRenderMultipleFormats(t *testing.T) {
	srv := newTestServer(t)
	body := strings.Replace(renderBody, `["svg"]`, `["svg", "json"]`, 1)
	req := httptest.NewRequest(http.MethodPost, "/api/render", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp renderResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.SpecHash == "" {
		t.Error("spec_hash missing")
	}
	if len(resp.Artifacts) != 2 {
		t.Errorf("artifacts = %d, want 2", len(resp.Artifacts))
	}
}

func TestRenderInvalidQueryOverrides(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"bogus format", "?format=bogus"},
		{"bogus style", "?style=neon"},
	}

	srv := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/render"+tt.query, strings.NewReader(renderBody))
			rec := httptest.NewRecorder()
			srv.Router().ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d (body: %s)", rec.Code, http.StatusBadRequest, rec.Body.String())
			}
			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("error body not JSON: %v", err)
			}
			if resp.Code == "" {
				t.Error("error code missing")
			}
		})
	}
}

func TestRenderInvalidDocument(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"empty data", `{"theme": "ocean", "data": []}`, http.StatusBadRequest},
		{"bad style", `{"data": [[1, 2]], "style": "neon"}`, http.StatusBadRequest},
		{"unknown field", `{"data": [[1, 2]], "bogus": true}`, http.StatusBadRequest},
		{"malformed json", `{`, http.StatusBadRequest},
		{"unknown theme", `{"data": [[1, 2]], "theme": "nonexistent"}`, http.StatusNotFound},
		{"absolute theme path", `{"data": [[1, 2]], "theme": "/etc/themes/x.toml"}`, http.StatusBadRequest},
		{"traversal theme path", `{"data": [[1, 2]], "theme": "../secrets.toml"}`, http.StatusBadRequest},
	}

	srv := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/render", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			srv.Router().ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d (body: %s)", rec.Code, tt.want, rec.Body.String())
			}
			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("error body not JSON: %v", err)
			}
			if resp.Error == "" {
				t.Error("error message missing")
			}
		})
	}
}

func TestThemes(t *testing.T) {
	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/themes", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp struct {
		Themes []themeInfo `json:"themes"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(resp.Themes) == 0 {
		t.Fatal("no themes returned")
	}

	var found bool
	for _, th := range resp.Themes {
		if th.Name == "ocean" {
			found = true
			if th.Colors["primary"] != "#2596be" {
				t.Errorf("ocean primary = %q, want #2596be", th.Colors["primary"])
			}
		}
	}
	if !found {
		t.Error("ocean palette missing from theme list")
	}
}

func createPlot(t *testing.T, srv *Server) gallery.Entry {
	t.Helper()
	body := fmt.Sprintf(`{"name": "revenue", "document": %s}`, renderBody)
	req := httptest.NewRequest(http.MethodPost, "/api/plots/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var entry gallery.Entry
	if err := json.Unmarshal(rec.Body.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal entry: %v", err)
	}
	return entry
}

func TestPlotLifecycle(t *testing.T) {
	srv := newTestServer(t)
	router := srv.Router()

	entry := createPlot(t, srv)
	if entry.ID == "" {
		t.Fatal("created entry has no ID")
	}

	// Get
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/plots/"+entry.ID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}

	// List
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/plots/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte(entry.ID)) {
		t.Error("list does not contain created entry")
	}

	// Render stored plot
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/plots/"+entry.ID+"/render?format=svg", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("render status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "</svg>") {
		t.Error("stored plot render is not SVG")
	}

	// Delete
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/plots/"+entry.ID, nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}

	// Get after delete
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/plots/"+entry.ID, nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", rec.Code)
	}
}

func TestPlotGetMissing(t *testing.T) {
	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/plots/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestRequestIDHeader(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Error("response missing generated request ID")
	}

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "client-supplied")
	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got != "client-supplied" {
		t.Errorf("request ID = %q, want client-supplied", got)
	}
}
