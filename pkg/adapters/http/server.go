// Package http exposes the fixture runner over a JSON HTTP API.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aretw0/randomizer"
	"github.com/aretw0/randomizer/pkg/domain"
	"github.com/aretw0/randomizer/pkg/observability"
	"github.com/aretw0/randomizer/pkg/ports"
	"github.com/aretw0/randomizer/pkg/runner"
	"github.com/aretw0/randomizer/pkg/schema"
)

// maxBodyBytes bounds generate request bodies.
const maxBodyBytes = 1 << 20

// GenerateRequest is the body of POST /v1/generate. Exactly one of
// Blueprint and Template must be set. Blueprint is either a YAML document
// passed as a JSON string or a JSON object.
type GenerateRequest struct {
	Blueprint json.RawMessage `json:"blueprint,omitempty"`
	Template  string          `json:"template,omitempty"`
	Seed      string          `json:"seed,omitempty"`
	Count     int             `json:"count,omitempty"`
	Workers   int             `json:"workers,omitempty"`
	Save      bool            `json:"save,omitempty"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

// Server serves the API.
type Server struct {
	Runner  *runner.Runner
	Store   ports.FixtureStore
	Library ports.TemplateLibrary
	Metrics *observability.Metrics
	Logger  *slog.Logger
}

// Option defines a functional option for configuring the Server.
type Option func(*Server)

// WithStore enables the fixture routes.
func WithStore(store ports.FixtureStore) Option {
	return func(s *Server) {
		s.Store = store
	}
}

// WithLibrary enables template lookups.
func WithLibrary(lib ports.TemplateLibrary) Option {
	return func(s *Server) {
		s.Library = lib
	}
}

// WithMetrics enables /metrics and request accounting.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) {
		s.Metrics = m
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// NewHandler creates a new HTTP handler for the runner.
func NewHandler(r *runner.Runner, opts ...Option) http.Handler {
	s := &Server{Runner: r}
	for _, opt := range opts {
		opt(s)
	}
	if s.Logger == nil {
		s.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	if s.Metrics != nil {
		router.Use(s.countRequests)
		router.Method(http.MethodGet, "/metrics", s.Metrics.Handler())
	}

	router.Get("/healthz", s.GetHealth)
	router.Get("/info", s.GetInfo)
	router.Route("/v1", func(r chi.Router) {
		r.Post("/generate", s.Generate)
		r.Get("/templates", s.ListTemplates)
		r.Get("/fixtures", s.ListFixtures)
		r.Get("/fixtures/{id}", s.GetFixture)
		r.Delete("/fixtures/{id}", s.DeleteFixture)
	})

	return enableCORS(router)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		s.Metrics.Requests.WithLabelValues(route, strconv.Itoa(ww.Status())).Inc()
	})
}

// Generate handles the POST /v1/generate request.
func (s *Server) Generate(w http.ResponseWriter, r *http.Request) {
	var body GenerateRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	opts := runner.RunOptions{Seed: body.Seed, Count: body.Count, Workers: body.Workers, Save: body.Save}
	if body.Save && s.Store == nil {
		s.writeError(w, http.StatusConflict, runner.ErrNoStore)
		return
	}

	var (
		fixture *domain.Fixture
		name    string
		err     error
	)
	switch {
	case len(body.Blueprint) > 0 && body.Template != "":
		s.writeError(w, http.StatusBadRequest, errors.New("blueprint and template are mutually exclusive"))
		return
	case len(body.Blueprint) > 0:
		doc, decodeErr := blueprintDocument(body.Blueprint)
		if decodeErr != nil {
			s.writeError(w, http.StatusBadRequest, decodeErr)
			return
		}
		var bp *schema.Blueprint
		if bp, err = schema.Parse(doc); err == nil {
			name = bp.Name
			fixture, err = s.Runner.Run(r.Context(), bp, opts)
		}
	case body.Template != "":
		if s.Library == nil {
			s.writeError(w, http.StatusNotImplemented, errors.New("no template library configured"))
			return
		}
		name = body.Template
		fixture, err = s.Runner.RunTemplate(r.Context(), s.Library, body.Template, opts)
	default:
		s.writeError(w, http.StatusBadRequest, errors.New("blueprint or template is required"))
		return
	}

	if s.Metrics != nil && name != "" {
		values := 0
		if fixture != nil {
			values = len(fixture.Values)
		}
		s.Metrics.ObserveRun(name, values, err)
	}
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}

	status := http.StatusOK
	if body.Save {
		status = http.StatusCreated
	}
	s.writeJSON(w, status, fixture)
}

// blueprintDocument accepts a YAML string or an inline JSON object.
func blueprintDocument(raw json.RawMessage) ([]byte, error) {
	if raw[0] != '"' {
		return raw, nil
	}
	var doc string
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("invalid blueprint: %w", err)
	}
	return []byte(doc), nil
}

// ListTemplates handles the GET /v1/templates request.
func (s *Server) ListTemplates(w http.ResponseWriter, r *http.Request) {
	if s.Library == nil {
		s.writeError(w, http.StatusNotImplemented, errors.New("no template library configured"))
		return
	}
	infos, err := s.Library.List(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, infos)
}

// ListFixtures handles the GET /v1/fixtures request.
func (s *Server) ListFixtures(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	ids, err := s.Store.List(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ids)
}

// GetFixture handles the GET /v1/fixtures/{id} request.
func (s *Server) GetFixture(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	fixture, err := s.Store.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, fixture)
}

// DeleteFixture handles the DELETE /v1/fixtures/{id} request.
func (s *Server) DeleteFixture(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	if err := s.Store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetHealth handles the GET /healthz request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	kinds := make([]string, len(schema.Kinds))
	for i, k := range schema.Kinds {
		kinds[i] = string(k)
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"app":     "randomizer-http",
		"version": strings.TrimSpace(randomizer.Version),
		"kinds":   kinds,
	})
}

func (s *Server) requireStore(w http.ResponseWriter) bool {
	if s.Store == nil {
		s.writeError(w, http.StatusNotImplemented, errors.New("no fixture store configured"))
		return false
	}
	return true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrFixtureNotFound), errors.Is(err, domain.ErrTemplateNotFound):
		return http.StatusNotFound
	case schema.ValidationErrors(err) != nil:
		return http.StatusUnprocessableEntity
	case errors.Is(err, schema.ErrMalformed),
		errors.Is(err, runner.ErrLimitExceeded),
		errors.Is(err, randomizer.ErrMissingArgument),
		errors.Is(err, randomizer.ErrInvalidArgument),
		errors.Is(err, randomizer.ErrInvalidRange):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.Logger.Error("request failed", "error", err)
	} else {
		s.Logger.Warn("request rejected", "status", status, "error", err)
	}

	resp := ErrorResponse{Error: err.Error()}
	for _, e := range schema.ValidationErrors(err) {
		resp.Fields = append(resp.Fields, e.Error())
	}
	s.writeJSON(w, status, resp)
}
