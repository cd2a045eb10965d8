package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/aretw0/tmsim"
	"github.com/aretw0/tmsim/pkg/domain"
	"github.com/aretw0/tmsim/pkg/ports"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	legacyrouter "github.com/getkin/kin-openapi/routers/legacy"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:embed openapi.yaml
var rawSpec []byte

// maxBodyBytes caps machine descriptions accepted over HTTP.
const maxBodyBytes = 1 << 20

// Simulator defines what the HTTP server needs from the tmsim core.
type Simulator interface {
	Parse(r io.Reader) (*domain.MachineSpec, error)
	Run(ctx context.Context, spec *domain.MachineSpec, source string) (*domain.Report, error)
	Validate(spec *domain.MachineSpec) []tmsim.Finding
	Graph(spec *domain.MachineSpec) string
	Store() ports.ReportStore
}

// Server serves the tmsim HTTP API.
type Server struct {
	Simulator Simulator

	doc      *openapi3.T
	router   routers.Router
	gatherer prometheus.Gatherer
	logger   *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithGatherer sets the registry exposed on /metrics (default: prometheus.DefaultGatherer).
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// GetSwagger loads and validates the embedded OpenAPI document.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(rawSpec)
	if err != nil {
		return nil, fmt.Errorf("failed to load openapi document: %w", err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("invalid openapi document: %w", err)
	}
	return doc, nil
}

// NewHandler creates a new HTTP handler for the simulator.
// Requests to documented routes are validated against the OpenAPI document.
func NewHandler(sim Simulator, opts ...Option) (http.Handler, error) {
	doc, err := GetSwagger()
	if err != nil {
		return nil, err
	}
	router, err := legacyrouter.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to build openapi router: %w", err)
	}

	s := &Server{
		Simulator: sim,
		doc:       doc,
		router:    router,
		gatherer:  prometheus.DefaultGatherer,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	r.Get("/healthz", s.GetHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	r.Route("/v1", func(r chi.Router) {
		r.Use(s.validateRequest)
		r.Post("/simulate", s.Simulate)
		r.Post("/validate", s.Validate)
		r.Post("/graph", s.Graph)
		r.Get("/reports", s.ListReports)
		r.Get("/reports/{id}", s.GetReport)
		r.Delete("/reports/{id}", s.DeleteReport)
	})

	return r, nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) validateRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

		route, params, err := s.router.FindRoute(r)
		if err != nil {
			// Unknown paths and methods are left to chi.
			next.ServeHTTP(w, r)
			return
		}
		input := &openapi3filter.RequestValidationInput{
			Request:    r,
			PathParams: params,
			Route:      route,
		}
		if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
			s.logger.Warn("request rejected by schema", "path", r.URL.Path, "error", err)
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		next.ServeHTTP(w, r)
	})
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
	Line  int    `json:"line,omitempty"`
}

type validationResponse struct {
	Valid    bool            `json:"valid"`
	Findings []tmsim.Finding `json:"findings"`
}

type listResponse struct {
	IDs []string `json:"ids"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

// parse loads the request body, answering 422 when the loader rejects it.
func (s *Server) parse(w http.ResponseWriter, r *http.Request) (*domain.MachineSpec, bool) {
	spec, err := s.Simulator.Parse(r.Body)
	if err == nil {
		return spec, true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: err.Error()})
		return nil, false
	}

	resp := errorResponse{Error: err.Error(), Kind: domain.ErrorKind(err)}
	var loadErr *domain.LoadError
	if errors.As(err, &loadErr) {
		resp.Line = loadErr.Line
	}
	s.logger.Debug("machine description rejected", "kind", resp.Kind, "error", err)
	writeJSON(w, http.StatusUnprocessableEntity, resp)
	return nil, false
}

// Simulate handles POST /v1/simulate.
func (s *Server) Simulate(w http.ResponseWriter, r *http.Request) {
	spec, ok := s.parse(w, r)
	if !ok {
		return
	}

	report, err := s.Simulator.Run(r.Context(), spec, r.URL.Query().Get("source"))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		s.logger.Error("simulation failed", "error", err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// Validate handles POST /v1/validate.
func (s *Server) Validate(w http.ResponseWriter, r *http.Request) {
	spec, ok := s.parse(w, r)
	if !ok {
		return
	}

	findings := s.Simulator.Validate(spec)
	if findings == nil {
		findings = []tmsim.Finding{}
	}
	writeJSON(w, http.StatusOK, validationResponse{Valid: true, Findings: findings})
}

// Graph handles POST /v1/graph.
func (s *Server) Graph(w http.ResponseWriter, r *http.Request) {
	spec, ok := s.parse(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, s.Simulator.Graph(spec))
}

// ListReports handles GET /v1/reports.
func (s *Server) ListReports(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Simulator.Store().List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		s.logger.Error("list reports failed", "error", err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, listResponse{IDs: ids})
}

// GetReport handles GET /v1/reports/{id}.
func (s *Server) GetReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.Simulator.Store().Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrReportNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		s.logger.Error("load report failed", "error", err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// DeleteReport handles DELETE /v1/reports/{id}.
func (s *Server) DeleteReport(w http.ResponseWriter, r *http.Request) {
	if err := s.Simulator.Store().Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		s.logger.Error("delete report failed", "error", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetHealth handles GET /healthz.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": s.doc.Info.Version,
	})
}
