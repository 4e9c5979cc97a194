// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/creativeminds/analytics/internal/adapters/http/swagger"
	"github.com/creativeminds/analytics/internal/domain/types"
	"github.com/creativeminds/analytics/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	HealthDependencies
	ProjectDependencies

	Dashboard(ctx context.Context) (types.Dashboard, error)
	Employees(ctx context.Context) (types.EmployeeList, error)
	Teams(ctx context.Context) (types.TeamList, error)
	Resources(ctx context.Context) (types.ResourceList, error)
	Performance(ctx context.Context) (types.Performance, error)
	History(ctx context.Context) (types.History, error)
	Predictions(ctx context.Context) (types.Predictions, error)
	Recommendations(ctx context.Context) (types.Recommendations, error)
}

// Server wires HTTP routes for the analytics API.
type Server struct {
	deps           Dependencies
	prefix         string
	requestTimeout time.Duration
	cors           *corsPolicy
	logger         logger.Logger

	healthHandler   *HealthHandler
	projectsHandler *ProjectsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...Option) *Server {
	s := &Server{
		deps:           deps,
		prefix:         defaultPrefix,
		requestTimeout: defaultRequestTimeout,
		cors:           newCORSPolicy([]string{"*"}),
		logger:         logger.Named("api"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.healthHandler = NewHealthHandler(deps)
	s.projectsHandler = NewProjectsHandler(deps, s.fail)
	return s
}

// Handler builds the router. Operational routes live at the root and the
// analytics routes under the configured prefix.
func (s *Server) Handler(ctx context.Context) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(RequestID)
	r.Use(s.cors.handler)

	r.Handle("/metrics", MetricsHandler())
	swagger.Register(ctx, r)

	routes := func(r chi.Router) {
		r.Use(chimiddleware.Timeout(s.requestTimeout))

		r.Get("/health", MetricsMiddleware(s.healthHandler.HandleHealth, "health"))
		r.Get("/dashboard", MetricsMiddleware(serveReport(s, "dashboard", s.deps.Dashboard), "dashboard"))
		r.Get("/proyectos", MetricsMiddleware(s.projectsHandler.HandleList, "proyectos"))
		r.Get("/proyectos/{id}", MetricsMiddleware(s.projectsHandler.HandleGet, "proyecto"))
		r.Get("/empleados", MetricsMiddleware(serveReport(s, "empleados", s.deps.Employees), "empleados"))
		r.Get("/equipos", MetricsMiddleware(serveReport(s, "equipos", s.deps.Teams), "equipos"))
		r.Get("/recursos", MetricsMiddleware(serveReport(s, "recursos", s.deps.Resources), "recursos"))
		r.Get("/metricas/rendimiento", MetricsMiddleware(serveReport(s, "rendimiento", s.deps.Performance), "rendimiento"))
		r.Get("/metricas/historicas", MetricsMiddleware(serveReport(s, "historicas", s.deps.History), "historicas"))
		r.Get("/predicciones", MetricsMiddleware(serveReport(s, "predicciones", s.deps.Predictions), "predicciones"))
		r.Get("/recomendaciones", MetricsMiddleware(serveReport(s, "recomendaciones", s.deps.Recommendations), "recomendaciones"))
	}
	if s.prefix == "" {
		r.Group(routes)
	} else {
		r.Route(s.prefix, routes)
	}
	return r
}

// serveReport adapts a report renderer into a GET handler.
func serveReport[T any](s *Server, op string, render func(context.Context) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := render(r.Context())
		if err != nil {
			s.fail(w, r, Wrap(op, err))
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// fail writes the error body and logs server side failures.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, code, msg := classify(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(r.Context(), "request failed",
			logger.String("path", r.URL.Path),
			logger.String("request_id", RequestIDFrom(r.Context())),
			logger.String("code", code),
			logger.Error(err))
	}
	writeError(w, status, code, msg)
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	if msg == "" {
		msg = http.StatusText(status)
	}
	writeJSON(w, status, errorResponse{Error: msg, Code: code})
}
