package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/creativeminds/analytics/internal/domain/types"
)

var errInvalidProjectID = errors.New("ID de proyecto inválido")

// ProjectDependencies defines the interface for project reports.
type ProjectDependencies interface {
	Projects(ctx context.Context) (types.ProjectList, error)
	Project(ctx context.Context, id int64) (types.ProjectDetail, error)
}

// ProjectsHandler handles the project list and the project detail.
type ProjectsHandler struct {
	deps ProjectDependencies
	fail func(http.ResponseWriter, *http.Request, error)
}

// NewProjectsHandler creates a new projects handler. fail renders errors.
func NewProjectsHandler(deps ProjectDependencies, fail func(http.ResponseWriter, *http.Request, error)) *ProjectsHandler {
	return &ProjectsHandler{deps: deps, fail: fail}
}

// HandleList handles GET /proyectos.
func (h *ProjectsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_projects"
	out, err := h.deps.Projects(r.Context())
	if err != nil {
		h.fail(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleGet handles GET /proyectos/{id}.
func (h *ProjectsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_project"
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		h.fail(w, r, WrapKind(op, ErrBadRequest, errInvalidProjectID))
		return
	}
	out, err := h.deps.Project(r.Context(), id)
	if err != nil {
		h.fail(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, out)
}
