package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ktanaka/coderelay-go/internal/api/apierr"
	"github.com/ktanaka/coderelay-go/internal/api/response"
	"github.com/ktanaka/coderelay-go/internal/catalog"
	"github.com/ktanaka/coderelay-go/internal/model"
)

// ProblemHandler handles problem catalog endpoints
type ProblemHandler struct {
	catalog *catalog.Catalog
}

// NewProblemHandler creates a new problem handler
func NewProblemHandler(c *catalog.Catalog) *ProblemHandler {
	return &ProblemHandler{catalog: c}
}

// List handles GET /api/v1/problems
func (h *ProblemHandler) List(w http.ResponseWriter, r *http.Request) {
	problems := h.catalog.List()
	views := make([]response.Problem, len(problems))
	for i, p := range problems {
		views[i] = response.ProblemFromModel(p)
	}
	response.JSON(w, http.StatusOK, response.ProblemList{Problems: views})
}

// Get handles GET /api/v1/problems/{id}
func (h *ProblemHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.ProblemID(mux.Vars(r)["id"])
	p, ok := h.catalog.Get(id)
	if !ok {
		apierr.WriteError(w, apierr.NewNotFoundError(apierr.CodeProblemNotFound, "Problem not found"))
		return
	}
	response.JSON(w, http.StatusOK, response.ProblemFromModel(p))
}
