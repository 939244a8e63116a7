package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tailorkit/pkg/domain/model"
	"github.com/secmon-lab/tailorkit/pkg/domain/schema"
	"github.com/secmon-lab/tailorkit/pkg/domain/types"
	"github.com/secmon-lab/tailorkit/pkg/usecase"
)

func (s *Server) listElementTypes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, struct {
		ElementTypes []*schema.Schema `json:"elementTypes"`
	}{
		ElementTypes: s.uc.Registry().Schemas(),
	})
}

func (s *Server) getElementType(w http.ResponseWriter, r *http.Request) {
	sc, err := s.uc.Registry().SchemaFor(types.ElementType(chi.URLParam(r, "type")))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, sc)
}

func (s *Server) newElement(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type types.ElementType `json:"type"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	el, err := s.uc.Registry().NewElement(req.Type)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, el)
}

// validateElement always answers 200; the violations are the payload
func (s *Server) validateElement(w http.ResponseWriter, r *http.Request) {
	var el model.Element
	if err := decodeJSON(w, r, &el); err != nil {
		writeError(w, r, err)
		return
	}

	result := s.uc.Registry().Validate(el.Type, el.Config)
	violations := result.Violations
	if violations == nil {
		violations = []model.Violation{}
	}
	writeJSON(w, r, http.StatusOK, struct {
		OK         bool              `json:"ok"`
		Violations []model.Violation `json:"violations"`
	}{
		OK:         result.OK(),
		Violations: violations,
	})
}

func (s *Server) previewElement(w http.ResponseWriter, r *http.Request) {
	var el model.Element
	if err := decodeJSON(w, r, &el); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, s.projector.Project(&el))
}

func (s *Server) populateElement(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Element *model.Element        `json:"element"`
		Source  usecase.CatalogSource `json:"source"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.Element == nil {
		writeError(w, r, goerr.Wrap(errBadRequest, "element is required"))
		return
	}

	el, err := s.uc.Catalog.PopulateOptions(r.Context(), req.Element, req.Source)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, el)
}
