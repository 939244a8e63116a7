package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/secmon-lab/tailorkit/pkg/domain/model"
)

type templateRequest struct {
	Name         string              `json:"name"`
	OptionSetIDs []model.OptionSetID `json:"optionSetIds"`
}

func templateID(r *http.Request) model.TemplateID {
	return model.TemplateID(chi.URLParam(r, "id"))
}

func (s *Server) listTemplates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, struct {
		Templates []*model.Template `json:"templates"`
	}{
		Templates: s.uc.Template.List(r.Context()),
	})
}

func (s *Server) getTemplate(w http.ResponseWriter, r *http.Request) {
	t, err := s.uc.Template.Get(r.Context(), templateID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, t)
}

func (s *Server) saveTemplate(w http.ResponseWriter, r *http.Request) {
	var req templateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	t, err := s.uc.Template.Save(r.Context(), req.Name, req.OptionSetIDs)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, t)
}

func (s *Server) updateTemplate(w http.ResponseWriter, r *http.Request) {
	var req templateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	t, err := s.uc.Template.Update(r.Context(), templateID(r), req.Name, req.OptionSetIDs)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, t)
}

func (s *Server) deleteTemplate(w http.ResponseWriter, r *http.Request) {
	if err := s.uc.Template.Delete(r.Context(), templateID(r)); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) duplicateTemplate(w http.ResponseWriter, r *http.Request) {
	t, err := s.uc.Template.Duplicate(r.Context(), templateID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, t)
}
