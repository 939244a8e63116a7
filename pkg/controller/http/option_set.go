package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/secmon-lab/tailorkit/pkg/domain/model"
	"github.com/secmon-lab/tailorkit/pkg/domain/types"
	"github.com/secmon-lab/tailorkit/pkg/service/preview"
)

func optionSetID(r *http.Request) model.OptionSetID {
	return model.OptionSetID(chi.URLParam(r, "id"))
}

func elementID(r *http.Request) model.ElementID {
	return model.ElementID(chi.URLParam(r, "elementID"))
}

func (s *Server) listOptionSets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, struct {
		OptionSets []*model.OptionSet `json:"optionSets"`
	}{
		OptionSets: s.uc.OptionSet.List(r.Context()),
	})
}

func (s *Server) getOptionSet(w http.ResponseWriter, r *http.Request) {
	set, err := s.uc.OptionSet.Get(r.Context(), optionSetID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, set)
}

func (s *Server) createOptionSet(w http.ResponseWriter, r *http.Request) {
	var input model.OptionSet
	if err := decodeJSON(w, r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	set, err := s.uc.OptionSet.Create(r.Context(), &input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, set)
}

func (s *Server) updateOptionSet(w http.ResponseWriter, r *http.Request) {
	var input model.OptionSet
	if err := decodeJSON(w, r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	set, err := s.uc.OptionSet.Update(r.Context(), optionSetID(r), &input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, set)
}

func (s *Server) deleteOptionSet(w http.ResponseWriter, r *http.Request) {
	if err := s.uc.OptionSet.Delete(r.Context(), optionSetID(r)); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) duplicateOptionSet(w http.ResponseWriter, r *http.Request) {
	set, err := s.uc.OptionSet.Duplicate(r.Context(), optionSetID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, set)
}

func (s *Server) reorderOptionSets(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs []model.OptionSetID `json:"ids"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := s.uc.OptionSet.Reorder(r.Context(), req.IDs); err != nil {
		writeError(w, r, err)
		return
	}
	s.listOptionSets(w, r)
}

func (s *Server) setDefaultOpen(w http.ResponseWriter, r *http.Request) {
	if err := s.uc.OptionSet.SetDefaultOpen(r.Context(), optionSetID(r)); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) clearDefaultOpen(w http.ResponseWriter, r *http.Request) {
	if err := s.uc.OptionSet.ClearDefaultOpen(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) previewOptionSet(w http.ResponseWriter, r *http.Request) {
	set, err := s.uc.OptionSet.Get(r.Context(), optionSetID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, struct {
		OptionSetID model.OptionSetID      `json:"optionSetId"`
		Elements    []*preview.Description `json:"elements"`
	}{
		OptionSetID: set.ID,
		Elements:    s.projector.ProjectOptionSet(set),
	})
}

func (s *Server) addElement(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type types.ElementType `json:"type"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	el, err := s.uc.OptionSet.AddElement(r.Context(), optionSetID(r), req.Type)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, el)
}

func (s *Server) editElement(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path  string `json:"path"`
		Value any    `json:"value"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	el, err := s.uc.OptionSet.EditElement(r.Context(), optionSetID(r), elementID(r), req.Path, req.Value)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, el)
}

func (s *Server) removeElement(w http.ResponseWriter, r *http.Request) {
	if err := s.uc.OptionSet.RemoveElement(r.Context(), optionSetID(r), elementID(r)); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) moveElement(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Index int `json:"index"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := s.uc.OptionSet.MoveElement(r.Context(), optionSetID(r), elementID(r), req.Index); err != nil {
		writeError(w, r, err)
		return
	}
	s.getOptionSet(w, r)
}
