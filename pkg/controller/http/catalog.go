package http

import (
	"net/http"

	"github.com/secmon-lab/tailorkit/pkg/domain/model"
)

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.uc.Catalog.ListProducts(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, struct {
		Products []*model.Product `json:"products"`
	}{
		Products: products,
	})
}

func (s *Server) listCollections(w http.ResponseWriter, r *http.Request) {
	collections, err := s.uc.Catalog.ListCollections(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, struct {
		Collections []*model.Collection `json:"collections"`
	}{
		Collections: collections,
	})
}
