package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tailorkit/pkg/domain/model"
	"github.com/secmon-lab/tailorkit/pkg/service/preview"
	"github.com/secmon-lab/tailorkit/pkg/usecase"
	"github.com/secmon-lab/tailorkit/pkg/utils/errutil"
	"github.com/secmon-lab/tailorkit/pkg/utils/logging"
	"github.com/secmon-lab/tailorkit/pkg/utils/safe"
)

// maxBodySize bounds request bodies; option sets with many options stay far below it
const maxBodySize = 4 << 20

type Server struct {
	router    *chi.Mux
	uc        *usecase.UseCases
	projector *preview.Projector
}

func New(uc *usecase.UseCases) (*Server, error) {
	if uc == nil {
		return nil, goerr.New("use cases are required")
	}

	r := chi.NewRouter()
	s := &Server{
		router:    r,
		uc:        uc,
		projector: preview.New(uc.Registry()),
	}

	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/element-types", s.listElementTypes)
		r.Get("/element-types/{type}", s.getElementType)

		r.Route("/elements", func(r chi.Router) {
			r.Post("/", s.newElement)
			r.Post("/validate", s.validateElement)
			r.Post("/preview", s.previewElement)
			r.Post("/populate", s.populateElement)
		})

		r.Route("/option-sets", func(r chi.Router) {
			r.Get("/", s.listOptionSets)
			r.Post("/", s.createOptionSet)
			r.Put("/order", s.reorderOptionSets)
			r.Delete("/default-open", s.clearDefaultOpen)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.getOptionSet)
				r.Put("/", s.updateOptionSet)
				r.Delete("/", s.deleteOptionSet)
				r.Post("/duplicate", s.duplicateOptionSet)
				r.Post("/default-open", s.setDefaultOpen)
				r.Get("/preview", s.previewOptionSet)

				r.Post("/elements", s.addElement)
				r.Patch("/elements/{elementID}", s.editElement)
				r.Delete("/elements/{elementID}", s.removeElement)
				r.Put("/elements/{elementID}/position", s.moveElement)
			})
		})

		r.Route("/templates", func(r chi.Router) {
			r.Get("/", s.listTemplates)
			r.Post("/", s.saveTemplate)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.getTemplate)
				r.Put("/", s.updateTemplate)
				r.Delete("/", s.deleteTemplate)
				r.Post("/duplicate", s.duplicateTemplate)
			})
		})

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/products", s.listProducts)
			r.Get("/collections", s.listCollections)
		})
	})

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// requestLogger stores a logger tagged with the request id in the request context
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := logging.Default().With("request_id", middleware.GetReqID(r.Context()))
		ctx := logging.With(r.Context(), logger)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.From(r.Context()).Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err := dec.Decode(v); err != nil {
		return goerr.Wrap(errBadRequest, "invalid JSON body", goerr.V("cause", err.Error()))
	}
	return nil
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(r.Context(), w, data)
}

var errBadRequest = goerr.New("bad request")

type errorResponse struct {
	Error      string            `json:"error"`
	Violations []model.Violation `json:"violations,omitempty"`
}

// statusOf maps engine errors to HTTP status codes
func statusOf(err error) int {
	switch {
	case errors.Is(err, model.ErrValidationFailed),
		errors.Is(err, model.ErrEmptyOptionSet),
		errors.Is(err, model.ErrNoOptionSetsSelected),
		errors.Is(err, model.ErrMissingName):
		return http.StatusUnprocessableEntity

	case errors.Is(err, model.ErrOptionSetNotFound),
		errors.Is(err, model.ErrTemplateNotFound),
		errors.Is(err, model.ErrElementNotFound),
		errors.Is(err, model.ErrProductNotFound),
		errors.Is(err, model.ErrCollectionNotFound),
		errors.Is(err, model.ErrUnsupportedElementType):
		return http.StatusNotFound

	case errors.Is(err, model.ErrReorderSetMismatch),
		errors.Is(err, model.ErrMutuallyExclusiveFlags),
		errors.Is(err, model.ErrRangeInverted),
		errors.Is(err, model.ErrIndexOutOfRange),
		errors.Is(err, usecase.ErrMissingInput),
		errors.Is(err, usecase.ErrInvalidCatalogSource),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest

	case errors.Is(err, model.ErrCommerceNotConfigured):
		return http.StatusNotImplemented

	default:
		return http.StatusInternalServerError
	}
}

// writeError renders client errors as JSON (with violations when available) and
// hands server errors to errutil for logging
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		errutil.HandleHTTP(r.Context(), w, err, status)
		return
	}

	logging.From(r.Context()).Warn("request rejected", "status", status, "error", err)

	resp := errorResponse{Error: err.Error()}
	if verr, ok := model.AsValidationError(err); ok {
		resp.Violations = verr.Violations
	}
	writeJSON(w, r, status, resp)
}
