package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"
	server "github.com/secmon-lab/tailorkit/pkg/controller/http"
	"github.com/secmon-lab/tailorkit/pkg/domain/model"
	"github.com/secmon-lab/tailorkit/pkg/repository/memory"
	"github.com/secmon-lab/tailorkit/pkg/service/commerce"
	"github.com/secmon-lab/tailorkit/pkg/usecase"
)

func newServer(t *testing.T, opts ...usecase.Option) http.Handler {
	t.Helper()
	uc := usecase.New(memory.New(), opts...)
	gt.NoError(t, uc.Load(context.Background())).Required()
	srv, err := server.New(uc)
	gt.NoError(t, err).Required()
	return srv
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		gt.NoError(t, json.NewEncoder(&buf).Encode(body)).Required()
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v)).Required()
	return v
}

func colorSet() map[string]any {
	return map[string]any{
		"name": "Color",
		"elements": []any{
			map[string]any{
				"type": "radio",
				"config": map[string]any{
					"label": "Color",
					"options": []any{
						map[string]any{"value": "red", "label": "Red"},
						map[string]any{"value": "blue", "label": "Blue"},
					},
				},
			},
		},
	}
}

func TestServer_ElementTypes(t *testing.T) {
	h := newServer(t)

	rec := do(t, h, http.MethodGet, "/api/element-types", nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)
	resp := decode[struct {
		ElementTypes []map[string]any `json:"elementTypes"`
	}](t, rec)
	gt.A(t, resp.ElementTypes).Length(17)

	rec = do(t, h, http.MethodGet, "/api/element-types/heading", nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	rec = do(t, h, http.MethodGet, "/api/element-types/slider", nil)
	gt.Value(t, rec.Code).Equal(http.StatusNotFound)
}

func TestServer_Elements(t *testing.T) {
	h := newServer(t)

	rec := do(t, h, http.MethodPost, "/api/elements", map[string]any{"type": "checkbox"})
	gt.Value(t, rec.Code).Equal(http.StatusCreated)
	el := decode[model.Element](t, rec)
	gt.Value(t, el.ID).NotEqual(model.ElementID(""))
	gt.A(t, el.Config.Options("options")).Length(2)

	t.Run("validate reports violations with 200", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/api/elements/validate", map[string]any{
			"type":   "checkbox",
			"config": map[string]any{"label": "Extras", "minSelections": 3, "maxSelections": 1, "options": []any{}},
		})
		gt.Value(t, rec.Code).Equal(http.StatusOK)
		resp := decode[struct {
			OK         bool              `json:"ok"`
			Violations []model.Violation `json:"violations"`
		}](t, rec)
		gt.Bool(t, resp.OK).False()
		gt.Number(t, len(resp.Violations)).GreaterOrEqual(2)
	})

	t.Run("preview", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/api/elements/preview", map[string]any{
			"id":     "el-1",
			"type":   "heading",
			"config": map[string]any{"text": "Personalize", "level": "h1"},
		})
		gt.Value(t, rec.Code).Equal(http.StatusOK)
		resp := decode[map[string]any](t, rec)
		gt.Value(t, resp["supported"]).Equal(true)
		gt.Value(t, resp["elementId"]).Equal("el-1")
	})

	t.Run("bad body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/elements", bytes.NewBufferString("{"))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})
}

func TestServer_OptionSetLifecycle(t *testing.T) {
	h := newServer(t)

	rec := do(t, h, http.MethodPost, "/api/option-sets", colorSet())
	gt.Value(t, rec.Code).Equal(http.StatusCreated)
	set := decode[model.OptionSet](t, rec)

	t.Run("empty option set is 422 with violations", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/api/option-sets", map[string]any{"name": "Empty", "elements": []any{}})
		gt.Value(t, rec.Code).Equal(http.StatusUnprocessableEntity)
		resp := decode[struct {
			Error      string            `json:"error"`
			Violations []model.Violation `json:"violations"`
		}](t, rec)
		gt.A(t, resp.Violations).Length(1)
		gt.Value(t, string(resp.Violations[0].Rule)).Equal("EmptyOptionSet")
	})

	t.Run("get and preview", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/api/option-sets/"+string(set.ID), nil)
		gt.Value(t, rec.Code).Equal(http.StatusOK)

		rec = do(t, h, http.MethodGet, "/api/option-sets/"+string(set.ID)+"/preview", nil)
		gt.Value(t, rec.Code).Equal(http.StatusOK)
		resp := decode[struct {
			Elements []map[string]any `json:"elements"`
		}](t, rec)
		gt.A(t, resp.Elements).Length(1)

		rec = do(t, h, http.MethodGet, "/api/option-sets/missing", nil)
		gt.Value(t, rec.Code).Equal(http.StatusNotFound)
	})

	t.Run("edit element rejects exclusive flags with 400", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/api/option-sets/"+string(set.ID)+"/elements", map[string]any{"type": "datetime"})
		gt.Value(t, rec.Code).Equal(http.StatusCreated)
		el := decode[model.Element](t, rec)

		path := "/api/option-sets/" + string(set.ID) + "/elements/" + string(el.ID)
		rec = do(t, h, http.MethodPatch, path, map[string]any{"path": "disablePastDates", "value": true})
		gt.Value(t, rec.Code).Equal(http.StatusOK)

		rec = do(t, h, http.MethodPatch, path, map[string]any{"path": "disableFutureDates", "value": true})
		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)

		rec = do(t, h, http.MethodPut, path+"/position", map[string]any{"index": 0})
		gt.Value(t, rec.Code).Equal(http.StatusOK)
		moved := decode[model.OptionSet](t, rec)
		gt.Value(t, moved.Elements[0].ID).Equal(el.ID)

		rec = do(t, h, http.MethodDelete, path, nil)
		gt.Value(t, rec.Code).Equal(http.StatusNoContent)
	})

	t.Run("duplicate, reorder and default open", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/api/option-sets/"+string(set.ID)+"/duplicate", nil)
		gt.Value(t, rec.Code).Equal(http.StatusCreated)
		dup := decode[model.OptionSet](t, rec)
		gt.Value(t, dup.Name).Equal("Color (Copy)")

		rec = do(t, h, http.MethodPut, "/api/option-sets/order", map[string]any{"ids": []model.OptionSetID{dup.ID, set.ID}})
		gt.Value(t, rec.Code).Equal(http.StatusOK)
		list := decode[struct {
			OptionSets []*model.OptionSet `json:"optionSets"`
		}](t, rec)
		gt.Value(t, list.OptionSets[0].ID).Equal(dup.ID)

		rec = do(t, h, http.MethodPut, "/api/option-sets/order", map[string]any{"ids": []model.OptionSetID{set.ID, "c"}})
		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)

		rec = do(t, h, http.MethodPost, "/api/option-sets/"+string(dup.ID)+"/default-open", nil)
		gt.Value(t, rec.Code).Equal(http.StatusNoContent)
		rec = do(t, h, http.MethodDelete, "/api/option-sets/default-open", nil)
		gt.Value(t, rec.Code).Equal(http.StatusNoContent)

		rec = do(t, h, http.MethodDelete, "/api/option-sets/"+string(dup.ID), nil)
		gt.Value(t, rec.Code).Equal(http.StatusNoContent)
	})
}

func TestServer_Templates(t *testing.T) {
	h := newServer(t)

	set := decode[model.OptionSet](t, do(t, h, http.MethodPost, "/api/option-sets", colorSet()))

	rec := do(t, h, http.MethodPost, "/api/templates", map[string]any{"name": "Rings", "optionSetIds": []model.OptionSetID{}})
	gt.Value(t, rec.Code).Equal(http.StatusUnprocessableEntity)

	rec = do(t, h, http.MethodPost, "/api/templates", map[string]any{"name": "Rings", "optionSetIds": []model.OptionSetID{"missing"}})
	gt.Value(t, rec.Code).Equal(http.StatusNotFound)

	rec = do(t, h, http.MethodPost, "/api/templates", map[string]any{"name": "Rings", "optionSetIds": []model.OptionSetID{set.ID}})
	gt.Value(t, rec.Code).Equal(http.StatusCreated)
	tmpl := decode[model.Template](t, rec)
	gt.A(t, tmpl.OptionSets).Length(1)

	rec = do(t, h, http.MethodPost, "/api/templates/"+string(tmpl.ID)+"/duplicate", nil)
	gt.Value(t, rec.Code).Equal(http.StatusCreated)

	rec = do(t, h, http.MethodDelete, "/api/option-sets/"+string(set.ID), nil)
	gt.Value(t, rec.Code).Equal(http.StatusNoContent)

	rec = do(t, h, http.MethodGet, "/api/templates/"+string(tmpl.ID), nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)
	gt.A(t, decode[model.Template](t, rec).OptionSets).Length(0)

	rec = do(t, h, http.MethodGet, "/api/templates", nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)
	gt.A(t, decode[struct {
		Templates []*model.Template `json:"templates"`
	}](t, rec).Templates).Length(2)

	rec = do(t, h, http.MethodDelete, "/api/templates/"+string(tmpl.ID), nil)
	gt.Value(t, rec.Code).Equal(http.StatusNoContent)
}

func TestServer_Catalog(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		h := newServer(t)
		rec := do(t, h, http.MethodGet, "/api/catalog/products", nil)
		gt.Value(t, rec.Code).Equal(http.StatusNotImplemented)
	})

	t.Run("products, collections and populate", func(t *testing.T) {
		catalog := commerce.NewMemory(
			[]*model.Product{{ID: "p1", Handle: "gold-ring", Title: "Gold Ring", Price: 120}},
			[]*model.Collection{{ID: "rings", Title: "Rings", ProductIDs: []model.ProductID{"p1"}}},
		)
		h := newServer(t, usecase.WithCommerce(catalog))

		rec := do(t, h, http.MethodGet, "/api/catalog/products?q=gold", nil)
		gt.Value(t, rec.Code).Equal(http.StatusOK)
		products := decode[struct {
			Products []*model.Product `json:"products"`
		}](t, rec)
		gt.A(t, products.Products).Length(1)

		rec = do(t, h, http.MethodGet, "/api/catalog/collections", nil)
		gt.Value(t, rec.Code).Equal(http.StatusOK)

		rec = do(t, h, http.MethodPost, "/api/elements/populate", map[string]any{
			"element": map[string]any{"id": "el-1", "type": "dropdown", "config": map[string]any{}},
			"source":  map[string]any{"collectionId": "rings"},
		})
		gt.Value(t, rec.Code).Equal(http.StatusOK)
		el := decode[model.Element](t, rec)
		opts := el.Config.Options("options")
		gt.A(t, opts).Length(1)
		gt.Value(t, opts[0].Value).Equal("gold-ring")

		rec = do(t, h, http.MethodPost, "/api/elements/populate", map[string]any{
			"element": map[string]any{"id": "el-2", "type": "text"},
			"source":  map[string]any{"collectionId": "rings"},
		})
		gt.Value(t, rec.Code).Equal(http.StatusNotFound)
	})
}
