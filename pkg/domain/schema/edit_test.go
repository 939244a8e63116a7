package schema_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/tailorkit/pkg/domain/model"
	"github.com/secmon-lab/tailorkit/pkg/domain/schema"
	"github.com/secmon-lab/tailorkit/pkg/domain/types"
)

func TestApplyEdit_DateFlagsAreExclusive(t *testing.T) {
	el, err := schema.NewElement(types.ElementTypeDatetime)
	gt.NoError(t, err).Required()

	gt.NoError(t, schema.ApplyEdit(el, "disablePastDates", true)).Required()
	before := el.Config.Clone()

	err = schema.ApplyEdit(el, "disableFutureDates", true)
	gt.Error(t, err).Is(model.ErrMutuallyExclusiveFlags)

	gt.Value(t, el.Config).Equal(before)
	gt.Bool(t, el.Config.Bool("disablePastDates")).True()
	gt.Bool(t, el.Config.Bool("disableFutureDates")).False()

	// turning the first flag off unlocks the second
	gt.NoError(t, schema.ApplyEdit(el, "disablePastDates", false)).Required()
	gt.NoError(t, schema.ApplyEdit(el, "disableFutureDates", true)).Required()
	gt.Bool(t, el.Config.Bool("disableFutureDates")).True()
}

func TestApplyEdit_RangeInverted(t *testing.T) {
	el, err := schema.NewElement(types.ElementTypeCheckbox)
	gt.NoError(t, err).Required()

	gt.NoError(t, schema.ApplyEdit(el, "maxSelections", 2.0)).Required()

	err = schema.ApplyEdit(el, "minSelections", 3.0)
	gt.Error(t, err).Is(model.ErrRangeInverted)
	gt.Value(t, el.Config["minSelections"]).Nil()

	limit, _ := el.Config.Number("maxSelections")
	gt.Value(t, limit).Equal(2.0)
}

func TestApplyEdit_DateRange(t *testing.T) {
	el, err := schema.NewElement(types.ElementTypeDatetime)
	gt.NoError(t, err).Required()

	gt.NoError(t, schema.ApplyEdit(el, "minDate", "2025-03-01")).Required()
	err = schema.ApplyEdit(el, "maxDate", "2025-02-01")
	gt.Error(t, err).Is(model.ErrRangeInverted)
	gt.Value(t, el.Config.String("maxDate")).Equal("")
}

func TestApplyEdit_TypeMismatch(t *testing.T) {
	el, err := schema.NewElement(types.ElementTypeText)
	gt.NoError(t, err).Required()

	err = schema.ApplyEdit(el, "hideLabel", "true")
	gt.Error(t, err).Is(model.ErrValidationFailed)
	gt.Bool(t, el.Config.Bool("hideLabel")).False()
}

func TestApplyEdit_NestedPath(t *testing.T) {
	el, err := schema.NewElement(types.ElementTypeRedirect)
	gt.NoError(t, err).Required()

	gt.NoError(t, schema.ApplyEdit(el, "basic.url", "https://shop.example/pages/sizing")).Required()
	gt.Value(t, el.Config.String("basic.url")).Equal("https://shop.example/pages/sizing")
	gt.Value(t, el.Config.String("basic.label")).Equal("Learn more")
}

func TestApplyEdit_CopiesValue(t *testing.T) {
	el, err := schema.NewElement(types.ElementTypeSelect)
	gt.NoError(t, err).Required()

	options := []any{map[string]any{"value": "s", "label": "Small"}}
	gt.NoError(t, schema.ApplyEdit(el, "options", options)).Required()

	options[0].(map[string]any)["label"] = "Tiny"
	gt.Value(t, el.Config.Options("options")[0].Label).Equal("Small")
}

func TestApplyEdit_ParentObjectIsCheckedAsAWhole(t *testing.T) {
	el, err := schema.NewElement(types.ElementTypeText)
	gt.NoError(t, err).Required()
	before := el.Config.Clone()

	err = schema.ApplyEdit(el, "validation", map[string]any{"minLength": 10.0, "maxLength": 1.0})
	gt.Error(t, err).Is(model.ErrRangeInverted)
	gt.Value(t, el.Config).Equal(before)

	gt.NoError(t, schema.ApplyEdit(el, "validation", map[string]any{"minLength": 1.0, "maxLength": 10.0})).Required()
	maxLength, _ := el.Config.Number("validation.maxLength")
	gt.Value(t, maxLength).Equal(10.0)
}

func TestValidateEdit_UnrelatedEditOnInvertedConfig(t *testing.T) {
	cfg, err := schema.Materialize(types.ElementTypeNumber)
	gt.NoError(t, err).Required()
	cfg.Set("validation.min", 10.0)
	cfg.Set("validation.max", 1.0)

	gt.NoError(t, schema.ValidateEdit(types.ElementTypeNumber, cfg, "label", "Quantity"))
	gt.Error(t, schema.ValidateEdit(types.ElementTypeNumber, cfg, "validation.max", 5.0)).Is(model.ErrRangeInverted)
	gt.NoError(t, schema.ValidateEdit(types.ElementTypeNumber, cfg, "validation", map[string]any{"min": 1.0, "max": 10.0}))
}
