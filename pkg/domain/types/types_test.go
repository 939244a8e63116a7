package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/tailorkit/pkg/domain/types"
)

func TestElementType_Classification(t *testing.T) {
	tests := []struct {
		et          types.ElementType
		input       bool
		selection   bool
		choiceGroup bool
		layout      bool
	}{
		{types.ElementTypeText, true, false, false, false},
		{types.ElementTypePhone, true, false, false, false},
		{types.ElementTypeSelect, false, true, false, false},
		{types.ElementTypeImageDropdown, false, true, false, false},
		{types.ElementTypeRadio, false, true, true, false},
		{types.ElementTypeCheckbox, false, true, true, false},
		{types.ElementTypeHeading, false, false, false, true},
		{types.ElementTypeSpacing, false, false, false, true},
		{types.ElementTypeDatetime, false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.et.String(), func(t *testing.T) {
			gt.Bool(t, tt.et.IsValid()).True()
			gt.Value(t, tt.et.IsInput()).Equal(tt.input)
			gt.Value(t, tt.et.IsSelection()).Equal(tt.selection)
			gt.Value(t, tt.et.IsChoiceGroup()).Equal(tt.choiceGroup)
			gt.Value(t, tt.et.IsLayout()).Equal(tt.layout)
		})
	}
}

func TestElementType_IsValid(t *testing.T) {
	gt.A(t, types.AllElementTypes()).Length(17)
	gt.Bool(t, types.ElementType("slider").IsValid()).False()
	gt.Bool(t, types.ElementType("").IsValid()).False()
}

func TestHeadingLevel_DefaultFontSize(t *testing.T) {
	tests := []struct {
		level types.HeadingLevel
		want  float64
	}{
		{types.HeadingH1, 32},
		{types.HeadingH2, 28},
		{types.HeadingH3, 24},
		{types.HeadingH4, 20},
		{types.HeadingH5, 18},
		{types.HeadingH6, 16},
		{types.HeadingLevel("h9"), 28},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			gt.Value(t, tt.level.DefaultFontSize()).Equal(tt.want)
		})
	}
}

func TestEmptyTemplatePolicy_Validate(t *testing.T) {
	gt.NoError(t, types.EmptyTemplatePolicyKeep.Validate())
	gt.NoError(t, types.EmptyTemplatePolicyRemove.Validate())
	gt.Value(t, types.EmptyTemplatePolicy("archive").Validate()).NotNil()
}
