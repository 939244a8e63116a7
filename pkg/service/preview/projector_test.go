package preview_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/tailorkit/pkg/domain/model"
	"github.com/secmon-lab/tailorkit/pkg/domain/schema"
	"github.com/secmon-lab/tailorkit/pkg/domain/types"
	"github.com/secmon-lab/tailorkit/pkg/service/preview"
)

func newElement(t *testing.T, et types.ElementType, edits map[string]any) *model.Element {
	t.Helper()
	el, err := schema.NewElement(et)
	gt.NoError(t, err).Required()
	for k, v := range edits {
		el.Config.Set(k, v)
	}
	return el
}

func optionLabels(n *preview.Node) []string {
	var labels []string
	for _, opt := range n.FindAll(preview.NodeOption) {
		labels = append(labels, opt.Text)
	}
	return labels
}

func TestProject_RadioListsOptionsInOrder(t *testing.T) {
	el := newElement(t, types.ElementTypeRadio, map[string]any{
		"label": "Color",
		"options": []any{
			map[string]any{"value": "red", "label": "Red"},
			map[string]any{"value": "green", "label": "Green"},
			map[string]any{"value": "blue", "label": "Blue"},
		},
	})

	desc := preview.Project(el)
	gt.B(t, desc.Supported).True()
	gt.Value(t, desc.ElementID).Equal(string(el.ID))

	want := []string{"Red", "Green", "Blue"}
	if diff := cmp.Diff(want, optionLabels(desc.Root)); diff != "" {
		t.Errorf("option labels mismatch (-want +got):\n%s", diff)
	}

	group := desc.Root.Find(preview.NodeChoiceGroup)
	gt.Value(t, group).NotNil()
	gt.Value(t, group.Attrs["inputType"]).Equal("radio")
}

func TestProject_Width(t *testing.T) {
	tests := []struct {
		name  string
		edits map[string]any
		want  string
	}{
		{"full", map[string]any{"width": "full"}, "100%"},
		{"half", map[string]any{"width": "half"}, "50%"},
		{"custom px", map[string]any{"width": "custom", "customWidth": 240.0, "customWidthUnit": "px"}, "240px"},
		{"custom percent", map[string]any{"width": "custom", "customWidth": 75, "customWidthUnit": "%"}, "75%"},
	}

	for _, et := range []types.ElementType{types.ElementTypeSelect, types.ElementTypeCheckbox, types.ElementTypeImageDropdown} {
		for _, tt := range tests {
			t.Run(et.String()+"/"+tt.name, func(t *testing.T) {
				desc := preview.Project(newElement(t, et, tt.edits))
				gt.Value(t, desc.Width).Equal(tt.want)
				gt.Value(t, desc.Root.Style["width"]).Equal(tt.want)
			})
		}
	}
}

func TestProject_SelectionFlags(t *testing.T) {
	options := []any{
		map[string]any{"value": "gold", "label": "Gold", "price": 12.5, "image": "https://cdn.example/gold.png", "description": "Shiny"},
		map[string]any{"value": "plain", "label": "Plain"},
	}

	t.Run("flags off omit sub fields", func(t *testing.T) {
		desc := preview.Project(newElement(t, types.ElementTypeCheckbox, map[string]any{"options": options}))
		gt.A(t, desc.Root.FindAll(preview.NodePrice)).Length(0)
		gt.A(t, desc.Root.FindAll(preview.NodeImage)).Length(0)
		gt.A(t, desc.Root.FindAll(preview.NodeDescription)).Length(0)
	})

	t.Run("flags on include only present data", func(t *testing.T) {
		desc := preview.Project(newElement(t, types.ElementTypeCheckbox, map[string]any{
			"options":         options,
			"showPrice":       true,
			"showImage":       true,
			"showDescription": true,
		}))

		opts := desc.Root.FindAll(preview.NodeOption)
		gt.A(t, opts).Length(2)

		gt.Value(t, opts[0].Find(preview.NodePrice).Text).Equal("12.50")
		gt.Value(t, opts[0].Find(preview.NodeImage).Attrs["src"]).Equal("https://cdn.example/gold.png")
		gt.Value(t, opts[0].Find(preview.NodeDescription).Text).Equal("Shiny")

		// the second option carries none of the data, nothing is fabricated
		gt.A(t, opts[1].Children).Length(0)
	})

	t.Run("dropdown shows price", func(t *testing.T) {
		desc := preview.Project(newElement(t, types.ElementTypeDropdown, map[string]any{
			"options":   options,
			"showPrice": true,
		}))
		gt.A(t, desc.Root.FindAll(preview.NodePrice)).Length(1)
		gt.Value(t, desc.Root.Find(preview.NodeSelect)).NotNil()
	})
}

func TestProject_HeadingFontSize(t *testing.T) {
	levels := map[string]string{
		"h1": "32px", "h2": "28px", "h3": "24px", "h4": "20px", "h5": "18px", "h6": "16px",
	}
	for level, want := range levels {
		t.Run(level, func(t *testing.T) {
			desc := preview.Project(newElement(t, types.ElementTypeHeading, map[string]any{"level": level}))
			gt.Value(t, desc.Root.Style["font-size"]).Equal(want)
		})
	}

	t.Run("explicit size wins", func(t *testing.T) {
		desc := preview.Project(newElement(t, types.ElementTypeHeading, map[string]any{"level": "h1", "fontSize": 40.0}))
		gt.Value(t, desc.Root.Style["font-size"]).Equal("40px")
		gt.Value(t, desc.Root.Attrs["level"]).Equal("h1")
	})
}

func TestProject_Unsupported(t *testing.T) {
	desc := preview.Project(&model.Element{ID: "x", Type: types.ElementType("carousel")})
	gt.B(t, desc.Supported).False()
	gt.Value(t, desc.Root.Kind).Equal(preview.NodeUnsupported)
	gt.A(t, desc.Root.Children).Length(0)
}

func TestProject_DoesNotMutateConfig(t *testing.T) {
	el := &model.Element{
		ID:     "partial",
		Type:   types.ElementTypeText,
		Config: model.Config{"label": "Name"},
	}
	before := el.Config.Clone()

	desc := preview.Project(el)
	gt.Value(t, el.Config).Equal(before)
	gt.Value(t, desc.Root.Find(preview.NodeLabel).Text).Equal("Name")
}

func TestProject_HideLabelAndHelp(t *testing.T) {
	desc := preview.Project(newElement(t, types.ElementTypeText, map[string]any{
		"hideLabel": true,
		"helpText":  `Max <b>20</b> characters<script>alert(1)</script>`,
	}))
	gt.Value(t, desc.Root.Find(preview.NodeLabel)).Nil()

	help := desc.Root.Find(preview.NodeHelp)
	gt.Value(t, help).NotNil()
	gt.Value(t, help.Text).Equal("Max 20 characters")

	markup, _ := help.Attrs["html"].(string)
	gt.String(t, markup).Contains("<b>20</b>")
	gt.B(t, strings.Contains(markup, "script")).False()
}

func TestProject_TextIsNotEscaped(t *testing.T) {
	desc := preview.Project(newElement(t, types.ElementTypeRadio, map[string]any{
		"helpText":        "Size & fit",
		"showDescription": true,
		"options": []any{
			map[string]any{"value": "petite", "label": "Petite", "description": `Fits 5'6" & under`},
		},
	}))

	help := desc.Root.Find(preview.NodeHelp)
	gt.Value(t, help.Text).Equal("Size & fit")
	gt.Value(t, help.Attrs["html"]).Equal("Size &amp; fit")

	description := desc.Root.Find(preview.NodeDescription)
	gt.Value(t, description.Text).Equal(`Fits 5'6" & under`)
	markup, _ := description.Attrs["html"].(string)
	gt.String(t, markup).Contains("&amp;")
}

func TestProject_ContentIsNotFilledFromDefaults(t *testing.T) {
	el := &model.Element{
		ID:     "partial-radio",
		Type:   types.ElementTypeRadio,
		Config: model.Config{"label": "Color"},
	}

	desc := preview.Project(el)
	gt.B(t, desc.Supported).True()
	gt.A(t, desc.Root.FindAll(preview.NodeOption)).Length(0)
	gt.Value(t, desc.Root.Find(preview.NodeLabel).Text).Equal("Color")
	gt.Value(t, desc.Root.Find(preview.NodeHelp)).Nil()

	// styling still falls back to defaults
	gt.Value(t, desc.Width).Equal("100%")

	heading := preview.Project(&model.Element{ID: "h", Type: types.ElementTypeHeading, Config: model.Config{"level": "h3"}})
	gt.Value(t, heading.Root.Text).Equal("")
	gt.Value(t, heading.Root.Style["font-size"]).Equal("24px")

	redirect := preview.Project(&model.Element{ID: "r", Type: types.ElementTypeRedirect, Config: model.Config{}})
	gt.Value(t, redirect.Root.Text).Equal("")
	gt.Value(t, redirect.Root.Attrs["href"]).Equal("")
	gt.Value(t, redirect.Root.Attrs["target"]).Equal("_self")
}

func TestProject_NilElement(t *testing.T) {
	desc := preview.Project(nil)
	gt.Value(t, desc).NotNil()
	gt.B(t, desc.Supported).False()
	gt.Value(t, desc.Root.Kind).Equal(preview.NodeUnsupported)

	gt.A(t, preview.New(nil).ProjectOptionSet(nil)).Length(0)

	descs := preview.New(nil).ProjectOptionSet(&model.OptionSet{
		Elements: []*model.Element{nil, newElement(t, types.ElementTypeText, nil)},
	})
	gt.A(t, descs).Length(2)
	gt.B(t, descs[0].Supported).False()
	gt.B(t, descs[1].Supported).True()
}

func TestProject_LayoutElements(t *testing.T) {
	t.Run("divider", func(t *testing.T) {
		desc := preview.Project(newElement(t, types.ElementTypeDivider, map[string]any{"style": "dashed", "thickness": 2.0}))
		want := map[string]string{
			"border-top":    "2px dashed #E1E3E5",
			"margin-top":    "16px",
			"margin-bottom": "16px",
		}
		if diff := cmp.Diff(want, desc.Root.Style); diff != "" {
			t.Errorf("divider style mismatch (-want +got):\n%s", diff)
		}
		gt.Value(t, desc.Width).Equal("")
	})

	t.Run("spacing", func(t *testing.T) {
		desc := preview.Project(newElement(t, types.ElementTypeSpacing, map[string]any{"height": 40.0}))
		gt.Value(t, desc.Root.Kind).Equal(preview.NodeSpacer)
		gt.Value(t, desc.Root.Style["height"]).Equal("40px")
	})
}

func TestProject_Redirect(t *testing.T) {
	el := newElement(t, types.ElementTypeRedirect, map[string]any{
		"basic.url":      "https://shop.example/pages/size-guide",
		"basic.label":    "Size guide",
		"basic.target":   "_blank",
		"style.isButton": true,
		"icon.show":      true,
		"icon.svg":       `<svg viewBox="0 0 10 10" onload="evil()"><path d="M0 0L10 10"/></svg>`,
	})

	desc := preview.Project(el)
	gt.Value(t, desc.Root.Kind).Equal(preview.NodeLink)
	gt.Value(t, desc.Root.Text).Equal("Size guide")
	gt.Value(t, desc.Root.Attrs["href"]).Equal("https://shop.example/pages/size-guide")
	gt.Value(t, desc.Root.Style["background-color"]).Equal("#000000")

	icon := desc.Root.Find(preview.NodeIcon)
	gt.Value(t, icon).NotNil()
	svg, _ := icon.Attrs["svg"].(string)
	gt.String(t, svg).Contains("<path")
	gt.B(t, strings.Contains(svg, "onload")).False()
}

func TestProject_DatetimeAndFile(t *testing.T) {
	dt := preview.Project(newElement(t, types.ElementTypeDatetime, map[string]any{
		"displayMode":      "datetime",
		"minDate":          "2025-01-01",
		"disablePastDates": true,
	}))
	input := dt.Root.Find(preview.NodeInput)
	gt.Value(t, input.Attrs["inputType"]).Equal("datetime-local")
	gt.Value(t, input.Attrs["min"]).Equal("2025-01-01")
	gt.Value(t, input.Attrs["disablePastDates"]).Equal(true)

	file := preview.Project(newElement(t, types.ElementTypeFile, map[string]any{
		"allowedExtensions": []any{".png", ".svg"},
		"allowMultiple":     true,
		"maxFiles":          3.0,
	}))
	fileInput := file.Root.Find(preview.NodeInput)
	gt.Value(t, fileInput.Attrs["accept"]).Equal(".png,.svg")
	gt.Value(t, fileInput.Attrs["maxFiles"]).Equal(3.0)
}

func TestProjectOptionSet(t *testing.T) {
	set := &model.OptionSet{
		Name: "Engraving",
		Elements: []*model.Element{
			newElement(t, types.ElementTypeHeading, nil),
			newElement(t, types.ElementTypeText, nil),
		},
	}
	descs := preview.New(nil).ProjectOptionSet(set)
	gt.A(t, descs).Length(2)
	gt.Value(t, descs[0].Type).Equal(types.ElementTypeHeading)
	gt.Value(t, descs[1].Type).Equal(types.ElementTypeText)
}
