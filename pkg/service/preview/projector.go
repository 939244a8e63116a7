package preview

import (
	"strconv"
	"strings"

	"github.com/secmon-lab/tailorkit/pkg/domain/model"
	"github.com/secmon-lab/tailorkit/pkg/domain/schema"
	"github.com/secmon-lab/tailorkit/pkg/domain/types"
)

// Projector maps elements to render descriptions. It performs no I/O.
type Projector struct {
	registry *schema.Registry
}

// New creates a projector over registry. A nil registry means the default one.
func New(registry *schema.Registry) *Projector {
	if registry == nil {
		registry = schema.Default()
	}
	return &Projector{registry: registry}
}

// Project is a shortcut for projecting with the default registry
func Project(el *model.Element) *Description {
	return New(nil).Project(el)
}

// Project describes what el looks like. Unknown types and a nil element yield an unsupported leaf.
// Styling falls back to schema defaults, but merchant content such as labels, texts and options
// is shown only as configured.
func (p *Projector) Project(el *model.Element) *Description {
	if el == nil {
		return &Description{Root: unsupportedNode("")}
	}

	desc := &Description{
		ElementID: string(el.ID),
		Type:      el.Type,
	}

	cfg, err := p.registry.Complete(el.Type, el.Config)
	if err != nil {
		desc.Root = unsupportedNode(el.Type)
		return desc
	}
	keepContent(cfg, el.Config)
	desc.Supported = true

	if s, _ := p.registry.SchemaFor(el.Type); s != nil && s.HasField("width") {
		desc.Width = ResolveWidth(cfg)
	}

	switch {
	case el.Type.IsInput():
		desc.Root = projectInput(el.Type, cfg, desc.Width)
	case el.Type == types.ElementTypeSelect || el.Type == types.ElementTypeDropdown || el.Type == types.ElementTypeImageDropdown:
		desc.Root = projectSelect(el.Type, cfg, desc.Width)
	case el.Type.IsChoiceGroup():
		desc.Root = projectChoiceGroup(el.Type, cfg, desc.Width)
	default:
		switch el.Type {
		case types.ElementTypeDatetime:
			desc.Root = projectDatetime(cfg, desc.Width)
		case types.ElementTypeFile:
			desc.Root = projectFile(cfg, desc.Width)
		case types.ElementTypeButton:
			desc.Root = projectButton(cfg, desc.Width)
		case types.ElementTypeHeading:
			desc.Root = projectHeading(cfg)
		case types.ElementTypeDivider:
			desc.Root = projectDivider(cfg)
		case types.ElementTypeSpacing:
			desc.Root = projectSpacing(cfg)
		case types.ElementTypeRedirect:
			desc.Root = projectRedirect(cfg)
		}
	}

	return desc
}

// ProjectOptionSet projects every element of set in display order
func (p *Projector) ProjectOptionSet(set *model.OptionSet) []*Description {
	if set == nil {
		return []*Description{}
	}
	out := make([]*Description, len(set.Elements))
	for i, el := range set.Elements {
		out[i] = p.Project(el)
	}
	return out
}

func unsupportedNode(t types.ElementType) *Node {
	return &Node{
		Kind:  NodeUnsupported,
		Text:  "Unsupported element type",
		Attrs: map[string]any{"type": string(t)},
	}
}

// contentPaths hold merchant authored content. Their schema defaults are editor placeholders
// and are never shown in a preview.
var contentPaths = []string{
	"options",
	"label",
	"placeholder",
	"helpText",
	"defaultValue",
	"text",
	"buttonText",
	"url",
	"basic.label",
	"basic.url",
	"icon.name",
	"icon.svg",
}

// keepContent removes the content paths that raw does not set from a completed config
func keepContent(cfg, raw model.Config) {
	for _, path := range contentPaths {
		if _, ok := raw.Lookup(path); ok {
			continue
		}
		parent, key := map[string]any(cfg), path
		if i := strings.LastIndex(path, "."); i >= 0 {
			v, ok := cfg.Lookup(path[:i])
			if !ok {
				continue
			}
			if parent, ok = asObject(v); !ok {
				continue
			}
			key = path[i+1:]
		}
		delete(parent, key)
	}
}

func asObject(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case model.Config:
		return m, true
	}
	return nil, false
}

// ResolveWidth turns the width settings of a config into a CSS width
func ResolveWidth(cfg model.Config) string {
	switch types.WidthMode(cfg.String("width")) {
	case types.WidthHalf:
		return "50%"
	case types.WidthCustom:
		w, ok := cfg.Number("customWidth")
		if !ok {
			return "100%"
		}
		unit := cfg.String("customWidthUnit")
		if unit == "" {
			unit = "%"
		}
		return formatNumber(w) + unit
	default:
		return "100%"
	}
}

func fieldNode(t types.ElementType, cfg model.Config, width string) *Node {
	n := &Node{
		Kind:  NodeField,
		Attrs: map[string]any{"type": string(t), "size": cfg.String("size")},
		Style: map[string]string{"width": width},
	}
	if !cfg.Bool("hideLabel") {
		n.add(&Node{
			Kind:  NodeLabel,
			Text:  cfg.String("label"),
			Attrs: map[string]any{"required": cfg.Bool("required")},
		})
	}
	return n
}

func helpNode(cfg model.Config) *Node {
	return richTextNode(NodeHelp, cfg.String("helpText"))
}

var inputTypes = map[types.ElementType]string{
	types.ElementTypeText:     "text",
	types.ElementTypeTextarea: "textarea",
	types.ElementTypeNumber:   "number",
	types.ElementTypeEmail:    "email",
	types.ElementTypePhone:    "tel",
}

func projectInput(t types.ElementType, cfg model.Config, width string) *Node {
	attrs := map[string]any{
		"inputType":    inputTypes[t],
		"placeholder":  cfg.String("placeholder"),
		"defaultValue": cfg.String("defaultValue"),
		"required":     cfg.Bool("required"),
		"readOnly":     cfg.Bool("readOnly"),
	}
	if t == types.ElementTypeTextarea {
		if rows, ok := cfg.Number("rows"); ok {
			attrs["rows"] = rows
		}
	}
	copyNumbers(attrs, cfg, map[string]string{
		"validation.minLength": "minLength",
		"validation.maxLength": "maxLength",
		"validation.min":       "min",
		"validation.max":       "max",
		"validation.step":      "step",
	})
	if pattern := cfg.String("validation.pattern"); pattern != "" {
		attrs["pattern"] = pattern
	}

	return fieldNode(t, cfg, width).add(
		&Node{Kind: NodeInput, Attrs: attrs},
		helpNode(cfg),
	)
}

func projectSelect(t types.ElementType, cfg model.Config, width string) *Node {
	showPrice := cfg.Bool("showPrice")
	showImage := cfg.Bool("showImage")

	sel := &Node{
		Kind: NodeSelect,
		Attrs: map[string]any{
			"multiple":   cfg.Bool("multiple"),
			"searchable": cfg.Bool("searchable"),
			"required":   cfg.Bool("required"),
		},
	}
	if ph := cfg.String("placeholder"); ph != "" {
		sel.Attrs["placeholder"] = ph
	}
	copyNumbers(sel.Attrs, cfg, map[string]string{
		"minSelections": "minSelections",
		"maxSelections": "maxSelections",
	})

	for _, opt := range cfg.Options("options") {
		sel.add(optionNode(opt, cfg.String("defaultValue"), showPrice, showImage, false))
	}

	return fieldNode(t, cfg, width).add(sel, helpNode(cfg))
}

func projectChoiceGroup(t types.ElementType, cfg model.Config, width string) *Node {
	inputType := "radio"
	if t == types.ElementTypeCheckbox {
		inputType = "checkbox"
	}

	group := &Node{
		Kind: NodeChoiceGroup,
		Attrs: map[string]any{
			"inputType":    inputType,
			"layout":       cfg.String("layout"),
			"displayStyle": cfg.String("displayStyle"),
			"optionSize":   cfg.String("optionSize"),
			"required":     cfg.Bool("required"),
		},
	}
	copyNumbers(group.Attrs, cfg, map[string]string{
		"minSelections": "minSelections",
		"maxSelections": "maxSelections",
	})

	showPrice := cfg.Bool("showPrice")
	showImage := cfg.Bool("showImage")
	showDescription := cfg.Bool("showDescription")
	for _, opt := range cfg.Options("options") {
		group.add(optionNode(opt, cfg.String("defaultValue"), showPrice, showImage, showDescription))
	}

	return fieldNode(t, cfg, width).add(group, helpNode(cfg))
}

func optionNode(opt model.Option, defaultValue string, showPrice, showImage, showDescription bool) *Node {
	n := &Node{
		Kind: NodeOption,
		Text: opt.Label,
		Attrs: map[string]any{
			"value":    opt.Value,
			"selected": defaultValue != "" && opt.Value == defaultValue,
		},
	}
	if showImage && opt.Image != "" {
		n.add(&Node{Kind: NodeImage, Attrs: map[string]any{"src": opt.Image, "alt": opt.Label}})
	}
	if icon := sanitizeIcon(opt.Icon); icon != "" {
		n.add(&Node{Kind: NodeIcon, Text: icon})
	}
	if showDescription && opt.Description != "" {
		n.add(richTextNode(NodeDescription, opt.Description))
	}
	if showPrice && opt.Price != nil {
		n.add(&Node{Kind: NodePrice, Text: formatPrice(*opt.Price), Attrs: map[string]any{"amount": *opt.Price}})
	}
	return n
}

var dateInputTypes = map[string]string{
	"date":     "date",
	"time":     "time",
	"datetime": "datetime-local",
}

func projectDatetime(cfg model.Config, width string) *Node {
	inputType, ok := dateInputTypes[cfg.String("displayMode")]
	if !ok {
		inputType = "date"
	}
	attrs := map[string]any{
		"inputType":          inputType,
		"dateFormat":         cfg.String("dateFormat"),
		"timeFormat":         cfg.String("timeFormat"),
		"disablePastDates":   cfg.Bool("disablePastDates"),
		"disableFutureDates": cfg.Bool("disableFutureDates"),
		"required":           cfg.Bool("required"),
		"readOnly":           cfg.Bool("readOnly"),
	}
	if v := cfg.String("minDate"); v != "" {
		attrs["min"] = v
	}
	if v := cfg.String("maxDate"); v != "" {
		attrs["max"] = v
	}
	if v := cfg.String("placeholder"); v != "" {
		attrs["placeholder"] = v
	}

	return fieldNode(types.ElementTypeDatetime, cfg, width).add(
		&Node{Kind: NodeInput, Attrs: attrs},
		helpNode(cfg),
	)
}

func projectFile(cfg model.Config, width string) *Node {
	exts := cfg.Strings("allowedExtensions")
	attrs := map[string]any{
		"inputType": "file",
		"accept":    strings.Join(exts, ","),
		"multiple":  cfg.Bool("allowMultiple"),
		"required":  cfg.Bool("required"),
	}
	copyNumbers(attrs, cfg, map[string]string{
		"maxFileSize": "maxFileSize",
		"minFileSize": "minFileSize",
	})
	if cfg.Bool("allowMultiple") {
		copyNumbers(attrs, cfg, map[string]string{"maxFiles": "maxFiles"})
	}

	return fieldNode(types.ElementTypeFile, cfg, width).add(
		&Node{Kind: NodeInput, Attrs: attrs},
		helpNode(cfg),
	)
}

func projectButton(cfg model.Config, width string) *Node {
	n := &Node{
		Kind: NodeButton,
		Text: cfg.String("buttonText"),
		Attrs: map[string]any{
			"action":  cfg.String("action"),
			"variant": cfg.String("buttonStyle"),
			"size":    cfg.String("buttonSize"),
		},
		Style: map[string]string{
			"width":            width,
			"background-color": cfg.String("backgroundColor"),
			"color":            cfg.String("textColor"),
		},
	}
	if r, ok := cfg.Number("borderRadius"); ok {
		n.Style["border-radius"] = px(r)
	}
	if cfg.String("action") == "link" && cfg.String("url") != "" {
		n.Attrs["href"] = cfg.String("url")
	}
	return n
}

func projectHeading(cfg model.Config) *Node {
	level := types.HeadingLevel(cfg.String("level"))
	size := level.DefaultFontSize()
	if explicit, ok := cfg.Number("fontSize"); ok && explicit > 0 {
		size = explicit
	}
	if !level.IsValid() {
		level = types.HeadingH2
	}

	return &Node{
		Kind:  NodeHeading,
		Text:  cfg.String("text"),
		Attrs: map[string]any{"level": string(level)},
		Style: map[string]string{
			"font-size":     px(size),
			"color":         cfg.String("color"),
			"text-align":    cfg.String("alignment"),
			"margin-top":    numberPx(cfg, "marginTop"),
			"margin-bottom": numberPx(cfg, "marginBottom"),
		},
	}
}

func projectDivider(cfg model.Config) *Node {
	thickness, _ := cfg.Number("thickness")
	return &Node{
		Kind: NodeDivider,
		Style: map[string]string{
			"border-top":    px(thickness) + " " + cfg.String("style") + " " + cfg.String("color"),
			"margin-top":    numberPx(cfg, "marginTop"),
			"margin-bottom": numberPx(cfg, "marginBottom"),
		},
	}
}

func projectSpacing(cfg model.Config) *Node {
	return &Node{
		Kind:  NodeSpacer,
		Style: map[string]string{"height": numberPx(cfg, "height")},
	}
}

func projectRedirect(cfg model.Config) *Node {
	n := &Node{
		Kind: NodeLink,
		Text: cfg.String("basic.label"),
		Attrs: map[string]any{
			"href":     cfg.String("basic.url"),
			"target":   cfg.String("basic.target"),
			"linkType": cfg.String("basic.linkType"),
			"isButton": cfg.Bool("style.isButton"),
		},
		Style: map[string]string{},
	}

	if cfg.Bool("style.isButton") {
		n.Style["background-color"] = cfg.String("style.buttonStyle.backgroundColor")
		n.Style["color"] = cfg.String("style.buttonStyle.textColor")
		n.Style["border-radius"] = numberPx(cfg, "style.buttonStyle.borderRadius")
		n.Style["padding"] = numberPx(cfg, "style.buttonStyle.padding")
	} else {
		n.Style["color"] = cfg.String("style.color")
	}

	if cfg.Bool("icon.show") {
		icon := &Node{
			Kind:  NodeIcon,
			Text:  cfg.String("icon.name"),
			Attrs: map[string]any{"position": cfg.String("icon.position")},
		}
		if svg := sanitizeIcon(cfg.String("icon.svg")); svg != "" {
			icon.Attrs["svg"] = svg
		}
		n.add(icon)
	}
	return n
}

func copyNumbers(attrs map[string]any, cfg model.Config, mapping map[string]string) {
	for path, name := range mapping {
		if v, ok := cfg.Number(path); ok {
			attrs[name] = v
		}
	}
}

func numberPx(cfg model.Config, path string) string {
	v, _ := cfg.Number(path)
	return px(v)
}

func px(v float64) string {
	return formatNumber(v) + "px"
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
