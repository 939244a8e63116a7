package schema

import "github.com/secmon-lab/tailorkit/pkg/domain/types"

var (
	sizeEnum      = []string{"small", "medium", "large"}
	widthEnum     = []string{string(types.WidthFull), string(types.WidthHalf), string(types.WidthCustom)}
	widthUnitEnum = []string{"%", "px"}
	levelEnum     = []string{"h1", "h2", "h3", "h4", "h5", "h6"}
	alignEnum     = []string{"left", "center", "right"}

	selectOptionKeys = []string{"value", "label", "price", "image"}
	choiceOptionKeys = []string{"value", "label", "description", "price", "image", "icon"}
)

func str(name, def string) Field {
	return Field{Name: name, Kind: KindString, Default: def}
}

func num(name string, def float64) Field {
	return Field{Name: name, Kind: KindNumber, Default: def}
}

func optNum(name string) Field {
	return Field{Name: name, Kind: KindNumber, Nullable: true}
}

func boolean(name string, def bool) Field {
	return Field{Name: name, Kind: KindBoolean, Default: def}
}

func enum(name, def string, values []string) Field {
	return Field{Name: name, Kind: KindEnum, Default: def, Enum: values}
}

func object(name string, fields ...Field) Field {
	return Field{Name: name, Kind: KindObject, Fields: fields}
}

func stringList(name string, def ...string) Field {
	list := make([]any, len(def))
	for i, s := range def {
		list[i] = s
	}
	return Field{Name: name, Kind: KindStrings, Default: list}
}

func options(keys []string, entries ...map[string]any) Field {
	list := make([]any, len(entries))
	for i, e := range entries {
		list[i] = e
	}
	return Field{Name: "options", Kind: KindOptions, Default: list, Option: &OptionSchema{Keys: keys}}
}

func widthFields() []Field {
	return []Field{
		enum("width", string(types.WidthFull), widthEnum),
		num("customWidth", 100),
		enum("customWidthUnit", "%", widthUnitEnum),
	}
}

// inputFields are shared by every element that collects a customer value
func inputFields(label string) []Field {
	fields := []Field{
		str("label", label),
		str("placeholder", ""),
		str("helpText", ""),
		str("defaultValue", ""),
		boolean("required", false),
		boolean("hideLabel", false),
		boolean("readOnly", false),
		enum("size", "medium", sizeEnum),
	}
	return append(fields, widthFields()...)
}

func withFields(base []Field, extra ...Field) []Field {
	out := make([]Field, 0, len(base)+len(extra))
	out = append(out, base...)
	return append(out, extra...)
}

func textLengthValidation() Field {
	return object("validation",
		optNum("minLength"),
		optNum("maxLength"),
		str("pattern", ""),
	)
}

func selectSchema(t types.ElementType, label string, showImage bool) *Schema {
	return &Schema{
		Type:         t,
		PrimaryField: "label",
		Fields: withFields(inputFields(label),
			options(selectOptionKeys,
				map[string]any{"value": "option-1", "label": "Option 1", "price": 0.0, "image": ""},
				map[string]any{"value": "option-2", "label": "Option 2", "price": 0.0, "image": ""},
			),
			boolean("showPrice", false),
			boolean("showImage", showImage),
			boolean("multiple", false),
			optNum("minSelections"),
			optNum("maxSelections"),
			boolean("searchable", false),
		),
	}
}

func choiceSchema(t types.ElementType, label string) *Schema {
	return &Schema{
		Type:         t,
		PrimaryField: "label",
		Fields: withFields(inputFields(label),
			options(choiceOptionKeys,
				map[string]any{"value": "option-1", "label": "Option 1", "description": "", "price": 0.0, "image": "", "icon": ""},
				map[string]any{"value": "option-2", "label": "Option 2", "description": "", "price": 0.0, "image": "", "icon": ""},
			),
			enum("layout", "vertical", []string{"vertical", "horizontal", "grid"}),
			enum("displayStyle", "default", []string{"default", "button", "card", "swatch"}),
			enum("optionSize", "medium", sizeEnum),
			optNum("minSelections"),
			optNum("maxSelections"),
			boolean("showPrice", false),
			boolean("showImage", false),
			boolean("showDescription", false),
		),
	}
}

func builtinSchemas() []*Schema {
	return []*Schema{
		{
			Type:         types.ElementTypeText,
			PrimaryField: "label",
			Fields:       withFields(inputFields("Text"), textLengthValidation()),
		},
		{
			Type:         types.ElementTypeTextarea,
			PrimaryField: "label",
			Fields:       withFields(inputFields("Message"), num("rows", 4), textLengthValidation()),
		},
		{
			Type:         types.ElementTypeNumber,
			PrimaryField: "label",
			Fields: withFields(inputFields("Number"),
				object("validation", optNum("min"), optNum("max"), num("step", 1)),
			),
		},
		{
			Type:         types.ElementTypeEmail,
			PrimaryField: "label",
			Fields:       withFields(inputFields("Email"), object("validation", str("pattern", ""))),
		},
		{
			Type:         types.ElementTypePhone,
			PrimaryField: "label",
			Fields:       withFields(inputFields("Phone"), object("validation", str("pattern", ""))),
		},
		{
			Type:         types.ElementTypeDatetime,
			PrimaryField: "label",
			Fields: withFields(inputFields("Date"),
				str("minDate", ""),
				str("maxDate", ""),
				str("dateFormat", "YYYY-MM-DD"),
				enum("timeFormat", "24h", []string{"12h", "24h"}),
				boolean("disablePastDates", false),
				boolean("disableFutureDates", false),
				enum("displayMode", "date", []string{"date", "time", "datetime"}),
			),
		},
		{
			Type:         types.ElementTypeFile,
			PrimaryField: "label",
			Fields: withFields(inputFields("Upload file"),
				stringList("allowedExtensions", ".jpg", ".jpeg", ".png", ".pdf"),
				num("maxFileSize", 10),
				num("minFileSize", 0),
				boolean("allowMultiple", false),
				num("maxFiles", 1),
			),
		},
		selectSchema(types.ElementTypeSelect, "Select", false),
		selectSchema(types.ElementTypeDropdown, "Dropdown", false),
		selectSchema(types.ElementTypeImageDropdown, "Choose an image", true),
		choiceSchema(types.ElementTypeRadio, "Choose one"),
		choiceSchema(types.ElementTypeCheckbox, "Choose any"),
		{
			Type:         types.ElementTypeButton,
			PrimaryField: "buttonText",
			Fields: withFields([]Field{
				str("buttonText", "Click me"),
				enum("action", "submit", []string{"submit", "reset", "link", "none"}),
				str("url", ""),
				enum("buttonStyle", "primary", []string{"primary", "secondary", "outline", "plain"}),
				enum("buttonSize", "medium", sizeEnum),
				str("backgroundColor", "#000000"),
				str("textColor", "#FFFFFF"),
				num("borderRadius", 4),
			}, widthFields()...),
		},
		{
			Type:         types.ElementTypeHeading,
			PrimaryField: "text",
			Fields: []Field{
				str("text", "Heading"),
				enum("level", string(types.HeadingH2), levelEnum),
				optNum("fontSize"),
				str("color", "#202223"),
				enum("alignment", "left", alignEnum),
				num("marginTop", 0),
				num("marginBottom", 8),
			},
		},
		{
			Type: types.ElementTypeDivider,
			Fields: []Field{
				enum("style", "solid", []string{"solid", "dashed", "dotted"}),
				str("color", "#E1E3E5"),
				num("thickness", 1),
				num("marginTop", 16),
				num("marginBottom", 16),
			},
		},
		{
			Type: types.ElementTypeSpacing,
			Fields: []Field{
				num("height", 24),
			},
		},
		{
			Type:         types.ElementTypeRedirect,
			PrimaryField: "basic.url",
			Fields: []Field{
				object("basic",
					str("url", "/"),
					str("label", "Learn more"),
					enum("target", "_self", []string{"_self", "_blank"}),
					enum("linkType", "url", []string{"url", "product", "collection", "page"}),
				),
				object("style",
					boolean("isButton", false),
					str("color", "#2C6ECB"),
					object("buttonStyle",
						str("backgroundColor", "#000000"),
						str("textColor", "#FFFFFF"),
						num("borderRadius", 4),
						num("padding", 12),
					),
				),
				object("icon",
					boolean("show", false),
					str("name", "arrow-right"),
					enum("position", "right", []string{"left", "right"}),
					str("svg", ""),
				),
			},
		},
	}
}
