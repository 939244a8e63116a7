package types

// ElementType is the tag of a configurable UI element inside an option set
type ElementType string

const (
	ElementTypeText          ElementType = "text"
	ElementTypeTextarea      ElementType = "textarea"
	ElementTypeNumber        ElementType = "number"
	ElementTypeEmail         ElementType = "email"
	ElementTypePhone         ElementType = "phone"
	ElementTypeDatetime      ElementType = "datetime"
	ElementTypeFile          ElementType = "file"
	ElementTypeSelect        ElementType = "select"
	ElementTypeDropdown      ElementType = "dropdown"
	ElementTypeImageDropdown ElementType = "image-dropdown"
	ElementTypeRadio         ElementType = "radio"
	ElementTypeCheckbox      ElementType = "checkbox"
	ElementTypeButton        ElementType = "button"
	ElementTypeHeading       ElementType = "heading"
	ElementTypeDivider       ElementType = "divider"
	ElementTypeSpacing       ElementType = "spacing"
	ElementTypeRedirect      ElementType = "redirect"
)

// AllElementTypes returns all valid element types in display order
func AllElementTypes() []ElementType {
	return []ElementType{
		ElementTypeText,
		ElementTypeTextarea,
		ElementTypeNumber,
		ElementTypeEmail,
		ElementTypePhone,
		ElementTypeDatetime,
		ElementTypeFile,
		ElementTypeSelect,
		ElementTypeDropdown,
		ElementTypeImageDropdown,
		ElementTypeRadio,
		ElementTypeCheckbox,
		ElementTypeButton,
		ElementTypeHeading,
		ElementTypeDivider,
		ElementTypeSpacing,
		ElementTypeRedirect,
	}
}

// IsValid checks if the element type is one of the known tags
func (t ElementType) IsValid() bool {
	for _, v := range AllElementTypes() {
		if v == t {
			return true
		}
	}
	return false
}

// IsInput reports whether the element collects a free-form value
func (t ElementType) IsInput() bool {
	switch t {
	case ElementTypeText,
		ElementTypeTextarea,
		ElementTypeNumber,
		ElementTypeEmail,
		ElementTypePhone:
		return true
	default:
		return false
	}
}

// IsSelection reports whether the element offers a list of options
func (t ElementType) IsSelection() bool {
	switch t {
	case ElementTypeSelect,
		ElementTypeDropdown,
		ElementTypeImageDropdown,
		ElementTypeRadio,
		ElementTypeCheckbox:
		return true
	default:
		return false
	}
}

// IsChoiceGroup reports whether the element renders its options as a radio or checkbox group
func (t ElementType) IsChoiceGroup() bool {
	return t == ElementTypeRadio || t == ElementTypeCheckbox
}

// IsLayout reports whether the element is purely presentational
func (t ElementType) IsLayout() bool {
	switch t {
	case ElementTypeHeading, ElementTypeDivider, ElementTypeSpacing:
		return true
	default:
		return false
	}
}

// String returns the string representation of the element type
func (t ElementType) String() string {
	return string(t)
}
