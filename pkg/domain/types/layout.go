package types

// WidthMode controls how wide an element renders
type WidthMode string

const (
	WidthFull   WidthMode = "full"
	WidthHalf   WidthMode = "half"
	WidthCustom WidthMode = "custom"
)

// HeadingLevel is the h1..h6 level of a heading element
type HeadingLevel string

const (
	HeadingH1 HeadingLevel = "h1"
	HeadingH2 HeadingLevel = "h2"
	HeadingH3 HeadingLevel = "h3"
	HeadingH4 HeadingLevel = "h4"
	HeadingH5 HeadingLevel = "h5"
	HeadingH6 HeadingLevel = "h6"
)

var headingFontSizes = map[HeadingLevel]float64{
	HeadingH1: 32,
	HeadingH2: 28,
	HeadingH3: 24,
	HeadingH4: 20,
	HeadingH5: 18,
	HeadingH6: 16,
}

// DefaultFontSize returns the font size in px used when no explicit size is configured.
// Unknown levels fall back to the h2 size.
func (l HeadingLevel) DefaultFontSize() float64 {
	if size, ok := headingFontSizes[l]; ok {
		return size
	}
	return headingFontSizes[HeadingH2]
}

// IsValid checks if the heading level is h1..h6
func (l HeadingLevel) IsValid() bool {
	_, ok := headingFontSizes[l]
	return ok
}
