// internal/models/layout.go
package models

const (
	LayoutClassicLeft  = "layout-classic-left"
	LayoutModernBottom = "layout-modern-bottom"
	LayoutCleanRight   = "layout-clean-right"

	TextStyleA = "text-style-a"
	TextStyleB = "text-style-b"
	TextStyleC = "text-style-c"

	VisualPathF = "F-path"
	VisualPathZ = "Z-path"

	DefaultLayoutTemplate = LayoutClassicLeft
	DefaultTextStyle      = TextStyleA
	DefaultVisualPath     = VisualPathF

	DefaultPrimaryColor = "#FFFFFF"
	DefaultAccentColor  = "#E4393C"
	DefaultEmotion      = "促销"
)

// LayoutTemplates lists the accepted template ids.
var LayoutTemplates = []string{LayoutClassicLeft, LayoutModernBottom, LayoutCleanRight}

// TextStyles lists the accepted text rendering styles.
var TextStyles = []string{TextStyleA, TextStyleB, TextStyleC}

// VisualPaths lists the accepted reading paths.
var VisualPaths = []string{VisualPathF, VisualPathZ}

// LayoutProvenance tells a model-derived layout from the empty placeholder.
type LayoutProvenance string

const (
	LayoutFromModel   LayoutProvenance = "model"
	LayoutPlaceholder LayoutProvenance = "placeholder"
)

// ColorStrategy is the colour pairing proposed for overlay text.
type ColorStrategy struct {
	Primary string `json:"primary"`
	Accent  string `json:"accent"`
	Emotion string `json:"emotion"`
}

// TextPosition is a placement box for a piece of overlay text. The vision
// backend does not return boxes today; the field is kept for the compositor.
type TextPosition struct {
	Field string  `json:"field"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// LayoutRecord is the canonical result of layout analysis.
type LayoutRecord struct {
	LayoutTemplate string           `json:"layoutTemplate"`
	Style          string           `json:"style"`
	VisualPath     string           `json:"visualPath"`
	ColorStrategy  ColorStrategy    `json:"colorStrategy"`
	Title          string           `json:"title"`
	Subtitle       string           `json:"subtitle"`
	Badges         []string         `json:"badges"`
	TextPositions  []TextPosition   `json:"textPositions"`
	Provenance     LayoutProvenance `json:"provenance"`
}

// EmptyLayout is the last-resort layout: defaults, no text, no positions.
func EmptyLayout() LayoutRecord {
	return LayoutRecord{
		LayoutTemplate: DefaultLayoutTemplate,
		Style:          DefaultTextStyle,
		VisualPath:     DefaultVisualPath,
		ColorStrategy: ColorStrategy{
			Primary: DefaultPrimaryColor,
			Accent:  DefaultAccentColor,
			Emotion: DefaultEmotion,
		},
		Badges:        []string{},
		TextPositions: []TextPosition{},
		Provenance:    LayoutPlaceholder,
	}
}
