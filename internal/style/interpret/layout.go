package interpret

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"product-image-workers/internal/models"
	"product-image-workers/internal/style/promptsynth"

	"github.com/xeipuuv/gojsonschema"
)

// LayoutSchemaKey is the container the layout instruction asks the model to
// nest its answer under.
const LayoutSchemaKey = "Taobao_Master_Layout_System"

var latinLetter = regexp.MustCompile(`[a-zA-Z]`)

// ContainsLatin reports whether text has any ASCII Latin letter.
func ContainsLatin(text string) bool {
	return latinLetter.MatchString(text)
}

// Translator renders text in the target script. Implementations are best
// effort and return the input unchanged when they cannot translate.
type Translator interface {
	Translate(ctx context.Context, text string) string
}

// TranslatorFunc adapts a function to Translator.
type TranslatorFunc func(ctx context.Context, text string) string

func (f TranslatorFunc) Translate(ctx context.Context, text string) string {
	return f(ctx, text)
}

type identityTranslator struct{}

func (identityTranslator) Translate(_ context.Context, text string) string { return text }

// LayoutInterpreter parses layout planning output from the vision backend.
type LayoutInterpreter struct {
	translator Translator
}

// NewLayoutInterpreter returns an interpreter that sends Latin text through
// translator. A nil translator leaves text untouched.
func NewLayoutInterpreter(translator Translator) *LayoutInterpreter {
	if translator == nil {
		translator = identityTranslator{}
	}
	return &LayoutInterpreter{translator: translator}
}

// Interpret builds a LayoutRecord from raw layout output. Output nested under
// LayoutSchemaKey is unwrapped, anything else is read as flat. Unknown
// template, style, path or colour values are replaced by defaults, a blank
// title falls back to the marketing copy, and visible text containing Latin
// letters is translated. Output that cannot be parsed yields EmptyLayout.
func (li *LayoutInterpreter) Interpret(ctx context.Context, rawText, marketingCopy string) models.LayoutRecord {
	doc, err := DecodeDocument(StripFence(rawText))
	if err != nil {
		return models.EmptyLayout()
	}

	container := doc
	if raw, ok := doc.Lookup(LayoutSchemaKey); ok {
		inner, ok := asObject(raw)
		if !ok {
			return models.EmptyLayout()
		}
		container = inner
	}

	fx, _ := container.Object("background_fx")
	colors, ok := fx.Object("color_strategy")
	if !ok {
		colors, _ = container.Object("color_strategy")
	}

	rec := models.LayoutRecord{
		LayoutTemplate: firstString(container, "layout_template", "selected_layout"),
		Style:          firstNonEmpty(stringOf(fx, "style"), stringOf(container, "style")),
		VisualPath:     firstNonEmpty(stringOf(fx, "visual_path"), stringOf(container, "visual_path")),
		ColorStrategy: models.ColorStrategy{
			Primary: stringOf(colors, "primary"),
			Accent:  stringOf(colors, "accent"),
			Emotion: stringOf(colors, "emotion"),
		},
		Badges:        []string{},
		TextPositions: []models.TextPosition{},
		Provenance:    models.LayoutFromModel,
	}
	sanitizeLayout(&rec)

	title := stringOf(container, "title")
	if title == "" {
		title = promptsynth.LayoutCopy(marketingCopy)
	}
	rec.Title = li.toTargetScript(ctx, title)
	rec.Subtitle = li.toTargetScript(ctx, stringOf(container, "subtitle"))
	for _, badge := range container.Strings("badges") {
		if b := li.toTargetScript(ctx, badge); b != "" {
			rec.Badges = append(rec.Badges, b)
		}
	}
	return rec
}

func (li *LayoutInterpreter) toTargetScript(ctx context.Context, text string) string {
	if text == "" || !ContainsLatin(text) {
		return text
	}
	return strings.TrimSpace(li.translator.Translate(ctx, text))
}

func stringOf(doc Document, key string) string {
	s, _ := doc.String(key)
	return strings.TrimSpace(s)
}

func firstString(doc Document, keys ...string) string {
	for _, k := range keys {
		if s := stringOf(doc, k); s != "" {
			return s
		}
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

var layoutSchema = mustCompileLayoutSchema()

func mustCompileLayoutSchema() *gojsonschema.Schema {
	hex := map[string]interface{}{"type": "string", "pattern": "^#[0-9A-Fa-f]{6}$"}
	def := map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"layout_template": map[string]interface{}{"type": "string", "enum": models.LayoutTemplates},
			"style":           map[string]interface{}{"type": "string", "enum": models.TextStyles},
			"visual_path":     map[string]interface{}{"type": "string", "enum": models.VisualPaths},
			"color_strategy": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"primary": hex,
					"accent":  hex,
					"emotion": map[string]interface{}{"type": "string", "minLength": 1},
				},
			},
		},
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(def))
	if err != nil {
		panic(fmt.Sprintf("interpret: layout schema: %v", err))
	}
	return schema
}

var layoutFieldDefaults = map[string]func(*models.LayoutRecord){
	"layout_template":        func(r *models.LayoutRecord) { r.LayoutTemplate = models.DefaultLayoutTemplate },
	"style":                  func(r *models.LayoutRecord) { r.Style = models.DefaultTextStyle },
	"visual_path":            func(r *models.LayoutRecord) { r.VisualPath = models.DefaultVisualPath },
	"color_strategy.primary": func(r *models.LayoutRecord) { r.ColorStrategy.Primary = models.DefaultPrimaryColor },
	"color_strategy.accent":  func(r *models.LayoutRecord) { r.ColorStrategy.Accent = models.DefaultAccentColor },
	"color_strategy.emotion": func(r *models.LayoutRecord) { r.ColorStrategy.Emotion = models.DefaultEmotion },
}

// sanitizeLayout replaces every field that fails the layout schema with its
// default.
func sanitizeLayout(rec *models.LayoutRecord) {
	candidate := map[string]interface{}{
		"layout_template": rec.LayoutTemplate,
		"style":           rec.Style,
		"visual_path":     rec.VisualPath,
		"color_strategy": map[string]interface{}{
			"primary": rec.ColorStrategy.Primary,
			"accent":  rec.ColorStrategy.Accent,
			"emotion": rec.ColorStrategy.Emotion,
		},
	}

	result, err := layoutSchema.Validate(gojsonschema.NewGoLoader(candidate))
	if err != nil {
		for _, reset := range layoutFieldDefaults {
			reset(rec)
		}
		return
	}
	for _, e := range result.Errors() {
		if reset, ok := layoutFieldDefaults[e.Field()]; ok {
			reset(rec)
		}
	}
	rec.ColorStrategy.Primary = strings.ToUpper(rec.ColorStrategy.Primary)
	rec.ColorStrategy.Accent = strings.ToUpper(rec.ColorStrategy.Accent)
}
