package interpret

import (
	"strings"

	"product-image-workers/internal/models"
	"product-image-workers/internal/style/archetype"
	"product-image-workers/internal/style/promptsynth"
)

// Interpret converts raw classification output into an OptimizationRecord.
//
// Unparsable output is not an error: the keyword classifier picks the style,
// the trimmed output (or fallbackPrompt when empty) becomes the prompt, and the
// record is tagged keyword_fallback. Parsed output with a missing or unknown
// style_id gets the classifier's style instead. Parsed output always carries
// the no-text suffix exactly once.
func Interpret(rawText, fallbackPrompt, fallbackCopy string) models.OptimizationRecord {
	doc, err := DecodeDocument(StripFence(rawText))
	if err != nil {
		prompt := strings.TrimSpace(rawText)
		if prompt == "" {
			prompt = fallbackPrompt
		}
		return models.OptimizationRecord{
			StyleID:    archetype.ClassifyProduct(fallbackPrompt, fallbackCopy),
			Prompt:     prompt,
			Badges:     []string{},
			Provenance: models.ProvenanceKeywordFallback,
		}
	}

	var styleID archetype.StyleID
	if s, ok := doc.String("style_id"); ok && archetype.IsValid(s) {
		styleID = archetype.StyleID(s)
	} else {
		styleID = archetype.ClassifyProduct(fallbackPrompt, fallbackCopy)
	}

	prompt := fallbackPrompt
	for _, key := range []string{"optimized_prompt", "prompt"} {
		if s, ok := doc.String(key); ok && strings.TrimSpace(s) != "" {
			prompt = s
			break
		}
	}

	title, _ := doc.String("title")
	subtitle, _ := doc.String("subtitle")

	return models.OptimizationRecord{
		StyleID:    styleID,
		Prompt:     promptsynth.AppendNoTextSuffix(prompt),
		Title:      strings.TrimSpace(title),
		Subtitle:   strings.TrimSpace(subtitle),
		Badges:     doc.Strings("badges"),
		Provenance: models.ProvenanceModel,
	}
}
