package optimizeprompt

import (
	"context"

	"product-image-workers/internal/style/engine"
)

type Input struct {
	Prompt          string   `json:"prompt"`
	ReferenceImages []string `json:"referenceImages,omitempty"`
	Scenario        string   `json:"scenario,omitempty"`
}

type Output struct {
	OptimizedPrompt string `json:"optimizedPrompt"`
	Shape           string `json:"shape"`
	Provenance      string `json:"provenance"`
}

func (o *Output) Variables() map[string]interface{} {
	return map[string]interface{}{
		"optimizedPrompt": o.OptimizedPrompt,
		"shape":           o.Shape,
		"provenance":      o.Provenance,
	}
}

type PromptOptimizer interface {
	OptimizePrompt(ctx context.Context, prompt string, imageURLs []string, scenario string) engine.OptimizeResult
}
