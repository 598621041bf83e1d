package mergevisionprompt

import (
	"context"

	"product-image-workers/internal/models"
)

type Input struct {
	ProductDescription string   `json:"productDescription,omitempty"`
	UserHint           string   `json:"userHint,omitempty"`
	MarketingCopy      string   `json:"marketingCopy,omitempty"`
	ReferenceImages    []string `json:"referenceImages,omitempty"`
	EnrichBackground   bool     `json:"enrichBackground,omitempty"`
}

type Output struct {
	StyleID            string   `json:"styleId"`
	Prompt             string   `json:"prompt"`
	Title              string   `json:"title"`
	Subtitle           string   `json:"subtitle"`
	Badges             []string `json:"badges"`
	Provenance         string   `json:"provenance"`
	ThemeTag           string   `json:"themeTag"`
	ProductDescription string   `json:"productDescription"`
	BackgroundEnriched bool     `json:"backgroundEnriched"`
	RequestID          string   `json:"requestId"`
}

func (o *Output) Variables() map[string]interface{} {
	return map[string]interface{}{
		"styleId":            o.StyleID,
		"prompt":             o.Prompt,
		"title":              o.Title,
		"subtitle":           o.Subtitle,
		"badges":             o.Badges,
		"provenance":         o.Provenance,
		"themeTag":           o.ThemeTag,
		"productDescription": o.ProductDescription,
		"backgroundEnriched": o.BackgroundEnriched,
		"requestId":          o.RequestID,
	}
}

// VisionEngine is the set of engine operations the vision-first flow uses.
type VisionEngine interface {
	IdentifyProduct(ctx context.Context, imageURLs []string) string
	DesignBackground(ctx context.Context, productDescription string) string
	MergeVisionFirstPrompt(ctx context.Context, productDescription, userHint, enrichment, marketingCopy string) models.OptimizationRecord
}
