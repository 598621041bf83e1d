package resolvestyle

import (
	"context"

	"product-image-workers/internal/models"
)

type Input struct {
	ProductText   string `json:"productText"`
	MarketingCopy string `json:"marketingCopy,omitempty"`
	Ratio         string `json:"ratio,omitempty"`
}

type Output struct {
	StyleID          string           `json:"styleId"`
	Prompt           string           `json:"prompt"`
	Title            string           `json:"title"`
	Subtitle         string           `json:"subtitle"`
	Badges           []string         `json:"badges"`
	Provenance       string           `json:"provenance"`
	ThemeTag         string           `json:"themeTag"`
	StyleEnhancement string           `json:"styleEnhancement"`
	Size             models.ImageSize `json:"size"`
	RequestID        string           `json:"requestId"`
}

// Variables is the process variable set the job completes with.
func (o *Output) Variables() map[string]interface{} {
	return map[string]interface{}{
		"styleId":          o.StyleID,
		"prompt":           o.Prompt,
		"title":            o.Title,
		"subtitle":         o.Subtitle,
		"badges":           o.Badges,
		"provenance":       o.Provenance,
		"themeTag":         o.ThemeTag,
		"styleEnhancement": o.StyleEnhancement,
		"size":             o.Size,
		"requestId":        o.RequestID,
	}
}

// StyleResolver is the engine operation this worker runs.
type StyleResolver interface {
	ResolveStyle(ctx context.Context, productText, marketingCopy string) models.OptimizationRecord
}
