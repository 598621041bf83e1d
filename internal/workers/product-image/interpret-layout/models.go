package interpretlayout

import (
	"context"

	"product-image-workers/internal/models"
)

type Input struct {
	MarketingCopy string `json:"marketingCopy,omitempty"`
	ImageURL      string `json:"imageUrl,omitempty"`
	RawLayout     string `json:"rawLayout,omitempty"`
	Scenario      string `json:"scenario,omitempty"`
}

type Output struct {
	models.LayoutRecord
}

func (o *Output) Variables() map[string]interface{} {
	return map[string]interface{}{
		"layoutTemplate": o.LayoutTemplate,
		"style":          o.Style,
		"visualPath":     o.VisualPath,
		"colorStrategy":  o.ColorStrategy,
		"title":          o.Title,
		"subtitle":       o.Subtitle,
		"badges":         o.Badges,
		"textPositions":  o.TextPositions,
		"provenance":     string(o.Provenance),
	}
}

// LayoutEngine is the pair of engine operations this worker can run.
type LayoutEngine interface {
	AnalyzeLayout(ctx context.Context, imageURL, marketingCopy, scenario string) models.LayoutRecord
	InterpretLayout(ctx context.Context, rawText, marketingCopy string) models.LayoutRecord
}
