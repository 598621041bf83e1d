package interpretlayout

import (
	"fmt"
	"strings"

	"product-image-workers/internal/common/validation"
	"product-image-workers/internal/models"
)

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"marketingCopy": {
				Type:        "string",
				Description: "Copy the layout title should carry",
				MaxLength:   validation.IntPtr(500),
			},
			"imageUrl": {
				Type:        "string",
				Description: "Rendered product image to plan the layout over",
			},
			"rawLayout": {
				Type:        "string",
				Description: "Layout planning output obtained elsewhere",
				MaxLength:   validation.IntPtr(20000),
			},
			"scenario": {
				Type:        "string",
				Description: "Prompt scenario overriding the layout instruction",
				MaxLength:   validation.IntPtr(100),
			},
		},
		AdditionalProperties: true,
	}
}

func GetOutputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"layoutTemplate", "style", "visualPath", "colorStrategy", "provenance"},
		Properties: map[string]validation.Property{
			"layoutTemplate": {Type: "string", Enum: models.LayoutTemplates},
			"style":          {Type: "string", Enum: models.TextStyles},
			"visualPath":     {Type: "string", Enum: models.VisualPaths},
			"colorStrategy": {
				Type:     "object",
				Required: []string{"primary", "accent", "emotion"},
				Properties: map[string]validation.Property{
					"primary": {Type: "string", Pattern: hexPattern()},
					"accent":  {Type: "string", Pattern: hexPattern()},
					"emotion": {Type: "string"},
				},
			},
			"title":         {Type: "string"},
			"subtitle":      {Type: "string"},
			"badges":        {Type: "array", Items: &validation.Property{Type: "string"}},
			"textPositions": {Type: "array"},
			"provenance":    {Type: "string", Enum: []string{string(models.LayoutFromModel), string(models.LayoutPlaceholder)}},
		},
		AdditionalProperties: false,
	}
}

func hexPattern() *string {
	p := "^#[0-9A-F]{6}$"
	return &p
}

// validateSemantics requires exactly one layout source.
func validateSemantics(input *Input) error {
	hasImage := strings.TrimSpace(input.ImageURL) != ""
	hasRaw := strings.TrimSpace(input.RawLayout) != ""
	switch {
	case hasImage && hasRaw:
		return fmt.Errorf("imageUrl and rawLayout are mutually exclusive")
	case !hasImage && !hasRaw:
		return fmt.Errorf("imageUrl or rawLayout is required")
	case hasImage && !validation.ValidateImageURL(input.ImageURL):
		return fmt.Errorf("imageUrl is not an http(s) or data:image URL")
	}
	return nil
}
