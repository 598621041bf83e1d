package mergevisionprompt

import (
	"fmt"
	"strings"

	"product-image-workers/internal/common/validation"
)

const maxReferenceImages = 4

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"productDescription": {
				Type:        "string",
				Description: "What the product is; identified from the reference images when empty",
				MaxLength:   validation.IntPtr(2000),
			},
			"userHint": {
				Type:        "string",
				Description: "Free-form scene hint, e.g. 纯白背景",
				MaxLength:   validation.IntPtr(500),
			},
			"marketingCopy": {
				Type:      "string",
				MaxLength: validation.IntPtr(500),
			},
			"referenceImages": {
				Type:        "array",
				Description: "Reference image URLs or base64 data URLs",
				MaxItems:    validation.IntPtr(maxReferenceImages),
				Items:       &validation.Property{Type: "string", MinLength: validation.IntPtr(1)},
			},
			"enrichBackground": {
				Type:        "boolean",
				Description: "Ask the backend for an extra background scene",
			},
		},
		AdditionalProperties: true,
	}
}

// validateSemantics covers what the schema cannot: a product must be named
// or shown, and every reference must be a usable image URL.
func validateSemantics(input *Input) error {
	if strings.TrimSpace(input.ProductDescription) == "" && len(input.ReferenceImages) == 0 {
		return fmt.Errorf("productDescription or referenceImages is required")
	}
	for i, u := range input.ReferenceImages {
		if !validation.ValidateImageURL(u) {
			return fmt.Errorf("referenceImages[%d] is not an http(s) or data:image URL", i)
		}
	}
	return nil
}
