package optimizeprompt

import (
	"fmt"

	"product-image-workers/internal/common/validation"
)

const maxReferenceImages = 4

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"prompt"},
		Properties: map[string]validation.Property{
			"prompt": {
				Type:        "string",
				Description: "User request to rewrite into a generation prompt",
				MinLength:   validation.IntPtr(1),
				MaxLength:   validation.IntPtr(4000),
			},
			"referenceImages": {
				Type:     "array",
				MaxItems: validation.IntPtr(maxReferenceImages),
				Items:    &validation.Property{Type: "string", MinLength: validation.IntPtr(1)},
			},
			"scenario": {
				Type:      "string",
				MaxLength: validation.IntPtr(100),
			},
		},
		AdditionalProperties: true,
	}
}

func validateImages(images []string) error {
	for i, u := range images {
		if !validation.ValidateImageURL(u) {
			return fmt.Errorf("referenceImages[%d] is not an http(s) or data:image URL", i)
		}
	}
	return nil
}
