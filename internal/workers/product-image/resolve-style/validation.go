package resolvestyle

import "product-image-workers/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"productText"},
		Properties: map[string]validation.Property{
			"productText": {
				Type:        "string",
				Description: "Product description to classify",
				MinLength:   validation.IntPtr(1),
				MaxLength:   validation.IntPtr(2000),
			},
			"marketingCopy": {
				Type:        "string",
				Description: "Marketing copy to keep verbatim as title",
				MaxLength:   validation.IntPtr(500),
			},
			"ratio": {
				Type:        "string",
				Description: "Aspect ratio label, e.g. 1:1 or 16:9",
				MaxLength:   validation.IntPtr(10),
			},
		},
		// the job carries every process variable, not only ours
		AdditionalProperties: true,
	}
}

func GetOutputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"styleId", "prompt", "provenance"},
		Properties: map[string]validation.Property{
			"styleId":          {Type: "string", Description: "Resolved archetype id"},
			"prompt":           {Type: "string", Description: "Generation prompt"},
			"title":            {Type: "string"},
			"subtitle":         {Type: "string"},
			"badges":           {Type: "array", Items: &validation.Property{Type: "string"}},
			"provenance":       {Type: "string", Enum: []string{"model", "keyword_fallback", "api_error_fallback", "exception_fallback"}},
			"themeTag":         {Type: "string"},
			"styleEnhancement": {Type: "string"},
			"size":             {Type: "object"},
			"requestId":        {Type: "string"},
		},
		AdditionalProperties: false,
	}
}
