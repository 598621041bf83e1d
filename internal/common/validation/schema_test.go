package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchema() JSONSchema {
	return JSONSchema{
		Type:     "object",
		Required: []string{"productText"},
		Properties: map[string]Property{
			"productText": {Type: "string", MinLength: IntPtr(1), MaxLength: IntPtr(20)},
			"ratio":       {Type: "string", Enum: []string{"1:1", "16:9"}},
			"referenceImages": {
				Type:     "array",
				MaxItems: IntPtr(2),
				Items:    &Property{Type: "string"},
			},
		},
	}
}

func TestValidateInput(t *testing.T) {
	tests := []struct {
		name      string
		input     map[string]interface{}
		wantValid bool
		wantField string
		wantCode  string
	}{
		{
			name:      "valid",
			input:     map[string]interface{}{"productText": "保温杯", "ratio": "1:1"},
			wantValid: true,
		},
		{
			name:      "missing required",
			input:     map[string]interface{}{"ratio": "1:1"},
			wantField: "productText",
			wantCode:  "REQUIRED_FIELD_MISSING",
		},
		{
			name:      "extra field",
			input:     map[string]interface{}{"productText": "x", "color": "red"},
			wantField: "color",
			wantCode:  "EXTRA_FIELD",
		},
		{
			name:      "wrong type",
			input:     map[string]interface{}{"productText": 42.0},
			wantField: "productText",
			wantCode:  "INVALID_TYPE",
		},
		{
			name:      "enum",
			input:     map[string]interface{}{"productText": "x", "ratio": "2:1"},
			wantField: "ratio",
			wantCode:  "INVALID_ENUM_VALUE",
		},
		{
			name:      "empty string",
			input:     map[string]interface{}{"productText": ""},
			wantField: "productText",
			wantCode:  "MIN_LENGTH_VIOLATION",
		},
		{
			name: "too many items",
			input: map[string]interface{}{
				"productText":     "x",
				"referenceImages": []interface{}{"a", "b", "c"},
			},
			wantField: "referenceImages",
			wantCode:  "MAX_ITEMS_VIOLATION",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateInput(tt.input, testSchema())
			assert.Equal(t, tt.wantValid, result.Valid)
			if tt.wantValid {
				assert.Empty(t, result.Errors)
				return
			}
			require.NotEmpty(t, result.Errors)
			assert.True(t, result.HasErrors(tt.wantField), "errors: %v", result.GetErrorMessages())
			assert.Equal(t, tt.wantCode, result.GetErrorsForField(tt.wantField)[0].Code)
		})
	}
}

func TestValidateInputNil(t *testing.T) {
	result := ValidateInput(nil, testSchema())
	assert.False(t, result.Valid)
	assert.True(t, result.HasErrors("productText"))
}

func TestValidateImageURL(t *testing.T) {
	assert.True(t, ValidateImageURL("https://cdn.example.com/a.png"))
	assert.True(t, ValidateImageURL("data:image/png;base64,iVBORw0KGgo="))
	assert.False(t, ValidateImageURL("ftp://example.com/a.png"))
	assert.False(t, ValidateImageURL("not a url"))
}
