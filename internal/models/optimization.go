// internal/models/optimization.go
package models

import "product-image-workers/internal/style/archetype"

// Provenance records which tier of the fallback chain produced a record.
type Provenance string

const (
	ProvenanceModel             Provenance = "model"
	ProvenanceKeywordFallback   Provenance = "keyword_fallback"
	ProvenanceAPIErrorFallback  Provenance = "api_error_fallback"
	ProvenanceExceptionFallback Provenance = "exception_fallback"
)

// IsFallback reports whether the record was produced without model output.
func (p Provenance) IsFallback() bool {
	return p != ProvenanceModel
}

// OptimizationRecord is the canonical result of style resolution.
type OptimizationRecord struct {
	StyleID    archetype.StyleID `json:"styleId"`
	Prompt     string            `json:"prompt"`
	Title      string            `json:"title"`
	Subtitle   string            `json:"subtitle"`
	Badges     []string          `json:"badges"`
	Provenance Provenance        `json:"provenance"`
}

// FallbackRecord builds the record returned when the backend could not be
// used at all: the raw product text becomes the prompt.
func FallbackRecord(productText, marketingCopy string, provenance Provenance) OptimizationRecord {
	return OptimizationRecord{
		StyleID:    archetype.ClassifyProduct(productText, marketingCopy),
		Prompt:     productText,
		Badges:     []string{},
		Provenance: provenance,
	}
}
