package archetype

import "strings"

// ClassificationResult is the outcome of keyword scoring.
type ClassificationResult struct {
	StyleID StyleID         `json:"styleId"`
	Scores  map[StyleID]int `json:"scores"`
}

// Classify scores text against every archetype's keywords. Matching is
// case-insensitive substring containment, one point per keyword. The first
// archetype in declaration order with the highest score wins; when nothing
// matches the default style is returned.
func Classify(text string) ClassificationResult {
	lowered := strings.ToLower(text)

	scores := make(map[StyleID]int, len(catalog))
	best := DefaultStyle
	bestScore := 0
	for _, a := range catalog {
		score := 0
		for _, kw := range a.Keywords {
			if strings.Contains(lowered, strings.ToLower(kw)) {
				score++
			}
		}
		scores[a.ID] = score
		if score > bestScore {
			best = a.ID
			bestScore = score
		}
	}

	return ClassificationResult{StyleID: best, Scores: scores}
}

// ClassifyProduct classifies a product description together with its
// marketing copy.
func ClassifyProduct(product, marketingCopy string) StyleID {
	return Classify(product + " " + marketingCopy).StyleID
}
