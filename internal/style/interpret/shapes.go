package interpret

import (
	"encoding/json"
	"strings"
)

// Shape names where a prompt was found inside a backend response.
type Shape int

const (
	ShapeUnresolved Shape = iota
	ShapeFlat
	ShapeNestedUnderSchema
	ShapeNestedUnderArbitraryKey
)

func (s Shape) String() string {
	switch s {
	case ShapeFlat:
		return "flat"
	case ShapeNestedUnderSchema:
		return "nested_under_schema"
	case ShapeNestedUnderArbitraryKey:
		return "nested_under_arbitrary_key"
	default:
		return "unresolved"
	}
}

// SchemaContainerKey is the named container some optimisation prompts nest
// their output under.
const SchemaContainerKey = "visual_schema_for_internal_use"

// PromptKeys are the member names that carry an optimised prompt, in priority
// order.
var PromptKeys = []string{"positive_prompt", "optimized_prompt"}

// ParsedBackendResponse is a prompt located in one of the known response shapes.
type ParsedBackendResponse struct {
	Shape        Shape
	ContainerKey string
	Key          string
	Value        json.RawMessage
}

// Text returns the prompt text, collapsing structured values through their
// text, value or content member.
func (p ParsedBackendResponse) Text() string {
	return strings.TrimSpace(textOf(p.Value))
}

type shapeResolver func(doc Document, keys []string) (ParsedBackendResponse, bool)

// resolvers run in priority order; the first match wins.
var resolvers = []shapeResolver{
	resolveFlat,
	resolveNestedUnderSchema,
	resolveNestedUnderArbitraryKey,
}

// ResolvePrompt finds the first non-empty prompt among keys, trying the flat
// shape, then the schema container, then every object member in document
// order. With no keys PromptKeys is used.
func ResolvePrompt(doc Document, keys ...string) (ParsedBackendResponse, bool) {
	if len(keys) == 0 {
		keys = PromptKeys
	}
	for _, resolve := range resolvers {
		if p, ok := resolve(doc, keys); ok {
			return p, true
		}
	}
	return ParsedBackendResponse{}, false
}

func resolveFlat(doc Document, keys []string) (ParsedBackendResponse, bool) {
	return findIn(doc, keys, ShapeFlat, "")
}

func resolveNestedUnderSchema(doc Document, keys []string) (ParsedBackendResponse, bool) {
	inner, ok := doc.Object(SchemaContainerKey)
	if !ok {
		return ParsedBackendResponse{}, false
	}
	return findIn(inner, keys, ShapeNestedUnderSchema, SchemaContainerKey)
}

func resolveNestedUnderArbitraryKey(doc Document, keys []string) (ParsedBackendResponse, bool) {
	for _, f := range doc.Fields {
		inner, ok := asObject(f.Value)
		if !ok {
			continue
		}
		if p, ok := findIn(inner, keys, ShapeNestedUnderArbitraryKey, f.Key); ok {
			return p, true
		}
	}
	return ParsedBackendResponse{}, false
}

func findIn(doc Document, keys []string, shape Shape, container string) (ParsedBackendResponse, bool) {
	for _, key := range keys {
		raw, ok := doc.Lookup(key)
		if !ok {
			continue
		}
		p := ParsedBackendResponse{Shape: shape, ContainerKey: container, Key: key, Value: raw}
		if p.Text() != "" {
			return p, true
		}
	}
	return ParsedBackendResponse{}, false
}

// OptimizedPrompt is the outcome of ExtractOptimizedPrompt.
type OptimizedPrompt struct {
	Prompt string
	Shape  Shape
}

// ExtractOptimizedPrompt pulls the optimised prompt out of raw optimisation
// output. When the output is not JSON, or no prompt member is found, the
// fence-stripped output itself is the prompt.
func ExtractOptimizedPrompt(rawText string) OptimizedPrompt {
	content := StripFence(rawText)
	doc, err := DecodeDocument(content)
	if err != nil {
		return OptimizedPrompt{Prompt: content, Shape: ShapeUnresolved}
	}
	p, ok := ResolvePrompt(doc)
	if !ok {
		return OptimizedPrompt{Prompt: content, Shape: ShapeUnresolved}
	}
	return OptimizedPrompt{Prompt: p.Text(), Shape: p.Shape}
}
