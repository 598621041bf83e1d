package interpret

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	// ErrNotObject is returned when the decoded JSON is not an object.
	ErrNotObject = errors.New("json value is not an object")

	// ErrTrailingData is returned when text follows the top-level object.
	ErrTrailingData = errors.New("unexpected data after json object")
)

// Field is one top-level member of a Document.
type Field struct {
	Key   string
	Value json.RawMessage
}

// Document is a decoded JSON object that remembers member order, so scans over
// its members are deterministic. Duplicate keys keep their first position and
// their last value.
type Document struct {
	Fields []Field
}

// DecodeDocument parses text as a single JSON object.
func DecodeDocument(text string) (Document, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return Document{}, fmt.Errorf("decode document: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return Document{}, ErrNotObject
	}

	var doc Document
	index := map[string]int{}
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return Document{}, fmt.Errorf("decode document key: %w", err)
		}
		key, _ := kt.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return Document{}, fmt.Errorf("decode document member %q: %w", key, err)
		}
		if i, dup := index[key]; dup {
			doc.Fields[i].Value = raw
			continue
		}
		index[key] = len(doc.Fields)
		doc.Fields = append(doc.Fields, Field{Key: key, Value: raw})
	}

	if _, err := dec.Token(); err != nil {
		return Document{}, fmt.Errorf("decode document end: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return Document{}, ErrTrailingData
	}
	return doc, nil
}

// Lookup returns the raw value stored under key.
func (d Document) Lookup(key string) (json.RawMessage, bool) {
	for _, f := range d.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Has reports whether key is a member.
func (d Document) Has(key string) bool {
	_, ok := d.Lookup(key)
	return ok
}

// Object returns the member under key when it is itself an object.
func (d Document) Object(key string) (Document, bool) {
	raw, ok := d.Lookup(key)
	if !ok {
		return Document{}, false
	}
	return asObject(raw)
}

// String returns the member under key as text. See textOf.
func (d Document) String(key string) (string, bool) {
	raw, ok := d.Lookup(key)
	if !ok {
		return "", false
	}
	return textOf(raw), true
}

// Strings returns the member under key as a list of non-empty strings. A
// single string becomes a one-element list.
func (d Document) Strings(key string) []string {
	out := []string{}
	raw, ok := d.Lookup(key)
	if !ok {
		return out
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		if s := strings.TrimSpace(textOf(raw)); s != "" && isJSONString(raw) {
			out = append(out, s)
		}
		return out
	}
	for _, item := range items {
		if s := strings.TrimSpace(textOf(item)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func asObject(raw json.RawMessage) (Document, bool) {
	if !isJSONObject(raw) {
		return Document{}, false
	}
	doc, err := DecodeDocument(string(raw))
	if err != nil {
		return Document{}, false
	}
	return doc, true
}

// textOf renders a JSON value as text. Strings are unquoted, null is empty,
// objects yield their text, value or content member (first present) and are
// otherwise compacted, anything else is its compact JSON form.
func textOf(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	switch {
	case len(trimmed) == 0, bytes.Equal(trimmed, []byte("null")):
		return ""
	case isJSONString(trimmed):
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s
		}
	case isJSONObject(trimmed):
		if doc, ok := asObject(trimmed); ok {
			for _, key := range textBearingKeys {
				if v, ok := doc.Lookup(key); ok {
					return textOf(v)
				}
			}
		}
	}
	return compact(trimmed)
}

var textBearingKeys = []string{"text", "value", "content"}

func compact(raw []byte) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

func isJSONString(raw []byte) bool {
	t := bytes.TrimSpace(raw)
	return len(t) > 0 && t[0] == '"'
}

func isJSONObject(raw []byte) bool {
	t := bytes.TrimSpace(raw)
	return len(t) > 0 && t[0] == '{'
}
