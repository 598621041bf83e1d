// Package interpret turns raw chat backend output into canonical records.
package interpret

import (
	"strings"
	"unicode"
)

const (
	fence     = "```"
	jsonFence = "```json"
)

// StripFence removes markdown code fencing from model output.
//
//   - no fence: the trimmed input is returned.
//   - "```json" fence: the body up to the next fence. A json-tagged fence wins
//     over an earlier bare one.
//   - bare fence, or a fence tagged with another language: the body of the
//     first pair, with the tag line dropped.
//   - several fenced blocks: only the first pair is used.
//   - an opening fence with no closing fence: everything after the opener.
func StripFence(text string) string {
	start, ok := bodyStart(text)
	if !ok {
		return strings.TrimSpace(text)
	}
	body := text[start:]
	if end := strings.Index(body, fence); end >= 0 {
		body = body[:end]
	}
	return strings.TrimSpace(body)
}

func bodyStart(text string) (int, bool) {
	if i := strings.Index(text, jsonFence); i >= 0 {
		return i + len(jsonFence), true
	}
	i := strings.Index(text, fence)
	if i < 0 {
		return 0, false
	}
	start := i + len(fence)
	if nl := strings.IndexByte(text[start:], '\n'); nl >= 0 && isLanguageTag(text[start:start+nl]) {
		return start + nl + 1, true
	}
	return start, true
}

func isLanguageTag(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !strings.ContainsRune("+-_.", r) {
			return false
		}
	}
	return true
}
