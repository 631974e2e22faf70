package translate

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var codeFence = regexp.MustCompile("```(?:json)?\\s*")

// parseResults pulls the result array out of a model reply and checks that
// it answers every item of the batch.
func parseResults(provider Provider, text string, items []Item) ([]Result, error) {
	if text == "" {
		return nil, fmt.Errorf("no text in %s response", provider)
	}

	text = cleanJSONResponse(text)
	results, err := extractTranslationResults(text)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to parse JSON response: %w (response: %s)",
			err,
			truncateString(text, 200),
		)
	}

	if len(results) != len(items) {
		return nil, fmt.Errorf("expected %d results, got %d", len(items), len(results))
	}

	want := make(map[int]bool, len(items))
	for _, item := range items {
		want[item.Index] = true
	}
	for _, r := range results {
		if !want[r.Index] {
			return nil, fmt.Errorf("response has unknown index %d", r.Index)
		}
		delete(want, r.Index)
	}
	return results, nil
}

func cleanJSONResponse(s string) string {
	s = strings.TrimSpace(s)
	s = codeFence.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// fixInvalidEscapes doubles the backslash of escapes JSON does not know,
// such as a stray \N, so the text survives decoding literally.
func fixInvalidEscapes(s string) string {
	var out strings.Builder
	out.Grow(len(s))

	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i == len(s)-1 {
			out.WriteByte(s[i])
			continue
		}
		next := s[i+1]
		switch next {
		case '"', '\\', '/', 'b', 'f', 'n', 'r', 't', 'u':
			out.WriteByte('\\')
		default:
			out.WriteString(`\\`)
		}
		out.WriteByte(next)
		i++
	}
	return out.String()
}

// extractTranslationResults finds the first JSON value in text that decodes
// to results, tolerating chatter before and after it.
func extractTranslationResults(text string) ([]Result, error) {
	text = fixInvalidEscapes(text)

	for i := 0; i < len(text); i++ {
		if text[i] != '[' && text[i] != '{' {
			continue
		}
		decoder := json.NewDecoder(strings.NewReader(text[i:]))
		var raw json.RawMessage
		if err := decoder.Decode(&raw); err != nil {
			continue
		}
		if results, ok := tryExtractResults(raw); ok {
			return results, nil
		}
	}
	return nil, fmt.Errorf("no valid translation JSON found in response")
}

var wrapperKeys = []string{"results", "translations", "data", "items"}

func tryExtractResults(raw json.RawMessage) ([]Result, bool) {
	var results []Result
	if err := json.Unmarshal(raw, &results); err == nil && validateResults(results) {
		return results, true
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil, false
	}

	for _, key := range wrapperKeys {
		if field, ok := wrapper[key]; ok {
			var inner []Result
			if err := json.Unmarshal(field, &inner); err == nil && validateResults(inner) {
				return inner, true
			}
		}
	}
	for _, field := range wrapper {
		var inner []Result
		if err := json.Unmarshal(field, &inner); err == nil && validateResults(inner) {
			return inner, true
		}
	}
	return nil, false
}

func validateResults(results []Result) bool {
	for _, r := range results {
		if r.Text != "" {
			return true
		}
	}
	return false
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
