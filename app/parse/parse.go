// Package parse extracts structured JSON records from free-form model output.
// Model responses routinely wrap the payload in prose or markdown fences and
// carry minor syntactic noise; Clean performs a best-effort cleanup pass before
// the actual decode.
package parse

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var (
	trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)
	smartQuotes     = strings.NewReplacer(
		"“", `"`, "”", `"`,
		"‘", "'", "’", "'",
	)
)

// Clean strips surrounding prose and markdown fences, normalizes smart quotes
// and removes trailing commas. The result is the widest brace-delimited slice
// of the input, which is where the payload lives when one is present.
func Clean(raw string) string {
	text := strings.TrimSpace(raw)
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end > start {
		text = text[start : end+1]
	}
	text = smartQuotes.Replace(text)
	return trailingCommaRe.ReplaceAllString(text, "$1")
}

// Into decodes the structured record embedded in raw into v.
func Into(raw string, v any) error {
	cleaned := Clean(raw)
	if err := json.Unmarshal([]byte(cleaned), v); err != nil {
		return fmt.Errorf("decode structured payload: %w", err)
	}
	return nil
}

// Object decodes raw into a generic map and verifies the expected keys are
// present. Callers pass the keys of the record shape they asked the model for.
func Object(raw string, want ...string) (map[string]any, error) {
	var obj map[string]any
	if err := Into(raw, &obj); err != nil {
		return nil, err
	}
	for _, key := range want {
		if _, ok := obj[key]; !ok {
			return nil, fmt.Errorf("structured payload missing key %q", key)
		}
	}
	return obj, nil
}
