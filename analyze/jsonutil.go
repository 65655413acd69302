package analyze

import (
	"regexp"
	"strings"
)

var (
	// fencePattern matches a reply wrapped in a markdown code block.
	fencePattern = regexp.MustCompile("(?s)^```[a-zA-Z]*\\s*(.*?)\\s*```$")
	// arrayPattern matches the outermost JSON array in surrounding prose.
	arrayPattern = regexp.MustCompile(`(?s)\[.*\]`)
	// objectPattern matches the outermost JSON object in surrounding prose.
	objectPattern = regexp.MustCompile(`(?s)\{.*\}`)
	// trailingCommaPattern matches trailing commas before ] or }.
	trailingCommaPattern = regexp.MustCompile(`,\s*([}\]])`)
)

// StripFences removes a surrounding markdown code block, if any.
func StripFences(content string) string {
	s := strings.TrimSpace(content)
	if m := fencePattern.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return s
}

// CleanJSON strips code fences and removes trailing commas, which models
// commonly emit.
func CleanJSON(content string) string {
	return trailingCommaPattern.ReplaceAllString(StripFences(content), "$1")
}

// extractJSON returns the JSON value embedded in prose, preferring an array.
func extractJSON(content string) string {
	if m := arrayPattern.FindString(content); m != "" {
		return trailingCommaPattern.ReplaceAllString(m, "$1")
	}
	if m := objectPattern.FindString(content); m != "" {
		return trailingCommaPattern.ReplaceAllString(m, "$1")
	}
	return ""
}
