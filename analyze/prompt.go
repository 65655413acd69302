// Package analyze turns documentation sites into module structures: it
// crawls, extracts, chunks, infers with a language model and merges.
package analyze

import "strings"

// promptHeader instructs the model and fixes the response schema.
const promptHeader = `Identify the major modules and their submodules in the documentation content below.
For every module and submodule provide:
- a clear, helpful description
- a confidence score between 0 and 1 reflecting clarity, coverage and relevance

Respond with valid JSON only, using exactly this shape:

[
  {
    "module": "Module Name",
    "Description": "What the module covers",
    "Confidence": 0.92,
    "Submodules": {
      "Submodule Name": {
        "description": "What the submodule covers",
        "confidence": 0.85
      }
    }
  }
]

Documentation Content:
`

// BuildPrompt returns the inference prompt for a chunk of documentation text.
func BuildPrompt(text string) string {
	var sb strings.Builder
	sb.Grow(len(promptHeader) + len(text))
	sb.WriteString(promptHeader)
	sb.WriteString(text)
	return sb.String()
}
