// Package gemini provides a docmap.Completer backed by Google Gemini.
package gemini

import (
	"context"

	"github.com/fwojciec/docmap"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// temperature keeps module names stable across chunks.
const temperature = float32(0.3)

var _ docmap.Completer = (*Completer)(nil)

// Completer implements docmap.Completer using Google Gemini.
type Completer struct {
	client *genai.Client
	model  string
}

// NewCompleter creates a new Completer. An empty model selects DefaultModel.
func NewCompleter(client *genai.Client, model string) *Completer {
	if model == "" {
		model = DefaultModel
	}
	return &Completer{client: client, model: model}
}

// Complete sends prompt as a single user turn and returns the reply text.
func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", docmap.Errorf(docmap.EINVALID, "prompt required")
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)},
		BuildConfig(),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", docmap.Errorf(docmap.EINTERNAL, "gemini returned nil result")
	}

	text := result.Text()
	if text == "" {
		return "", docmap.Errorf(docmap.EINTERNAL, "gemini returned an empty response")
	}
	return text, nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
// Replies are requested as JSON so they parse without fences.
func BuildConfig() *genai.GenerateContentConfig {
	temp := temperature
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a helpful assistant that extracts structured information from documentation.",
			}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
	}
}
