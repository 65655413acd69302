// Package openai provides a docmap.Completer backed by the OpenAI chat API.
package openai

import (
	"context"

	"github.com/fwojciec/docmap"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// DefaultModel is the chat model used when none is configured.
const DefaultModel = "gpt-4o"

// temperature keeps module names stable across chunks.
const temperature = 0.3

// systemPrompt frames the model as an extractor rather than a chat partner.
const systemPrompt = "You are a helpful assistant that extracts structured information from documentation."

var _ docmap.Completer = (*Completer)(nil)

// Completer implements docmap.Completer with chat completions.
type Completer struct {
	client openai.Client
	model  string
}

// NewCompleter creates a Completer authenticated with apiKey.
// Extra request options (such as option.WithBaseURL) are applied after the key.
// An empty model selects DefaultModel.
func NewCompleter(apiKey, model string, opts ...option.RequestOption) *Completer {
	if model == "" {
		model = DefaultModel
	}
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &Completer{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

// Complete sends prompt with a fixed system message and returns the first choice.
func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", docmap.Errorf(docmap.EINVALID, "prompt required")
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(temperature),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", docmap.Errorf(docmap.EINTERNAL, "openai returned an empty response")
	}

	return resp.Choices[0].Message.Content, nil
}
