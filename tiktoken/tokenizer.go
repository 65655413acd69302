// Package tiktoken provides a docmap.Tokenizer backed by OpenAI's BPE encodings.
package tiktoken

import (
	"fmt"

	"github.com/fwojciec/docmap"
	"github.com/pkoukk/tiktoken-go"
)

// DefaultModel is the model whose encoding is used when none is given.
const DefaultModel = "gpt-4o"

// fallbackEncoding is used for models tiktoken does not know (GPT-4 family).
const fallbackEncoding = "cl100k_base"

var _ docmap.Tokenizer = (*Tokenizer)(nil)

// Tokenizer encodes text with the BPE encoding of a model.
type Tokenizer struct {
	enc *tiktoken.Tiktoken
}

// NewTokenizer returns a Tokenizer for model, falling back to cl100k_base
// for unknown models. Encodings are downloaded on first use unless cached
// in TIKTOKEN_CACHE_DIR.
func NewTokenizer(model string) (*Tokenizer, error) {
	if model == "" {
		model = DefaultModel
	}
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		enc, err = tiktoken.GetEncoding(fallbackEncoding)
		if err != nil {
			return nil, fmt.Errorf("load encoding for %q: %w", model, err)
		}
	}
	return &Tokenizer{enc: enc}, nil
}

// Encode returns the token ids of text. Special tokens are treated as text.
func (t *Tokenizer) Encode(text string) []int {
	return t.enc.Encode(text, nil, nil)
}

// Decode returns the text of tokens.
func (t *Tokenizer) Decode(tokens []int) string {
	return t.enc.Decode(tokens)
}
