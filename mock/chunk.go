package mock

import "github.com/fwojciec/docmap"

var _ docmap.Tokenizer = (*Tokenizer)(nil)

// Tokenizer is a mock implementation of docmap.Tokenizer.
type Tokenizer struct {
	EncodeFn func(text string) []int
	DecodeFn func(tokens []int) string
}

func (t *Tokenizer) Encode(text string) []int {
	return t.EncodeFn(text)
}

func (t *Tokenizer) Decode(tokens []int) string {
	return t.DecodeFn(tokens)
}
