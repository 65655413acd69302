package docmap

// Tokenizer converts text to model tokens and back.
// Decode(Encode(s)) should reproduce s; tokenizers may lose whitespace
// when a slice boundary splits a merged token.
type Tokenizer interface {
	Encode(text string) []int
	Decode(tokens []int) string
}

// ChunkText splits text into pieces of at most maxTokens tokens each.
// The pieces partition the token sequence contiguously, in order, with no
// overlap; only the last piece may be shorter. Empty text yields no chunks.
func ChunkText(tok Tokenizer, text string, maxTokens int) ([]string, error) {
	if maxTokens <= 0 {
		return nil, Errorf(EINVALID, "max tokens must be positive, got %d", maxTokens)
	}
	if text == "" {
		return nil, nil
	}

	tokens := tok.Encode(text)
	chunks := make([]string, 0, (len(tokens)+maxTokens-1)/maxTokens)
	for start := 0; start < len(tokens); start += maxTokens {
		end := min(start+maxTokens, len(tokens))
		chunks = append(chunks, tok.Decode(tokens[start:end]))
	}
	return chunks, nil
}
