package xxhash_test

import (
	"regexp"
	"testing"

	"github.com/fwojciec/docmap/xxhash"
	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	t.Parallel()

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, xxhash.Key("chunk text"), xxhash.Key("chunk text"))
	})

	t.Run("differs for different text", func(t *testing.T) {
		t.Parallel()

		assert.NotEqual(t, xxhash.Key("chunk one"), xxhash.Key("chunk two"))
	})

	t.Run("is 16 hex digits", func(t *testing.T) {
		t.Parallel()

		assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{16}$`), xxhash.Key(""))
		assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{16}$`), xxhash.Key("hello"))
	})
}

func TestSuffix(t *testing.T) {
	t.Parallel()

	t.Run("is at most 8 decimal digits", func(t *testing.T) {
		t.Parallel()

		assert.Regexp(t, regexp.MustCompile(`^[0-9]{1,8}$`), xxhash.Suffix("https://example.com/docs"))
	})

	t.Run("distinguishes URLs", func(t *testing.T) {
		t.Parallel()

		assert.NotEqual(t, xxhash.Suffix("https://a.example.com"), xxhash.Suffix("https://b.example.com"))
	})
}
