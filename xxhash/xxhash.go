// Package xxhash derives content keys from text using xxHash.
// Keys identify identical text for caching; they are not a security measure.
package xxhash

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Key returns the 64-bit xxHash of text as 16 lowercase hex digits.
func Key(text string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(text))
}

// Suffix returns a short numeric tag for text: the first 8 decimal digits
// of its hash. Used to keep per-site output file names distinct.
func Suffix(text string) string {
	s := strconv.FormatUint(xxhash.Sum64String(text), 10)
	if len(s) > 8 {
		s = s[:8]
	}
	return s
}
