package mock

import "github.com/fwojciec/docmap"

var _ docmap.SectionExtractor = (*SectionExtractor)(nil)

// SectionExtractor is a mock implementation of docmap.SectionExtractor.
type SectionExtractor struct {
	ExtractFn func(html string) ([]docmap.Section, error)
}

func (e *SectionExtractor) Extract(html string) ([]docmap.Section, error) {
	return e.ExtractFn(html)
}
