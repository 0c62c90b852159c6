package mock

import "github.com/fwojciec/pagelens"

var _ pagelens.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of pagelens.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*pagelens.Document, error)
}

func (e *Extractor) Extract(html string) (*pagelens.Document, error) {
	return e.ExtractFn(html)
}
