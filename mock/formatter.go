package mock

import "github.com/fwojciec/pagelens"

var _ pagelens.Formatter = (*Formatter)(nil)

// Formatter is a mock implementation of pagelens.Formatter.
type Formatter struct {
	FormatFn func(text string, mode pagelens.Mode) ([]pagelens.Block, error)
}

func (f *Formatter) Format(text string, mode pagelens.Mode) ([]pagelens.Block, error) {
	return f.FormatFn(text, mode)
}
