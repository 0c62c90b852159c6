package mock

import (
	"context"

	"github.com/fwojciec/pagelens"
)

var _ pagelens.Analyzer = (*Analyzer)(nil)

// Analyzer is a mock implementation of pagelens.Analyzer.
type Analyzer struct {
	AnalyzeFn func(ctx context.Context, req *pagelens.Request) (*pagelens.Result, error)
}

func (a *Analyzer) Analyze(ctx context.Context, req *pagelens.Request) (*pagelens.Result, error) {
	return a.AnalyzeFn(ctx, req)
}
