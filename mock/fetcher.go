package mock

import (
	"context"

	"github.com/fwojciec/pagelens"
)

var _ pagelens.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of pagelens.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}
