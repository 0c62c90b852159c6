package mock

import (
	"context"

	"github.com/fwojciec/pagelens"
)

var _ pagelens.Completer = (*Completer)(nil)

// Completer is a mock implementation of pagelens.Completer.
type Completer struct {
	CompleteFn func(ctx context.Context, systemPrompt, userContent string) (string, error)
}

func (c *Completer) Complete(ctx context.Context, systemPrompt, userContent string) (string, error) {
	return c.CompleteFn(ctx, systemPrompt, userContent)
}

var _ pagelens.Querier = (*Querier)(nil)

// Querier is a mock implementation of pagelens.Querier.
type Querier struct {
	QueryFn func(ctx context.Context, systemPrompt, content string) (string, error)
}

func (q *Querier) Query(ctx context.Context, systemPrompt, content string) (string, error) {
	return q.QueryFn(ctx, systemPrompt, content)
}
