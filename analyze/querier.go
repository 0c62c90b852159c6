package analyze

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagelens"
)

// Ensure Querier implements pagelens.Querier at compile time.
var _ pagelens.Querier = (*Querier)(nil)

// Querier asks a Completer for a review and retries transient failures.
type Querier struct {
	Completer pagelens.Completer
	Policy    RetryPolicy
	Logger    *slog.Logger
}

// NewQuerier returns a Querier using DefaultRetryPolicy.
func NewQuerier(completer pagelens.Completer, logger *slog.Logger) *Querier {
	return &Querier{
		Completer: completer,
		Policy:    DefaultRetryPolicy(),
		Logger:    logger,
	}
}

// Query returns the model's review of content.
func (q *Querier) Query(ctx context.Context, systemPrompt, content string) (string, error) {
	logger := q.logger()

	if !pagelens.HasSufficientContent(content) {
		logger.Warn("content too short for analysis", "chars", len(content))
		return pagelens.InsufficientContentMessage, nil
	}

	logger.Debug("querying model", "prompt", truncate(systemPrompt, 100), "chars", len(content))

	var text string
	attempts, err := q.Policy.Do(ctx, func(ctx context.Context) error {
		var err error
		text, err = q.Completer.Complete(ctx, systemPrompt, content)
		return err
	}, func(attempt int, err error, delay time.Duration) {
		logger.Error("model call failed",
			"attempt", attempt,
			"prompt", truncate(systemPrompt, 40),
			"retry_in", delay,
			"err", err,
		)
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		logger.Error("model call failed", "attempt", attempts, "err", err)
		return "", pagelens.Errorf(pagelens.ELLM, "model call failed (attempts=%d): %w", attempts, err)
	}

	return text, nil
}

func (q *Querier) logger() *slog.Logger {
	if q.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return q.Logger
}

// truncate shortens s to at most n bytes for logging.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
