package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagelens"
)

// promptPrefixLen is how much of the system prompt is logged.
const promptPrefixLen = 60

// Ensure LoggingCompleter implements pagelens.Completer.
var _ pagelens.Completer = (*LoggingCompleter)(nil)

// LoggingCompleter wraps a Completer with logging. The page content itself
// is never logged, only its size.
type LoggingCompleter struct {
	next   pagelens.Completer
	logger *slog.Logger
}

// NewLoggingCompleter creates a new LoggingCompleter.
func NewLoggingCompleter(next pagelens.Completer, logger *slog.Logger) *LoggingCompleter {
	return &LoggingCompleter{next: next, logger: logger}
}

// Complete delegates to the wrapped completer and logs the call.
func (c *LoggingCompleter) Complete(ctx context.Context, systemPrompt, userContent string) (text string, err error) {
	defer func(begin time.Time) {
		level := slog.LevelInfo
		if err != nil {
			level = slog.LevelWarn
		}
		c.logger.Log(ctx, level, "completion",
			"prompt", promptPrefix(systemPrompt),
			"input_chars", len(userContent),
			"output_chars", len(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Complete(ctx, systemPrompt, userContent)
}

func promptPrefix(s string) string {
	r := []rune(s)
	if len(r) <= promptPrefixLen {
		return s
	}
	return string(r[:promptPrefixLen]) + "..."
}
