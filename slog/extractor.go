package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/pagelens"
)

// Ensure LoggingExtractor implements pagelens.Extractor.
var _ pagelens.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with debug logging.
type LoggingExtractor struct {
	next   pagelens.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next pagelens.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs what was collected.
func (e *LoggingExtractor) Extract(html string) (doc *pagelens.Document, err error) {
	defer func(begin time.Time) {
		attrs := []any{"bytes", len(html), "duration", time.Since(begin)}
		if doc != nil {
			attrs = append(attrs,
				"title", doc.Title,
				"lines", len(doc.Lines),
				"chars", len(doc.Text()),
			)
		}
		attrs = append(attrs, "err", err)
		e.logger.Debug("extract", attrs...)
	}(time.Now())
	return e.next.Extract(html)
}
