// Package analyze runs the page review pipeline: fetch, extract, query the
// model once per selected mode and format each response for display.
package analyze

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/fwojciec/pagelens"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Ensure Analyzer implements pagelens.Analyzer at compile time.
var _ pagelens.Analyzer = (*Analyzer)(nil)

// Analyzer orchestrates a single page review.
type Analyzer struct {
	Fetcher   pagelens.Fetcher
	Extractor pagelens.Extractor
	Querier   pagelens.Querier
	Formatter pagelens.Formatter

	// TokenCounter is optional. When set, the size of the extracted text
	// is logged in tokens.
	TokenCounter pagelens.TokenCounter

	Logger *slog.Logger

	// Concurrency caps how many modes are queried at once. Zero means 2.
	Concurrency int
}

// Analyze implements pagelens.Analyzer.
func (a *Analyzer) Analyze(ctx context.Context, req *pagelens.Request) (*pagelens.Result, error) {
	if req == nil {
		return nil, pagelens.Errorf(pagelens.EINVALID, "request required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	res := &pagelens.Result{
		ID:   uuid.New().String(),
		URL:  req.URL,
		Mode: req.Mode,
	}
	logger := a.logger().With("request_id", res.ID, "url", req.URL, "mode", string(req.Mode))
	start := time.Now()

	html, err := a.Fetcher.Fetch(ctx, req.URL)
	if err != nil {
		logger.Error("fetch failed", "err", err)
		return nil, fetchError(ctx, err)
	}

	doc, err := a.Extractor.Extract(html)
	if err != nil {
		logger.Error("extract failed", "err", err)
		if pagelens.ErrorCode(err) == pagelens.EINTERNAL {
			return nil, pagelens.Errorf(pagelens.ENOCONTENT, "extract content: %w", err)
		}
		return nil, err
	}
	if doc.IsEmpty() {
		logger.Warn("no content extracted")
		return nil, pagelens.Errorf(pagelens.ENOCONTENT, "no content extracted from %s", req.URL)
	}
	res.Document = doc

	text := doc.Text()
	logger.Info("content extracted", "bytes", len(html), "chars", len(text), "lines", len(doc.Lines))
	a.countTokens(ctx, logger, text)

	modes := req.Mode.Modes()
	analyses := make([]*pagelens.Analysis, len(modes))

	concurrency := a.Concurrency
	if concurrency <= 0 {
		concurrency = 2
	}

	// Each mode reports its own failure; the group never returns an error,
	// so one mode failing does not cancel the other.
	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, mode := range modes {
		g.Go(func() error {
			analyses[i] = a.review(ctx, logger, mode, text)
			return nil
		})
	}
	_ = g.Wait()

	for _, an := range analyses {
		switch an.Mode {
		case pagelens.ModeUI:
			res.UI = an
		case pagelens.ModeUX:
			res.UX = an
		}
	}

	logger.Info("analysis finished", "duration", time.Since(start), "err", res.Err())
	return res, nil
}

// review queries the model for a single mode and formats its answer.
func (a *Analyzer) review(ctx context.Context, logger *slog.Logger, mode pagelens.Mode, text string) *pagelens.Analysis {
	an := &pagelens.Analysis{Mode: mode}
	start := time.Now()

	resp, err := a.Querier.Query(ctx, mode.Prompt(), text)
	if err != nil {
		logger.Error("review failed", "review", string(mode), "err", err)
		an.Err = err
		return an
	}

	blocks, err := a.Formatter.Format(resp, mode)
	if err != nil {
		logger.Error("format failed", "review", string(mode), "err", err)
		an.Err = err
		return an
	}

	an.Text = resp
	an.Blocks = blocks
	logger.Debug("review finished", "review", string(mode), "chars", len(resp), "blocks", len(blocks), "duration", time.Since(start))
	return an
}

func (a *Analyzer) countTokens(ctx context.Context, logger *slog.Logger, text string) {
	if a.TokenCounter == nil {
		return
	}
	n, err := a.TokenCounter.CountTokens(ctx, text)
	if err != nil {
		logger.Warn("count tokens", "err", err)
		return
	}
	logger.Info("content tokens", "tokens", n)
}

func (a *Analyzer) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return a.Logger
}

// fetchError tags untyped fetch failures with EFETCH. Context errors pass
// through unchanged.
func fetchError(ctx context.Context, err error) error {
	if ctx.Err() != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
		return ctx.Err()
	}
	var e *pagelens.Error
	if errors.As(err, &e) {
		return err
	}
	return pagelens.Errorf(pagelens.EFETCH, "fetch page: %w", err)
}
